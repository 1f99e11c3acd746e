package envy

import "fmt"

// TokenKind is a closed tagged variant covering every lexeme the Lexer can
// produce. Fields carry a literal's parsed value directly (a char literal
// carries its single byte); identifiers reference the Symbol for their
// textual content.
type TokenKind struct {
	Tag TokenKindTag

	// Populated depending on Tag; zero otherwise.
	IntValue    int64
	FloatValue  float64
	BoolValue   bool
	CharValue   byte
	Sym         Symbol
	WhitespaceR byte
}

// TokenKindTag discriminates the TokenKind variant.
type TokenKindTag int

const (
	KindEOF TokenKindTag = iota
	KindWhitespace

	KindInteger
	KindFloat
	KindBoolean
	KindChar
	KindIdentifier

	// Punctuation
	KindPlus
	KindMinus
	KindStar
	KindSlash
	KindPercent
	KindEqual
	KindNotEqual
	KindLessEqual
	KindGreaterEqual
	KindLess
	KindGreater
	KindComma
	KindColon
	KindColonColon
	KindColonEqual
	KindSemicolon
	KindLeftParen
	KindRightParen
	KindLeftBrace
	KindRightBrace

	// Keywords
	KindVoid
	KindInt
	KindFloat_
	KindBoolean_
	KindChar_
	KindTrue
	KindFalse
	KindNot
	KindOr
	KindAnd
	KindLet
	KindIf
	KindThen
	KindElse
	KindWhile
	KindDefine
	KindReturn
)

var tokenKindNames = map[TokenKindTag]string{
	KindEOF:          "end of input",
	KindWhitespace:   "whitespace",
	KindInteger:      "integer literal",
	KindFloat:        "float literal",
	KindBoolean:      "boolean literal",
	KindChar:         "char literal",
	KindIdentifier:   "identifier",
	KindPlus:         "'+'",
	KindMinus:        "'-'",
	KindStar:         "'*'",
	KindSlash:        "'/'",
	KindPercent:      "'%'",
	KindEqual:        "'='",
	KindNotEqual:     "'!='",
	KindLessEqual:    "'<='",
	KindGreaterEqual: "'>='",
	KindLess:         "'<'",
	KindGreater:      "'>'",
	KindComma:        "','",
	KindColon:        "':'",
	KindColonColon:   "'::'",
	KindColonEqual:   "':='",
	KindSemicolon:    "';'",
	KindLeftParen:    "'('",
	KindRightParen:   "')'",
	KindLeftBrace:    "'{'",
	KindRightBrace:   "'}'",
	KindVoid:         "'Void'",
	KindInt:          "'Int'",
	KindFloat_:       "'Float'",
	KindBoolean_:     "'Boolean'",
	KindChar_:        "'Char'",
	KindTrue:         "'true'",
	KindFalse:        "'false'",
	KindNot:          "'not'",
	KindOr:           "'or'",
	KindAnd:          "'and'",
	KindLet:          "'let'",
	KindIf:           "'if'",
	KindThen:         "'then'",
	KindElse:         "'else'",
	KindWhile:        "'while'",
	KindDefine:       "'define'",
	KindReturn:       "'return'",
}

// String renders the TokenKind tag the way diagnostics quote it — e.g. the
// `expected X or Y, but found Z` messages from spec section 6.
func (t TokenKindTag) String() string {
	if name, ok := tokenKindNames[t]; ok {
		return name
	}

	return fmt.Sprintf("token(%d)", int(t))
}

// keywordTable maps an exact, case-sensitive keyword string to its
// TokenKindTag. Anything not found here and not a recognized literal is an
// identifier that gets interned.
var keywordTable = map[string]TokenKindTag{
	"Void":    KindVoid,
	"Int":     KindInt,
	"Float":   KindFloat_,
	"Boolean": KindBoolean_,
	"Char":    KindChar_,
	"true":    KindTrue,
	"false":   KindFalse,
	"not":     KindNot,
	"or":      KindOr,
	"and":     KindAnd,
	"let":     KindLet,
	"if":      KindIf,
	"then":    KindThen,
	"else":    KindElse,
	"while":   KindWhile,
	"define":  KindDefine,
	"return":  KindReturn,
}

// declaredTypeKeywords maps a type-denoting keyword token to the Type it
// names. Used by the Parser when parsing a Prototype's return type or a
// Parameter's declared type.
var declaredTypeKeywords = map[TokenKindTag]Type{
	KindVoid:     Void,
	KindInt:      Int,
	KindFloat_:   Float,
	KindBoolean_: Boolean,
	KindChar_:    Char,
}

// Token pairs a TokenKind with the Span of source bytes it was scanned from.
type Token struct {
	Span Span
	Kind TokenKind
}

func (t Token) isEOF() bool {
	return t.Kind.Tag == KindEOF
}

func (t Token) isWhitespace() bool {
	return t.Kind.Tag == KindWhitespace
}
