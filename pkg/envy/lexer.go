package envy

import (
	"strconv"
)

// Lexer transforms a source's byte slice into a sequence of Tokens, each
// tagged with a byte-offset Span. It is a single-pass scanner carrying only
// its current byte index; line/column information is derived later, on
// demand, from the SourceMap rather than tracked here.
//
// A Lexer should never be reused and is not safe for concurrent use.
type Lexer struct {
	sourceID SourceID
	bytes    []byte
	index    int
	interner *Interner
	errors   []Error
}

// NewLexer creates a Lexer over the given source's bytes.
func NewLexer(sourceID SourceID, bytes []byte, interner *Interner) *Lexer {
	return &Lexer{sourceID: sourceID, bytes: bytes, interner: interner}
}

// Lex runs the scanner to completion, returning the token stream (terminated
// by a single KindEOF token) and any accumulated lexical errors. Lexer errors
// are never fatal to the scan itself — it continues past each one — but the
// driver aborts the pipeline if this slice is non-empty.
func (l *Lexer) Lex() ([]Token, []Error) {
	var tokens []Token
	for {
		tok, ok := l.next()
		if ok {
			tokens = append(tokens, tok)
		}

		if ok && tok.isEOF() {
			break
		}
	}

	return tokens, l.errors
}

// next scans exactly one token. ok is false when the scanned bytes were
// malformed (an overflowing number, an unterminated char literal, or an
// unrecognized byte): an Error is recorded and the token is not emitted.
func (l *Lexer) next() (Token, bool) {
	if l.index >= len(l.bytes) {
		return Token{Span: l.span(l.index, l.index), Kind: TokenKind{Tag: KindEOF}}, true
	}

	start := l.index
	b := l.bytes[l.index]

	switch {
	case isASCIISpace(b):
		l.index++
		return Token{Span: l.span(start, l.index), Kind: TokenKind{Tag: KindWhitespace, WhitespaceR: b}}, true

	case b == '-' && l.peekIsDigit(1):
		return l.lexNumber(start)

	case isDigit(b):
		return l.lexNumber(start)

	case b == '\'':
		return l.lexChar(start)

	case isWordStart(b):
		return l.lexWord(start)

	default:
		return l.lexPunctuation(start)
	}
}

func (l *Lexer) lexNumber(start int) (Token, bool) {
	l.index = start
	if l.bytes[l.index] == '-' {
		l.index++
	}

	sawDot := false
	for l.index < len(l.bytes) {
		b := l.bytes[l.index]
		if isDigit(b) {
			l.index++
			continue
		}

		if b == '.' && !sawDot {
			sawDot = true
			l.index++
			continue
		}

		break
	}

	text := string(l.bytes[start:l.index])
	sp := l.span(start, l.index)

	if sawDot {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			l.errors = append(l.errors, Error{Kind: ErrFloatOverflow, Span: sp})
			return Token{Span: sp, Kind: TokenKind{Tag: KindFloat}}, false
		}

		return Token{Span: sp, Kind: TokenKind{Tag: KindFloat, FloatValue: v}}, true
	}

	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		l.errors = append(l.errors, Error{Kind: ErrIntegerOverflow, Span: sp})
		return Token{Span: sp, Kind: TokenKind{Tag: KindInteger}}, false
	}

	return Token{Span: sp, Kind: TokenKind{Tag: KindInteger, IntValue: v}}, true
}

func (l *Lexer) lexChar(start int) (Token, bool) {
	l.index++ // opening quote

	if l.index >= len(l.bytes) {
		sp := l.span(start, l.index)
		l.errors = append(l.errors, Error{Kind: ErrUnterminatedChar, Span: sp})
		return Token{Span: sp, Kind: TokenKind{Tag: KindChar}}, false
	}

	value := l.bytes[l.index]
	l.index++

	if l.index >= len(l.bytes) || l.bytes[l.index] != '\'' {
		// Continue scanning for a closing quote so the span covers the full
		// malformed literal, but don't consume past end-of-input.
		for l.index < len(l.bytes) && l.bytes[l.index] != '\'' {
			l.index++
		}

		sp := l.span(start, l.index)
		l.errors = append(l.errors, Error{Kind: ErrUnterminatedChar, Span: sp})
		return Token{Span: sp, Kind: TokenKind{Tag: KindChar}}, false
	}

	l.index++ // closing quote
	return Token{Span: l.span(start, l.index), Kind: TokenKind{Tag: KindChar, CharValue: value}}, true
}

func (l *Lexer) lexWord(start int) (Token, bool) {
	for l.index < len(l.bytes) {
		b := l.bytes[l.index]
		if isASCIISpace(b) {
			break
		}

		if !isASCIIPunct(b) || b == '_' {
			l.index++
			continue
		}

		break
	}

	word := string(l.bytes[start:l.index])
	sp := l.span(start, l.index)

	if tag, ok := keywordTable[word]; ok {
		switch tag {
		case KindTrue:
			return Token{Span: sp, Kind: TokenKind{Tag: KindBoolean, BoolValue: true}}, true
		case KindFalse:
			return Token{Span: sp, Kind: TokenKind{Tag: KindBoolean, BoolValue: false}}, true
		default:
			return Token{Span: sp, Kind: TokenKind{Tag: tag}}, true
		}
	}

	sym := l.interner.Intern(word)
	return Token{Span: sp, Kind: TokenKind{Tag: KindIdentifier, Sym: sym}}, true
}

// twoByteOperators maps a two-byte prefix to the token it forms. The scanner
// only commits to the two-character form when the second byte actually
// matches; otherwise it falls back to the one-character form.
var twoByteOperators = map[[2]byte]TokenKindTag{
	{'!', '='}: KindNotEqual,
	{'<', '='}: KindLessEqual,
	{'>', '='}: KindGreaterEqual,
	{':', '='}: KindColonEqual,
	{':', ':'}: KindColonColon,
}

var oneByteOperators = map[byte]TokenKindTag{
	'+': KindPlus,
	'-': KindMinus,
	'*': KindStar,
	'/': KindSlash,
	'%': KindPercent,
	'=': KindEqual,
	',': KindComma,
	':': KindColon,
	';': KindSemicolon,
	'(': KindLeftParen,
	')': KindRightParen,
	'{': KindLeftBrace,
	'}': KindRightBrace,
	'<': KindLess,
	'>': KindGreater,
}

func (l *Lexer) lexPunctuation(start int) (Token, bool) {
	first := l.bytes[l.index]
	if l.index+1 < len(l.bytes) {
		pair := [2]byte{first, l.bytes[l.index+1]}
		if tag, ok := twoByteOperators[pair]; ok {
			l.index += 2
			return Token{Span: l.span(start, l.index), Kind: TokenKind{Tag: tag}}, true
		}
	}

	if tag, ok := oneByteOperators[first]; ok {
		l.index++
		return Token{Span: l.span(start, l.index), Kind: TokenKind{Tag: tag}}, true
	}

	l.index++
	sp := l.span(start, l.index)
	l.errors = append(l.errors, Error{Kind: ErrUnrecognizedCharacter, Span: sp})
	return Token{}, false
}

func (l *Lexer) span(start, end int) Span {
	return Span{SourceID: l.sourceID, Start: start, End: end}
}

func (l *Lexer) peekIsDigit(offset int) bool {
	idx := l.index + offset
	return idx < len(l.bytes) && isDigit(l.bytes[idx])
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isASCIISpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

func isASCIIPunct(b byte) bool {
	switch {
	case b >= '!' && b <= '/':
		return true
	case b >= ':' && b <= '@':
		return true
	case b >= '[' && b <= '`':
		return true
	case b >= '{' && b <= '~':
		return true
	default:
		return false
	}
}

func isWordStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

// FilterTokens removes Whitespace tokens from a token stream. The Lexer
// itself must still emit them (spec section 4.4) so spans reconstruct the
// source exactly; the Parser only ever sees the filtered stream.
func FilterTokens(tokens []Token) []Token {
	filtered := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if !t.isWhitespace() {
			filtered = append(filtered, t)
		}
	}

	return filtered
}
