package envy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexAndFilter(t *testing.T, src string, in *Interner) []Token {
	t.Helper()

	lexer := NewLexer(0, []byte(src), in)
	tokens, errs := lexer.Lex()
	require.Empty(t, errs)

	return FilterTokens(tokens)
}

func TestParserSimpleFunction(t *testing.T) {
	in := NewInterner()
	tokens := lexAndFilter(t, "define id(x: Int) :: Int = x", in)

	parser := NewParser(tokens, in)
	prog, errs := parser.Parse()

	require.Empty(t, errs)
	require.Len(t, prog.Functions, 1)

	fn := prog.Functions[0]
	assert.Equal(t, "id", in.Resolve(fn.Prototype.Name))
	assert.Equal(t, Int, fn.Prototype.ReturnType)
	require.Len(t, fn.Prototype.Parameters, 1)
	assert.Equal(t, Int, fn.Prototype.Parameters[0].Type)
	assert.Equal(t, ExprIdentifier, fn.Body.Kind.Tag)
}

func TestParserBinaryPrecedence(t *testing.T) {
	in := NewInterner()
	tokens := lexAndFilter(t, "define f() :: Int = 1 + 2 * 3", in)

	parser := NewParser(tokens, in)
	prog, errs := parser.Parse()
	require.Empty(t, errs)
	require.Len(t, prog.Functions, 1)

	body := prog.Functions[0].Body
	require.Equal(t, ExprBinary, body.Kind.Tag)
	assert.Equal(t, BinaryAdd, body.Kind.Binary.Op)

	right := body.Kind.Binary.Right
	require.Equal(t, ExprBinary, right.Kind.Tag)
	assert.Equal(t, BinaryMul, right.Kind.Binary.Op)
}

func TestParserIfWithoutElse(t *testing.T) {
	in := NewInterner()
	tokens := lexAndFilter(t, "define f() :: Void = if true then {}", in)

	parser := NewParser(tokens, in)
	prog, errs := parser.Parse()
	require.Empty(t, errs)

	body := prog.Functions[0].Body
	require.Equal(t, ExprIf, body.Kind.Tag)
	assert.Nil(t, body.Kind.If.Else)
}

func TestParserApplication(t *testing.T) {
	in := NewInterner()
	tokens := lexAndFilter(t, "define f() :: Int = add(1, 2)", in)

	parser := NewParser(tokens, in)
	prog, errs := parser.Parse()
	require.Empty(t, errs)

	body := prog.Functions[0].Body
	require.Equal(t, ExprApplication, body.Kind.Tag)
	assert.Len(t, body.Kind.Application.Arguments, 2)
}

func TestParserWhile(t *testing.T) {
	in := NewInterner()
	tokens := lexAndFilter(t, "define f() :: Void = while true {}", in)

	parser := NewParser(tokens, in)
	prog, errs := parser.Parse()
	require.Empty(t, errs)

	body := prog.Functions[0].Body
	require.Equal(t, ExprWhile, body.Kind.Tag)
}

func TestParserLetWithDeclaredType(t *testing.T) {
	in := NewInterner()
	tokens := lexAndFilter(t, "define f() :: Int = let x: Int = 1", in)

	parser := NewParser(tokens, in)
	prog, errs := parser.Parse()
	require.Empty(t, errs)

	body := prog.Functions[0].Body
	require.Equal(t, ExprLet, body.Kind.Tag)
	require.NotNil(t, body.Kind.Let.DeclaredType)
	assert.Equal(t, Int, *body.Kind.Let.DeclaredType)
}

func TestParserSpanCoversFullBinary(t *testing.T) {
	src := "define f() :: Int = 1 + 2"
	in := NewInterner()
	tokens := lexAndFilter(t, src, in)

	parser := NewParser(tokens, in)
	prog, errs := parser.Parse()
	require.Empty(t, errs)

	body := prog.Functions[0].Body
	assert.Equal(t, "1 + 2", src[body.Span.Start:body.Span.End])
}

func TestParserIfBranchesConsumeFullBinaryExpression(t *testing.T) {
	in := NewInterner()
	tokens := lexAndFilter(t, "define f() :: Int = if true then 1 + 2 else 3", in)

	parser := NewParser(tokens, in)
	prog, errs := parser.Parse()
	require.Empty(t, errs)
	require.Len(t, prog.Functions, 1)

	body := prog.Functions[0].Body
	require.Equal(t, ExprIf, body.Kind.Tag)

	then := body.Kind.If.Then
	require.Equal(t, ExprBinary, then.Kind.Tag)
	assert.Equal(t, BinaryAdd, then.Kind.Binary.Op)

	require.NotNil(t, body.Kind.If.Else)
	elseExpr := body.Kind.If.Else
	require.Equal(t, ExprInt, elseExpr.Kind.Tag)
	assert.Equal(t, int64(3), elseExpr.Kind.IntValue)
}

func TestParserRecoversAfterBadFunction(t *testing.T) {
	in := NewInterner()
	tokens := lexAndFilter(t, "define bad( :: Int = 1\ndefine good() :: Int = 2", in)

	parser := NewParser(tokens, in)
	prog, errs := parser.Parse()

	require.NotEmpty(t, errs)
	require.Len(t, prog.Functions, 1)
	assert.Equal(t, "good", in.Resolve(prog.Functions[0].Prototype.Name))
}

func TestParserTruncatedInputIsUnexpectedEndOfInput(t *testing.T) {
	in := NewInterner()
	tokens := lexAndFilter(t, "define f(", in)

	parser := NewParser(tokens, in)
	_, errs := parser.Parse()

	require.NotEmpty(t, errs)
	assert.Equal(t, ErrUnexpectedEndOfInput, errs[0].Kind)
}
