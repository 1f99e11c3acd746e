package envy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSource(t *testing.T, src string) (Program, *Interner) {
	t.Helper()

	in := NewInterner()
	tokens := lexAndFilter(t, src, in)

	parser := NewParser(tokens, in)
	prog, errs := parser.Parse()
	require.Empty(t, errs)

	return prog, in
}

func TestTypeCheckSimpleFunction(t *testing.T) {
	prog, _ := parseSource(t, "define id(x: Int) :: Int = x")

	checker := NewTypeChecker()
	typed, errs := checker.Check(prog)

	require.Empty(t, errs)
	require.Len(t, typed.Functions, 1)
	assert.Equal(t, Int, typed.Functions[0].Body.Type)
}

func TestTypeCheckIfTypeMismatch(t *testing.T) {
	prog, _ := parseSource(t, "define f() :: Boolean = if 1 then true else false")

	checker := NewTypeChecker()
	_, errs := checker.Check(prog)

	require.Len(t, errs, 1)
	assert.Equal(t, ErrTypeMismatch, errs[0].Kind)
}

func TestTypeCheckConflictingBranchTypes(t *testing.T) {
	prog, _ := parseSource(t, "define g() :: Int = if true then 1 else 2.0")

	checker := NewTypeChecker()
	_, errs := checker.Check(prog)

	require.Len(t, errs, 1)
	assert.Equal(t, ErrConflictingType, errs[0].Kind)
}

func TestTypeCheckIfWithoutElseIsVoid(t *testing.T) {
	prog, _ := parseSource(t, "define f() :: Void = if true then { let x = 1 }")

	checker := NewTypeChecker()
	typed, errs := checker.Check(prog)

	require.Empty(t, errs)
	assert.Equal(t, Void, typed.Functions[0].Body.Type)
}

func TestTypeCheckParameterMismatch(t *testing.T) {
	prog, _ := parseSource(t, "define add(x: Int, y: Int) :: Int = x\ndefine k() :: Int = add(1)")

	checker := NewTypeChecker()
	_, errs := checker.Check(prog)

	require.Len(t, errs, 1)
	assert.Equal(t, ErrParameterMismatch, errs[0].Kind)
}

func TestTypeCheckUnknownFunction(t *testing.T) {
	prog, _ := parseSource(t, "define k() :: Int = missing(1)")

	checker := NewTypeChecker()
	_, errs := checker.Check(prog)

	require.Len(t, errs, 1)
	assert.Equal(t, ErrUnknownFunction, errs[0].Kind)
}

func TestTypeCheckUndefinedVariable(t *testing.T) {
	prog, _ := parseSource(t, "define f() :: Int = x")

	checker := NewTypeChecker()
	_, errs := checker.Check(prog)

	require.Len(t, errs, 1)
	assert.Equal(t, ErrUndefinedVariable, errs[0].Kind)
}

func TestTypeCheckLetScopedToBlock(t *testing.T) {
	prog, _ := parseSource(t, "define f() :: Int = { let x = 1; x }")

	checker := NewTypeChecker()
	typed, errs := checker.Check(prog)

	require.Empty(t, errs)
	assert.Equal(t, Int, typed.Functions[0].Body.Type)
}

func TestTypeCheckLetLeaksOutsideBlockIsUndefined(t *testing.T) {
	prog, _ := parseSource(t, "define f() :: Int = { { let x = 1 }; x }")

	checker := NewTypeChecker()
	_, errs := checker.Check(prog)

	require.NotEmpty(t, errs)
	assert.Equal(t, ErrUndefinedVariable, errs[len(errs)-1].Kind)
}

func TestTypeCheckCharPlusCharYieldsChar(t *testing.T) {
	prog, _ := parseSource(t, "define f() :: Char = 'a' + 'b'")

	checker := NewTypeChecker()
	typed, errs := checker.Check(prog)

	require.Empty(t, errs)
	assert.Equal(t, Char, typed.Functions[0].Body.Type)
}

func TestTypeCheckWhileIsVoid(t *testing.T) {
	prog, _ := parseSource(t, "define f() :: Void = while true {}")

	checker := NewTypeChecker()
	typed, errs := checker.Check(prog)

	require.Empty(t, errs)
	assert.Equal(t, Void, typed.Functions[0].Body.Type)
}

func TestTypeCheckVoidParameterIsIllegal(t *testing.T) {
	prog, _ := parseSource(t, "define f(x: Void) :: Void = x")

	checker := NewTypeChecker()
	_, errs := checker.Check(prog)

	require.Len(t, errs, 1)
	assert.Equal(t, ErrIllegalType, errs[0].Kind)
}

func TestTypeCheckDuplicateFunction(t *testing.T) {
	prog, _ := parseSource(t, "define f() :: Int = 1\ndefine f() :: Int = 2")

	checker := NewTypeChecker()
	_, errs := checker.Check(prog)

	require.Len(t, errs, 1)
	assert.Equal(t, ErrDuplicateFunction, errs[0].Kind)
}
