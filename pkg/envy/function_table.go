package envy

// FunctionTable is the global, flat map from a function's interned name to
// its parameter type vector. It is deliberately not an Environment frame:
// function names live for the whole Program regardless of lexical nesting,
// so a local variable can never shadow a function name and vice versa (spec
// section 9).
type FunctionTable struct {
	signatures map[Symbol][]Type
}

// NewFunctionTable creates an empty FunctionTable.
func NewFunctionTable() *FunctionTable {
	return &FunctionTable{signatures: make(map[Symbol][]Type)}
}

// Define registers name's parameter type vector. ok is false if name was
// already registered — the caller turns that into a DuplicateFunction
// diagnostic rather than silently overwriting the earlier signature.
func (t *FunctionTable) Define(name Symbol, paramTypes []Type) (ok bool) {
	if _, exists := t.signatures[name]; exists {
		return false
	}

	t.signatures[name] = paramTypes
	return true
}

// Lookup returns the parameter type vector registered for name.
func (t *FunctionTable) Lookup(name Symbol) ([]Type, bool) {
	types, ok := t.signatures[name]
	return types, ok
}
