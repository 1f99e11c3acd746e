package envy

import "sync"

// Symbol is an opaque id standing in for an interned string. Equality between
// symbols is integer equality; the string itself is only needed at
// diagnostic-render or code-gen time, never for comparison.
type Symbol uint64

// Interner maintains a bijection between strings and dense integer ids. It is
// append-only: once an id is issued it binds to the same string for the
// lifetime of the Interner.
//
// The single-source pipeline never shares an Interner across goroutines, but
// driver.CompileAll interns identifiers from multiple sources concurrently
// (spec section 5), so every operation is guarded by a mutex.
type Interner struct {
	mu    sync.Mutex
	idOf  map[string]Symbol
	strOf []string
}

// NewInterner creates an empty Interner.
func NewInterner() *Interner {
	return &Interner{
		idOf: make(map[string]Symbol),
	}
}

// Intern returns the existing Symbol for s if one was already issued,
// otherwise it allocates the next id and records both directions.
func (in *Interner) Intern(s string) Symbol {
	in.mu.Lock()
	defer in.mu.Unlock()

	if id, ok := in.idOf[s]; ok {
		return id
	}

	id := Symbol(len(in.strOf))
	in.strOf = append(in.strOf, s)
	in.idOf[s] = id

	return id
}

// Resolve returns the string an id was interned with. It panics if id was
// never issued by this Interner — ids are never forged by any caller in this
// codebase, so this is strictly a bug-detector, not a user-facing error.
func (in *Interner) Resolve(id Symbol) string {
	in.mu.Lock()
	defer in.mu.Unlock()

	if int(id) >= len(in.strOf) {
		panic("envy: resolve of an id never issued by this interner")
	}

	return in.strOf[id]
}

// Len reports how many distinct strings have been interned so far.
func (in *Interner) Len() int {
	in.mu.Lock()
	defer in.mu.Unlock()

	return len(in.strOf)
}
