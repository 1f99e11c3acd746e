package envy

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternerInternAndResolve(t *testing.T) {
	in := NewInterner()

	a := in.Intern("foo")
	b := in.Intern("bar")
	c := in.Intern("foo")

	assert.Equal(t, a, c, "interning the same string twice must return the same id")
	assert.NotEqual(t, a, b)
	assert.Equal(t, "foo", in.Resolve(a))
	assert.Equal(t, "bar", in.Resolve(b))
	assert.Equal(t, 2, in.Len())
}

func TestInternerResolveUnissuedPanics(t *testing.T) {
	in := NewInterner()

	assert.Panics(t, func() {
		in.Resolve(Symbol(99))
	})
}

func TestInternerConcurrentInterning(t *testing.T) {
	in := NewInterner()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			in.Intern("shared")
		}()
	}

	wg.Wait()
	assert.Equal(t, 1, in.Len())
}
