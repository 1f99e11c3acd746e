package envy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvironmentShadowing(t *testing.T) {
	env := NewEnvironment[Type]()

	env.Define(Symbol(1), Int)
	env.PushScope()
	env.Define(Symbol(1), Boolean)

	ty, ok := env.Lookup(Symbol(1))
	assert.True(t, ok)
	assert.Equal(t, Boolean, ty)

	env.PopScope()

	ty, ok = env.Lookup(Symbol(1))
	assert.True(t, ok)
	assert.Equal(t, Int, ty)
}

func TestEnvironmentLookupMissing(t *testing.T) {
	env := NewEnvironment[Type]()

	_, ok := env.Lookup(Symbol(99))
	assert.False(t, ok)
}

func TestEnvironmentPopWithNoScopePanics(t *testing.T) {
	env := NewEnvironment[Type]()

	assert.Panics(t, func() {
		env.PopScope()
	})
}

func TestEnvironmentDepth(t *testing.T) {
	env := NewEnvironment[Type]()
	assert.Equal(t, 0, env.Depth())

	env.PushScope()
	env.PushScope()
	assert.Equal(t, 2, env.Depth())

	env.PopScope()
	assert.Equal(t, 1, env.Depth())
}
