package envy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpanCombine(t *testing.T) {
	a := Span{SourceID: 0, Start: 4, End: 10}
	b := Span{SourceID: 0, Start: 1, End: 6}

	got := a.Combine(b)
	assert.Equal(t, Span{SourceID: 0, Start: 1, End: 10}, got)
}

func TestSpanCombineDifferentSourcesPanics(t *testing.T) {
	a := Span{SourceID: 0, Start: 0, End: 1}
	b := Span{SourceID: 1, Start: 0, End: 1}

	assert.Panics(t, func() {
		a.Combine(b)
	})
}

func TestSourceMapLineIndex(t *testing.T) {
	m := NewSourceMap()
	id := m.Push("test.envy", "define f() :: Int = 1\ndefine g() :: Int = 2\n")

	line, err := m.LineIndex(id, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, line)

	line, err = m.LineIndex(id, 25)
	require.NoError(t, err)
	assert.Equal(t, 1, line)
}

func TestSourceMapLineRangeStripsNewline(t *testing.T) {
	m := NewSourceMap()
	id := m.Push("test.envy", "abc\ndef\n")

	start, end, err := m.LineRange(id, 0)
	require.NoError(t, err)
	assert.Equal(t, "abc", "abc\ndef\n"[start:end])

	start, end, err = m.LineRange(id, 1)
	require.NoError(t, err)
	assert.Equal(t, "def", "abc\ndef\n"[start:end])
}

func TestSourceMapUnknownID(t *testing.T) {
	m := NewSourceMap()

	_, err := m.Text(SourceID(42))
	require.Error(t, err)

	var smErr *SourceMapError
	require.ErrorAs(t, err, &smErr)
	assert.Equal(t, ErrFileMissing, smErr.Kind)
}
