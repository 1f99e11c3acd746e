package envy

import (
	"sort"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// SourceID identifies one registered source text within a SourceMap.
type SourceID int

// Span is a half-open byte range, [start, end), within a specific source. It
// is a value, not a reference — it never borrows from the source text, so it
// can be copied and combined freely. The text itself is only fetched through
// the SourceMap at diagnostic-render time.
type Span struct {
	SourceID SourceID
	Start    int
	End      int
}

// Combine returns the smallest Span covering both s and other. Both spans
// must belong to the same source.
func (s Span) Combine(other Span) Span {
	if s.SourceID != other.SourceID {
		panic("envy: cannot combine spans from different sources")
	}

	start := s.Start
	if other.Start < start {
		start = other.Start
	}

	end := s.End
	if other.End > end {
		end = other.End
	}

	return Span{SourceID: s.SourceID, Start: start, End: end}
}

// Source holds one registered source text along with precomputed line-start
// offsets so byte-offset-to-line/column lookups don't rescan the text.
type Source struct {
	ID         SourceID
	Name       string
	Text       string
	lineStarts []int
}

func newSource(id SourceID, name, text string) *Source {
	starts := []int{0}
	for i, b := range []byte(text) {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}

	return &Source{ID: id, Name: name, Text: text, lineStarts: starts}
}

// lineStart returns the byte offset where the given zero-based line begins.
// Passing the line immediately past the last one yields len(Text).
func (s *Source) lineStart(line int) (int, error) {
	switch {
	case line < len(s.lineStarts):
		return s.lineStarts[line], nil
	case line == len(s.lineStarts):
		return len(s.Text), nil
	default:
		return 0, &SourceMapError{Kind: ErrIndexTooLarge, SourceID: s.ID}
	}
}

// SourceMapErrorKind distinguishes the stale-id failure modes a SourceMap can
// report back to a caller holding a SourceID or line index from an earlier
// registration.
type SourceMapErrorKind int

const (
	// ErrFileMissing means a SourceID was never registered (or belongs to a
	// different SourceMap instance).
	ErrFileMissing SourceMapErrorKind = iota
	// ErrIndexTooLarge means a queried line index exceeds the source's line
	// count.
	ErrIndexTooLarge
)

// SourceMapError reports a stale-id lookup against a SourceMap.
type SourceMapError struct {
	Kind     SourceMapErrorKind
	SourceID SourceID
}

func (e *SourceMapError) Error() string {
	switch e.Kind {
	case ErrFileMissing:
		return "envy: no source registered for this id"
	case ErrIndexTooLarge:
		return "envy: line index exceeds this source's line count"
	default:
		return "envy: source map error"
	}
}

// SourceMap registers named source texts and answers line/column queries
// against them. It is insert-only: once a Source is pushed its id is stable.
// Pushing a new Source and looking one up both take the same lock, since
// driver.CompileAll registers sources from multiple goroutines.
type SourceMap struct {
	mu      sync.Mutex
	sources []*Source

	// lineCache memoizes LineIndex for hot offsets. SourceMap never mutates a
	// registered Source, so cached results never go stale.
	lineCache *lru.Cache[lineCacheKey, int]
}

type lineCacheKey struct {
	id     SourceID
	offset int
}

// NewSourceMap creates an empty SourceMap.
func NewSourceMap() *SourceMap {
	cache, err := lru.New[lineCacheKey, int](256)
	if err != nil {
		// Only fails for a non-positive size, which is a programmer error.
		panic(err)
	}

	return &SourceMap{lineCache: cache}
}

// Push registers a new source text and returns its id.
func (m *SourceMap) Push(name, text string) SourceID {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := SourceID(len(m.sources))
	m.sources = append(m.sources, newSource(id, name, text))

	return id
}

func (m *SourceMap) get(id SourceID) (*Source, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if int(id) < 0 || int(id) >= len(m.sources) {
		return nil, &SourceMapError{Kind: ErrFileMissing, SourceID: id}
	}

	return m.sources[id], nil
}

// Name returns the user-facing name of a registered source.
func (m *SourceMap) Name(id SourceID) (string, error) {
	src, err := m.get(id)
	if err != nil {
		return "", err
	}

	return src.Name, nil
}

// Text returns the full text of a registered source.
func (m *SourceMap) Text(id SourceID) (string, error) {
	src, err := m.get(id)
	if err != nil {
		return "", err
	}

	return src.Text, nil
}

// LineIndex returns the zero-based line containing the given byte offset.
func (m *SourceMap) LineIndex(id SourceID, offset int) (int, error) {
	key := lineCacheKey{id: id, offset: offset}
	if line, ok := m.lineCache.Get(key); ok {
		return line, nil
	}

	src, err := m.get(id)
	if err != nil {
		return 0, err
	}

	line := sort.Search(len(src.lineStarts), func(i int) bool {
		return src.lineStarts[i] > offset
	}) - 1
	if line < 0 {
		line = 0
	}

	m.lineCache.Add(key, line)
	return line, nil
}

// LineRange returns the half-open byte range of the given zero-based line.
func (m *SourceMap) LineRange(id SourceID, line int) (start, end int, err error) {
	src, err := m.get(id)
	if err != nil {
		return 0, 0, err
	}

	start, err = src.lineStart(line)
	if err != nil {
		return 0, 0, err
	}

	end, err = src.lineStart(line + 1)
	if err != nil {
		return 0, 0, err
	}

	// Drop the trailing newline from the reported range so callers rendering
	// a line of text don't print it twice.
	if end > start && end <= len(src.Text) && src.Text[end-1] == '\n' {
		end--
	}

	return start, end, nil
}
