package envy

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/juju/errors"
	"github.com/juju/loggo"
	"golang.org/x/sync/errgroup"
)

var driverLogger = loggo.GetLogger("envy.driver")

// Lex runs the Lexer over one registered source's bytes and returns its
// token stream (including whitespace) and any lexical diagnostics.
func Lex(sourceID SourceID, bytes []byte, interner *Interner) ([]Token, []Error) {
	driverLogger.Tracef("lexing source %d (%d bytes)", sourceID, len(bytes))

	lexer := NewLexer(sourceID, bytes, interner)
	tokens, errs := lexer.Lex()

	driverLogger.Debugf("source %d: %d tokens, %d lexer errors", sourceID, len(tokens), len(errs))
	return tokens, errs
}

// Parse runs the Parser over a filter_tokens-ed stream and returns the
// untyped Program plus any parser diagnostics.
func Parse(tokens []Token, interner *Interner) (Program, []Error) {
	parser := NewParser(tokens, interner)
	prog, errs := parser.Parse()

	driverLogger.Debugf("parsed %d functions, %d parser errors", len(prog.Functions), len(errs))
	return prog, errs
}

// TypeCheck runs the two-pass TypeChecker over a Program and returns the
// TypedProgram plus any checker diagnostics. Each call builds a fresh
// Environment and FunctionTable through NewTypeChecker; the caller neither
// supplies them nor gets them back.
func TypeCheck(prog Program) (TypedProgram, []Error) {
	checker := NewTypeChecker()
	typed, errs := checker.Check(prog)

	driverLogger.Debugf("type-checked %d functions, %d checker errors", len(typed.Functions), len(errs))
	return typed, errs
}

// CompileSession is one run of the pipeline over a set of named sources,
// sharing one Interner and SourceMap. Each session carries a UUID so
// concurrent multi-source compiles can be correlated across log lines.
type CompileSession struct {
	ID        uuid.UUID
	Sources   *SourceMap
	Interner  *Interner
	Diagnostics *DiagnosticEngine
}

// NewCompileSession creates an empty CompileSession ready to register
// sources into.
func NewCompileSession() *CompileSession {
	sources := NewSourceMap()
	return &CompileSession{
		ID:          uuid.New(),
		Sources:     sources,
		Interner:    NewInterner(),
		Diagnostics: NewDiagnosticEngine(sources),
	}
}

// SourceResult is one source's outcome within a CompileAll run: either a
// TypedProgram or the diagnostics that stopped it, never both.
type SourceResult struct {
	SourceID SourceID
	Name     string
	Program  TypedProgram
	Errors   []Error
}

// CompileAll registers every named source and runs the full pipeline
// (lex → filter → parse → type-check) for each one concurrently. Spec
// section 5 permits this because independent sources share only the
// Interner, the SourceMap and the DiagnosticEngine, each of which is
// mutex-guarded. An error from any one source's pass short-circuits
// only that source — the rest of the batch still completes.
func (s *CompileSession) CompileAll(inputs map[string][]byte) ([]SourceResult, error) {
	driverLogger.Infof("session %s: compiling %d sources", s.ID, len(inputs))

	results := make([]SourceResult, len(inputs))
	names := make([]string, 0, len(inputs))
	for name := range inputs {
		names = append(names, name)
	}

	g := new(errgroup.Group)
	for i, name := range names {
		i, name := i, name
		bytes := inputs[name]

		g.Go(func() error {
			id := s.Sources.Push(name, string(bytes))

			tokens, lexErrs := Lex(id, bytes, s.Interner)
			for _, e := range lexErrs {
				s.Diagnostics.Emit(e)
			}
			if len(lexErrs) > 0 {
				results[i] = SourceResult{SourceID: id, Name: name, Errors: lexErrs}
				return nil
			}

			prog, parseErrs := Parse(FilterTokens(tokens), s.Interner)
			for _, e := range parseErrs {
				s.Diagnostics.Emit(e)
			}
			if len(parseErrs) > 0 {
				results[i] = SourceResult{SourceID: id, Name: name, Errors: parseErrs}
				return nil
			}

			typed, checkErrs := TypeCheck(prog)
			for _, e := range checkErrs {
				s.Diagnostics.Emit(e)
			}
			if len(checkErrs) > 0 {
				results[i] = SourceResult{SourceID: id, Name: name, Errors: checkErrs}
				return nil
			}

			results[i] = SourceResult{SourceID: id, Name: name, Program: typed}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.Annotate(err, "envy: compiling session sources")
	}

	return results, nil
}

// RegisterSource registers a single source's text and wraps any subsequent
// lookup failure in an annotated error, distinguishing driver-boundary
// failures (stale ids, bad registration) from the user-facing Diagnostic
// path.
func (s *CompileSession) RegisterSource(name string, text []byte) (SourceID, error) {
	id := s.Sources.Push(name, string(text))

	if _, err := s.Sources.Text(id); err != nil {
		return 0, errors.Annotatef(err, "envy: registering source %q", name)
	}

	return id, nil
}

// RenderAll renders every Error in a SourceResult to its diagnostic text, in
// the order the passes discovered them (spec section 5's ordering
// guarantee: all pass-1 diagnostics precede pass-2 diagnostics for the same
// source).
func (s *CompileSession) RenderAll(result SourceResult) string {
	out := ""
	for _, e := range result.Errors {
		out += s.Diagnostics.Render(s.Diagnostics.Diagnose(e))
	}

	return out
}

// ExitCode returns the process exit status spec section 6 prescribes: zero
// when no result carries an error diagnostic, non-zero otherwise.
func ExitCode(results []SourceResult) int {
	for _, r := range results {
		if len(r.Errors) > 0 {
			return 1
		}
	}

	return 0
}

// Summary renders a one-line human-readable count of a CompileAll run, used
// by cmd/envyc after printing individual diagnostics.
func Summary(results []SourceResult) string {
	errCount := 0
	for _, r := range results {
		errCount += len(r.Errors)
	}

	return fmt.Sprintf("%d source(s), %d error(s)", len(results), errCount)
}
