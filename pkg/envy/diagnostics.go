package envy

import (
	"fmt"
	"strings"
	"sync"
)

// ErrorKind is the closed set of diagnoses the pipeline ever raises against
// user input, plus two internal kinds that only the excluded codegen backend
// would ever surface (kept here so the taxonomy stays whole even though
// nothing in this module constructs them).
type ErrorKind int

const (
	// Lexical
	ErrIntegerOverflow ErrorKind = iota
	ErrFloatOverflow
	ErrUnterminatedChar
	ErrUnrecognizedCharacter

	// Parser
	ErrUnexpectedEndOfInput
	ErrExpectedPrefixExpression
	ErrExpectedKind

	// Semantic
	ErrUndefinedVariable
	ErrUnknownFunction
	ErrUnsupportedOperation
	ErrTypeMismatch
	ErrConflictingType
	ErrIllegalType
	ErrParameterMismatch
	ErrDuplicateFunction

	// Internal — never produced by this module; reserved so callers
	// switching exhaustively on ErrorKind don't need a default case to stay
	// future-proof against the codegen backend's error set.
	ErrLLVMFunctionFailure
	ErrExpectedFunction
)

// code returns the stable four-digit identifier a Diagnostic renders after
// its level, e.g. "E0001".
func (k ErrorKind) code() int {
	switch k {
	case ErrUnrecognizedCharacter:
		return 1
	case ErrUnexpectedEndOfInput, ErrExpectedKind, ErrExpectedPrefixExpression:
		return 2
	case ErrIntegerOverflow:
		return 3
	case ErrFloatOverflow:
		return 4
	case ErrUnterminatedChar:
		return 5
	case ErrUndefinedVariable:
		return 6
	case ErrUnknownFunction:
		return 7
	case ErrUnsupportedOperation:
		return 8
	case ErrTypeMismatch:
		return 9
	case ErrConflictingType:
		return 10
	case ErrIllegalType:
		return 11
	case ErrParameterMismatch:
		return 12
	case ErrDuplicateFunction:
		return 13
	case ErrLLVMFunctionFailure:
		return 14
	case ErrExpectedFunction:
		return 15
	default:
		return 0
	}
}

func (k ErrorKind) title() string {
	switch k {
	case ErrIntegerOverflow:
		return "integer literal out of range"
	case ErrFloatOverflow:
		return "float literal out of range"
	case ErrUnterminatedChar:
		return "unterminated char literal"
	case ErrUnrecognizedCharacter:
		return "unrecognized character"
	case ErrUnexpectedEndOfInput:
		return "unexpected end of input"
	case ErrExpectedPrefixExpression:
		return "expected a prefix expression"
	case ErrExpectedKind:
		return "unexpected token"
	case ErrUndefinedVariable:
		return "undefined variable"
	case ErrUnknownFunction:
		return "unknown function"
	case ErrUnsupportedOperation:
		return "unsupported operation"
	case ErrTypeMismatch:
		return "type mismatch"
	case ErrConflictingType:
		return "conflicting types"
	case ErrIllegalType:
		return "illegal type in this position"
	case ErrParameterMismatch:
		return "wrong number of arguments"
	case ErrDuplicateFunction:
		return "duplicate function definition"
	case ErrLLVMFunctionFailure:
		return "code generation failed"
	case ErrExpectedFunction:
		return "expected a function"
	default:
		return "error"
	}
}

// Annotation labels one Span within a Diagnostic. The first Annotation in a
// Diagnostic is always its primary (caret-underlined) label; the rest render
// as secondary (wavy-underlined) labels.
type Annotation struct {
	Span    Span
	Message string
}

// Error is the checked, structured representation of a single diagnosis.
// It carries everything needed to render an Diagnostic but nothing about how
// to render it — that's DiagnosticEngine's job, kept separate so tests can
// assert on Kind/Span without string-matching rendered text.
type Error struct {
	Kind ErrorKind
	Span Span

	// Extra fields, populated depending on Kind. Zero value when unused.
	Expected    []TokenKindTag
	Actual      TokenKindTag
	ExpectedTy  Type
	ActualTy    Type
	FirstTy     Type
	SecondTy    Type
	ExpectedN   int
	ActualN     int
	Annotations []Annotation
	Notes       []string
}

// Level is the severity a Diagnostic renders at.
type Level int

const (
	LevelError Level = iota
	LevelWarning
	LevelInfo
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelInfo:
		return "info"
	default:
		return "error"
	}
}

// message renders the Diagnostic's title line body, filling in the dynamic
// portions each ErrorKind's extra fields carry.
func (e Error) message() string {
	switch e.Kind {
	case ErrExpectedKind:
		parts := make([]string, len(e.Expected))
		for i, k := range e.Expected {
			parts[i] = k.String()
		}

		return fmt.Sprintf("expected %s, but found %s", strings.Join(parts, " or "), e.Actual)
	case ErrTypeMismatch:
		return fmt.Sprintf("expected type %s, found %s", e.ExpectedTy, e.ActualTy)
	case ErrConflictingType:
		return fmt.Sprintf("branches have conflicting types %s and %s", e.FirstTy, e.SecondTy)
	case ErrParameterMismatch:
		return fmt.Sprintf("expected %d argument(s), found %d", e.ExpectedN, e.ActualN)
	default:
		return e.Kind.title()
	}
}

// annotations returns the primary span plus any secondary Annotations
// attached to this Error, in render order.
func (e Error) annotations() []Annotation {
	primary := Annotation{Span: e.Span}
	if len(e.Annotations) == 0 {
		return []Annotation{primary}
	}

	return append([]Annotation{primary}, e.Annotations...)
}

// Diagnostic is the renderable form of an Error: a level, a stable code, a
// title, one or more span annotations, and footer notes. DiagnosticEngine
// produces these from Errors and a SourceMap.
type Diagnostic struct {
	Level       Level
	Code        int
	Title       string
	Annotations []Annotation
	Notes       []string
}

// DiagnosticEngine holds the mutable collection of Diagnostics a compile
// session has raised, plus the SourceMap it renders them against: a
// `<level>[Ennnn]: <title>` header, source snippets with caret underlines
// under primary spans and wavy underlines under secondary ones, and
// `= note:` footer lines. No library in the retrieved pack renders spans
// this way against a Go source model, so the renderer is hand-rolled; see
// DESIGN.md. Emit/ErrorCount/HasErrors are mutex-guarded so concurrent
// sources in CompileAll can all emit into the same session engine.
type DiagnosticEngine struct {
	sources *SourceMap

	mu          sync.Mutex
	diagnostics []Diagnostic
}

// NewDiagnosticEngine creates an empty DiagnosticEngine rendering against
// sources.
func NewDiagnosticEngine(sources *SourceMap) *DiagnosticEngine {
	return &DiagnosticEngine{sources: sources}
}

// Diagnose converts an Error into its renderable Diagnostic form without
// recording it. Emit is the recording counterpart.
func (e *DiagnosticEngine) Diagnose(err Error) Diagnostic {
	return Diagnostic{
		Level:       LevelError,
		Code:        err.Kind.code(),
		Title:       err.message(),
		Annotations: err.annotations(),
		Notes:       err.Notes,
	}
}

// Emit diagnoses err and appends the result to the engine's collection,
// returning the Diagnostic produced.
func (e *DiagnosticEngine) Emit(err Error) Diagnostic {
	diag := e.Diagnose(err)

	e.mu.Lock()
	e.diagnostics = append(e.diagnostics, diag)
	e.mu.Unlock()

	return diag
}

// Diagnostics returns a copy of every Diagnostic emitted into the engine so
// far, in emission order.
func (e *DiagnosticEngine) Diagnostics() []Diagnostic {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Diagnostic, len(e.diagnostics))
	copy(out, e.diagnostics)
	return out
}

// ErrorCount returns how many emitted Diagnostics are at LevelError or
// above.
func (e *DiagnosticEngine) ErrorCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	count := 0
	for _, d := range e.diagnostics {
		if d.Level == LevelError {
			count++
		}
	}
	return count
}

// HasErrors reports whether the engine has accumulated any error-level
// Diagnostic.
func (e *DiagnosticEngine) HasErrors() bool {
	return e.ErrorCount() > 0
}

// Render produces the full multi-line text of a Diagnostic, including source
// snippets pulled from the engine's SourceMap.
func (e *DiagnosticEngine) Render(d Diagnostic) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s[E%04d]: %s\n", d.Level, d.Code, d.Title)

	for i, ann := range d.Annotations {
		e.renderAnnotation(&b, ann, i == 0)
	}

	for _, note := range d.Notes {
		fmt.Fprintf(&b, "  = note: %s\n", note)
	}

	return b.String()
}

func (e *DiagnosticEngine) renderAnnotation(b *strings.Builder, ann Annotation, primary bool) {
	name, err := e.sources.Name(ann.Span.SourceID)
	if err != nil {
		fmt.Fprintf(b, "  --> <unknown source>\n")
		return
	}

	line, err := e.sources.LineIndex(ann.Span.SourceID, ann.Span.Start)
	if err != nil {
		fmt.Fprintf(b, "  --> %s\n", name)
		return
	}

	lineStart, lineEnd, err := e.sources.LineRange(ann.Span.SourceID, line)
	if err != nil {
		fmt.Fprintf(b, "  --> %s\n", name)
		return
	}

	text, err := e.sources.Text(ann.Span.SourceID)
	if err != nil {
		return
	}

	fmt.Fprintf(b, "  --> %s:%d:%d\n", name, line+1, ann.Span.Start-lineStart+1)
	fmt.Fprintf(b, "   | %s\n", text[lineStart:lineEnd])

	underline := byte('^')
	if !primary {
		underline = '~'
	}

	col := ann.Span.Start - lineStart
	width := ann.Span.End - ann.Span.Start
	if width < 1 {
		width = 1
	}

	pad := strings.Repeat(" ", col)
	marks := strings.Repeat(string(underline), width)
	fmt.Fprintf(b, "   | %s%s", pad, marks)

	if ann.Message != "" {
		fmt.Fprintf(b, " %s", ann.Message)
	}

	b.WriteString("\n")
}
