// Package reporter contains the types used for reporting errors encountered
// while compiling DSL source: error types, and the interfaces used to
// surface them (and warnings) to a calling program.
package reporter

import (
	"errors"
	"fmt"

	"github.com/pngdsl/pngc/ast"
)

// ErrInvalidSource is a sentinel error returned when a compilation fails
// due to reported errors but the configured Reporter never returned a
// non-nil error of its own.
var ErrInvalidSource = errors.New("compile failed: invalid source")

// ErrorWithPos is an error that carries the source position that caused it.
type ErrorWithPos interface {
	error
	GetPosition() ast.Pos
	Unwrap() error
}

// Error builds an ErrorWithPos from a position and an underlying error.
func Error(pos ast.Pos, err error) ErrorWithPos {
	return errorWithPos{pos: pos, underlying: err}
}

// Errorf builds an ErrorWithPos from a position and a formatted message.
func Errorf(pos ast.Pos, format string, args ...any) ErrorWithPos {
	return errorWithPos{pos: pos, underlying: fmt.Errorf(format, args...)}
}

type errorWithPos struct {
	underlying error
	pos        ast.Pos
}

func (e errorWithPos) Error() string {
	return fmt.Sprintf("%s: %v", e.pos, e.underlying)
}

func (e errorWithPos) GetPosition() ast.Pos { return e.pos }

func (e errorWithPos) Unwrap() error { return e.underlying }

var _ ErrorWithPos = errorWithPos{}

// AnalysisErrorKind enumerates the semantic error categories the analyzer
// produces, per the DSL's fixed error taxonomy.
type AnalysisErrorKind int

const (
	UndefinedReference AnalysisErrorKind = iota
	DuplicateDefinition
	CircularDependency
	InvalidReferenceNamespace
	MissingRequiredProperty
	TypeMismatch
)

func (k AnalysisErrorKind) String() string {
	switch k {
	case UndefinedReference:
		return "undefined_reference"
	case DuplicateDefinition:
		return "duplicate_definition"
	case CircularDependency:
		return "circular_dependency"
	case InvalidReferenceNamespace:
		return "invalid_reference_namespace"
	case MissingRequiredProperty:
		return "missing_required_property"
	case TypeMismatch:
		return "type_mismatch"
	default:
		return fmt.Sprintf("AnalysisErrorKind(%d)", int(k))
	}
}

// AnalysisError is one semantic diagnostic: a kind, the AST node it was
// raised against, and a short human message. AnalysisErrors are values,
// never panics: the analyzer accumulates a slice of them and keeps going.
type AnalysisError struct {
	Kind    AnalysisErrorKind
	Node    ast.NodeIndex
	Pos     ast.Pos
	Message string
}

func (e AnalysisError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.Message)
}

func (e AnalysisError) GetPosition() ast.Pos { return e.Pos }

func (e AnalysisError) Unwrap() error { return errors.New(e.Message) }

var _ ErrorWithPos = AnalysisError{}

// AnalysisErrors is the umbrella error the driver surfaces when the
// analyzer's error list is non-empty: the list itself is the diagnostic
// payload (spec §7 class 2).
type AnalysisErrors struct {
	Errors []AnalysisError
}

func (e *AnalysisErrors) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d analysis errors, first: %s", len(e.Errors), e.Errors[0].Error())
}
