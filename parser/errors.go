package parser

import (
	"fmt"

	"github.com/pngdsl/pngc/ast"
)

// Error is a syntax error with the source position that caused it. Parsing
// stops at the first Error (spec §4.3): the parser never attempts error
// recovery or continues past a malformed construct.
type Error struct {
	Pos     ast.Pos
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

func (e *Error) GetPosition() ast.Pos { return e.Pos }

func (e *Error) Unwrap() error { return fmt.Errorf("%s", e.Message) }
