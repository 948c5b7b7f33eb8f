// Package ast defines the attributed syntax tree produced by the parser and
// consumed by the analyzer: a dense, structure-of-arrays node table plus the
// token stream it indexes into.
package ast

import (
	"bytes"
	"fmt"
)

// Kind identifies the lexical class of a Token.
type Kind uint8

const (
	// Invalid marks the zero Kind; no real token has this kind.
	Invalid Kind = iota
	Identifier
	Number
	String
	Punct
	MacroKeyword  // "#<word>"
	ReferenceSign // "$"
	Builtin       // "canvas.width" and friends
	UniformAccess // "name.field"
	EOF
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case Identifier:
		return "Identifier"
	case Number:
		return "Number"
	case String:
		return "String"
	case Punct:
		return "Punct"
	case MacroKeyword:
		return "MacroKeyword"
	case ReferenceSign:
		return "ReferenceSign"
	case Builtin:
		return "Builtin"
	case UniformAccess:
		return "UniformAccess"
	case EOF:
		return "EOF"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// TokenIndex identifies a token by its position in a Tokens stream.
type TokenIndex uint32

// Tokens is the token stream produced by the lexer: a kind per token plus
// its start offset into the source it was lexed from. A token's text runs
// from its start offset up to the next token's start offset (or end of
// source for the last token); Tokens does not store end offsets separately.
type Tokens struct {
	Source []byte
	Kinds   []Kind
	Starts  []uint32
}

// Len reports the number of tokens, including the trailing EOF token.
func (t *Tokens) Len() int { return len(t.Kinds) }

// Add appends a token and returns its index.
func (t *Tokens) Add(kind Kind, start uint32) TokenIndex {
	idx := TokenIndex(len(t.Kinds))
	t.Kinds = append(t.Kinds, kind)
	t.Starts = append(t.Starts, start)
	return idx
}

// Range returns the raw source bytes spanned by token i, from its start
// offset to the next token's start offset (or the end of source for the
// last token).
func (t *Tokens) Range(i TokenIndex) []byte {
	start := t.Starts[i]
	var end uint32
	if int(i)+1 < len(t.Starts) {
		end = t.Starts[i+1]
	} else {
		end = uint32(len(t.Source))
	}
	return t.Source[start:end]
}

// Text returns the token's raw text with any "//" comment that follows it
// cut off (for a string token, everything after its closing quote) and
// trimmed of trailing ASCII whitespace, which is what callers need when
// they want the token's exact name (as opposed to the raw scanning range,
// which may run up to the next token).
func (t *Tokens) Text(i TokenIndex) string {
	b := t.Range(i)
	end := len(b)
	if t.Kinds[i] == String {
		for j := 1; j < len(b); j++ {
			if b[j] == '\\' {
				j++
			} else if b[j] == '"' {
				end = j + 1
				break
			}
		}
	} else if c := bytes.Index(b, []byte("//")); c >= 0 {
		end = c
	}
	for end > 0 && isASCIISpace(b[end-1]) {
		end--
	}
	return string(b[:end])
}

func isASCIISpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// Pos is a source position: a byte offset plus the 1-based line and column
// it falls on, used only for diagnostics.
type Pos struct {
	Offset int
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// PosFor computes the human-readable position of a byte offset within
// source. It is O(offset); callers needing many positions from the same
// source should avoid calling it in a loop over the whole file more than
// once per diagnostic.
func PosFor(source []byte, offset int) Pos {
	line, col := 1, 1
	if offset > len(source) {
		offset = len(source)
	}
	for i := 0; i < offset; i++ {
		if source[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return Pos{Offset: offset, Line: line, Column: col}
}
