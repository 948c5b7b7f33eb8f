// Package lexer converts resolved DSL source text into a token stream.
package lexer

import (
	"fmt"

	"github.com/pngdsl/pngc/ast"
)

// Error describes a lexical error with its byte offset.
type Error struct {
	Offset  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Message)
}

// runeReader scans a byte slice one byte at a time. The DSL's grammar is
// restricted to ASCII structural characters, so byte-oriented scanning
// (rather than the teacher's full UTF-8 rune decoding in parser/lexer.go)
// is sufficient; strings may still contain arbitrary UTF-8 bytes, which are
// simply copied through untouched. Identifiers are ASCII only.
type runeReader struct {
	data []byte
	pos  int
}

func (r *runeReader) peek() (byte, bool) {
	if r.pos >= len(r.data) {
		return 0, false
	}
	return r.data[r.pos], true
}

func (r *runeReader) peekAt(ahead int) (byte, bool) {
	i := r.pos + ahead
	if i >= len(r.data) {
		return 0, false
	}
	return r.data[i], true
}

func (r *runeReader) advance() { r.pos++ }

// Lex tokenizes source into a Tokens stream, terminated by a single EOF
// token. It never returns an error: whitespace and comments are skipped, and
// any byte that starts no recognized token class becomes a one-byte Punct
// token, which the parser then rejects.
func Lex(source []byte) *ast.Tokens {
	toks := &ast.Tokens{Source: source}
	rr := &runeReader{data: source}
	afterReferenceSign := false

	for {
		skipSpaceAndComments(rr)
		b, ok := rr.peek()
		if !ok {
			toks.Add(ast.EOF, uint32(rr.pos))
			return toks
		}

		start := rr.pos
		wasAfterReferenceSign := afterReferenceSign
		afterReferenceSign = false
		switch {
		case b == '"':
			lexString(rr)
			toks.Add(ast.String, uint32(start))
		case b == '#':
			rr.advance()
			lexIdentTail(rr)
			toks.Add(ast.MacroKeyword, uint32(start))
		case b == '$':
			rr.advance()
			toks.Add(ast.ReferenceSign, uint32(start))
			afterReferenceSign = true
		case isDigit(b):
			lexNumber(rr)
			toks.Add(ast.Number, uint32(start))
		case isIdentStart(b):
			lexIdentTail(rr)
			kind := ast.Identifier
			// A "$ns.name" reference's namespace identifier is never a
			// dotted builtin/uniform-access path: the '.' there is the
			// reference's own separator token (spec §4.2/§4.3), consumed
			// by the parser, not folded into this identifier.
			if !wasAfterReferenceSign && peekDotPath(rr) {
				kind = classifyDotted(source[start:rr.pos])
			}
			toks.Add(kind, uint32(start))
		case isPunct(b):
			rr.advance()
			toks.Add(ast.Punct, uint32(start))
		default:
			// Any other byte (e.g. '@', a lone '/', a NUL or a non-ASCII
			// byte): emit it as punctuation so the parser reports an
			// unexpected-token error instead of the lexer silently
			// dropping bytes.
			rr.advance()
			toks.Add(ast.Punct, uint32(start))
		}
	}
}

func skipSpaceAndComments(rr *runeReader) {
	for {
		b, ok := rr.peek()
		if !ok {
			return
		}
		if isASCIISpace(b) {
			rr.advance()
			continue
		}
		if b == '/' {
			if next, ok := rr.peekAt(1); ok && next == '/' {
				for {
					b, ok := rr.peek()
					if !ok || b == '\n' {
						break
					}
					rr.advance()
				}
				continue
			}
		}
		return
	}
}

func isASCIISpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isIdentStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || isDigit(b) || b == '-'
}

func isPunct(b byte) bool {
	switch b {
	case '{', '}', '[', ']', '=', ',', '.':
		return true
	default:
		return false
	}
}

func lexIdentTail(rr *runeReader) {
	for {
		b, ok := rr.peek()
		if !ok || !isIdentCont(b) {
			return
		}
		rr.advance()
	}
}

// lexString scans a double-quoted string. Backslash escapes are passed
// through untouched, matching the teacher's lexer convention of deferring
// escape interpretation to a later consumer (spec §4.2).
func lexString(rr *runeReader) {
	rr.advance() // opening quote
	for {
		b, ok := rr.peek()
		if !ok {
			return // unterminated; parser reports this
		}
		if b == '\\' {
			rr.advance()
			if _, ok := rr.peek(); ok {
				rr.advance()
			}
			continue
		}
		if b == '"' {
			rr.advance()
			return
		}
		rr.advance()
	}
}

// lexNumber scans an integer, hex, or float literal.
func lexNumber(rr *runeReader) {
	if b, ok := rr.peek(); ok && b == '0' {
		if n, ok := rr.peekAt(1); ok && (n == 'x' || n == 'X') {
			rr.advance()
			rr.advance()
			for {
				b, ok := rr.peek()
				if !ok || !isHexDigit(b) {
					return
				}
				rr.advance()
			}
		}
	}
	for {
		b, ok := rr.peek()
		if !ok || !isDigit(b) {
			break
		}
		rr.advance()
	}
	if b, ok := rr.peek(); ok && b == '.' {
		if n, ok := rr.peekAt(1); ok && isDigit(n) {
			rr.advance()
			for {
				b, ok := rr.peek()
				if !ok || !isDigit(b) {
					return
				}
				rr.advance()
			}
		}
	}
}

// peekDotPath reports whether the reader is positioned right after an
// identifier that is immediately followed by ".ident" (no whitespace),
// which makes it a dotted builtin/uniform-access path rather than a bare
// identifier or reference namespace prefix.
func peekDotPath(rr *runeReader) bool {
	b, ok := rr.peek()
	if !ok || b != '.' {
		return false
	}
	n, ok := rr.peekAt(1)
	if !ok || !isIdentStart(n) {
		return false
	}
	rr.advance() // '.'
	lexIdentTail(rr)
	return true
}

// classifyDotted distinguishes "canvas.width"-style builtins from ordinary
// "name.field" uniform accesses by a fixed set of recognized builtin
// prefixes; anything else dotted is a uniform access (spec §3, §4.2).
func classifyDotted(text []byte) ast.Kind {
	s := string(text)
	switch {
	case hasPrefix(s, "canvas."):
		return ast.Builtin
	default:
		return ast.UniformAccess
	}
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
