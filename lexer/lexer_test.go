package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pngdsl/pngc/ast"
)

func TestLexBasicTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kinds []ast.Kind
		texts []string
	}{
		{
			name:  "macro header",
			input: `#frame main { perform=[] }`,
			kinds: []ast.Kind{ast.MacroKeyword, ast.Identifier, ast.Punct, ast.Identifier, ast.Punct, ast.Punct, ast.Punct, ast.EOF},
			texts: []string{"#frame", "main", "{", "perform", "=", "[", "]"},
		},
		{
			name:  "reference",
			input: `$wgsl.core`,
			kinds: []ast.Kind{ast.ReferenceSign, ast.Identifier, ast.Punct, ast.Identifier, ast.EOF},
			texts: []string{"$", "wgsl", ".", "core"},
		},
		{
			name:  "hyphenated identifier",
			input: `triangle-list`,
			kinds: []ast.Kind{ast.Identifier, ast.EOF},
			texts: []string{"triangle-list"},
		},
		{
			name:  "builtin",
			input: `canvas.width`,
			kinds: []ast.Kind{ast.Builtin, ast.EOF},
			texts: []string{"canvas.width"},
		},
		{
			name:  "uniform access",
			input: `light.intensity`,
			kinds: []ast.Kind{ast.UniformAccess, ast.EOF},
			texts: []string{"light.intensity"},
		},
		{
			name:  "numbers",
			input: `12 0xFF 1.5`,
			kinds: []ast.Kind{ast.Number, ast.Number, ast.Number, ast.EOF},
			texts: []string{"12", "0xFF", "1.5"},
		},
		{
			name:  "string with escape",
			input: `"a\"b"`,
			kinds: []ast.Kind{ast.String, ast.EOF},
			texts: []string{`"a\"b"`},
		},
		{
			name:  "comment skipped",
			input: "a // comment\nb",
			kinds: []ast.Kind{ast.Identifier, ast.Identifier, ast.EOF},
			texts: []string{"a", "b"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			toks := Lex([]byte(tc.input))
			require.Equal(t, tc.kinds, toks.Kinds)
			for i, want := range tc.texts {
				require.Equal(t, want, toks.Text(ast.TokenIndex(i)), "token %d", i)
			}
		})
	}
}

func TestLexUnterminatedStringDoesNotHang(t *testing.T) {
	toks := Lex([]byte(`"unterminated`))
	require.Equal(t, ast.String, toks.Kinds[0])
	require.Equal(t, ast.EOF, toks.Kinds[len(toks.Kinds)-1])
}
