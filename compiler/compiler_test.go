package compiler

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlang/xc/compiler/back"
	"github.com/xlang/xc/compiler/lex"
	"github.com/xlang/xc/compiler/parse"
)

func TestCompile(t *testing.T) {
	ctx := context.Background()

	for _, tc := range []struct {
		src  string
		want string
	}{
		{
			"fn main() -> i32 { return 2 + 3; }",
			"int main()\n{\n\treturn 2 + 3;\n}\n",
		},
		{
			"fn f() -> i32 { const x: i32 = 5; return x; }",
			"int f()\n{\n\tint x = 5;\n\treturn x;\n}\n",
		},
		{
			"fn g() -> i32 { mut y: i32 = 1; y = 2; return y; }",
			"int g()\n{\n\tint y = 1;\n\ty = 2;\n\treturn y;\n}\n",
		},
		{
			"fn h() -> bool { return 1; }",
			"bool h()\n{\n\treturn 1;\n}\n",
		},
	} {
		obj, err := Compile(ctx, "main._x", []byte(tc.src))
		require.NoError(t, err)

		assert.Equal(t, "#include <stdbool.h>\n"+tc.want, string(obj))
	}
}

func TestCompileErrors(t *testing.T) {
	ctx := context.Background()

	for _, tc := range []struct {
		name  string
		src   string
		stage string
		pos   lex.Pos
		check func(t *testing.T, err error)
	}{
		{
			name:  "lex",
			src:   "fn main() -> i32 {\n\treturn 99999999999;\n}",
			stage: StageLex,
			pos:   lex.Pos{Line: 2, Col: 9},
			check: func(t *testing.T, err error) {
				var e lex.Error
				require.ErrorAs(t, err, &e)
				assert.Equal(t, lex.InvalidNumericLiteral, e.Kind)
			},
		},
		{
			name:  "unclosed",
			src:   "fn main() -> i32 {\n\treturn 1;\n",
			stage: StageParse,
			pos:   lex.Pos{Line: 1, Col: 18},
			check: func(t *testing.T, err error) {
				var e parse.Error
				require.ErrorAs(t, err, &e)
				assert.Equal(t, parse.UnbalancedBraces, e.Kind)
			},
		},
		{
			name:  "missing_return",
			src:   "fn main() -> i32 {\n\tmut x: i32 = 1;\n}\n",
			stage: StageParse,
			pos:   lex.Pos{Line: 3, Col: 1},
			check: func(t *testing.T, err error) {
				var e parse.Error
				require.ErrorAs(t, err, &e)
				assert.Equal(t, parse.MissingReturn, e.Kind)
			},
		},
		{
			name:  "unsupported_type",
			src:   "fn h() -> weirdtype { return 1; }",
			stage: StageGen,
			pos:   lex.Pos{Line: 1, Col: 11},
			check: func(t *testing.T, err error) {
				var e back.Error
				require.ErrorAs(t, err, &e)
				assert.Equal(t, back.UnsupportedType, e.Kind)
				assert.Equal(t, "weirdtype", e.Type)
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			obj, err := Compile(ctx, "main._x", []byte(tc.src))
			require.Error(t, err)
			assert.Nil(t, obj)

			assert.Equal(t, tc.stage, Stage(err))

			pos, ok := Position(err)
			assert.True(t, ok)
			assert.Equal(t, tc.pos, pos)

			tc.check(t, err)
		})
	}
}

func TestPositionUnknown(t *testing.T) {
	_, ok := Position(os.ErrNotExist)
	assert.False(t, ok)
	assert.Equal(t, "", Stage(os.ErrNotExist))
}

func TestCompileDeterministic(t *testing.T) {
	src := []byte("fn a() -> i32 { mut x: i32 = 1 + 2; x = x + 3; return x; }\nfn b() -> char { return 1; }\n")

	x, err := Compile(context.Background(), "a._x", src)
	require.NoError(t, err)

	y, err := Compile(context.Background(), "a._x", src)
	require.NoError(t, err)

	assert.Equal(t, x, y)
}

func TestCompileFile(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "main._x")

	err := os.WriteFile(name, []byte("fn main() -> i32 {\n\treturn 0;\n}\n"), 0o644)
	require.NoError(t, err)

	obj, err := CompileFile(context.Background(), name)
	require.NoError(t, err)
	assert.Contains(t, string(obj), "int main()\n{\n\treturn 0;\n}\n")

	_, err = CompileFile(context.Background(), filepath.Join(dir, "missing._x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTokensAndParse(t *testing.T) {
	src := []byte("fn main() -> i32 { return 2 + 3; }")

	toks, err := Tokens(context.Background(), "main._x", src)
	require.NoError(t, err)
	assert.Len(t, toks, 13)

	p, err := Parse(context.Background(), "main._x", src)
	require.NoError(t, err)
	assert.Len(t, p.Funcs, 1)
}
