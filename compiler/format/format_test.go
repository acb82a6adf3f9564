package format

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlang/xc/compiler/ast"
	"github.com/xlang/xc/compiler/lex"
	"github.com/xlang/xc/compiler/parse"
)

func parseSrc(t *testing.T, src string) *ast.Program {
	t.Helper()

	ctx := context.Background()

	toks, err := lex.Lex(ctx, strings.NewReader(src))
	require.NoError(t, err)

	p, err := parse.Parse(ctx, toks)
	require.NoError(t, err)

	return p
}

func TestFormat(t *testing.T) {
	p := parseSrc(t, `fn main()->  i32 {const x:i32=5;mut y : i32 = x+(1+2)+-3 ; y=y+1;
return y;}
fn nop() -> void { mut a: char = 0; }`)

	b, err := Format(context.Background(), nil, p)
	require.NoError(t, err)

	assert.Equal(t, `fn main() -> i32 {
	const x: i32 = 5;
	mut y: i32 = x + (1 + 2) + -3;
	y = y + 1;
	return y;
}

fn nop() -> void {
	mut a: char = 0;
}
`, string(b))
}

func TestFormatIdempotent(t *testing.T) {
	src := "fn f() -> i32 { const a: i32 = ((1)) + (2 + (3 + 4)); return a + a + a; }"

	first, err := Format(context.Background(), nil, parseSrc(t, src))
	require.NoError(t, err)

	second, err := Format(context.Background(), nil, parseSrc(t, string(first)))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Contains(t, string(first), "const a: i32 = 1 + (2 + (3 + 4));")
}
