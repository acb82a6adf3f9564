package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nikand.dev/go/cli"
	"tlog.app/go/tlog"

	"github.com/xlang/xc/compiler"
)

func writeFile(t *testing.T, name, text string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)

	err := os.WriteFile(path, []byte(text), 0o644)
	require.NoError(t, err)

	return path
}

func TestDiagnose(t *testing.T) {
	src := "fn main() -> i32 {\n\treturn 1$;\n}\n"

	_, err := compiler.Compile(context.Background(), "bad._x", []byte(src))
	require.Error(t, err)

	d := diagnose("bad._x", []byte(src), err)

	assert.Contains(t, d, "error[lex]:")
	assert.Contains(t, d, "invalid numeric literal")
	assert.Contains(t, d, "bad._x:2:9")
	assert.Contains(t, d, "\treturn 1$;")

	lines := strings.Split(d, "\n")
	caret := lines[len(lines)-1]
	assert.True(t, strings.HasSuffix(caret, "\t       ^"), "%q", caret)
}

func TestDiagnoseNoPosition(t *testing.T) {
	d := diagnose("x._x", nil, os.ErrNotExist)

	assert.Contains(t, d, "error:")
	assert.NotContains(t, d, "-->")
}

func TestEmit(t *testing.T) {
	src := writeFile(t, "main._x", "fn main() -> i32 { return 0; }")
	out := filepath.Join(t.TempDir(), "bin", "main.c")

	obj, err := emit(context.Background(), src, out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	assert.Equal(t, obj, data)
	assert.Equal(t, "#include <stdbool.h>\nint main()\n{\n\treturn 0;\n}\n", string(data))
}

func TestEmitFailureWritesNothing(t *testing.T) {
	src := writeFile(t, "main._x", "fn main() -> i32 { mut x: i32 = 1; }")
	out := filepath.Join(t.TempDir(), "main.c")

	_, err := emit(context.Background(), src, out)
	require.Error(t, err)

	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestDumpTokens(t *testing.T) {
	src := writeFile(t, "main._x", "fn main() -> i32 { return 7; }")

	var b bytes.Buffer

	err := dumpTokens(context.Background(), &b, src)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	require.Len(t, lines, 11)

	assert.True(t, strings.HasPrefix(lines[0], "1:1\t"), "%q", lines[0])
	assert.True(t, strings.HasSuffix(lines[0], "\tfn"), "%q", lines[0])
	assert.True(t, strings.HasSuffix(lines[8], "\t7"), "%q", lines[8])
}

func TestFormatFile(t *testing.T) {
	src := writeFile(t, "main._x", "fn main() -> i32{return 0;}")

	var b bytes.Buffer

	err := formatFile(context.Background(), &b, src, false)
	require.NoError(t, err)

	want := "fn main() -> i32 {\n\treturn 0;\n}\n"
	assert.Equal(t, want, b.String())

	err = formatFile(context.Background(), &b, src, true)
	require.NoError(t, err)

	data, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, want, string(data))
}

func TestReadSourceMissing(t *testing.T) {
	_, err := readSource(filepath.Join(t.TempDir(), "nope._x"))
	assert.Error(t, err)
}

func TestBeforeOpensLog(t *testing.T) {
	defer func(l *tlog.Logger) { tlog.DefaultLogger = l }(tlog.DefaultLogger)

	name := filepath.Join(t.TempDir(), "xc.log")

	c := &cli.Command{
		Name: "xc",
		Flags: []*cli.Flag{
			cli.NewFlag("log", name, ""),
			cli.NewFlag("verbosity,v", "", ""),
		},
	}

	err := before(c)
	require.NoError(t, err)

	tlog.Printw("log opened")

	_, err = os.Stat(name)
	assert.NoError(t, err)
}
