package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"
	"tlog.app/go/tlog/ext/tlflag"

	"github.com/xlang/xc/compiler"
	"github.com/xlang/xc/compiler/format"
	"github.com/xlang/xc/compiler/toolchain"
)

const (
	defaultEntry = "main._x"
	defaultOut   = "./bin/main.c"
	defaultBin   = "./bin/main"
)

func main() {
	outFlags := func() []*cli.Flag {
		return []*cli.Flag{
			cli.NewFlag("out,o", defaultOut, "generated C file"),
		}
	}

	buildFlags := func() []*cli.Flag {
		return append(outFlags(),
			cli.NewFlag("bin", defaultBin, "executable to produce"),
			cli.NewFlag("cc", toolchain.DefaultCC, "C compiler"),
		)
	}

	lexCmd := &cli.Command{
		Name:        "lex",
		Description: "print tokens",
		Action:      lexAct,
		Args:        cli.Args{},
	}

	parseCmd := &cli.Command{
		Name:        "parse",
		Description: "print abstract syntax tree",
		Action:      parseAct,
		Args:        cli.Args{},
	}

	fmtCmd := &cli.Command{
		Name:        "fmt",
		Description: "print source in canonical form",
		Action:      fmtAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			cli.NewFlag("w", false, "write result to source files"),
		},
	}

	emitCmd := &cli.Command{
		Name:        "emit",
		Description: "translate to C",
		Action:      emitAct,
		Args:        cli.Args{},
		Flags:       outFlags(),
	}

	buildCmd := &cli.Command{
		Name:        "build",
		Description: "translate to C and compile it",
		Action:      buildAct,
		Args:        cli.Args{},
		Flags:       buildFlags(),
	}

	runCmd := &cli.Command{
		Name:        "run",
		Description: "build and run",
		Action:      runAct,
		Args:        cli.Args{},
		Flags:       buildFlags(),
	}

	replCmd := &cli.Command{
		Name:        "repl",
		Description: "interactive session",
		Action:      replAct,
	}

	app := &cli.Command{
		Name:        "xc",
		Description: "xc translates x source to C",
		Before:      before,
		Flags: []*cli.Flag{
			cli.NewFlag("log", "stderr", "log output file (or stderr)"),
			cli.NewFlag("verbosity,v", "", "logger verbosity topics"),
			cli.HelpFlag,
		},
		Commands: []*cli.Command{
			lexCmd,
			parseCmd,
			fmtCmd,
			emitCmd,
			buildCmd,
			runCmd,
			replCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func before(c *cli.Command) error {
	w, err := tlflag.OpenWriter(c.String("log"))
	if err != nil {
		return errors.Wrap(err, "open log file")
	}

	tlog.DefaultLogger = tlog.New(w)

	tlog.SetVerbosity(c.String("verbosity"))

	return nil
}

func rootContext() context.Context {
	return tlog.ContextWithSpan(context.Background(), tlog.Root())
}

func entry(c *cli.Command) string {
	if len(c.Args) != 0 {
		return c.Args[0]
	}

	return defaultEntry
}

func lexAct(c *cli.Command) error {
	ctx := rootContext()

	for _, a := range c.Args {
		err := dumpTokens(ctx, os.Stdout, a)
		if err != nil {
			return err
		}
	}

	return nil
}

func parseAct(c *cli.Command) error {
	ctx := rootContext()

	for _, a := range c.Args {
		err := dumpAST(ctx, os.Stdout, a)
		if err != nil {
			return err
		}
	}

	return nil
}

func fmtAct(c *cli.Command) error {
	ctx := rootContext()

	for _, a := range c.Args {
		err := formatFile(ctx, os.Stdout, a, c.Bool("w"))
		if err != nil {
			return err
		}
	}

	return nil
}

func emitAct(c *cli.Command) error {
	_, err := emit(rootContext(), entry(c), c.String("out"))

	return err
}

func buildAct(c *cli.Command) error {
	return build(rootContext(), entry(c), c.String("out"), c.String("bin"), c.String("cc"))
}

func runAct(c *cli.Command) error {
	ctx := rootContext()

	bin := c.String("bin")

	err := build(ctx, entry(c), c.String("out"), bin, c.String("cc"))
	if err != nil {
		return err
	}

	code, out, err := toolchain.Run(ctx, bin)
	if err != nil {
		return errors.Wrap(err, "run %v", bin)
	}

	os.Stdout.Write(out)
	fmt.Printf("exit code: %d\n", code)

	return nil
}

func replAct(c *cli.Command) error {
	return runREPL()
}

func readSource(name string) ([]byte, error) {
	text, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	return text, nil
}

// failed prints a diagnostic for a compile error and returns a short error.
func failed(name string, text []byte, err error) error {
	fmt.Fprintln(os.Stderr, diagnose(name, text, err))

	return errors.New("%v: compilation failed", name)
}

func dumpTokens(ctx context.Context, w io.Writer, name string) error {
	text, err := readSource(name)
	if err != nil {
		return err
	}

	toks, err := compiler.Tokens(ctx, name, text)
	if err != nil {
		return failed(name, text, err)
	}

	for _, t := range toks {
		fmt.Fprintf(w, "%v\t%v\t%s\n", t.Pos, t.Kind, t.Spelling())
	}

	return nil
}

func dumpAST(ctx context.Context, w io.Writer, name string) error {
	text, err := readSource(name)
	if err != nil {
		return err
	}

	p, err := compiler.Parse(ctx, name, text)
	if err != nil {
		return failed(name, text, err)
	}

	for _, f := range p.Funcs {
		fmt.Fprintf(w, "func %s: %+v\n", f.Name(), *f)
	}

	return nil
}

func formatFile(ctx context.Context, w io.Writer, name string, write bool) error {
	text, err := readSource(name)
	if err != nil {
		return err
	}

	p, err := compiler.Parse(ctx, name, text)
	if err != nil {
		return failed(name, text, err)
	}

	res, err := format.Format(ctx, nil, p)
	if err != nil {
		return errors.Wrap(err, "format %v", name)
	}

	if !write {
		_, err = w.Write(res)
		return err
	}

	if bytes.Equal(res, text) {
		return nil
	}

	info, err := os.Stat(name)
	if err != nil {
		return errors.Wrap(err, "stat")
	}

	err = os.WriteFile(name, res, info.Mode().Perm())
	if err != nil {
		return errors.Wrap(err, "write %v", name)
	}

	return nil
}

// emit translates the entry file and writes the C file.
// Nothing is written if translation fails.
func emit(ctx context.Context, name, out string) ([]byte, error) {
	text, err := readSource(name)
	if err != nil {
		return nil, err
	}

	obj, err := compiler.Compile(ctx, name, text)
	if err != nil {
		return nil, failed(name, text, err)
	}

	err = toolchain.WriteSource(ctx, out, obj)
	if err != nil {
		return nil, errors.Wrap(err, "write %v", out)
	}

	return obj, nil
}

func build(ctx context.Context, name, out, bin, cc string) error {
	_, err := emit(ctx, name, out)
	if err != nil {
		return err
	}

	err = toolchain.Build(ctx, cc, out, bin)
	if err != nil {
		return errors.Wrap(err, "build %v", out)
	}

	return nil
}
