package compiler

import (
	"bytes"
	"context"
	"os"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/xlang/xc/compiler/ast"
	"github.com/xlang/xc/compiler/back"
	"github.com/xlang/xc/compiler/lex"
	"github.com/xlang/xc/compiler/parse"
)

type (
	// StageError is a compile failure attributed to one pipeline stage.
	StageError struct {
		Stage string
		Err   error
	}
)

const (
	StageLex   = "lex"
	StageParse = "parse"
	StageGen   = "codegen"
)

func CompileFile(ctx context.Context, name string) (obj []byte, err error) {
	text, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	tlog.SpanFromContext(ctx).Printw("read file", "size", len(text), "name", name)

	return Compile(ctx, name, text)
}

// Compile translates source text to C.
func Compile(ctx context.Context, name string, text []byte) (obj []byte, err error) {
	p, err := Parse(ctx, name, text)
	if err != nil {
		return nil, err
	}

	obj, err = Generate(ctx, p)
	if err != nil {
		return nil, err
	}

	return obj, nil
}

// Tokens runs the lexer only.
func Tokens(ctx context.Context, name string, text []byte) (toks []lex.Token, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "lex", "name", name, "size", len(text))
	defer tr.Finish("err", &err)

	toks, err = lex.Lex(ctx, bytes.NewReader(text))
	if err != nil {
		return nil, StageError{Stage: StageLex, Err: err}
	}

	tr.Printw("tokens", "n", len(toks))

	return toks, nil
}

// Parse runs the lexer and the parser.
func Parse(ctx context.Context, name string, text []byte) (p *ast.Program, err error) {
	toks, err := Tokens(ctx, name, text)
	if err != nil {
		return nil, err
	}

	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "parse", "name", name, "tokens", len(toks))
	defer tr.Finish("err", &err)

	p, err = parse.Parse(ctx, toks)
	if err != nil {
		return nil, StageError{Stage: StageParse, Err: err}
	}

	tr.Printw("program", "funcs", len(p.Funcs))

	return p, nil
}

// Generate runs the code generator.
func Generate(ctx context.Context, p *ast.Program) (obj []byte, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "codegen", "funcs", len(p.Funcs))
	defer tr.Finish("err", &err)

	obj, err = back.Compile(ctx, p)
	if err != nil {
		return nil, StageError{Stage: StageGen, Err: err}
	}

	tr.Printw("generated", "size", len(obj))

	return obj, nil
}

// Position returns the source position of a compile failure, if known.
func Position(err error) (lex.Pos, bool) {
	var (
		le lex.Error
		pe parse.Error
		be back.Error
	)

	var pos lex.Pos

	switch {
	case errors.As(err, &le):
		pos = le.Pos
	case errors.As(err, &pe):
		pos = pe.Pos
	case errors.As(err, &be):
		pos = be.Pos
	}

	return pos, pos.IsValid()
}

// Stage returns the pipeline stage err comes from, or "".
func Stage(err error) string {
	var se StageError

	if errors.As(err, &se) {
		return se.Stage
	}

	return ""
}

func (e StageError) Error() string {
	return e.Stage + ": " + e.Err.Error()
}

func (e StageError) Unwrap() error {
	return e.Err
}
