package back

import (
	"context"
	"strconv"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/xlang/xc/compiler/ast"
	"github.com/xlang/xc/compiler/lex"
	"github.com/xlang/xc/compiler/tp"
)

// Compile generates C source for the program.
func Compile(ctx context.Context, p *ast.Program) ([]byte, error) {
	return CompileProgram(ctx, nil, p)
}

// CompileProgram appends C source for the program to b.
func CompileProgram(ctx context.Context, b []byte, p *ast.Program) (_ []byte, err error) {
	tr := tlog.SpanFromContext(ctx)

	b = append(b, tp.Prelude...)

	for i, f := range p.Funcs {
		if i != 0 {
			b = append(b, '\n')
		}

		st := len(b)

		b, err = compileFunc(ctx, b, f)
		if err != nil {
			return nil, errors.Wrap(err, "func %v", f.Name())
		}

		if tr.If("back_funcs") {
			tr.Printw("func", "name", f.Name(), "size", len(b)-st)
		}
	}

	return b, nil
}

func compileFunc(ctx context.Context, b []byte, f *ast.Func) (_ []byte, err error) {
	ret, err := ctype(f.Sig.Ret, true)
	if err != nil {
		return nil, errors.Wrap(err, "return type")
	}

	b = hfmt.Appendf(b, "%s %s()\n{\n", ret, f.Name())

	for _, s := range f.Body.Stmts {
		b, err = compileStmt(ctx, b, s, 1)
		if err != nil {
			return nil, err
		}
	}

	if r := f.Body.Ret; r != nil {
		b, err = compileStmt(ctx, b, *r, 1)
		if err != nil {
			return nil, err
		}
	}

	b = append(b, "}\n"...)

	return b, nil
}

func compileStmt(ctx context.Context, b []byte, s ast.Stmt, d int) (_ []byte, err error) {
	switch s := s.(type) {
	case ast.Return:
		b = app(b, d, "return ")

		b, err = compileExpr(b, s.Value)
		if err != nil {
			return nil, errors.Wrap(err, "return")
		}
	case ast.Assignment:
		if s.Target.Kind != lex.Ident {
			return nil, Error{Kind: InvalidLValue, Pos: s.Target.Pos}
		}

		b = app(b, d, "%s = ", s.Target.Text)

		b, err = compileExpr(b, s.Value)
		if err != nil {
			return nil, errors.Wrap(err, "rhs")
		}
	case ast.MutDecl:
		b, err = compileDecl(b, s.Binding, s.Value, d)
		if err != nil {
			return nil, err
		}
	case ast.ConstDecl:
		b, err = compileDecl(b, s.Binding, s.Value, d)
		if err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("unsupported stmt: %T", s)
	}

	b = append(b, ";\n"...)

	return b, nil
}

// compileDecl renders both declaration kinds the same way.
func compileDecl(b []byte, x ast.Binding, v ast.Expr, d int) (_ []byte, err error) {
	typ, err := ctype(x.Type, false)
	if err != nil {
		return nil, errors.Wrap(err, "declare %v", x.Name.Text)
	}

	b = app(b, d, "%s %s = ", typ, x.Name.Text)

	b, err = compileExpr(b, v)
	if err != nil {
		return nil, errors.Wrap(err, "declare %v", x.Name.Text)
	}

	return b, nil
}

func compileExpr(b []byte, x ast.Expr) (_ []byte, err error) {
	switch x := x.(type) {
	case ast.Value:
		switch x.Kind {
		case lex.Ident:
			b = append(b, x.Text...)
		case lex.Int:
			b = strconv.AppendInt(b, int64(x.Int), 10)
		default:
			return nil, Error{Kind: InvalidValue, Pos: x.Pos}
		}
	case ast.Add:
		b, err = compileExpr(b, x.Left)
		if err != nil {
			return nil, errors.Wrap(err, "left")
		}

		b = append(b, " + "...)

		_, group := x.Right.(ast.Add)
		if group {
			b = append(b, '(')
		}

		b, err = compileExpr(b, x.Right)
		if err != nil {
			return nil, errors.Wrap(err, "right")
		}

		if group {
			b = append(b, ')')
		}
	default:
		return nil, errors.New("unsupported expr: %T", x)
	}

	return b, nil
}

func ctype(t lex.Token, ret bool) (string, error) {
	typ, ok := tp.Lookup(t.Text)
	if !ok || t.Kind != lex.Ident || typ.IsVoid() && !ret {
		return "", Error{Kind: UnsupportedType, Type: t.Spelling(), Pos: t.Pos}
	}

	return typ.C, nil
}

func app(b []byte, d int, f string, args ...any) []byte {
	const tabs = "\t\t\t\t\t\t\t\t"
	b = append(b, tabs[:d]...)
	b = hfmt.Appendf(b, f, args...)
	return b
}
