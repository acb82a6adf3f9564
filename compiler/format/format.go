package format

import (
	"context"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"

	"github.com/xlang/xc/compiler/ast"
)

// Format appends the canonical source form of the program to b.
func Format(ctx context.Context, b []byte, p *ast.Program) (_ []byte, err error) {
	for i, f := range p.Funcs {
		if i != 0 {
			b = append(b, '\n')
		}

		b, err = formatFunc(ctx, b, f, 0)
		if err != nil {
			return nil, errors.Wrap(err, "func %v", f.Name())
		}
	}

	return b, nil
}

func formatFunc(ctx context.Context, b []byte, x *ast.Func, d int) (_ []byte, err error) {
	b = app(b, d, "fn %s() -> %s {\n", x.Name(), x.Sig.Ret.Spelling())

	for _, s := range x.Body.Stmts {
		b, err = formatStmt(ctx, b, s, d+1)
		if err != nil {
			return nil, err
		}
	}

	if x.Body.Ret != nil {
		b, err = formatStmt(ctx, b, *x.Body.Ret, d+1)
		if err != nil {
			return nil, err
		}
	}

	b = app(b, d, "}\n")

	return b, nil
}

func formatStmt(ctx context.Context, b []byte, s ast.Stmt, d int) (_ []byte, err error) {
	switch s := s.(type) {
	case ast.Return:
		b = app(b, d, "return ")
		b, err = formatExpr(ctx, b, s.Value)
	case ast.Assignment:
		b = app(b, d, "%s = ", s.Target.Spelling())
		b, err = formatExpr(ctx, b, s.Value)
	case ast.MutDecl:
		b = app(b, d, "mut %s: %s = ", s.Binding.Name.Spelling(), s.Binding.Type.Spelling())
		b, err = formatExpr(ctx, b, s.Value)
	case ast.ConstDecl:
		b = app(b, d, "const %s: %s = ", s.Binding.Name.Spelling(), s.Binding.Type.Spelling())
		b, err = formatExpr(ctx, b, s.Value)
	default:
		return nil, errors.New("unsupported stmt: %T", s)
	}

	if err != nil {
		return nil, errors.Wrap(err, "at %v", ast.StmtPos(s))
	}

	b = append(b, ";\n"...)

	return b, nil
}

func formatExpr(ctx context.Context, b []byte, x ast.Expr) (_ []byte, err error) {
	switch x := x.(type) {
	case ast.Value:
		b = append(b, x.Spelling()...)
	case ast.Add:
		b, err = formatExpr(ctx, b, x.Left)
		if err != nil {
			return nil, errors.Wrap(err, "left")
		}

		b = append(b, " + "...)

		_, group := x.Right.(ast.Add)
		if group {
			b = append(b, '(')
		}

		b, err = formatExpr(ctx, b, x.Right)
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

func app(b []byte, d int, f string, args ...any) []byte {
	const tabs = "\t\t\t\t\t\t\t\t\t\t\t\t\t\t\t"
	b = append(b, tabs[:d]...)
	b = hfmt.Appendf(b, f, args...)
	return b
}
