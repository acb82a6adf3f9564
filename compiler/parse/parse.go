package parse

import (
	"context"

	"tlog.app/go/tlog"

	"github.com/xlang/xc/compiler/ast"
	"github.com/xlang/xc/compiler/lex"
	"github.com/xlang/xc/compiler/tp"
)

type (
	parser struct {
		tr tlog.Span
	}
)

var signature = []lex.Kind{lex.Fn, lex.Ident, lex.LParen, lex.RParen, lex.Arrow, lex.Ident}

// Parse builds the program from the complete token sequence.
func Parse(ctx context.Context, toks []lex.Token) (*ast.Program, error) {
	s := &parser{
		tr: tlog.SpanFromContext(ctx),
	}

	return s.parseProgram(toks)
}

// parseProgram groups tokens into functions by brace depth.
func (s *parser) parseProgram(toks []lex.Token) (*ast.Program, error) {
	p := &ast.Program{}

	var buf []lex.Token
	var open lex.Token // outermost unclosed {
	depth := 0

	for _, t := range toks {
		switch {
		case t.Kind == lex.Fn && len(buf) != 0:
			return nil, errAt(UnexpectedToken, t, "fn before the previous function is closed")
		case t.Kind == lex.RBrace && len(buf) == 0:
			return nil, errAt(UnbalancedBraces, t, "unmatched }")
		case t.Kind != lex.Fn && len(buf) == 0:
			return nil, errAt(UnexpectedToken, t, "expected fn, got %v", t.Spelling())
		}

		buf = append(buf, t)

		switch t.Kind {
		case lex.LBrace:
			if depth == 0 {
				open = t
			}

			depth++
		case lex.RBrace:
			depth--

			if depth < 0 {
				return nil, errAt(UnbalancedBraces, t, "unmatched }")
			}

			if depth != 0 {
				break
			}

			f, err := s.parseFunc(buf)
			if err != nil {
				return nil, err
			}

			if s.tr.If("parse_funcs") {
				s.tr.Printw("func", "name", f.Name(), "ret", f.Sig.Ret.Text, "stmts", len(f.Body.Stmts), "has_ret", f.Body.Ret != nil)
			}

			p.Funcs = append(p.Funcs, f)
			buf = nil
		}
	}

	switch {
	case depth > 0:
		return nil, errAt(UnbalancedBraces, open, "unclosed {")
	case len(buf) != 0:
		return nil, errAt(InvalidSignature, buf[len(buf)-1], "function has no body")
	}

	return p, nil
}

// parseFunc parses the tokens of one function, ending with its closing brace.
func (s *parser) parseFunc(toks []lex.Token) (*ast.Func, error) {
	i := 0
	for toks[i].Kind != lex.LBrace {
		i++
	}

	sig, err := s.parseSignature(toks[:i])
	if err != nil {
		return nil, err
	}

	body, err := s.parseScope(toks[i:])
	if err != nil {
		return nil, err
	}

	void := tp.IsVoid(sig.Ret.Text)

	switch {
	case !void && body.Ret == nil:
		return nil, errPos(MissingReturn, body.Close, "function %s returns %s but does not end with return", sig.Name.Text, sig.Ret.Text)
	case void && body.Ret != nil:
		return nil, errPos(UnexpectedToken, body.Ret.Pos, "function %s returns no value", sig.Name.Text)
	}

	return &ast.Func{
		Sig:  sig,
		Body: body,
	}, nil
}

func (s *parser) parseSignature(toks []lex.Token) (sig ast.Signature, err error) {
	err = expect(InvalidSignature, toks, toks[0], signature...)
	if err != nil {
		return sig, err
	}

	return ast.Signature{
		Name: toks[1],
		Ret:  toks[5],
	}, nil
}

// parseScope parses a brace-enclosed body.
func (s *parser) parseScope(toks []lex.Token) (sc ast.Scope, err error) {
	sc.Open = toks[0].Pos
	sc.Close = toks[len(toks)-1].Pos

	var stmts []ast.Stmt

	for rest := toks[1 : len(toks)-1]; len(rest) != 0; {
		i, err := s.index(rest, lex.Semi)
		if err != nil {
			return sc, err
		}

		if i < 0 {
			t := rest[len(rest)-1]
			return sc, errAt(UnexpectedToken, t, "expected ; after %v", t.Spelling())
		}

		chunk := rest[:i]
		rest = rest[i+1:]

		if len(chunk) == 0 {
			continue
		}

		st, err := s.parseStmt(chunk)
		if err != nil {
			return sc, err
		}

		stmts = append(stmts, st)
	}

	if len(stmts) == 0 {
		return sc, errPos(EmptyScope, sc.Open, "function body has no statements")
	}

	last := len(stmts) - 1

	for _, st := range stmts[:last] {
		if r, ok := st.(ast.Return); ok {
			return sc, errPos(UnexpectedToken, r.Pos, "return must be the last statement")
		}
	}

	if r, ok := stmts[last].(ast.Return); ok {
		sc.Ret = &r
		stmts = stmts[:last]
	}

	sc.Stmts = stmts

	return sc, nil
}

func (s *parser) parseStmt(toks []lex.Token) (x ast.Stmt, err error) {
	if s.tr.If("parse_stmts") {
		defer func() {
			s.tr.Printw("stmt", "first", toks[0], "len", len(toks), "stmt", x, "err", err)
		}()
	}

	switch toks[0].Kind {
	case lex.Return:
		v, err := s.parseExpr(toks[1:], toks[0])
		if err != nil {
			return nil, err
		}

		return ast.Return{Pos: toks[0].Pos, Value: v}, nil
	case lex.Mut:
		b, v, err := s.parseDecl(toks)
		if err != nil {
			return nil, err
		}

		return ast.MutDecl{Binding: b, Value: v}, nil
	case lex.Const:
		b, v, err := s.parseDecl(toks)
		if err != nil {
			return nil, err
		}

		return ast.ConstDecl{Binding: b, Value: v}, nil
	default:
		return s.parseAssignment(toks)
	}
}

func (s *parser) parseAssignment(toks []lex.Token) (x ast.Stmt, err error) {
	if toks[0].Kind != lex.Ident {
		return nil, errAt(UnexpectedToken, toks[0], "expected statement, got %v", toks[0].Spelling())
	}

	i, err := s.index(toks, lex.Eq)
	if err != nil {
		return nil, err
	}

	if i != 1 {
		t := toks[len(toks)-1]
		if len(toks) > 1 {
			t = toks[1]
		}

		return nil, errAt(UnexpectedToken, t, "expected = after %v", toks[0].Spelling())
	}

	v, err := s.parseExpr(toks[2:], toks[1])
	if err != nil {
		return nil, err
	}

	return ast.Assignment{Target: toks[0], Value: v}, nil
}

// parseDecl parses `(mut|const) IDENT : IDENT = expr`.
func (s *parser) parseDecl(toks []lex.Token) (b ast.Binding, v ast.Expr, err error) {
	i, err := s.index(toks, lex.Eq)
	if err != nil {
		return b, nil, err
	}

	lhs := toks
	if i >= 0 {
		lhs = toks[:i]
	}

	err = expect(UnexpectedToken, lhs, toks[0], toks[0].Kind, lex.Ident, lex.Colon, lex.Ident)
	if err != nil {
		return b, nil, err
	}

	if i < 0 {
		t := toks[len(toks)-1]
		return b, nil, errAt(UnexpectedToken, t, "expected = after %v", t.Spelling())
	}

	b = ast.Binding{
		Name: lhs[1],
		Type: lhs[3],
	}

	v, err = s.parseExpr(toks[i+1:], toks[i])
	if err != nil {
		return b, nil, err
	}

	return b, v, nil
}

// parseExpr parses a run of tokens. prev is the token before the run.
func (s *parser) parseExpr(toks []lex.Token, prev lex.Token) (ast.Expr, error) {
	switch len(toks) {
	case 0:
		return nil, errAt(UnexpectedToken, prev, "expected expression after %v", prev.Spelling())
	case 1:
		switch t := toks[0]; t.Kind {
		case lex.Ident, lex.Int:
			return ast.Value{Token: t}, nil
		default:
			return nil, errAt(UnexpectedToken, t, "expected identifier or integer, got %v", t.Spelling())
		}
	}

	i, err := s.lastIndex(toks, lex.Plus)
	if err != nil {
		return nil, err
	}

	if i < 0 {
		if enclosed(toks) {
			return s.parseExpr(toks[1:len(toks)-1], toks[0])
		}

		return nil, errAt(UnexpectedToken, toks[1], "expected +, got %v", toks[1].Spelling())
	}

	if i == 0 {
		return nil, errAt(UnexpectedToken, toks[0], "missing left operand")
	}

	l, err := s.parseExpr(toks[:i], prev)
	if err != nil {
		return nil, err
	}

	r, err := s.parseExpr(toks[i+1:], toks[i])
	if err != nil {
		return nil, err
	}

	return ast.Add{Left: l, Right: r}, nil
}

// expect checks that toks is exactly the kinds sequence.
// prev is reported if toks ends early and nothing was matched.
func expect(ek ErrorKind, toks []lex.Token, prev lex.Token, kinds ...lex.Kind) error {
	for i, k := range kinds {
		if i == len(toks) {
			return errAt(ek, prev, "expected %v after %v", k, prev.Spelling())
		}

		if toks[i].Kind != k {
			return errAt(ek, toks[i], "expected %v, got %v", k, toks[i].Spelling())
		}

		prev = toks[i]
	}

	if len(toks) > len(kinds) {
		return errAt(ek, toks[len(kinds)], "unexpected %v", toks[len(kinds)].Spelling())
	}

	return nil
}
