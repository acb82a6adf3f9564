package ast

import (
	"github.com/xlang/xc/compiler/lex"
)

type (
	Program struct {
		Funcs []*Func
	}

	Func struct {
		Sig  Signature
		Body Scope
	}

	Signature struct {
		Name lex.Token
		Ret  lex.Token // return type name
	}

	// Scope is a function body.
	// Ret is the terminal return, removed from Stmts.
	Scope struct {
		Stmts []Stmt
		Ret   *Return

		Open  lex.Pos
		Close lex.Pos
	}

	Stmt interface {
		stmt()
	}

	Return struct {
		Pos   lex.Pos
		Value Expr
	}

	Assignment struct {
		Target lex.Token
		Value  Expr
	}

	MutDecl struct {
		Binding Binding
		Value   Expr
	}

	ConstDecl struct {
		Binding Binding
		Value   Expr
	}

	Binding struct {
		Name lex.Token
		Type lex.Token
	}

	Expr interface {
		expr()
	}

	// Value is an identifier reference or an integer literal.
	Value struct {
		lex.Token
	}

	Add struct {
		Left  Expr
		Right Expr
	}
)

func (Return) stmt()     {}
func (Assignment) stmt() {}
func (MutDecl) stmt()    {}
func (ConstDecl) stmt()  {}

func (Value) expr() {}
func (Add) expr()   {}

func (f *Func) Name() string { return f.Sig.Name.Text }

// Pos returns the position of the first token of the expression.
func Pos(x Expr) lex.Pos {
	switch x := x.(type) {
	case Value:
		return x.Token.Pos
	case Add:
		return Pos(x.Left)
	default:
		return lex.Pos{}
	}
}

func StmtPos(s Stmt) lex.Pos {
	switch s := s.(type) {
	case Return:
		return s.Pos
	case Assignment:
		return s.Target.Pos
	case MutDecl:
		return s.Binding.Name.Pos
	case ConstDecl:
		return s.Binding.Name.Pos
	default:
		return lex.Pos{}
	}
}
