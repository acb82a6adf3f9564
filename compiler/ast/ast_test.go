package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xlang/xc/compiler/lex"
)

func TestPos(t *testing.T) {
	a := lex.Token{Kind: lex.Ident, Text: "a", Pos: lex.Pos{Line: 2, Col: 5}}
	one := lex.Token{Kind: lex.Int, Int: 1, Pos: lex.Pos{Line: 2, Col: 9}}

	x := Add{Left: Add{Left: Value{a}, Right: Value{one}}, Right: Value{one}}

	assert.Equal(t, a.Pos, Pos(x))
	assert.Equal(t, lex.Pos{}, Pos(nil))

	assert.Equal(t, a.Pos, StmtPos(Assignment{Target: a, Value: x}))
	assert.Equal(t, a.Pos, StmtPos(ConstDecl{Binding: Binding{Name: a}}))
	assert.Equal(t, lex.Pos{Line: 7, Col: 1}, StmtPos(Return{Pos: lex.Pos{Line: 7, Col: 1}}))
}
