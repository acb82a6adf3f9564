package lex

import (
	"fmt"
	"strconv"
)

type (
	Kind int

	// Pos is a 1-based line and column. Columns count runes.
	// The zero Pos means the position is unknown.
	Pos struct {
		Line int
		Col  int
	}

	Token struct {
		Kind Kind
		Text string // identifier name or literal spelling
		Int  int32
		Pos  Pos
	}
)

const (
	Invalid Kind = iota

	Fn
	Mut
	Const
	Return

	Ident
	Int

	Eq
	Semi
	Colon
	LParen
	RParen
	LBrace
	RBrace
	Plus
	Minus
	Star
	Slash
	Arrow
)

var kindNames = [...]string{
	Invalid: "invalid",
	Fn:      "fn",
	Mut:     "mut",
	Const:   "const",
	Return:  "return",
	Ident:   "identifier",
	Int:     "integer",
	Eq:      "=",
	Semi:    ";",
	Colon:   ":",
	LParen:  "(",
	RParen:  ")",
	LBrace:  "{",
	RBrace:  "}",
	Plus:    "+",
	Minus:   "-",
	Star:    "*",
	Slash:   "/",
	Arrow:   "->",
}

// keywords are matched against the whole pending buffer before anything else.
var keywords = map[string]Kind{
	"fn":     Fn,
	"mut":    Mut,
	"const":  Const,
	"return": Return,
	"->":     Arrow,
	"-":      Minus,
	"*":      Star,
	"/":      Slash,
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindNames[k]
}

func (p Pos) IsValid() bool {
	return p.Line > 0
}

func (p Pos) String() string {
	if !p.IsValid() {
		return "?"
	}

	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Col)
}

// Spelling returns the token as it appears in source.
func (t Token) Spelling() string {
	switch t.Kind {
	case Ident:
		return t.Text
	case Int:
		if t.Text != "" {
			return t.Text
		}

		return strconv.FormatInt(int64(t.Int), 10)
	default:
		return t.Kind.String()
	}
}

func (t Token) String() string {
	switch t.Kind {
	case Ident, Int:
		return fmt.Sprintf("%v(%s)@%v", t.Kind, t.Spelling(), t.Pos)
	default:
		return fmt.Sprintf("%q@%v", t.Kind.String(), t.Pos)
	}
}
