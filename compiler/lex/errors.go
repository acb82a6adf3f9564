package lex

import "fmt"

type (
	ErrorKind int

	Error struct {
		Kind ErrorKind
		Pos  Pos
		Text string // offending lexeme
	}
)

const (
	_ ErrorKind = iota
	InvalidCharacterSequence
	InvalidIdentifier
	InvalidNumericLiteral
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidCharacterSequence:
		return "invalid character sequence"
	case InvalidIdentifier:
		return "invalid identifier"
	case InvalidNumericLiteral:
		return "invalid numeric literal"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

func (e Error) Error() string {
	return fmt.Sprintf("%v: %v: %q", e.Pos, e.Kind, e.Text)
}
