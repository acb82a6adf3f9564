package parse

import (
	"fmt"

	"github.com/xlang/xc/compiler/lex"
)

type (
	ErrorKind int

	Error struct {
		Kind  ErrorKind
		Pos   lex.Pos
		Token lex.Token // offending token, Kind is lex.Invalid if unknown
		Msg   string
	}
)

const (
	_ ErrorKind = iota
	UnbalancedBraces
	UnexpectedToken
	InvalidSignature
	MissingReturn
	EmptyScope
)

func errAt(k ErrorKind, t lex.Token, format string, args ...any) Error {
	return Error{
		Kind:  k,
		Pos:   t.Pos,
		Token: t,
		Msg:   fmt.Sprintf(format, args...),
	}
}

func errPos(k ErrorKind, pos lex.Pos, format string, args ...any) Error {
	return Error{
		Kind: k,
		Pos:  pos,
		Msg:  fmt.Sprintf(format, args...),
	}
}

func (k ErrorKind) String() string {
	switch k {
	case UnbalancedBraces:
		return "unbalanced braces"
	case UnexpectedToken:
		return "unexpected token"
	case InvalidSignature:
		return "invalid signature"
	case MissingReturn:
		return "missing return"
	case EmptyScope:
		return "empty scope"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

func (e Error) Error() string {
	s := e.Kind.String()

	if e.Pos.IsValid() {
		s = e.Pos.String() + ": " + s
	}

	if e.Msg != "" {
		s += ": " + e.Msg
	}

	return s
}
