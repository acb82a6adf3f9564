package back

import (
	"fmt"

	"github.com/xlang/xc/compiler/lex"
)

type (
	ErrorKind int

	Error struct {
		Kind ErrorKind
		Type string // offending type name for UnsupportedType
		Pos  lex.Pos
	}
)

const (
	_ ErrorKind = iota
	UnsupportedType
	InvalidLValue
	InvalidValue
)

func (k ErrorKind) String() string {
	switch k {
	case UnsupportedType:
		return "unsupported type"
	case InvalidLValue:
		return "invalid lvalue"
	case InvalidValue:
		return "invalid value"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

func (e Error) Error() string {
	s := e.Kind.String()

	if e.Pos.IsValid() {
		s = e.Pos.String() + ": " + s
	}

	if e.Type != "" {
		s += ": " + e.Type
	}

	return s
}
