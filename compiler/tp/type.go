package tp

import "sort"

type (
	// Type is a primitive type of the source language and its C spelling.
	Type struct {
		Name string
		C    string
	}
)

// Void is the no-value type. It is only valid as a function return type.
const Void = "void"

// Prelude is emitted at the top of every generated C file.
const Prelude = "#include <stdbool.h>\n"

var types = map[string]Type{
	"i32":  {Name: "i32", C: "int"},
	"bool": {Name: "bool", C: "bool"},
	"char": {Name: "char", C: "char"},
	Void:   {Name: Void, C: "void"},
}

func Lookup(name string) (Type, bool) {
	t, ok := types[name]
	return t, ok
}

func IsVoid(name string) bool {
	return name == Void
}

func (t Type) IsVoid() bool {
	return IsVoid(t.Name)
}

// Names returns the supported type names in sorted order.
func Names() []string {
	l := make([]string, 0, len(types))

	for n := range types {
		l = append(l, n)
	}

	sort.Strings(l)

	return l
}
