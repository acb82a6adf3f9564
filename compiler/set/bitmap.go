package set

import (
	"math/bits"

	"tlog.app/go/tlog/tlwire"
)

type (
	// Chars is a set of single-byte characters.
	Chars struct {
		b [4]uint64
	}
)

func NewChars(cs ...byte) Chars {
	var s Chars

	for _, c := range cs {
		s.Set(c)
	}

	return s
}

func (s *Chars) Set(c byte) {
	i, j := s.ij(c)

	s.b[i] |= 1 << j
}

func (s Chars) IsSet(c byte) bool {
	i, j := s.ij(c)

	return (s.b[i] & (1 << j)) != 0
}

// Has reports whether r is an ASCII rune in the set.
func (s Chars) Has(r rune) bool {
	if r < 0 || r >= 128 {
		return false
	}

	return s.IsSet(byte(r))
}

func (s Chars) Or(x Chars) Chars {
	for i := range s.b {
		s.b[i] |= x.b[i]
	}

	return s
}

func (s Chars) Size() (r int) {
	for _, c := range s.b {
		r += bits.OnesCount64(c)
	}

	return r
}

func (s Chars) Range(f func(c byte) bool) {
	for i, x := range s.b {
		for x != 0 {
			j := bits.TrailingZeros64(x)
			x &^= 1 << j

			if !f(byte(i*64 + j)) {
				return
			}
		}
	}
}

func (s Chars) String() string {
	b := make([]byte, 0, s.Size())

	s.Range(func(c byte) bool {
		b = append(b, c)
		return true
	})

	return string(b)
}

func (s Chars) TlogAppend(b []byte) []byte {
	var e tlwire.LowEncoder

	return e.AppendString(b, s.String())
}

func (s Chars) ij(c byte) (i int, j int) {
	return int(c) / 64, int(c) % 64
}
