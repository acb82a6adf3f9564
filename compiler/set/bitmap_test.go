package set

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChars(t *testing.T) {
	s := NewChars(' ', '{', '}', ';')

	assert.True(t, s.IsSet('{'))
	assert.True(t, s.Has('}'))
	assert.False(t, s.Has('a'))
	assert.False(t, s.Has('é'))
	assert.Equal(t, 4, s.Size())

	assert.Equal(t, " ;{}", s.String())
}

func TestCharsOr(t *testing.T) {
	a := NewChars('a', 'b')
	b := NewChars('b', 'c', 200)

	u := a.Or(b)
	assert.Equal(t, 4, u.Size())
	assert.True(t, u.IsSet(200))
	assert.False(t, u.Has(200))

	assert.Equal(t, 2, a.Size(), "receiver must not change")
}
