package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack(t *testing.T) {
	s := New[rune]()
	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.Size())

	_, ok := s.Pop()
	assert.False(t, ok, "pop on empty stack")
	_, ok = s.Peek()
	assert.False(t, ok, "peek on empty stack")

	s.Push('a')
	s.Push('+')
	s.Push('b')
	assert.Equal(t, 3, s.Size())
	assert.False(t, s.IsEmpty())

	top, ok := s.Peek()
	assert.True(t, ok)
	assert.Equal(t, 'b', top)
	assert.Equal(t, 3, s.Size(), "peek must not remove the item")

	for _, want := range []rune{'b', '+', 'a'} {
		got, ok := s.Pop()
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
	assert.True(t, s.IsEmpty())
}

func TestStackReset(t *testing.T) {
	var s Stack[string]
	s.Push("x")
	s.Push("y")
	s.Reset()
	assert.True(t, s.IsEmpty())

	s.Push("z")
	got, ok := s.Pop()
	assert.True(t, ok)
	assert.Equal(t, "z", got)
}
