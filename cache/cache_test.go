package cache

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/gomoku/board"
)

func TestDecisionScopeClears(t *testing.T) {
	is := is.New(t)
	c := New(DecisionScope)
	k := Key{Position: 42, Perspective: board.Black}
	c.Put(k, 100)
	v, ok := c.Get(k)
	is.True(ok)
	is.Equal(v, 100)
	is.Equal(c.Hits(), 1)

	c.StartDecision()
	_, ok = c.Get(k)
	is.True(!ok)
	is.Equal(c.Len(), 0)
	is.Equal(c.Hits(), 0)
	is.Equal(c.Misses(), 1)
}

func TestProcessScopeKeeps(t *testing.T) {
	is := is.New(t)
	c := New(ProcessScope)
	k := Key{Position: 42, Perspective: board.Black}
	c.Put(k, 100)
	c.StartDecision()
	v, ok := c.Get(k)
	is.True(ok)
	is.Equal(v, 100)
}

func TestPerspectiveIsPartOfKey(t *testing.T) {
	is := is.New(t)
	c := New(DecisionScope)
	c.Put(Key{Position: 7, Perspective: board.Black}, 5)
	_, ok := c.Get(Key{Position: 7, Perspective: board.White})
	is.True(!ok)
}

func TestParseScope(t *testing.T) {
	is := is.New(t)
	s, err := ParseScope("process")
	is.NoErr(err)
	is.Equal(s, ProcessScope)
	s, err = ParseScope("")
	is.NoErr(err)
	is.Equal(s, DecisionScope)
	_, err = ParseScope("forever")
	is.True(err != nil)
	is.Equal(ProcessScope.String(), "process")
}
