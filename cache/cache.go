// Package cache memoizes position evaluations. A cache is owned by a single
// evaluator, and by default it is only valid for one move decision.
package cache

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/board"
)

// Scope decides how long cached evaluations are kept.
type Scope int

const (
	// DecisionScope clears the cache before every top-level move decision.
	DecisionScope Scope = iota
	// ProcessScope keeps entries for the lifetime of the cache. Scores are
	// keyed by position content, so this changes latency, not move choice.
	ProcessScope
)

func (s Scope) String() string {
	switch s {
	case DecisionScope:
		return "decision"
	case ProcessScope:
		return "process"
	}
	return fmt.Sprintf("Scope(%d)", int(s))
}

func ParseScope(s string) (Scope, error) {
	switch s {
	case "decision", "":
		return DecisionScope, nil
	case "process":
		return ProcessScope, nil
	}
	return DecisionScope, fmt.Errorf("unknown cache scope %q", s)
}

// Key identifies an evaluation: the position and whose point of view it was
// scored from.
type Key struct {
	Position    uint64
	Perspective board.Cell
}

type EvalCache struct {
	scope  Scope
	scores map[Key]int
	hits   int
	misses int
}

func New(scope Scope) *EvalCache {
	return &EvalCache{scope: scope, scores: make(map[Key]int)}
}

func (c *EvalCache) Scope() Scope {
	return c.scope
}

func (c *EvalCache) Get(k Key) (int, bool) {
	v, ok := c.scores[k]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return v, ok
}

func (c *EvalCache) Put(k Key, score int) {
	c.scores[k] = score
}

// StartDecision is called at the top of every move decision. It clears the
// cache unless the scope says otherwise, and resets the hit counters either
// way.
func (c *EvalCache) StartDecision() {
	if c.scope == DecisionScope {
		c.Clear()
	}
	c.hits = 0
	c.misses = 0
}

func (c *EvalCache) Clear() {
	log.Debug().Int("entries", len(c.scores)).Msg("clearing eval cache")
	c.scores = make(map[Key]int)
}

func (c *EvalCache) Len() int {
	return len(c.scores)
}

func (c *EvalCache) Hits() int {
	return c.hits
}

func (c *EvalCache) Misses() int {
	return c.misses
}
