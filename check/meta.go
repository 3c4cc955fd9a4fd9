package check

import (
	"fmt"
	"strings"

	. "github.com/owo-lang/narc/common"
	"github.com/owo-lang/narc/core"
)

// MetaSol is one slot of a meta context. A solution is valid in a local
// context of length Depth.
type MetaSol struct {
	Solved bool
	Depth  DBI
	Val    core.Term
}

func (s MetaSol) String() string {
	if !s.Solved {
		return "unsolved"
	}
	return fmt.Sprintf("%v at depth %d", s.Val, int(s.Depth))
}

// MetaContext holds the metas of one top-level declaration. Indices are
// dense and start at 0.
type MetaContext struct {
	sols []MetaSol
}

func NewMetaContext(size int) *MetaContext {
	return &MetaContext{sols: make([]MetaSol, size)}
}

func (m *MetaContext) Len() int {
	return len(m.sols)
}

func (m *MetaContext) Fresh() *core.Meta {
	m.sols = append(m.sols, MetaSol{})
	return core.NewMeta(MI(len(m.sols) - 1))
}

// Expand makes sure the first n indices are allocated, so metas named by
// the desugarer can be used right away.
func (m *MetaContext) Expand(n int) {
	for len(m.sols) < n {
		m.sols = append(m.sols, MetaSol{})
	}
}

func (m *MetaContext) Solution(i MI) MetaSol {
	Assertf(int(i) < len(m.sols), "meta %v out of range (%d allocated)", i, len(m.sols))
	return m.sols[i]
}

// Solve records a solution. Solving a meta twice is a bug in the caller.
func (m *MetaContext) Solve(i MI, depth DBI, val core.Term) {
	Assertf(!m.Solution(i).Solved, "meta %v is already solved", i)
	m.sols[i] = MetaSol{Solved: true, Depth: depth, Val: val}
}

func (m *MetaContext) Unsolved() []MI {
	var out []MI
	for i, sol := range m.sols {
		if !sol.Solved {
			out = append(out, MI(i))
		}
	}
	return out
}

func (m *MetaContext) String() string {
	parts := make([]string, len(m.sols))
	for i, sol := range m.sols {
		parts[i] = fmt.Sprintf("%v := %v", MI(i), sol)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
