package check

import (
	"fmt"

	. "github.com/owo-lang/narc/common"
	"github.com/owo-lang/narc/core"
)

type StuckKind int

const (
	NotBlocked StuckKind = iota
	OnMeta
	OnElim
	UnderApplied
	AbsurdMatch
	MissingClauses
)

func (k StuckKind) String() string {
	switch k {
	case NotBlocked:
		return "not blocked"
	case OnMeta:
		return "blocked on meta"
	case OnElim:
		return "stuck on elimination"
	case UnderApplied:
		return "under-applied"
	case AbsurdMatch:
		return "absurd match"
	case MissingClauses:
		return "missing clauses"
	default:
		panic("unreachable")
	}
}

// Stuck says why a reduction could not continue. Meta is set for OnMeta,
// Elim for OnElim.
type Stuck struct {
	Kind StuckKind
	Meta MI
	Elim core.Elim
}

func (s Stuck) String() string {
	switch s.Kind {
	case OnMeta:
		return fmt.Sprintf("%v %v", s.Kind, s.Meta)
	case OnElim:
		return fmt.Sprintf("%v %v", s.Kind, s.Elim)
	default:
		return s.Kind.String()
	}
}

func StuckOnMeta(m MI) Stuck {
	return Stuck{Kind: OnMeta, Meta: m}
}

func StuckOnElim(e core.Elim) Stuck {
	return Stuck{Kind: OnElim, Elim: e}
}

// Combine keeps the more informative reason: a meta beats missing clauses,
// which beat a neutral elimination, which beats the rest.
func (s Stuck) Combine(t Stuck) Stuck {
	switch {
	case s.Kind == NotBlocked:
		return t
	case s.Kind == OnMeta:
		return s
	case t.Kind == OnMeta:
		return t
	case s.Kind == MissingClauses:
		return s
	case t.Kind == MissingClauses:
		return t
	case s.Kind == OnElim:
		return s
	case t.Kind == OnElim:
		return t
	default:
		return s
	}
}

// Blocked is a term that reduced as far as it could.
type Blocked struct {
	Stuck  Stuck
	Anyway core.Term
}

func (b Blocked) String() string {
	return fmt.Sprintf("%v (%v)", b.Anyway, b.Stuck)
}

// BlockedError carries a Blocked out of Simplify. It is not a failure by
// itself: callers that can wait look for it with errors.As.
type BlockedError struct {
	Blocked Blocked
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("Reduction of `%v` is blocked: %v.", e.Blocked.Anyway, e.Blocked.Stuck)
}
