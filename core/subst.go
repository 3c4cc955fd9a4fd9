package core

import (
	"fmt"

	. "github.com/owo-lang/narc/common"
)

// Subst is a persistent explicit substitution. Nodes are immutable and
// freely shared between substitutions built from one another.
//
// Γ ⊢ ρ : Δ means ρ takes terms in Δ to terms in Γ.
type Subst interface {
	fmt.Stringer
	_Subst()
}

type SubstBase struct{}

func (*SubstBase) _Subst() {}

// IdS is the identity substitution.
type IdS struct {
	SubstBase
}

// ConsS maps index 0 to Term and index i+1 to whatever Rest maps i to.
type ConsS struct {
	SubstBase
	Term Term
	Rest Subst
}

// SuccS drops the innermost variable of the domain; looking it up is a bug.
type SuccS struct {
	SubstBase
	Rest Subst
}

// WeakS applies Rest and then raises by N.
type WeakS struct {
	SubstBase
	N    DBI
	Rest Subst
}

// LiftS leaves the innermost N variables alone and applies Rest to the
// others.
type LiftS struct {
	SubstBase
	N    DBI
	Rest Subst
}

var Identity Subst = &IdS{}

func (*IdS) String() string {
	return "id"
}

func (s *ConsS) String() string {
	return fmt.Sprintf("%v :# %v", atom(s.Term), s.Rest)
}

func (s *SuccS) String() string {
	return fmt.Sprintf("strengthen(%v)", s.Rest)
}

func (s *WeakS) String() string {
	return fmt.Sprintf("wk %d (%v)", int(s.N), s.Rest)
}

func (s *LiftS) String() string {
	return fmt.Sprintf("lift %d (%v)", int(s.N), s.Rest)
}

// ========================

func isIdentity(s Subst) bool {
	_, ok := s.(*IdS)
	return ok
}

// ConsSub prepends t, collapsing cons(@n, wk m ρ) with n+1 == m into a
// single weakening.
func ConsSub(t Term, rho Subst) Subst {
	if wk, ok := rho.(*WeakS); ok {
		if v, ok := t.(*Var); ok && len(v.Elims) == 0 && v.Index+1 == wk.N {
			return Weaken(Lift(wk.Rest, 1), wk.N-1)
		}
	}
	return &ConsS{Term: t, Rest: rho}
}

// Raise shifts every free variable up by k.
func Raise(k DBI) Subst {
	return Weaken(Identity, k)
}

// Lower shifts every free variable down by k; the innermost k variables
// must not occur in the term it is applied to.
func Lower(k DBI) Subst {
	var s Subst = Identity
	for i := DBI(0); i < k; i++ {
		s = &SuccS{Rest: s}
	}
	return s
}

func One(t Term) Subst {
	return ConsSub(t, Identity)
}

// Concat puts ts in front of rho; the last element of ts becomes index 0.
func Concat(ts []Term, rho Subst) Subst {
	for _, t := range ts {
		rho = ConsSub(t, rho)
	}
	return rho
}

// Parallel instantiates a whole telescope at once. ts is in telescope
// order, so ts[len(ts)-1] replaces index 0.
func Parallel(ts []Term) Subst {
	return Concat(ts, Identity)
}

func Lift(rho Subst, k DBI) Subst {
	if k == 0 {
		return rho
	}
	switch rho := rho.(type) {
	case *IdS:
		return rho
	case *LiftS:
		return &LiftS{N: rho.N + k, Rest: rho.Rest}
	default:
		return &LiftS{N: k, Rest: rho}
	}
}

func Weaken(rho Subst, k DBI) Subst {
	if k == 0 {
		return rho
	}
	switch rho := rho.(type) {
	case *WeakS:
		return &WeakS{N: rho.N + k, Rest: rho.Rest}
	default:
		return &WeakS{N: k, Rest: rho}
	}
}

// Drop removes the first n entries of rho, so Lookup(Drop(rho, n), i) is
// Lookup(rho, i+n).
func Drop(rho Subst, n DBI) Subst {
	if n == 0 {
		return rho
	}
	switch rho := rho.(type) {
	case *IdS:
		return Raise(n)
	case *WeakS:
		return Weaken(Drop(rho.Rest, n), rho.N)
	case *ConsS:
		return Drop(rho.Rest, n-1)
	case *SuccS:
		return Drop(rho.Rest, n-1)
	case *LiftS:
		return Weaken(Drop(Lift(rho.Rest, rho.N-1), n-1), 1)
	default:
		panic("unreachable")
	}
}

// Compose builds the substitution that applies sgm first and rho second.
func Compose(rho, sgm Subst) Subst {
	if isIdentity(sgm) {
		return rho
	}
	if isIdentity(rho) {
		return sgm
	}
	switch sgm := sgm.(type) {
	case *WeakS:
		return Compose(Drop(rho, sgm.N), sgm.Rest)
	case *ConsS:
		return &ConsS{Term: Substitute(sgm.Term, rho), Rest: Compose(rho, sgm.Rest)}
	case *SuccS:
		return &SuccS{Rest: Compose(rho, sgm.Rest)}
	case *LiftS:
		Assert(sgm.N > 0, "empty lift")
		if c, ok := rho.(*ConsS); ok {
			return &ConsS{Term: c.Term, Rest: Compose(c.Rest, Lift(sgm.Rest, sgm.N-1))}
		}
		return &ConsS{
			Term: Lookup(rho, 0),
			Rest: Compose(rho, Weaken(Lift(sgm.Rest, sgm.N-1), 1)),
		}
	default:
		panic("unreachable")
	}
}

func Lookup(rho Subst, i DBI) Term {
	switch rho := rho.(type) {
	case *IdS:
		return NewVar(i)
	case *WeakS:
		if isIdentity(rho.Rest) {
			return NewVar(i + rho.N)
		}
		return RaiseTerm(Lookup(rho.Rest, i), rho.N)
	case *ConsS:
		if i == 0 {
			return rho.Term
		}
		return Lookup(rho.Rest, i-1)
	case *SuccS:
		Assertf(i != 0, "strengthened variable is still referenced")
		return Lookup(rho.Rest, i-1)
	case *LiftS:
		if i < rho.N {
			return NewVar(i)
		}
		return RaiseTerm(Lookup(rho.Rest, i-rho.N), rho.N)
	default:
		panic("unreachable")
	}
}
