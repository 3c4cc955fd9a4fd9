package check

import (
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	. "github.com/owo-lang/narc/common"
	"github.com/owo-lang/narc/core"
)

type MatchKind int

const (
	Yes MatchKind = iota
	No
	Dunno
)

func (k MatchKind) String() string {
	switch k {
	case Yes:
		return "yes"
	case No:
		return "no"
	case Dunno:
		return "dunno"
	default:
		panic("unreachable")
	}
}

// Match is the outcome of matching patterns against eliminations. Simpl
// records whether a constructor was actually inspected.
type Match struct {
	Kind  MatchKind
	Simpl bool
	Binds map[DBI]core.Term
	Stuck Stuck
}

func (m Match) String() string {
	switch m.Kind {
	case Yes:
		return fmt.Sprintf("yes %v", m.Binds)
	case Dunno:
		return fmt.Sprintf("dunno (%v)", m.Stuck)
	default:
		return m.Kind.String()
	}
}

func matchYes(simpl bool, binds map[DBI]core.Term) Match {
	return Match{Kind: Yes, Simpl: simpl, Binds: binds}
}

func matchDunno(stuck Stuck) Match {
	return Match{Kind: Dunno, Stuck: stuck}
}

// Combine: Dunno wins over No, which wins over Yes.
func (m Match) Combine(n Match) Match {
	switch {
	case m.Kind == Dunno && n.Kind == Dunno:
		return matchDunno(m.Stuck.Combine(n.Stuck))
	case m.Kind == Dunno:
		return m
	case n.Kind == Dunno:
		return n
	case m.Kind == No || n.Kind == No:
		return Match{Kind: No}
	}
	binds := make(map[DBI]core.Term, len(m.Binds)+len(n.Binds))
	for i, t := range m.Binds {
		binds[i] = t
	}
	for i, t := range n.Binds {
		binds[i] = t
	}
	return matchYes(m.Simpl || n.Simpl, binds)
}

// matchCopats matches left to right. A mismatch does not stop the scan, so
// a later position stuck on a meta is still reported; only a mismatch on a
// leading projection gives up at once.
func (tcs *TCS) matchCopats(pats []core.Copat, elims []core.Elim) (Match, error) {
	Assert(len(pats) == len(elims), "pattern and elimination counts differ")
	acc := matchYes(false, map[DBI]core.Term{})
	for i, p := range pats {
		m, err := tcs.matchCopat(p, elims[i])
		if err != nil {
			return Match{}, err
		}
		if m.Kind == No {
			if _, ok := elims[i].(*core.Proj); ok && i == 0 {
				return m, nil
			}
		}
		acc = acc.Combine(m)
		if m.Kind == Dunno {
			return acc, nil
		}
	}
	return acc, nil
}

func (tcs *TCS) matchCopat(p core.Copat, e core.Elim) (Match, error) {
	switch p := p.(type) {
	case *core.CopatProj:
		if proj, ok := e.(*core.Proj); ok && proj.Field == p.Field {
			return matchYes(false, nil), nil
		}
		return Match{Kind: No}, nil
	case *core.CopatApp:
		app, ok := e.(*core.App)
		if !ok {
			return Match{Kind: No}, nil
		}
		return tcs.matchPat(p.Pat, app.Arg)
	default:
		spew.Dump(p)
		panic("unreachable")
	}
}

func (tcs *TCS) matchPats(pats []core.Pat, ts []core.Term) (Match, error) {
	Assert(len(pats) == len(ts), "constructor arity mismatch")
	acc := matchYes(false, map[DBI]core.Term{})
	for i, p := range pats {
		m, err := tcs.matchPat(p, ts[i])
		if err != nil {
			return Match{}, err
		}
		acc = acc.Combine(m)
		if m.Kind == Dunno {
			return acc, nil
		}
	}
	return acc, nil
}

func (tcs *TCS) matchPat(p core.Pat, t core.Term) (Match, error) {
	switch p := p.(type) {
	case *core.PatVar:
		return matchYes(false, map[DBI]core.Term{p.Index: t}), nil
	case *core.PatForced:
		return matchYes(false, nil), nil
	case *core.PatAbsurd:
		panic("absurd pattern reached during matching")
	case *core.PatRefl:
		v, m, err := tcs.inspect(t)
		if err != nil || m != nil {
			return derefMatch(m), err
		}
		if _, ok := v.(*core.Refl); ok {
			return matchYes(true, nil), nil
		}
		return stuckOn(v, t), nil
	case *core.PatCons:
		v, m, err := tcs.inspect(t)
		if err != nil || m != nil {
			return derefMatch(m), err
		}
		cons, ok := v.(*core.Cons)
		if !ok {
			return stuckOn(v, t), nil
		}
		if cons.Head.Cons != p.Head.Cons {
			return Match{Kind: No}, nil
		}
		sub, err := tcs.matchPats(p.Args, cons.Args)
		if err != nil {
			return Match{}, err
		}
		return matchYes(true, nil).Combine(sub), nil
	default:
		spew.Dump(p)
		panic("unreachable")
	}
}

// inspect simplifies t for a pattern that needs its head. A blocked
// reduction becomes a Dunno.
func (tcs *TCS) inspect(t core.Term) (core.Val, *Match, error) {
	v, err := tcs.Simplify(t)
	var blocked *BlockedError
	if errors.As(err, &blocked) {
		return nil, Ptr(matchDunno(blocked.Blocked.Stuck)), nil
	}
	return v, nil, err
}

func derefMatch(m *Match) Match {
	if m == nil {
		return Match{}
	}
	return *m
}

func stuckOn(v core.Val, t core.Term) Match {
	if meta, ok := v.(*core.Meta); ok {
		return matchDunno(StuckOnMeta(meta.Index))
	}
	return matchDunno(StuckOnElim(&core.App{Arg: t}))
}
