package check

import (
	"fmt"
	"strings"

	"github.com/owo-lang/narc/abs"
	. "github.com/owo-lang/narc/common"
	"github.com/owo-lang/narc/core"
	"github.com/samber/lo"
)

// Lhs is an elaborated clause head. Pats, Target and the values of AsBinds
// live in Tele. PatSub sends the parameters of the function to the
// patterns as terms.
type Lhs struct {
	Tele    core.Tele
	Absurd  bool
	Pats    []core.Copat
	Target  core.Term
	PatSub  core.Subst
	AsBinds []core.Let
}

func (l *Lhs) String() string {
	pats := lo.Map(l.Pats, func(p core.Copat, _ int) string { return p.String() })
	return fmt.Sprintf("%v ⊢ %v : %v", l.Tele, strings.Join(pats, " "), l.Target)
}

// equation says that the user pattern pat must match inst, a term of type
// ty. Both terms live in the current telescope.
type equation struct {
	pat  abs.Pat
	inst core.Term
	ty   core.Term
}

func (e equation) String() string {
	return fmt.Sprintf("%v = %v : %v", e.pat, e.inst, e.ty)
}

// lhsState is the clause head being elaborated: what has been introduced
// so far, what is left to match, and what still has to be split.
type lhsState struct {
	tele   core.Tele
	pats   []core.Copat
	todo   []abs.Copat
	eqs    []equation
	target core.Term

	fn   GI
	name Ident
}

// CheckLhs elaborates the patterns of a clause of fn against its
// signature.
func (tcs *TCS) CheckLhs(fn GI, name Ident, signature core.Term, pats []abs.Copat) (lhs *Lhs, err error) {
	err = tcs.judgment(
		func() string { return fmt.Sprintf("Checking patterns of %v", name.Text) },
		func() string { return fmt.Sprintf("lhs %v", lhs) },
		func() error {
			lhs, err = tcs.checkLhs(fn, name, signature, pats)
			return err
		},
	)
	return lhs, err
}

func (tcs *TCS) checkLhs(fn GI, name Ident, signature core.Term, pats []abs.Copat) (*Lhs, error) {
	s := &lhsState{todo: pats, target: signature, fn: fn, name: name}
	for len(s.todo) > 0 {
		if _, ok := s.todo[0].(*abs.CopatApp); !ok {
			break
		}
		if err := tcs.intro(s); err != nil {
			return nil, err
		}
	}
	for {
		if i := s.nextSplit(); i >= 0 {
			if err := tcs.split(s, i); err != nil {
				return nil, err
			}
			continue
		}
		if len(s.todo) == 0 {
			return tcs.classify(s)
		}
		var err error
		switch c := s.todo[0].(type) {
		case *abs.CopatApp:
			err = tcs.intro(s)
		case *abs.CopatProj:
			err = tcs.cosplit(s, c)
		}
		if err != nil {
			return nil, err
		}
	}
}

func (s *lhsState) nextSplit() int {
	for i, eq := range s.eqs {
		switch eq.pat.(type) {
		case *abs.PatCons, *abs.PatRefl:
			return i
		}
	}
	return -1
}

// within runs f with Gamma set to the first n binders of the telescope.
func (tcs *TCS) within(s *lhsState, n int, f func() error) error {
	return tcs.Swapped(s.tele[:n], nil, f)
}

// intro takes one parameter off the target. An implicit parameter without
// a matching implicit pattern gets a wildcard.
func (tcs *TCS) intro(s *lhsState) error {
	c := s.todo[0].(*abs.CopatApp)
	var target core.Val
	err := tcs.within(s, len(s.tele), func() (err error) {
		target, err = tcs.whnf(s.target)
		return err
	})
	if err != nil {
		return err
	}
	pi, ok := target.(*core.Pi)
	if !ok {
		return &NotPi{Type: target, At: c.Loc()}
	}
	var pat abs.Pat
	switch {
	case pi.Param.Licit == c.Licit:
		pat = c.Pat
		s.todo = s.todo[1:]
	case pi.Param.Licit == Im:
		pat = tcs.wildcard(c.Loc())
	default:
		return textf("Expected an explicit pattern, got `%v` (at %v).", c, c.Loc())
	}
	tcs.pushParam(s, pi, pat)
	return nil
}

func (tcs *TCS) wildcard(at Loc) abs.Pat {
	return &abs.PatVar{Ident: Ident{Text: "_", Loc: at}, UID: tcs.Names.Fresh()}
}

// pushParam extends the telescope with the parameter of pi and records
// that it must match pat.
func (tcs *TCS) pushParam(s *lhsState, pi *core.Pi, pat abs.Pat) {
	up := core.Raise(1)
	s.eqs = lo.Map(s.eqs, func(eq equation, _ int) equation {
		return equation{pat: eq.pat, inst: core.Substitute(eq.inst, up), ty: core.Substitute(eq.ty, up)}
	})
	s.pats = lo.Map(s.pats, func(p core.Copat, _ int) core.Copat {
		return core.RenameCopat(p, up, nil)
	})
	s.eqs = append(s.eqs, equation{pat: pat, inst: core.NewVar(0), ty: core.RaiseTerm(pi.Param.Type, 1)})
	s.pats = append(s.pats, &core.CopatApp{Licit: pi.Param.Licit, Pat: &core.PatVar{Index: 0}})
	s.tele = append(Clone(s.tele), pi.Param)
	s.target = pi.Body.Body
}

// cosplit handles a projection pattern: the target must be a record type
// and becomes the type of the field.
func (tcs *TCS) cosplit(s *lhsState, c *abs.CopatProj) error {
	var target core.Val
	err := tcs.within(s, len(s.tele), func() (err error) {
		target, err = tcs.whnf(s.target)
		return err
	})
	if err != nil {
		return err
	}
	switch t := target.(type) {
	case *core.Pi:
		if t.Param.Licit == Im {
			tcs.pushParam(s, t, tcs.wildcard(c.Loc()))
			return nil
		}
		return &CantCosplit{Ident: c.Ident, Target: t}
	case *core.Data:
		if t.Kind != core.Coinductive {
			break
		}
		codata := tcs.Def(t.Def).(*core.CodataDecl)
		if !lo.Contains(codata.Fields, c.GI) {
			return &NoSuchProj{Ident: c.Ident}
		}
		field := tcs.Def(c.GI).(*core.ProjDecl)
		elims := lo.Map(s.pats, func(p core.Copat, _ int) core.Elim { return core.CopatToElim(p) })
		self := &core.Redex{Def: s.fn, Name: s.name, Elims: elims}
		s.target = core.Substitute(field.Type, core.Parallel(append(Clone(t.Args), self)))
		s.pats = append(s.pats, &core.CopatProj{Field: c.Ident.Text})
		s.todo = s.todo[1:]
		return nil
	}
	return &NotCodata{Type: target, At: c.Loc()}
}

// substitute moves the whole state along sigma, with the telescope
// replaced by tele.
func (s *lhsState) substitute(tele core.Tele, sigma core.Subst, fixed map[DBI]core.Pat) {
	s.tele = tele
	s.eqs = lo.Map(s.eqs, func(eq equation, _ int) equation {
		return equation{pat: eq.pat, inst: core.Substitute(eq.inst, sigma), ty: core.Substitute(eq.ty, sigma)}
	})
	s.pats = lo.Map(s.pats, func(p core.Copat, _ int) core.Copat {
		return core.RenameCopat(p, sigma, fixed)
	})
	s.target = core.Substitute(s.target, sigma)
}
