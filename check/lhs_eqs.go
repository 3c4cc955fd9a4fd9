package check

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/owo-lang/narc/abs"
	. "github.com/owo-lang/narc/common"
	"github.com/owo-lang/narc/core"
	"github.com/samber/lo"
)

// classify settles the equations left once nothing can be split: variable
// patterns name binders, absurd patterns are checked to be empty, and
// forced patterns are checked against what the split made of them.
func (tcs *TCS) classify(s *lhsState) (*Lhs, error) {
	tele := Clone(s.tele)
	var lets []core.Let
	var absurd []DBI
	var forced []equation
	renamed := map[DBI]bool{}

	for _, eq := range s.eqs {
		switch pat := eq.pat.(type) {
		case *abs.PatVar:
			x, ok, err := tcs.etaVarIn(s, eq.inst)
			if err != nil {
				return nil, err
			}
			if ok && !renamed[x] {
				renamed[x] = true
				b := &tele[len(tele)-1-int(x)]
				b.Name, b.Ident = pat.UID, pat.Ident
				continue
			}
			let := core.Let{
				Bind:  core.NewBind(Ex, pat.UID, pat.Ident, eq.ty),
				Val:   eq.inst,
				Depth: len(tele),
			}
			lets = append(lets, let)
		case *abs.PatAbsurd:
			x, err := tcs.checkAbsurd(s, eq, pat)
			if err != nil {
				return nil, err
			}
			absurd = append(absurd, x)
		case *abs.PatForced:
			forced = append(forced, eq)
		default:
			spew.Dump(pat)
			panic("unreachable")
		}
	}

	for _, eq := range forced {
		pat := eq.pat.(*abs.PatForced)
		err := tcs.Swapped(tele, lets, func() error {
			t, err := tcs.Check(pat.Term, eq.ty)
			if err != nil {
				return err
			}
			return Wrap(tcs.Unify(t, eq.inst), pat.Loc())
		})
		if err != nil {
			return nil, err
		}
	}

	var apps []core.Term
	for _, p := range s.pats {
		if app, ok := p.(*core.CopatApp); ok {
			apps = append(apps, core.PatToTerm(app.Pat))
		}
	}
	pats := s.pats
	if len(absurd) > 0 {
		fixed := lo.Associate(absurd, func(x DBI) (DBI, core.Pat) { return x, &core.PatAbsurd{} })
		pats = lo.Map(pats, func(p core.Copat, _ int) core.Copat {
			return core.RenameCopat(p, core.Identity, fixed)
		})
	}
	return &Lhs{
		Tele:    tele,
		Absurd:  len(absurd) > 0,
		Pats:    pats,
		Target:  s.target,
		PatSub:  core.Parallel(apps),
		AsBinds: lets,
	}, nil
}

func (tcs *TCS) etaVarIn(s *lhsState, t core.Term) (x DBI, ok bool, err error) {
	err = tcs.within(s, len(s.tele), func() error {
		x, ok, err = tcs.IsEtaVar(t)
		return err
	})
	return x, ok, err
}

// checkAbsurd makes sure an absurd pattern stands for a variable of an
// empty datatype.
func (tcs *TCS) checkAbsurd(s *lhsState, eq equation, pat *abs.PatAbsurd) (DBI, error) {
	x, ok, err := tcs.etaVarIn(s, eq.inst)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, &SplitOnNonVar{Pat: pat, Term: eq.inst}
	}
	var ty core.Val
	err = tcs.within(s, len(s.tele), func() (err error) {
		ty, err = tcs.whnf(eq.ty)
		return err
	})
	if err != nil {
		return 0, err
	}
	if d, ok := ty.(*core.Data); ok && d.Kind == core.Inductive {
		if len(tcs.Def(d.Def).(*core.DataDecl).Conses) == 0 {
			return x, nil
		}
	}
	return 0, &NotEmpty{Type: ty, At: pat.Loc()}
}
