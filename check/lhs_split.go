package check

import (
	"github.com/owo-lang/narc/abs"
	. "github.com/owo-lang/narc/common"
	"github.com/owo-lang/narc/core"
	"github.com/samber/lo"
)

// split performs a constructor or refl split on equation i.
func (tcs *TCS) split(s *lhsState, i int) error {
	eq := s.eqs[i]
	var x DBI
	var ok bool
	err := tcs.within(s, len(s.tele), func() (err error) {
		x, ok, err = tcs.IsEtaVar(eq.inst)
		return err
	})
	if err != nil {
		return err
	}
	if !ok {
		return &SplitOnNonVar{Pat: eq.pat, Term: eq.inst}
	}
	switch pat := eq.pat.(type) {
	case *abs.PatCons:
		return tcs.splitCons(s, i, x, pat)
	case *abs.PatRefl:
		return tcs.splitRefl(s, i, x, pat)
	default:
		panic("unreachable")
	}
}

// splitCons replaces Δ1 (x : D args) Δ2 by Δ1 Φ Δ2[c Φ/x], where Φ are
// the parameters of the constructor.
func (tcs *TCS) splitCons(s *lhsState, i int, x DBI, pat *abs.PatCons) error {
	pos := len(s.tele) - 1 - int(x)
	delta1, delta2 := s.tele[:pos], s.tele[pos+1:]
	var data *core.Data
	err := tcs.within(s, pos, func() (err error) {
		data, err = tcs.expectData(s.tele[pos].Type, pat.Loc())
		return err
	})
	if err != nil {
		return err
	}
	cons, ok := tcs.Def(pat.GI).(*core.ConsDecl)
	if !ok || cons.Data != data.Def {
		return &CantFindPattern{Ident: pat.Ident, Data: data}
	}
	phi := core.SubstTele(cons.Params, core.Parallel(data.Args))
	if len(pat.Args) != len(phi) {
		return textf("`%v` takes %d arguments, but the pattern at %v has %d.",
			pat.Ident.Text, len(phi), pat.Loc(), len(pat.Args))
	}
	m := DBI(len(phi))
	head := core.ConHead{Name: cons.Name, Cons: pat.GI, Data: data.Def}
	rho := core.ConsSub(&core.Cons{Head: head, Args: core.TeleVars(len(phi), 0)}, core.Raise(m))
	sigma := core.Lift(rho, x)

	tele := append(append(Clone(delta1), phi...), core.SubstTele(delta2, rho)...)
	args := lo.Times(len(phi), func(j int) core.Pat {
		return &core.PatVar{Index: x + m - 1 - DBI(j)}
	})
	s.substitute(tele, sigma, map[DBI]core.Pat{x: &core.PatCons{Head: head, Args: args}})

	sub := lo.Map(pat.Args, func(p abs.Pat, j int) equation {
		return equation{
			pat:  p,
			inst: core.NewVar(x + m - 1 - DBI(j)),
			ty:   core.RaiseTerm(phi[j].Type, m-DBI(j)+x),
		}
	})
	s.eqs = append(append(Clone(s.eqs[:i]), sub...), s.eqs[i+1:]...)
	return nil
}

// splitRefl replaces x : Id A a b by refl. When one side is a variable
// that the other does not depend on, that variable is solved away;
// otherwise both sides must unify.
func (tcs *TCS) splitRefl(s *lhsState, i int, x DBI, pat *abs.PatRefl) error {
	pos := len(s.tele) - 1 - int(x)
	delta1, delta2 := s.tele[:pos], s.tele[pos+1:]
	var id *core.Id
	err := tcs.within(s, pos, func() (err error) {
		id, err = tcs.expectId(s.tele[pos].Type, pat.Loc())
		return err
	})
	if err != nil {
		return err
	}
	refl := core.One(&core.Refl{})
	sigma1 := core.Lift(refl, x)
	delta2 = core.SubstTele(delta2, refl)
	fixed := map[DBI]core.Pat{x: &core.PatRefl{}}

	y, solved, ok := solvable(id.LHS, id.RHS)
	if !ok {
		err := tcs.within(s, pos, func() error {
			return tcs.Unify(id.LHS, id.RHS)
		})
		if err != nil {
			return Wrap(err, pat.Loc())
		}
		s.substitute(append(Clone(delta1), delta2...), sigma1, fixed)
		s.eqs = append(Clone(s.eqs[:i]), s.eqs[i+1:]...)
		return nil
	}

	// Δ1 = Θ1 (y : T) Θ2, and solved lives in Θ1.
	one := core.One(solved)
	ypos := pos - 1 - int(y)
	theta1, theta2 := delta1[:ypos], delta1[ypos+1:]
	tele := append(Clone(theta1), core.SubstTele(theta2, one)...)
	tele = append(tele, core.SubstTele(delta2, core.Lift(one, y))...)
	sigma := core.Compose(core.Lift(one, y+x), sigma1)
	fixed[y+x+1] = &core.PatForced{Term: core.Lookup(sigma, y+x+1)}

	s.substitute(tele, sigma, fixed)
	s.eqs = append(Clone(s.eqs[:i]), s.eqs[i+1:]...)
	return nil
}

// solvable looks for a side of a = b that is a variable y not occurring
// in the other side, which must only depend on binders before y. It
// returns y and the other side moved in front of y.
func solvable(a, b core.Term) (DBI, core.Term, bool) {
	try := func(v, t core.Term) (DBI, core.Term, bool) {
		y, ok := core.AsVar(v)
		if !ok {
			return 0, nil, false
		}
		for _, i := range core.FreeVars(t).Slice() {
			if i <= y {
				return 0, nil, false
			}
		}
		return y, core.Substitute(t, core.Lower(y+1)), true
	}
	if y, t, ok := try(b, a); ok {
		return y, t, true
	}
	return try(a, b)
}
