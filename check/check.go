package check

import (
	"fmt"

	"github.com/owo-lang/narc/abs"
	. "github.com/owo-lang/narc/common"
	"github.com/owo-lang/narc/core"
)

// Check elaborates a against the type `against`.
func (tcs *TCS) Check(a abs.Abs, against core.Term) (term core.Term, err error) {
	err = tcs.judgment(
		func() string { return fmt.Sprintf("Checking %v : %v", a, against) },
		func() string { return fmt.Sprintf("⊢ %v : %v ↓ %v", a, against, term) },
		func() error {
			term, err = tcs.check(a, against)
			return err
		},
	)
	return term, err
}

func (tcs *TCS) check(a abs.Abs, against core.Term) (core.Term, error) {
	if m, ok := a.(*abs.Meta); ok {
		return tcs.metaFor(m), nil
	}
	ty, err := tcs.reduce(against)
	if err != nil {
		return nil, err
	}
	switch a := a.(type) {
	case *abs.Type:
		if upper, ok := ty.(*core.Type); ok {
			if a.Level < upper.Level {
				return core.NewType(a.Level), nil
			}
			return nil, &DifferentLevel{At: a.Loc(), Actual: a.Level.Succ(), Upper: upper.Level}
		}
	case *abs.Pi:
		if upper, ok := ty.(*core.Type); ok {
			return tcs.checkPi(a, upper)
		}
	case *abs.Id:
		if upper, ok := ty.(*core.Type); ok {
			return tcs.checkId(a, upper)
		}
	case *abs.Refl:
		id, err := tcs.expectId(ty, a.Loc())
		if err != nil {
			return nil, err
		}
		if err := tcs.Unify(id.LHS, id.RHS); err != nil {
			return nil, Wrap(err, a.Loc())
		}
		return &core.Refl{}, nil
	}
	return tcs.checkFallback(a, ty)
}

func (tcs *TCS) checkPi(a *abs.Pi, upper *core.Type) (core.Term, error) {
	paramTy, err := tcs.Check(a.Bind.Type, upper)
	if err != nil {
		return nil, err
	}
	bind := core.NewBind(a.Bind.Licit, a.Bind.Name, a.Bind.Ident, paramTy)
	var body core.Term
	err = tcs.Under(core.Tele{bind}, func() (err error) {
		body, err = tcs.Check(a.Body, upper)
		return err
	})
	if err != nil {
		return nil, err
	}
	return core.NewPi(bind, body), nil
}

func (tcs *TCS) checkId(a *abs.Id, upper *core.Type) (core.Term, error) {
	ty, err := tcs.Check(a.Type, upper)
	if err != nil {
		return nil, err
	}
	elemTy, err := tcs.whnf(ty)
	if err != nil {
		return nil, err
	}
	lhs, err := tcs.Check(a.LHS, elemTy)
	if err != nil {
		return nil, err
	}
	rhs, err := tcs.Check(a.RHS, elemTy)
	if err != nil {
		return nil, err
	}
	return &core.Id{Type: ty, LHS: lhs, RHS: rhs}, nil
}

// checkFallback infers a type and compares it with the expected one.
// Trailing implicit arguments are filled in unless an implicit function is
// expected.
func (tcs *TCS) checkFallback(a abs.Abs, against core.Term) (core.Term, error) {
	term, inferred, err := tcs.Infer(a)
	if err != nil {
		return nil, err
	}
	if pi, ok := against.(*core.Pi); !ok || pi.Param.Licit != Im {
		var elims []core.Elim
		if inferred, err = tcs.insertImplicits(inferred, &elims); err != nil {
			return nil, err
		}
		term = core.ApplyElims(term, elims)
	}
	if err := tcs.Subtype(inferred, against); err != nil {
		return nil, Wrap(err, a.Loc())
	}
	return term, nil
}

// CheckTele checks each binder type against `against` and calls k with
// the telescope pushed onto Gamma.
func (tcs *TCS) CheckTele(tele abs.Tele, against core.Term, k func(core.Tele) error) error {
	out := make(core.Tele, 0, len(tele))
	var loop func(i int) error
	loop = func(i int) error {
		if i == len(tele) {
			return k(out)
		}
		b := tele[i]
		ty, err := tcs.Check(b.Type, against)
		if err != nil {
			return err
		}
		bind := core.NewBind(b.Licit, b.Name, b.Ident, ty)
		out = append(out, bind)
		return tcs.Under(core.Tele{bind}, func() error {
			return loop(i + 1)
		})
	}
	return loop(0)
}
