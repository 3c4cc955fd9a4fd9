package check

import (
	"fmt"

	"github.com/owo-lang/narc/abs"
	. "github.com/owo-lang/narc/common"
	"github.com/owo-lang/narc/core"
	"github.com/samber/lo"
)

// Infer synthesizes the type of a and returns its core term alongside.
func (tcs *TCS) Infer(a abs.Abs) (term core.Term, ty core.Term, err error) {
	err = tcs.judgment(
		func() string { return fmt.Sprintf("Inferring %v", a) },
		func() string { return fmt.Sprintf("⊢ %v : %v ↑ %v", a, ty, term) },
		func() error {
			term, ty, err = tcs.infer(a)
			return err
		},
	)
	return term, ty, err
}

func (tcs *TCS) infer(a abs.Abs) (core.Term, core.Term, error) {
	switch a := a.(type) {
	case *abs.Type:
		return core.NewType(a.Level), core.NewType(a.Level.Succ()), nil
	case *abs.Meta:
		return tcs.metaFor(a), tcs.FreshMeta(), nil
	case *abs.Pi:
		return tcs.inferPi(a)
	case *abs.Id:
		return tcs.inferId(a)
	case *abs.Refl:
		return nil, nil, textf("Cannot infer the type of `refl` at %v.", a.Loc())
	}
	head, args := abs.AppView(a)
	term, ty, err := tcs.InferHead(head)
	if err != nil {
		return nil, nil, err
	}
	elims := make([]core.Elim, 0, len(args))
	for _, arg := range args {
		fty, err := tcs.insertImplicits(ty, &elims)
		if err != nil {
			return nil, nil, err
		}
		switch fty := fty.(type) {
		case *core.Pi:
			paramTy, err := tcs.reduce(fty.Param.Type)
			if err != nil {
				return nil, nil, err
			}
			argTerm, err := tcs.Check(arg, paramTy)
			if err != nil {
				return nil, nil, err
			}
			elims = append(elims, &core.App{Arg: argTerm})
			ty = fty.Body.Instantiate(argTerm)
		case *core.Data:
			if fty.Kind != core.Coinductive {
				return nil, nil, &NotPi{Type: fty, At: arg.Loc()}
			}
			proj, ok := arg.(*abs.Proj)
			if !ok {
				return nil, nil, &NotProj{Abs: arg}
			}
			self := core.ApplyElims(term, elims)
			fieldTy, err := tcs.fieldType(fty, proj, self)
			if err != nil {
				return nil, nil, err
			}
			elims = append(elims, &core.Proj{Field: proj.Ident.Text})
			ty = fieldTy
		default:
			return nil, nil, &NotPi{Type: fty, At: arg.Loc()}
		}
	}
	return core.ApplyElims(term, elims), ty, nil
}

// insertImplicits fills leading implicit parameters of ty with fresh metas.
func (tcs *TCS) insertImplicits(ty core.Term, elims *[]core.Elim) (core.Term, error) {
	for {
		v, err := tcs.reduce(ty)
		if err != nil {
			return nil, err
		}
		pi, ok := v.(*core.Pi)
		if !ok || pi.Param.Licit != Im {
			return v, nil
		}
		meta := tcs.FreshMeta()
		*elims = append(*elims, &core.App{Arg: meta})
		ty = pi.Body.Instantiate(meta)
	}
}

// fieldType is the type of self projected by proj, where self has the
// record type codata.
func (tcs *TCS) fieldType(codata *core.Data, proj *abs.Proj, self core.Term) (core.Term, error) {
	decl := tcs.Def(codata.Def).(*core.CodataDecl)
	if !lo.Contains(decl.Fields, proj.GI) {
		return nil, &DifferentFieldCodata{Field: proj.Ident, Codata: decl.Name}
	}
	field := tcs.Def(proj.GI).(*core.ProjDecl)
	return core.Substitute(field.Type, core.Parallel(append(Clone(codata.Args), self))), nil
}

func (tcs *TCS) inferPi(a *abs.Pi) (core.Term, core.Term, error) {
	paramTy, paramSort, err := tcs.Infer(a.Bind.Type)
	if err != nil {
		return nil, nil, err
	}
	l1, err := tcs.expectType(paramSort, a.Bind.Type.Loc())
	if err != nil {
		return nil, nil, err
	}
	bind := core.NewBind(a.Bind.Licit, a.Bind.Name, a.Bind.Ident, paramTy)
	var body core.Term
	var l2 Level
	err = tcs.Under(core.Tele{bind}, func() error {
		var bodySort core.Term
		var err error
		if body, bodySort, err = tcs.Infer(a.Body); err != nil {
			return err
		}
		l2, err = tcs.expectType(bodySort, a.Body.Loc())
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return core.NewPi(bind, body), core.NewType(max(l1, l2)), nil
}

func (tcs *TCS) inferId(a *abs.Id) (core.Term, core.Term, error) {
	ty, sort, err := tcs.Infer(a.Type)
	if err != nil {
		return nil, nil, err
	}
	level, err := tcs.expectType(sort, a.Type.Loc())
	if err != nil {
		return nil, nil, err
	}
	lhs, err := tcs.Check(a.LHS, ty)
	if err != nil {
		return nil, nil, err
	}
	rhs, err := tcs.Check(a.RHS, ty)
	if err != nil {
		return nil, nil, err
	}
	return &core.Id{Type: ty, LHS: lhs, RHS: rhs}, core.NewType(level), nil
}

func (tcs *TCS) expectType(t core.Term, at Loc) (Level, error) {
	v, err := tcs.whnf(t)
	if err != nil {
		return 0, err
	}
	if ty, ok := v.(*core.Type); ok {
		return ty.Level, nil
	}
	return 0, textf("`%v` is not a universe (at %v).", v, at)
}

// InferHead types the head of an application spine.
func (tcs *TCS) InferHead(a abs.Abs) (term core.Term, ty core.Term, err error) {
	err = tcs.judgment(
		func() string { return fmt.Sprintf("Head-inferring %v", a) },
		func() string { return fmt.Sprintf("⊢ %v : %v → %v", a, ty, term) },
		func() error {
			term, ty, err = tcs.inferHead(a)
			return err
		},
	)
	return term, ty, err
}

func (tcs *TCS) inferHead(a abs.Abs) (core.Term, core.Term, error) {
	var gi GI
	var name Ident
	switch a := a.(type) {
	case *abs.Var:
		return tcs.lookupVar(a)
	case *abs.Def:
		gi, name = a.GI, a.Ident
	case *abs.Cons:
		gi, name = a.GI, a.Ident
	case *abs.Proj:
		gi, name = a.GI, a.Ident
	default:
		return nil, nil, &NotHead{Abs: a}
	}
	if int(gi) >= len(tcs.Sigma) {
		return nil, nil, textf("`%v` is used before it is checked (at %v).", name.Text, name.Loc)
	}
	ty, err := tcs.TypeOfDecl(gi)
	if err != nil {
		return nil, nil, err
	}
	return core.NewRedex(gi, name), ty, nil
}

// TypeOfDecl is the signature of a global. Constructors and projections
// take the parameters of their type as implicit arguments.
func (tcs *TCS) TypeOfDecl(gi GI) (core.Term, error) {
	switch decl := tcs.Def(gi).(type) {
	case *core.DataDecl:
		return core.PiFromTele(decl.Params, core.NewType(decl.Level)), nil
	case *core.CodataDecl:
		return core.PiFromTele(decl.Params, core.NewType(decl.Level)), nil
	case *core.ConsDecl:
		data := tcs.Def(decl.Data).(*core.DataDecl)
		tele := append(implicit(data.Params), decl.Params...)
		vars := core.TeleVars(len(data.Params), DBI(len(decl.Params)))
		ret := core.NewRedex(decl.Data, data.Name, vars...)
		return core.PiFromTele(tele, ret), nil
	case *core.ProjDecl:
		codata := tcs.Def(decl.Codata).(*core.CodataDecl)
		selfTy := core.NewRedex(decl.Codata, codata.Name, core.TeleVars(len(codata.Params), 0)...)
		self := core.NewBind(Ex, codata.SelfRef, Ident{Text: "self", Loc: codata.Name.Loc}, selfTy)
		tele := append(implicit(codata.Params), self)
		return core.PiFromTele(tele, decl.Type), nil
	case *core.FuncDecl:
		return decl.Signature, nil
	default:
		return nil, textf("`%v` has no type.", decl.DeclName().Text)
	}
}

func implicit(tele core.Tele) core.Tele {
	return lo.Map(tele, func(b core.Bind, _ int) core.Bind {
		b.Licit = Im
		return b
	})
}
