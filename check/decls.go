package check

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/owo-lang/narc/abs"
	. "github.com/owo-lang/narc/common"
	"github.com/owo-lang/narc/core"
	"github.com/owo-lang/narc/desugar"
)

// CheckDecls type checks a whole desugared file. On failure the partial
// signature is dropped.
func CheckDecls(ds *desugar.State) (*TCS, error) {
	tcs := New(ds)
	if err := tcs.CheckDecls(ds.Decls); err != nil {
		return nil, err
	}
	return tcs, nil
}

// CheckDecls checks decls in order, appending each to Sigma. Every
// declaration gets its own meta context, which must be fully solved by
// the time it is done.
func (tcs *TCS) CheckDecls(decls []abs.Decl) error {
	for _, d := range decls {
		if err := tcs.CheckDecl(d); err != nil {
			return err
		}
	}
	return nil
}

func (tcs *TCS) CheckDecl(d abs.Decl) error {
	gi := GI(len(tcs.Sigma))
	tcs.EnterDef(gi, d.DeclName())
	return tcs.judgment(
		func() string { return fmt.Sprintf("Checking declaration %v", d) },
		func() string { return fmt.Sprintf("%v", tcs.Sigma[gi]) },
		func() error { return tcs.checkDecl(gi, d) },
	)
}

func (tcs *TCS) checkDecl(gi GI, d abs.Decl) error {
	omega := core.NewType(Omega)
	switch d := d.(type) {
	case *abs.DataDecl:
		return tcs.CheckTele(d.Tele, omega, func(params core.Tele) error {
			if err := tcs.ExitDef(); err != nil {
				return err
			}
			params, err := tcs.ZonkTele(params, 0)
			if err != nil {
				return err
			}
			tcs.push(gi, &core.DataDecl{Name: d.Ident, Params: params, Conses: d.Conses, Level: d.Level})
			return nil
		})
	case *abs.ConsDecl:
		data := tcs.Def(d.Data).(*core.DataDecl)
		return tcs.Under(data.Params, func() error {
			return tcs.CheckTele(d.Tele, core.NewType(data.Level), func(params core.Tele) error {
				if err := tcs.ExitDef(); err != nil {
					return err
				}
				params, err := tcs.ZonkTele(params, DBI(len(data.Params)))
				if err != nil {
					return err
				}
				tcs.push(gi, &core.ConsDecl{Name: d.Ident, Params: params, Data: d.Data})
				return nil
			})
		})
	case *abs.CodataDecl:
		return tcs.CheckTele(d.Tele, omega, func(params core.Tele) error {
			if err := tcs.ExitDef(); err != nil {
				return err
			}
			params, err := tcs.ZonkTele(params, 0)
			if err != nil {
				return err
			}
			tcs.push(gi, &core.CodataDecl{
				Name:    d.Ident,
				SelfRef: d.SelfRef,
				Params:  params,
				Fields:  d.Fields,
				Level:   d.Level,
			})
			return nil
		})
	case *abs.ProjDecl:
		codata := tcs.Def(d.Codata).(*core.CodataDecl)
		selfTy := core.NewRedex(d.Codata, codata.Name, core.TeleVars(len(codata.Params), 0)...)
		self := core.NewBind(Ex, codata.SelfRef, Ident{Text: "self", Loc: codata.Name.Loc}, selfTy)
		ctx := append(Clone(codata.Params), self)
		return tcs.Under(ctx, func() error {
			ty, err := tcs.Check(d.Type, core.NewType(codata.Level))
			if err != nil {
				return err
			}
			if err := tcs.ExitDef(); err != nil {
				return err
			}
			if ty, err = tcs.Zonk(ty, DBI(len(ctx))); err != nil {
				return err
			}
			tcs.push(gi, &core.ProjDecl{Name: d.Ident, Codata: d.Codata, Type: ty})
			return nil
		})
	case *abs.DefnDecl:
		ty, err := tcs.Check(d.Type, omega)
		if err != nil {
			return err
		}
		if err := tcs.ExitDef(); err != nil {
			return err
		}
		if ty, err = tcs.Zonk(ty, 0); err != nil {
			return err
		}
		tcs.push(gi, &core.FuncDecl{Name: d.Ident, Signature: ty})
		return nil
	case *abs.ClauseDecl:
		tcs.push(gi, &core.ClausePlaceholder{Name: d.Ident})
		cls, err := tcs.CheckClause(d)
		if err != nil {
			return err
		}
		if err := tcs.ExitDef(); err != nil {
			return err
		}
		if cls, err = tcs.ZonkClause(cls); err != nil {
			return err
		}
		fn := tcs.Def(d.Defn).(*core.FuncDecl)
		fn.Clauses = append(fn.Clauses, cls)
		return nil
	default:
		spew.Dump(d)
		panic("unreachable")
	}
}

func (tcs *TCS) push(gi GI, decl core.Decl) {
	Assertf(int(gi) == len(tcs.Sigma), "declaration %v pushed out of order", decl.DeclName())
	tcs.Sigma = append(tcs.Sigma, decl)
}
