package desugar

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/hashicorp/go-set/v2"
	"github.com/owo-lang/narc/abs"
	"github.com/owo-lang/narc/parse"
)

type patState struct {
	bound  *set.Set[string]
	forced []forcedPat
}

type forcedPat struct {
	pat  *abs.PatForced
	expr parse.Expr
}

// copatterns binds every pattern variable in order, then desugars the dotted
// terms so they can mention variables bound to their right.
func (s *State) copatterns(pats []parse.Copattern) ([]abs.Copat, error) {
	ps := &patState{bound: set.New[string](len(pats))}
	out := make([]abs.Copat, 0, len(pats))
	for _, c := range pats {
		switch c := c.(type) {
		case *parse.CopatPat:
			p, err := s.pattern(ps, c.Pat)
			if err != nil {
				return nil, err
			}
			out = append(out, &abs.CopatApp{Licit: c.Licit, Pat: p})
		case *parse.CopatProj:
			gi, kind, ok := s.Lookup(c.Ident.Text)
			if !ok {
				return nil, &UnresolvedReference{Ident: c.Ident}
			}
			if kind != KindProj {
				return nil, &NotProj{Ident: c.Ident}
			}
			out = append(out, &abs.CopatProj{Ident: c.Ident, GI: gi})
		default:
			spew.Dump(c)
			panic("unreachable")
		}
	}
	for _, f := range ps.forced {
		term, err := s.expr(f.expr)
		if err != nil {
			return nil, err
		}
		f.pat.Term = term
	}
	return out, nil
}

func (s *State) pattern(ps *patState, p parse.Pattern) (abs.Pat, error) {
	switch p := p.(type) {
	case *parse.PatIdent:
		if gi, kind, ok := s.Lookup(p.Ident.Text); ok && kind == KindCons {
			return &abs.PatCons{Ident: p.Ident, GI: gi}, nil
		}
		if ps.bound.Contains(p.Ident.Text) {
			return nil, &NonLinearPattern{Ident: p.Ident}
		}
		ps.bound.Insert(p.Ident.Text)
		return &abs.PatVar{Ident: p.Ident, UID: s.bindLocal(p.Ident)}, nil
	case *parse.PatWild:
		return &abs.PatVar{Ident: p.Ident, UID: s.bindLocal(p.Ident)}, nil
	case *parse.PatRefl:
		return &abs.PatRefl{Ident: p.Ident}, nil
	case *parse.PatAbsurd:
		return &abs.PatAbsurd{At: p.At}, nil
	case *parse.PatApp:
		gi, kind, ok := s.Lookup(p.Ident.Text)
		if !ok {
			return nil, &UnresolvedReference{Ident: p.Ident}
		}
		if kind != KindCons {
			return nil, &NotCons{Ident: p.Ident}
		}
		args := make([]abs.Pat, 0, len(p.Args))
		for _, arg := range p.Args {
			a, err := s.pattern(ps, arg)
			if err != nil {
				return nil, err
			}
			args = append(args, a)
		}
		return &abs.PatCons{Ident: p.Ident, GI: gi, Args: args}, nil
	case *parse.PatDot:
		forced := &abs.PatForced{At: p.At}
		ps.forced = append(ps.forced, forcedPat{pat: forced, expr: p.Expr})
		return forced, nil
	default:
		spew.Dump(p)
		panic("unreachable")
	}
}
