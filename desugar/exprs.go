package desugar

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/owo-lang/narc/abs"
	. "github.com/owo-lang/narc/common"
	"github.com/owo-lang/narc/parse"
)

// Expr desugars a standalone expression in the global scope, returning it
// with the number of holes it contains.
func (s *State) Expr(e parse.Expr) (abs.Abs, int, error) {
	s.metas = 0
	a, err := s.expr(e)
	count := s.metas
	s.metas = 0
	return a, count, err
}

func (s *State) expr(e parse.Expr) (abs.Abs, error) {
	switch e := e.(type) {
	case *parse.ExprVar:
		return s.reference(e.Ident)
	case *parse.ExprType:
		return &abs.Type{Ident: e.Ident, Level: e.Level}, nil
	case *parse.ExprHole:
		return s.freshMeta(e.Ident), nil
	case *parse.ExprRefl:
		return &abs.Refl{Ident: e.Ident}, nil
	case *parse.ExprProj:
		gi, kind, ok := s.Lookup(e.Ident.Text)
		if !ok {
			return nil, &UnresolvedReference{Ident: e.Ident}
		}
		if kind != KindProj {
			return nil, &NotProj{Ident: e.Ident}
		}
		return &abs.Proj{Ident: e.Ident, GI: gi}, nil
	case *parse.ExprApp:
		f, err := s.expr(e.Head)
		if err != nil {
			return nil, err
		}
		for _, arg := range e.Args {
			a, err := s.expr(arg)
			if err != nil {
				return nil, err
			}
			f = &abs.App{F: f, A: a}
		}
		return f, nil
	case *parse.ExprPi:
		mark := s.scope()
		defer s.restore(mark)
		tele, err := s.params(e.Params)
		if err != nil {
			return nil, err
		}
		body, err := s.expr(e.Body)
		if err != nil {
			return nil, err
		}
		for i := len(tele) - 1; i >= 0; i-- {
			body = &abs.Pi{At: e.At, Bind: tele[i], Body: body}
		}
		return body, nil
	case *parse.ExprId:
		ty, err := s.expr(e.Type)
		if err != nil {
			return nil, err
		}
		lhs, err := s.expr(e.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := s.expr(e.RHS)
		if err != nil {
			return nil, err
		}
		return &abs.Id{At: e.At, Type: ty, LHS: lhs, RHS: rhs}, nil
	default:
		spew.Dump(e)
		panic("unreachable")
	}
}

func (s *State) reference(ident Ident) (abs.Abs, error) {
	if uid, ok := s.resolveLocal(ident.Text); ok {
		return &abs.Var{Ident: ident, UID: uid}, nil
	}
	gi, kind, ok := s.Lookup(ident.Text)
	if !ok {
		return nil, &UnresolvedReference{Ident: ident}
	}
	switch kind {
	case KindCons:
		return &abs.Cons{Ident: ident, GI: gi}, nil
	case KindProj:
		return &abs.Proj{Ident: ident, GI: gi}, nil
	default:
		return &abs.Def{Ident: ident, GI: gi}, nil
	}
}

// params flattens `(x y : A)` into one binder per name, leaving all of them
// in scope. The caller restores the scope.
func (s *State) params(params []parse.Param) (abs.Tele, error) {
	var tele abs.Tele
	for _, p := range params {
		ty, err := s.expr(p.Type)
		if err != nil {
			return nil, err
		}
		for _, name := range p.Names {
			uid := s.bindLocal(name)
			tele = append(tele, abs.Bind{Licit: p.Licit, Name: uid, Ident: name, Type: ty})
		}
	}
	return tele, nil
}
