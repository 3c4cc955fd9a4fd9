package desugar

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/owo-lang/narc/abs"
	. "github.com/owo-lang/narc/common"
	"github.com/owo-lang/narc/parse"
)

func (s *State) Decl(decl parse.Decl) error {
	switch decl := decl.(type) {
	case *parse.DeclDefinition:
		return s.definition(decl)
	case *parse.DeclClause:
		return s.clause(decl)
	case *parse.DeclData:
		return s.data(decl)
	case *parse.DeclCodata:
		return s.codata(decl)
	default:
		spew.Dump(decl)
		panic("unreachable")
	}
}

func (s *State) definition(decl *parse.DeclDefinition) error {
	if err := s.define(decl.Ident, KindDefn, s.next()); err != nil {
		return err
	}
	ty, err := s.expr(decl.Type)
	if err != nil {
		return err
	}
	s.push(&abs.DefnDecl{Ident: decl.Ident, Type: ty})
	return nil
}

func (s *State) data(decl *parse.DeclData) error {
	gi := s.next()
	if err := s.define(decl.Ident, KindData, gi); err != nil {
		return err
	}
	mark := s.scope()
	defer s.restore(mark)
	tele, err := s.params(decl.Params)
	if err != nil {
		return err
	}
	conses := make([]GI, len(decl.Conses))
	for i := range decl.Conses {
		conses[i] = gi + GI(i+1)
	}
	s.push(&abs.DataDecl{Ident: decl.Ident, Level: decl.Level, Tele: tele, Conses: conses})
	for _, cons := range decl.Conses {
		if err := s.define(cons.Ident, KindCons, s.next()); err != nil {
			return err
		}
		inner := s.scope()
		ctele, err := s.params(cons.Params)
		s.restore(inner)
		if err != nil {
			return err
		}
		s.push(&abs.ConsDecl{Ident: cons.Ident, Tele: ctele, Data: gi})
	}
	return nil
}

func (s *State) codata(decl *parse.DeclCodata) error {
	gi := s.next()
	if err := s.define(decl.Ident, KindCodata, gi); err != nil {
		return err
	}
	mark := s.scope()
	defer s.restore(mark)
	tele, err := s.params(decl.Params)
	if err != nil {
		return err
	}
	self := Ident{Text: "_", Loc: decl.Ident.Loc}
	if decl.Self != nil {
		self = *decl.Self
	}
	fields := make([]GI, len(decl.Fields))
	for i := range decl.Fields {
		fields[i] = gi + GI(i+1)
	}
	selfRef := s.bindLocal(self)
	s.push(&abs.CodataDecl{
		Ident:   decl.Ident,
		Self:    self,
		SelfRef: selfRef,
		Level:   decl.Level,
		Tele:    tele,
		Fields:  fields,
	})
	for _, field := range decl.Fields {
		if err := s.define(field.Ident, KindProj, s.next()); err != nil {
			return err
		}
		ty, err := s.expr(field.Type)
		if err != nil {
			return err
		}
		s.push(&abs.ProjDecl{Ident: field.Ident, Type: ty, Codata: gi})
	}
	return nil
}

func (s *State) clause(decl *parse.DeclClause) error {
	gi, kind, ok := s.Lookup(decl.Ident.Text)
	if !ok {
		return &UnresolvedReference{Ident: decl.Ident}
	}
	if kind != KindDefn {
		return &NotDefn{Ident: decl.Ident}
	}
	mark := s.scope()
	defer s.restore(mark)
	pats, err := s.copatterns(decl.Patterns)
	if err != nil {
		return err
	}
	var body abs.Abs
	if decl.Body != nil {
		if body, err = s.expr(decl.Body); err != nil {
			return err
		}
	}
	s.push(&abs.ClauseDecl{Ident: decl.Ident, Defn: gi, Patterns: pats, Body: body})
	return nil
}
