package desugar

import (
	"github.com/owo-lang/narc/abs"
	. "github.com/owo-lang/narc/common"
	"github.com/owo-lang/narc/parse"
)

type GlobalKind int

const (
	KindData GlobalKind = iota
	KindCodata
	KindCons
	KindProj
	KindDefn
)

func (k GlobalKind) String() string {
	switch k {
	case KindData:
		return "data"
	case KindCodata:
		return "codata"
	case KindCons:
		return "constructor"
	case KindProj:
		return "projection"
	case KindDefn:
		return "definition"
	default:
		panic("unreachable")
	}
}

type global struct {
	Ident Ident
	GI    GI
	Kind  GlobalKind
}

type local struct {
	Name string
	UID  UID
}

// State is the desugarer's output: one abstract declaration per signature
// slot, plus how many holes each declaration introduced.
type State struct {
	Decls      []abs.Decl
	MetaCounts []int
	MetaCount  int
	Names      NameGen

	globals map[string]global
	locals  []local
	metas   int
}

func NewState() *State {
	return &State{
		Names:   NewNameGen(1),
		globals: map[string]global{},
	}
}

func Desugar(decls []parse.Decl) (*State, error) {
	s := NewState()
	for _, decl := range decls {
		if err := s.Decl(decl); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *State) next() GI {
	return GI(len(s.Decls))
}

func (s *State) push(decl abs.Decl) {
	s.Decls = append(s.Decls, decl)
	s.MetaCounts = append(s.MetaCounts, s.metas)
	s.MetaCount += s.metas
	s.metas = 0
}

func (s *State) define(ident Ident, kind GlobalKind, gi GI) error {
	if prev, ok := s.globals[ident.Text]; ok {
		return &DuplicateDefinition{Ident: ident, Previous: prev.Ident}
	}
	s.globals[ident.Text] = global{Ident: ident, GI: gi, Kind: kind}
	return nil
}

// Lookup resolves a global by name.
func (s *State) Lookup(name string) (GI, GlobalKind, bool) {
	g, ok := s.globals[name]
	return g.GI, g.Kind, ok
}

func (s *State) bindLocal(ident Ident) UID {
	uid := s.Names.Fresh()
	if ident.Text != "_" {
		s.locals = append(s.locals, local{Name: ident.Text, UID: uid})
	}
	return uid
}

func (s *State) scope() int {
	return len(s.locals)
}

func (s *State) restore(mark int) {
	s.locals = s.locals[:mark]
}

func (s *State) resolveLocal(name string) (UID, bool) {
	for i := len(s.locals) - 1; i >= 0; i-- {
		if s.locals[i].Name == name {
			return s.locals[i].UID, true
		}
	}
	return 0, false
}

func (s *State) freshMeta(ident Ident) abs.Abs {
	m := &abs.Meta{Ident: ident, Index: MI(s.metas)}
	s.metas++
	return m
}
