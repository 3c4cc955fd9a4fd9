package core

import (
	"fmt"
	"strings"

	. "github.com/owo-lang/narc/common"
	"github.com/samber/lo"
)

type Decl interface {
	fmt.Stringer
	DeclName() Ident
	_Decl()
}

type DeclBase struct{}

func (*DeclBase) _Decl() {}

type DataDecl struct {
	DeclBase
	Name   Ident
	Params Tele
	Conses []GI
	Level  Level
}

func (d *DataDecl) DeclName() Ident {
	return d.Name
}

func (d *DataDecl) String() string {
	return fmt.Sprintf("data %v %v : Type%v", d.Name, d.Params, d.Level)
}

// CodataDecl is a record type. SelfRef is the UID of the value being
// projected inside field types.
type CodataDecl struct {
	DeclBase
	Name    Ident
	SelfRef UID
	Params  Tele
	Fields  []GI
	Level   Level
}

func (d *CodataDecl) DeclName() Ident {
	return d.Name
}

func (d *CodataDecl) String() string {
	return fmt.Sprintf("codata %v %v : Type%v", d.Name, d.Params, d.Level)
}

// ConsDecl's Params live in the context of the datatype's parameters.
type ConsDecl struct {
	DeclBase
	Name   Ident
	Params Tele
	Data   GI
}

func (d *ConsDecl) DeclName() Ident {
	return d.Name
}

func (d *ConsDecl) String() string {
	return fmt.Sprintf("constructor %v %v", d.Name, d.Params)
}

// ProjDecl's Type lives in the record's parameters followed by self.
type ProjDecl struct {
	DeclBase
	Name   Ident
	Codata GI
	Type   Term
}

func (d *ProjDecl) DeclName() Ident {
	return d.Name
}

func (d *ProjDecl) String() string {
	return fmt.Sprintf("projection %v : %v", d.Name, d.Type)
}

type FuncDecl struct {
	DeclBase
	Name      Ident
	Signature Term
	Clauses   []Clause
}

func (d *FuncDecl) DeclName() Ident {
	return d.Name
}

func (d *FuncDecl) String() string {
	lines := []string{fmt.Sprintf("definition %v : %v", d.Name, d.Signature)}
	for _, c := range d.Clauses {
		lines = append(lines, fmt.Sprintf("  %v %v", d.Name, c))
	}
	return strings.Join(lines, "\n")
}

// ClausePlaceholder keeps a clause's slot in the signature.
type ClausePlaceholder struct {
	DeclBase
	Name Ident
}

func (d *ClausePlaceholder) DeclName() Ident {
	return d.Name
}

func (d *ClausePlaceholder) String() string {
	return fmt.Sprintf("clause %v", d.Name)
}

// ========================

// Clause is one leaf of a function's case tree. Patterns and Body live in
// PatTele; Body is nil for absurd clauses.
type Clause struct {
	PatTele  Tele
	Patterns []Copat
	Body     Term
}

func (c Clause) IsAbsurd() bool {
	return c.Body == nil
}

func (c Clause) String() string {
	pats := strings.Join(lo.Map(c.Patterns, func(p Copat, _ int) string { return p.String() }), " ")
	if c.IsAbsurd() {
		return pats
	}
	return fmt.Sprintf("%v = %v", pats, c.Body)
}
