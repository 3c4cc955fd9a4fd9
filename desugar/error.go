package desugar

import (
	"fmt"

	. "github.com/owo-lang/narc/common"
)

type UnresolvedReference struct {
	Ident Ident
}

func (e *UnresolvedReference) Error() string {
	return fmt.Sprintf("Unresolved reference: `%v` at %v.", e.Ident.Text, e.Ident.Loc)
}

type DuplicateDefinition struct {
	Ident    Ident
	Previous Ident
}

func (e *DuplicateDefinition) Error() string {
	return fmt.Sprintf("`%v` at %v is already defined at %v.", e.Ident.Text, e.Ident.Loc, e.Previous.Loc)
}

type NotDefn struct {
	Ident Ident
}

func (e *NotDefn) Error() string {
	return fmt.Sprintf("`%v` is not a definition (at %v).", e.Ident.Text, e.Ident.Loc)
}

type NotCons struct {
	Ident Ident
}

func (e *NotCons) Error() string {
	return fmt.Sprintf("`%v` is not a constructor (at %v).", e.Ident.Text, e.Ident.Loc)
}

type NotProj struct {
	Ident Ident
}

func (e *NotProj) Error() string {
	return fmt.Sprintf("`%v` is not a projection (at %v).", e.Ident.Text, e.Ident.Loc)
}

type NonLinearPattern struct {
	Ident Ident
}

func (e *NonLinearPattern) Error() string {
	return fmt.Sprintf("Pattern variable `%v` at %v is bound twice.", e.Ident.Text, e.Ident.Loc)
}
