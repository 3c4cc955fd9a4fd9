package check

import (
	"fmt"

	"github.com/owo-lang/narc/abs"
	. "github.com/owo-lang/narc/common"
	"github.com/owo-lang/narc/core"
)

// DifferentLevel: an expression of level Actual does not fit under Upper.
type DifferentLevel struct {
	At     Loc
	Actual Level
	Upper  Level
}

func (e *DifferentLevel) Error() string {
	return fmt.Sprintf("Expression at %v has level %v, which is not smaller than %v.", e.At, e.Actual, e.Upper)
}

type Textual struct {
	Msg string
}

func (e *Textual) Error() string {
	return e.Msg
}

func textf(format string, args ...interface{}) error {
	return &Textual{Msg: fmt.Sprintf(format, args...)}
}

// Wrapped adds the location of the enclosing expression to an error.
type Wrapped struct {
	Err error
	At  Loc
}

func (e *Wrapped) Error() string {
	return fmt.Sprintf("%v\nWhen checking the expression at: %v.", e.Err, e.At)
}

func (e *Wrapped) Unwrap() error {
	return e.Err
}

func Wrap(err error, at Loc) error {
	if err == nil {
		return nil
	}
	return &Wrapped{Err: err, At: at}
}

// ========================

type NotHead struct {
	Abs abs.Abs
}

func (e *NotHead) Error() string {
	return fmt.Sprintf("`%v` is not a head expression (at %v).", e.Abs, e.Abs.Loc())
}

type NotPi struct {
	Type core.Term
	At   Loc
}

func (e *NotPi) Error() string {
	return fmt.Sprintf("`%v` is not a pi type expression (at %v).", e.Type, e.At)
}

type NotProj struct {
	Abs abs.Abs
}

func (e *NotProj) Error() string {
	return fmt.Sprintf("`%v` is not a projection (at %v).", e.Abs, e.Abs.Loc())
}

type NotTerm struct {
	Msg string
}

func (e *NotTerm) Error() string {
	return fmt.Sprintf("Not a term: %v.", e.Msg)
}

type NotData struct {
	Type core.Term
	At   Loc
}

func (e *NotData) Error() string {
	return fmt.Sprintf("`%v` is not a datatype (at %v).", e.Type, e.At)
}

type NotCodata struct {
	Type core.Term
	At   Loc
}

func (e *NotCodata) Error() string {
	return fmt.Sprintf("`%v` is not a record type (at %v).", e.Type, e.At)
}

type NotIdentity struct {
	Type core.Term
	At   Loc
}

func (e *NotIdentity) Error() string {
	return fmt.Sprintf("`%v` is not an identity type (at %v).", e.Type, e.At)
}

type NotEmpty struct {
	Type core.Term
	At   Loc
}

func (e *NotEmpty) Error() string {
	return fmt.Sprintf("`%v` is not an empty type, the absurd pattern at %v is wrong.", e.Type, e.At)
}

// ========================

type DifferentFieldCodata struct {
	Field  Ident
	Codata Ident
}

func (e *DifferentFieldCodata) Error() string {
	return fmt.Sprintf("Field `%v` (at %v) is not a field of `%v`.", e.Field.Text, e.Field.Loc, e.Codata.Text)
}

type NoSuchProj struct {
	Ident Ident
}

func (e *NoSuchProj) Error() string {
	return fmt.Sprintf("No such projection: `%v` (at %v).", e.Ident.Text, e.Ident.Loc)
}

type CantCosplit struct {
	Ident  Ident
	Target core.Term
}

func (e *CantCosplit) Error() string {
	return fmt.Sprintf("Cannot project `%v` (at %v) out of `%v`.", e.Ident.Text, e.Ident.Loc, e.Target)
}

// ========================

type SplitOnNonVar struct {
	Pat  abs.Pat
	Term core.Term
}

func (e *SplitOnNonVar) Error() string {
	return fmt.Sprintf("Cannot split on `%v` with pattern `%v` (at %v), it is not a variable.", e.Term, e.Pat, e.Pat.Loc())
}

type CantFindPattern struct {
	Ident Ident
	Data  core.Term
}

func (e *CantFindPattern) Error() string {
	return fmt.Sprintf("`%v` (at %v) is not a constructor of `%v`.", e.Ident.Text, e.Ident.Loc, e.Data)
}

// CantSimplify: a term had to be in weak head normal form but was stuck.
type CantSimplify struct {
	Term  core.Term
	Cause error
}

func (e *CantSimplify) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("Cannot simplify `%v`.", e.Term)
	}
	return fmt.Sprintf("Cannot simplify `%v`: %v", e.Term, e.Cause)
}

func (e *CantSimplify) Unwrap() error {
	return e.Cause
}

// ========================

type MetaRecursion struct {
	Meta MI
	Term core.Term
}

func (e *MetaRecursion) Error() string {
	return fmt.Sprintf("Trying to solve %v with `%v`, which mentions %v itself.", e.Meta, e.Term, e.Meta)
}

type MetaUnsolved struct {
	Meta MI
	Name Ident
}

func (e *MetaUnsolved) Error() string {
	return fmt.Sprintf("Unsolved meta %v in `%v` (at %v).", e.Meta, e.Name.Text, e.Name.Loc)
}

// FlexFlex: both sides are metas under eliminations.
type FlexFlex struct {
	LHS core.Term
	RHS core.Term
}

func (e *FlexFlex) Error() string {
	return fmt.Sprintf("Cannot unify `%v` and `%v`: both sides are unsolved metas.", e.LHS, e.RHS)
}

// ========================

type DifferentTerm struct {
	LHS core.Term
	RHS core.Term
}

func (e *DifferentTerm) Error() string {
	return fmt.Sprintf("Failed to unify `%v` and `%v`.", e.LHS, e.RHS)
}

type DifferentElim struct {
	LHS core.Elim
	RHS core.Elim
}

func (e *DifferentElim) Error() string {
	return fmt.Sprintf("Failed to unify `%v` and `%v`.", e.LHS, e.RHS)
}

type DifferentName struct {
	LHS Ident
	RHS Ident
}

func (e *DifferentName) Error() string {
	return fmt.Sprintf("`%v` and `%v` are different (conversion check is not structural in Narc).", e.LHS.Text, e.RHS.Text)
}
