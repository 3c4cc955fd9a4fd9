package check

import (
	"fmt"

	"github.com/owo-lang/narc/abs"
	"github.com/owo-lang/narc/core"
)

// CheckClause elaborates one clause of a function. Absurd clauses have no
// body; every other clause must have one.
func (tcs *TCS) CheckClause(c *abs.ClauseDecl) (cls core.Clause, err error) {
	err = tcs.judgment(
		func() string { return fmt.Sprintf("Checking clause %v", c) },
		func() string { return fmt.Sprintf("%v %v", c.Ident.Text, cls) },
		func() error {
			cls, err = tcs.checkClause(c)
			return err
		},
	)
	return cls, err
}

func (tcs *TCS) checkClause(c *abs.ClauseDecl) (core.Clause, error) {
	fn, ok := tcs.Def(c.Defn).(*core.FuncDecl)
	if !ok {
		return core.Clause{}, textf("`%v` (at %v) is not a function.", c.Ident.Text, c.Ident.Loc)
	}
	lhs, err := tcs.CheckLhs(c.Defn, fn.Name, fn.Signature, c.Patterns)
	if err != nil {
		return core.Clause{}, err
	}
	if lhs.Absurd {
		if c.Body != nil {
			return core.Clause{}, textf("The clause of `%v` at %v has an absurd pattern and cannot have a body.",
				c.Ident.Text, c.Ident.Loc)
		}
		return core.Clause{PatTele: lhs.Tele, Patterns: lhs.Pats}, nil
	}
	if c.Body == nil {
		return core.Clause{}, textf("The clause of `%v` at %v needs a body or an absurd pattern.",
			c.Ident.Text, c.Ident.Loc)
	}
	var body core.Term
	err = tcs.Swapped(lhs.Tele, lhs.AsBinds, func() (err error) {
		body, err = tcs.Check(c.Body, lhs.Target)
		return err
	})
	if err != nil {
		return core.Clause{}, err
	}
	return core.Clause{PatTele: lhs.Tele, Patterns: lhs.Pats, Body: body}, nil
}
