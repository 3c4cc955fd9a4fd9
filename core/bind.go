package core

import (
	"fmt"
	"strings"

	. "github.com/owo-lang/narc/common"
)

type Bind struct {
	Licit Plicit
	Name  UID
	Ident Ident
	Type  Term
}

func NewBind(licit Plicit, name UID, ident Ident, ty Term) Bind {
	return Bind{Licit: licit, Name: name, Ident: ident, Type: ty}
}

func (b Bind) String() string {
	return b.Licit.Wrap(fmt.Sprintf("%v : %v", b.display(), b.Type))
}

func (b Bind) display() string {
	if b.Ident.Text == "" {
		return b.Name.String()
	}
	return b.Ident.Text
}

func (b Bind) Map(f func(Term) Term) Bind {
	return Bind{Licit: b.Licit, Name: b.Name, Ident: b.Ident, Type: f(b.Type)}
}

// Let is a binder with a known value. Depth is the length of the local
// context the value was built in.
type Let struct {
	Bind
	Val   Term
	Depth int
}

func (l Let) String() string {
	return fmt.Sprintf("let %v : %v = %v", l.display(), l.Type, l.Val)
}

// Tele is ordered outermost first; the type of binder i lives in the
// context of binders 0..i-1.
type Tele []Bind

func (t Tele) String() string {
	parts := make([]string, len(t))
	for i, b := range t {
		parts[i] = b.String()
	}
	return strings.Join(parts, " ")
}

// Lookup returns the binder for de Bruijn index i, counted from the end.
func (t Tele) Lookup(i DBI) Bind {
	return Last(t, int(i))
}

// TypeAt is the type of the binder at index i, valid in the whole
// telescope's context.
func (t Tele) TypeAt(i DBI) Term {
	return RaiseTerm(t.Lookup(i).Type, i+1)
}

// Closure is a term with one bound variable at index 0.
type Closure struct {
	Body Term
}

func (c Closure) Instantiate(arg Term) Term {
	return Substitute(c.Body, One(arg))
}

func (c Closure) String() string {
	return c.Body.String()
}
