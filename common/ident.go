package common

import (
	"fmt"
)

type Loc struct {
	Line int
	Col  int
}

func (l Loc) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Col)
}

type Ident struct {
	Text string
	Loc  Loc
}

func (i Ident) String() string {
	return i.Text
}

func NewIdent(text string, loc Loc) Ident {
	return Ident{Text: text, Loc: loc}
}

var IgnoreIdent = Ident{Text: "_"}
