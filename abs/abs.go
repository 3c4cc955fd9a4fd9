package abs

import (
	"fmt"
	"strings"

	. "github.com/owo-lang/narc/common"
)

// Abs is scope-checked syntax: locals carry UIDs and globals carry their
// index in the signature.
type Abs interface {
	fmt.Stringer
	Loc() Loc
	_Abs()
}

type AbsBase struct{}

func (*AbsBase) _Abs() {}

type Type struct {
	AbsBase
	Ident Ident
	Level Level
}

func (a *Type) Loc() Loc { return a.Ident.Loc }

func (a *Type) String() string {
	return fmt.Sprintf("Type%v", a.Level)
}

type Var struct {
	AbsBase
	Ident Ident
	UID   UID
}

func (a *Var) Loc() Loc { return a.Ident.Loc }

func (a *Var) String() string {
	return a.Ident.Text
}

// Meta is a hole whose index was assigned by the desugarer.
type Meta struct {
	AbsBase
	Ident Ident
	Index MI
}

func (a *Meta) Loc() Loc { return a.Ident.Loc }

func (a *Meta) String() string {
	return a.Index.String()
}

type App struct {
	AbsBase
	F Abs
	A Abs
}

func (a *App) Loc() Loc { return a.F.Loc() }

func (a *App) String() string {
	head, args := AppView(a)
	parts := []string{atom(head)}
	for _, arg := range args {
		parts = append(parts, atom(arg))
	}
	return strings.Join(parts, " ")
}

type Bind struct {
	Licit Plicit
	Name  UID
	Ident Ident
	Type  Abs
}

func (b Bind) String() string {
	return b.Licit.Wrap(fmt.Sprintf("%v : %v", b.Ident.Text, b.Type))
}

type Tele []Bind

type Pi struct {
	AbsBase
	At   Loc
	Bind Bind
	Body Abs
}

func (a *Pi) Loc() Loc { return a.At }

func (a *Pi) String() string {
	return fmt.Sprintf("%v -> %v", a.Bind, a.Body)
}

type Def struct {
	AbsBase
	Ident Ident
	GI    GI
}

func (a *Def) Loc() Loc { return a.Ident.Loc }

func (a *Def) String() string { return a.Ident.Text }

type Cons struct {
	AbsBase
	Ident Ident
	GI    GI
}

func (a *Cons) Loc() Loc { return a.Ident.Loc }

func (a *Cons) String() string { return a.Ident.Text }

// Proj names a record field, either as a prefix function or as a postfix
// argument in an application spine.
type Proj struct {
	AbsBase
	Ident Ident
	GI    GI
}

func (a *Proj) Loc() Loc { return a.Ident.Loc }

func (a *Proj) String() string { return "." + a.Ident.Text }

type Id struct {
	AbsBase
	At   Loc
	Type Abs
	LHS  Abs
	RHS  Abs
}

func (a *Id) Loc() Loc { return a.At }

func (a *Id) String() string {
	return fmt.Sprintf("Id %v %v %v", atom(a.Type), atom(a.LHS), atom(a.RHS))
}

type Refl struct {
	AbsBase
	Ident Ident
}

func (a *Refl) Loc() Loc { return a.Ident.Loc }

func (*Refl) String() string { return "refl" }

// ========================

// AppView splits a curried application into its head and arguments.
func AppView(a Abs) (Abs, []Abs) {
	var args []Abs
	for {
		app, ok := a.(*App)
		if !ok {
			break
		}
		args = PushFront(args, app.A)
		a = app.F
	}
	return a, args
}

func Apply(f Abs, args ...Abs) Abs {
	for _, arg := range args {
		f = &App{F: f, A: arg}
	}
	return f
}

func atom(a Abs) string {
	switch a.(type) {
	case *App, *Pi, *Id:
		return "(" + a.String() + ")"
	default:
		return a.String()
	}
}
