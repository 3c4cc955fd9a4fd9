package common

import (
	"fmt"
	"math"
)

// UID identifies a bound variable independently of its position.
type UID uint64

func (u UID) String() string {
	return fmt.Sprintf("#%d", uint64(u))
}

// DBI is a de Bruijn index; 0 is the innermost binder.
type DBI int

func (i DBI) String() string {
	return fmt.Sprintf("@%d", int(i))
}

// GI indexes the global signature.
type GI int

func (i GI) String() string {
	return fmt.Sprintf("g%d", int(i))
}

// MI indexes a meta context.
type MI int

func (i MI) String() string {
	return fmt.Sprintf("?%d", int(i))
}

type Level uint32

const Omega Level = math.MaxUint32

func (l Level) String() string {
	if l == Omega {
		return "ω"
	}
	return fmt.Sprintf("%d", uint32(l))
}

func (l Level) Succ() Level {
	if l == Omega {
		return Omega
	}
	return l + 1
}

type Plicit int

const (
	Ex Plicit = iota
	Im
)

func (p Plicit) String() string {
	switch p {
	case Ex:
		return "explicit"
	case Im:
		return "implicit"
	default:
		panic("unreachable")
	}
}

func (p Plicit) Wrap(s string) string {
	switch p {
	case Ex:
		return "(" + s + ")"
	case Im:
		return "{" + s + "}"
	default:
		panic("unreachable")
	}
}
