package common

// NameGen hands out fresh UIDs. It is passed along explicitly from the
// desugarer to the type checker so numbering never collides.
type NameGen struct {
	next UID
}

func NewNameGen(start UID) NameGen {
	return NameGen{next: start}
}

func (g *NameGen) Fresh() UID {
	uid := g.next
	g.next++
	return uid
}

func (g *NameGen) Peek() UID {
	return g.next
}
