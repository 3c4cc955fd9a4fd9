package check

import (
	. "github.com/owo-lang/narc/common"
	"github.com/owo-lang/narc/core"
)

// IsEtaVar reports whether t reduces to a bare variable.
func (tcs *TCS) IsEtaVar(t core.Term) (DBI, bool, error) {
	if i, ok := core.AsVar(t); ok {
		return i, true, nil
	}
	v, err := tcs.reduce(t)
	if err != nil {
		return 0, false, err
	}
	i, ok := core.AsVar(v)
	return i, ok, nil
}

func (tcs *TCS) expectData(t core.Term, at Loc) (*core.Data, error) {
	v, err := tcs.whnf(t)
	if err != nil {
		return nil, err
	}
	if d, ok := v.(*core.Data); ok && d.Kind == core.Inductive {
		return d, nil
	}
	return nil, &NotData{Type: v, At: at}
}

func (tcs *TCS) expectCodata(t core.Term, at Loc) (*core.Data, error) {
	v, err := tcs.whnf(t)
	if err != nil {
		return nil, err
	}
	if d, ok := v.(*core.Data); ok && d.Kind == core.Coinductive {
		return d, nil
	}
	return nil, &NotCodata{Type: v, At: at}
}

func (tcs *TCS) expectId(t core.Term, at Loc) (*core.Id, error) {
	v, err := tcs.whnf(t)
	if err != nil {
		return nil, err
	}
	if id, ok := v.(*core.Id); ok {
		return id, nil
	}
	return nil, &NotIdentity{Type: v, At: at}
}
