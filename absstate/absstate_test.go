package absstate

import (
	"testing"

	"github.com/evmkit/evmasm/absstack"
	"github.com/evmkit/evmasm/absval"
	"github.com/evmkit/evmasm/word"
)

func emptyStack() absstack.Stack { return absstack.Empty }

func TestStoreDefaultsToZeroNotUnknown(t *testing.T) {
	var s Store
	v, ok := s.Load(word.ONE).AsConstant()
	if !ok || !v.Eq(word.ZERO) {
		t.Fatalf("unwritten cell = %v, want concrete 0", s.Load(word.ONE))
	}
}

func TestStoreCollapseForcesUnknownReads(t *testing.T) {
	var s Store
	s = s.Store(word.ONE, absval.Const(word.FOUR))
	s = s.Collapse()
	if !s.Load(word.ONE).IsTop() {
		t.Fatalf("collapsed store should read TOP everywhere")
	}
}

func TestStoreJoinOfDifferentCellsDefaultsMissingToZero(t *testing.T) {
	var a, b Store
	a = a.Store(word.ONE, absval.Const(word.FOUR))
	j := a.Join(b)
	lo, hi := j.Load(word.ONE).Bounds()
	if !lo.Eq(word.ZERO) || !hi.Eq(word.FOUR) {
		t.Fatalf("join with an absent key should range over [0,4], got [%v,%v]", lo, hi)
	}
}

func TestStateJoinWithBottomIsIdentity(t *testing.T) {
	s := State{PC: 5, Stack: emptyStack()}
	if !Join(s, Bottom).Equal(s) {
		t.Fatalf("join(s, BOTTOM) != s")
	}
	if !Join(Bottom, s).Equal(s) {
		t.Fatalf("join(BOTTOM, s) != s")
	}
}
