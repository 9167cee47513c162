package absval

import (
	"testing"

	"github.com/evmkit/evmasm/word"
)

func TestJoinIdempotentCommutativeWithBottom(t *testing.T) {
	a := Const(word.ONE)
	b := Const(word.TWO)

	if !a.Join(a).Equal(a) {
		t.Errorf("a ⊔ a != a")
	}
	if !a.Join(b).Equal(b.Join(a)) {
		t.Errorf("join not commutative")
	}
	if !a.Join(Bottom).Equal(a) {
		t.Errorf("a ⊔ ⊥ != a")
	}
}

func TestJoinOfDistinctConstsIsRange(t *testing.T) {
	got := Const(word.ONE).Join(Const(word.FOUR))
	lo, hi := got.Bounds()
	if !lo.Eq(word.ONE) || !hi.Eq(word.FOUR) {
		t.Fatalf("join = [%v,%v], want [1,4]", lo, hi)
	}
	if _, ok := got.AsConstant(); ok {
		t.Fatalf("a range of distinct values should not be concretizable")
	}
}

func TestTopAbsorbs(t *testing.T) {
	if !Const(word.ONE).Join(Top).Equal(Top) {
		t.Fatalf("anything ⊔ TOP should be TOP")
	}
}

func TestAsConstant(t *testing.T) {
	if _, ok := Top.AsConstant(); ok {
		t.Fatalf("TOP should not be concretizable")
	}
	if _, ok := Bottom.AsConstant(); ok {
		t.Fatalf("BOTTOM should not be concretizable")
	}
	v, ok := Const(word.FOUR).AsConstant()
	if !ok || !v.Eq(word.FOUR) {
		t.Fatalf("Const(4).AsConstant() = %v,%v", v, ok)
	}
}

func TestArithCombinators(t *testing.T) {
	got := Add(Const(word.ONE), Const(word.TWO))
	v, ok := got.AsConstant()
	if !ok || !v.Eq(word.THREE) {
		t.Fatalf("Add(1,2) = %v, want 3", got)
	}
	if !Add(Top, Const(word.ONE)).IsTop() {
		t.Fatalf("Add(TOP, 1) should be TOP")
	}
	if !Add(Bottom, Const(word.ONE)).IsBottom() {
		t.Fatalf("Add(BOTTOM, 1) should be BOTTOM")
	}
}
