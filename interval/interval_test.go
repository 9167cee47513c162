package interval

import "testing"

func TestUnion(t *testing.T) {
	a := Interval{Lo: 0, Hi: 2}
	b := Interval{Lo: 5, Hi: 7}
	got := a.Union(b)
	want := Interval{Lo: 0, Hi: 7}
	if got != want {
		t.Fatalf("Union = %v, want %v", got, want)
	}
}

func TestUnionWithEmpty(t *testing.T) {
	a := Interval{Lo: 3, Hi: 3}
	if got := a.Union(Empty()); !got.Equal(a) {
		t.Fatalf("Union with empty = %v, want %v", got, a)
	}
	if got := Empty().Union(a); !got.Equal(a) {
		t.Fatalf("Empty union = %v, want %v", got, a)
	}
}

func TestIsSingle(t *testing.T) {
	if v, ok := Single(4).IsSingle(); !ok || v != 4 {
		t.Fatalf("Single(4).IsSingle() = %d,%v", v, ok)
	}
	if _, ok := (Interval{Lo: 0, Hi: 1}).IsSingle(); ok {
		t.Fatalf("[0,1].IsSingle() should be false")
	}
}

func TestEqualTreatsEmptyUniformly(t *testing.T) {
	e1 := Interval{Lo: 5, Hi: 0}
	e2 := Empty()
	if !e1.Equal(e2) {
		t.Fatalf("two empty intervals with different bit patterns should be Equal")
	}
}
