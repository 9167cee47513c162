// Package absstack provides AbstractStack, the central datatype of the
// analyzer (spec.md §4.2): a compact representation of a set of
// concrete stacks of possibly varying height, bounded by the EVM's
// 1024-word limit. A Stack is immutable; every operation returns a new
// value.
package absstack

import (
	"github.com/evmkit/evmasm/absval"
	"github.com/evmkit/evmasm/interval"
)

// MaxHeight is the EVM's hard stack-depth limit.
const MaxHeight = 1024

// Stack is a pair (lower, upper): upper holds the known top-of-stack
// values (index len(upper)-1 is the very top), and lower is the
// interval of possible heights of the unknown region beneath upper.
// The zero Stack is invalid; use Empty or Bottom.
type Stack struct {
	bottom bool
	lower  interval.Interval
	upper  []absval.Word
}

// Empty is the stack denoting exactly the single, zero-height concrete
// stack.
var Empty = Stack{lower: interval.Single(0)}

// Bottom is the stack denoting the empty set of concrete stacks —
// unreachable code has a Bottom stack.
var Bottom = Stack{bottom: true}

// IsBottom reports whether s denotes no concrete stacks.
func (s Stack) IsBottom() bool { return s.bottom }

// Size returns the interval of possible heights of the concrete stacks
// s represents.
func (s Stack) Size() interval.Interval {
	if s.bottom {
		return interval.Empty()
	}
	return s.lower.Add(int64(len(s.upper)))
}

// HasCapacity reports whether n more words can be pushed without any
// represented concrete stack exceeding MaxHeight.
func (s Stack) HasCapacity(n int) bool {
	if s.bottom {
		return true // no concrete stacks to violate capacity
	}
	return MaxHeight-s.Size().Hi >= int64(n)
}

// Peek returns the n-th item from the top (0 = the very top). It
// returns TOP if n falls in the unknown lower region.
func (s Stack) Peek(n int) absval.Word {
	if s.bottom {
		panic("absstack: peek on BOTTOM stack")
	}
	if n < len(s.upper) {
		return s.upper[len(s.upper)-1-n]
	}
	return absval.Top
}

// Push returns the stack with w pushed on top. The caller must check
// HasCapacity(1) first; Push does not itself enforce the 1024 cap
// (semantics.Step raises the stack-overflow exception instead).
func (s Stack) Push(w absval.Word) Stack {
	if s.bottom {
		panic("absstack: push onto BOTTOM stack")
	}
	if w.IsTop() && len(s.upper) == 0 {
		ns := s
		ns.lower = ns.lower.Add(1)
		return ns
	}
	ns := s
	ns.upper = append(append([]absval.Word(nil), s.upper...), w)
	return ns
}

// Pop returns the stack with its top item removed, and the value that
// was popped. It panics if the stack's height is provably exactly
// zero; callers must check Size() against the required operand count
// first (semantics.Step raises stack-underflow instead of calling Pop
// in that case).
func (s Stack) Pop() (Stack, absval.Word) {
	if s.bottom {
		panic("absstack: pop of BOTTOM stack")
	}
	if n := len(s.upper); n > 0 {
		w := s.upper[n-1]
		ns := s
		ns.upper = append([]absval.Word(nil), s.upper[:n-1]...)
		return ns, w
	}
	if s.lower.Hi == 0 {
		panic("absstack: pop of a stack whose height is provably zero")
	}
	ns := s
	ns.lower = saturatingSub(s.lower, 1)
	return ns, absval.Top
}

// Set overwrites the n-th-from-top slot with w, rematerializing the
// unknown lower region with leading TOPs if necessary to reach it.
func (s Stack) Set(n int, w absval.Word) Stack {
	if s.bottom {
		panic("absstack: set on BOTTOM stack")
	}
	if n < len(s.upper) {
		ns := s
		ns.upper = append([]absval.Word(nil), s.upper...)
		ns.upper[len(ns.upper)-1-n] = w
		return ns.canonicalize()
	}

	need := n + 1 - len(s.upper)
	newUpper := make([]absval.Word, 0, n+1)
	for i := 0; i < need; i++ {
		newUpper = append(newUpper, absval.Top)
	}
	newUpper = append(newUpper, s.upper...)
	newUpper[0] = w // position n from top is index len-1-n == 0 here

	ns := s
	ns.lower = saturatingSub(s.lower, need)
	ns.upper = newUpper
	return ns.canonicalize()
}

// Swap returns the stack with the top item and the n-th-from-top item
// exchanged. The caller must ensure n > 0 and Size() >= n+1.
func (s Stack) Swap(n int) Stack {
	top := s.Peek(0)
	other := s.Peek(n)
	s = s.Set(0, other)
	return s.Set(n, top)
}

// Dup returns the stack with the n-th-from-top item duplicated onto
// the top. The caller must ensure Size() >= n+1 and HasCapacity(1).
func (s Stack) Dup(n int) Stack {
	return s.Push(s.Peek(n))
}

// Goto is a no-op for the pure stack domain; it exists for parity with
// dependency-tracking variants that record the current pc alongside
// the stack (spec.md §4.2).
func (s Stack) Goto(pc int) Stack { return s }

// Join computes the least upper bound of a and b (spec.md §4.2).
func Join(a, b Stack) Stack {
	switch {
	case a.bottom:
		return b
	case b.bottom:
		return a
	}

	k := len(a.upper)
	if len(b.upper) < k {
		k = len(b.upper)
	}

	au, al := a.upper, a.lower
	if extra := len(au) - k; extra > 0 {
		al = al.Add(int64(extra))
		au = au[extra:]
	}
	bu, bl := b.upper, b.lower
	if extra := len(bu) - k; extra > 0 {
		bl = bl.Add(int64(extra))
		bu = bu[extra:]
	}

	upper := make([]absval.Word, k)
	for i := 0; i < k; i++ {
		upper[i] = au[i].Join(bu[i])
	}

	return (Stack{lower: al.Union(bl), upper: upper}).canonicalize()
}

// Equal reports structural equality.
func (a Stack) Equal(b Stack) bool {
	if a.bottom != b.bottom {
		return false
	}
	if a.bottom {
		return true
	}
	if !a.lower.Equal(b.lower) || len(a.upper) != len(b.upper) {
		return false
	}
	for i := range a.upper {
		if !a.upper[i].Equal(b.upper[i]) {
			return false
		}
	}
	return true
}

// canonicalize folds any leading TOP words in upper into lower, so
// that upper never begins with an absorbable TOP (spec.md §3 "Abstract
// stack" invariants).
func (s Stack) canonicalize() Stack {
	for len(s.upper) > 0 && s.upper[0].IsTop() {
		s.upper = s.upper[1:]
		s.lower = s.lower.Add(1)
	}
	return s
}

func saturatingSub(i interval.Interval, d int) interval.Interval {
	lo, hi := i.Lo-int64(d), i.Hi-int64(d)
	if lo < 0 {
		lo = 0
	}
	if hi < 0 {
		hi = 0
	}
	return interval.Interval{Lo: lo, Hi: hi}
}
