package absstate

import "github.com/evmkit/evmasm/absstack"

// State is the abstract machine state threaded through the tracer: a
// program counter, an abstract stack, and memory/storage stores.
type State struct {
	PC      int
	Stack   absstack.Stack
	Memory  Store
	Storage Store
}

// Bottom is the state denoting no reachable concrete states. The
// tracer initializes every instruction slot to Bottom, the entry
// included, and reaches the entry by seeding its work list with the
// initial state.
var Bottom = State{Stack: absstack.Bottom}

// IsBottom reports whether s is unreachable.
func (s State) IsBottom() bool { return s.Stack.IsBottom() }

// Goto returns s with PC set to pc; the stack and stores are
// otherwise state-independent of PC (spec.md §4.2 stack.goto is a
// no-op, carried through here for the same reason).
func (s State) Goto(pc int) State {
	s.PC = pc
	s.Stack = s.Stack.Goto(pc)
	return s
}

// Join computes the pointwise least upper bound of a and b. If either
// side is Bottom, the other is returned unchanged (including its PC),
// matching the lattice identity s ⊔ BOTTOM = s.
func Join(a, b State) State {
	if a.IsBottom() {
		return b
	}
	if b.IsBottom() {
		return a
	}
	return State{
		PC:      a.PC,
		Stack:   absstack.Join(a.Stack, b.Stack),
		Memory:  a.Memory.Join(b.Memory),
		Storage: a.Storage.Join(b.Storage),
	}
}

// Equal reports structural equality.
func (a State) Equal(b State) bool {
	if a.IsBottom() || b.IsBottom() {
		return a.IsBottom() == b.IsBottom()
	}
	return a.PC == b.PC && a.Stack.Equal(b.Stack) && a.Memory.Equal(b.Memory) && a.Storage.Equal(b.Storage)
}
