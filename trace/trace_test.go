package trace

import (
	"testing"

	"github.com/evmkit/evmasm/absstack"
	"github.com/evmkit/evmasm/absstate"
	"github.com/evmkit/evmasm/instr"
	"github.com/evmkit/evmasm/ops"
)

func linearProgram() []instr.Concrete {
	// push 1; push 2; add; stop
	return []instr.Concrete{
		{Kind: ops.Push, Bytes: []byte{0x01}},
		{Kind: ops.Push, Bytes: []byte{0x02}},
		{Kind: ops.Add},
		{Kind: ops.Stop},
	}
}

func TestLinearProgramReachesEveryInstruction(t *testing.T) {
	code := linearProgram()
	r := Run(code, absstate.State{Stack: absstack.Empty}, 1000)
	if r.Exhausted {
		t.Fatalf("should not exhaust budget on a 4-instruction program")
	}
	for i, s := range r.States {
		if s.IsBottom() {
			t.Fatalf("instruction %d never reached", i)
		}
	}
	if r.States[2].Stack.Size().Lo != 2 {
		t.Fatalf("stack height before add = %v, want 2", r.States[2].Stack.Size())
	}
}

func TestUnreachableCodeAfterStopStaysBottom(t *testing.T) {
	code := []instr.Concrete{
		{Kind: ops.Stop},
		{Kind: ops.Push, Bytes: []byte{0x01}}, // dead code
	}
	r := Run(code, absstate.State{Stack: absstack.Empty}, 1000)
	if !r.States[1].IsBottom() {
		t.Fatalf("unreachable instruction after STOP should remain BOTTOM")
	}
}

// TestFixedPointBudgetExhaustionReportsPartial exercises spec.md §8
// testable property 5 indirectly: a self-loop with a tiny budget never
// reaches a fixed point, so Run must report Exhausted rather than
// looping forever or silently returning an incomplete result as done.
func TestFixedPointBudgetExhaustionReportsPartial(t *testing.T) {
	// a tight loop: jumpdest; push <self>; jump
	code := []instr.Concrete{
		{Kind: ops.Jumpdest},
		{Kind: ops.Push, Bytes: []byte{0x00}},
		{Kind: ops.Jump},
	}
	r := Run(code, absstate.State{Stack: absstack.Empty}, 2)
	if !r.Exhausted {
		t.Fatalf("a self-loop should exhaust a tiny budget")
	}
}

// counterLoop builds spec.md §8 scenario D:
//
//	push 0x10; loop: dup1; iszero; push exit; jumpi;
//	push 0x01; swap1; sub; push loop; jump; exit: stop
func counterLoop() []instr.Concrete {
	return []instr.Concrete{
		{Kind: ops.Push, Bytes: []byte{0x10}}, // 0: push 0x10                 pc 0-1
		{Kind: ops.Jumpdest},                  // 1: loop:                    pc 2
		{Kind: ops.Dup, Count: 1},             // 2: dup1                     pc 3
		{Kind: ops.Iszero},                    // 3: iszero                   pc 4
		{Kind: ops.Push, Bytes: []byte{0x0f}}, // 4: push exit (pc 15)        pc 5-6
		{Kind: ops.Jumpi},                     // 5: jumpi                    pc 7
		{Kind: ops.Push, Bytes: []byte{0x01}}, // 6: push 0x01                pc 8-9
		{Kind: ops.Swap, Count: 1},            // 7: swap1                    pc 10
		{Kind: ops.Sub},                       // 8: sub                      pc 11
		{Kind: ops.Push, Bytes: []byte{0x02}}, // 9: push loop (pc 2)         pc 12-13
		{Kind: ops.Jump},                      // 10: jump                    pc 14
		{Kind: ops.Jumpdest},                  // 11: exit:                   pc 15
		{Kind: ops.Stop},                      // 12: stop                    pc 16
	}
}

func TestCounterLoopConvergesWithinBudget(t *testing.T) {
	code := counterLoop()
	r := Run(code, absstate.State{Stack: absstack.Empty}, 1000)
	if r.Exhausted {
		t.Fatalf("counter loop should reach a fixed point well within budget")
	}
	for i, s := range r.States {
		if s.IsBottom() {
			t.Fatalf("instruction %d never reached", i)
		}
	}
	// the loop header widens the pushed constant to TOP once the
	// decrementing path joins back in, but never changes stack height.
	if h := r.States[1].Stack.Size(); h.Lo != 1 || h.Hi != 1 {
		t.Fatalf("loop header stack height = %v, want exactly 1", h)
	}
}
