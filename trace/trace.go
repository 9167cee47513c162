// Package trace implements the fixed-point tracer (spec.md §4.4): a
// work-list algorithm that joins every abstract state reached at each
// instruction until a fixed point is reached, or a step budget is
// exhausted.
package trace

import (
	"github.com/evmkit/evmasm/absstate"
	"github.com/evmkit/evmasm/instr"
	"github.com/evmkit/evmasm/ops"
	"github.com/evmkit/evmasm/semantics"
)

// Result is the output of Run: the per-instruction state vector, and
// whether the step budget ran out before reaching a fixed point.
type Result struct {
	States    []absstate.State
	Exhausted bool
}

// offsetIndex maps a byte offset to the instruction index starting
// there, per spec.md §4.4 step 1.
func offsetIndex(code []instr.Concrete) map[int]int {
	m := make(map[int]int, len(code))
	pc := 0
	for i, ins := range code {
		m[pc] = i
		pc += ins.Length()
	}
	return m
}

// codeLen returns the total byte length of code.
func codeLen(code []instr.Concrete) int {
	n := 0
	for _, ins := range code {
		n += ins.Length()
	}
	return n
}

// Run traces code starting from initial (whose PC must be 0, the
// entry instruction's byte offset), up to budget step applications.
// States not reached remain absstate.Bottom.
func Run(code []instr.Concrete, initial absstate.State, budget int) Result {
	offsets := offsetIndex(code)
	total := codeLen(code)

	// isJumpdest backs Step's JUMP/JUMPI validation: a target is only
	// valid if it lands on an instruction boundary whose opcode is
	// JUMPDEST, not merely a valid boundary (spec.md §7).
	isJumpdest := func(pc int) bool {
		idx, ok := offsets[pc]
		return ok && code[idx].Kind == ops.Jumpdest
	}

	states := make([]absstate.State, len(code))
	for i := range states {
		states[i] = absstate.Bottom
	}
	if len(code) == 0 {
		return Result{States: states}
	}

	// states[0] starts at BOTTOM like every other slot; seeding the
	// work list with initial is what drives the first join to register
	// a change (BOTTOM -> initial) and kick off the step function.
	worklist := []absstate.State{initial}
	steps := 0

	for len(worklist) > 0 {
		if steps >= budget {
			logger.Printf("budget exhausted after %d steps, %d states still in the work list", steps, len(worklist))
			return Result{States: states, Exhausted: true}
		}
		steps++

		cur := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		if cur.PC >= total {
			// Falling off the end of the code behaves as an implicit STOP.
			continue
		}

		idx, ok := offsets[cur.PC]
		if !ok {
			// pc lands mid-instruction (e.g. inside a PUSH operand): not a
			// valid instruction boundary, treat as a dead path.
			continue
		}

		joined := absstate.Join(states[idx], cur)
		if joined.Equal(states[idx]) {
			continue
		}
		states[idx] = joined

		out := semantics.Step(code[idx], joined, isJumpdest)
		switch out.Kind {
		case semantics.Continue, semantics.Split:
			worklist = append(worklist, out.Targets...)
		case semantics.Return, semantics.Exception:
			// path terminates; nothing to enqueue.
		}
	}

	logger.Printf("fixed point reached after %d steps", steps)
	return Result{States: states}
}
