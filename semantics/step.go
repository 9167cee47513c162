// Package semantics implements the single-step function mapping
// (instruction, state) to an Outcome (spec.md §4.3), and the fixed
// EVM-derived stack effects each opcode has.
package semantics

import (
	"github.com/evmkit/evmasm/absstack"
	"github.com/evmkit/evmasm/absstate"
	"github.com/evmkit/evmasm/absval"
	"github.com/evmkit/evmasm/instr"
	"github.com/evmkit/evmasm/ops"
	"github.com/evmkit/evmasm/word"
)

// MaxJumpFanout bounds how many concrete targets a non-constant jump
// target may multicast to before Step gives up and reports
// JumpTargetOverflow (spec.md §4.3: "implementation may bound this set
// and report exception on overflow").
const MaxJumpFanout = 256

// JumpdestLookup reports whether pc is the byte offset of a JUMPDEST
// instruction. JUMP/JUMPI must consult one to reject a target that
// lands anywhere else (spec.md §4.3, §7 "invalid jump destination");
// RJUMP/RJUMPI are exempt, since their relative offsets are computed
// statically at assembly time rather than resolved dynamically off the
// stack.
type JumpdestLookup func(pc int) bool

// Step applies ins to s, where s.PC must equal the byte offset of ins.
// isJumpdest validates JUMP/JUMPI targets; trace.Run supplies one
// backed by the instruction stream it is tracing.
func Step(ins instr.Concrete, s absstate.State, isJumpdest JumpdestLookup) Outcome {
	stack := s.Stack

	switch ins.Kind {
	case ops.Stop:
		return returnOutcome()
	case ops.Return, ops.Revert:
		if underflow(stack, 2) {
			return exceptionOutcome(StackUnderflow)
		}
		return returnOutcome()
	case ops.Selfdestruct:
		if underflow(stack, 1) {
			return exceptionOutcome(StackUnderflow)
		}
		return returnOutcome()
	case ops.Invalid:
		return exceptionOutcome(InvalidOpcode)
	case ops.Data:
		return returnOutcome()

	case ops.Jumpdest:
		return continueTo(s.Goto(s.PC + ins.Length()))

	case ops.Push:
		if !stack.HasCapacity(1) {
			return exceptionOutcome(StackOverflow)
		}
		ns := s
		ns.Stack = stack.Push(absval.Const(word.FromBytes(ins.Bytes)))
		return continueTo(ns.Goto(s.PC + ins.Length()))

	case ops.Dup:
		n := ins.Count - 1 // DUP<n> is 1-indexed; Stack.Dup/Peek are 0-indexed
		if underflow(stack, n+1) {
			return exceptionOutcome(StackUnderflow)
		}
		if !stack.HasCapacity(1) {
			return exceptionOutcome(StackOverflow)
		}
		ns := s
		ns.Stack = stack.Dup(n)
		return continueTo(ns.Goto(s.PC + ins.Length()))

	case ops.Swap:
		n := ins.Count // SWAP<n> swaps the top with the (n+1)-th item: Stack.Swap is already 0-indexed at n
		if underflow(stack, n+1) {
			return exceptionOutcome(StackUnderflow)
		}
		ns := s
		ns.Stack = stack.Swap(n)
		return continueTo(ns.Goto(s.PC + ins.Length()))

	case ops.Log:
		pops := 2 + ins.Count
		if underflow(stack, pops) {
			return exceptionOutcome(StackUnderflow)
		}
		ns := s
		for i := 0; i < pops; i++ {
			ns.Stack, _ = ns.Stack.Pop()
		}
		return continueTo(ns.Goto(s.PC + ins.Length()))

	case ops.Mload:
		if underflow(stack, 1) {
			return exceptionOutcome(StackUnderflow)
		}
		if !stack.HasCapacity(1) {
			return exceptionOutcome(StackOverflow)
		}
		popped, offset := stack.Pop()
		ns := s
		ns.Stack = popped.Push(loadAt(s.Memory, offset))
		return continueTo(ns.Goto(s.PC + ins.Length()))

	case ops.Mstore, ops.Mstore8:
		if underflow(stack, 2) {
			return exceptionOutcome(StackUnderflow)
		}
		popped1, offset := stack.Pop()
		popped2, value := popped1.Pop()
		ns := s
		ns.Stack = popped2
		ns.Memory = storeAt(s.Memory, offset, value)
		return continueTo(ns.Goto(s.PC + ins.Length()))

	case ops.Sload:
		if underflow(stack, 1) {
			return exceptionOutcome(StackUnderflow)
		}
		if !stack.HasCapacity(1) {
			return exceptionOutcome(StackOverflow)
		}
		popped, key := stack.Pop()
		ns := s
		ns.Stack = popped.Push(loadAt(s.Storage, key))
		return continueTo(ns.Goto(s.PC + ins.Length()))

	case ops.Sstore:
		if underflow(stack, 2) {
			return exceptionOutcome(StackUnderflow)
		}
		popped1, key := stack.Pop()
		popped2, value := popped1.Pop()
		ns := s
		ns.Stack = popped2
		ns.Storage = storeAt(s.Storage, key, value)
		return continueTo(ns.Goto(s.PC + ins.Length()))

	case ops.Jump:
		if underflow(stack, 1) {
			return exceptionOutcome(StackUnderflow)
		}
		popped, target := stack.Pop()
		return jumpTo(s, popped, target, nil, isJumpdest)

	case ops.Jumpi:
		if underflow(stack, 2) {
			return exceptionOutcome(StackUnderflow)
		}
		popped1, target := stack.Pop()
		popped2, _ := popped1.Pop() // condition value is irrelevant to target resolution
		fall := s
		fall.Stack = popped2
		fall = fall.Goto(s.PC + ins.Length())
		return jumpTo(s, popped2, target, &fall, isJumpdest)

	case ops.Rjump:
		dst := s.PC + ins.Length() + int(ins.RelOffset)
		return continueTo(s.Goto(dst))

	case ops.Rjumpi:
		if underflow(stack, 1) {
			return exceptionOutcome(StackUnderflow)
		}
		popped, _ := stack.Pop()
		fall := s
		fall.Stack = popped
		fall = fall.Goto(s.PC + ins.Length())
		taken := s
		taken.Stack = popped
		taken = taken.Goto(s.PC + ins.Length() + int(ins.RelOffset))
		return splitTo(fall, taken)
	}

	ar, ok := arityTable[ins.Kind]
	if !ok {
		logger.Printf("pc %d: opcode %v has no arity entry, treating as InvalidOpcode", s.PC, ins.Kind)
		return exceptionOutcome(InvalidOpcode)
	}
	if underflow(stack, ar.pops) {
		return exceptionOutcome(StackUnderflow)
	}
	if net := ar.pushes - ar.pops; net > 0 && !stack.HasCapacity(net) {
		return exceptionOutcome(StackOverflow)
	}
	ns := s
	for i := 0; i < ar.pops; i++ {
		ns.Stack, _ = ns.Stack.Pop()
	}
	for i := 0; i < ar.pushes; i++ {
		ns.Stack = ns.Stack.Push(absval.Top)
	}
	return continueTo(ns.Goto(s.PC + ins.Length()))
}

// underflow reports whether popping n items is not provably safe for
// every concrete stack s represents.
func underflow(s absstack.Stack, n int) bool {
	return s.Size().Hi < int64(n)
}

// jumpTo resolves a JUMP/JUMPI target. fallthroughState is nil for
// JUMP (no fall-through edge); non-nil for JUMPI, whose Outcome is
// always a Split against the resolved taken target(s). Targets that
// are not JUMPDEST instructions are invalid (spec.md §7) and are
// dropped as exceptional paths rather than enqueued, matching "an
// execution exception terminates the specific abstract path"; only
// when every candidate target is invalid and there is no fall-through
// to fall back on does the whole Outcome become an InvalidJumpDest
// exception.
func jumpTo(s absstate.State, poppedStack absstack.Stack, target absval.Word, fallthroughState *absstate.State, isJumpdest JumpdestLookup) Outcome {
	var targets []int64
	if v, ok := target.AsConstant(); ok {
		targets = []int64{int64(v.Uint64())}
	} else if !target.IsTop() && !target.IsBottom() {
		lo, hi := target.Bounds()
		lov, hiv := int64(lo.Uint64()), int64(hi.Uint64())
		if hiv-lov+1 > MaxJumpFanout {
			return exceptionOutcome(JumpTargetOverflow)
		}
		for v := lov; v <= hiv; v++ {
			targets = append(targets, v)
		}
	} else {
		return exceptionOutcome(JumpTargetOverflow)
	}

	valid := targets[:0:0]
	for _, pc := range targets {
		if isJumpdest(int(pc)) {
			valid = append(valid, pc)
		}
	}
	if len(valid) == 0 && fallthroughState == nil {
		logger.Printf("pc %d: no valid JUMPDEST among candidate targets %v", s.PC, targets)
		return exceptionOutcome(InvalidJumpDest)
	}

	var states []absstate.State
	if fallthroughState != nil {
		states = append(states, *fallthroughState)
	}
	for _, pc := range valid {
		ns := absstate.State{Stack: poppedStack, Memory: s.Memory, Storage: s.Storage}
		ns = ns.Goto(int(pc))
		states = append(states, ns)
	}

	if fallthroughState != nil {
		return Outcome{Kind: Split, Targets: states}
	}
	return Outcome{Kind: Continue, Targets: states}
}

func loadAt(store absstate.Store, key absval.Word) absval.Word {
	k, ok := key.AsConstant()
	if !ok {
		return absval.Top
	}
	return store.Load(k)
}

func storeAt(store absstate.Store, key, value absval.Word) absstate.Store {
	k, ok := key.AsConstant()
	if !ok {
		return store.Collapse()
	}
	return store.Store(k, value)
}
