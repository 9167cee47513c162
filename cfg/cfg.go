// Package cfg builds the control-flow graph over a basic-block
// decomposition, using the per-instruction states the tracer computed
// (spec.md §4.5).
package cfg

import (
	"github.com/evmkit/evmasm/absstate"
	"github.com/evmkit/evmasm/block"
	"github.com/evmkit/evmasm/digraph"
	"github.com/evmkit/evmasm/instr"
	"github.com/evmkit/evmasm/ops"
	"github.com/evmkit/evmasm/trace"
)

// Graph is the CFG over block indices: Blocks is the decomposition it
// was built from, Digraph the edge structure, and Incomplete reports
// whether the underlying trace exhausted its step budget (in which
// case some edges may be missing).
type Graph struct {
	Blocks     *block.Vec
	Digraph    *digraph.Graph
	Incomplete bool
}

// Build runs the fixed-point tracer over code and derives the CFG from
// its result (spec.md §4.4, §4.5). initial is the abstract state at
// the entry instruction.
func Build(code []instr.Concrete, initial absstate.State, budget int) *Graph {
	blocks := block.Build(code)
	tr := trace.Run(code, initial, budget)
	return FromTrace(blocks, tr)
}

// FromTrace derives the CFG from a block decomposition and an already
// computed trace.Result, without re-running the tracer.
func FromTrace(blocks *block.Vec, tr trace.Result) *Graph {
	b := digraph.NewBuilder(blocks.Len())

	for bi := 0; bi < blocks.Len(); bi++ {
		blk := blocks.Block(bi)
		lastIdx := blk.End - 1
		last := blocks.Instruction(lastIdx)
		pc := blocks.PC(lastIdx)
		reached := !tr.States[lastIdx].IsBottom()

		switch last.Kind {
		case ops.Jump, ops.Jumpi, ops.Rjump, ops.Rjumpi:
			for _, target := range branchTargets(last, pc, tr.States[lastIdx]) {
				if tbi, ok := blocks.LookupPCBlock(target); ok {
					b.AddEdge(bi, tbi)
				}
			}
			if (last.Kind == ops.Jumpi || last.Kind == ops.Rjumpi) && reached && bi+1 < blocks.Len() {
				b.AddEdge(bi, bi+1)
			}
		case ops.Invalid, ops.Return, ops.Revert, ops.Selfdestruct, ops.Stop, ops.Data:
			// no outgoing edges
		default:
			if reached && bi+1 < blocks.Len() {
				b.AddEdge(bi, bi+1)
			}
		}
	}

	g := &Graph{Blocks: blocks, Digraph: b.Build(), Incomplete: tr.Exhausted}
	logger.Printf("built %d blocks, incomplete=%v", g.Blocks.Len(), g.Incomplete)
	return g
}

// Dominators returns, for every block reachable from entry, the set of
// blocks that dominate it (spec.md §8 testable property 8).
func (g *Graph) Dominators(entry int) []map[int]bool {
	return digraph.Dominators(g.Digraph, entry)
}

// branchTargets extracts the concrete jump-target byte offsets
// observed at a JUMP/JUMPI/RJUMP/RJUMPI instruction. RJUMP/RJUMPI
// targets are static (pc + length + relative offset) and do not
// depend on the traced state; JUMP/JUMPI targets come from the
// top-of-stack value the tracer computed.
func branchTargets(ins instr.Concrete, pc int, s absstate.State) []int {
	if s.IsBottom() {
		return nil // the block is unreachable; no edges to report
	}
	switch ins.Kind {
	case ops.Rjump, ops.Rjumpi:
		return []int{pc + ins.Length() + int(ins.RelOffset)}
	case ops.Jump, ops.Jumpi:
		top := s.Stack.Peek(0)
		if v, ok := top.AsConstant(); ok {
			return []int{int(v.Uint64())}
		}
		return nil
	}
	return nil
}
