package cfg

import (
	"testing"

	"github.com/evmkit/evmasm/absstack"
	"github.com/evmkit/evmasm/absstate"
	"github.com/evmkit/evmasm/instr"
	"github.com/evmkit/evmasm/ops"
)

// diamond builds: push 1 (condition); push 6 (lab, the taken branch);
// jumpi; (fall-through: stop); lab: jumpdest; stop
func diamond() []instr.Concrete {
	return []instr.Concrete{
		{Kind: ops.Push, Bytes: []byte{0x01}}, // condition
		{Kind: ops.Push, Bytes: []byte{0x06}}, // target on top = jumpdest's pc (computed by hand: 2+2+1+1=6)
		{Kind: ops.Jumpi},
		{Kind: ops.Stop},
		{Kind: ops.Jumpdest},
		{Kind: ops.Stop},
	}
}

func TestBuildProducesFallthroughAndBranchEdges(t *testing.T) {
	code := diamond()
	g := Build(code, absstate.State{Stack: absstack.Empty}, 1000)
	if g.Incomplete {
		t.Fatalf("should not exhaust budget on a 6-instruction program")
	}
	// block 0: push,push,jumpi -> block 1 (fallthrough: stop) and block 2 (jumpdest: stop)
	if g.Blocks.Len() != 3 {
		t.Fatalf("got %d blocks, want 3: %+v", g.Blocks.Len(), g.Blocks.Blocks())
	}
	out := g.Digraph.Outgoing(0)
	if len(out) != 2 {
		t.Fatalf("block 0 should have 2 outgoing edges (fallthrough + taken), got %v", out)
	}
}

func TestEdgeSymmetry(t *testing.T) {
	code := diamond()
	g := Build(code, absstate.State{Stack: absstack.Empty}, 1000)
	for i := 0; i < g.Blocks.Len(); i++ {
		for _, j := range g.Digraph.Outgoing(i) {
			found := false
			for _, k := range g.Digraph.Incoming(j) {
				if k == i {
					found = true
				}
			}
			if !found {
				t.Fatalf("edge %d->%d has no matching incoming entry", i, j)
			}
		}
	}
}

func TestDominatorsOfEntryIsJustEntry(t *testing.T) {
	code := diamond()
	g := Build(code, absstate.State{Stack: absstack.Empty}, 1000)
	doms := g.Dominators(0)
	if len(doms[0]) != 1 || !doms[0][0] {
		t.Fatalf("dom(entry) = %v, want {entry}", doms[0])
	}
	for i := 1; i < g.Blocks.Len(); i++ {
		if doms[i] == nil || !doms[i][0] {
			t.Fatalf("block %d should be dominated by the entry: %v", i, doms[i])
		}
	}
}
