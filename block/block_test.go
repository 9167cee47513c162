package block

import (
	"testing"

	"github.com/evmkit/evmasm/instr"
	"github.com/evmkit/evmasm/ops"
)

// Scenario B from spec.md §8: push lab; jump; stop; lab: jumpdest; stop
func scenarioB() []instr.Concrete {
	return []instr.Concrete{
		{Kind: ops.Push, Bytes: []byte{0x04}}, // push lab (pc 4, computed by hand: 2+1+1)
		{Kind: ops.Jump},
		{Kind: ops.Stop},
		{Kind: ops.Jumpdest},
		{Kind: ops.Stop},
	}
}

func TestCoverageNoGapNoOverlap(t *testing.T) {
	code := scenarioB()
	v := Build(code)

	covered := 0
	for i := 0; i < v.Len(); i++ {
		b := v.Block(i)
		if b.Start != covered {
			t.Fatalf("block %d starts at %d, want %d (gap or overlap)", i, b.Start, covered)
		}
		covered = b.End
	}
	if covered != len(code) {
		t.Fatalf("blocks cover up to %d, want %d", covered, len(code))
	}
}

func TestScenarioBBlockCount(t *testing.T) {
	v := Build(scenarioB())
	if v.Len() != 3 {
		t.Fatalf("got %d blocks, want 3: %+v", v.Len(), v.Blocks())
	}
	want := []Block{{0, 2}, {2, 3}, {3, 5}}
	for i, w := range want {
		if v.Block(i) != w {
			t.Errorf("block %d = %+v, want %+v", i, v.Block(i), w)
		}
	}
}

func TestLookupPCAndInsn(t *testing.T) {
	v := Build(scenarioB())
	// instruction 0 (PUSH [0x04]) is 2 bytes, so instruction 1 (JUMP) is at pc 2.
	idx, ok := v.LookupPC(2)
	if !ok || idx != 1 {
		t.Fatalf("LookupPC(2) = %d,%v want 1,true", idx, ok)
	}
	// instruction 3 is the JUMPDEST that opens block 2 ([3,5)).
	bi, ok := v.LookupInsn(3)
	if !ok || bi != 2 {
		t.Fatalf("LookupInsn(3) = %d,%v want 2,true", bi, ok)
	}
}

func TestJumpdestOnlyStartsBlockAtIndexZero(t *testing.T) {
	code := []instr.Concrete{{Kind: ops.Jumpdest}, {Kind: ops.Stop}}
	v := Build(code)
	if v.Len() != 1 {
		t.Fatalf("leading JUMPDEST should not split into a new block: got %d blocks", v.Len())
	}
}
