// Package block decomposes a concrete instruction sequence into basic
// blocks (spec.md §3 "Block", §4.5) and provides O(log n) lookup of the
// block or instruction covering a given byte offset or instruction
// index, backed by sortedvec.
package block

import (
	"github.com/evmkit/evmasm/instr"
	"github.com/evmkit/evmasm/ops"
	"github.com/evmkit/evmasm/sortedvec"
)

// Block is a half-open instruction index range [Start, End) forming a
// maximal straight-line run: a JUMPDEST only ever appears at Start, and
// the instruction at End-1 is a terminator, the instruction just before
// a JUMPDEST, or the last instruction of the code.
type Block struct {
	Start, End int
}

// Len returns the number of instructions in the block.
func (b Block) Len() int { return b.End - b.Start }

// Vec is an immutable decomposition of an instruction sequence into
// Blocks, with the two sorted auxiliary arrays spec.md §3 names:
// insn_offsets (instruction index one past the end of block i) and
// pc_offsets (byte offset of the i-th instruction).
type Vec struct {
	code        []instr.Concrete
	blocks      []Block
	insnOffsets *sortedvec.Vec[int] // insnOffsets.At(i) == blocks[i].End
	pcOffsets   *sortedvec.Vec[int] // pcOffsets.At(i) == byte offset of code[i]
}

func intLess(a, b int) bool { return a < b }

// Build decomposes code into its basic blocks.
func Build(code []instr.Concrete) *Vec {
	v := &Vec{
		code:        code,
		insnOffsets: sortedvec.New(intLess),
		pcOffsets:   sortedvec.New(intLess),
	}

	pc := 0
	for _, i := range code {
		v.pcOffsets.Append(pc)
		pc += i.Length()
	}

	start := 0
	for i, ins := range code {
		if i > start && ins.Kind == ops.Jumpdest {
			v.blocks = append(v.blocks, Block{Start: start, End: i})
			v.insnOffsets.Append(i)
			start = i
		}
		if ins.IsTerminator() {
			v.blocks = append(v.blocks, Block{Start: start, End: i + 1})
			v.insnOffsets.Append(i + 1)
			start = i + 1
		}
	}
	if start < len(code) {
		v.blocks = append(v.blocks, Block{Start: start, End: len(code)})
		v.insnOffsets.Append(len(code))
	}

	return v
}

// Len returns the number of blocks.
func (v *Vec) Len() int { return len(v.blocks) }

// Block returns the i-th block.
func (v *Vec) Block(i int) Block { return v.blocks[i] }

// Blocks returns every block, in order. Callers must not mutate it.
func (v *Vec) Blocks() []Block { return v.blocks }

// Instruction returns the instr.Concrete at instruction index i.
func (v *Vec) Instruction(i int) instr.Concrete { return v.code[i] }

// PC returns the byte offset of instruction index i.
func (v *Vec) PC(i int) int { return v.pcOffsets.At(i) }

// LookupInsn returns the block index containing instruction index i,
// or false if i is out of range.
func (v *Vec) LookupInsn(i int) (int, bool) {
	if i < 0 || i >= len(v.code) {
		return 0, false
	}
	return v.insnOffsets.UpperBound(i), true
}

// LookupPC returns the instruction index whose byte offset equals pc,
// or false if no instruction starts exactly at pc (e.g. pc falls
// inside a multi-byte PUSH operand, or past the end of the code).
func (v *Vec) LookupPC(pc int) (int, bool) {
	idx := v.pcOffsets.LowerBound(pc)
	if idx >= v.pcOffsets.Len() || v.pcOffsets.At(idx) != pc {
		return 0, false
	}
	return idx, true
}

// LookupPCBlock returns the block index containing the instruction
// starting exactly at byte offset pc.
func (v *Vec) LookupPCBlock(pc int) (int, bool) {
	i, ok := v.LookupPC(pc)
	if !ok {
		return 0, false
	}
	return v.LookupInsn(i)
}
