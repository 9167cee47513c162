// Package instr provides the single tagged instruction set shared by
// the analyzer and the assembler/disassembler (spec.md §3 "Instruction",
// §4.1). Instruction is parameterized by its operand kind: Concrete
// carries absolute/relative byte offsets, Symbolic carries label ids
// resolved later by an asmtext.Builder. These are two sibling struct
// types rather than an inheritance hierarchy (spec.md §9).
package instr

import "github.com/evmkit/evmasm/ops"

// Concrete is an instruction whose operands are fully resolved to
// bytes: PUSH carries its literal operand, RJUMP/RJUMPI carry a signed
// 16-bit relative offset. Concrete instructions are immutable once
// produced by Decode or by asmtext.Builder.Finalize.
type Concrete struct {
	Kind ops.Kind

	// Count is the n for DUP<n>/SWAP<n>/LOG<n>.
	Count int
	// Bytes is the operand of PUSH (1-32 bytes, left-to-right as pushed)
	// or the raw payload of DATA.
	Bytes []byte
	// RelOffset is the operand of RJUMP/RJUMPI: a byte offset relative
	// to the first byte following the instruction.
	RelOffset int16
}

// Symbolic is an instruction produced by the assembly parser, before
// label references have been resolved to byte offsets.
type Symbolic struct {
	Kind ops.Kind

	Count int
	Bytes []byte

	// Label is the label id (see asmtext.Builder.GetLabel) referenced
	// by PushL, Rjump, Rjumpi, and defined by Label.
	Label int
	// Large forces PushL to encode as a full 32-byte PUSH32 rather than
	// the minimal-width encoding (spec.md §9 open question (b)).
	Large bool
}

// FallsThrough reports whether control may reach the next instruction
// after i executes normally.
func (i Concrete) FallsThrough() bool { return ops.FallsThrough(i.Kind) }

// IsBranch reports whether i transfers control to a jump target.
func (i Concrete) IsBranch() bool { return ops.IsBranch(i.Kind) }

// IsTerminator reports whether i ends a basic block.
func (i Concrete) IsTerminator() bool { return ops.IsTerminator(i.Kind) }

// Length returns the number of bytes Encode(i) appends (spec.md §4.1).
func (i Concrete) Length() int {
	switch i.Kind {
	case ops.Data:
		return len(i.Bytes)
	case ops.Push:
		return 1 + len(i.Bytes)
	case ops.Rjump, ops.Rjumpi:
		return 3
	default:
		return 1
	}
}
