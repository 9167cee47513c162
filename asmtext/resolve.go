package asmtext

import (
	"github.com/evmkit/evmasm/instr"
	"github.com/evmkit/evmasm/ops"
)

// staticWidth returns the initial byte-length guess for a symbolic
// instruction. Every kind except PUSHL has a width independent of
// label resolution; PUSHL without Large starts at the smallest
// possible guess (1 operand byte) and grows across Finalize's passes
// if the resolved target needs more.
func staticWidth(ins instr.Symbolic) int {
	switch ins.Kind {
	case ops.Data:
		return len(ins.Bytes)
	case ops.Push:
		return 1 + len(ins.Bytes)
	case ops.PushL:
		if ins.Large {
			return 1 + 32
		}
		return 1 + 1
	case ops.Rjump, ops.Rjumpi:
		return 3
	default:
		return 1
	}
}

// pushWidth returns the number of operand bytes needed to encode value
// as a PUSH, forcing the full 32 bytes when large is set.
func pushWidth(large bool, value int) int {
	if large {
		return 32
	}
	n := 0
	for v := value; v > 0; v >>= 8 {
		n++
	}
	if n == 0 {
		n = 1
	}
	if n > 32 {
		n = 32
	}
	return n
}

// beBytes renders value as a width-byte big-endian operand.
func beBytes(value, width int) []byte {
	b := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		b[i] = byte(value)
		value >>= 8
	}
	return b
}

// resolve converts one symbolic instruction into its concrete form
// given the final per-instruction byte-offset table pcs (pcs[j] is the
// byte offset of instruction j; pcs[len(insns)] is the total code
// length, the implicit target of a label marked after the last
// instruction).
func (b *Builder) resolve(ins instr.Symbolic, pcs []int, index int) (instr.Concrete, error) {
	switch ins.Kind {
	case ops.Data:
		return instr.Concrete{Kind: ops.Data, Bytes: ins.Bytes}, nil
	case ops.Push:
		return instr.Concrete{Kind: ops.Push, Bytes: ins.Bytes}, nil
	case ops.PushL:
		target := pcs[b.labels[ins.Label].insn]
		return instr.Concrete{Kind: ops.Push, Bytes: beBytes(target, pushWidth(ins.Large, target))}, nil
	case ops.Dup:
		return instr.Concrete{Kind: ops.Dup, Count: ins.Count}, nil
	case ops.Swap:
		return instr.Concrete{Kind: ops.Swap, Count: ins.Count}, nil
	case ops.Log:
		return instr.Concrete{Kind: ops.Log, Count: ins.Count}, nil
	case ops.Rjump, ops.Rjumpi:
		target := pcs[b.labels[ins.Label].insn]
		rel := target - (pcs[index] + 3)
		if rel < -32768 || rel > 32767 {
			return instr.Concrete{}, AssemblyError{Reason: "rjump offset out of 16-bit range"}
		}
		return instr.Concrete{Kind: ins.Kind, RelOffset: int16(rel)}, nil
	case ops.Label:
		return instr.Concrete{}, AssemblyError{Reason: "LABEL pseudo-instruction must not reach resolve"}
	default:
		return instr.Concrete{Kind: ins.Kind}, nil
	}
}
