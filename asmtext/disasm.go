package asmtext

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/evmkit/evmasm/instr"
	"github.com/evmkit/evmasm/ops"
)

// Disassemble decodes code and renders it back to the line-oriented
// assembly text format in two passes (spec.md §6): the first pass
// allocates a symbolic label at every JUMPDEST and at every
// RJUMP/RJUMPI target byte offset; the second pass emits label
// definitions at those offsets and rewrites PUSH operands and
// RJUMP/RJUMPI operands that reference them to use the label instead
// of a raw number.
func Disassemble(code []byte) (string, error) {
	insns, err := instr.DecodeAll(code)
	if err != nil {
		return "", err
	}

	offsets := make([]int, len(insns)+1)
	for i, ins := range insns {
		offsets[i+1] = offsets[i] + ins.Length()
	}

	// First pass: allocate labels.
	labelAt := map[int]string{}
	for i, ins := range insns {
		switch ins.Kind {
		case ops.Jumpdest:
			labelAt[offsets[i]] = fmt.Sprintf("L%d", offsets[i])
		case ops.Rjump, ops.Rjumpi:
			target := offsets[i] + ins.Length() + int(ins.RelOffset)
			if _, ok := labelAt[target]; !ok {
				labelAt[target] = fmt.Sprintf("L%d", target)
			}
		}
	}

	// Second pass: emit label definitions and translate references.
	var sb strings.Builder
	sb.WriteString(".code\n")
	for i, ins := range insns {
		if name, ok := labelAt[offsets[i]]; ok {
			sb.WriteString(name)
			sb.WriteString(":\n")
		}
		sb.WriteString("\t")
		sb.WriteString(renderInstruction(ins, offsets[i], labelAt))
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func renderInstruction(ins instr.Concrete, pc int, labelAt map[int]string) string {
	switch ins.Kind {
	case ops.Push:
		if target, ok := bytesAsOffset(ins.Bytes); ok {
			if name, ok := labelAt[target]; ok {
				return "push " + name
			}
		}
		return "push 0x" + hex.EncodeToString(ins.Bytes)
	case ops.Data:
		return "db 0x" + hex.EncodeToString(ins.Bytes)
	case ops.Dup:
		return fmt.Sprintf("dup%d", ins.Count)
	case ops.Swap:
		return fmt.Sprintf("swap%d", ins.Count)
	case ops.Log:
		return fmt.Sprintf("log%d", ins.Count)
	case ops.Rjump:
		return "rjump " + rjumpTargetLabel(pc, ins, labelAt)
	case ops.Rjumpi:
		return "rjumpi " + rjumpTargetLabel(pc, ins, labelAt)
	default:
		return ops.Name(ins.Kind)
	}
}

// rjumpTargetLabel names the label the first pass allocated at an
// RJUMP/RJUMPI instruction's target offset.
func rjumpTargetLabel(pc int, ins instr.Concrete, labelAt map[int]string) string {
	target := pc + ins.Length() + int(ins.RelOffset)
	return labelAt[target]
}

// bytesAsOffset interprets a PUSH operand as a plausible byte offset:
// it must fit in an int and use no leading zero byte wider than
// necessary, matching what Disassemble itself would have emitted for a
// label reference.
func bytesAsOffset(b []byte) (int, bool) {
	if len(b) == 0 || len(b) > 8 {
		return 0, false
	}
	if b[0] == 0 && len(b) > 1 {
		return 0, false
	}
	v := 0
	for _, x := range b {
		v = v<<8 | int(x)
	}
	return v, true
}

// Assemble parses src and resolves it to a flat bytecode sequence,
// combining Parse, Builder.Finalize, and instr.EncodeAll (spec.md §6).
func Assemble(src string) ([]byte, error) {
	b, err := Parse(src)
	if err != nil {
		return nil, err
	}
	insns, err := b.Finalize()
	if err != nil {
		return nil, err
	}
	return instr.EncodeAll(insns)
}
