package instr

import "github.com/evmkit/evmasm/ops"

// Decode reads one instruction from code starting at offset and
// returns it along with its byte length. Unknown opcodes decode to
// DATA([opcode]) (spec.md §4.1). A truncated PUSH1..PUSH32 operand is
// zero-padded to its full width, matching the deployed-bytecode
// convention that a trailing partial PUSH is still valid; RJUMP/RJUMPI
// operands are never truncated and decoding one short is an error.
func Decode(code []byte, offset int) (Concrete, int, error) {
	if offset < 0 || offset >= len(code) {
		return Concrete{}, 0, DecodeError{Offset: offset, Reason: "offset out of range"}
	}
	op := code[offset]

	if op >= 0x60 && op <= 0x7f {
		n := int(op-0x60) + 1
		b := make([]byte, n)
		avail := len(code) - (offset + 1)
		if avail < 0 {
			avail = 0
		}
		if avail > n {
			avail = n
		}
		copy(b, code[offset+1:offset+1+avail])
		return Concrete{Kind: ops.Push, Bytes: b}, 1 + n, nil
	}

	k, ok := ops.FromByte(op)
	if !ok {
		return Concrete{Kind: ops.Data, Bytes: []byte{op}}, 1, nil
	}

	switch k {
	case ops.Dup:
		return Concrete{Kind: ops.Dup, Count: int(op-0x80) + 1}, 1, nil
	case ops.Swap:
		return Concrete{Kind: ops.Swap, Count: int(op-0x90) + 1}, 1, nil
	case ops.Log:
		return Concrete{Kind: ops.Log, Count: int(op - 0xa0)}, 1, nil
	case ops.Rjump, ops.Rjumpi:
		if offset+3 > len(code) {
			return Concrete{}, 0, DecodeError{Offset: offset, Reason: "truncated rjump/rjumpi offset"}
		}
		hi, lo := code[offset+1], code[offset+2]
		rel := int16(uint16(hi)<<8 | uint16(lo))
		return Concrete{Kind: k, RelOffset: rel}, 3, nil
	default:
		return Concrete{Kind: k}, 1, nil
	}
}

// DecodeAll decodes every instruction in code, in order, returning an
// error if any instruction is malformed (only RJUMP/RJUMPI truncation
// can trigger this; unknown opcodes and truncated PUSHes always
// decode successfully per Decode's contract).
func DecodeAll(code []byte) ([]Concrete, error) {
	var out []Concrete
	for offset := 0; offset < len(code); {
		i, n, err := Decode(code, offset)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
		offset += n
	}
	return out, nil
}
