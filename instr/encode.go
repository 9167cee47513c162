package instr

import "github.com/evmkit/evmasm/ops"

// Encode appends the byte encoding of i to dst and returns the result.
// DATA emits only its raw payload bytes, with no opcode byte of its own
// (spec.md §4.1).
func Encode(dst []byte, i Concrete) ([]byte, error) {
	switch i.Kind {
	case ops.Data:
		return append(dst, i.Bytes...), nil
	case ops.Push:
		dst = append(dst, ops.PushByte(len(i.Bytes)))
		return append(dst, i.Bytes...), nil
	case ops.Dup:
		return append(dst, ops.DupByte(i.Count)), nil
	case ops.Swap:
		return append(dst, ops.SwapByte(i.Count)), nil
	case ops.Log:
		return append(dst, ops.LogByte(i.Count)), nil
	case ops.Rjump, ops.Rjumpi:
		b := ops.FixedByte(i.Kind)
		u := uint16(i.RelOffset)
		return append(dst, b, byte(u>>8), byte(u)), nil
	case ops.PushL, ops.Label:
		return nil, EncodeError{Kind: ops.Name(i.Kind)}
	default:
		return append(dst, ops.FixedByte(i.Kind)), nil
	}
}

// EncodeAll encodes a sequence of concrete instructions back-to-back,
// in order. It is the inverse of Decode walking the same sequence.
func EncodeAll(is []Concrete) ([]byte, error) {
	var out []byte
	var err error
	for _, i := range is {
		out, err = Encode(out, i)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
