package instr

import "fmt"

// DecodeError is returned by Decode when the byte stream does not hold
// a valid instruction at the requested offset.
type DecodeError struct {
	Offset int
	Reason string
}

func (e DecodeError) Error() string {
	return fmt.Sprintf("instr: decode error at offset %d: %s", e.Offset, e.Reason)
}

// EncodeError is returned by Encode when given an instruction that has
// no concrete byte representation (a symbolic-only Kind reaching
// Encode is a programming error, not a data error, but Encode still
// reports it rather than panicking so callers fuzzing arbitrary
// Concrete values get a clean error).
type EncodeError struct {
	Kind string
}

func (e EncodeError) Error() string {
	return fmt.Sprintf("instr: %s cannot be encoded, it is a symbolic-only instruction", e.Kind)
}
