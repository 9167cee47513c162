// Package word provides w256, an unsigned 256-bit integer with
// modulo-2^256 arithmetic, used as the concrete value domain of the
// abstract interpreter and as the PUSH operand type of the instruction
// model.
package word

import (
	"github.com/holiman/uint256"
)

// Word is an unsigned 256-bit integer. The zero Word is ZERO.
type Word struct {
	u uint256.Int
}

var (
	ZERO  = Word{}
	ONE   = FromUint64(1)
	TWO   = FromUint64(2)
	THREE = FromUint64(3)
	FOUR  = FromUint64(4)
	MIN   = ZERO
	MAX   = func() Word {
		var w Word
		w.u.SetAllOne()
		return w
	}()
)

// FromUint64 returns the Word denoting v.
func FromUint64(v uint64) Word {
	var w Word
	w.u.SetUint64(v)
	return w
}

// FromBytes interprets the big-endian byte slice b as a Word. Slices shorter
// than 32 bytes are left-padded with zeros; b must not exceed 32 bytes.
func FromBytes(b []byte) Word {
	var w Word
	w.u.SetBytes(b)
	return w
}

// Bytes32 returns the big-endian 32-byte representation of w.
func (w Word) Bytes32() [32]byte {
	return w.u.Bytes32()
}

// Bytes returns the minimal-length big-endian representation of w, with no
// leading zero byte except when w is ZERO (in which case it returns a
// single zero byte).
func (w Word) Bytes() []byte {
	b := w.u.Bytes()
	if len(b) == 0 {
		return []byte{0}
	}
	return b
}

// Uint64 returns the low 64 bits of w.
func (w Word) Uint64() uint64 { return w.u.Uint64() }

// Add returns w+o mod 2^256.
func (w Word) Add(o Word) Word {
	var r Word
	r.u.Add(&w.u, &o.u)
	return r
}

// Sub returns w-o mod 2^256.
func (w Word) Sub(o Word) Word {
	var r Word
	r.u.Sub(&w.u, &o.u)
	return r
}

// Mul returns w*o mod 2^256.
func (w Word) Mul(o Word) Word {
	var r Word
	r.u.Mul(&w.u, &o.u)
	return r
}

// Cmp returns -1, 0 or +1 as w is less than, equal to, or greater than o.
func (w Word) Cmp(o Word) int { return w.u.Cmp(&o.u) }

// Eq reports whether w and o denote the same value.
func (w Word) Eq(o Word) bool { return w.u.Eq(&o.u) }

// IsZero reports whether w is ZERO.
func (w Word) IsZero() bool { return w.u.IsZero() }

// String renders w in hexadecimal, e.g. "0x2a".
func (w Word) String() string { return w.u.Hex() }
