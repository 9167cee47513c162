package instr

import (
	"bytes"
	"testing"

	"github.com/evmkit/evmasm/ops"
)

// Scenario E from spec.md §8.
func TestDecodeEncodeRoundTrip(t *testing.T) {
	code := []byte{0x60, 0x01, 0x60, 0x02, 0x01, 0x00}
	is, err := DecodeAll(code)
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	want := []Concrete{
		{Kind: ops.Push, Bytes: []byte{0x01}},
		{Kind: ops.Push, Bytes: []byte{0x02}},
		{Kind: ops.Add},
		{Kind: ops.Stop},
	}
	if len(is) != len(want) {
		t.Fatalf("got %d instructions, want %d: %+v", len(is), len(want), is)
	}
	for i := range want {
		if is[i].Kind != want[i].Kind || !bytes.Equal(is[i].Bytes, want[i].Bytes) {
			t.Errorf("instruction %d = %+v, want %+v", i, is[i], want[i])
		}
	}

	got, err := EncodeAll(is)
	if err != nil {
		t.Fatalf("EncodeAll: %v", err)
	}
	if !bytes.Equal(got, code) {
		t.Fatalf("re-encoded = %x, want %x", got, code)
	}
}

// Scenario F from spec.md §8.
func TestDecodeTruncatedPush(t *testing.T) {
	code := []byte{0x60}
	i, n, err := Decode(code, 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if i.Kind != ops.Push || !bytes.Equal(i.Bytes, []byte{0x00}) {
		t.Fatalf("Decode(truncated push1) = %+v, want PUSH([0x00])", i)
	}
	if n != 2 {
		t.Fatalf("consumed %d bytes decoding, want 2", n)
	}
	out, err := Encode(nil, i)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("re-encoded length = %d, want 2", len(out))
	}
}

func TestUnknownOpcodeDecodesToData(t *testing.T) {
	// 0x0c is unassigned in the arithmetic block.
	i, n, err := Decode([]byte{0x0c}, 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if i.Kind != ops.Data || !bytes.Equal(i.Bytes, []byte{0x0c}) {
		t.Fatalf("Decode(0x0c) = %+v, want DATA([0x0c])", i)
	}
	if n != 1 {
		t.Fatalf("consumed %d bytes, want 1", n)
	}
}

func TestRjumpTruncationIsAnError(t *testing.T) {
	if _, _, err := Decode([]byte{0x5c, 0x00}, 0); err == nil {
		t.Fatalf("Decode(truncated rjump) should error, RJUMP operands are never padded")
	}
}

func TestLengthConsistency(t *testing.T) {
	is := []Concrete{
		{Kind: ops.Data, Bytes: []byte{1, 2, 3}},
		{Kind: ops.Push, Bytes: []byte{1, 2}},
		{Kind: ops.Rjump, RelOffset: -4},
		{Kind: ops.Dup, Count: 3},
		{Kind: ops.Stop},
	}
	for _, i := range is {
		out, err := Encode(nil, i)
		if err != nil {
			t.Fatalf("Encode(%+v): %v", i, err)
		}
		if len(out) != i.Length() {
			t.Errorf("Length(%+v) = %d, Encode produced %d bytes", i, i.Length(), len(out))
		}
	}
}

func TestEncodeSymbolicKindIsAnError(t *testing.T) {
	if _, err := Encode(nil, Concrete{Kind: ops.PushL}); err == nil {
		t.Fatalf("encoding a symbolic-only kind should error")
	}
}

func TestFallthroughAndTerminatorPredicates(t *testing.T) {
	jump := Concrete{Kind: ops.Jump}
	if jump.FallsThrough() {
		t.Errorf("JUMP should not fall through")
	}
	if !jump.IsBranch() {
		t.Errorf("JUMP should be a branch")
	}
	if !jump.IsTerminator() {
		t.Errorf("JUMP should terminate a block")
	}
	add := Concrete{Kind: ops.Add}
	if !add.FallsThrough() || add.IsBranch() || add.IsTerminator() {
		t.Errorf("ADD should fall through, not branch, not terminate")
	}
}
