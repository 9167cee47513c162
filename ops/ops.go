// Package ops provides the EVM-like opcode table: a Kind tag for every
// opcode, its byte encoding (including the parameterized PUSH/DUP/SWAP/
// LOG families), its mnemonic, and the fall-through/branch predicates
// instr and semantics build on. It mirrors wasm/operators' role of
// giving every opcode a single canonical description shared by the
// decoder, the analyzer and the assembler.
package ops

import "fmt"

// Kind identifies an opcode independent of its parameterization: all of
// DUP1..DUP16 share Kind Dup, distinguished at the instr.Concrete
// level by a Count operand; likewise PUSH1..PUSH32 share Kind Push.
type Kind uint8

const (
	Stop Kind = iota
	Add
	Mul
	Sub
	Div
	Sdiv
	Mod
	Smod
	Addmod
	Mulmod
	Exp
	Signextend

	Lt
	Gt
	Slt
	Sgt
	Eq
	Iszero
	And
	Or
	Xor
	Not
	Byte
	Shl
	Shr
	Sar

	Keccak256

	Address
	Balance
	Origin
	Caller
	Callvalue
	Calldataload
	Calldatasize
	Calldatacopy
	Codesize
	Codecopy
	Gasprice
	Extcodesize
	Extcodecopy
	Returndatasize
	Returndatacopy
	Extcodehash

	Blockhash
	Coinbase
	Timestamp
	Number
	Difficulty
	Gaslimit
	Chainid
	Selfbalance
	Basefee

	Pop
	Mload
	Mstore
	Mstore8
	Sload
	Sstore
	Jump
	Jumpi
	Pc
	Msize
	Gas
	Jumpdest
	Rjump
	Rjumpi

	Push
	Dup
	Swap
	Log

	Create
	Call
	Callcode
	Return
	Delegatecall
	Create2
	Staticcall
	Revert
	Invalid
	Selfdestruct

	// Data is the pseudo-opcode for raw, non-instruction bytes (unknown
	// opcodes decode to Data, and code/data sections embed Data blocks
	// verbatim). It has no byte encoding of its own; its length is the
	// length of its operand.
	Data

	// PushL and Label exist only in the symbolic operand kind; they must
	// never reach instr.Encode.
	PushL
	Label
)

// desc describes the fixed (non-parameterized) opcodes: byte value and
// mnemonic. Parameterized families (Push, Dup, Swap, Log) are handled
// separately by Name and the PushByte/DupByte/SwapByte/LogByte helpers
// below.
type desc struct {
	code byte
	name string
}

var table = map[Kind]desc{
	Stop:       {0x00, "stop"},
	Add:        {0x01, "add"},
	Mul:        {0x02, "mul"},
	Sub:        {0x03, "sub"},
	Div:        {0x04, "div"},
	Sdiv:       {0x05, "sdiv"},
	Mod:        {0x06, "mod"},
	Smod:       {0x07, "smod"},
	Addmod:     {0x08, "addmod"},
	Mulmod:     {0x09, "mulmod"},
	Exp:        {0x0a, "exp"},
	Signextend: {0x0b, "signextend"},

	Lt:     {0x10, "lt"},
	Gt:     {0x11, "gt"},
	Slt:    {0x12, "slt"},
	Sgt:    {0x13, "sgt"},
	Eq:     {0x14, "eq"},
	Iszero: {0x15, "iszero"},
	And:    {0x16, "and"},
	Or:     {0x17, "or"},
	Xor:    {0x18, "xor"},
	Not:    {0x19, "not"},
	Byte:   {0x1a, "byte"},
	Shl:    {0x1b, "shl"},
	Shr:    {0x1c, "shr"},
	Sar:    {0x1d, "sar"},

	Keccak256: {0x20, "keccak256"},

	Address:        {0x30, "address"},
	Balance:        {0x31, "balance"},
	Origin:         {0x32, "origin"},
	Caller:         {0x33, "caller"},
	Callvalue:      {0x34, "callvalue"},
	Calldataload:   {0x35, "calldataload"},
	Calldatasize:   {0x36, "calldatasize"},
	Calldatacopy:   {0x37, "calldatacopy"},
	Codesize:       {0x38, "codesize"},
	Codecopy:       {0x39, "codecopy"},
	Gasprice:       {0x3a, "gasprice"},
	Extcodesize:    {0x3b, "extcodesize"},
	Extcodecopy:    {0x3c, "extcodecopy"},
	Returndatasize: {0x3d, "returndatasize"},
	Returndatacopy: {0x3e, "returndatacopy"},
	Extcodehash:    {0x3f, "extcodehash"},

	Blockhash:   {0x40, "blockhash"},
	Coinbase:    {0x41, "coinbase"},
	Timestamp:   {0x42, "timestamp"},
	Number:      {0x43, "number"},
	Difficulty:  {0x44, "difficulty"},
	Gaslimit:    {0x45, "gaslimit"},
	Chainid:     {0x46, "chainid"},
	Selfbalance: {0x47, "selfbalance"},
	Basefee:     {0x48, "basefee"},

	Pop:      {0x50, "pop"},
	Mload:    {0x51, "mload"},
	Mstore:   {0x52, "mstore"},
	Mstore8:  {0x53, "mstore8"},
	Sload:    {0x54, "sload"},
	Sstore:   {0x55, "sstore"},
	Jump:     {0x56, "jump"},
	Jumpi:    {0x57, "jumpi"},
	Pc:       {0x58, "pc"},
	Msize:    {0x59, "msize"},
	Gas:      {0x5a, "gas"},
	Jumpdest: {0x5b, "jumpdest"},
	Rjump:    {0x5c, "rjump"},
	Rjumpi:   {0x5d, "rjumpi"},

	Create:       {0xf0, "create"},
	Call:         {0xf1, "call"},
	Callcode:     {0xf2, "callcode"},
	Return:       {0xf3, "return"},
	Delegatecall: {0xf4, "delegatecall"},
	Create2:      {0xf5, "create2"},
	Staticcall:   {0xfa, "staticcall"},
	Revert:       {0xfd, "revert"},
	Invalid:      {0xfe, "invalid"},
	Selfdestruct: {0xff, "selfdestruct"},
}

var byCode = func() map[byte]Kind {
	m := make(map[byte]Kind, len(table))
	for k, d := range table {
		m[d.code] = k
	}
	for n := 1; n <= 32; n++ {
		m[0x60+byte(n-1)] = Push
	}
	for n := 1; n <= 16; n++ {
		m[0x80+byte(n-1)] = Dup
		m[0x90+byte(n-1)] = Swap
	}
	for n := 0; n <= 4; n++ {
		m[0xa0+byte(n)] = Log
	}
	return m
}()

// FromByte returns the Kind for an opcode byte and reports whether one
// exists. Bytes of the parameterized families map to their shared Kind
// (Push, Dup, Swap, Log); the count operand is not returned and must be
// recovered from the byte itself.
func FromByte(b byte) (Kind, bool) {
	k, ok := byCode[b]
	return k, ok
}

// Name returns the mnemonic for a fixed (non-parameterized) Kind.
func Name(k Kind) string {
	if d, ok := table[k]; ok {
		return d.name
	}
	switch k {
	case Push:
		return "push"
	case Dup:
		return "dup"
	case Swap:
		return "swap"
	case Log:
		return "log"
	case Data:
		return "db"
	case PushL:
		return "push"
	case Label:
		return "label"
	}
	return fmt.Sprintf("kind(%d)", k)
}

// FixedByte returns the fixed opcode byte for a non-parameterized Kind.
// It panics for Push/Dup/Swap/Log/Data/PushL/Label, whose byte value
// depends on an operand; see PushByte/DupByte/SwapByte/LogByte.
func FixedByte(k Kind) byte {
	d, ok := table[k]
	if !ok {
		panic(fmt.Sprintf("ops: %v has no fixed byte encoding", k))
	}
	return d.code
}

// PushByte returns the opcode byte for PUSH<n>, n in [1,32].
func PushByte(n int) byte { return 0x60 + byte(n-1) }

// DupByte returns the opcode byte for DUP<n>, n in [1,16].
func DupByte(n int) byte { return 0x80 + byte(n-1) }

// SwapByte returns the opcode byte for SWAP<n>, n in [1,16].
func SwapByte(n int) byte { return 0x90 + byte(n-1) }

// LogByte returns the opcode byte for LOG<n>, n in [0,4].
func LogByte(n int) byte { return 0xa0 + byte(n) }

// FallsThrough reports whether control may proceed to the next
// instruction after k executes normally (spec.md §4.1).
func FallsThrough(k Kind) bool {
	switch k {
	case Data, Invalid, Jump, Rjump, Stop, Return, Revert, Selfdestruct:
		return false
	default:
		return true
	}
}

// IsBranch reports whether k transfers control via a jump target
// (spec.md §4.1).
func IsBranch(k Kind) bool {
	switch k {
	case Jump, Jumpi, Rjump, Rjumpi:
		return true
	default:
		return false
	}
}

// IsTerminator reports whether k ends a basic block (spec.md §4.5):
// INVALID, JUMP, RETURN, REVERT, SELFDESTRUCT, STOP, DATA, or any
// branch.
func IsTerminator(k Kind) bool {
	switch k {
	case Invalid, Jump, Return, Revert, Selfdestruct, Stop, Data, Jumpi, Rjump, Rjumpi:
		return true
	default:
		return false
	}
}
