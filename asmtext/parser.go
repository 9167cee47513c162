package asmtext

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/evmkit/evmasm/instr"
	"github.com/evmkit/evmasm/ops"
)

// plainMnemonics is the reverse of ops' fixed (non-parameterized)
// opcode table, for every zero-width-family mnemonic the assembler
// accepts verbatim.
var plainMnemonics = map[string]ops.Kind{
	"stop": ops.Stop, "add": ops.Add, "mul": ops.Mul, "sub": ops.Sub,
	"div": ops.Div, "sdiv": ops.Sdiv, "mod": ops.Mod, "smod": ops.Smod,
	"addmod": ops.Addmod, "mulmod": ops.Mulmod, "exp": ops.Exp, "signextend": ops.Signextend,

	"lt": ops.Lt, "gt": ops.Gt, "slt": ops.Slt, "sgt": ops.Sgt, "eq": ops.Eq,
	"iszero": ops.Iszero, "and": ops.And, "or": ops.Or, "xor": ops.Xor, "not": ops.Not,
	"byte": ops.Byte, "shl": ops.Shl, "shr": ops.Shr, "sar": ops.Sar,

	"keccak256": ops.Keccak256,

	"address": ops.Address, "balance": ops.Balance, "origin": ops.Origin, "caller": ops.Caller,
	"callvalue": ops.Callvalue, "calldataload": ops.Calldataload, "calldatasize": ops.Calldatasize,
	"calldatacopy": ops.Calldatacopy, "codesize": ops.Codesize, "codecopy": ops.Codecopy,
	"gasprice": ops.Gasprice, "extcodesize": ops.Extcodesize, "extcodecopy": ops.Extcodecopy,
	"returndatasize": ops.Returndatasize, "returndatacopy": ops.Returndatacopy, "extcodehash": ops.Extcodehash,

	"blockhash": ops.Blockhash, "coinbase": ops.Coinbase, "timestamp": ops.Timestamp, "number": ops.Number,
	"difficulty": ops.Difficulty, "gaslimit": ops.Gaslimit, "chainid": ops.Chainid,
	"selfbalance": ops.Selfbalance, "basefee": ops.Basefee,

	"pop": ops.Pop, "mload": ops.Mload, "mstore": ops.Mstore, "mstore8": ops.Mstore8,
	"sload": ops.Sload, "sstore": ops.Sstore, "jump": ops.Jump, "jumpi": ops.Jumpi,
	"pc": ops.Pc, "msize": ops.Msize, "gas": ops.Gas, "jumpdest": ops.Jumpdest,

	"create": ops.Create, "call": ops.Call, "callcode": ops.Callcode, "return": ops.Return,
	"delegatecall": ops.Delegatecall, "create2": ops.Create2, "staticcall": ops.Staticcall,
	"revert": ops.Revert, "invalid": ops.Invalid, "selfdestruct": ops.Selfdestruct,
}

// Parse assembles source into a Builder with every non-label
// instruction pushed and every label mark recorded; call
// Builder.Finalize to resolve it into instr.Concrete.
func Parse(src string) (*Builder, error) {
	lines := strings.Split(src, "\n")
	logger.Printf("parsing %d source lines", len(lines))
	b := NewBuilder()
	for i, raw := range lines {
		lineNo := i + 1
		line := stripComment(raw)
		line = strings.TrimSpace(line)
		if line == "" || line == ".code" || line == ".data" {
			continue
		}
		if strings.HasSuffix(line, ":") && !strings.ContainsAny(line, " \t") {
			name := strings.TrimSuffix(line, ":")
			if name == "" {
				return nil, LexError{Line: lineNo, Reason: "empty label name"}
			}
			if err := b.MarkLabel(name); err != nil {
				return nil, err
			}
			continue
		}
		fields := strings.Fields(line)
		if err := parseLine(b, lineNo, fields[0], fields[1:]); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func stripComment(line string) string {
	if i := strings.Index(line, ";;"); i >= 0 {
		return line[:i]
	}
	return line
}

func parseLine(b *Builder, lineNo int, mnemonic string, operands []string) error {
	switch {
	case mnemonic == "push":
		if len(operands) != 1 {
			return LexError{Line: lineNo, Reason: "push requires exactly one operand"}
		}
		return parsePush(b, operands[0])

	case mnemonic == "db":
		if len(operands) != 1 {
			return LexError{Line: lineNo, Reason: "db requires exactly one hex operand"}
		}
		data, err := parseHexBytes(operands[0])
		if err != nil {
			return LexError{Line: lineNo, Reason: err.Error()}
		}
		b.Push(instr.Symbolic{Kind: ops.Data, Bytes: data})
		return nil

	case mnemonic == "rjump", mnemonic == "rjumpi":
		if len(operands) != 1 {
			return LexError{Line: lineNo, Reason: mnemonic + " requires exactly one label operand"}
		}
		k := ops.Rjump
		if mnemonic == "rjumpi" {
			k = ops.Rjumpi
		}
		b.Push(instr.Symbolic{Kind: k, Label: b.GetLabel(operands[0])})
		return nil

	case strings.HasPrefix(mnemonic, "dup"):
		n, err := parseCount(mnemonic, "dup", 1, 16)
		if err != nil {
			return LexError{Line: lineNo, Reason: err.Error()}
		}
		b.Push(instr.Symbolic{Kind: ops.Dup, Count: n})
		return nil

	case strings.HasPrefix(mnemonic, "swap"):
		n, err := parseCount(mnemonic, "swap", 1, 16)
		if err != nil {
			return LexError{Line: lineNo, Reason: err.Error()}
		}
		b.Push(instr.Symbolic{Kind: ops.Swap, Count: n})
		return nil

	case strings.HasPrefix(mnemonic, "log"):
		n, err := parseCount(mnemonic, "log", 0, 4)
		if err != nil {
			return LexError{Line: lineNo, Reason: err.Error()}
		}
		b.Push(instr.Symbolic{Kind: ops.Log, Count: n})
		return nil

	default:
		k, ok := plainMnemonics[mnemonic]
		if !ok {
			return LexError{Line: lineNo, Reason: fmt.Sprintf("unknown mnemonic %q", mnemonic)}
		}
		if len(operands) != 0 {
			return LexError{Line: lineNo, Reason: fmt.Sprintf("%s takes no operands", mnemonic)}
		}
		b.Push(instr.Symbolic{Kind: k})
		return nil
	}
}

// parsePush treats the operand as a hex literal if it parses as one,
// and otherwise as a label reference (spec.md §6: "labels ... and
// label references as push/branch operands").
func parsePush(b *Builder, operand string) error {
	if data, err := parseHexBytes(operand); err == nil {
		if len(data) > 32 {
			return AssemblyError{Reason: fmt.Sprintf("push operand is %d bytes, exceeds the 32-byte limit", len(data))}
		}
		b.Push(instr.Symbolic{Kind: ops.Push, Bytes: data})
		return nil
	}
	b.Push(instr.Symbolic{Kind: ops.PushL, Label: b.GetLabel(operand)})
	return nil
}

func parseHexBytes(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return nil, fmt.Errorf("empty hex literal")
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	return hex.DecodeString(s)
}

func parseCount(mnemonic, prefix string, lo, hi int) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(mnemonic, prefix))
	if err != nil {
		return 0, fmt.Errorf("unknown mnemonic %q", mnemonic)
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("%s%d out of range [%d,%d]", prefix, n, lo, hi)
	}
	return n, nil
}
