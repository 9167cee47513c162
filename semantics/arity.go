package semantics

import "github.com/evmkit/evmasm/ops"

// arity describes the stack effect of every opcode handled generically
// by Step's default case (everything except PUSH/DUP/SWAP/LOG/JUMP/
// JUMPI/RJUMP/RJUMPI/MLOAD/MSTORE/MSTORE8/SLOAD/SSTORE/JUMPDEST/
// terminators, which need bespoke handling). Per spec.md §4.3, every
// generic opcode pops its operands and pushes TOP for each result.
type arity struct{ pops, pushes int }

var arityTable = map[ops.Kind]arity{
	ops.Add: {2, 1}, ops.Mul: {2, 1}, ops.Sub: {2, 1}, ops.Div: {2, 1},
	ops.Sdiv: {2, 1}, ops.Mod: {2, 1}, ops.Smod: {2, 1},
	ops.Addmod: {3, 1}, ops.Mulmod: {3, 1}, ops.Exp: {2, 1}, ops.Signextend: {2, 1},

	ops.Lt: {2, 1}, ops.Gt: {2, 1}, ops.Slt: {2, 1}, ops.Sgt: {2, 1}, ops.Eq: {2, 1},
	ops.Iszero: {1, 1}, ops.And: {2, 1}, ops.Or: {2, 1}, ops.Xor: {2, 1}, ops.Not: {1, 1},
	ops.Byte: {2, 1}, ops.Shl: {2, 1}, ops.Shr: {2, 1}, ops.Sar: {2, 1},

	ops.Keccak256: {2, 1},

	ops.Address: {0, 1}, ops.Balance: {1, 1}, ops.Origin: {0, 1}, ops.Caller: {0, 1},
	ops.Callvalue: {0, 1}, ops.Calldataload: {1, 1}, ops.Calldatasize: {0, 1},
	ops.Calldatacopy: {3, 0}, ops.Codesize: {0, 1}, ops.Codecopy: {3, 0},
	ops.Gasprice: {0, 1}, ops.Extcodesize: {1, 1}, ops.Extcodecopy: {4, 0},
	ops.Returndatasize: {0, 1}, ops.Returndatacopy: {3, 0}, ops.Extcodehash: {1, 1},

	ops.Blockhash: {1, 1}, ops.Coinbase: {0, 1}, ops.Timestamp: {0, 1}, ops.Number: {0, 1},
	ops.Difficulty: {0, 1}, ops.Gaslimit: {0, 1}, ops.Chainid: {0, 1},
	ops.Selfbalance: {0, 1}, ops.Basefee: {0, 1},

	ops.Pop: {1, 0}, ops.Pc: {0, 1}, ops.Msize: {0, 1}, ops.Gas: {0, 1},

	ops.Create: {3, 1}, ops.Call: {7, 1}, ops.Callcode: {7, 1},
	ops.Delegatecall: {6, 1}, ops.Create2: {4, 1}, ops.Staticcall: {6, 1},
}
