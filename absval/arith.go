package absval

import "github.com/evmkit/evmasm/word"

// Add, Sub and Mul are sound, conservative combinators for the
// arithmetic opcodes: exact when both operands are concrete, BOTTOM
// when either operand is BOTTOM, TOP otherwise (spec.md §4.3:
// "Arithmetic opcodes pop their operands and
// push TOP"). Per-instruction op results are not otherwise tracked more
// precisely, since this is a static, non-executing analyzer.
func Add(a, b Word) Word {
	return binaryOrTop(a, b, func(x, y word.Word) word.Word { return x.Add(y) })
}

func Sub(a, b Word) Word {
	return binaryOrTop(a, b, func(x, y word.Word) word.Word { return x.Sub(y) })
}

func Mul(a, b Word) Word {
	return binaryOrTop(a, b, func(x, y word.Word) word.Word { return x.Mul(y) })
}

// Unknown conservatively widens any value, concrete or not, to TOP,
// the same value semantics pushes (as absval.Top) for opcodes this
// analyzer never tracks precisely (environment queries, comparisons,
// bitwise ops, memory and storage reads against an UNKNOWN collapse).
func Unknown(...Word) Word { return Top }

func binaryOrTop(a, b Word, f func(x, y word.Word) word.Word) Word {
	if a.IsBottom() || b.IsBottom() {
		return Bottom
	}
	av, ok := a.AsConstant()
	if !ok {
		return Top
	}
	bv, ok := b.AsConstant()
	if !ok {
		return Top
	}
	return Const(f(av, bv))
}
