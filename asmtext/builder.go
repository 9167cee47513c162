// Package asmtext implements the bidirectional mapping between the
// line-oriented assembly language and concrete bytecode (spec.md §6
// "Assembly language", §4.1 "Lifecycle"): Parse + Builder assemble
// source into instr.Concrete, and Disassemble is the inverse.
package asmtext

import (
	"github.com/evmkit/evmasm/instr"
	"github.com/evmkit/evmasm/ops"
)

type label struct {
	name    string
	defined bool
	insn    int // instruction index the label refers to, once defined
}

// Builder assembles a sequence of instr.Symbolic into instr.Concrete,
// resolving label references in a single patch pass once every label
// has been marked (spec.md §4.1 "Lifecycle": "a builder that resolves
// labels to byte offsets in a single patch pass").
type Builder struct {
	labels []label
	insns  []instr.Symbolic
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// Len returns the number of instructions pushed so far.
func (b *Builder) Len() int { return len(b.insns) }

// GetLabel returns the label id for name, registering it if this is
// the first reference.
func (b *Builder) GetLabel(name string) int {
	for i, l := range b.labels {
		if l.name == name {
			return i
		}
	}
	b.labels = append(b.labels, label{name: name})
	return len(b.labels) - 1
}

// MarkLabel defines name at the current instruction offset. It
// registers name if this is the first reference. Marking an
// already-defined label is an AssemblyError (duplicate definition).
func (b *Builder) MarkLabel(name string) error {
	id := b.GetLabel(name)
	if b.labels[id].defined {
		return AssemblyError{Label: name, Reason: "duplicate label definition"}
	}
	b.labels[id].defined = true
	b.labels[id].insn = b.Len()
	return nil
}

// Push appends a symbolic instruction to the builder.
func (b *Builder) Push(i instr.Symbolic) {
	b.insns = append(b.insns, i)
}

// Finalize resolves every label reference and returns the concrete
// instruction sequence. It fails if any referenced label was never
// marked.
func (b *Builder) Finalize() ([]instr.Concrete, error) {
	for _, l := range b.labels {
		if !l.defined {
			return nil, AssemblyError{Label: l.name, Reason: "reference to undefined label"}
		}
	}

	// widths[i] is the current guess at the byte length of insns[i];
	// only PUSHL's width is uncertain up front (it depends on the byte
	// offset of its target, which depends on every width before it).
	// Byte offsets only grow as widths grow, so iterating until no
	// width changes is guaranteed to terminate (bounded by one growth
	// step in the worst case per instruction).
	widths := make([]int, len(b.insns))
	for i, ins := range b.insns {
		widths[i] = staticWidth(ins)
	}

	for pass := 0; pass <= len(b.insns); pass++ {
		pcs := prefixSum(widths)
		changed := false
		for i, ins := range b.insns {
			if ins.Kind != ops.PushL {
				continue
			}
			target := pcs[b.labels[ins.Label].insn]
			w := 1 + pushWidth(ins.Large, target)
			if w != widths[i] {
				widths[i] = w
				changed = true
			}
		}
		if !changed {
			logger.Printf("width fixed point reached after %d passes", pass)
			break
		}
	}

	pcs := prefixSum(widths)
	out := make([]instr.Concrete, 0, len(b.insns))
	for i, ins := range b.insns {
		c, err := b.resolve(ins, pcs, i)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func prefixSum(widths []int) []int {
	pcs := make([]int, len(widths)+1)
	for i, w := range widths {
		pcs[i+1] = pcs[i] + w
	}
	return pcs
}
