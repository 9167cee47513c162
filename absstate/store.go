// Package absstate provides AbstractState, the per-instruction record
// threaded through the fixed-point tracer (spec.md §3 "Abstract
// state"): a program counter, an abstract stack, and two key-value
// stores (memory and storage) that are either concrete maps or have
// collapsed to UNKNOWN, in which case every read yields TOP.
package absstate

import (
	"github.com/evmkit/evmasm/absval"
	"github.com/evmkit/evmasm/word"
)

// Store models EVM memory or storage. The zero Store is the concrete,
// empty store (every unwritten cell reads as the EVM-default zero
// word). Collapse widens a Store to UNKNOWN, after which every read
// returns TOP and writes are observed but not retained (spec.md §4.3).
type Store struct {
	unknown bool
	cells   map[word.Word]absval.Word
}

// UnknownStore is the UNKNOWN collapse: all reads yield TOP.
var UnknownStore = Store{unknown: true}

// Load returns the abstract value at key.
func (s Store) Load(key word.Word) absval.Word {
	if s.unknown {
		return absval.Top
	}
	if v, ok := s.cells[key]; ok {
		return v
	}
	return absval.Const(word.ZERO)
}

// Store returns the store with key set to val. Writing to an UNKNOWN
// store returns the store unchanged: the write is observed (it does
// not error) but the value is not remembered.
func (s Store) Store(key word.Word, val absval.Word) Store {
	if s.unknown {
		return s
	}
	ns := Store{cells: make(map[word.Word]absval.Word, len(s.cells)+1)}
	for k, v := range s.cells {
		ns.cells[k] = v
	}
	ns.cells[key] = val
	return ns
}

// Collapse widens s to UNKNOWN.
func (s Store) Collapse() Store { return UnknownStore }

// IsUnknown reports whether s has collapsed to UNKNOWN.
func (s Store) IsUnknown() bool { return s.unknown }

// Join computes the pointwise least upper bound of two stores. Keys
// present in only one side are joined against the EVM-default zero
// word, since an absent key denotes "never written", not "unknown".
func (a Store) Join(b Store) Store {
	if a.unknown || b.unknown {
		return UnknownStore
	}
	out := Store{cells: make(map[word.Word]absval.Word, len(a.cells)+len(b.cells))}
	for k, v := range a.cells {
		out.cells[k] = v.Join(b.Load(k))
	}
	for k, v := range b.cells {
		if _, ok := a.cells[k]; ok {
			continue
		}
		out.cells[k] = v.Join(a.Load(k))
	}
	return out
}

// Equal reports structural equality.
func (a Store) Equal(b Store) bool {
	if a.unknown != b.unknown {
		return false
	}
	if a.unknown {
		return true
	}
	if len(a.cells) != len(b.cells) {
		return false
	}
	for k, v := range a.cells {
		ov, ok := b.cells[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}
