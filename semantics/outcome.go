package semantics

import "github.com/evmkit/evmasm/absstate"

// Kind distinguishes the shape of an Outcome (spec.md §4.3): Continue
// is fall-through or a resolved jump (possibly multicasting several
// targets when the jump target is not a single constant); Split is
// JUMPI's fall-through/taken pair; Return is normal termination;
// Exception is a trapping termination.
type Kind uint8

const (
	Continue Kind = iota
	Split
	Return
	Exception
)

// Outcome is the result of a single step (spec.md §4.3). Targets holds
// every successor state to enqueue for Continue and Split; it is
// ignored for Return and Exception.
type Outcome struct {
	Kind      Kind
	Targets   []absstate.State
	Exception ExceptionKind
}

func continueTo(states ...absstate.State) Outcome {
	return Outcome{Kind: Continue, Targets: states}
}

func splitTo(fallthroughState, taken absstate.State) Outcome {
	return Outcome{Kind: Split, Targets: []absstate.State{fallthroughState, taken}}
}

func returnOutcome() Outcome { return Outcome{Kind: Return} }

func exceptionOutcome(k ExceptionKind) Outcome { return Outcome{Kind: Exception, Exception: k} }
