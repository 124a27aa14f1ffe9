package producer

import (
	"math/rand/v2"

	"github.com/samber/lo"
)

// OperationKind names one of the three writes the producer performs.
type OperationKind string

const (
	OpInsertUser     OperationKind = "insert_user"
	OpUpdateUser     OperationKind = "update_user"
	OpInsertActivity OperationKind = "insert_activity"
)

// WeightedOperation pairs an operation kind with its relative draw weight.
type WeightedOperation struct {
	Kind   OperationKind
	Weight int
}

// DefaultWeights mirrors a realistic write mix: activities dominate, user updates are rare.
func DefaultWeights() []WeightedOperation {
	return []WeightedOperation{
		{Kind: OpInsertUser, Weight: 2},
		{Kind: OpUpdateUser, Weight: 1},
		{Kind: OpInsertActivity, Weight: 5},
	}
}

// OperationPicker draws the operation for the next cycle.
type OperationPicker interface {
	Pick() OperationKind
}

// WeightedPicker draws operations with fixed relative weights.
type WeightedPicker struct {
	weights []WeightedOperation
	total   int
	rnd     *rand.Rand
}

// NewWeightedPicker creates a picker over the given weights. Entries with a non-positive weight
// are never drawn. A nil rnd uses the package-level random source.
func NewWeightedPicker(weights []WeightedOperation, rnd *rand.Rand) *WeightedPicker {
	usable := lo.Filter(weights, func(w WeightedOperation, _ int) bool { return w.Weight > 0 })

	return &WeightedPicker{
		weights: usable,
		total:   lo.SumBy(usable, func(w WeightedOperation) int { return w.Weight }),
		rnd:     rnd,
	}
}

// Pick returns a weighted-random operation kind, or OpInsertUser when no weight is usable.
func (p *WeightedPicker) Pick() OperationKind {
	if p.total == 0 {
		return OpInsertUser
	}

	var n int
	if p.rnd != nil {
		n = p.rnd.IntN(p.total)
	} else {
		n = rand.IntN(p.total) //nolint:gosec // synthetic load, math/rand is sufficient
	}

	for _, w := range p.weights {
		if n < w.Weight {
			return w.Kind
		}
		n -= w.Weight
	}

	return p.weights[len(p.weights)-1].Kind
}

// SequencePicker replays a fixed sequence of kinds, repeating the last one when exhausted.
// It makes the draw deterministic, e.g. to force a specific operation in tests or smoke runs.
type SequencePicker struct {
	kinds []OperationKind
	next  int
}

// NewSequencePicker creates a SequencePicker. An empty sequence always yields OpInsertUser.
func NewSequencePicker(kinds ...OperationKind) *SequencePicker {
	return &SequencePicker{kinds: kinds}
}

// Pick returns the next kind of the sequence.
func (p *SequencePicker) Pick() OperationKind {
	if len(p.kinds) == 0 {
		return OpInsertUser
	}

	if p.next >= len(p.kinds) {
		return p.kinds[len(p.kinds)-1]
	}

	kind := p.kinds[p.next]
	p.next++

	return kind
}
