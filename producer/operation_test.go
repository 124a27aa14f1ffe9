package producer_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/cdc-load-producer/producer"
)

func Test_WeightedPicker_FollowsDefaultWeights(t *testing.T) {
	picker := producer.NewWeightedPicker(producer.DefaultWeights(), rand.New(rand.NewPCG(1, 2)))

	const draws = 80_000
	counts := map[producer.OperationKind]int{}

	for range draws {
		counts[picker.Pick()]++
	}

	assert.InDelta(t, 2.0/8.0, float64(counts[producer.OpInsertUser])/draws, 0.01)
	assert.InDelta(t, 1.0/8.0, float64(counts[producer.OpUpdateUser])/draws, 0.01)
	assert.InDelta(t, 5.0/8.0, float64(counts[producer.OpInsertActivity])/draws, 0.01)
}

func Test_WeightedPicker_IgnoresNonPositiveWeights(t *testing.T) {
	picker := producer.NewWeightedPicker([]producer.WeightedOperation{
		{Kind: producer.OpInsertUser, Weight: 0},
		{Kind: producer.OpUpdateUser, Weight: -3},
		{Kind: producer.OpInsertActivity, Weight: 1},
	}, nil)

	for range 100 {
		assert.Equal(t, producer.OpInsertActivity, picker.Pick())
	}
}

func Test_WeightedPicker_WithoutUsableWeights_PicksInsertUser(t *testing.T) {
	picker := producer.NewWeightedPicker(nil, nil)

	assert.Equal(t, producer.OpInsertUser, picker.Pick())
}

func Test_SequencePicker_RepeatsLastKind(t *testing.T) {
	picker := producer.NewSequencePicker(producer.OpUpdateUser, producer.OpInsertActivity)

	assert.Equal(t, producer.OpUpdateUser, picker.Pick())
	assert.Equal(t, producer.OpInsertActivity, picker.Pick())
	assert.Equal(t, producer.OpInsertActivity, picker.Pick())

	assert.Equal(t, producer.OpInsertUser, producer.NewSequencePicker().Pick())
}
