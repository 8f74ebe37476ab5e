package dataset

import (
	"math"
	"math/rand/v2"
)

// DefaultTrainRatio puts 80% of the characters into the training set.
const DefaultTrainRatio = 0.8

// NewRand returns the generator used for reproducible splits.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// Split shuffles a copy of chars with rng and cuts it at int(len*ratio).
// chars is not modified. The same seed always gives the same split.
// ratio is clamped to [0, 1]; NaN falls back to DefaultTrainRatio.
func Split[T any](chars []T, ratio float64, rng *rand.Rand) (train, valid []T) {
	shuffled := append([]T(nil), chars...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if math.IsNaN(ratio) {
		ratio = DefaultTrainRatio
	}
	ratio = min(max(ratio, 0), 1)
	cut := int(float64(len(shuffled)) * ratio)
	return shuffled[:cut], shuffled[cut:]
}
