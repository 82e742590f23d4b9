package calculation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeededRandDeterminism(t *testing.T) {
	a := NewSeededRand(12345)
	b := NewSeededRand(12345)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Float64(), b.Float64(), "draw %d diverged", i)
	}
}

func TestSeededRandDifferentSeedsDiverge(t *testing.T) {
	a := NewSeededRand(1)
	b := NewSeededRand(2)

	same := 0
	for i := 0; i < 100; i++ {
		if a.Float64() == b.Float64() {
			same++
		}
	}
	assert.Less(t, same, 5, "independent streams should rarely coincide")
}

func TestSeededRandZeroSeedCoerces(t *testing.T) {
	zero := NewSeededRand(0)
	def := NewSeededRand(DefaultSeed)
	assert.Equal(t, def.Float64(), zero.Float64())
}

func TestFloat64Range(t *testing.T) {
	rng := NewSeededRand(99)
	for i := 0; i < 10000; i++ {
		v := rng.Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestNormFloat64Moments(t *testing.T) {
	rng := NewSeededRand(7)
	n := 20000
	sum := 0.0
	sumSq := 0.0
	for i := 0; i < n; i++ {
		v := rng.NormFloat64()
		assert.False(t, math.IsNaN(v))
		assert.False(t, math.IsInf(v, 0))
		sum += v
		sumSq += v * v
	}
	mean := sum / float64(n)
	variance := sumSq/float64(n) - mean*mean

	assert.InDelta(t, 0.0, mean, 0.05)
	assert.InDelta(t, 1.0, variance, 0.1)
}
