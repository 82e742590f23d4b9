package domain

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCoerceFloat(t *testing.T) {
	assert.Equal(t, 1.5, CoerceFloat(1.5, 0))
	assert.Equal(t, 0.0, CoerceFloat(math.NaN(), 0))
	assert.Equal(t, 7.0, CoerceFloat(math.Inf(1), 7))
	assert.Equal(t, 7.0, CoerceFloat(math.Inf(-1), 7))
}

func TestCoerceFloatRange(t *testing.T) {
	assert.Equal(t, 0.5, CoerceFloatRange(0.5, 0, 0, 1))
	assert.Equal(t, 0.0, CoerceFloatRange(-3, 0.5, 0, 1))
	assert.Equal(t, 1.0, CoerceFloatRange(42, 0.5, 0, 1))
	assert.Equal(t, 0.5, CoerceFloatRange(math.NaN(), 0.5, 0, 1))
}

func TestCoerceDecimal(t *testing.T) {
	fallback := decimal.NewFromInt(100)
	assert.True(t, CoerceDecimal(decimal.NewFromInt(5), fallback).Equal(decimal.NewFromInt(5)))
	assert.True(t, CoerceDecimal(decimal.Zero, fallback).IsZero())
	assert.True(t, CoerceDecimal(decimal.NewFromInt(-5), fallback).Equal(fallback))
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 5, ClampInt(5, 0, 10))
	assert.Equal(t, 0, ClampInt(-5, 0, 10))
	assert.Equal(t, 10, ClampInt(50, 0, 10))
	assert.Equal(t, 3, ClampIntMin(3, 0))
	assert.Equal(t, 0, ClampIntMin(-3, 0))
}
