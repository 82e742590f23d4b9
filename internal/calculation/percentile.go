package calculation

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fedfire/fedfire/internal/domain"
)

// SummarizePercentiles computes the P10/P50/P90 order statistics of the
// sampled values using linear interpolation between bracketing sorted values
// (the standard R-7 method). Returns nil on empty input rather than erroring.
// The input slice is not modified.
func SummarizePercentiles(values []decimal.Decimal) *domain.PercentileSummary {
	if len(values) == 0 {
		return nil
	}

	sorted := make([]decimal.Decimal, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].LessThan(sorted[j])
	})

	return &domain.PercentileSummary{
		P10: interpolatedPercentile(sorted, 0.10),
		P50: interpolatedPercentile(sorted, 0.50),
		P90: interpolatedPercentile(sorted, 0.90),
	}
}

// interpolatedPercentile evaluates one percentile on an already-sorted slice.
// For a non-integer rank (n-1)*p it blends the two bracketing values
// proportionally to the fractional part.
func interpolatedPercentile(sorted []decimal.Decimal, p float64) decimal.Decimal {
	index := p * float64(len(sorted)-1)
	lower := int(index)
	if float64(lower) == index || lower+1 >= len(sorted) {
		return sorted[lower]
	}

	fraction := decimal.NewFromFloat(index - float64(lower))
	return sorted[lower].Add(sorted[lower+1].Sub(sorted[lower]).Mul(fraction))
}
