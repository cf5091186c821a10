// Package cost computes USD estimates for model API usage.
package cost

import "github.com/sells-group/evidence-cli/internal/config"

// Calculator computes costs for Anthropic API usage from per-model rates.
type Calculator struct {
	rates map[string]config.ModelPricing
}

// NewCalculator creates a Calculator with the given per-model rates.
// An empty map falls back to the defaults.
func NewCalculator(rates map[string]config.ModelPricing) *Calculator {
	if len(rates) == 0 {
		rates = DefaultRates()
	}
	return &Calculator{rates: rates}
}

// Claude computes the cost of one or more Claude calls from token counts.
// Unknown models cost zero rather than failing the run.
func (c *Calculator) Claude(model string, input, output, cacheWrite, cacheRead int) float64 {
	rate, ok := c.rates[model]
	if !ok {
		return 0
	}

	inCost := (float64(input) / 1e6) * rate.Input
	outCost := (float64(output) / 1e6) * rate.Output
	cwCost := (float64(cacheWrite) / 1e6) * rate.Input * rate.CacheWriteMul
	crCost := (float64(cacheRead) / 1e6) * rate.Input * rate.CacheReadMul

	return inCost + outCost + cwCost + crCost
}

// DefaultRates returns the default pricing rates (USD per million tokens).
func DefaultRates() map[string]config.ModelPricing {
	return map[string]config.ModelPricing{
		"claude-haiku-4-5-20251001": {
			Input: 0.80, Output: 4.00,
			CacheWriteMul: 1.25, CacheReadMul: 0.1,
		},
		"claude-sonnet-4-5-20250929": {
			Input: 3.00, Output: 15.00,
			CacheWriteMul: 1.25, CacheReadMul: 0.1,
		},
		"claude-opus-4-6": {
			Input: 15.00, Output: 75.00,
			CacheWriteMul: 1.25, CacheReadMul: 0.1,
		},
	}
}
