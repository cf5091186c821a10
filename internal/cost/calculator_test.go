package cost

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/evidence-cli/internal/config"
)

func testRates() map[string]config.ModelPricing {
	return map[string]config.ModelPricing{
		"haiku": {
			Input: 0.80, Output: 4.00,
			CacheWriteMul: 1.25, CacheReadMul: 0.1,
		},
		"sonnet": {
			Input: 3.00, Output: 15.00,
			CacheWriteMul: 1.25, CacheReadMul: 0.1,
		},
	}
}

func TestClaude(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(testRates())

	tests := []struct {
		name       string
		model      string
		input      int
		output     int
		cacheWrite int
		cacheRead  int
		want       float64
	}{
		{
			name:  "haiku simple",
			model: "haiku",
			input: 1000000, output: 100000,
			want: 0.80 + 0.40, // 0.80 input + 0.40 output
		},
		{
			name:  "haiku with cache",
			model: "haiku",
			input: 500000, output: 50000,
			cacheWrite: 200000, cacheRead: 300000,
			// in: 0.5M/1M * 0.80 = 0.40
			// out: 0.05M/1M * 4.00 = 0.20
			// cw: 0.2M/1M * 0.80 * 1.25 = 0.20
			// cr: 0.3M/1M * 0.80 * 0.1 = 0.024
			want: 0.40 + 0.20 + 0.20 + 0.024,
		},
		{
			name:  "sonnet simple",
			model: "sonnet",
			input: 1000000, output: 100000,
			want: 3.00 + 1.50, // 3.00 input + 1.50 output
		},
		{
			name:  "unknown model returns 0",
			model: "unknown",
			input: 1000000, output: 1000000,
			want: 0,
		},
		{
			name:  "zero tokens returns 0",
			model: "haiku",
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.Claude(tt.model, tt.input, tt.output, tt.cacheWrite, tt.cacheRead)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestClaude_Additive(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(testRates())

	one := calc.Claude("sonnet", 10000, 2000, 0, 0)
	sum := 0.0
	for i := 0; i < 6; i++ {
		sum += one
	}
	assert.InDelta(t, calc.Claude("sonnet", 60000, 12000, 0, 0), sum, 1e-9)
}

func TestNewCalculator_DefaultRates(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(nil)

	got := calc.Claude("claude-sonnet-4-5-20250929", 1000000, 0, 0, 0)
	assert.InDelta(t, 3.00, got, 1e-9)
}
