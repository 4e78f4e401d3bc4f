package billing_test

import (
	"math"
	"testing"
	"time"

	"baize/shared/billing"
)

func TestElapsedHours(t *testing.T) {
	base := time.Date(2025, time.March, 10, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected float64
	}{
		{
			name:     "one hour",
			start:    base,
			end:      base.Add(time.Hour),
			expected: 1,
		},
		{
			name:     "ninety minutes",
			start:    base,
			end:      base.Add(90 * time.Minute),
			expected: 1.5,
		},
		{
			name:     "millisecond resolution",
			start:    base,
			end:      base.Add(time.Hour + 500*time.Millisecond),
			expected: 1 + 0.5/3600,
		},
		{
			name:     "zero elapsed",
			start:    base,
			end:      base,
			expected: 0,
		},
		{
			name:     "negative elapsed clamps to zero",
			start:    base,
			end:      base.Add(-time.Hour),
			expected: 0,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := billing.ElapsedHours(test.start, test.end)
			if math.Abs(result-test.expected) > 1e-9 {
				t.Errorf("expected %v, got %v", test.expected, result)
			}
		})
	}
}

func TestRoundCurrency(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{
			name:     "no rounding needed",
			input:    22.5,
			expected: 22.5,
		},
		{
			name:     "rounds down",
			input:    10.124,
			expected: 10.12,
		},
		{
			name:     "half rounds up",
			input:    10.125,
			expected: 10.13,
		},
		{
			name:     "rounds up",
			input:    10.126,
			expected: 10.13,
		},
		{
			name:     "zero",
			input:    0,
			expected: 0,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := billing.RoundCurrency(test.input)
			if result != test.expected {
				t.Errorf("expected %v, got %v", test.expected, result)
			}
		})
	}
}

func TestCost(t *testing.T) {
	base := time.Date(2025, time.March, 10, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		start      time.Time
		end        time.Time
		hourlyRate float64
		expected   float64
	}{
		{
			name:       "ninety minutes at 15.00",
			start:      base,
			end:        base.Add(90 * time.Minute),
			hourlyRate: 15,
			expected:   22.5,
		},
		{
			name:       "one minute at 12.00",
			start:      base,
			end:        base.Add(time.Minute),
			hourlyRate: 12,
			expected:   0.2,
		},
		{
			name:       "zero duration is free",
			start:      base,
			end:        base,
			hourlyRate: 25,
			expected:   0,
		},
		{
			name:       "clock moved backwards bills zero",
			start:      base,
			end:        base.Add(-10 * time.Minute),
			hourlyRate: 25,
			expected:   0,
		},
		{
			name:       "sub-cent fraction rounds half up",
			start:      base,
			end:        base.Add(101 * time.Minute),
			hourlyRate: 10,
			expected:   16.83,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := billing.Cost(test.start, test.end, test.hourlyRate)
			if result != test.expected {
				t.Errorf("expected %v, got %v", test.expected, result)
			}
		})
	}
}

func TestCostMonotonic(t *testing.T) {
	base := time.Date(2025, time.March, 10, 18, 0, 0, 0, time.UTC)

	previous := 0.0
	for minutes := 0; minutes <= 240; minutes += 7 {
		cost := billing.Cost(base, base.Add(time.Duration(minutes)*time.Minute), 18.5)
		if cost < previous {
			t.Fatalf("cost decreased from %v to %v at %d minutes", previous, cost, minutes)
		}

		previous = cost
	}
}
