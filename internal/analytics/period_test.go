package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePeriodTokens(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, loc)

	tests := []struct {
		token    string
		days     int
		resolved string
	}{
		{"7days", 7, "7days"},
		{"30days", 30, "30days"},
		{"90days", 90, "90days"},
		{"year", 365, "year"},
		{"", 30, "30days"},
		{"garbage", 30, "30days"},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			w := ResolvePeriod(tt.token, nil, nil, now, loc)

			assert.Equal(t, tt.resolved, w.Token)
			assert.Equal(t, tt.days, w.Days)

			// Full-day bounds, ending today.
			assert.Equal(t, time.Date(2024, 3, 15, 23, 59, 59, 0, loc), w.To)
			assert.Equal(t, 0, w.From.Hour())
			assert.Equal(t, tt.days, daysBetween(w.From, w.To))
		})
	}
}

func TestResolvePeriodExplicitDates(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, loc)
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, loc)
	end := time.Date(2024, 2, 10, 0, 0, 0, 0, loc)

	w := ResolvePeriod("7days", &start, &end, now, loc)

	// Explicit dates win over the token.
	assert.Equal(t, "custom", w.Token)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, loc), w.From)
	assert.Equal(t, time.Date(2024, 2, 10, 23, 59, 59, 0, loc), w.To)
	assert.Equal(t, 10, w.Days)
}

func TestResolvePeriodSwapsReversedDates(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, loc)
	start := time.Date(2024, 2, 10, 0, 0, 0, 0, loc)
	end := time.Date(2024, 2, 1, 0, 0, 0, 0, loc)

	w := ResolvePeriod("", &start, &end, now, loc)

	require.True(t, w.From.Before(w.To))
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, loc), w.From)
	assert.Equal(t, time.Date(2024, 2, 10, 23, 59, 59, 0, loc), w.To)
}

func TestResolvePeriodComparisonWindow(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, loc)

	w := ResolvePeriod("7days", nil, nil, now, loc)

	// Comparison window is the immediately preceding stretch, same length.
	assert.Equal(t, time.Date(2024, 3, 8, 23, 59, 59, 0, loc), w.PrevTo)
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, loc), w.PrevFrom)
	assert.Equal(t, w.Days, daysBetween(w.PrevFrom, w.PrevTo))
	assert.Equal(t, w.From.AddDate(0, 0, -1).Format("2006-01-02"), w.PrevTo.Format("2006-01-02"))
}

func TestResolvePeriodSingleExplicitDateFallsBack(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, loc)
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, loc)

	// One date without the other does not make a custom window.
	w := ResolvePeriod("7days", &start, nil, now, loc)
	assert.Equal(t, "7days", w.Token)
	assert.Equal(t, 7, w.Days)
}
