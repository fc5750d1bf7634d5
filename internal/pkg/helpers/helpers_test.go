package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{"first page", 1, 10, 0, 10},
		{"third page", 3, 25, 50, 25},
		{"zero page defaults to first", 0, 10, 0, 10},
		{"oversized page size capped", 1, 500, 0, DefaultPageSize},
		{"zero size defaults", 2, 0, 10, DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(42, 1, 10)
	assert.Equal(t, 1, info.CurrentPage)
	assert.Equal(t, 5, info.TotalPages)
	assert.Equal(t, int64(42), info.TotalItems)

	empty := NewPaginationInfo(0, 1, 10)
	assert.Equal(t, 1, empty.TotalPages)

	overshoot := NewPaginationInfo(10, 9, 10)
	assert.Equal(t, 1, overshoot.CurrentPage)
}

func TestDaysSince(t *testing.T) {
	now := time.Date(2026, 4, 23, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysSince(now.Add(-6*time.Hour), now))
	assert.Equal(t, 1, DaysSince(now.Add(-25*time.Hour), now))
	assert.Equal(t, 4, DaysSince(now.AddDate(0, 0, -4), now))
	assert.Equal(t, 0, DaysSince(now.Add(time.Hour), now), "future times never go negative")
	assert.Equal(t, 0, DaysSince(time.Time{}, now))
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 10*time.Minute, ParseDuration("10m", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("not-a-duration", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("", time.Hour))
}
