package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWholeDaysUntil(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		target time.Time
		want   int
	}{
		{"exactly thirty days", now.Add(30 * 24 * time.Hour), 30},
		{"just under thirty days", now.Add(30*24*time.Hour - time.Millisecond), 30},
		{"now", now, 0},
		{"one day overdue", now.Add(-24 * time.Hour), -1},
		{"a day and a half overdue", now.Add(-36 * time.Hour), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WholeDaysUntil(now, tt.target))
		})
	}
}
