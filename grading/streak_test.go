package grading

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextStreak(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	earlierToday := now.Add(-3 * time.Hour)
	threeDaysAgo := now.AddDate(0, 0, -3)
	lateYesterday := time.Date(2025, 6, 14, 23, 59, 0, 0, time.UTC)

	testCases := []struct {
		name    string
		current uint
		last    *time.Time
		want    uint
	}{
		{"first activity starts streak", 0, nil, 1},
		{"next day extends streak", 4, &yesterday, 5},
		{"same day leaves streak unchanged", 4, &earlierToday, 4},
		{"gap resets streak", 9, &threeDaysAgo, 1},
		{"calendar day boundary counts as next day", 2, &lateYesterday, 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NextStreak(tc.current, tc.last, now))
		})
	}
}
