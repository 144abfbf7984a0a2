package grading

import "time"

// NextStreak computes a user's streak after new activity at now, given the
// previous activity timestamp. Calendar days are compared in UTC: first
// activity ever starts a streak of 1, activity on the next day extends it,
// a gap of more than one day resets it, and further activity on the same
// day leaves it unchanged.
func NextStreak(current uint, lastActivity *time.Time, now time.Time) uint {
	if lastActivity == nil {
		return 1
	}

	today := dateOf(now)
	lastDay := dateOf(*lastActivity)
	elapsed := int(today.Sub(lastDay).Hours() / 24)

	switch {
	case elapsed == 1:
		return current + 1
	case elapsed > 1:
		return 1
	default:
		return current
	}
}

func dateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
