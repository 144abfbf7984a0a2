package services

import "sync"

// userLocks serializes submission and progress writes per acting user. All
// attempt-count reads, ledger appends and aggregate recomputes for a user
// happen under this lock, which keeps attempt numbers gapless and progress
// rows consistent under concurrent requests. Entries are never removed; the
// map is bounded by the active user population.
var userLocks sync.Map

// lockUser acquires the per-user lock and returns the unlock func.
func lockUser(userID uint) func() {
	v, _ := userLocks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
