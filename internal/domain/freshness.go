package domain

import "time"

// IsStale decides whether a cached artifact must be regenerated.
// A forced run or a missing cached timestamp is always stale; otherwise only
// a change after the cached timestamp is.
func IsStale(front *time.Time, change time.Time, force bool) bool {
	if force || front == nil {
		return true
	}
	return change.After(*front)
}
