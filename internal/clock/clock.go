package clock

import "time"

// Clock supplies the current time so daily buckets and expiry checks stay testable.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

// Now returns the current wall-clock time.
func (System) Now() time.Time { return time.Now() }

// DateKey returns the UTC calendar date of t as "YYYY-MM-DD".
// It is the partition key for every daily counter.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
