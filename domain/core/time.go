package core

import (
	"time"
)

// Clock returns the current time. Services take a Clock so tests can pin it.
type Clock func() time.Time

// SystemClock reads the wall clock
func SystemClock() time.Time {
	return time.Now()
}

// FixedClock returns a Clock that always reports t
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

// isoLayout renders UTC with millisecond precision and a Z suffix, the format
// the response sheet already stores in its timestamp column.
const isoLayout = "2006-01-02T15:04:05.000Z"

// ISOTimestamp formats t in UTC as 2006-01-02T15:04:05.000Z
func ISOTimestamp(t time.Time) string {
	return t.UTC().Format(isoLayout)
}
