package models

import (
	"time"
)

// Now returns the current time in UTC
func Now() time.Time {
	return time.Now().UTC()
}

// Clock abstracts the wall clock so time-dependent rules can be tested
type Clock func() time.Time

// NowOr returns clock() when a clock is set, otherwise Now()
func NowOr(clock Clock) time.Time {
	if clock == nil {
		return Now()
	}
	return clock()
}
