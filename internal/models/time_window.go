package models

import (
	"fmt"
	"time"
)

// TimeWindow is a dashboard query window: results with createdAt inside the
// window are folded into one aggregation pass.
type TimeWindow string

const (
	WindowHour  TimeWindow = "1h"
	WindowDay   TimeWindow = "24h"
	WindowWeek  TimeWindow = "7d"
	WindowMonth TimeWindow = "30d"
)

func NewTimeWindowFromString(s string) (TimeWindow, error) {
	switch TimeWindow(s) {
	case WindowHour, WindowDay, WindowWeek, WindowMonth:
		return TimeWindow(s), nil
	}
	return "", fmt.Errorf("invalid time window: %q", s)
}

func (w TimeWindow) Duration() time.Duration {
	switch w {
	case WindowHour:
		return time.Hour
	case WindowDay:
		return 24 * time.Hour
	case WindowWeek:
		return 7 * 24 * time.Hour
	case WindowMonth:
		return 30 * 24 * time.Hour
	default:
		panic(fmt.Sprintf("invalid TimeWindow: %q", w))
	}
}

// Since returns the inclusive lower bound of the window relative to now.
func (w TimeWindow) Since(now time.Time) time.Time {
	return now.UTC().Add(-w.Duration())
}
