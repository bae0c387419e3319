// Package orchestrators holds the write-side workflows. Each orchestrator
// declares the narrow backend interface it needs, takes an Input and a Deps
// struct, and returns an explicit Result.
package orchestrators

import "time"

// NowFunc supplies the current time, injectable for tests.
type NowFunc func() time.Time

// EventTimes carries the parsed start and end of an event form.
type EventTimes struct {
	Start time.Time
	End   time.Time
}
