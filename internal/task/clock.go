package task

import (
	"time"

	"github.com/google/uuid"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time {
	return f()
}

// IDGenerator supplies new task identifiers.
type IDGenerator interface {
	NewID() string
}

// IDFunc adapts a function to IDGenerator.
type IDFunc func() string

// NewID calls f.
func (f IDFunc) NewID() string {
	return f()
}

// SystemClock reports the wall clock in UTC.
var SystemClock Clock = ClockFunc(func() time.Time {
	return time.Now().UTC()
})

// UUIDGenerator issues random (version 4) UUIDs.
var UUIDGenerator IDGenerator = IDFunc(uuid.NewString)
