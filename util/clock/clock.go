// Package clock abstracts "now" so every time-based decision stays
// deterministic under test.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

func System() Clock { return systemClock{} }

// Frozen returns a clock stuck at t.
func Frozen(t time.Time) Clock { return frozen{t} }

type frozen struct{ t time.Time }

func (f frozen) Now() time.Time { return f.t }
