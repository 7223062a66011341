package pkg

import "time"

// Clock abstracts wall-clock reads so session timers and schedulers can be
// driven deterministically in tests. All core components read time through
// it rather than calling time.Now directly.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// NewSystemClock returns a Clock backed by the local device time.
func NewSystemClock() Clock {
	return systemClock{}
}
