package session

import "time"

type settings struct {
	now func() time.Time
}

func defaultSettings() settings {
	return settings{now: time.Now}
}

// Option is a functional option for configuring a session store.
type Option func(*settings)

// WithClock overrides the time source, primarily for tests exercising
// expiry and rotation.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}
