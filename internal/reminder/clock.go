package reminder

import "time"

// Clock supplies the current time so schedulers can be driven by a fake
// in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
