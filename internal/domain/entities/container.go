package entities

import (
	"time"

	"go.uber.org/dig"
)

// Clock supplies the current time; commands take it so tests can pin the crawl timestamp.
type Clock func() time.Time

// NewClock returns the wall clock.
func NewClock() Clock {
	return time.Now
}

// RegisterProviders registers all entity providers with the DIG container.
// Settings are not provided here: they depend on a config path only known to controllers.
func RegisterProviders(container *dig.Container) error {
	return container.Provide(NewClock)
}
