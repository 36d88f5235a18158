package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/reeltrack/reeltrack/pkg/interfaces"
)

// Fanout delivers each event to every wrapped publisher in order. A failing
// target does not stop delivery to the rest; the failures are joined.
type Fanout struct {
	targets []interfaces.EventPublisher
}

// NewFanout creates a publisher over targets. Nil targets are skipped.
func NewFanout(targets ...interfaces.EventPublisher) *Fanout {
	f := &Fanout{}
	for _, t := range targets {
		if t != nil {
			f.targets = append(f.targets, t)
		}
	}
	return f
}

// Publish sends event to all targets.
func (f *Fanout) Publish(ctx context.Context, event interfaces.Event) error {
	var errs []error
	for i, target := range f.targets {
		if err := target.Publish(ctx, event); err != nil {
			errs = append(errs, fmt.Errorf("target %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Len returns the number of targets.
func (f *Fanout) Len() int {
	return len(f.targets)
}
