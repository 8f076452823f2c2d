package court

import (
	"context"
	"fmt"
	"time"
)

type Option func(*options)

type options struct {
	notifier Notifier
	now      func() time.Time
}

func WithNotifier(notifier Notifier) Option {
	return func(o *options) {
		if notifier != nil {
			o.notifier = notifier
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		notifier: noopNotifier{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// timestamp returns the write time at database precision.
func (o options) timestamp() time.Time {
	return o.now().UTC().Truncate(time.Microsecond)
}

// touch returns a last-updated time strictly after prev.
func (o options) touch(prev time.Time) time.Time {
	now := o.timestamp()
	if !now.After(prev) {
		now = prev.Add(time.Microsecond)
	}
	return now
}

// notify runs after commit. The publish is detached from ctx cancellation so
// a caller hanging up cannot drop the notification of a stored write; the
// publishers bound it with their own timeouts. A crash between commit and
// publish still loses the notification.
func (o options) notify(ctx context.Context, n Notification) error {
	if err := o.notifier.Notify(context.WithoutCancel(ctx), n); err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrNotificationFailed, n.Audit, n.CourtID, err)
	}
	return nil
}
