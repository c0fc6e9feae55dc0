package teleport

import "log/slog"

type options struct {
	logger   *slog.Logger
	observer Observer
	events   EventSet
}

// Option configures a Controller.
type Option func(*options)

// WithLogger sets the logger. If nil, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithObserver sets the observer notified of deploys, withdrawals,
// redirects and rejections.
func WithObserver(observer Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// WithRedirectEvents replaces DefaultRedirectEvents.
func WithRedirectEvents(events EventSet) Option {
	return func(o *options) {
		o.events = events
	}
}

func newOptions(opts []Option) options {
	o := options{events: DefaultRedirectEvents}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.observer == nil {
		o.observer = NopObserver{}
	}
	return o
}
