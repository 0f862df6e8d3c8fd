package easel

import "github.com/rs/zerolog"

type options struct {
	id       string
	log      zerolog.Logger
	observer Observer
}

// Option configures an Easel.
type Option func(*options)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithObserver registers an Observer for frame loop events.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithID sets the identifier attached to log lines. The default is a random
// UUID.
func WithID(id string) Option {
	return func(o *options) {
		o.id = id
	}
}
