package immstruct

import (
	"log/slog"

	"github.com/omniscientjs/immstruct/history"
	"github.com/omniscientjs/immstruct/metrics"
)

type options struct {
	key          string
	data         any
	history      bool
	historyLimit int
	scheduler    Scheduler
	logger       *slog.Logger
	metrics      *metrics.Metrics
}

// Option configures a Structure.
type Option func(*options)

// WithKey names the structure. Without it a random key is generated.
func WithKey(key string) Option {
	return func(o *options) { o.key = key }
}

// WithData sets the initial root, either a *tree.Node or plain Go data
// convertible with tree.FromPlain. The default is an empty map.
func WithData(data any) Option {
	return func(o *options) { o.data = data }
}

// WithHistory enables the undo log, keeping at most limit snapshots. A
// limit below 1 keeps every snapshot.
func WithHistory(limit int) Option {
	return func(o *options) {
		o.history = true
		o.historyLimit = limit
		if limit < 1 {
			o.historyLimit = history.Unlimited
		}
	}
}

// WithScheduler sets the hook used to deliver next-animation-frame events.
// Without one, those events never fire.
func WithScheduler(s Scheduler) Option {
	return func(o *options) { o.scheduler = s }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics records the activity of the structure in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}
