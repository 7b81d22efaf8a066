package store

import "github.com/rs/zerolog"

// Notifier receives the transient user notifications a store emits after
// each operation, the gateway's counterpart of the frontend's toasts.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// LogNotifier logs notifications through zerolog. It is the default sink
// when no view-facing channel is wired in.
type LogNotifier struct {
	log zerolog.Logger
}

// NewLogNotifier creates a notifier backed by the given logger.
func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Success(msg string) {
	n.log.Info().Str("notification", "success").Msg(msg)
}

func (n *LogNotifier) Error(msg string) {
	n.log.Warn().Str("notification", "error").Msg(msg)
}
