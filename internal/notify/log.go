// internal/notify/log.go
package notify

import "log/slog"

// LogNotifier writes alerts to the log only. Used when no mail host is
// configured.
type LogNotifier struct {
	log *slog.Logger
}

// NewLogNotifier returns a log-only notifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{log: logger}
}

// Send logs the alert.
func (n *LogNotifier) Send(subject, body string) {
	n.log.Warn("alert", "subject", subject, "body", body)
}
