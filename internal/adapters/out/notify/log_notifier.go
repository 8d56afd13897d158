package notify

import (
	"context"
	"log/slog"

	"logistics/internal/core/ports"
)

// LogNotifier writes notifications to the log instead of delivering them. It stands
// in for FCM when no project is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "notifications")}
}

func (l *LogNotifier) Send(ctx context.Context, n ports.Notification, tokens []string) error {
	l.logger.InfoContext(ctx, "notification not delivered, push is disabled",
		"title", n.Title, "link", n.Link, "recipients", len(tokens))
	return nil
}
