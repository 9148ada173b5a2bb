package notification

import (
	"context"
	"log/slog"
)

// LogNotifier writes notifications to the log instead of sending email.
// Used in dev and test environments where no SMTP server exists; the raw
// token in the log line is what makes local login possible.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n *LogNotifier) SendLoginLink(_ context.Context, email, token string) error {
	n.Logger.Info("login link (not emailed)",
		slog.String("email", email),
		slog.String("token", token),
	)
	return nil
}

func (n *LogNotifier) SendInvitation(_ context.Context, email, studioName, token string) error {
	n.Logger.Info("invitation (not emailed)",
		slog.String("email", email),
		slog.String("studio", studioName),
		slog.String("token", token),
	)
	return nil
}
