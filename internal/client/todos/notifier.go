package todos

import (
	"context"
	"log/slog"
)

// Level is the severity of a notice.
type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

// Notice is a transient message for the user.
type Notice struct {
	Text  string
	Level Level
}

// Notifier receives transient notices about finished mutations.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, n Notice)

// Notify calls f(ctx, n).
func (f NotifierFunc) Notify(ctx context.Context, n Notice) {
	f(ctx, n)
}

// logNotifier пишет уведомления в лог, используется по умолчанию
type logNotifier struct {
	logger *slog.Logger
}

func (l logNotifier) Notify(ctx context.Context, n Notice) {
	if n.Level == LevelError {
		l.logger.WarnContext(ctx, n.Text)
		return
	}
	l.logger.InfoContext(ctx, n.Text)
}
