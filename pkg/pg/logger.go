package pg

import (
	"context"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
)

// logger is satisfied by *slog.Logger.
type logger interface {
	InfoContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// gooseLogger routes goose output through the application logger.
type gooseLogger struct {
	ctx context.Context
	log logger
}

var _ goose.Logger = (*gooseLogger)(nil)

func (l *gooseLogger) Fatalf(format string, v ...any) {
	l.log.ErrorContext(l.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "pg.migrate")
}

func (l *gooseLogger) Printf(format string, v ...any) {
	l.log.InfoContext(l.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "pg.migrate")
}
