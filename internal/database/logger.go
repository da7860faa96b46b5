package database

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/docflow/internal/logging"
	"github.com/pressly/goose/v3"
)

// gooseLogger forwards migration progress to a logging.Logger at debug level.
type gooseLogger struct {
	ctx context.Context
	l   logging.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.l.Debug(g.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migrations")
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.l.Error(g.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migrations")
	os.Exit(1)
}

// SetLogger sends the output of every later migration run to l.
func SetLogger(ctx context.Context, l logging.Logger) {
	goose.SetLogger(gooseLogger{ctx: ctx, l: l})
}
