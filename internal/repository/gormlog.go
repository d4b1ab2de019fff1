package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// slowQueryThreshold marks statements worth a warning.
const slowQueryThreshold = 200 * time.Millisecond

// gormLogger forwards ORM log events to slog so SQL traces share the
// application's log stream and format.
type gormLogger struct {
	logger   *slog.Logger
	level    gormlogger.LogLevel
	traceSQL bool
}

var _ gormlogger.Interface = (*gormLogger)(nil)

func newGormLogger(logger *slog.Logger, traceSQL bool) *gormLogger {
	return &gormLogger{
		logger:   logger.With(slog.String("component", "gorm")),
		level:    gormlogger.Warn,
		traceSQL: traceSQL,
	}
}

// LogMode returns a copy of the logger at the given level.
func (l *gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *gormLogger) Info(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Info {
		l.logger.InfoContext(ctx, fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Warn {
		l.logger.WarnContext(ctx, fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Error {
		l.logger.ErrorContext(ctx, fmt.Sprintf(msg, args...))
	}
}

// Trace logs a finished statement. Not-found lookups are expected and
// never logged as errors.
func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		sql, rows := fc()
		l.logger.ErrorContext(ctx, "sql error",
			slog.String("error", err.Error()),
			slog.String("sql", sql),
			slog.Int64("rows", rows),
			slog.Float64("duration_ms", float64(elapsed.Microseconds())/1000),
		)
	case elapsed > slowQueryThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.logger.WarnContext(ctx, "slow sql",
			slog.String("sql", sql),
			slog.Int64("rows", rows),
			slog.Float64("duration_ms", float64(elapsed.Microseconds())/1000),
		)
	case l.traceSQL:
		sql, rows := fc()
		l.logger.DebugContext(ctx, "sql",
			slog.String("sql", sql),
			slog.Int64("rows", rows),
			slog.Float64("duration_ms", float64(elapsed.Microseconds())/1000),
		)
	}
}
