package logger

import (
	"context"
	"errors"
	log "log/slog"
	"strings"
	"time"

	"gorm.io/gorm/logger"
)

// 快照批量写入在 SQLite 上通常几十毫秒
const gormSlowThreshold = 200 * time.Millisecond

// SlogGormLogger 把 gorm 的日志级别映射到 slog
type SlogGormLogger struct {
	LogLevel logger.LogLevel
}

// NewGormLogger 默认只记录 Warn 以上，避免每次抓取打出整批 INSERT
func NewGormLogger() *SlogGormLogger {
	return &SlogGormLogger{LogLevel: logger.Warn}
}

func (l *SlogGormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &SlogGormLogger{LogLevel: level}
}

func (l *SlogGormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	l.emit(ctx, logger.Info, msg, log.Any("data", data))
}

func (l *SlogGormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	l.emit(ctx, logger.Warn, msg, log.Any("data", data))
}

func (l *SlogGormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	l.emit(ctx, logger.Error, msg, log.Any("data", data))
}

// Trace 失败的语句记 Error，超过阈值记 Warn，其余只在 Info 级别下输出
func (l *SlogGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	level, suffix := logger.Info, ""
	switch {
	case err != nil && !errors.Is(err, logger.ErrRecordNotFound):
		level, suffix = logger.Error, " Error"
	case elapsed > gormSlowThreshold:
		level, suffix = logger.Warn, " Slow"
	}
	if l.LogLevel < level {
		return
	}

	sql, rows := fc()
	attrs := []log.Attr{
		log.String("sql", sql),
		log.Duration("latency", elapsed),
		log.Int64("rows", rows),
	}
	if level == logger.Error {
		attrs = append(attrs, log.Any("err", err))
	}
	l.emit(ctx, level, "SQL "+sqlVerb(sql)+suffix, attrs...)
}

func (l *SlogGormLogger) emit(ctx context.Context, level logger.LogLevel, msg string, attrs ...log.Attr) {
	if l.LogLevel < level {
		return
	}
	slogLevel := log.LevelInfo
	switch level {
	case logger.Error:
		slogLevel = log.LevelError
	case logger.Warn:
		slogLevel = log.LevelWarn
	}
	log.Default().LogAttrs(ctx, slogLevel, msg, attrs...)
}

func sqlVerb(sql string) string {
	if verb, _, _ := strings.Cut(strings.TrimSpace(sql), " "); verb != "" {
		return strings.ToUpper(verb)
	}
	return "QUERY"
}
