package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ServiceLogger provides structured logging for service layer operations
type ServiceLogger struct {
	logger *slog.Logger
}

type LogConfig struct {
	Service   string
	Component string
}

func NewServiceLogger(logger *slog.Logger, config LogConfig) *ServiceLogger {
	return &ServiceLogger{
		logger: logger.With("service", config.Service, "component", config.Component),
	}
}

// LogOperation logs the result of one session operation. Expected client-side
// failures are logged below error level.
func (l *ServiceLogger) LogOperation(ctx context.Context, operation, sessionID string, duration time.Duration, err error) {
	level := slog.LevelInfo
	status := "success"

	if err != nil {
		level = slog.LevelError
		status = "error"

		switch {
		case IsValidation(err), IsBusinessRule(err):
			level = slog.LevelWarn
			status = "validation_error"
		case IsNotFound(err):
			status = "not_found"
			level = slog.LevelInfo
		case IsConflict(err):
			level = slog.LevelWarn
			status = "conflict"
		case IsUpstream(err):
			level = slog.LevelWarn
			status = "upstream_error"
		}
	}

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("session_id", sessionID),
		slog.String("status", status),
		slog.Duration("duration", duration),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		if bre, ok := err.(*BusinessRuleError); ok {
			attrs = append(attrs, slog.String("business_rule", bre.Rule))
		}
	}

	l.logger.LogAttrs(ctx, level, fmt.Sprintf("%s operation %s", operation, status), attrs...)
}

// ContextualLogger times one operation and logs its result
type ContextualLogger struct {
	logger    *ServiceLogger
	operation string
	sessionID string
	startTime time.Time
	ctx       context.Context
}

func (l *ServiceLogger) WithOperation(ctx context.Context, operation, sessionID string) *ContextualLogger {
	return &ContextualLogger{
		logger:    l,
		operation: operation,
		sessionID: sessionID,
		startTime: time.Now(),
		ctx:       ctx,
	}
}

func (cl *ContextualLogger) LogResult(err error) {
	cl.logger.LogOperation(cl.ctx, cl.operation, cl.sessionID, time.Since(cl.startTime), err)
}
