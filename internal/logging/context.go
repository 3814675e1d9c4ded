package logging

import (
	"context"
	"log/slog"
)

type contextKey int

const (
	runIDKey contextKey = iota
	commandKey
)

// WithRunID annotates ctx with the invocation's run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// WithCommand annotates ctx with the command name.
func WithCommand(ctx context.Context, name string) context.Context {
	if name == "" {
		return ctx
	}
	return context.WithValue(ctx, commandKey, name)
}

// WithContext returns logger tagged with the run id and command stored in ctx.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if ctx == nil {
		return logger
	}
	var args []any
	if id, ok := ctx.Value(runIDKey).(string); ok {
		args = append(args, slog.String(FieldRunID, id))
	}
	if name, ok := ctx.Value(commandKey).(string); ok {
		args = append(args, slog.String(FieldCommand, name))
	}
	if len(args) == 0 {
		return logger
	}
	return logger.With(args...)
}
