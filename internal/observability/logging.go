// Package observability provides logging, metrics, and tracing.
package observability

import (
	"context"
	"log/slog"
)

// RepoLogger provides structured logging for repository operations.
type RepoLogger struct {
	tableName string
}

// NewRepoLogger creates a new RepoLogger for the given table.
func NewRepoLogger(tableName string) *RepoLogger {
	return &RepoLogger{tableName: tableName}
}

func (l *RepoLogger) attrs(operation string, extra []any) []any {
	return append([]any{
		slog.String("table", l.tableName),
		slog.String("operation", operation),
	}, extra...)
}

// LogWrite records a successful mutation.
func (l *RepoLogger) LogWrite(ctx context.Context, operation string, args ...any) {
	slog.Default().InfoContext(ctx, "repository write", l.attrs(operation, args)...)
}

// LogRejected records an expected failure such as a missing row or an
// ownership mismatch.
func (l *RepoLogger) LogRejected(ctx context.Context, operation string, err error, args ...any) {
	args = append(args, slog.String("reason", err.Error()))
	slog.Default().WarnContext(ctx, "repository operation rejected", l.attrs(operation, args)...)
}

// LogError records a storage failure.
func (l *RepoLogger) LogError(ctx context.Context, operation string, err error, args ...any) {
	args = append(args, slog.String("error", err.Error()))
	slog.Default().ErrorContext(ctx, "repository operation failed", l.attrs(operation, args)...)
}
