// Package service validates caller input and orchestrates the repositories.
package service

import (
	"context"

	"chirp/internal/observability"
)

func traced(ctx context.Context, serviceName, method string, fn func(ctx context.Context) error) error {
	ctx, span := observability.TraceServiceCall(ctx, serviceName, method)
	err := fn(ctx)
	observability.EndSpan(span, err)
	return err
}
