// Package mocks provides an otel.Otel backed by a no-op tracer for tests.
package mocks

import (
	"context"
	"equiplend/infras/otel"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type noopOtel struct {
	tracer oteltrace.Tracer
}

func (o *noopOtel) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	ctx, span := o.tracer.Start(ctx, spanName)

	return ctx, otel.NewScope(span)
}

func (o *noopOtel) Shutdown(_ context.Context) error {
	return nil
}

func NewOtel() otel.Otel {
	return &noopOtel{tracer: noop.NewTracerProvider().Tracer("test")}
}
