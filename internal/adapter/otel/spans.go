package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "resumeforge"

// StartRunSpan starts a span for a crew run.
func StartRunSpan(ctx context.Context, runID string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "crew.run",
		trace.WithAttributes(
			attribute.String("run.id", runID),
		),
	)
}

// StartTaskSpan starts a span for one task within a run.
func StartTaskSpan(ctx context.Context, runID, taskName, agentRole string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "crew.task",
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("task.name", taskName),
			attribute.String("agent.role", agentRole),
		),
	)
}

// StartToolSpan starts a span for a tool call within a task.
func StartToolSpan(ctx context.Context, taskName, capability string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "crew.tool",
		trace.WithAttributes(
			attribute.String("task.name", taskName),
			attribute.String("tool.capability", capability),
		),
	)
}
