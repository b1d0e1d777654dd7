package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "resumeforge"

// Metrics holds all ResumeForge metric instruments.
type Metrics struct {
	RunsStarted   metric.Int64Counter
	RunsCompleted metric.Int64Counter
	RunsFailed    metric.Int64Counter
	ToolCalls     metric.Int64Counter
	TaskDuration  metric.Float64Histogram
	TokensUsed    metric.Int64Counter
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	if m.RunsStarted, err = meter.Int64Counter("resumeforge.runs.started",
		metric.WithDescription("Number of crew runs started")); err != nil {
		return nil, err
	}
	if m.RunsCompleted, err = meter.Int64Counter("resumeforge.runs.completed",
		metric.WithDescription("Number of crew runs completed")); err != nil {
		return nil, err
	}
	if m.RunsFailed, err = meter.Int64Counter("resumeforge.runs.failed",
		metric.WithDescription("Number of crew runs failed")); err != nil {
		return nil, err
	}
	if m.ToolCalls, err = meter.Int64Counter("resumeforge.toolcalls",
		metric.WithDescription("Number of tool invocations")); err != nil {
		return nil, err
	}
	if m.TaskDuration, err = meter.Float64Histogram("resumeforge.task.duration_seconds",
		metric.WithDescription("Task execution time in seconds")); err != nil {
		return nil, err
	}
	if m.TokensUsed, err = meter.Int64Counter("resumeforge.llm.tokens",
		metric.WithDescription("LLM tokens consumed")); err != nil {
		return nil, err
	}
	return m, nil
}
