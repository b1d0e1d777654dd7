// Package broadcast defines the port for pushing crew lifecycle events
// to interested listeners (WebSocket clients, NATS subjects).
package broadcast

import "context"

// Event type constants shared by all broadcaster adapters.
const (
	EventRunStatus  = "run.status"
	EventTaskStatus = "task.status"
	EventTaskOutput = "task.output"
)

// RunStatusEvent is emitted when a run starts or reaches a terminal state.
type RunStatusEvent struct {
	RunID  string `json:"run_id"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// TaskStatusEvent is emitted when a task's status changes.
type TaskStatusEvent struct {
	RunID  string `json:"run_id"`
	Task   string `json:"task"`
	Agent  string `json:"agent,omitempty"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// TaskOutputEvent carries a completed task's output.
type TaskOutputEvent struct {
	RunID  string `json:"run_id"`
	Task   string `json:"task"`
	Output string `json:"output"`
}

// Broadcaster pushes typed events to connected listeners.
type Broadcaster interface {
	BroadcastEvent(ctx context.Context, eventType string, payload any)
}

// Noop is a Broadcaster that drops all events.
type Noop struct{}

func (Noop) BroadcastEvent(context.Context, string, any) {}

// Multi fans an event out to several broadcasters.
type Multi []Broadcaster

func (m Multi) BroadcastEvent(ctx context.Context, eventType string, payload any) {
	for _, b := range m {
		b.BroadcastEvent(ctx, eventType, payload)
	}
}
