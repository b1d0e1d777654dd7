package ws

import (
	"context"
	"testing"

	"github.com/unikill066/resumeforge/internal/port/broadcast"
)

func TestNewHub(t *testing.T) {
	hub := NewHub()
	if hub == nil {
		t.Fatal("expected non-nil hub")
	}
	if hub.ConnectionCount() != 0 {
		t.Fatalf("expected 0 connections, got %d", hub.ConnectionCount())
	}
}

func TestBroadcastEventNoConnections(t *testing.T) {
	hub := NewHub()

	// No connections should not panic.
	hub.BroadcastEvent(context.Background(), broadcast.EventTaskStatus, broadcast.TaskStatusEvent{
		RunID:  "r1",
		Task:   "Extract Job Requirements",
		Status: "completed",
	})
}

func TestBroadcastEventMarshalError(t *testing.T) {
	hub := NewHub()

	// A channel cannot be marshaled to JSON. Should log, not panic.
	hub.BroadcastEvent(context.Background(), "bad", make(chan int))
}

func TestRemoveNonexistent(t *testing.T) {
	hub := NewHub()

	_, cancel := context.WithCancel(context.Background())
	defer cancel()
	c := &conn{ws: nil, cancel: cancel}
	hub.remove(c)
}
