package tiered_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/unikill066/resumeforge/internal/adapter/tiered"
)

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	err  error
	gets int
	sets int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.err != nil {
		return nil, false, m.err
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	if m.err != nil {
		return m.err
	}
	m.data[key] = value
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.data, key)
	return nil
}

func TestGetPrefersL1(t *testing.T) {
	l1, l2 := newMemCache(), newMemCache()
	l1.data["k"] = []byte("from-l1")
	l2.data["k"] = []byte("from-l2")

	c := tiered.New(l1, l2, time.Minute)
	val, ok, err := c.Get(context.Background(), "k")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if string(val) != "from-l1" {
		t.Errorf("val = %q, want from-l1", val)
	}
	if l2.gets != 0 {
		t.Error("L2 consulted on L1 hit")
	}
}

func TestGetBackfillsL1OnL2Hit(t *testing.T) {
	l1, l2 := newMemCache(), newMemCache()
	l2.data["k"] = []byte("remote")

	c := tiered.New(l1, l2, time.Minute)
	val, ok, err := c.Get(context.Background(), "k")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if string(val) != "remote" {
		t.Errorf("val = %q", val)
	}
	if string(l1.data["k"]) != "remote" {
		t.Error("L1 not backfilled")
	}
}

func TestGetTreatsL2ErrorAsMiss(t *testing.T) {
	l1, l2 := newMemCache(), newMemCache()
	l2.err = errors.New("nats down")

	c := tiered.New(l1, l2, time.Minute)
	_, ok, err := c.Get(context.Background(), "k")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if ok {
		t.Error("hit reported on broken L2")
	}
}

func TestSetToleratesL2Failure(t *testing.T) {
	l1, l2 := newMemCache(), newMemCache()
	l2.err = errors.New("nats down")

	c := tiered.New(l1, l2, time.Minute)
	if err := c.Set(context.Background(), "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if string(l1.data["k"]) != "v" {
		t.Error("L1 not written")
	}
}

func TestDeleteRemovesBothLevels(t *testing.T) {
	l1, l2 := newMemCache(), newMemCache()
	l1.data["k"] = []byte("v")
	l2.data["k"] = []byte("v")

	c := tiered.New(l1, l2, time.Minute)
	if err := c.Delete(context.Background(), "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := l1.data["k"]; ok {
		t.Error("L1 still holds key")
	}
	if _, ok := l2.data["k"]; ok {
		t.Error("L2 still holds key")
	}
}
