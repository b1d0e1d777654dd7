package resilience_test

import (
	"errors"
	"testing"
	"time"

	"github.com/unikill066/resumeforge/internal/resilience"
)

func TestBreakerOpensAfterMaxFailures(t *testing.T) {
	b := resilience.NewBreaker(3, time.Minute)
	boom := errors.New("boom")

	for i := 0; i < 3; i++ {
		if err := b.Execute(func() error { return boom }); !errors.Is(err, boom) {
			t.Fatalf("call %d: err = %v, want boom", i, err)
		}
	}

	if b.State() != "open" {
		t.Fatalf("State = %q, want open", b.State())
	}
	if err := b.Execute(func() error { return nil }); !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Errorf("err = %v, want ErrCircuitOpen", err)
	}
}

func TestBreakerRecoversAfterCooldown(t *testing.T) {
	b := resilience.NewBreaker(1, 10*time.Second)
	boom := errors.New("boom")

	_ = b.Execute(func() error { return boom })
	if b.State() != "open" {
		t.Fatal("breaker should be open")
	}

	// Cooldown has not elapsed.
	if err := b.Execute(func() error { return nil }); !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("err = %v, want ErrCircuitOpen before cooldown", err)
	}

	// After the cooldown a successful probe closes the circuit again.
	resilience.SetNowForTest(b, time.Now().Add(11*time.Second))
	if err := b.Execute(func() error { return nil }); err != nil {
		t.Fatalf("probe after cooldown: %v", err)
	}
	if b.State() != "closed" {
		t.Errorf("State = %q, want closed", b.State())
	}
}

func TestBreakerSuccessResetsFailureCount(t *testing.T) {
	b := resilience.NewBreaker(2, time.Minute)
	boom := errors.New("boom")

	_ = b.Execute(func() error { return boom })
	_ = b.Execute(func() error { return nil })
	_ = b.Execute(func() error { return boom })

	if b.State() != "closed" {
		t.Errorf("State = %q, want closed after interleaved success", b.State())
	}
}
