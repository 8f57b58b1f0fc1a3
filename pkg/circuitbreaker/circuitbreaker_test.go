package circuitbreaker

import (
	"errors"
	"testing"
	"time"
)

var errBoom = errors.New("boom")

func TestOpensAfterConsecutiveFailures(t *testing.T) {
	cb := NewCircuitBreaker(Config{
		FailureThreshold:    3,
		SuccessThreshold:    1,
		Timeout:             time.Hour,
		HalfOpenMaxRequests: 1,
	})

	for i := 0; i < 3; i++ {
		if err := cb.Execute(func() error { return errBoom }); !errors.Is(err, errBoom) {
			t.Fatalf("call %d: err = %v, want errBoom", i, err)
		}
	}

	err := cb.Execute(func() error { return nil })
	if !errors.Is(err, ErrCircuitBreakerOpen) {
		t.Fatalf("err = %v, want ErrCircuitBreakerOpen", err)
	}
	if cb.GetState() != StateOpen {
		t.Fatalf("state = %v, want StateOpen", cb.GetState())
	}
}

func TestSuccessResetsFailureCount(t *testing.T) {
	cb := NewCircuitBreaker(Config{
		FailureThreshold:    2,
		SuccessThreshold:    1,
		Timeout:             time.Hour,
		HalfOpenMaxRequests: 1,
	})

	_ = cb.Execute(func() error { return errBoom })
	_ = cb.Execute(func() error { return nil })
	_ = cb.Execute(func() error { return errBoom })

	// one failure, a success, one failure: threshold of two consecutive
	// failures was never reached
	if cb.GetState() != StateClosed {
		t.Fatalf("state = %v, want StateClosed", cb.GetState())
	}
}

func TestHalfOpenRecovery(t *testing.T) {
	cb := NewCircuitBreaker(Config{
		FailureThreshold:    1,
		SuccessThreshold:    1,
		Timeout:             time.Millisecond,
		HalfOpenMaxRequests: 1,
	})

	_ = cb.Execute(func() error { return errBoom })
	if cb.GetState() != StateOpen {
		t.Fatalf("state = %v, want StateOpen", cb.GetState())
	}

	time.Sleep(5 * time.Millisecond)

	if err := cb.Execute(func() error { return nil }); err != nil {
		t.Fatalf("probe call failed: %v", err)
	}
	if err := cb.Execute(func() error { return nil }); err != nil {
		t.Fatalf("post-recovery call failed: %v", err)
	}
	if cb.GetState() != StateClosed {
		t.Fatalf("state = %v, want StateClosed", cb.GetState())
	}
}

func TestReset(t *testing.T) {
	cb := NewCircuitBreaker(DefaultConfig())
	for i := 0; i < 10; i++ {
		_ = cb.Execute(func() error { return errBoom })
	}
	if cb.GetState() != StateOpen {
		t.Fatalf("state = %v, want StateOpen", cb.GetState())
	}
	cb.Reset()
	if cb.GetState() != StateClosed {
		t.Fatalf("state after Reset = %v, want StateClosed", cb.GetState())
	}
}
