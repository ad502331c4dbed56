package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
)

func TestExecuteRunsOperationOnce(t *testing.T) {
	exec := NewExecutor(Config{BreakerEnabled: false})

	attempts := 0
	errFail := errors.New("unreadable image")
	err := exec.Execute(context.Background(), "ocr.recognize", func(context.Context) error {
		attempts++
		return errFail
	}, nil)
	if !errors.Is(err, errFail) {
		t.Fatalf("expected unreadable image error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestExecuteSkipsCanceledContext(t *testing.T) {
	exec := NewExecutor(Config{BreakerEnabled: true})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := exec.Execute(ctx, "ocr.recognize", func(context.Context) error {
		t.Fatalf("operation must not run on a canceled context")
		return nil
	}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestExecuteRejectsNilOperation(t *testing.T) {
	exec := NewExecutor(Config{})
	if err := exec.Execute(context.Background(), "ocr.recognize", nil, nil); err == nil {
		t.Fatalf("expected error for nil operation")
	}
}

func TestExecuteOpensCircuitAfterFailures(t *testing.T) {
	var transitions []string
	exec := NewExecutor(Config{
		BreakerEnabled:          true,
		BreakerMinRequests:      2,
		BreakerFailureRatio:     0.5,
		BreakerOpenTimeout:      50 * time.Millisecond,
		BreakerHalfOpenMaxCalls: 1,
		OnStateChange: func(operation, from, to string) {
			transitions = append(transitions, operation+":"+from+"->"+to)
		},
	})

	errFail := errors.New("tesseract missing")
	for i := 0; i < 2; i++ {
		err := exec.Execute(context.Background(), "ocr.recognize", func(context.Context) error {
			return errFail
		}, nil)
		if !errors.Is(err, errFail) {
			t.Fatalf("expected failure on iteration %d, got %v", i, err)
		}
	}

	err := exec.Execute(context.Background(), "ocr.recognize", func(context.Context) error {
		t.Fatalf("circuit should be open and must not call operation")
		return nil
	}, nil)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("expected open state error, got %v", err)
	}
	if !IsCircuitOpen(err) {
		t.Fatalf("expected IsCircuitOpen to detect %v", err)
	}
	if got := exec.State("ocr.recognize"); got != "open" {
		t.Fatalf("expected open breaker, got %q", got)
	}
	if len(transitions) != 1 || transitions[0] != "ocr.recognize:closed->open" {
		t.Fatalf("unexpected transitions %v", transitions)
	}
}

func TestExecuteIgnoresUnrecordedFailuresForBreaker(t *testing.T) {
	exec := NewExecutor(Config{
		BreakerEnabled:     true,
		BreakerMinRequests: 1,
	})

	for i := 0; i < 3; i++ {
		_ = exec.Execute(context.Background(), "ocr.recognize", func(context.Context) error {
			return context.Canceled
		}, func(error) bool {
			return false
		})
	}
	if got := exec.State("ocr.recognize"); got != "closed" {
		t.Fatalf("expected closed breaker, got %q", got)
	}
}

func TestStateReportsDisabledBreaker(t *testing.T) {
	exec := NewExecutor(Config{BreakerEnabled: false})
	if got := exec.State("ocr.recognize"); got != "disabled" {
		t.Fatalf("expected disabled, got %q", got)
	}
}
