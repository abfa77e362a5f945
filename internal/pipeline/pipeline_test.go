package pipeline

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestRun(t *testing.T) {
	docs := []string{"a", "b", "c"}

	var called int32
	errs := Run(docs, 2, func(doc string) error {
		atomic.AddInt32(&called, 1)
		if doc == "b" {
			return errors.New("test error")
		}
		return nil
	})

	if called != int32(len(docs)) {
		t.Fatalf("expected %d calls, got %d", len(docs), called)
	}
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
}

func TestRunBoundsConcurrency(t *testing.T) {
	items := make([]int, 50)
	var running, peak int32
	Run(items, 3, func(int) error {
		n := atomic.AddInt32(&running, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		atomic.AddInt32(&running, -1)
		return nil
	})
	if peak > 3 {
		t.Fatalf("expected at most 3 concurrent calls, got %d", peak)
	}
}

func TestRunEmpty(t *testing.T) {
	if errs := Run[int](nil, 4, func(int) error { return errors.New("never") }); errs != nil {
		t.Fatalf("expected nil for empty input, got %v", errs)
	}
}
