package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlightCollapsesConcurrentCalls(t *testing.T) {
	var group SingleFlight
	var executions int32

	const callers = 16
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(callers)

	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			<-start
			val, err, _ := group.Do("standings|idn-liga-1-2026", func() (any, error) {
				atomic.AddInt32(&executions, 1)
				time.Sleep(20 * time.Millisecond)
				return "table", nil
			})
			if err != nil {
				t.Errorf("deduplicated call failed: %v", err)
			}
			if val != "table" {
				t.Errorf("unexpected value: %v", val)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&executions); got != 1 {
		t.Fatalf("expected a single execution, got %d", got)
	}
}

func TestSingleFlightKeysRunIndependently(t *testing.T) {
	var group SingleFlight

	val, err, shared := group.Do("standings|idn-liga-1-2026", func() (any, error) {
		return 6, nil
	})
	if err != nil || shared {
		t.Fatalf("first call: val=%v err=%v shared=%v", val, err, shared)
	}

	val, err, shared = group.Do("standings|idn-piala-merah-2026", func() (any, error) {
		return 4, nil
	})
	if err != nil || shared {
		t.Fatalf("second key should execute on its own: shared=%v err=%v", shared, err)
	}
	if val != 4 {
		t.Fatalf("unexpected value for second key: %v", val)
	}
}

func TestSingleFlightPropagatesError(t *testing.T) {
	var group SingleFlight
	wantErr := errors.New("storage unavailable")

	_, err, _ := group.Do("standings|idn-liga-1-2026", func() (any, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected the callback error, got %v", err)
	}

	// The failed call must not stay registered.
	val, err, shared := group.Do("standings|idn-liga-1-2026", func() (any, error) {
		return "ok", nil
	})
	if err != nil || shared || val != "ok" {
		t.Fatalf("retry after failure: val=%v err=%v shared=%v", val, err, shared)
	}
}
