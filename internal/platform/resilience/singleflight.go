package resilience

import "sync"

// SingleFlight collapses concurrent calls that share a key into a single
// execution. Callers that arrive while a call is in flight block until it
// completes and receive the same result.
type SingleFlight struct {
	mu       sync.Mutex
	inflight map[string]*flight
}

type flight struct {
	done chan struct{}
	val  any
	err  error
}

// Do runs fn at most once per key at a time. The third return value
// reports whether the result was produced by another caller's execution.
func (s *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	s.mu.Lock()
	if f, ok := s.inflight[key]; ok {
		s.mu.Unlock()
		<-f.done
		return f.val, f.err, true
	}

	if s.inflight == nil {
		s.inflight = make(map[string]*flight)
	}
	f := &flight{done: make(chan struct{})}
	s.inflight[key] = f
	s.mu.Unlock()

	f.val, f.err = fn()

	s.mu.Lock()
	delete(s.inflight, key)
	s.mu.Unlock()
	close(f.done)

	return f.val, f.err, false
}
