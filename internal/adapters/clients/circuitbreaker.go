package clients

import (
	"sync"
	"time"

	"github.com/jsamuelsen/alaqidah-service/internal/platform/config"
)

// State is the position of a CircuitBreaker.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

var stateNames = [...]string{
	StateClosed:   "closed",
	StateOpen:     "open",
	StateHalfOpen: "half-open",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}

	return stateNames[s]
}

// CircuitBreaker stops calls to a locale pack origin that keeps failing, so
// a content reload falls back to the embedded packs quickly.
//
// A closed breaker opens after MaxFailures failures in a row. Once Timeout
// has passed since it opened, up to HalfOpenLimit probe requests are let
// through: HalfOpenLimit successes close it again, one failure reopens it.
type CircuitBreaker struct {
	mu  sync.Mutex
	cfg config.CircuitBreakerConfig

	state    State
	streak   int // failures while closed, successes while half-open
	inFlight int // probes admitted while half-open
	openedAt time.Time

	notify func(from, to State)
	now    func() time.Time
}

// NewCircuitBreaker returns a closed breaker. Limits below 1 are treated as 1.
func NewCircuitBreaker(cfg config.CircuitBreakerConfig) *CircuitBreaker {
	cfg.MaxFailures = max(cfg.MaxFailures, 1)
	cfg.HalfOpenLimit = max(cfg.HalfOpenLimit, 1)

	return &CircuitBreaker{cfg: cfg, now: time.Now}
}

// OnStateChange sets fn to be called in its own goroutine on every
// transition.
func (cb *CircuitBreaker) OnStateChange(fn func(from, to State)) {
	cb.mu.Lock()
	cb.notify = fn
	cb.mu.Unlock()
}

// Allow reports whether a request may be sent now. Every true result must be
// followed by RecordSuccess or RecordFailure.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen {
		if cb.now().Sub(cb.openedAt) < cb.cfg.Timeout {
			return false
		}
		cb.moveTo(StateHalfOpen)
	}

	if cb.state == StateHalfOpen {
		if cb.inFlight >= cb.cfg.HalfOpenLimit {
			return false
		}
		cb.inFlight++
	}

	return true
}

// RecordSuccess records a request that reached the origin and succeeded.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.record(true)
}

// RecordFailure records a request that failed.
func (cb *CircuitBreaker) RecordFailure() {
	cb.record(false)
}

func (cb *CircuitBreaker) record(ok bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		if ok {
			cb.streak = 0
			return
		}
		cb.streak++
		if cb.streak >= cb.cfg.MaxFailures {
			cb.moveTo(StateOpen)
		}

	case StateHalfOpen:
		cb.inFlight = max(cb.inFlight-1, 0)
		if !ok {
			cb.moveTo(StateOpen)
			return
		}
		cb.streak++
		if cb.streak >= cb.cfg.HalfOpenLimit {
			cb.moveTo(StateClosed)
		}
	}
}

// State returns the current state without advancing an expired open state.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.state
}

// moveTo is called with mu held.
func (cb *CircuitBreaker) moveTo(to State) {
	from := cb.state
	if from == to {
		return
	}

	cb.state = to
	cb.streak = 0
	cb.inFlight = 0
	if to == StateOpen {
		cb.openedAt = cb.now()
	}

	if fn := cb.notify; fn != nil {
		go fn(from, to)
	}
}
