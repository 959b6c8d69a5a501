package infra

import (
	"errors"
	"sync"
	"time"
)

// Circuit breaker in front of the SMTP relay. Quotation emails are
// best-effort: when the relay misbehaves we fast-fail instead of letting
// every email job block a worker for the full dial timeout.
//
// Closed → (N consecutive failures) → Open → (timeout) → Half-Open →
// (M consecutive successes) → Closed, or (any failure) → Open again.

// CBState is the breaker position.
type CBState int

const (
	CBClosed CBState = iota
	CBOpen
	CBHalfOpen
)

func (s CBState) String() string {
	switch s {
	case CBClosed:
		return "closed"
	case CBOpen:
		return "open"
	case CBHalfOpen:
		return "half-open"
	}
	return "unknown"
}

// ErrCircuitOpen is returned by Execute while the breaker is tripped.
var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitBreakerConfig struct {
	// FailureThreshold trips the breaker after this many consecutive failures.
	FailureThreshold int
	// SuccessThreshold closes a half-open breaker after this many consecutive probes succeed.
	SuccessThreshold int
	// OpenTimeout is how long the breaker stays open before allowing probes.
	OpenTimeout time.Duration
}

func DefaultCBConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		OpenTimeout:      60 * time.Second,
	}
}

type CircuitBreaker struct {
	mu        sync.Mutex
	cfg       CircuitBreakerConfig
	state     CBState
	failures  int
	successes int
	openedAt  time.Time
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = 2
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 60 * time.Second
	}
	return &CircuitBreaker{cfg: cfg, state: CBClosed}
}

// State reports the breaker position, promoting open to half-open once
// the open timeout has elapsed.
func (cb *CircuitBreaker) State() CBState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.currentLocked()
}

func (cb *CircuitBreaker) currentLocked() CBState {
	if cb.state == CBOpen && time.Since(cb.openedAt) >= cb.cfg.OpenTimeout {
		cb.state = CBHalfOpen
		cb.successes = 0
	}
	return cb.state
}

// Execute runs fn unless the breaker is open, in which case it returns
// ErrCircuitOpen without invoking fn at all.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if cb.State() == CBOpen {
		return ErrCircuitOpen
	}

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.record(err == nil)
	return err
}

func (cb *CircuitBreaker) record(ok bool) {
	if ok {
		switch cb.state {
		case CBClosed:
			cb.failures = 0
		case CBHalfOpen:
			cb.successes++
			if cb.successes >= cb.cfg.SuccessThreshold {
				cb.state = CBClosed
				cb.failures = 0
				cb.successes = 0
			}
		}
		return
	}

	cb.openedAt = time.Now()
	switch cb.state {
	case CBClosed:
		cb.failures++
		if cb.failures >= cb.cfg.FailureThreshold {
			cb.state = CBOpen
			cb.successes = 0
		}
	case CBHalfOpen:
		// failed probe, back to open for another full timeout
		cb.state = CBOpen
		cb.failures = 0
	}
}
