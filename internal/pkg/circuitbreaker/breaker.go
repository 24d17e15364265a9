package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/piresc/vigilante/internal/pkg/logger"
	"github.com/piresc/vigilante/internal/pkg/metrics"
)

// State represents the circuit breaker state
type State int

const (
	// StateClosed allows requests to pass through
	StateClosed State = iota
	// StateOpen blocks requests and returns immediately
	StateOpen
	// StateHalfOpen allows a limited number of requests to test the upstream
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

var (
	ErrCircuitBreakerOpen = errors.New("circuit breaker is open")
	ErrTooManyRequests    = errors.New("too many requests in half-open state")
)

// Config holds circuit breaker configuration
type Config struct {
	Name             string
	MaxRequests      uint32        // requests allowed in half-open state
	Interval         time.Duration // closed-state counter reset interval
	Timeout          time.Duration // open-state duration before probing
	FailureThreshold uint32
	SuccessThreshold uint32
	IsFailure        func(err error) bool
}

// DefaultConfig returns the configuration used for weather and route providers
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      1,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 5,
		SuccessThreshold: 1,
		IsFailure: func(err error) bool {
			// the caller giving up is not an upstream fault
			return err != nil && !errors.Is(err, context.Canceled)
		},
	}
}

// Counts holds the counters for circuit breaker
type Counts struct {
	Requests             uint32
	TotalSuccesses       uint32
	TotalFailures        uint32
	ConsecutiveSuccesses uint32
	ConsecutiveFailures  uint32
}

// CircuitBreaker implements the circuit breaker pattern
type CircuitBreaker struct {
	config Config
	logger *logger.ZapLogger
	now    func() time.Time

	mutex  sync.RWMutex
	state  State
	counts Counts
	expiry time.Time
}

// New creates a new circuit breaker
func New(config Config, l *logger.ZapLogger) *CircuitBreaker {
	if config.IsFailure == nil {
		config.IsFailure = DefaultConfig(config.Name).IsFailure
	}
	cb := &CircuitBreaker{
		config: config,
		logger: l,
		now:    time.Now,
		state:  StateClosed,
	}
	cb.expiry = cb.now().Add(config.Interval)
	metrics.CircuitState.WithLabelValues(config.Name).Set(float64(StateClosed))
	return cb
}

// Execute executes the given function with circuit breaker protection
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if err := cb.beforeRequest(); err != nil {
		return err
	}

	err := fn(ctx)
	cb.afterRequest(err)
	return err
}

func (cb *CircuitBreaker) beforeRequest() error {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	now := cb.now()

	switch cb.state {
	case StateClosed:
		if cb.expiry.Before(now) {
			cb.counts = Counts{}
			cb.expiry = now.Add(cb.config.Interval)
		}
	case StateOpen:
		if !cb.expiry.Before(now) {
			return ErrCircuitBreakerOpen
		}
		cb.setState(StateHalfOpen)
		cb.counts = Counts{}
	case StateHalfOpen:
		if cb.counts.Requests >= cb.config.MaxRequests {
			return ErrTooManyRequests
		}
	}

	cb.counts.Requests++
	return nil
}

func (cb *CircuitBreaker) afterRequest(err error) {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	if cb.config.IsFailure(err) {
		cb.counts.TotalFailures++
		cb.counts.ConsecutiveFailures++
		cb.counts.ConsecutiveSuccesses = 0

		if cb.state == StateHalfOpen ||
			(cb.state == StateClosed && cb.counts.ConsecutiveFailures >= cb.config.FailureThreshold) {
			cb.setState(StateOpen)
			cb.expiry = cb.now().Add(cb.config.Timeout)
		}
		return
	}

	cb.counts.TotalSuccesses++
	cb.counts.ConsecutiveSuccesses++
	cb.counts.ConsecutiveFailures = 0

	if cb.state == StateHalfOpen && cb.counts.ConsecutiveSuccesses >= cb.config.SuccessThreshold {
		cb.setState(StateClosed)
		cb.expiry = cb.now().Add(cb.config.Interval)
	}
}

func (cb *CircuitBreaker) setState(state State) {
	if cb.state == state {
		return
	}

	prev := cb.state
	cb.state = state
	metrics.CircuitState.WithLabelValues(cb.config.Name).Set(float64(state))

	cb.logger.Info("Circuit breaker state changed",
		logger.String("name", cb.config.Name),
		logger.String("from", prev.String()),
		logger.String("to", state.String()),
		logger.Int("consecutive_failures", int(cb.counts.ConsecutiveFailures)))
}

// State returns the current state of the circuit breaker
func (cb *CircuitBreaker) State() State {
	cb.mutex.RLock()
	defer cb.mutex.RUnlock()
	return cb.state
}

// Counts returns the current counts
func (cb *CircuitBreaker) Counts() Counts {
	cb.mutex.RLock()
	defer cb.mutex.RUnlock()
	return cb.counts
}

// Manager keeps one circuit breaker per upstream host
type Manager struct {
	breakers map[string]*CircuitBreaker
	mutex    sync.Mutex
	logger   *logger.ZapLogger
}

// NewManager creates a new circuit breaker manager
func NewManager(l *logger.ZapLogger) *Manager {
	return &Manager{
		breakers: make(map[string]*CircuitBreaker),
		logger:   l,
	}
}

// GetOrCreate gets an existing circuit breaker or creates one with the default config
func (m *Manager) GetOrCreate(name string) *CircuitBreaker {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if cb, exists := m.breakers[name]; exists {
		return cb
	}

	cb := New(DefaultConfig(name), m.logger)
	m.breakers[name] = cb
	return cb
}

// Execute executes a function with the named circuit breaker
func (m *Manager) Execute(ctx context.Context, name string, fn func(context.Context) error) error {
	return m.GetOrCreate(name).Execute(ctx, fn)
}

// States returns the state of every known breaker, keyed by name
func (m *Manager) States() map[string]string {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	states := make(map[string]string, len(m.breakers))
	for name, cb := range m.breakers {
		states[name] = cb.State().String()
	}
	return states
}
