package copilot

import (
	"context"
	"io"
	"sync"

	"github.com/piresc/vigilante/internal/pkg/apperrors"
	"github.com/piresc/vigilante/internal/pkg/logger"
)

// SessionManager owns the lazily created generator of one driver session.
// It is created on first use and torn down on logout.
type SessionManager struct {
	mu        sync.Mutex
	factory   GeneratorFactory
	generator TextGenerator
}

// NewSessionManager creates a manager that builds generators with factory
func NewSessionManager(factory GeneratorFactory) *SessionManager {
	return &SessionManager{factory: factory}
}

// Generator returns the session generator, creating it on first use
func (m *SessionManager) Generator(ctx context.Context) (TextGenerator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.generator != nil {
		return m.generator, nil
	}

	generator, err := m.factory(ctx)
	if err != nil {
		return nil, apperrors.Generation(err)
	}
	m.generator = generator
	return generator, nil
}

// Active reports whether a generator is currently held
func (m *SessionManager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generator != nil
}

// Close releases the generator. The next Generator call creates a new one.
func (m *SessionManager) Close() {
	m.mu.Lock()
	generator := m.generator
	m.generator = nil
	m.mu.Unlock()

	if closer, ok := generator.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			logger.Warn("Failed to close text generator", logger.Err(err))
		}
	}
}
