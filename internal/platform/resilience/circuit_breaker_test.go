package resilience

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b := NewCircuitBreaker(2, 5*time.Second, 1)

	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	require.NoError(t, b.Allow())

	b.RecordFailure()
	assert.Equal(t, CircuitStateClosed, b.State())

	b.RecordFailure()
	assert.Equal(t, CircuitStateOpen, b.State())
	assert.ErrorIs(t, b.Allow(), ErrCircuitOpen)

	now = now.Add(6 * time.Second)
	require.NoError(t, b.Allow(), "half-open probe should pass")
	assert.Equal(t, CircuitStateHalfOpen, b.State())

	b.RecordSuccess()
	assert.Equal(t, CircuitStateClosed, b.State())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	b := NewCircuitBreaker(1, time.Second, 1)
	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	b.RecordFailure()
	now = now.Add(2 * time.Second)
	require.NoError(t, b.Allow())
	assert.ErrorIs(t, b.Allow(), ErrCircuitOpen, "only one half-open probe allowed")

	b.RecordFailure()
	assert.Equal(t, CircuitStateOpen, b.State())
}

func TestCircuitBreaker_ExecuteClassifiesFailures(t *testing.T) {
	b := NewCircuitBreaker(1, time.Minute, 1)
	permanent := errors.New("bad request")
	transient := errors.New("timeout")

	err := b.Execute(func() error { return permanent }, func(err error) bool { return errors.Is(err, transient) })
	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, CircuitStateClosed, b.State())

	err = b.Execute(func() error { return transient }, func(err error) bool { return errors.Is(err, transient) })
	assert.ErrorIs(t, err, transient)
	assert.Equal(t, CircuitStateOpen, b.State())

	called := false
	err = b.Execute(func() error { called = true; return nil }, nil)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_OnStateChange(t *testing.T) {
	b := NewCircuitBreakerFromConfig(CircuitBreakerConfig{FailureThreshold: 1})
	var transitions []string
	b.OnStateChange(func(from, to CircuitState) {
		transitions = append(transitions, string(from)+"->"+string(to))
	})

	b.RecordFailure()
	assert.Equal(t, []string{"closed->open"}, transitions)
}

func TestNormalizeCircuitBreakerConfig(t *testing.T) {
	cfg := NormalizeCircuitBreakerConfig(CircuitBreakerConfig{Enabled: true})
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 5, cfg.FailureThreshold)
	assert.Equal(t, 30*time.Second, cfg.OpenTimeout)
	assert.Equal(t, 1, cfg.HalfOpenMaxReq)
}
