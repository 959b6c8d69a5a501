package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSMTP = errors.New("smtp: connection refused")

func TestCircuitBreaker_AbreTrasFallosConsecutivos(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 3,
		SuccessThreshold: 1,
		OpenTimeout:      time.Minute,
	})

	fail := func() error { return errSMTP }
	for i := 0; i < 3; i++ {
		assert.Equal(t, CBClosed, cb.State())
		require.Error(t, cb.Execute(fail))
	}
	assert.Equal(t, CBOpen, cb.State())

	// Open circuit fast-fails without invoking fn
	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_ExitoResetaElConteo(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 3,
		SuccessThreshold: 1,
		OpenTimeout:      time.Minute,
	})

	require.Error(t, cb.Execute(func() error { return errSMTP }))
	require.Error(t, cb.Execute(func() error { return errSMTP }))
	require.NoError(t, cb.Execute(func() error { return nil }))
	// The two early failures no longer count
	require.Error(t, cb.Execute(func() error { return errSMTP }))
	require.Error(t, cb.Execute(func() error { return errSMTP }))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_RecuperacionPorHalfOpen(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 1,
		SuccessThreshold: 2,
		OpenTimeout:      10 * time.Millisecond,
	})

	require.Error(t, cb.Execute(func() error { return errSMTP }))
	assert.Equal(t, CBOpen, cb.State())

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, CBHalfOpen, cb.State())

	// Two successful probes close the circuit again
	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, CBHalfOpen, cb.State())
	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_SondaFallidaReabre(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 1,
		SuccessThreshold: 1,
		OpenTimeout:      10 * time.Millisecond,
	})

	require.Error(t, cb.Execute(func() error { return errSMTP }))
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, CBHalfOpen, cb.State())

	require.Error(t, cb.Execute(func() error { return errSMTP }))
	assert.Equal(t, CBOpen, cb.State())
}
