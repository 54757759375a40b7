package tbucket

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNilHooksEmitNothing(t *testing.T) {
	var h *Hooks

	require.NotPanics(t, func() {
		h.emitConsumed(1)
		h.emitRejected(1)
		h.emitReserved(1, 100)
		h.emitRefilled(1)
		h.emitAddTokens(1)
	})
}

func TestHooksWithNilFieldsEmitNothing(t *testing.T) {
	h := &Hooks{}

	require.NotPanics(t, func() {
		h.emitConsumed(1)
		h.emitRejected(1)
		h.emitReserved(1, 100)
		h.emitRefilled(1)
		h.emitAddTokens(1)
	})
}

func TestHooksEmitConsumed(t *testing.T) {
	var got uint64

	h := &Hooks{OnConsumed: func(n uint64) { got = n }}
	h.emitConsumed(7)

	require.Equal(t, uint64(7), got)
}

func TestHooksEmitRejected(t *testing.T) {
	var got uint64

	h := &Hooks{OnRejected: func(n uint64) { got = n }}
	h.emitRejected(3)

	require.Equal(t, uint64(3), got)
}

func TestHooksEmitReserved(t *testing.T) {
	var gotN uint64

	var gotDelay int64

	h := &Hooks{OnReserved: func(n uint64, delayNanos int64) {
		gotN = n
		gotDelay = delayNanos
	}}
	h.emitReserved(5, 1_000_000)

	require.Equal(t, uint64(5), gotN)
	require.Equal(t, int64(1_000_000), gotDelay)
}

func TestHooksEmitRefilled(t *testing.T) {
	var got uint64

	h := &Hooks{OnRefilled: func(n uint64) { got = n }}
	h.emitRefilled(4)

	require.Equal(t, uint64(4), got)
}

func TestHooksEmitAddTokens(t *testing.T) {
	var got uint64

	h := &Hooks{OnAddTokens: func(n uint64) { got = n }}
	h.emitAddTokens(9)

	require.Equal(t, uint64(9), got)
}
