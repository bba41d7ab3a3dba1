package clock_test

import (
	"testing"

	"github.com/isascarabelli/Chat-Distribuido/internal/clock"
	"github.com/stretchr/testify/require"
)

func TestLamportTickIsMonotonic(t *testing.T) {
	c := clock.New()
	require.EqualValues(t, 0, c.Now())

	a := c.Tick()
	b := c.Tick()
	require.EqualValues(t, 1, a)
	require.EqualValues(t, 2, b)
	require.Greater(t, b, a)
}

func TestLamportObserveTakesMaxPlusOne(t *testing.T) {
	c := clock.New()
	c.Tick() // local time = 1

	ts := c.Observe(10)
	require.EqualValues(t, 11, ts)

	// Observing a timestamp behind local time still advances strictly.
	ts2 := c.Observe(3)
	require.EqualValues(t, 12, ts2)
}

func TestLamportNowDoesNotAdvance(t *testing.T) {
	c := clock.New()
	c.Tick()
	before := c.Now()
	after := c.Now()
	require.Equal(t, before, after)
}
