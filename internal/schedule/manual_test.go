package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManual_RunsInDueOrder(t *testing.T) {
	clock := NewManual()
	var order []string
	clock.AfterFunc(30*time.Millisecond, func() { order = append(order, "c") })
	clock.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
	clock.AfterFunc(20*time.Millisecond, func() { order = append(order, "b") })

	clock.Advance(15 * time.Millisecond)
	require.Equal(t, []string{"a"}, order)
	clock.Advance(15 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestManual_StopReportsState(t *testing.T) {
	clock := NewManual()
	tm := clock.AfterFunc(time.Millisecond, func() {})
	assert.True(t, tm.Stop())
	assert.False(t, tm.Stop())

	fired := clock.AfterFunc(time.Millisecond, func() {})
	clock.Advance(time.Millisecond)
	assert.False(t, fired.Stop())
}

func TestManual_NestedSchedulingWithinWindow(t *testing.T) {
	clock := NewManual()
	var hits int
	clock.AfterFunc(10*time.Millisecond, func() {
		hits++
		clock.AfterFunc(10*time.Millisecond, func() { hits++ })
	})
	clock.Advance(25 * time.Millisecond)
	assert.Equal(t, 2, hits)
	assert.Equal(t, 0, clock.Pending())
}
