package responsive

import (
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ensigniasec/regionpick/internal/schedule"
)

// fakeViewport is a Viewport whose width is set by the test.
type fakeViewport struct {
	mu        sync.Mutex
	width     float64
	listeners map[int]func()
	next      int
}

func newFakeViewport(width float64) *fakeViewport {
	return &fakeViewport{width: width, listeners: make(map[int]func())}
}

func (v *fakeViewport) Width() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.width
}

func (v *fakeViewport) OnResize(fn func()) func() {
	v.mu.Lock()
	defer v.mu.Unlock()
	id := v.next
	v.next++
	v.listeners[id] = fn
	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		delete(v.listeners, id)
	}
}

func (v *fakeViewport) resize(width float64) {
	v.mu.Lock()
	v.width = width
	fns := make([]func(), 0, len(v.listeners))
	for _, fn := range v.listeners {
		fns = append(fns, fn)
	}
	v.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (v *fakeViewport) subscribers() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.listeners)
}

type scaleCall struct{ scale, width float64 }

func newTestController(t *testing.T, width float64, opts ...Option) (*Controller, *fakeViewport, *recordingSink, *schedule.Manual, *[]scaleCall) {
	t.Helper()
	vp := newFakeViewport(width)
	sink := newRecordingSink()
	clock := schedule.NewManual()
	logger, _ := test.NewNullLogger()
	var calls []scaleCall
	base := []Option{
		WithScheduler(clock),
		WithLogger(logger),
		WithOnScaleChange(func(scale, width float64) { calls = append(calls, scaleCall{scale, width}) }),
	}
	c := NewController(vp, sink, append(base, opts...)...)
	t.Cleanup(c.Stop)
	return c, vp, sink, clock, &calls
}

func TestController_InitialState(t *testing.T) {
	c, _, sink, _, calls := newTestController(t, 1920)
	assert.False(t, c.State().Ready, "not ready before Start")

	c.Start()
	st := c.State()
	assert.InDelta(t, 1.125, st.Scale, 1e-9)
	assert.Equal(t, LargeDesktop, st.Breakpoint)
	assert.InDelta(t, 1920.0, st.Width, 1e-9)
	assert.True(t, st.Ready)
	assert.Equal(t, "18px", sink.fontSize)
	assert.Equal(t, []scaleCall{{1.125, 1920}}, *calls)
}

func TestController_CustomConfig(t *testing.T) {
	c, _, _, _, _ := newTestController(t, 1920, WithConfig(Config{
		Breakpoints: map[string]float64{"mobile": 640, "desktop": 1024},
		Scales:      map[string]float64{"mobile": 0.9, "desktop": 1.1},
	}))
	c.Start()
	assert.InDelta(t, 1.1, c.State().Scale, 1e-9)
	assert.Equal(t, "desktop", c.State().Breakpoint)
}

func TestController_CustomBaseFontSize(t *testing.T) {
	c, _, sink, _, _ := newTestController(t, 1920, WithConfig(Config{BaseFontSize: 18}))
	c.Start()
	assert.Equal(t, "20.25px", sink.fontSize)
}

func TestController_Disabled(t *testing.T) {
	c, vp, sink, clock, calls := newTestController(t, 1920, WithEnabled(false))
	c.Start()
	vp.resize(800)
	clock.Advance(time.Second)

	assert.Empty(t, *calls)
	assert.Zero(t, sink.writes)
	assert.Zero(t, vp.subscribers())
	assert.False(t, c.State().Ready)
	assert.InDelta(t, 1.125, c.State().Scale, 1e-9, "state still reflects the initial width")
}

func TestController_PublishFailureIsLogged(t *testing.T) {
	vp := newFakeViewport(1920)
	sink := newRecordingSink()
	sink.failOn = "*"
	logger, hook := test.NewNullLogger()
	called := false

	c := NewController(vp, sink,
		WithScheduler(schedule.NewManual()),
		WithLogger(logger),
		WithOnScaleChange(func(float64, float64) { called = true }),
	)
	defer c.Stop()

	require.NotPanics(t, c.Start)
	assert.False(t, c.State().Ready)
	assert.False(t, called)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "Failed to update CSS variables:", entry.Message)
	err, ok := entry.Data[logrus.ErrorKey].(error)
	require.True(t, ok)
	assert.ErrorIs(t, err, errWrite)
}

func TestController_ResizeIsDebounced(t *testing.T) {
	c, vp, sink, clock, calls := newTestController(t, 1920)
	c.Start()
	*calls = nil
	writesAfterStart := sink.writes

	for _, w := range []float64{1700, 1500, 1300, 900, 375} {
		vp.resize(w)
		clock.Advance(30 * time.Millisecond)
	}
	// Width state follows every resize immediately.
	assert.InDelta(t, 375.0, c.State().Width, 1e-9)
	assert.Equal(t, Mobile, c.State().Breakpoint)
	assert.Equal(t, writesAfterStart, sink.writes, "nothing published inside the window")

	clock.Advance(100 * time.Millisecond)
	require.Equal(t, []scaleCall{{0.875, 375}}, *calls)
	assert.Equal(t, "14px", sink.fontSize)
}

func TestController_CustomDebounce(t *testing.T) {
	c, vp, _, clock, calls := newTestController(t, 1920, WithConfig(Config{Debounce: 200 * time.Millisecond}))
	c.Start()
	*calls = nil

	vp.resize(1000)
	clock.Advance(150 * time.Millisecond)
	assert.Empty(t, *calls)
	clock.Advance(50 * time.Millisecond)
	assert.Len(t, *calls, 1)
}

func TestController_StopCancelsPending(t *testing.T) {
	c, vp, _, clock, calls := newTestController(t, 1920)
	c.Start()
	*calls = nil

	vp.resize(500)
	c.Stop()
	clock.Advance(time.Second)

	assert.Empty(t, *calls)
	assert.Zero(t, vp.subscribers())
}

func TestController_SetConfigRepublishes(t *testing.T) {
	c, _, sink, clock, calls := newTestController(t, 1920)
	c.Start()
	*calls = nil

	c.SetConfig(Config{Scales: map[string]float64{LargeDesktop: 2}})
	assert.InDelta(t, 2.0, c.State().Scale, 1e-9)
	clock.Advance(100 * time.Millisecond)

	assert.Equal(t, []scaleCall{{2, 1920}}, *calls)
	assert.Equal(t, "32px", sink.fontSize)
	assert.InDelta(t, 2.0, c.Config().Scales[LargeDesktop], 1e-9)
}
