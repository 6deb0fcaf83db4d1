package responsive

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/regionpick/internal/schedule"
)

// publishFailedMsg is the log message for a failed publish cycle.
const publishFailedMsg = "Failed to update CSS variables:"

// Viewport is the source of the current width and of resize notifications.
type Viewport interface {
	Width() float64
	// OnResize registers fn to run after every width change and returns a
	// function that removes the registration.
	OnResize(fn func()) (unsubscribe func())
}

// State is the resolved responsive state.
type State struct {
	Scale      float64 `json:"scale"`
	Breakpoint string  `json:"breakpoint"`
	Width      float64 `json:"width"`
	// Ready is set once a publish has succeeded.
	Ready bool `json:"ready"`
}

// Option configures a Controller.
type Option func(*Controller)

// WithConfig overlays partial onto DefaultConfig.
func WithConfig(partial Config) Option {
	return func(c *Controller) { c.cfg = DefaultConfig().Merge(partial) }
}

// WithOnScaleChange registers a callback invoked after every successful publish.
func WithOnScaleChange(fn func(scale, width float64)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// WithEnabled turns the controller on or off. A disabled controller never
// subscribes, never publishes and never calls back.
func WithEnabled(enabled bool) Option {
	return func(c *Controller) { c.enabled = enabled }
}

// WithScheduler sets the clock used for debouncing.
func WithScheduler(s schedule.Scheduler) Option {
	return func(c *Controller) { c.sched = s }
}

// WithLogger sets the logger for publish failures.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Controller) { c.log = l }
}

// Controller keeps style variables in step with the viewport width.
// Width changes update State immediately; publishing is debounced.
type Controller struct {
	viewport Viewport
	sink     StyleSink
	onChange func(scale, width float64)
	enabled  bool
	sched    schedule.Scheduler
	log      logrus.FieldLogger

	mu          sync.Mutex
	cfg         Config
	state       State
	debouncer   *schedule.Debouncer
	unsubscribe func()
	started     bool
}

// NewController builds a controller reading widths from vp and writing to sink.
// It does nothing until Start.
func NewController(vp Viewport, sink StyleSink, opts ...Option) *Controller {
	c := &Controller{
		viewport: vp,
		sink:     sink,
		enabled:  true,
		cfg:      DefaultConfig(),
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.sched = schedule.OrSystem(c.sched)
	c.debouncer = schedule.NewDebouncer(c.cfg.debounce(), c.sched)
	c.resolveLocked(vp.Width())
	return c
}

// Start publishes once for the current width and subscribes to resizes.
func (c *Controller) Start() {
	if !c.enabled {
		return
	}
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	c.setWidth(c.viewport.Width())
	c.publish()

	unsubscribe := c.viewport.OnResize(c.handleResize)
	c.mu.Lock()
	c.unsubscribe = unsubscribe
	c.mu.Unlock()
}

// Stop unsubscribes from resizes and drops any pending publish.
func (c *Controller) Stop() {
	c.mu.Lock()
	unsubscribe := c.unsubscribe
	c.unsubscribe = nil
	c.started = false
	debouncer := c.debouncer
	c.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	debouncer.Cancel()
}

// State returns a snapshot of the resolved state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Config returns the effective configuration.
func (c *Controller) Config() Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.Merge(Config{})
}

// SetConfig replaces the configuration with partial overlaid on the defaults
// and schedules a republish.
func (c *Controller) SetConfig(partial Config) {
	c.mu.Lock()
	c.cfg = DefaultConfig().Merge(partial)
	if c.debouncer.Duration() != c.cfg.debounce() {
		c.debouncer.Cancel()
		c.debouncer = schedule.NewDebouncer(c.cfg.debounce(), c.sched)
	}
	c.resolveLocked(c.state.Width)
	started := c.started
	debouncer := c.debouncer
	c.mu.Unlock()

	if started {
		debouncer.Trigger(c.publish)
	}
}

func (c *Controller) handleResize() {
	c.setWidth(c.viewport.Width())
	c.mu.Lock()
	debouncer := c.debouncer
	c.mu.Unlock()
	debouncer.Trigger(c.publish)
}

// publish writes variables for the current state. Failures are logged and leave Ready untouched.
func (c *Controller) publish() {
	c.mu.Lock()
	scale, width, cfg := c.state.Scale, c.state.Width, c.cfg
	c.mu.Unlock()

	if err := Publish(c.sink, scale, cfg); err != nil {
		c.log.WithError(err).Error(publishFailedMsg)
		return
	}

	c.mu.Lock()
	c.state.Ready = true
	c.mu.Unlock()

	c.log.WithFields(logrus.Fields{"scale": scale, "width": width}).Debug("published style variables")
	if c.onChange != nil {
		c.onChange(scale, width)
	}
}

// setWidth records a new width and re-resolves scale and breakpoint.
func (c *Controller) setWidth(width float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resolveLocked(width)
}

// resolveLocked requires c.mu.
func (c *Controller) resolveLocked(width float64) {
	c.state.Width = width
	c.state.Scale = CalculateScale(width, c.cfg)
	c.state.Breakpoint = CurrentBreakpoint(width, c.cfg)
}
