// Package selector implements the region picker state: a two-level option
// tree and the selected path, both persisted, plus simulated asynchronous
// replacement of the tree.
package selector

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/regionpick/internal/schedule"
	"github.com/ensigniasec/regionpick/internal/storage"
)

// Storage keys.
const (
	OptionsKey   = "options"
	SelectionKey = "selectedValue"
)

// Delays of the simulated operations.
const (
	DefaultFetchDelay = 2 * time.Second
	DefaultResetDelay = 500 * time.Millisecond
)

// ErrBusy is returned when the selection is changed while a fetch or reset is running.
var ErrBusy = errors.New("selector is loading")

// EventKind identifies a selector event.
type EventKind int

const (
	EventFetchStarted EventKind = iota
	EventFetchDone
	EventResetStarted
	EventResetDone
	EventSelected
)

func (k EventKind) String() string {
	switch k {
	case EventFetchStarted:
		return "Fetching options..."
	case EventFetchDone:
		return "Options fetched"
	case EventResetStarted:
		return "Resetting options..."
	case EventResetDone:
		return "Options reset"
	case EventSelected:
		return "Selection saved"
	default:
		return "unknown"
	}
}

// Done reports whether the event ends a fetch or reset.
func (k EventKind) Done() bool {
	return k == EventFetchDone || k == EventResetDone
}

// Snapshot is a copy of the selector state.
type Snapshot struct {
	Options   []Option `json:"options"`
	Selection []string `json:"selection"`
	Loading   bool     `json:"loading"`
}

// Event is delivered to the WithOnEvent callback.
type Event struct {
	Kind EventKind
	// RequestID correlates the start and end of one fetch or reset.
	RequestID string
	Snapshot  Snapshot
}

// Setting configures a Selector.
type Setting func(*Selector)

// WithScheduler sets the clock used for the simulated delays.
func WithScheduler(s schedule.Scheduler) Setting {
	return func(sel *Selector) { sel.sched = s }
}

// WithFetchedOptions sets the tree installed by Fetch.
func WithFetchedOptions(tree []Option) Setting {
	return func(sel *Selector) { sel.fetched = cloneTree(tree) }
}

// WithDelays overrides the fetch and reset delays. Zero keeps the default.
func WithDelays(fetch, reset time.Duration) Setting {
	return func(sel *Selector) {
		if fetch > 0 {
			sel.fetchDelay = fetch
		}
		if reset > 0 {
			sel.resetDelay = reset
		}
	}
}

// WithOnEvent registers a callback for state changes. It runs without the selector lock held.
func WithOnEvent(fn func(Event)) Setting {
	return func(sel *Selector) { sel.onEvent = fn }
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Setting {
	return func(sel *Selector) { sel.log = l }
}

// Selector owns the option tree and the selected path.
type Selector struct {
	store      storage.KV
	sched      schedule.Scheduler
	fetched    []Option
	fetchDelay time.Duration
	resetDelay time.Duration
	onEvent    func(Event)
	log        logrus.FieldLogger

	mu        sync.Mutex
	options   []Option
	selection []string
	loading   bool
	pending   schedule.Timer
	pendingID string
}

// New restores the tree and selection from store. Absent or malformed entries
// fall back to DefaultOptions and an empty selection.
func New(store storage.KV, opts ...Setting) *Selector {
	s := &Selector{
		store:      store,
		fetched:    FetchedOptions(),
		fetchDelay: DefaultFetchDelay,
		resetDelay: DefaultResetDelay,
		log:        logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.sched = schedule.OrSystem(s.sched)
	s.options = s.loadOptions()
	s.selection = s.loadSelection()
	return s
}

func (s *Selector) loadOptions() []Option {
	tree, ok := storage.TryLoad[[]Option](s.store, OptionsKey)
	if !ok {
		return DefaultOptions()
	}
	if err := Validate(tree); err != nil {
		s.log.Debugf("discarding persisted options: %v", err)
		return DefaultOptions()
	}
	return tree
}

// loadSelection does not check the path against the tree; stale selections are kept.
func (s *Selector) loadSelection() []string {
	sel, ok := storage.TryLoad[[]string](s.store, SelectionKey)
	if !ok || sel == nil {
		return []string{}
	}
	return sel
}

// Fetch replaces the tree with the fetched options after the fetch delay.
// It reports false, doing nothing, while a fetch or reset is running.
func (s *Selector) Fetch() bool {
	return s.replace(EventFetchStarted, EventFetchDone, s.fetchDelay, s.fetched)
}

// Reset restores DefaultOptions after the reset delay, with the same guard as Fetch.
func (s *Selector) Reset() bool {
	return s.replace(EventResetStarted, EventResetDone, s.resetDelay, DefaultOptions())
}

func (s *Selector) replace(start, done EventKind, delay time.Duration, tree []Option) bool {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return false
	}
	s.loading = true
	s.selection = []string{}

	id := uuid.NewString()
	log := s.log.WithFields(logrus.Fields{"request_id": id, "op": start.String()})
	// The tree stays persisted until the replacement lands; only the selection goes now.
	if err := s.store.Remove(SelectionKey); err != nil {
		log.WithError(err).Warn("could not clear persisted selection")
	}
	tree = cloneTree(tree)
	s.pendingID = id
	s.pending = s.sched.AfterFunc(delay, func() { s.complete(done, id, tree, log) })
	snap := s.snapshotLocked()
	s.mu.Unlock()

	log.Debug("options replacement started")
	s.emit(Event{Kind: start, RequestID: id, Snapshot: snap})
	return true
}

func (s *Selector) complete(done EventKind, id string, tree []Option, log logrus.FieldLogger) {
	s.mu.Lock()
	if !s.loading || s.pendingID != id {
		// Closed while the timer was firing.
		s.mu.Unlock()
		return
	}
	s.options = tree
	if err := s.store.Set(OptionsKey, tree); err != nil {
		log.WithError(err).Warn("could not persist options")
	}
	s.loading = false
	s.pending = nil
	s.pendingID = ""
	snap := s.snapshotLocked()
	s.mu.Unlock()

	log.WithField("roots", len(tree)).Debug("options replacement finished")
	s.emit(Event{Kind: done, RequestID: id, Snapshot: snap})
}

// Select sets the selected path and persists it immediately.
func (s *Selector) Select(path []string) error {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return ErrBusy
	}
	sel := slices.Clone(path)
	if sel == nil {
		sel = []string{}
	}
	s.selection = sel
	err := s.store.Set(SelectionKey, sel)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.emit(Event{Kind: EventSelected, Snapshot: snap})
	return nil
}

// Snapshot returns a copy of the current state.
func (s *Selector) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Loading reports whether a fetch or reset is running.
func (s *Selector) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// SelectedLabels resolves the labels of the current selection against the current tree.
func (s *Selector) SelectedLabels() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Labels(s.options, s.selection)
}

// Close drops a pending fetch or reset without installing its tree.
func (s *Selector) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	s.pendingID = ""
	s.loading = false
}

func (s *Selector) snapshotLocked() Snapshot {
	return Snapshot{
		Options:   cloneTree(s.options),
		Selection: slices.Clone(s.selection),
		Loading:   s.loading,
	}
}

func (s *Selector) emit(e Event) {
	if s.onEvent != nil {
		s.onEvent(e)
	}
}
