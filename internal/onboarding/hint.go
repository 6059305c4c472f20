// Package onboarding drives the one-shot "Enter city name" hint.
package onboarding

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// HintText is the onboarding message.
const HintText = "Enter city name"

// Schedule is the two-event show/hide plan. Both offsets are measured from
// activation.
type Schedule struct {
	ShowAt time.Duration
	HideAt time.Duration
}

var DefaultSchedule = Schedule{ShowAt: 1 * time.Second, HideAt: 4 * time.Second}

// VisibleAt reports whether the hint is shown after elapsed time.
func (s Schedule) VisibleAt(elapsed time.Duration) bool {
	return elapsed >= s.ShowAt && elapsed < s.HideAt
}

type Option func(*HintScheduler)

func WithClock(c clock.Clock) Option {
	return func(h *HintScheduler) { h.clock = c }
}

func WithSchedule(s Schedule) Option {
	return func(h *HintScheduler) { h.schedule = s }
}

// WithReady guards the show event: the hint only appears if ready returns true
// when the show timer fires.
func WithReady(ready func() bool) Option {
	return func(h *HintScheduler) { h.ready = ready }
}

// OnChange registers a callback run after each visibility transition.
func OnChange(fn func(visible bool)) Option {
	return func(h *HintScheduler) { h.onChange = fn }
}

// HintScheduler shows the hint at ShowAt and hides it at HideAt, once per
// activation. Deactivate cancels whatever has not fired yet.
type HintScheduler struct {
	clock    clock.Clock
	schedule Schedule
	ready    func() bool
	onChange func(bool)

	mu        sync.Mutex
	activated bool
	epoch     uint64
	visible   bool
	timers    []*clock.Timer
}

func NewHintScheduler(opts ...Option) *HintScheduler {
	h := &HintScheduler{
		clock:    clock.New(),
		schedule: DefaultSchedule,
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Activate arms the show and hide timers. Further calls are no-ops until
// Deactivate, after which the next Activate starts a fresh schedule.
func (h *HintScheduler) Activate() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.activated {
		return
	}
	h.activated = true

	epoch := h.epoch
	h.timers = []*clock.Timer{
		h.clock.AfterFunc(h.schedule.ShowAt, func() { h.set(epoch, true) }),
		h.clock.AfterFunc(h.schedule.HideAt, func() { h.set(epoch, false) }),
	}
}

// Deactivate stops pending timers and hides the hint without notifying; the
// host is gone. Callbacks already in flight are ignored.
func (h *HintScheduler) Deactivate() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.epoch++
	for _, t := range h.timers {
		t.Stop()
	}
	h.timers = nil
	h.activated = false
	h.visible = false
}

func (h *HintScheduler) Visible() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.visible
}

func (h *HintScheduler) set(epoch uint64, visible bool) {
	h.mu.Lock()
	if epoch != h.epoch || h.visible == visible {
		h.mu.Unlock()
		return
	}
	if visible && h.ready != nil && !h.ready() {
		h.mu.Unlock()
		return
	}
	h.visible = visible
	cb := h.onChange
	h.mu.Unlock()

	if cb != nil {
		cb(visible)
	}
}
