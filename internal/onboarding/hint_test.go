package onboarding

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
)

func TestScheduleVisibleAt(t *testing.T) {
	s := DefaultSchedule
	cases := []struct {
		at   time.Duration
		want bool
	}{
		{0, false},
		{999 * time.Millisecond, false},
		{1000 * time.Millisecond, true},
		{2500 * time.Millisecond, true},
		{3999 * time.Millisecond, true},
		{4000 * time.Millisecond, false},
		{time.Minute, false},
	}
	for _, c := range cases {
		if got := s.VisibleAt(c.at); got != c.want {
			t.Errorf("VisibleAt(%v): expected %v, got %v", c.at, c.want, got)
		}
	}
}

func newTestScheduler(mock *clock.Mock, opts ...Option) (*HintScheduler, chan bool) {
	changes := make(chan bool, 8)
	opts = append([]Option{WithClock(mock), OnChange(func(v bool) { changes <- v })}, opts...)
	return NewHintScheduler(opts...), changes
}

func expectChange(t *testing.T, changes <-chan bool, want bool) {
	t.Helper()
	select {
	case got := <-changes:
		if got != want {
			t.Fatalf("expected visibility %v, got %v", want, got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("expected visibility change to %v", want)
	}
}

func expectNoChange(t *testing.T, changes <-chan bool) {
	t.Helper()
	select {
	case got := <-changes:
		t.Fatalf("unexpected visibility change to %v", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHintShowsThenHides(t *testing.T) {
	mock := clock.NewMock()
	h, changes := newTestScheduler(mock)
	h.Activate()
	defer h.Deactivate()

	if h.Visible() {
		t.Fatal("hint visible at t=0")
	}

	mock.Add(999 * time.Millisecond)
	expectNoChange(t, changes)

	mock.Add(1 * time.Millisecond)
	expectChange(t, changes, true)
	if !h.Visible() {
		t.Fatal("hint hidden at t=1000ms")
	}

	mock.Add(3 * time.Second)
	expectChange(t, changes, false)
	if h.Visible() {
		t.Fatal("hint visible at t=4000ms")
	}
}

func TestHintOffsetsAreFromActivation(t *testing.T) {
	mock := clock.NewMock()
	mock.Add(10 * time.Second)

	h, changes := newTestScheduler(mock)
	h.Activate()
	defer h.Deactivate()

	mock.Add(1 * time.Second)
	expectChange(t, changes, true)
	mock.Add(3 * time.Second)
	expectChange(t, changes, false)
}

func TestHintTeardownBeforeShow(t *testing.T) {
	mock := clock.NewMock()
	h, changes := newTestScheduler(mock)
	h.Activate()

	mock.Add(500 * time.Millisecond)
	h.Deactivate()

	mock.Add(10 * time.Second)
	expectNoChange(t, changes)
	if h.Visible() {
		t.Fatal("hint became visible after teardown")
	}
}

func TestHintTeardownWhileVisible(t *testing.T) {
	mock := clock.NewMock()
	h, changes := newTestScheduler(mock)
	h.Activate()

	mock.Add(1 * time.Second)
	expectChange(t, changes, true)

	h.Deactivate()
	mock.Add(10 * time.Second)
	expectNoChange(t, changes)
}

func TestHintFiresOncePerActivation(t *testing.T) {
	mock := clock.NewMock()
	h, changes := newTestScheduler(mock)
	h.Activate()
	defer h.Deactivate()

	mock.Add(1 * time.Second)
	expectChange(t, changes, true)
	mock.Add(3 * time.Second)
	expectChange(t, changes, false)

	h.Activate()
	mock.Add(10 * time.Second)
	expectNoChange(t, changes)
}

func TestHintRestartsAfterReactivation(t *testing.T) {
	mock := clock.NewMock()
	h, changes := newTestScheduler(mock)
	h.Activate()

	mock.Add(1 * time.Second)
	expectChange(t, changes, true)

	h.Deactivate()
	if h.Visible() {
		t.Fatal("hint still visible after teardown")
	}

	h.Activate()
	defer h.Deactivate()

	mock.Add(999 * time.Millisecond)
	expectNoChange(t, changes)
	mock.Add(1 * time.Millisecond)
	expectChange(t, changes, true)
	mock.Add(3 * time.Second)
	expectChange(t, changes, false)
}

func TestHintRespectsReadyGuard(t *testing.T) {
	mock := clock.NewMock()
	h, changes := newTestScheduler(mock, WithReady(func() bool { return false }))
	h.Activate()
	defer h.Deactivate()

	mock.Add(1 * time.Second)
	expectNoChange(t, changes)
	if h.Visible() {
		t.Fatal("hint shown although not ready")
	}
}
