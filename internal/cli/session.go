package cli

import (
	"sync"

	"github.com/i474232898/weather-lookup/internal/lookup"
	"github.com/i474232898/weather-lookup/internal/onboarding"
	"github.com/i474232898/weather-lookup/internal/weather"
	"github.com/i474232898/weather-lookup/internal/widget"
)

// session ties the controller and the hint to a renderer. Every change from
// either side produces a fresh frame.
type session struct {
	ctrl     *lookup.Controller
	hint     *onboarding.HintScheduler
	renderer *widget.Renderer

	mu sync.Mutex
}

func newSession(gw lookup.Gateway, cfg sessionConfig) *session {
	s := &session{renderer: cfg.renderer}

	hintOpts := append([]onboarding.Option{onboarding.OnChange(s.hintChanged)}, cfg.hintOpts...)
	s.hint = onboarding.NewHintScheduler(hintOpts...)

	ctrlOpts := append([]lookup.Option{
		lookup.WithUnit(cfg.unit),
		lookup.WithLookupTimeout(cfg.timeout),
	}, cfg.ctrlOpts...)
	if cfg.live {
		ctrlOpts = append(ctrlOpts, lookup.WithObserver(s.stateChanged))
	}
	s.ctrl = lookup.NewController(gw, ctrlOpts...)
	s.ctrl.SetCity(cfg.city)
	return s
}

func (s *session) stateChanged(state lookup.State, unit weather.Unit) {
	s.draw(state, unit)
}

func (s *session) hintChanged(bool) {
	s.draw(s.ctrl.State(), s.ctrl.Unit())
}

func (s *session) redraw() {
	s.draw(s.ctrl.State(), s.ctrl.Unit())
}

func (s *session) draw(state lookup.State, unit weather.Unit) {
	if s.renderer == nil {
		return
	}
	view := widget.BuildView(state, unit, s.hint.Visible())

	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.renderer.Render(view)
}
