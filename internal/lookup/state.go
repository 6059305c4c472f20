package lookup

import (
	"time"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// Phase is the controller's current phase of a lookup.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseFailure
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseFailure:
		return "failure"
	default:
		return "idle"
	}
}

// State is one lifecycle state. Snapshot is set only in PhaseSuccess and
// Message only in PhaseFailure.
type State struct {
	Phase     Phase
	Snapshot  *weather.Snapshot
	Message   string
	UpdatedAt time.Time
}

func idle() State { return State{Phase: PhaseIdle} }

func loading(at time.Time) State {
	return State{Phase: PhaseLoading, UpdatedAt: at}
}

func succeeded(snap weather.Snapshot, at time.Time) State {
	return State{Phase: PhaseSuccess, Snapshot: &snap, UpdatedAt: at}
}

func failed(msg string, at time.Time) State {
	return State{Phase: PhaseFailure, Message: msg, UpdatedAt: at}
}
