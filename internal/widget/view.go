package widget

import (
	"strconv"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/i474232898/weather-lookup/internal/lookup"
	"github.com/i474232898/weather-lookup/internal/onboarding"
	"github.com/i474232898/weather-lookup/internal/weather"
)

// Kind selects which panel the widget shows.
type Kind int

const (
	KindEmpty Kind = iota
	KindSkeleton
	KindError
	KindCard
)

const (
	unknownLocation = "Unknown location"
	noDataMessage   = "No weather data available"
	dateLayout      = "Monday, January 2"
	timeLayout      = "3:04:05 PM"
)

// View is everything the renderer needs for one frame.
type View struct {
	Kind          Kind
	SearchEnabled bool
	Error         string
	Empty         string
	Card          *Card
	LastUpdated   string
	Hint          string
}

// Card is the weather panel for a successful lookup.
type Card struct {
	Location    string
	Date        string
	Icon        weather.IconCategory
	Temperature string
	ToggleLabel string
	Humidity    string
	Wind        string
	Description string
}

// BuildView derives the frame for state, unit and hint visibility.
func BuildView(state lookup.State, unit weather.Unit, hintVisible bool) View {
	v := View{SearchEnabled: state.Phase != lookup.PhaseLoading}
	if hintVisible {
		v.Hint = onboarding.HintText
	}

	switch state.Phase {
	case lookup.PhaseLoading:
		v.Kind = KindSkeleton
	case lookup.PhaseFailure:
		v.Kind = KindError
		v.Error = state.Message
	case lookup.PhaseSuccess:
		if state.Snapshot == nil {
			v.Kind = KindEmpty
			v.Empty = noDataMessage
			break
		}
		v.Kind = KindCard
		v.Card = buildCard(*state.Snapshot, unit, state.UpdatedAt)
		v.LastUpdated = "Last updated: " + state.UpdatedAt.Format(timeLayout)
	default:
		v.Kind = KindEmpty
		v.Empty = noDataMessage
	}
	return v
}

func buildCard(s weather.Snapshot, unit weather.Unit, at time.Time) *Card {
	location := s.LocationName
	if location == "" {
		location = unknownLocation
	}
	return &Card{
		Location:    location,
		Date:        at.Format(dateLayout),
		Icon:        s.Icon(),
		Temperature: weather.ToDisplay(s.TemperatureCelsius, unit) + "°" + unit.Symbol(),
		ToggleLabel: "°" + unit.Toggle().Symbol(),
		Humidity:    formatNumber(s.HumidityPercent) + "%",
		Wind:        formatNumber(s.WindSpeedMetersPerSecond) + " m/s",
		// Casers keep state, so one per call.
		Description: cases.Title(language.English).String(s.ConditionDescription),
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
