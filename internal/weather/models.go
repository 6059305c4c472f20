package weather

// IconCategory is the icon family a condition is drawn with.
type IconCategory string

const (
	IconClear  IconCategory = "clear"
	IconRain   IconCategory = "rain"
	IconCloudy IconCategory = "cloudy"
)

// Unit is the temperature unit used for display. The zero value is Celsius.
type Unit int

const (
	Celsius Unit = iota
	Fahrenheit
)

// Symbol returns the single-letter unit suffix ("C" or "F").
func (u Unit) Symbol() string {
	if u == Fahrenheit {
		return "F"
	}
	return "C"
}

// Toggle returns the other unit.
func (u Unit) Toggle() Unit {
	if u == Fahrenheit {
		return Celsius
	}
	return Fahrenheit
}

func (u Unit) String() string {
	if u == Fahrenheit {
		return "fahrenheit"
	}
	return "celsius"
}

// ParseUnit accepts "C", "F", "celsius" or "fahrenheit" (any case).
func ParseUnit(s string) (Unit, bool) {
	switch lower(s) {
	case "c", "celsius":
		return Celsius, true
	case "f", "fahrenheit":
		return Fahrenheit, true
	default:
		return Celsius, false
	}
}

// Snapshot is the normalized weather data for one successful lookup.
// Temperatures are always Celsius.
type Snapshot struct {
	LocationName             string  `json:"locationName,omitempty"`
	TemperatureCelsius       float64 `json:"temperatureCelsius"`
	HumidityPercent          float64 `json:"humidityPercent"`
	WindSpeedMetersPerSecond float64 `json:"windSpeedMetersPerSecond"`
	ConditionMain            string  `json:"conditionMain"`
	ConditionDescription     string  `json:"conditionDescription"`
}

// Icon resolves the icon category for the snapshot's condition.
func (s Snapshot) Icon() IconCategory {
	return ResolveIcon(s.ConditionMain)
}
