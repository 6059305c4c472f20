package weather

import "encoding/json"

// Payload is the gateway's success body for GET /api/weather. Optional blocks
// are pointers so a missing block can be told apart from a zero one.
type Payload struct {
	Main    *MainBlock        `json:"main,omitempty"`
	Weather []*ConditionEntry `json:"weather"`
	Wind    *WindBlock        `json:"wind,omitempty"`
	Name    *string           `json:"name,omitempty"`
}

type MainBlock struct {
	Temp     float64 `json:"temp"`
	Humidity float64 `json:"humidity"`
}

type ConditionEntry struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

type WindBlock struct {
	Speed float64 `json:"speed"`
}

// Valid reports whether the payload carries a non-null first condition entry
// and a temperature/humidity block. It is the only check deciding whether a
// response can become a Snapshot.
func (p Payload) Valid() bool {
	return p.Main != nil && len(p.Weather) > 0 && p.Weather[0] != nil
}

// Snapshot normalizes the payload. It returns ErrInvalidPayload rather than a
// partially filled snapshot when Valid does not hold.
func (p Payload) Snapshot() (Snapshot, error) {
	if !p.Valid() {
		return Snapshot{}, ErrInvalidPayload
	}

	snap := Snapshot{
		TemperatureCelsius:   p.Main.Temp,
		HumidityPercent:      p.Main.Humidity,
		ConditionMain:        p.Weather[0].Main,
		ConditionDescription: p.Weather[0].Description,
	}
	if p.Wind != nil {
		snap.WindSpeedMetersPerSecond = p.Wind.Speed
	}
	if p.Name != nil {
		snap.LocationName = *p.Name
	}
	return snap, nil
}

// DecodeSnapshot parses a gateway body and normalizes it. A body that is not
// JSON returns the decoder's error as-is, so it surfaces like any other
// transport fault. ErrInvalidPayload is kept for JSON missing required blocks.
func DecodeSnapshot(body []byte) (Snapshot, error) {
	var p Payload
	if err := json.Unmarshal(body, &p); err != nil {
		return Snapshot{}, err
	}
	return p.Snapshot()
}
