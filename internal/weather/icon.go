package weather

import "strings"

// ResolveIcon maps a provider condition (e.g. "Rain") to an icon category.
// Matching is case-insensitive; empty or unknown conditions are cloudy.
func ResolveIcon(conditionMain string) IconCategory {
	switch lower(conditionMain) {
	case "clear":
		return IconClear
	case "rain":
		return IconRain
	default:
		return IconCloudy
	}
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
