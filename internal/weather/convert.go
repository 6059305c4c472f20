package weather

import "strconv"

// ToDisplay converts a Celsius temperature to the requested unit and formats
// it with one decimal place.
func ToDisplay(tempC float64, unit Unit) string {
	v := tempC
	if unit == Fahrenheit {
		v = tempC*9/5 + 32
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}
