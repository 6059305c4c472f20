package common

import "testing"

func TestContainsAnyFold(t *testing.T) {
	if !ContainsAnyFold("Patchy Light RAIN", "snow", "rain") {
		t.Fatal("expected a case-insensitive match")
	}
	if ContainsAnyFold("Sunny", "cloud", "") {
		t.Fatal("expected no match")
	}
}
