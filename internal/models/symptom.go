package models

import "strings"

func DefaultSymptoms() []string {
	return []string{
		"Cramps",
		"Headache",
		"Bloating",
		"Fatigue",
		"Acne",
		"Mood Swings",
		"Cravings",
		"Back Pain",
	}
}

// CanonicalSymptom maps a known symptom to its built-in spelling and leaves
// custom tags as typed.
func CanonicalSymptom(raw string) string {
	trimmed := strings.TrimSpace(raw)
	for _, builtin := range DefaultSymptoms() {
		if strings.EqualFold(builtin, trimmed) {
			return builtin
		}
	}
	return trimmed
}
