package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/terraincognita07/selene/internal/models"
)

const (
	MaxDayNotesLength = 2000
	MaxSymptomLength  = 64
	MaxSymptomsPerDay = 32
)

var (
	ErrInvalidDayFlow    = errors.New("invalid day flow")
	ErrInvalidMood       = errors.New("invalid day mood")
	ErrInvalidDaySymptom = errors.New("invalid day symptom")
)

type DayEntryInput struct {
	Flow     string
	Symptoms []string
	Mood     string
	Notes    string
}

func NormalizeDayEntryInput(input DayEntryInput) (DayEntryInput, error) {
	flow := strings.ToLower(strings.TrimSpace(input.Flow))
	if flow == "" {
		flow = models.FlowNone
	}
	if !IsValidDayFlow(flow) {
		return input, ErrInvalidDayFlow
	}

	mood := ""
	if strings.TrimSpace(input.Mood) != "" {
		canonical, ok := models.CanonicalMood(input.Mood)
		if !ok {
			return input, ErrInvalidMood
		}
		mood = canonical
	}

	symptoms, err := normalizeSymptoms(input.Symptoms)
	if err != nil {
		return input, err
	}

	return DayEntryInput{
		Flow:     flow,
		Symptoms: symptoms,
		Mood:     mood,
		Notes:    TrimDayNotes(strings.TrimSpace(input.Notes)),
	}, nil
}

func IsValidDayFlow(flow string) bool {
	switch flow {
	case models.FlowNone, models.FlowLight, models.FlowMedium, models.FlowHeavy:
		return true
	default:
		return false
	}
}

func TrimDayNotes(value string) string {
	if utf8.RuneCountInString(value) <= MaxDayNotesLength {
		return value
	}
	return string([]rune(value)[:MaxDayNotesLength])
}

func normalizeSymptoms(raw []string) ([]string, error) {
	symptoms := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, value := range raw {
		symptom := models.CanonicalSymptom(value)
		if symptom == "" {
			continue
		}
		if utf8.RuneCountInString(symptom) > MaxSymptomLength {
			return nil, ErrInvalidDaySymptom
		}
		key := strings.ToLower(symptom)
		if seen[key] {
			continue
		}
		seen[key] = true
		symptoms = append(symptoms, symptom)
	}
	if len(symptoms) > MaxSymptomsPerDay {
		return nil, ErrInvalidDaySymptom
	}
	return symptoms, nil
}
