package models

import "strings"

const (
	MoodHappy     = "Happy"
	MoodEnergetic = "Energetic"
	MoodExcited   = "Excited"
	MoodNeutral   = "Neutral"
	MoodCalm      = "Calm"
	MoodSad       = "Sad"
	MoodAnxious   = "Anxious"
	MoodIrritable = "Irritable"
	MoodTired     = "Tired"
)

var moodScores = map[string]int{
	MoodHappy:     5,
	MoodEnergetic: 5,
	MoodExcited:   5,
	MoodNeutral:   3,
	MoodCalm:      3,
	MoodAnxious:   2,
	MoodIrritable: 2,
	MoodTired:     2,
	MoodSad:       1,
}

// NeutralMoodScore is used for entries without a mood.
const NeutralMoodScore = 3

func Moods() []string {
	return []string{
		MoodHappy, MoodEnergetic, MoodExcited,
		MoodNeutral, MoodCalm,
		MoodSad, MoodAnxious, MoodIrritable, MoodTired,
	}
}

// CanonicalMood returns the vocabulary spelling of raw, matched case-insensitively.
func CanonicalMood(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, mood := range Moods() {
		if strings.EqualFold(mood, trimmed) {
			return mood, true
		}
	}
	return "", false
}

func MoodScore(mood string) (int, bool) {
	score, ok := moodScores[mood]
	return score, ok
}
