package services

import (
	"math"
	"sort"
	"time"

	"github.com/terraincognita07/selene/internal/cycle"
	"github.com/terraincognita07/selene/internal/models"
)

const (
	TopSymptomCount  = 6
	MoodSeriesLength = 14
)

type InsightsLogReader interface {
	FetchAllLogs(userID uint) ([]models.DailyLog, error)
}

type SymptomFrequency struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type MoodPoint struct {
	Date  time.Time `json:"date"`
	Mood  string    `json:"mood"`
	Score int       `json:"score"`
}

type Insights struct {
	CycleHistory       []cycle.CycleLength `json:"cycle_history"`
	LoggedCycles       int                 `json:"logged_cycles"`
	AverageCycleLength float64             `json:"average_cycle_length"`
	TopSymptoms        []SymptomFrequency  `json:"top_symptoms"`
	MoodSeries         []MoodPoint         `json:"mood_series"`
	AverageMood        float64             `json:"average_mood"`
}

type InsightsService struct {
	logs InsightsLogReader
}

func NewInsightsService(logs InsightsLogReader) *InsightsService {
	return &InsightsService{logs: logs}
}

func (service *InsightsService) Build(userID uint) (Insights, error) {
	logs, err := service.logs.FetchAllLogs(userID)
	if err != nil {
		return Insights{}, err
	}
	return BuildInsights(logs), nil
}

func BuildInsights(logs []models.DailyLog) Insights {
	history := make([]cycle.CycleLength, 0)
	total := 0
	for length := range cycle.DeriveCycleHistory(logs) {
		history = append(history, length)
		total += length.Days
	}

	insights := Insights{
		CycleHistory: history,
		LoggedCycles: len(history),
		TopSymptoms:  TopSymptoms(logs, TopSymptomCount),
		MoodSeries:   MoodSeries(logs, MoodSeriesLength),
	}
	if len(history) > 0 {
		insights.AverageCycleLength = roundTenth(float64(total) / float64(len(history)))
	}
	insights.AverageMood = AverageMood(logs)
	return insights
}

// TopSymptoms counts symptom occurrences across logs, most frequent first.
func TopSymptoms(logs []models.DailyLog, limit int) []SymptomFrequency {
	counts := make(map[string]int)
	for _, entry := range logs {
		for _, symptom := range entry.Symptoms {
			counts[symptom]++
		}
	}

	frequencies := make([]SymptomFrequency, 0, len(counts))
	for name, count := range counts {
		frequencies = append(frequencies, SymptomFrequency{Name: name, Count: count})
	}
	sort.Slice(frequencies, func(i, j int) bool {
		if frequencies[i].Count != frequencies[j].Count {
			return frequencies[i].Count > frequencies[j].Count
		}
		return frequencies[i].Name < frequencies[j].Name
	})

	if limit > 0 && len(frequencies) > limit {
		frequencies = frequencies[:limit]
	}
	return frequencies
}

// MoodSeries scores the most recent logs in date order. Logs without a mood
// score as neutral.
func MoodSeries(logs []models.DailyLog, limit int) []MoodPoint {
	sorted := sortedByDate(logs)
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[len(sorted)-limit:]
	}

	points := make([]MoodPoint, 0, len(sorted))
	for _, entry := range sorted {
		mood := entry.Mood
		score, ok := models.MoodScore(mood)
		if !ok {
			mood = models.MoodNeutral
			score = models.NeutralMoodScore
		}
		points = append(points, MoodPoint{
			Date:  cycle.CalendarDay(entry.Date),
			Mood:  mood,
			Score: score,
		})
	}
	return points
}

func AverageMood(logs []models.DailyLog) float64 {
	total, count := 0, 0
	for _, entry := range logs {
		score, ok := models.MoodScore(entry.Mood)
		if !ok {
			continue
		}
		total += score
		count++
	}
	if count == 0 {
		return 0
	}
	return roundTenth(float64(total) / float64(count))
}

func sortedByDate(logs []models.DailyLog) []models.DailyLog {
	sorted := make([]models.DailyLog, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return cycle.CalendarDay(sorted[i].Date).Before(cycle.CalendarDay(sorted[j].Date))
	})
	return sorted
}

func roundTenth(value float64) float64 {
	return math.Round(value*10) / 10
}
