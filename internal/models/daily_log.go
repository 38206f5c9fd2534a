package models

import (
	"strings"
	"time"
)

const (
	FlowNone   = "none"
	FlowLight  = "light"
	FlowMedium = "medium"
	FlowHeavy  = "heavy"
)

type DailyLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uidx_daily_logs_user_date" json:"user_id"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:uidx_daily_logs_user_date" json:"date"`
	Flow      string    `gorm:"not null;default:none" json:"flow"`
	Symptoms  []string  `gorm:"serializer:json" json:"symptoms"`
	Mood      string    `json:"mood,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasFlow reports whether the entry records bleeding. An empty flow and
// FlowNone both mean "no flow".
func (entry DailyLog) HasFlow() bool {
	flow := strings.TrimSpace(entry.Flow)
	return flow != "" && flow != FlowNone
}

func (entry DailyLog) HasData() bool {
	if entry.HasFlow() || len(entry.Symptoms) > 0 {
		return true
	}
	return strings.TrimSpace(entry.Mood) != "" || strings.TrimSpace(entry.Notes) != ""
}
