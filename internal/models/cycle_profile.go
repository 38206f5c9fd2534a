package models

import "time"

const (
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5

	MinCycleLength  = 21
	MaxCycleLength  = 35
	MinPeriodLength = 3
	MaxPeriodLength = 7

	DefaultLanguage = "en"
)

type CycleProfile struct {
	UserID               uint       `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	CycleLength          int        `gorm:"not null;default:28" json:"cycle_length"`
	PeriodLength         int        `gorm:"not null;default:5" json:"period_length"`
	Language             string     `gorm:"not null;default:en" json:"language"`
	NotificationsEnabled bool       `gorm:"not null;default:false" json:"notifications_enabled"`
	TelegramChatID       int64      `gorm:"not null;default:0" json:"telegram_chat_id"`
	LastNotifiedOn       *time.Time `gorm:"type:date" json:"last_notified_on,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// DefaultCycleProfile is the profile used before a user saves settings.
func DefaultCycleProfile(userID uint) CycleProfile {
	return CycleProfile{
		UserID:       userID,
		CycleLength:  DefaultCycleLength,
		PeriodLength: DefaultPeriodLength,
		Language:     DefaultLanguage,
	}
}

// WithDefaults fills zero-valued lengths and language with the defaults.
func (profile CycleProfile) WithDefaults() CycleProfile {
	if profile.CycleLength <= 0 {
		profile.CycleLength = DefaultCycleLength
	}
	if profile.PeriodLength <= 0 {
		profile.PeriodLength = DefaultPeriodLength
	}
	if profile.Language == "" {
		profile.Language = DefaultLanguage
	}
	return profile
}
