package services

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/terraincognita07/selene/internal/models"
)

var (
	ErrProfileCycleLengthOutOfRange  = errors.New("profile cycle length out of range")
	ErrProfilePeriodLengthOutOfRange = errors.New("profile period length out of range")
	ErrProfileLanguageUnsupported    = errors.New("profile language unsupported")
	ErrProfileTelegramChatInvalid    = errors.New("profile telegram chat id invalid")
	ErrProfileLoadFailed             = errors.New("load profile failed")
	ErrProfileSaveFailed             = errors.New("save profile failed")
)

type ProfileRepository interface {
	FindByUserID(userID uint) (models.CycleProfile, bool, error)
	Save(profile *models.CycleProfile) error
}

// ProfileInput is a partial update; nil fields keep their stored value.
type ProfileInput struct {
	CycleLength          *int
	PeriodLength         *int
	Language             *string
	NotificationsEnabled *bool
	TelegramChatID       *int64
}

type ProfileService struct {
	profiles  ProfileRepository
	languages []string
}

func NewProfileService(profiles ProfileRepository, languages []string) *ProfileService {
	if len(languages) == 0 {
		languages = []string{models.DefaultLanguage}
	}
	return &ProfileService{
		profiles:  profiles,
		languages: languages,
	}
}

func IsValidCycleLength(value int) bool {
	return value >= models.MinCycleLength && value <= models.MaxCycleLength
}

func IsValidPeriodLength(value int) bool {
	return value >= models.MinPeriodLength && value <= models.MaxPeriodLength
}

// ResolveProfile fills missing settings and replaces out-of-range lengths with
// the defaults so the result is always safe to hand to the cycle engine.
func ResolveProfile(profile models.CycleProfile) models.CycleProfile {
	profile = profile.WithDefaults()
	if !IsValidCycleLength(profile.CycleLength) {
		profile.CycleLength = models.DefaultCycleLength
	}
	if !IsValidPeriodLength(profile.PeriodLength) {
		profile.PeriodLength = models.DefaultPeriodLength
	}
	return profile
}

func (service *ProfileService) Load(userID uint) (models.CycleProfile, error) {
	profile, found, err := service.profiles.FindByUserID(userID)
	if err != nil {
		return models.DefaultCycleProfile(userID), fmt.Errorf("%w: %w", ErrProfileLoadFailed, err)
	}
	if !found {
		return models.DefaultCycleProfile(userID), nil
	}
	return ResolveProfile(profile), nil
}

func (service *ProfileService) Update(userID uint, input ProfileInput) (models.CycleProfile, error) {
	profile, err := service.Load(userID)
	if err != nil {
		return models.CycleProfile{}, err
	}

	if input.CycleLength != nil {
		if !IsValidCycleLength(*input.CycleLength) {
			return models.CycleProfile{}, ErrProfileCycleLengthOutOfRange
		}
		profile.CycleLength = *input.CycleLength
	}
	if input.PeriodLength != nil {
		if !IsValidPeriodLength(*input.PeriodLength) {
			return models.CycleProfile{}, ErrProfilePeriodLengthOutOfRange
		}
		profile.PeriodLength = *input.PeriodLength
	}
	if input.Language != nil {
		language := strings.ToLower(strings.TrimSpace(*input.Language))
		if !slices.Contains(service.languages, language) {
			return models.CycleProfile{}, ErrProfileLanguageUnsupported
		}
		profile.Language = language
	}
	if input.TelegramChatID != nil {
		if *input.TelegramChatID < 0 {
			return models.CycleProfile{}, ErrProfileTelegramChatInvalid
		}
		profile.TelegramChatID = *input.TelegramChatID
	}
	if input.NotificationsEnabled != nil {
		profile.NotificationsEnabled = *input.NotificationsEnabled
	}

	profile.UserID = userID
	if err := service.profiles.Save(&profile); err != nil {
		return models.CycleProfile{}, fmt.Errorf("%w: %w", ErrProfileSaveFailed, err)
	}
	return profile, nil
}
