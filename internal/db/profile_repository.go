package db

import (
	"time"

	"github.com/terraincognita07/selene/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository struct {
	database *gorm.DB
}

func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{database: database}
}

func (repo *ProfileRepository) FindByUserID(userID uint) (models.CycleProfile, bool, error) {
	profile := models.CycleProfile{}
	result := repo.database.Where("user_id = ?", userID).Limit(1).Find(&profile)
	if result.Error != nil {
		return models.CycleProfile{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.CycleProfile{}, false, nil
	}
	return profile, true, nil
}

func (repo *ProfileRepository) Save(profile *models.CycleProfile) error {
	return repo.database.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"cycle_length",
			"period_length",
			"language",
			"notifications_enabled",
			"telegram_chat_id",
			"updated_at",
		}),
	}).Create(profile).Error
}

func (repo *ProfileRepository) ListNotifiable() ([]models.CycleProfile, error) {
	profiles := make([]models.CycleProfile, 0)
	if err := repo.database.
		Where("notifications_enabled = ? AND telegram_chat_id <> 0", true).
		Order("user_id ASC").
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (repo *ProfileRepository) MarkNotified(userID uint, day time.Time) error {
	return repo.database.Model(&models.CycleProfile{}).
		Where("user_id = ?", userID).
		Update("last_notified_on", day).Error
}
