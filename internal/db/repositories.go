package db

import "gorm.io/gorm"

type Repositories struct {
	DailyLogs *DailyLogRepository
	Profiles  *ProfileRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		DailyLogs: NewDailyLogRepository(database),
		Profiles:  NewProfileRepository(database),
	}
}
