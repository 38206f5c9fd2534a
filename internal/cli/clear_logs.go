package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/terraincognita07/selene/internal/db"
	"github.com/terraincognita07/selene/internal/services"
)

// RunClearLogsCommand deletes every daily log of userID from the database at
// dbPath. The profile is kept.
func RunClearLogsCommand(out io.Writer, dbPath string, userID uint) error {
	if userID == 0 {
		return errors.New("user id is required")
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	defer sqlDB.Close()

	days := services.NewDayService(db.NewRepositories(database).DailyLogs)
	cleared, err := days.ClearAllLogs(userID)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Cleared %d log(s) for user %d\n", cleared, userID)
	return nil
}
