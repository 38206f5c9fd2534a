package db

import (
	"testing"

	"github.com/terraincognita07/selene/internal/models"
)

func TestDailyLogRepositoryUpsertKeepsOneRowPerDay(t *testing.T) {
	repo := NewDailyLogRepository(openTestDatabase(t))
	day := mustParseDay(t, "2025-02-01")

	first := models.DailyLog{UserID: 1, Date: day, Flow: models.FlowLight, Symptoms: []string{"Cramps"}}
	if err := repo.Upsert(&first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	second := models.DailyLog{UserID: 1, Date: day, Flow: models.FlowHeavy, Mood: models.MoodTired, Notes: "rough day"}
	if err := repo.Upsert(&second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	logs, err := repo.ListByUser(1)
	if err != nil {
		t.Fatalf("list logs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 log after upsert, got %d", len(logs))
	}
	if logs[0].Flow != models.FlowHeavy || logs[0].Mood != models.MoodTired || logs[0].Notes != "rough day" {
		t.Fatalf("expected overwritten entry, got %+v", logs[0])
	}
	if len(logs[0].Symptoms) != 0 {
		t.Fatalf("expected symptoms to be overwritten, got %v", logs[0].Symptoms)
	}
}

func TestDailyLogRepositoryRangeAndFind(t *testing.T) {
	repo := NewDailyLogRepository(openTestDatabase(t))
	for _, entry := range []models.DailyLog{
		{UserID: 1, Date: mustParseDay(t, "2025-01-31"), Flow: models.FlowNone},
		{UserID: 1, Date: mustParseDay(t, "2025-02-01"), Flow: models.FlowMedium},
		{UserID: 1, Date: mustParseDay(t, "2025-02-28"), Flow: models.FlowLight},
		{UserID: 1, Date: mustParseDay(t, "2025-03-01"), Flow: models.FlowLight},
		{UserID: 2, Date: mustParseDay(t, "2025-02-10"), Flow: models.FlowHeavy},
	} {
		entry := entry
		if err := repo.Upsert(&entry); err != nil {
			t.Fatalf("seed log: %v", err)
		}
	}

	from := mustParseDay(t, "2025-02-01")
	to := mustParseDay(t, "2025-03-01")
	logs, err := repo.ListByUserRange(1, &from, &to)
	if err != nil {
		t.Fatalf("list range: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs in february, got %d", len(logs))
	}
	if logs[0].Date.Format("2006-01-02") != "2025-02-01" || logs[1].Date.Format("2006-01-02") != "2025-02-28" {
		t.Fatalf("unexpected february logs %s, %s", logs[0].Date.Format("2006-01-02"), logs[1].Date.Format("2006-01-02"))
	}

	entry, found, err := repo.FindByUserAndDayRange(1, from, from.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("find day: %v", err)
	}
	if !found || entry.Flow != models.FlowMedium {
		t.Fatalf("expected medium flow entry, got found=%v entry=%+v", found, entry)
	}

	_, found, err = repo.FindByUserAndDayRange(2, from, from.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("find missing day: %v", err)
	}
	if found {
		t.Fatal("expected no entry for other user on 2025-02-01")
	}
}

func TestDailyLogRepositoryDelete(t *testing.T) {
	repo := NewDailyLogRepository(openTestDatabase(t))
	for _, raw := range []string{"2025-02-01", "2025-02-02", "2025-02-03"} {
		entry := models.DailyLog{UserID: 1, Date: mustParseDay(t, raw), Flow: models.FlowLight}
		if err := repo.Upsert(&entry); err != nil {
			t.Fatalf("seed log: %v", err)
		}
	}

	day := mustParseDay(t, "2025-02-02")
	deleted, err := repo.DeleteByUserAndDayRange(1, day, day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("delete day: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected 1 deleted row, got %d", deleted)
	}

	cleared, err := repo.DeleteAllByUser(1)
	if err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if cleared != 2 {
		t.Fatalf("expected 2 cleared rows, got %d", cleared)
	}
}
