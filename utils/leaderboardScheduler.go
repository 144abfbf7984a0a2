package utils

import (
	"elearn/database"
	"elearn/models"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// logLeaderboard logs scheduler events with timestamp
func logLeaderboard(message string) {
	log.Printf("[LEADERBOARD-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// periodStart returns the beginning of the window a period covers. ALL_TIME
// has no lower bound.
func periodStart(period models.LeaderboardPeriod, now time.Time) *time.Time {
	var start time.Time
	switch period {
	case models.PeriodDaily:
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case models.PeriodWeekly:
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7 // weeks start Monday
		}
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		start = day.AddDate(0, 0, -(weekday - 1))
	case models.PeriodMonthly:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	default:
		return nil
	}
	return &start
}

// RebuildLeaderboard recomputes the ranking for one period from the XP
// ledger. The cached user counter is never consulted; the ledger is the
// source of truth for rankings.
func RebuildLeaderboard(period models.LeaderboardPeriod) {
	db := database.Database.Db
	now := time.Now()

	type row struct {
		UserID  uint
		TotalXP int64
	}

	query := db.Model(&models.XPTransaction{}).
		Select("user_id, COALESCE(SUM(amount), 0) as total_xp").
		Group("user_id").
		Order("total_xp desc")
	if start := periodStart(period, now); start != nil {
		query = query.Where("created_at >= ?", *start)
	}

	var rows []row
	if err := query.Scan(&rows).Error; err != nil {
		logLeaderboard("Error aggregating XP for period " + string(period) + ": " + err.Error())
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		// Hard delete: soft-deleted rows would still hold the unique index.
		if err := tx.Unscoped().Where("period = ?", period).Delete(&models.LeaderboardEntry{}).Error; err != nil {
			return err
		}
		for rank, r := range rows {
			entry := models.LeaderboardEntry{
				Period: period,
				UserID: r.UserID,
				XP:     uint(r.TotalXP),
				Rank:   uint(rank + 1),
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logLeaderboard("Error rebuilding period " + string(period) + ": " + err.Error())
		return
	}
	logLeaderboard("Rebuilt " + string(period) + " leaderboard")
}

func rebuildAllLeaderboards() {
	for _, period := range []models.LeaderboardPeriod{
		models.PeriodDaily,
		models.PeriodWeekly,
		models.PeriodMonthly,
		models.PeriodAllTime,
	} {
		RebuildLeaderboard(period)
	}
}

// InitializeLeaderboardScheduler starts the cron jobs that keep the cached
// leaderboard tables fresh.
func InitializeLeaderboardScheduler() {
	c := cron.New()

	// Every 10 minutes during the day
	c.AddFunc("*/10 * * * *", rebuildAllLeaderboards)

	c.Start()
	logLeaderboard("Scheduler started")

	// Prime the tables at boot so the first request never sees empty rankings.
	go rebuildAllLeaderboards()
}
