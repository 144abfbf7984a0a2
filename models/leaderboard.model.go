package models

import "gorm.io/gorm"

// LeaderboardPeriod is the time window a leaderboard entry is ranked over
type LeaderboardPeriod string

const (
	PeriodDaily   LeaderboardPeriod = "DAILY"
	PeriodWeekly  LeaderboardPeriod = "WEEKLY"
	PeriodMonthly LeaderboardPeriod = "MONTHLY"
	PeriodAllTime LeaderboardPeriod = "ALL_TIME"
)

// LeaderboardEntry caches ranked XP totals per period. Rebuilt from the
// XP ledger by the leaderboard scheduler.
type LeaderboardEntry struct {
	gorm.Model
	Period LeaderboardPeriod `gorm:"type:varchar(20);not null;uniqueIndex:idx_leaderboard_period_user" json:"period"`
	UserID uint              `gorm:"not null;uniqueIndex:idx_leaderboard_period_user" json:"user_id"`
	XP     uint              `gorm:"default:0" json:"xp"`
	Rank   uint              `gorm:"not null" json:"rank"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (LeaderboardEntry) TableName() string {
	return "leaderboard_entries"
}
