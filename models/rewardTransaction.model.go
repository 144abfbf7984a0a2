package models

import (
	"gorm.io/gorm"
)

// EntityKind identifies the kind of entity a reward transaction originates from.
type EntityKind string

const (
	EntityKindLesson   EntityKind = "LESSON"
	EntityKindQuestion EntityKind = "QUESTION"
	EntityKindReview   EntityKind = "REVIEW"
	EntityKindCourse   EntityKind = "COURSE"
)

// XPSource defines where an XP transaction came from
type XPSource string

const (
	XPSourceLesson   XPSource = "LESSON"
	XPSourceQuestion XPSource = "QUESTION"
	XPSourceStreak   XPSource = "STREAK"
	XPSourceCourse   XPSource = "COURSE"
	XPSourceReview   XPSource = "REVIEW"
	XPSourceQuest    XPSource = "QUEST"
	XPSourceAdmin    XPSource = "ADMIN"
)

// JemSource defines where a Jem transaction came from
type JemSource string

const (
	JemSourceQuestion JemSource = "QUESTION"
	JemSourcePurchase JemSource = "PURCHASE"
	JemSourceQuest    JemSource = "QUEST"
	JemSourceAdmin    JemSource = "ADMIN"
)

// XPTransaction is an append-only record of XP awarded to a user. A user's
// TotalXP is always recomputable by summing their transactions.
type XPTransaction struct {
	gorm.Model
	UserID     uint       `gorm:"not null;index" json:"user_id"`
	Amount     int        `gorm:"not null" json:"amount"`
	SourceType XPSource   `gorm:"type:varchar(20);not null" json:"source_type"`
	EntityKind EntityKind `gorm:"type:varchar(20)" json:"entity_kind,omitempty"`
	EntityID   uint       `gorm:"default:0" json:"entity_id,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (XPTransaction) TableName() string {
	return "xp_transactions"
}

// JemTransaction is an append-only record of Jems awarded to or spent by a user.
type JemTransaction struct {
	gorm.Model
	UserID     uint       `gorm:"not null;index" json:"user_id"`
	Amount     int        `gorm:"not null" json:"amount"`
	SourceType JemSource  `gorm:"type:varchar(20);not null" json:"source_type"`
	EntityKind EntityKind `gorm:"type:varchar(20)" json:"entity_kind,omitempty"`
	EntityID   uint       `gorm:"default:0" json:"entity_id,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (JemTransaction) TableName() string {
	return "jem_transactions"
}
