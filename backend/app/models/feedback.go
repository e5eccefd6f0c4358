package models

import "time"

// Feedback is always owned by exactly one user and goes away with it.
type Feedback struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"size:100;not null"`
	Content   string `gorm:"type:text;not null"`
	UserID    uint   `gorm:"index;not null"`
	User      *User  `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Feedback) TableName() string { return "feedback" }
