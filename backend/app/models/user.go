package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID       uint   `gorm:"primaryKey"`
	Username string `gorm:"size:20;not null"`
	// UsernameKey is the lowercased username; it makes names that differ
	// only in case collide.
	UsernameKey  string `gorm:"uniqueIndex;size:20;not null"`
	Email        string `gorm:"uniqueIndex;size:50;not null"`
	FirstName    string `gorm:"size:30;not null"`
	LastName     string `gorm:"size:30;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func UsernameKey(username string) string { return strings.ToLower(username) }

func (u *User) BeforeSave(*gorm.DB) error {
	u.UsernameKey = UsernameKey(u.Username)
	return nil
}

func (u *User) FullName() string { return u.FirstName + " " + u.LastName }
