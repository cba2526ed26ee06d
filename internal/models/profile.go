package models

import (
	"time"
)

// Profile is the extended one-to-one companion of a User. It is created in
// the same transaction as the user; a user without a profile must never be
// observable.
type Profile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"-"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	Bio       string    `gorm:"size:500" json:"bio"`
	AvatarURL string    `json:"avatar"`
	Website   string    `json:"website"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
