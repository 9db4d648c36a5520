package models

import (
	"time"

	"gorm.io/gorm"
)

// User is an account that can sign in and leave comments.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"size:150;unique;not null" json:"username"`
	Password  string         `gorm:"not null" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Principal identifies the authenticated caller of a service method.
// A nil *Principal means the caller is anonymous.
type Principal struct {
	UserID   uint   `json:"id"`
	Username string `json:"username"`
}
