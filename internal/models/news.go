// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// News is a published article shown on the home page.
type News struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Title    string    `gorm:"size:250;not null" json:"title"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	Date     time.Time `gorm:"not null;index" json:"date"`
	Comments []Comment `gorm:"foreignKey:NewsID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate defaults Date to the insert time and stores it in UTC.
func (n *News) BeforeCreate(_ *gorm.DB) error {
	if n.Date.IsZero() {
		n.Date = time.Now()
	}
	n.Date = n.Date.UTC()
	return nil
}

// TableName pins the table name; "news" has no distinct plural.
func (News) TableName() string { return "news" }
