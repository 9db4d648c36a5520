package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is user-submitted text attached to a news item.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	NewsID    uint      `gorm:"not null;index" json:"news_id"`
	News      *News     `gorm:"foreignKey:NewsID" json:"-"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"index" json:"created"`
}

// BeforeCreate stores CreatedAt in UTC so text-backed drivers order it correctly.
func (c *Comment) BeforeCreate(_ *gorm.DB) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return nil
}
