package seed

import (
	"fmt"
	"log"

	"newsdesk/internal/models"

	"gorm.io/gorm"
)

// DemoOptions control the size of the demo data set.
type DemoOptions struct {
	NumUsers        int
	NumNews         int
	CommentsPerNews int
	ShouldClean     bool
}

// Demo fills the database with fake users, news and comments.
func Demo(db *gorm.DB, opts DemoOptions) error {
	if opts.ShouldClean {
		if err := Clean(db); err != nil {
			return err
		}
	}

	f := NewFactory(db, Options{})

	users, err := f.RandomUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	news, err := f.RandomNews(opts.NumNews)
	if err != nil {
		return fmt.Errorf("seed news: %w", err)
	}
	n, err := f.RandomComments(news, users, opts.CommentsPerNews)
	if err != nil {
		return fmt.Errorf("seed comments: %w", err)
	}

	log.Printf("seeded %d users, %d news, %d comments", len(users), len(news), n)
	return nil
}

// Clean removes all rows, children first.
func Clean(db *gorm.DB) error {
	for _, m := range []interface{}{&models.Comment{}, &models.News{}, &models.User{}} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(m).Error; err != nil {
			return fmt.Errorf("clean %T: %w", m, err)
		}
	}
	return nil
}
