// Package seed provides helpers to create fixture and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"time"

	"newsdesk/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultPassword is the password given to users created by the factory.
const DefaultPassword = "Secret-Pass-123"

// Options tune the factory.
type Options struct {
	// BcryptCost overrides the password hashing cost; tests use bcrypt.MinCost.
	BcryptCost int
	// MaxDays bounds how far back random news dates go.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if opts.MaxDays <= 0 {
		opts.MaxDays = 30
	}
	return &Factory{db: db, opts: opts}
}

// CreateUser persists a user with DefaultPassword.
func (f *Factory) CreateUser(username string) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), f.opts.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{Username: username, Password: string(hashed)}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateNews persists a news item dated now.
func (f *Factory) CreateNews(title, text string) (*models.News, error) {
	news := &models.News{Title: title, Text: text}
	if err := f.db.Create(news).Error; err != nil {
		return nil, err
	}
	return news, nil
}

// CreateNewsBatch persists n news items dated today, yesterday and so on,
// in a single statement.
func (f *Factory) CreateNewsBatch(n int) ([]*models.News, error) {
	if n <= 0 {
		return nil, nil
	}
	today := time.Now()
	items := make([]*models.News, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, &models.News{
			Title: fmt.Sprintf("Новость %d", i),
			Text:  "Текст новости",
			Date:  today.AddDate(0, 0, -i),
		})
	}
	if err := f.db.Create(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CreateComment persists a comment by author on news.
func (f *Factory) CreateComment(news *models.News, author *models.User, text string) (*models.Comment, error) {
	comment := &models.Comment{NewsID: news.ID, AuthorID: author.ID, Text: text}
	if err := f.db.Omit(clause.Associations).Create(comment).Error; err != nil {
		return nil, err
	}
	comment.Author = *author
	return comment, nil
}

// CreateCommentsAt persists one comment per entry of times, in slice order,
// then rewrites each created_at to the given time in UTC.
func (f *Factory) CreateCommentsAt(news *models.News, author *models.User, times []time.Time) ([]*models.Comment, error) {
	comments := make([]*models.Comment, 0, len(times))
	for i, at := range times {
		comment, err := f.CreateComment(news, author, fmt.Sprintf("Текст %d", i))
		if err != nil {
			return nil, err
		}
		at = at.UTC()
		if err := f.db.Model(comment).UpdateColumn("created_at", at).Error; err != nil {
			return nil, err
		}
		comment.CreatedAt = at
		comments = append(comments, comment)
	}
	return comments, nil
}

// CreateCommentsSpread persists n comments whose created_at values are
// now+i days for i in a shuffled order, so insertion order differs from time order.
func (f *Factory) CreateCommentsSpread(news *models.News, author *models.User, n int) ([]*models.Comment, error) {
	now := time.Now().Truncate(time.Second)
	offsets := seq(n)
	gofakeit.ShuffleInts(offsets)
	times := make([]time.Time, n)
	for i, days := range offsets {
		times[i] = now.AddDate(0, 0, days)
	}
	return f.CreateCommentsAt(news, author, times)
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// RandomUsers persists n users with fake usernames.
func (f *Factory) RandomUsers(n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := f.CreateUser(fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)))
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// RandomNews persists n news items with fake content spread over MaxDays.
func (f *Factory) RandomNews(n int) ([]*models.News, error) {
	items := make([]*models.News, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, &models.News{
			Title: gofakeit.Sentence(5),
			Text:  gofakeit.Paragraph(1, 3, 8, "\n"),
			Date:  gofakeit.DateRange(time.Now().AddDate(0, 0, -f.opts.MaxDays), time.Now()),
		})
	}
	if len(items) == 0 {
		return items, nil
	}
	if err := f.db.Create(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// RandomComments persists perNews comments on every item, by random users.
func (f *Factory) RandomComments(news []*models.News, users []*models.User, perNews int) (int, error) {
	if len(users) == 0 {
		return 0, nil
	}
	created := 0
	for _, n := range news {
		for i := 0; i < perNews; i++ {
			author := users[gofakeit.Number(0, len(users)-1)]
			if _, err := f.CreateComment(n, author, gofakeit.Sentence(gofakeit.Number(4, 16))); err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}
