package seed

import (
	"testing"
	"time"

	"newsdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.News{}, &models.Comment{}))
	return db
}

func TestFactory_CreateNewsBatch_DatesDescend(t *testing.T) {
	t.Parallel()
	db := setupSeedTestDB(t)
	f := NewFactory(db, Options{BcryptCost: bcrypt.MinCost})

	items, err := f.CreateNewsBatch(5)
	require.NoError(t, err)
	require.Len(t, items, 5)

	for i := 1; i < len(items); i++ {
		assert.True(t, items[i].Date.Before(items[i-1].Date))
	}

	var count int64
	require.NoError(t, db.Model(&models.News{}).Count(&count).Error)
	assert.Equal(t, int64(5), count)
}

func TestFactory_CreateNewsBatch_Empty(t *testing.T) {
	t.Parallel()
	db := setupSeedTestDB(t)
	f := NewFactory(db, Options{BcryptCost: bcrypt.MinCost})

	for _, n := range []int{0, -1} {
		items, err := f.CreateNewsBatch(n)
		require.NoError(t, err)
		assert.Empty(t, items)
	}

	var count int64
	require.NoError(t, db.Model(&models.News{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestFactory_CreateUser_HashesPassword(t *testing.T) {
	t.Parallel()
	db := setupSeedTestDB(t)
	f := NewFactory(db, Options{BcryptCost: bcrypt.MinCost})

	user, err := f.CreateUser("Автор")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(DefaultPassword)))
}

func TestFactory_CreateCommentsAt(t *testing.T) {
	t.Parallel()
	db := setupSeedTestDB(t)
	f := NewFactory(db, Options{BcryptCost: bcrypt.MinCost})

	author, err := f.CreateUser("Автор")
	require.NoError(t, err)
	news, err := f.CreateNews("Заголовок", "Текст")
	require.NoError(t, err)

	now := time.Now().Truncate(time.Second)
	times := []time.Time{now.Add(48 * time.Hour), now, now.Add(24 * time.Hour)}
	_, err = f.CreateCommentsAt(news, author, times)
	require.NoError(t, err)

	var stored []models.Comment
	require.NoError(t, db.Order("id asc").Find(&stored).Error)
	require.Len(t, stored, 3)
	for i, c := range stored {
		assert.True(t, c.CreatedAt.Equal(times[i]), "comment %d created_at", i)
	}
}

func TestFactory_CreateCommentsAt_StoresUTC(t *testing.T) {
	t.Parallel()
	db := setupSeedTestDB(t)
	f := NewFactory(db, Options{BcryptCost: bcrypt.MinCost})

	author, err := f.CreateUser("Автор")
	require.NoError(t, err)
	news, err := f.CreateNews("Заголовок", "Текст")
	require.NoError(t, err)

	zone := time.FixedZone("east", 5*3600)
	at := time.Date(2024, 3, 1, 9, 30, 0, 0, zone)
	created, err := f.CreateCommentsAt(news, author, []time.Time{at})
	require.NoError(t, err)
	assert.Equal(t, time.UTC, created[0].CreatedAt.Location())

	var stored models.Comment
	require.NoError(t, db.First(&stored, created[0].ID).Error)
	assert.True(t, stored.CreatedAt.Equal(at))
	assert.Equal(t, time.UTC, stored.CreatedAt.Location())
}

func TestDemo_AndClean(t *testing.T) {
	t.Parallel()
	db := setupSeedTestDB(t)

	require.NoError(t, Demo(db, DemoOptions{NumUsers: 2, NumNews: 3, CommentsPerNews: 2}))

	var news []models.News
	require.NoError(t, db.Find(&news).Error)
	assert.Len(t, news, 3)
	for _, n := range news {
		assert.NotEmpty(t, n.Title)
		assert.False(t, n.Date.After(time.Now()))
	}

	var comments int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)
	assert.Equal(t, int64(6), comments)

	require.NoError(t, Clean(db))
	require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)
	assert.Zero(t, comments)
}
