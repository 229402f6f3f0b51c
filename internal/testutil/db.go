// Package testutil provides shared database fixtures for tests.
package testutil

import (
	"testing"

	"chirp/internal/database"
	"chirp/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewTestDB opens a private in-memory SQLite database with foreign keys on and
// the full schema migrated.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(sqlite.Open(database.SQLiteDSN(":memory:")))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// CreateAccount inserts an account and returns it.
func CreateAccount(t *testing.T, db *gorm.DB, handle, name string) models.Account {
	t.Helper()
	account := models.Account{Handle: handle, DisplayName: name}
	require.NoError(t, db.Create(&account).Error)
	return account
}

// CreatePost inserts a post by authorID and returns it.
func CreatePost(t *testing.T, db *gorm.DB, authorID uint, content string) models.Post {
	t.Helper()
	post := models.Post{AuthorID: authorID, Content: content}
	require.NoError(t, db.Create(&post).Error)
	return post
}

// CreateFollow inserts the edge follower -> following.
func CreateFollow(t *testing.T, db *gorm.DB, followerID, followingID uint) {
	t.Helper()
	require.NoError(t, db.Create(&models.Follow{FollowerID: followerID, FollowingID: followingID}).Error)
}

// Count returns the number of rows of model matching the optional condition.
func Count(t *testing.T, db *gorm.DB, model interface{}, query ...interface{}) int64 {
	t.Helper()
	var n int64
	q := db.Model(model)
	if len(query) > 0 {
		q = q.Where(query[0], query[1:]...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}
