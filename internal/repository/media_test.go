package repository

import (
	"context"
	"testing"

	"chirp/internal/models"
	"chirp/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestMediaRepository_AddAndLink(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewMediaRepository(db)
	ctx := context.Background()

	id, err := repo.AddMedia(ctx, "media/alice/a.gif")
	require.NoError(t, err)

	link, err := repo.LinkFor(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "media/alice/a.gif", link)
	assert.Equal(t, int64(1), testutil.Count(t, db, &models.Media{}, "post_id IS NULL"))

	_, err = repo.LinkFor(ctx, id+1)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

func TestMediaRepository_AddMediaRollsBack(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMediaRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "media"`).
		WillReturnError(&pgconn.PgError{Code: "22001", Message: "value too long for type character varying(100)"})
	mock.ExpectRollback()

	_, err := repo.AddMedia(context.Background(), "too long")
	assert.True(t, models.IsCode(err, models.CodeIntegrityViolation), "got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_DeletePostIssuesOwnershipCondition(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "accounts" WHERE handle = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "posts" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(`DELETE FROM "posts" WHERE id = \$1 AND author_id = \$2`).
		WithArgs(7, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.DeletePost(context.Background(), "bob", 7)
	assert.True(t, models.IsCode(err, models.CodePermissionDenied), "got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
