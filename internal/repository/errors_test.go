package repository

import (
	"errors"
	"fmt"
	"testing"

	"chirp/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantUnique bool
		wantCode   string
	}{
		{"gorm duplicated key", gorm.ErrDuplicatedKey, true, models.CodeIntegrityViolation},
		{"gorm foreign key", gorm.ErrForeignKeyViolated, false, models.CodeIntegrityViolation},
		{"postgres unique", &pgconn.PgError{Code: "23505"}, true, models.CodeIntegrityViolation},
		{"postgres check", &pgconn.PgError{Code: "23514"}, false, models.CodeIntegrityViolation},
		{"postgres too long", &pgconn.PgError{Code: "22001"}, false, models.CodeIntegrityViolation},
		{"postgres connection", &pgconn.PgError{Code: "08006"}, false, models.CodeInternal},
		{"sqlite unique", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, true, models.CodeIntegrityViolation},
		{"sqlite check", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintCheck}, false, models.CodeIntegrityViolation},
		{"wrapped unique", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), true, models.CodeIntegrityViolation},
		{"message fallback", errors.New("ERROR: duplicate key value violates unique constraint"), true, models.CodeIntegrityViolation},
		{"unrelated", errors.New("connection reset by peer"), false, models.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantUnique, isUniqueConstraintError(tt.err))
			assert.Equal(t, tt.wantCode, models.CodeOf(writeError("write failed", tt.err)))
		})
	}
}

func TestWriteErrorKeepsAppErrors(t *testing.T) {
	notFound := models.NewNotFoundMessage("media not found")
	assert.Same(t, notFound, writeError("ignored", notFound))
	assert.False(t, isUniqueConstraintError(nil))
}
