package repository

import (
	"errors"
	"strings"

	"chirp/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

// isIntegrityError reports whether the store rejected a write because of the
// data itself: constraint classes 22 and 23 on PostgreSQL, SQLITE_CONSTRAINT
// on SQLite.
func isIntegrityError(err error) bool {
	if err == nil {
		return false
	}
	if isUniqueConstraintError(err) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "23") || strings.HasPrefix(pgErr.Code, "22")
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrConstraint
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "constraint")
}

// writeError maps a failed insert, update or delete onto the error taxonomy.
// AppErrors pass through untouched.
func writeError(message string, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if isIntegrityError(err) {
		return models.NewIntegrityError(message, err)
	}
	return models.NewInternalError(err)
}

// readError maps a failed lookup. Not-found rows are expected to be handled by
// the caller before reaching here.
func readError(err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return models.NewInternalError(err)
}
