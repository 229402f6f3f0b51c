// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"chirp/internal/models"
	"chirp/internal/observability"

	"gorm.io/gorm"
)

// instrument wraps repository operations with a span, latency and outcome
// metrics, and a log line for every failure.
type instrument struct {
	table   string
	metrics *observability.DatabaseMetrics
	log     *observability.RepoLogger
}

func newInstrument(table string) instrument {
	return instrument{
		table:   table,
		metrics: observability.NewDatabaseMetrics(table),
		log:     observability.NewRepoLogger(table),
	}
}

func (in instrument) observe(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	ctx, span := observability.TraceRepositoryMethod(ctx, operation, in.table)
	done := in.metrics.TrackQuery(operation)
	err := fn(ctx)
	done()

	outcome := "ok"
	if err != nil {
		outcome = models.CodeOf(err)
		if outcome == models.CodeInternal || outcome == models.CodeIntegrityViolation {
			in.log.LogError(ctx, operation, err)
		} else {
			in.log.LogRejected(ctx, operation, err)
		}
	}
	in.metrics.RecordOutcome(operation, outcome)
	observability.EndSpan(span, err)
	return err
}

// write is observe for mutations; successes are logged as well.
func (in instrument) write(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	err := in.observe(ctx, operation, fn)
	if err == nil {
		in.log.LogWrite(ctx, operation)
	}
	return err
}

// transaction runs fn in a single transaction; any returned error rolls it back.
func transaction(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(fn)
}

func exists(tx *gorm.DB, model interface{}, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := tx.Model(model).Where(query, args...).Limit(1).Count(&count).Error; err != nil {
		return false, readError(err)
	}
	return count > 0, nil
}

func accountIDByHandle(tx *gorm.DB, handle string) (uint, bool, error) {
	var account models.Account
	err := tx.Select("id").Where("handle = ?", handle).Take(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, readError(err)
	}
	return account.ID, true, nil
}

// requireAccountID resolves a handle or fails with NOT_FOUND.
func requireAccountID(tx *gorm.DB, handle string) (uint, error) {
	id, ok, err := accountIDByHandle(tx, handle)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, models.NewNotFoundMessage("account does not exist")
	}
	return id, nil
}

func requireAccount(tx *gorm.DB, id uint) error {
	ok, err := exists(tx, &models.Account{}, "id = ?", id)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError("Account", id)
	}
	return nil
}

func requirePost(tx *gorm.DB, id uint) error {
	ok, err := exists(tx, &models.Post{}, "id = ?", id)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError("Post", id)
	}
	return nil
}
