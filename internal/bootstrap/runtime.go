// Package bootstrap wires configuration, database, schema, seeding and
// tracing into a ready-to-serve runtime.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"chirp/internal/config"
	"chirp/internal/database"
	"chirp/internal/observability"
	"chirp/internal/seed"

	"gorm.io/gorm"
)

// Runtime holds the initialized process-wide resources.
type Runtime struct {
	DB *gorm.DB

	shutdownTracing func(context.Context) error
}

// InitRuntime connects to the database, applies the schema, seeds demo data
// when SEED_ON_START is set and starts tracing.
func InitRuntime(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return initWithDB(ctx, cfg, db)
}

func initWithDB(ctx context.Context, cfg *config.Config, db *gorm.DB) (*Runtime, error) {
	if err := database.ApplySchema(ctx, db, cfg); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	if cfg.SeedOnStart {
		if _, err := seed.NewSeeder(db).SeedIfEmpty(ctx, seed.DefaultOptions()); err != nil {
			return nil, fmt.Errorf("seed database: %w", err)
		}
	}

	shutdown, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:  "chirp-api",
		Environment:  cfg.Env,
		Enabled:      cfg.TracingEnabled,
		Exporter:     cfg.TracingExporter,
		OTLPEndpoint: cfg.OTLPEndpoint,
		SamplerRatio: cfg.TracingSampleRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	return &Runtime{DB: db, shutdownTracing: shutdown}, nil
}

// Shutdown flushes traces and closes the database pool.
func (r *Runtime) Shutdown(ctx context.Context) error {
	var errs []error
	if r.shutdownTracing != nil {
		errs = append(errs, r.shutdownTracing(ctx))
	}
	if r.DB != nil {
		errs = append(errs, database.Close(r.DB))
	}
	return errors.Join(errs...)
}
