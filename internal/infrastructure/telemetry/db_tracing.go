package telemetry

import (
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled bool
	// DBSystem is the db.system attribute, "sqlite" or "postgresql"
	DBSystem        string
	SlowQueryThresh time.Duration
	// LogQueryParams includes bound values in db.statement; keep off outside development
	LogQueryParams bool
}

// DBSystemFor maps a database driver name to its semantic convention value
func DBSystemFor(driver string) string {
	if driver == "postgres" {
		return "postgresql"
	}
	return driver
}

const startTimeKey = "hesab:otel_start"

type dbTracing struct {
	config DBTracingConfig
}

// RegisterDBTracing installs otelgorm plus callbacks that annotate spans with
// row counts, table names, errors and a slow query marker.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		logger.Debug("Database tracing disabled")
		return nil
	}

	t := &dbTracing{config: cfg}
	cb := db.Callback()
	steps := []struct {
		op       string
		register func(before, after func(*gorm.DB)) error
	}{
		{"create", func(b, a func(*gorm.DB)) error {
			if err := cb.Create().Before("gorm:create").Register("hesab:before_create", b); err != nil {
				return err
			}
			return cb.Create().After("gorm:create").Register("hesab:after_create", a)
		}},
		{"query", func(b, a func(*gorm.DB)) error {
			if err := cb.Query().Before("gorm:query").Register("hesab:before_query", b); err != nil {
				return err
			}
			return cb.Query().After("gorm:query").Register("hesab:after_query", a)
		}},
		{"update", func(b, a func(*gorm.DB)) error {
			if err := cb.Update().Before("gorm:update").Register("hesab:before_update", b); err != nil {
				return err
			}
			return cb.Update().After("gorm:update").Register("hesab:after_update", a)
		}},
		{"delete", func(b, a func(*gorm.DB)) error {
			if err := cb.Delete().Before("gorm:delete").Register("hesab:before_delete", b); err != nil {
				return err
			}
			return cb.Delete().After("gorm:delete").Register("hesab:after_delete", a)
		}},
		{"row", func(b, a func(*gorm.DB)) error {
			if err := cb.Row().Before("gorm:row").Register("hesab:before_row", b); err != nil {
				return err
			}
			return cb.Row().After("gorm:row").Register("hesab:after_row", a)
		}},
		{"raw", func(b, a func(*gorm.DB)) error {
			if err := cb.Raw().Before("gorm:raw").Register("hesab:before_raw", b); err != nil {
				return err
			}
			return cb.Raw().After("gorm:raw").Register("hesab:after_raw", a)
		}},
	}
	for _, s := range steps {
		if err := s.register(t.before, t.after); err != nil {
			return fmt.Errorf("failed to register %s tracing callbacks: %w", s.op, err)
		}
	}

	// Registered after the callbacks above so the span otelgorm opens is
	// still recording when the after hooks run.
	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBSystem)}
	if !cfg.LogQueryParams {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return fmt.Errorf("failed to register otelgorm plugin: %w", err)
	}

	logger.Info("Database tracing enabled",
		zap.String("db_system", cfg.DBSystem),
		zap.Duration("slow_query_threshold", cfg.SlowQueryThresh),
	)
	return nil
}

func (t *dbTracing) before(db *gorm.DB) {
	db.InstanceSet(startTimeKey, time.Now())
}

func (t *dbTracing) after(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	if db.Statement.RowsAffected >= 0 {
		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	}
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	v, ok := db.InstanceGet(startTimeKey)
	if !ok {
		return
	}
	start, ok := v.(time.Time)
	if !ok || t.config.SlowQueryThresh <= 0 {
		return
	}
	if elapsed := time.Since(start); elapsed > t.config.SlowQueryThresh {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
		span.AddEvent("slow_query_warning", trace.WithAttributes(
			attribute.Int64("duration_ms", elapsed.Milliseconds()),
			attribute.Int64("threshold_ms", t.config.SlowQueryThresh.Milliseconds()),
		))
	}
}
