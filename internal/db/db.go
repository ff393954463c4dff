// internal/db/db.go
package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.nhat.io/otelsql"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"

	"github.com/lunchly/lunchly-backend/internal/config"
	"github.com/lunchly/lunchly-backend/internal/logger"
)

const pingTimeout = 5 * time.Second

// Open connects to Postgres through an OpenTelemetry-instrumented lib/pq
// driver and starts recording connection pool stats.
func Open(ctx context.Context, cfg config.PostgresConfig, log *logger.Logger) (*sqlx.DB, error) {
	driverName, err := otelsql.Register("postgres",
		otelsql.AllowRoot(),
		otelsql.TraceQueryWithoutArgs(),
		otelsql.TraceRowsClose(),
		otelsql.TraceRowsAffected(),
		otelsql.WithSystem(semconv.DBSystemPostgreSQL),
		otelsql.WithDatabaseName(cfg.DBName),
	)
	if err != nil {
		return nil, errors.Wrap(err, "register instrumented driver")
	}

	sqlDB, err := sql.Open(driverName, cfg.GetDSN())
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	// The wrapped driver has a generated name, so tell sqlx which bindvars to use.
	db := sqlx.NewDb(sqlDB, "postgres")

	if err := otelsql.RecordStats(db.DB,
		otelsql.WithSystem(semconv.DBSystemPostgreSQL),
		otelsql.WithDatabaseName(cfg.DBName),
	); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "record db stats")
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping database")
	}

	log.Infow("connected to database", "host", cfg.Host, "db", cfg.DBName, "user", cfg.User)
	return db, nil
}
