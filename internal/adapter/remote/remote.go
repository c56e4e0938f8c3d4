package remote

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/modabridge/storefront/internal/core/domain"
	"github.com/modabridge/storefront/internal/core/port"
	"github.com/modabridge/storefront/pkg/retry"
)

var _ port.TableGateway = (*Gateway)(nil)

const fetchAttempts = 3

type sqldb interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	PingContext(ctx context.Context) error
	Close() error
}

// Gateway issues select/upsert/delete calls against the hosted table
// store. Each logical collection is one physical table with an id
// column and a JSONB payload column.
type Gateway struct {
	sqldb      sqldb
	configured bool
}

// New connects when dsn is non-empty. An empty or malformed dsn
// yields an unconfigured gateway and the service runs fully local.
// Configured is decided once here, from the credentials alone: an
// unreachable database stays configured and every call degrades
// per-call instead.
func New(ctx context.Context, dsn string) *Gateway {
	const op = "remote.New"

	if dsn == "" {
		slog.Info("remote gateway is not configured, running local-only", "op", op)
		return &Gateway{}
	}

	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		slog.Warn("malformed remote dsn, running local-only", "op", op, "err", err)
		return &Gateway{}
	}
	connStr := stdlib.RegisterConnConfig(connConfig)
	db, _ := sql.Open("pgx", connStr)

	g := &Gateway{sqldb: db, configured: true}
	if err := db.PingContext(ctx); err != nil {
		slog.Warn("remote storage unreachable at startup", "op", op, "err", err)
		return g
	}
	slog.Info("remote gateway is available", "op", op)
	return g
}

func (g *Gateway) Configured() bool {
	return g.configured
}

func (g *Gateway) FetchAll(
	ctx context.Context, table domain.Collection,
) ([]port.Row, error) {
	const op = "Gateway.FetchAll"

	if !g.configured {
		return nil, fmt.Errorf("%s: %w", op, port.ErrNotConfigured)
	}

	retryCfg := retry.RetryConfig{
		MaxAttempts: fetchAttempts,
		Backoff:     retry.LineareBackoff(100 * time.Millisecond),
		ShouldRetry: func(err error) bool {
			return !errors.Is(err, port.ErrSchemaMissing)
		},
	}

	rows, err := retry.DoWithResult(ctx, retryCfg, func() ([]port.Row, error) {
		return g.fetchAll(ctx, table)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rows, nil
}

func (g *Gateway) fetchAll(
	ctx context.Context, table domain.Collection,
) ([]port.Row, error) {
	query := fmt.Sprintf(
		`SELECT id, payload FROM %s ORDER BY updated_at DESC;`,
		tableIdent(table),
	)

	rows, err := g.sqldb.QueryContext(ctx, query)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var vs []port.Row
	for rows.Next() {
		var v port.Row
		if err := rows.Scan(&v.ID, &v.Payload); err != nil {
			return nil, classify(err)
		}
		vs = append(vs, v)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return vs, nil
}

func (g *Gateway) Upsert(
	ctx context.Context, table domain.Collection, row port.Row,
) error {
	const op = "Gateway.Upsert"

	if !g.configured {
		return fmt.Errorf("%s: %w", op, port.ErrNotConfigured)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at;`,
		tableIdent(table),
	)

	if _, err := g.sqldb.ExecContext(ctx, query, row.ID, row.Payload); err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}
	return nil
}

func (g *Gateway) Delete(
	ctx context.Context, table domain.Collection, id string,
) error {
	const op = "Gateway.Delete"

	if !g.configured {
		return fmt.Errorf("%s: %w", op, port.ErrNotConfigured)
	}

	query := fmt.Sprintf(
		`DELETE FROM %s WHERE id = $1;`, tableIdent(table),
	)

	if _, err := g.sqldb.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}
	return nil
}

func (g *Gateway) Close() {
	const op = "Gateway.Close"
	log := slog.With("op", op)

	if !g.configured {
		return
	}

	log.Info("closing remote gateway...")
	if err := g.sqldb.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("remote gateway is closed")
}

// tableIdent quotes a collection name for interpolation. Collection
// names come from the fixed registry, never from request input.
func tableIdent(table domain.Collection) string {
	return pgx.Identifier{string(table)}.Sanitize()
}

func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgerrcode.UndefinedTable {
			return fmt.Errorf("%w: %w", port.ErrSchemaMissing, err)
		}
		return err
	}
	return fmt.Errorf("%w: %w", port.ErrUnavailable, err)
}
