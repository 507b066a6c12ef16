package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the shared connection pool of the API, worker and seed commands.
type DB struct {
	*pgxpool.Pool
}

// Option adjusts the pool before it connects.
type Option func(*pgxpool.Config)

// WithPoolSize bounds the pool; zero values keep pgx defaults.
func WithPoolSize(maxConns, minConns int32) Option {
	return func(c *pgxpool.Config) {
		if maxConns > 0 {
			c.MaxConns = maxConns
		}
		if minConns > 0 && minConns <= c.MaxConns {
			c.MinConns = minConns
		}
	}
}

func WithMaxConnIdleTime(d time.Duration) Option {
	return func(c *pgxpool.Config) {
		if d > 0 {
			c.MaxConnIdleTime = d
		}
	}
}

// NewPostgreSQLDB opens the pool and pings it so a bad DSN fails at startup.
func NewPostgreSQLDB(ctx context.Context, dsn string, opts ...Option) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database dsn: %w", err)
	}
	for _, opt := range opts {
		opt(cfg)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// BeginTx starts a read-committed transaction; balance rows are serialized with advisory locks instead.
func (db *DB) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return db.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
}

// Querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, arguments ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}
