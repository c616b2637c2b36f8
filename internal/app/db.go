package app

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// schema создаёт таблицы ссылок и переходов; повторный запуск безопасен
var schema = []string{
	`CREATE TABLE IF NOT EXISTS links (
		id VARCHAR(64) PRIMARY KEY,
		code VARCHAR(32) NOT NULL UNIQUE,
		url TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		expires_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		user_id VARCHAR(64) NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS links_user_id_created_at_idx ON links (user_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS clicks (
		id VARCHAR(64) PRIMARY KEY,
		link_id VARCHAR(64) NOT NULL REFERENCES links(id) ON DELETE CASCADE,
		clicked_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		user_agent TEXT,
		browser TEXT,
		browser_version TEXT,
		os TEXT,
		os_version TEXT,
		device VARCHAR(16) NOT NULL DEFAULT 'unknown',
		ip_hash VARCHAR(64),
		country TEXT,
		region TEXT,
		city TEXT,
		latitude TEXT,
		longitude TEXT,
		referrer TEXT,
		referrer_domain TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS clicks_link_id_clicked_at_idx ON clicks (link_id, clicked_at DESC)`,
}

// DB представляет подключение к базе данных
type DB struct {
	conn *sql.DB
}

// NewDB открывает подключение через pgx, проверяет его и применяет схему
func NewDB(ctx context.Context, dsn string) (*DB, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migrate(ctx, conn); err != nil {
		conn.Close()
		return nil, err
	}

	return &DB{conn: conn}, nil
}

func migrate(ctx context.Context, conn *sql.DB) error {
	for _, stmt := range schema {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// PingContext проверяет соединение с базой данных
func (db *DB) PingContext(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close закрывает соединение с базой данных
func (db *DB) Close() error {
	if db == nil || db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// ExecContext выполняет SQL-команду с аргументами
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.conn.ExecContext(ctx, query, args...)
}

// QueryContext выполняет SQL-запрос и возвращает множество строк
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.conn.QueryContext(ctx, query, args...)
}

// QueryRowContext выполняет SQL-запрос и возвращает одну строку
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.conn.QueryRowContext(ctx, query, args...)
}
