package repository

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// NewDB creates a MySQL connection pool for the given DSN and verifies it is
// reachable. The DSN must include parseTime=true so timestamps scan into
// time.Time.
func NewDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureSchema creates the accounts table if it does not exist. The embedded
// todo list is stored whole in the todos JSON column; version guards
// whole-document writes.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	schema := `CREATE TABLE IF NOT EXISTS accounts (
		id         CHAR(36)     NOT NULL,
		username   VARCHAR(64)  NOT NULL,
		email      VARCHAR(255) NOT NULL,
		auth_hash  VARCHAR(255) NOT NULL,
		todos      JSON         NOT NULL,
		version    BIGINT       NOT NULL DEFAULT 1,
		created_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_accounts_username (username),
		UNIQUE KEY uq_accounts_email (email)
	)`

	_, err := db.ExecContext(ctx, schema)
	return err
}
