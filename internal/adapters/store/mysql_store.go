package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// MySQLStore is a MySQL implementation of the KeyValueStore interface
type MySQLStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLStore creates a new MySQL store
func NewMySQLStore(dsn string, logger *zap.Logger) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	// Create table if it doesn't exist
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS model_store (
			store_key VARCHAR(255) PRIMARY KEY,
			store_value LONGBLOB,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &MySQLStore{
		db:     db,
		logger: logger,
	}, nil
}

// Get retrieves the value for a key
func (s *MySQLStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte

	err := s.db.QueryRowContext(ctx, `
		SELECT store_value
		FROM model_store
		WHERE store_key = ?
	`, key).Scan(&value)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to query store: %w", err)
	}

	return value, true, nil
}

// Set stores a value under a key
func (s *MySQLStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO model_store (store_key, store_value)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE store_value = VALUES(store_value)
	`, key, value)

	if err != nil {
		return fmt.Errorf("failed to insert store entry: %w", err)
	}

	return nil
}

// Remove deletes a key
func (s *MySQLStore) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM model_store
		WHERE store_key = ?
	`, key)

	if err != nil {
		return fmt.Errorf("failed to delete store entry: %w", err)
	}

	return nil
}

// Close closes the database connection
func (s *MySQLStore) Close() {
	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close MySQL database", zap.Error(err))
	}
}
