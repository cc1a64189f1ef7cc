package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/yourusername/line-shop-bot/internal/domain/entity"
	"github.com/yourusername/line-shop-bot/internal/domain/repository"
)

type sqliteOrderStore struct {
	db *sql.DB
}

// NewSQLiteOrderStore opens (creating if needed) the local order mirror.
func NewSQLiteOrderStore(dbPath string) (repository.OrderStore, error) {
	if dbPath == "" {
		return nil, errors.New("order db path is empty")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	if err := createOrderSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteOrderStore{db: db}, nil
}

func createOrderSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS orders (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	display_name TEXT,
	product_code TEXT,
	product_name TEXT NOT NULL,
	qty INTEGER NOT NULL,
	price REAL NOT NULL,
	status TEXT NOT NULL,
	ts TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_ts ON orders (ts);
CREATE INDEX IF NOT EXISTS idx_orders_user_ts ON orders (user_id, ts);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Save mirrors one ledger row locally.
func (s *sqliteOrderStore) Save(ctx context.Context, order entity.Order) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO orders
(id, user_id, display_name, product_code, product_name, qty, price, status, ts)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.UserID, order.DisplayName, order.ProductCode,
		order.ProductName, order.Qty, order.Price, order.Status, order.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

// Recent returns up to limit orders, newest first.
func (s *sqliteOrderStore) Recent(ctx context.Context, limit int) ([]entity.Order, error) {
	query := `SELECT id, user_id, display_name, product_code, product_name, qty, price, status, ts
FROM orders ORDER BY ts DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []entity.Order
	for rows.Next() {
		var o entity.Order
		var ts time.Time
		if err := rows.Scan(&o.ID, &o.UserID, &o.DisplayName, &o.ProductCode,
			&o.ProductName, &o.Qty, &o.Price, &o.Status, &ts); err != nil {
			return nil, err
		}
		o.CreatedAt = ts
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (s *sqliteOrderStore) Close() error {
	return s.db.Close()
}
