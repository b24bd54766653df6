package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"bilancio/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Snapshot reads the whole log. Corrupt or unreadable data is logged and
// surfaced as an empty log: the application always starts with a usable
// log and the next Commit rewrites the table.
func (s *SQLiteStore) Snapshot(ctx context.Context) ([]core.Transaction, error) {
	txs, err := s.readLog(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to read transaction log, starting empty",
			"error", err)
		return nil, nil
	}
	return txs, nil
}

func (s *SQLiteStore) readLog(ctx context.Context) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, amount_cents, type, category, date, is_paid, is_fixed
		FROM transactions
		ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		var (
			tx          core.Transaction
			typ, date   string
			paid, fixed int
		)
		if err := rows.Scan(&tx.ID, &tx.Title, &tx.Amount.Cents, &typ, &tx.Category, &date, &paid, &fixed); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Type = core.Type(typ)
		tx.Date = core.Date(date)
		tx.Paid = paid != 0
		tx.Fixed = fixed != 0
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return txs, nil
}

func (s *SQLiteStore) Commit(ctx context.Context, txs []core.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}

	stmt, err := dbTx.PrepareContext(ctx, `
		INSERT INTO transactions (id, title, amount_cents, type, category, date, is_paid, is_fixed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, tx := range txs {
		_, err := stmt.ExecContext(ctx,
			tx.ID, tx.Title, tx.Amount.Cents, string(tx.Type), tx.Category,
			string(tx.Date), boolToInt(tx.Paid), boolToInt(tx.Fixed))
		if err != nil {
			return fmt.Errorf("insert transaction %s: %w", tx.ID, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction log committed", "count", len(txs))
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
