package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/kmalov/cashlogger/internal/models"
	"github.com/kmalov/cashlogger/internal/storage"
)

// CreateTransaction inserts a new ledger line and populates tx.ID.
func (s *SQLiteStore) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	if tx.CreatedAt == 0 {
		tx.CreatedAt = time.Now().Unix()
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO transactions (owner_id, name, amount, description, date, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		tx.OwnerID, tx.Name, tx.Amount, tx.Description, tx.Date.Format(models.DateFormat), tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read transaction id: %w", err)
	}
	tx.ID = id

	return nil
}

// ListTransactionsByOwner returns the owner's transactions, most recent date
// first, ties broken by id descending.
func (s *SQLiteStore) ListTransactionsByOwner(ctx context.Context, ownerID int64) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, owner_id, name, amount, description, date, created_at FROM transactions WHERE owner_id = ? ORDER BY date DESC, id DESC",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		var date string
		if err := rows.Scan(&tx.ID, &tx.OwnerID, &tx.Name, &tx.Amount, &tx.Description, &date, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		tx.Date, err = time.Parse(models.DateFormat, date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse transaction date %q: %w", date, err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return txs, nil
}

// SumByDate aggregates the owner's transaction amounts per date, ascending.
func (s *SQLiteStore) SumByDate(ctx context.Context, ownerID int64) ([]storage.DateTotal, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT date, SUM(amount) FROM transactions WHERE owner_id = ? GROUP BY date ORDER BY date ASC",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to sum by date: %w", err)
	}
	defer rows.Close()

	var totals []storage.DateTotal
	for rows.Next() {
		var dt storage.DateTotal
		if err := rows.Scan(&dt.Date, &dt.Total); err != nil {
			return nil, fmt.Errorf("failed to scan date total: %w", err)
		}
		totals = append(totals, dt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate date totals: %w", err)
	}

	return totals, nil
}
