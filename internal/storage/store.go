// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/kmalov/cashlogger/internal/models"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken is returned by CreateUser when the email is already
	// registered.
	ErrEmailTaken = errors.New("email already registered")
)

// DateTotal is one group of the per-date aggregation: the summed amount of
// all of an owner's transactions on a single date.
type DateTotal struct {
	Date  string // YYYY-MM-DD
	Total int64
}

// Store defines the interface for user and transaction persistence.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateUser persists a new user. The user.ID field is populated by the store.
	// Returns an error if the email is already registered.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email address.
	// Returns (nil, nil) if no user matches.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	// Returns (nil, nil) if no user matches.
	GetUserByID(ctx context.Context, id int64) (*models.User, error)

	// DeleteUser removes a user and, by cascade, their entire ledger.
	DeleteUser(ctx context.Context, id int64) error

	// CreateTransaction persists a new transaction for its owner.
	// The tx.ID field is populated by the store.
	CreateTransaction(ctx context.Context, tx *models.Transaction) error

	// ListTransactionsByOwner returns the owner's transactions ordered by
	// date descending, then id descending.
	ListTransactionsByOwner(ctx context.Context, ownerID int64) ([]models.Transaction, error)

	// SumByDate returns the owner's per-date amount totals in ascending
	// date order.
	SumByDate(ctx context.Context, ownerID int64) ([]DateTotal, error)

	// Close releases any resources held by the store.
	Close() error
}
