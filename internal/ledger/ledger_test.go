package ledger

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kmalov/cashlogger/internal/models"
	"github.com/kmalov/cashlogger/internal/storage/sqlite"
)

func setupService(t *testing.T) (*Service, *sqlite.SQLiteStore) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "cashlogger-ledger-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return NewService(store, slog.Default()), store
}

func createUser(t *testing.T, store *sqlite.SQLiteStore, email string) int64 {
	t.Helper()
	user := &models.User{Email: email, Name: "Test", PasswordHash: "digest"}
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user.ID
}

func date(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse(models.DateFormat, value)
	if err != nil {
		t.Fatalf("bad test date %q: %v", value, err)
	}
	return d
}

func TestSignedAmount(t *testing.T) {
	tests := []struct {
		name      string
		entryType models.EntryType
		magnitude int64
		want      int64
	}{
		{"income stays positive", models.Income, 100, 100},
		{"loss is negated", models.Loss, 100, -100},
		{"zero is zero either way", models.Loss, 0, 0},
		// The rule negates whatever was entered: these two pin down the
		// behavior for negative magnitudes rather than silently "fixing" it.
		{"negative magnitude under income stays negative", models.Income, -100, -100},
		{"negative magnitude under loss flips positive", models.Loss, -100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SignedAmount(tt.entryType, tt.magnitude); got != tt.want {
				t.Errorf("SignedAmount(%v, %d) = %d, want %d", tt.entryType, tt.magnitude, got, tt.want)
			}
		})
	}
}

func TestAdd(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()
	owner := createUser(t, store, "ann@example.com")

	t.Run("income persists positive amount", func(t *testing.T) {
		tx, err := svc.Add(ctx, owner, Input{
			Name:      "Salary",
			Magnitude: 100,
			Type:      models.Income,
			Date:      date(t, "2024-01-01"),
		})
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if tx.Amount != 100 {
			t.Errorf("Amount = %d, want 100", tx.Amount)
		}
		if tx.ID == 0 {
			t.Error("Expected transaction ID to be assigned")
		}
	})

	t.Run("loss persists negative amount", func(t *testing.T) {
		tx, err := svc.Add(ctx, owner, Input{
			Name:      "Rent",
			Magnitude: 100,
			Type:      models.Loss,
			Date:      date(t, "2024-01-01"),
		})
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if tx.Amount != -100 {
			t.Errorf("Amount = %d, want -100", tx.Amount)
		}
	})

	t.Run("missing name is rejected", func(t *testing.T) {
		_, err := svc.Add(ctx, owner, Input{
			Magnitude: 10,
			Type:      models.Income,
			Date:      date(t, "2024-01-01"),
		})
		if !errors.Is(err, ErrNameRequired) {
			t.Errorf("Expected ErrNameRequired, got %v", err)
		}
	})

	t.Run("missing date is rejected", func(t *testing.T) {
		_, err := svc.Add(ctx, owner, Input{
			Name:      "Salary",
			Magnitude: 10,
			Type:      models.Income,
		})
		if err == nil {
			t.Error("Expected error for zero date, got nil")
		}
	})
}

func TestHistoryAndTotals(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()

	ann := createUser(t, store, "a@x.com")
	bob := createUser(t, store, "b@x.com")

	add := func(owner int64, name string, magnitude int64, entryType models.EntryType, day string) {
		t.Helper()
		if _, err := svc.Add(ctx, owner, Input{
			Name:      name,
			Magnitude: magnitude,
			Type:      entryType,
			Date:      date(t, day),
		}); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	// The scenario from the history page: salary and rent on the same day,
	// plus an older and a newer entry.
	add(ann, "Salary", 1000, models.Income, "2024-01-01")
	add(ann, "Rent", 300, models.Loss, "2024-01-01")
	add(ann, "Gift", 50, models.Income, "2023-12-25")
	add(ann, "Groceries", 40, models.Loss, "2024-01-05")
	add(bob, "Salary", 9999, models.Income, "2024-01-01")

	t.Run("History is owner-scoped and date-descending", func(t *testing.T) {
		txs, err := svc.History(ctx, ann)
		if err != nil {
			t.Fatalf("History failed: %v", err)
		}
		if len(txs) != 4 {
			t.Fatalf("Expected 4 transactions, got %d", len(txs))
		}
		for _, tx := range txs {
			if tx.OwnerID != ann {
				t.Errorf("Transaction %d belongs to %d, want %d", tx.ID, tx.OwnerID, ann)
			}
		}
		wantOrder := []string{"Groceries", "Rent", "Salary", "Gift"}
		for i, want := range wantOrder {
			if txs[i].Name != want {
				t.Errorf("txs[%d] = %s, want %s", i, txs[i].Name, want)
			}
		}
	})

	t.Run("TotalsByDate groups and sums", func(t *testing.T) {
		totals, err := svc.TotalsByDate(ctx, ann)
		if err != nil {
			t.Fatalf("TotalsByDate failed: %v", err)
		}
		want := map[string]int64{
			"2023-12-25": 50,
			"2024-01-01": 700,
			"2024-01-05": -40,
		}
		if len(totals) != len(want) {
			t.Fatalf("Expected %d groups, got %d", len(want), len(totals))
		}
		for _, dt := range totals {
			if want[dt.Date] != dt.Total {
				t.Errorf("Total for %s = %d, want %d", dt.Date, dt.Total, want[dt.Date])
			}
		}
		// Ascending date order for the chart.
		for i := 1; i < len(totals); i++ {
			if totals[i-1].Date >= totals[i].Date {
				t.Errorf("Totals not in ascending date order: %s before %s", totals[i-1].Date, totals[i].Date)
			}
		}
	})

	t.Run("aggregation matches the sum of individual amounts", func(t *testing.T) {
		txs, err := svc.History(ctx, ann)
		if err != nil {
			t.Fatalf("History failed: %v", err)
		}
		var txSum int64
		for _, tx := range txs {
			txSum += tx.Amount
		}

		balance, err := svc.Balance(ctx, ann)
		if err != nil {
			t.Fatalf("Balance failed: %v", err)
		}
		if balance != txSum {
			t.Errorf("Balance = %d, want %d", balance, txSum)
		}
	})
}
