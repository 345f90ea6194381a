package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/kmalov/cashlogger/internal/models"
	"github.com/kmalov/cashlogger/internal/storage"
)

// memoryUserStorage is an in-memory UserStorage for authenticator tests.
type memoryUserStorage struct {
	users  map[string]*models.User
	nextID int64
}

func newMemoryUserStorage() *memoryUserStorage {
	return &memoryUserStorage{users: make(map[string]*models.User), nextID: 1}
}

func (m *memoryUserStorage) CreateUser(_ context.Context, user *models.User) error {
	if _, ok := m.users[user.Email]; ok {
		return storage.ErrEmailTaken
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.Email] = user
	return nil
}

func (m *memoryUserStorage) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return m.users[email], nil
}

func (m *memoryUserStorage) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// racingUserStorage simulates losing a uniqueness race: the lookup misses
// but the insert reports the email as taken.
type racingUserStorage struct{}

func (racingUserStorage) CreateUser(context.Context, *models.User) error {
	return storage.ErrEmailTaken
}

func (racingUserStorage) GetUserByEmail(context.Context, string) (*models.User, error) {
	return nil, nil
}

func (racingUserStorage) GetUserByID(context.Context, int64) (*models.User, error) {
	return nil, nil
}

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()

	t.Run("Register hashes password and assigns ID", func(t *testing.T) {
		a := NewPasswordAuthenticator(newMemoryUserStorage())

		user, err := a.Register(ctx, "ann@example.com", "Ann", "correct horse")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if user.ID == 0 {
			t.Error("Expected user ID to be assigned")
		}
		if user.PasswordHash == "" || user.PasswordHash == "correct horse" {
			t.Error("Expected password to be stored hashed")
		}
	})

	t.Run("Register accepts any non-empty password", func(t *testing.T) {
		a := NewPasswordAuthenticator(newMemoryUserStorage())

		user, err := a.Register(ctx, "a@x.com", "Ann", "pw1")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if _, err := a.Authenticate(ctx, "a@x.com", "pw1"); err != nil {
			t.Errorf("Authenticate failed for short password: %v", err)
		}
		if user.ID == 0 {
			t.Error("Expected user ID to be assigned")
		}
	})

	t.Run("Register rejects empty password", func(t *testing.T) {
		a := NewPasswordAuthenticator(newMemoryUserStorage())

		_, err := a.Register(ctx, "ann@example.com", "Ann", "")
		if err == nil {
			t.Error("Expected error for empty password, got nil")
		}
	})

	t.Run("Register rejects duplicate email", func(t *testing.T) {
		a := NewPasswordAuthenticator(newMemoryUserStorage())

		if _, err := a.Register(ctx, "ann@example.com", "Ann", "correct horse"); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		_, err := a.Register(ctx, "ann@example.com", "Other Ann", "battery staple")
		if !errors.Is(err, ErrEmailExists) {
			t.Errorf("Expected ErrEmailExists, got %v", err)
		}
	})

	t.Run("Register maps a lost uniqueness race to ErrEmailExists", func(t *testing.T) {
		// The email pre-check sees nothing, but the insert hits the
		// unique index, as with two overlapping signups.
		a := NewPasswordAuthenticator(&racingUserStorage{})

		_, err := a.Register(ctx, "ann@example.com", "Ann", "correct horse")
		if !errors.Is(err, ErrEmailExists) {
			t.Errorf("Expected ErrEmailExists, got %v", err)
		}
	})

	t.Run("Authenticate accepts correct credentials", func(t *testing.T) {
		a := NewPasswordAuthenticator(newMemoryUserStorage())

		registered, err := a.Register(ctx, "ann@example.com", "Ann", "correct horse")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}

		user, err := a.Authenticate(ctx, "ann@example.com", "correct horse")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if user.ID != registered.ID {
			t.Errorf("Authenticated as user %d, want %d", user.ID, registered.ID)
		}
	})

	t.Run("Authenticate rejects wrong password", func(t *testing.T) {
		a := NewPasswordAuthenticator(newMemoryUserStorage())

		if _, err := a.Register(ctx, "ann@example.com", "Ann", "correct horse"); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		_, err := a.Authenticate(ctx, "ann@example.com", "battery staple")
		if !errors.Is(err, ErrWrongPassword) {
			t.Errorf("Expected ErrWrongPassword, got %v", err)
		}
	})

	t.Run("Authenticate rejects unknown email", func(t *testing.T) {
		a := NewPasswordAuthenticator(newMemoryUserStorage())

		_, err := a.Authenticate(ctx, "nobody@example.com", "whatever1")
		if !errors.Is(err, ErrEmailNotFound) {
			t.Errorf("Expected ErrEmailNotFound, got %v", err)
		}
	})
}
