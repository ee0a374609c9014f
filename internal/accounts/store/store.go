package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, mongo)
// implement this and expose sub-repositories per concern.
//
// There is no transaction support: every account operation touches a single
// document and drivers guarantee that write is atomic.
type Store interface {
	Accounts() Accounts

	// ApplyMigrations brings the schema (tables, indexes) up to date. It is
	// safe to call on every start.
	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Accounts interface {
	// GetAccountByID returns ErrNotFound when no account has id.
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByEmail looks up by normalized email, used during sign-in.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// ListAccounts returns every account, oldest first.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// CreateAccount inserts a (id is provided by app via ULID). A taken
	// email yields ErrAlreadyExists.
	CreateAccount(ctx context.Context, a domain.Account) error

	// UpdateAccount overwrites the mutable fields of the account with a.ID.
	// ErrNotFound if it is gone, ErrAlreadyExists if the new email is taken.
	UpdateAccount(ctx context.Context, a domain.Account) error

	// DeleteAccount removes the account with id, ErrNotFound if absent.
	DeleteAccount(ctx context.Context, id string) error
}
