package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
	"github.com/aussiebroadwan/accounts/pkg/idx"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

var ErrAccountNotFound = errors.New("account not found")

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateInput holds the fields to change; nil leaves a field as is.
type UpdateInput struct {
	Name     *string
	Email    *string
	Password *string
}

type AccountService struct {
	Store  store.Store
	Hasher domain.PasswordHasher

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// now returns UTC at millisecond precision, the finest both drivers keep.
func (s *AccountService) now() time.Time {
	t := time.Now()
	if s.Now != nil {
		t = s.Now()
	}
	return t.UTC().Truncate(time.Millisecond)
}

// Register validates and stores a new account. A taken email surfaces as a
// *domain.ValidationError on the email field.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (domain.Account, error) {
	log := slogx.FromContext(ctx)

	a := domain.Account{Name: in.Name, Email: in.Email}.Normalized()
	if err := a.Validate(&in.Password); err != nil {
		return domain.Account{}, err
	}

	a.ID = idx.New().String()
	a.CreatedAt = s.now()
	a = a.WithPassword(s.Hasher, in.Password)

	if err := s.Store.Accounts().CreateAccount(ctx, a); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Info("registration rejected, email taken")
			return domain.Account{}, domain.NewValidationError("email", domain.MsgEmailTaken)
		}
		log.Error("failed to create account", slog.Any("error", err))
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	log.Info("account registered", slog.String("account_id", a.ID))
	return a, nil
}

// List returns every account, oldest first.
func (s *AccountService) List(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.Store.Accounts().ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// Get fetches an account, ErrAccountNotFound if there is none.
func (s *AccountService) Get(ctx context.Context, id string) (domain.Account, error) {
	a, err := s.Store.Accounts().GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrAccountNotFound
		}
		return domain.Account{}, fmt.Errorf("get account: %w", err)
	}
	return a, nil
}

// Update merges the present fields of in into the account and saves it.
// Setting a password re-derives both salt and digest.
func (s *AccountService) Update(ctx context.Context, id string, in UpdateInput) (domain.Account, error) {
	log := slogx.FromContext(ctx)

	a, err := s.Get(ctx, id)
	if err != nil {
		return domain.Account{}, err
	}

	if in.Name != nil {
		a.Name = *in.Name
	}
	if in.Email != nil {
		a.Email = *in.Email
	}
	a = a.Normalized()

	if err := a.Validate(in.Password); err != nil {
		return domain.Account{}, err
	}
	if in.Password != nil {
		a = a.WithPassword(s.Hasher, *in.Password)
	}

	now := s.now()
	a.UpdatedAt = &now

	if err := s.Store.Accounts().UpdateAccount(ctx, a); err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			return domain.Account{}, domain.NewValidationError("email", domain.MsgEmailTaken)
		case errors.Is(err, store.ErrNotFound):
			return domain.Account{}, ErrAccountNotFound
		}
		log.Error("failed to update account", slog.String("account_id", id), slog.Any("error", err))
		return domain.Account{}, fmt.Errorf("update account: %w", err)
	}

	log.Info("account updated",
		slog.String("account_id", a.ID),
		slog.Bool("password_changed", in.Password != nil),
	)
	return a, nil
}

// Delete removes the account and returns it as it was before deletion.
func (s *AccountService) Delete(ctx context.Context, id string) (domain.Account, error) {
	log := slogx.FromContext(ctx)

	a, err := s.Get(ctx, id)
	if err != nil {
		return domain.Account{}, err
	}

	if err := s.Store.Accounts().DeleteAccount(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrAccountNotFound
		}
		log.Error("failed to delete account", slog.String("account_id", id), slog.Any("error", err))
		return domain.Account{}, fmt.Errorf("delete account: %w", err)
	}

	log.Info("account deleted", slog.String("account_id", id))
	return a, nil
}
