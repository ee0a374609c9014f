package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTooManyAttempts    = errors.New("too many failed sign-in attempts")
)

// CredentialChecker verifies a plaintext password against a stored digest.
type CredentialChecker interface {
	Hash(plaintext, salt string) string
	Verify(plaintext, salt, expected string) bool
}

// TokenIssuer mints a session token for an account.
type TokenIssuer interface {
	Issue(accountID string) (string, error)
}

// SignInThrottle locks an email out after repeated failed sign-ins. Reserve
// must count the attempt atomically with the limit check.
type SignInThrottle interface {
	Reserve(ctx context.Context, email string) (bool, error)
	Reset(ctx context.Context, email string) error
}

type SessionService struct {
	Store       store.Store
	Credentials CredentialChecker
	Tokens      TokenIssuer

	// Throttle is optional. Nil disables per-email lockout.
	Throttle SignInThrottle
}

// decoySalt is hashed against when the email is unknown so both failure
// paths spend the same work.
const decoySalt = "AAAAAAAAAAAAAAAAAAAAAA"

// SignIn checks email and password and returns a fresh session token with
// the account it belongs to. Unknown emails and wrong passwords both yield
// ErrInvalidCredentials.
func (s *SessionService) SignIn(ctx context.Context, email, password string) (string, domain.Account, error) {
	log := slogx.FromContext(ctx)
	email = domain.NormalizeEmail(email)

	// 1. Count the attempt, refusing once the email is locked out
	if s.Throttle != nil {
		ok, err := s.Throttle.Reserve(ctx, email)
		switch {
		case err != nil:
			log.Error("sign-in throttle unavailable", slog.Any("error", err))
		case !ok:
			log.Warn("sign-in refused, email locked out")
			return "", domain.Account{}, ErrTooManyAttempts
		}
	}

	// 2. Look the account up
	a, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to load account for sign-in", slog.Any("error", err))
			return "", domain.Account{}, fmt.Errorf("sign in: %w", err)
		}
		log.Warn("sign-in failed, unknown email")
		_ = s.Credentials.Hash(password, decoySalt)
		return "", domain.Account{}, ErrInvalidCredentials
	}

	// 3. Check the password
	if !s.Credentials.Verify(password, a.Salt, a.PasswordHash) {
		log.Warn("sign-in failed, wrong password", slog.String("account_id", a.ID))
		return "", domain.Account{}, ErrInvalidCredentials
	}

	// 4. Mint the token
	token, err := s.Tokens.Issue(a.ID)
	if err != nil {
		log.Error("failed to issue token", slog.String("account_id", a.ID), slog.Any("error", err))
		return "", domain.Account{}, fmt.Errorf("sign in: %w", err)
	}

	if s.Throttle != nil {
		if err := s.Throttle.Reset(ctx, email); err != nil {
			log.Error("failed to reset sign-in throttle", slog.Any("error", err))
		}
	}

	log.Info("signed in", slog.String("account_id", a.ID))
	return token, a, nil
}
