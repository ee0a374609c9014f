package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/accounts/pkg/jwtx"
)

// TokenConfig carries everything the token service needs. The secret is
// injected here rather than read from a global, so tests can run with
// distinct secrets side by side.
type TokenConfig struct {
	Secret []byte
	Issuer string
	TTL    time.Duration // 0 means jwtx.DefaultSessionTTL
	Leeway time.Duration

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// TokenService issues and checks session tokens and answers ownership
// questions. It holds no mutable state and is safe for concurrent use.
type TokenService struct {
	signer   jwtx.Signer
	verifier jwtx.Verifier
	issuer   string
	ttl      time.Duration
	now      func() time.Time
}

func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = jwtx.DefaultSessionTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	signer, err := jwtx.NewHS256Signer(cfg.Secret)
	if err != nil {
		return nil, fmt.Errorf("token service: %w", err)
	}
	verifier, err := jwtx.NewHS256Verifier(cfg.Secret, jwtx.VerifyOptions{
		Issuer: cfg.Issuer,
		Leeway: cfg.Leeway,
		Now:    cfg.Now,
	})
	if err != nil {
		return nil, fmt.Errorf("token service: %w", err)
	}

	return &TokenService{
		signer:   signer,
		verifier: verifier,
		issuer:   cfg.Issuer,
		ttl:      cfg.TTL,
		now:      cfg.Now,
	}, nil
}

// TTL is how long issued tokens stay valid.
func (s *TokenService) TTL() time.Duration { return s.ttl }

// Issue signs a token asserting accountID.
func (s *TokenService) Issue(accountID string) (string, error) {
	if accountID == "" {
		return "", errors.New("token service: empty account id")
	}
	claims := jwtx.NewSessionClaims(accountID, s.issuer, s.ttl, s.now().UTC())
	return s.signer.Sign(claims)
}

// Verify returns the account ID asserted by token. An empty token yields
// jwtx.ErrMissingToken; every other failure wraps jwtx.ErrInvalidToken.
func (s *TokenService) Verify(token string) (string, error) {
	claims, err := s.verifier.Verify(token)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: %w", jwtx.ErrInvalidToken, jwtx.ErrInvalidClaim)
	}
	return claims.Subject, nil
}

// Authorize reports whether the token holder owns the resource. The match is
// exact and an empty identifier on either side never authorizes.
func (s *TokenService) Authorize(tokenAccountID, resourceOwnerID string) bool {
	return tokenAccountID != "" && tokenAccountID == resourceOwnerID
}

// Ready reports whether tokens can be signed.
func (s *TokenService) Ready() bool {
	return s.signer.Validate() == nil
}
