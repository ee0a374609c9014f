package service_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/accounts/internal/accounts/service"
	"github.com/aussiebroadwan/accounts/internal/accounts/store/drivers/sqlite"
	"github.com/aussiebroadwan/accounts/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

// fastParams keeps argon2 cheap enough for unit tests.
var fastParams = cryptox.Params{Memory: 64, Iterations: 1, Parallelism: 1, KeyLength: 16}

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type fixture struct {
	store    *sqlite.Store
	creds    *cryptox.Credentials
	tokens   *service.TokenService
	accounts *service.AccountService
	sessions *service.SessionService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	creds, err := cryptox.NewCredentials("pepper", fastParams)
	require.NoError(t, err)

	tokens, err := service.NewTokenService(service.TokenConfig{
		Secret: testSecret,
		Issuer: "accounts",
		TTL:    time.Hour,
	})
	require.NoError(t, err)

	return &fixture{
		store:    st,
		creds:    creds,
		tokens:   tokens,
		accounts: &service.AccountService{Store: st, Hasher: creds},
		sessions: &service.SessionService{Store: st, Credentials: creds, Tokens: tokens},
	}
}

func ptr(s string) *string { return &s }
