/*
Package accountsdk is the Go client for the accounts service, and the home of
the wire types the service itself serializes.

# SDKClient vs Session

  - SDKClient: public endpoints (register, list, sign-in, health)
  - Session: endpoints that need a bearer token (read, update, delete)

Sign in to get a Session:

	client := accountsdk.NewSDKClient("http://localhost:8080")

	_, err := client.Register(ctx, accountsdk.RegisterRequest{
		Name:     "Ann",
		Email:    "ann@example.com",
		Password: "secret1",
	})

	session, err := client.SignIn(ctx, "ann@example.com", "secret1")
	me, err := session.Me(ctx)

A Session only ever acts as the account that signed in. Asking for another
account's record yields an *APIError with status 403:

	_, err = session.GetUser(ctx, otherID)
	if errors.Is(err, accountsdk.ErrForbidden) {
		...
	}

Tokens expire (24h by default) and are not refreshed. Sign in again when a
call fails with ErrInvalidToken.

# Errors

Every non-success response is returned as *APIError. Predefined values such
as ErrUserNotFound and ErrTooManyAttempts compare equal under errors.Is to
any response with the same status and message. Validation failures carry the
per-field messages in Details.
*/
package accountsdk
