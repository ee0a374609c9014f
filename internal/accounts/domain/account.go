package domain

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// MinPasswordLength is counted in characters, not bytes.
const MinPasswordLength = 6

// Validation messages. Clients match on these, so keep them stable.
const (
	MsgNameRequired     = "Name is required"
	MsgEmailRequired    = "Email is required"
	MsgEmailInvalid     = "Please fill a valid email address"
	MsgEmailTaken       = "Email already exists"
	MsgPasswordRequired = "Password is required"
	MsgPasswordTooShort = "Password must be at least 6 characters"
)

var emailPattern = regexp.MustCompile(`.+@.+\..+`)

// Account is a stored user identity. The plaintext password never lives on
// it; only the salt and digest derived from it do.
type Account struct {
	ID           string
	Name         string
	Email        string
	Salt         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    *time.Time // nil until the first update
}

// PasswordHasher is the part of the credential manager an account needs to
// set its password.
type PasswordHasher interface {
	MakeSalt() string
	Hash(plaintext, salt string) string
}

// WithPassword returns a copy of a with a fresh salt and the digest of
// plaintext. Salt and digest are always replaced together.
func (a Account) WithPassword(h PasswordHasher, plaintext string) Account {
	a.Salt = h.MakeSalt()
	a.PasswordHash = h.Hash(plaintext, a.Salt)
	return a
}

// Normalized trims the name and normalizes the email.
func (a Account) Normalized() Account {
	a.Name = strings.TrimSpace(a.Name)
	a.Email = NormalizeEmail(a.Email)
	return a
}

// NormalizeEmail is the canonical form used for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks the account fields. password is the plaintext being set
// in this operation, or nil when the password is left unchanged; an account
// that has never had a password must be given one.
func (a Account) Validate(password *string) error {
	var verr ValidationError

	if strings.TrimSpace(a.Name) == "" {
		verr.Add("name", MsgNameRequired)
	}

	switch email := strings.TrimSpace(a.Email); {
	case email == "":
		verr.Add("email", MsgEmailRequired)
	case !emailPattern.MatchString(email):
		verr.Add("email", MsgEmailInvalid)
	}

	switch {
	case password != nil && *password == "":
		verr.Add("password", MsgPasswordRequired)
	case password != nil && utf8.RuneCountInString(*password) < MinPasswordLength:
		verr.Add("password", MsgPasswordTooShort)
	case password == nil && (a.PasswordHash == "" || a.Salt == ""):
		verr.Add("password", MsgPasswordRequired)
	}

	return verr.OrNil()
}
