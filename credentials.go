package members

import (
	"context"
	"errors"
)

// UserFinder is the slice of the account store the verifier needs.
type UserFinder interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// CredentialVerifier checks submitted username+password pairs against
// stored hashes. Approval state is deliberately not consulted here:
// unapproved accounts may log in, approval only gates specific listings
// and actions.
type CredentialVerifier struct {
	store  UserFinder
	logger Logger
}

// NewCredentialVerifier builds a verifier over the given store.
func NewCredentialVerifier(store UserFinder) *CredentialVerifier {
	return &CredentialVerifier{
		store:  store,
		logger: NewLogger("members.credentials"),
	}
}

// WithLogger overrides the verifier logger.
func (v *CredentialVerifier) WithLogger(l Logger) *CredentialVerifier {
	if l != nil {
		v.logger = l
	}
	return v
}

// Authenticate resolves the account by exact username match and compares
// the password against the stored hash. An unknown username and a hash
// mismatch are indistinguishable to the caller. The inactive check runs
// after the credential check, so wrong credentials never reveal whether
// an account was deactivated.
func (v *CredentialVerifier) Authenticate(ctx context.Context, username, password string) (*User, error) {
	user, err := v.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			v.logger.Warn("login failed", "username", username)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrInactiveAccount
	}

	return user, nil
}
