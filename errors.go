package members

import (
	"errors"
	"strings"
)

// ErrDuplicateIdentity is returned when a registration collides with an
// existing email or username.
var ErrDuplicateIdentity = errors.New("email or username already registered")

// ErrDuplicateRank is returned when a rank name already exists.
var ErrDuplicateRank = errors.New("rank already exists")

// ErrInvalidCredentials is the login failure. It covers both an unknown
// username and a password mismatch so callers cannot probe for accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInactiveAccount is returned when credentials check out but the
// account has been deactivated.
var ErrInactiveAccount = errors.New("account is inactive")

// ErrInvalidRole is returned when admin creation requests a role outside
// the assignable set.
var ErrInvalidRole = errors.New("invalid role")

// ErrAlreadyApproved rejects a second approval of the same account.
var ErrAlreadyApproved = errors.New("member is already approved")

// ErrNotFound is returned when a referenced account or rank is absent.
var ErrNotFound = errors.New("record not found")

// ErrTokenExpired is returned for tokens past their expiry.
var ErrTokenExpired = errors.New("token is expired")

// ErrTokenMalformed is returned for tokens that fail signature, shape,
// or kind checks.
var ErrTokenMalformed = errors.New("token is malformed")

// ErrUnauthorized is the policy outcome for a missing or unusable token.
var ErrUnauthorized = errors.New("authentication required")

// ErrForbidden is the policy outcome for an authenticated account whose
// role does not clear the gate.
var ErrForbidden = errors.New("insufficient role")

// IsUniqueViolation sniffs driver errors for a uniqueness-constraint
// conflict. The store enforces identity uniqueness atomically; a conflict
// during insert is how a concurrent duplicate registration loses the race.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // sqlite
		strings.Contains(msg, "duplicate key value violates unique constraint") || // postgres
		strings.Contains(msg, "Duplicate entry") // mysql
}
