package members

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Policy is a stateless predicate over the resolved account. nil means
// the request carried no usable credentials. A missing or unusable token
// yields ErrUnauthorized; a resolved account whose role does not clear
// the gate yields ErrForbidden. The two map to distinct response codes.
type Policy func(user *User) error

// AllowAny admits every request.
func AllowAny(*User) error {
	return nil
}

// IsAuthenticated requires a valid token resolving to an active account.
func IsAuthenticated(user *User) error {
	if user == nil {
		return ErrUnauthorized
	}
	return nil
}

// IsAdmin requires the admin role.
func IsAdmin(user *User) error {
	if err := IsAuthenticated(user); err != nil {
		return err
	}
	if !user.Role.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

// IsAdminOrStaff requires the staff role; admin clears it implicitly.
func IsAdminOrStaff(user *User) error {
	if err := IsAuthenticated(user); err != nil {
		return err
	}
	if !user.Role.IsStaff() {
		return ErrForbidden
	}
	return nil
}

const currentUserKey = "current_user"

// CurrentUser returns the account the auth middleware resolved for this
// request.
func CurrentUser(c *fiber.Ctx) (*User, bool) {
	user, ok := c.Locals(currentUserKey).(*User)
	return user, ok
}

// RequireUser is the auth middleware. It extracts the bearer access
// token, validates it, resolves the bound account from the store, checks
// it is still active, stores it in locals, and evaluates the policies in
// order. Token validity alone is not enough: the account behind it must
// still exist and be active.
func RequireUser(tokens *TokenService, store Users, policies ...Policy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := extractBearerToken(c)
		if err != nil {
			return respondError(c, err)
		}

		claims, err := tokens.Validate(raw, TokenKindAccess)
		if err != nil {
			return respondError(c, err)
		}

		uid, err := claims.UserUUID()
		if err != nil {
			return respondError(c, ErrTokenMalformed)
		}

		user, err := store.GetByID(c.Context(), uid)
		if err != nil {
			return respondError(c, ErrUnauthorized)
		}

		if !user.IsActive {
			return respondError(c, ErrUnauthorized)
		}

		c.Locals(currentUserKey, user)

		for _, policy := range policies {
			if err := policy(user); err != nil {
				return respondError(c, err)
			}
		}

		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", ErrUnauthorized
	}

	const scheme = "Bearer"
	if len(header) <= len(scheme) || !strings.EqualFold(header[:len(scheme)], scheme) {
		return "", ErrUnauthorized
	}

	token := strings.TrimSpace(header[len(scheme):])
	if token == "" {
		return "", ErrUnauthorized
	}

	return token, nil
}
