package members

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenPair bundles the two bearer credentials issued at login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// TokenService mints and validates the signed session tokens. Tokens are
// stateless: there is no server-side session store and no revocation list,
// they are invalidated only by expiry.
type TokenService struct {
	signingKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
	logger     Logger
}

// NewTokenService creates a TokenService with the process-wide signing key.
func NewTokenService(signingKey []byte, accessTTL, refreshTTL time.Duration, issuer string, logger Logger) *TokenService {
	if logger == nil {
		logger = NewLogger("members.tokens")
	}
	return &TokenService{
		signingKey: signingKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		issuer:     issuer,
		logger:     logger,
	}
}

// IssueTokenPair mints an access and a refresh token bound to the account.
func (ts *TokenService) IssueTokenPair(user *User) (*TokenPair, error) {
	access, err := ts.sign(user, TokenKindAccess, ts.accessTTL)
	if err != nil {
		return nil, err
	}

	refresh, err := ts.sign(user, TokenKindRefresh, ts.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{Access: access, Refresh: refresh}, nil
}

func (ts *TokenService) sign(user *User, kind TokenKind, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UID:      user.ID.String(),
		UserRole: user.Role,
		Kind:     kind,
	}

	ensureTokenID(&claims.RegisteredClaims)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", kind, err)
	}

	return signed, nil
}

// Validate parses and verifies a token string, returning its claims. The
// token must be of the expected kind.
func (ts *TokenService) Validate(raw string, kind TokenKind) (*TokenClaims, error) {
	parserOptions := make([]jwt.ParserOption, 0, 1)
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}

	token, err := jwt.ParseWithClaims(raw, &TokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, parserOptions...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		ts.logger.Error("could not decode token claims")
		return nil, ErrTokenMalformed
	}

	if claims.Kind != kind {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

// RefreshAccess validates a refresh token and mints a new access token
// bound to the same account id and role.
func (ts *TokenService) RefreshAccess(refreshToken string) (string, error) {
	claims, err := ts.Validate(refreshToken, TokenKindRefresh)
	if err != nil {
		return "", err
	}

	uid, err := claims.UserUUID()
	if err != nil {
		return "", ErrTokenMalformed
	}

	return ts.sign(&User{ID: uid, Role: claims.UserRole}, TokenKindAccess, ts.accessTTL)
}
