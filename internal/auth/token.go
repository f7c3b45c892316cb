// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// DefaultTokenTTL is the session token lifetime when the configuration
// does not override it.
const DefaultTokenTTL = 30 * time.Minute

// Claims is the signed claim set embedded in a session token: subject
// (account id), email, role, and an absolute expiry instant. The claim
// keys mirror the wire format: "sub", "email", "rol", "exp".
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"rol"`
}

// TokenCodec signs and verifies compact self-contained session tokens
// (three dot-delimited base64url parts: header, payload, HMAC-SHA256
// signature). Verification is a pure function of the token, the server
// secret, and the current time; it consults no external state.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenCodec creates a TokenCodec with the server-held symmetric
// secret and the default token lifetime.
func NewTokenCodec(secret []byte, ttl time.Duration) (*TokenCodec, error) {
	if len(secret) == 0 {
		return nil, oops.Code("AUTH_EMPTY_SECRET").Errorf("signing secret cannot be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenCodec{secret: secret, ttl: ttl, now: time.Now}, nil
}

// WithClock overrides the codec's clock. Intended for tests that need
// deterministic expiry behavior.
func (c *TokenCodec) WithClock(now func() time.Time) *TokenCodec {
	clone := *c
	clone.now = now
	return &clone
}

// TTL returns the configured token lifetime.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token carrying the account's identifier, email, and role,
// expiring at issue-time + the configured lifetime.
func (c *TokenCodec) Issue(id ulid.ULID, email string, role Role) (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		Email: email,
		Role:  string(role),
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", oops.Code("AUTH_TOKEN_SIGN_FAILED").Wrap(err)
	}
	return signed, nil
}

// Verify recomputes the signature over the payload and checks the expiry.
// On success it returns the embedded claims exactly as issued; it does not
// re-validate them against any store. Failures wrap exactly one of
// ErrTokenExpired, ErrTokenSignature, or ErrTokenMalformed.
func (c *TokenCodec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, oops.Code("AUTH_TOKEN_EXPIRED").Wrap(ErrTokenExpired)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, oops.Code("AUTH_TOKEN_SIGNATURE").Wrap(ErrTokenSignature)
		default:
			return nil, oops.Code("AUTH_TOKEN_MALFORMED").Wrap(ErrTokenMalformed)
		}
	}
	if !token.Valid {
		return nil, oops.Code("AUTH_TOKEN_MALFORMED").Wrap(ErrTokenMalformed)
	}
	return claims, nil
}

// SubjectID parses the claim subject back into an account identifier.
func (cl *Claims) SubjectID() (ulid.ULID, error) {
	id, err := ulid.Parse(cl.Subject)
	if err != nil {
		return ulid.ULID{}, oops.Code("AUTH_TOKEN_MALFORMED").
			With("subject", cl.Subject).
			Wrap(ErrTokenMalformed)
	}
	return id, nil
}
