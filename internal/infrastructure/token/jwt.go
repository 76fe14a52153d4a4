// Package token implements the JWT codec and validator shared with
// auth-service. Tokens are HS256-signed over a process-wide secret key,
// derived once from configuration at startup and never rotated at runtime;
// both sides must derive the identical key from the same secret or every
// token fails verification.
package token

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskforge/taskforge/pkg/logger"
)

// Codec signs, verifies and reads bearer tokens. All methods are pure
// functions over the token string; the only state is the read-only key.
type Codec struct {
	key []byte
	ttl time.Duration
	log logger.Logger
}

// NewCodec derives the signing key from the shared secret.
func NewCodec(secret string, ttl time.Duration, log logger.Logger) *Codec {
	return &Codec{
		key: []byte(secret),
		ttl: ttl,
		log: log.WithComponent("token"),
	}
}

// claims carries the subject plus issued/expiry timestamps.
type claims struct {
	jwt.RegisteredClaims
}

// Issue encodes the subject with issued/expiry timestamps and signs it.
// Production tokens are issued by auth-service with the same secret; the
// in-process signer backs the stub identity service and the test surface.
func (c *Codec) Issue(subject string) (string, error) {
	now := time.Now()
	cl := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(c.key)
}

// IssueWithExpiry is Issue with an explicit expiry, used to mint
// already-expired tokens in tests and by the stub identity service.
func (c *Codec) IssueWithExpiry(subject string, issuedAt, expiresAt time.Time) (string, error) {
	cl := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(c.key)
}

// keyFunc returns the shared key and rejects any non-HMAC token up front.
func (c *Codec) keyFunc(t *jwt.Token) (interface{}, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
	}
	return c.key, nil
}

// ExtractSubject parses the token, verifies its signature and returns the
// subject claim without regard to expiry: an expired but well-signed token
// still yields its subject.
func (c *Codec) ExtractSubject(tokenString string) (string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	var cl claims
	if _, err := parser.ParseWithClaims(tokenString, &cl, c.keyFunc); err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}

	return cl.Subject, nil
}

// IsValid returns true only if the signature verifies and the token has not
// expired. Any parse, format or signature error yields false; failures are
// logged as warnings and never escalate past this boundary.
func (c *Codec) IsValid(tokenString string) bool {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)

	t, err := parser.ParseWithClaims(tokenString, &claims{}, c.keyFunc)
	if err != nil {
		c.log.Warn(context.Background(), "Token inválido", logger.Err(err))
		return false
	}

	return t.Valid
}
