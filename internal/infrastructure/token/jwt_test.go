package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskforge/taskforge/pkg/logger"
)

const testSecret = "unit-test-secret-0123456789abcdef"

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	return NewCodec(testSecret, time.Hour, logger.NewNoopLogger())
}

func TestIssueAndValidateRoundTrip(t *testing.T) {
	codec := newTestCodec(t)

	tok, err := codec.Issue("alice")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	assert.True(t, codec.IsValid(tok))

	subject, err := codec.ExtractSubject(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestTamperedTokenIsRejected(t *testing.T) {
	codec := newTestCodec(t)

	tok, err := codec.Issue("alice")
	require.NoError(t, err)

	// Flip one character of the signature segment.
	last := tok[len(tok)-1]
	flipped := byte('x')
	if last == 'x' {
		flipped = 'y'
	}
	tampered := tok[:len(tok)-1] + string(flipped)

	assert.False(t, codec.IsValid(tampered))

	_, err = codec.ExtractSubject(tampered)
	assert.Error(t, err)
}

func TestExpiredTokenKeepsSubjectButFailsValidation(t *testing.T) {
	codec := newTestCodec(t)

	issued := time.Now().Add(-2 * time.Hour)
	tok, err := codec.IssueWithExpiry("bob", issued, issued.Add(time.Hour))
	require.NoError(t, err)

	assert.False(t, codec.IsValid(tok))

	subject, err := codec.ExtractSubject(tok)
	require.NoError(t, err)
	assert.Equal(t, "bob", subject)
}

func TestWrongKeyIsRejected(t *testing.T) {
	issuer := NewCodec("a-completely-different-secret", time.Hour, logger.NewNoopLogger())
	verifier := newTestCodec(t)

	tok, err := issuer.Issue("alice")
	require.NoError(t, err)

	assert.False(t, verifier.IsValid(tok))

	_, err = verifier.ExtractSubject(tok)
	assert.Error(t, err)
}

func TestNonHMACAlgorithmIsRejected(t *testing.T) {
	codec := newTestCodec(t)

	// alg=none token with a well-formed payload.
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "mallory",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	assert.False(t, codec.IsValid(unsigned))

	_, err = codec.ExtractSubject(unsigned)
	assert.Error(t, err)
}

func TestMalformedTokensAreRejected(t *testing.T) {
	codec := newTestCodec(t)

	for _, tok := range []string{"", "garbage", "a.b", strings.Repeat("x", 512)} {
		assert.False(t, codec.IsValid(tok), "token %q", tok)

		_, err := codec.ExtractSubject(tok)
		assert.Error(t, err, "token %q", tok)
	}
}

func TestTokenWithoutExpiryFailsValidation(t *testing.T) {
	codec := newTestCodec(t)

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "carol",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	assert.False(t, codec.IsValid(tok))

	// The subject is still readable for diagnostic purposes.
	subject, err := codec.ExtractSubject(tok)
	require.NoError(t, err)
	assert.Equal(t, "carol", subject)
}
