package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifyVerified(t *testing.T) {
	m := New(Config{SecretKey: "s3cret"})
	exp := time.Now().Add(time.Hour).Truncate(time.Second)

	tok, err := m.GenerateToken(Identity{UserID: 42, Username: "alice", ExpiresAt: exp})
	require.NoError(t, err)

	id, err := m.Identify(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id.UserID)
	assert.Equal(t, "alice", id.Username)
	assert.True(t, exp.Equal(id.ExpiresAt))
}

func TestIdentifyRejectsWrongSecret(t *testing.T) {
	tok, err := New(Config{SecretKey: "one"}).GenerateToken(Identity{UserID: 1})
	require.NoError(t, err)

	_, err = New(Config{SecretKey: "two"}).Identify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIdentifyRejectsExpired(t *testing.T) {
	m := New(Config{SecretKey: "s3cret"})
	tok, err := m.GenerateToken(Identity{UserID: 1, ExpiresAt: time.Now().Add(-time.Minute)})
	require.NoError(t, err)

	_, err = m.Identify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIdentifyUnverified(t *testing.T) {
	tok, err := New(Config{SecretKey: "server-side"}).GenerateToken(Identity{UserID: 7, Username: "bob"})
	require.NoError(t, err)

	id, err := New(Config{}).Identify(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id.UserID)
	assert.Equal(t, "bob", id.Username)
}

func TestIdentifyFromSubject(t *testing.T) {
	key := []byte("k")
	sign := func(c jwt.Claims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(key)
		require.NoError(t, err)
		return s
	}
	m := New(Config{SecretKey: "k"})

	id, err := m.Identify(sign(jwt.RegisteredClaims{Subject: "15"}))
	require.NoError(t, err)
	assert.Equal(t, int64(15), id.UserID)

	_, err = m.Identify(sign(jwt.RegisteredClaims{Subject: "carol"}))
	assert.ErrorIs(t, err, ErrMissingSubject)
}

func TestIdentifyGarbage(t *testing.T) {
	_, err := New(Config{}).Identify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateTokenNeedsSecret(t *testing.T) {
	_, err := New(Config{}).GenerateToken(Identity{UserID: 1})
	assert.Error(t, err)
}
