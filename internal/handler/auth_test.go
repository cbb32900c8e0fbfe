package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sudoku-arena/internal/config"
	"github.com/sudoku-arena/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	auth := NewAuth(&config.AuthConfig{Secret: "test-secret", TokenTTL: time.Hour})
	player := domain.PlayerInfo{ID: 42, Username: "alice"}

	token, err := auth.IssueToken(player, time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := auth.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, player, got)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	auth := NewAuth(&config.AuthConfig{Secret: "test-secret", TokenTTL: time.Hour})

	token, err := auth.IssueToken(domain.PlayerInfo{ID: 1, Username: "bob"}, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = auth.VerifyToken(token)
	assert.ErrorIs(t, err, domain.ErrBadCredentials)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewAuth(&config.AuthConfig{Secret: "secret-a", TokenTTL: time.Hour})
	verifier := NewAuth(&config.AuthConfig{Secret: "secret-b", TokenTTL: time.Hour})

	token, err := issuer.IssueToken(domain.PlayerInfo{ID: 1, Username: "bob"}, time.Now())
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.ErrorIs(t, err, domain.ErrBadCredentials)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	auth := NewAuth(&config.AuthConfig{Secret: "test-secret", TokenTTL: time.Hour})

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := auth.VerifyToken(token)
		assert.ErrorIs(t, err, domain.ErrBadCredentials, "token %q", token)
	}
}
