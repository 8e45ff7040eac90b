package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/firedesk/timecard/internal/shared"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.Issue(shared.Identity{
		EmployeeID: "891",
		Name:       "J. Smith",
		Rank:       "Captain",
		Admin:      true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := tm.Parse(token)
	require.NoError(t, err)
	require.Equal(t, "891", id.EmployeeID)
	require.Equal(t, "J. Smith", id.Name)
	require.Equal(t, "Captain", id.Rank)
	require.True(t, id.Admin)
}

func TestTokenWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	other := NewTokenManager("different-secret", time.Hour)

	token, err := tm.Issue(shared.Identity{EmployeeID: "891"})
	require.NoError(t, err)

	_, err = other.Parse(token)
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestTokenExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	token, err := tm.Issue(shared.Identity{EmployeeID: "891"})
	require.NoError(t, err)

	expired := &TokenManager{secret: []byte("test-secret"), ttl: -time.Minute}
	tok, err := expired.Issue(shared.Identity{EmployeeID: "891"})
	require.NoError(t, err)
	_, err = tm.Parse(tok)
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)

	_, err = tm.Parse(token)
	require.NoError(t, err)
}

func TestTokenGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	_, err := tm.Parse("not.a.token")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}
