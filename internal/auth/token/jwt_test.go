package token_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/EgorLis/ipfs-drive/internal/auth/token"
)

func TestIssueParseRoundTrip(t *testing.T) {
	m := token.New("secret", "issuer-test", time.Hour)
	uid := uuid.New()

	raw, claims, err := m.Issue(context.Background(), uid, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, raw)
	require.NotEmpty(t, claims.JTI)

	parsed, err := m.Parse(context.Background(), raw)
	require.NoError(t, err)
	require.Equal(t, uid, parsed.UserID)
	require.Equal(t, "alice", parsed.Login)
	require.Equal(t, claims.JTI, parsed.JTI)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	m := token.New("secret", "issuer-test", time.Hour)
	raw, _, err := m.Issue(context.Background(), uuid.New(), "alice")
	require.NoError(t, err)

	other := token.New("another-secret", "issuer-test", time.Hour)
	_, err = other.Parse(context.Background(), raw)
	require.Error(t, err)
}

func TestParseRejectsForeignIssuer(t *testing.T) {
	foreign := token.New("secret", "some-other-service", time.Hour)
	raw, _, err := foreign.Issue(context.Background(), uuid.New(), "alice")
	require.NoError(t, err)

	// подпись совпадает, издатель — нет
	m := token.New("secret", "issuer-test", time.Hour)
	_, err = m.Parse(context.Background(), raw)
	require.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	m := token.New("secret", "issuer-test", -time.Minute)
	raw, _, err := m.Issue(context.Background(), uuid.New(), "alice")
	require.NoError(t, err)

	_, err = m.Parse(context.Background(), raw)
	require.Error(t, err)
}
