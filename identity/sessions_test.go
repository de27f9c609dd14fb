package identity

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	sessions := NewSessions("test-secret")

	cookie := sessions.Issue("user-123")
	userID, err := sessions.Verify(cookie)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestSessionRejectsTampering(t *testing.T) {
	sessions := NewSessions("test-secret")
	cookie := sessions.Issue("user-123")

	// swap the user id, keep the old signature
	parts := strings.Split(cookie, "|")
	require.Len(t, parts, 3)
	forged := "user-456|" + parts[1] + "|" + parts[2]

	_, err := sessions.Verify(forged)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionRejectsWrongSecret(t *testing.T) {
	cookie := NewSessions("secret-a").Issue("user-123")
	_, err := NewSessions("secret-b").Verify(cookie)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionRejectsExpired(t *testing.T) {
	sessions := NewSessions("test-secret")

	expired := time.Now().Add(-time.Hour).Unix()
	payload := fmt.Sprintf("user-123|%d", expired)
	cookie := payload + "|" + sessions.sign(payload)

	_, err := sessions.Verify(cookie)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionRejectsMalformed(t *testing.T) {
	sessions := NewSessions("test-secret")
	for _, cookie := range []string{"", "abc", "a|b", "a|b|c|d", "user|notanumber|sig"} {
		_, err := sessions.Verify(cookie)
		assert.ErrorIs(t, err, ErrInvalidSession, "cookie %q", cookie)
	}
}
