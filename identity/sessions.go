package identity

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SessionTTL is how long an issued session cookie stays valid.
const SessionTTL = 7 * 24 * time.Hour

var ErrInvalidSession = errors.New("identity: invalid session")

// Sessions signs and verifies stateless session cookies. The cookie value is
// userID|expiryUnix|signature, with the signature an HMAC-SHA256 over the
// first two parts. Nothing is stored server-side.
type Sessions struct {
	secret []byte
}

func NewSessions(secret string) *Sessions {
	return &Sessions{secret: []byte(secret)}
}

// Issue produces a signed cookie value for the user, valid for SessionTTL.
func (s *Sessions) Issue(userID string) string {
	expiry := time.Now().Add(SessionTTL).Unix()
	payload := fmt.Sprintf("%s|%d", userID, expiry)
	return payload + "|" + s.sign(payload)
}

// Verify checks signature and expiry and returns the user id. Tampered,
// malformed, and expired cookies all come back ErrInvalidSession.
func (s *Sessions) Verify(cookie string) (string, error) {
	parts := strings.Split(cookie, "|")
	if len(parts) != 3 {
		return "", ErrInvalidSession
	}
	payload := parts[0] + "|" + parts[1]
	if !hmac.Equal([]byte(s.sign(payload)), []byte(parts[2])) {
		return "", ErrInvalidSession
	}
	expiry, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || time.Now().Unix() > expiry {
		return "", ErrInvalidSession
	}
	return parts[0], nil
}

func (s *Sessions) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
