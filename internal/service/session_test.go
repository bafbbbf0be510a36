package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrina-solutions/storefront-service/internal/model"
)

func newTestSessions() *SessionService {
	verifier := &StaticVerifier{Email: "admin@example.com", Password: "password", Name: "Admin"}
	return NewSessionService([]byte("test-secret"), verifier, NewAuthStateNotifier())
}

func TestSession_EncodeDecodeRoundTrip(t *testing.T) {
	s := newTestSessions()
	id := model.UserIdentity{Email: "admin@example.com", Name: "Admin", TenantSlug: "acme"}

	token, err := s.Encode(id)
	require.NoError(t, err)

	decoded := s.Decode(token)
	require.NotNil(t, decoded)
	assert.Equal(t, id, *decoded)
}

func TestSession_DecodeRejectsTamperedToken(t *testing.T) {
	s := newTestSessions()
	token, err := s.Encode(model.UserIdentity{Email: "admin@example.com"})
	require.NoError(t, err)

	// Flip one character in the middle of each segment: header, payload
	// and signature alterations must all invalidate the token.
	segments := strings.Split(token, ".")
	require.Len(t, segments, 3)
	offset := 0
	for _, seg := range segments {
		i := offset + len(seg)/2
		altered := []byte(token)
		if altered[i] == 'x' {
			altered[i] = 'y'
		} else {
			altered[i] = 'x'
		}
		assert.Nil(t, s.Decode(string(altered)), "altered byte %d must invalidate the token", i)
		offset += len(seg) + 1
	}
}

func TestSession_DecodeRejectsExpiredToken(t *testing.T) {
	s := newTestSessions()
	s.now = func() time.Time { return time.Now().Add(-25 * time.Hour) }
	token, err := s.Encode(model.UserIdentity{Email: "admin@example.com"})
	require.NoError(t, err)

	s.now = time.Now
	assert.Nil(t, s.Decode(token))
}

func TestSession_DecodeRejectsGarbage(t *testing.T) {
	s := newTestSessions()
	assert.Nil(t, s.Decode(""))
	assert.Nil(t, s.Decode("not-a-token"))
	assert.Nil(t, s.Decode("a.b.c"))
}

func TestSession_RefreshSlidesExpiration(t *testing.T) {
	s := newTestSessions()
	s.now = func() time.Time { return time.Now().Add(-12 * time.Hour) }
	token, err := s.Encode(model.UserIdentity{Email: "admin@example.com", Name: "Admin"})
	require.NoError(t, err)

	s.now = time.Now
	fresh, id := s.Refresh(token)
	require.NotNil(t, id)
	require.NotEmpty(t, fresh)
	assert.Equal(t, "admin@example.com", id.Email)

	// The refreshed token must outlive the original's 24 h window.
	s.now = func() time.Time { return time.Now().Add(13 * time.Hour) }
	stillValid := s.Decode(fresh)
	assert.NotNil(t, stillValid)
}

func TestSession_RefreshIgnoresInvalidToken(t *testing.T) {
	s := newTestSessions()
	fresh, id := s.Refresh("garbage")
	assert.Empty(t, fresh)
	assert.Nil(t, id)
}

func TestLogin_Success(t *testing.T) {
	s := newTestSessions()
	result := s.Login(context.Background(), "admin@example.com", "password")

	require.True(t, result.Success)
	assert.Empty(t, result.Error)
	assert.Equal(t, "/dashboard", result.RedirectTo)

	decoded := s.Decode(result.Token)
	require.NotNil(t, decoded)
	assert.Equal(t, "admin@example.com", decoded.Email)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	s := newTestSessions()
	for _, pair := range [][2]string{
		{"admin@example.com", "wrong"},
		{"other@example.com", "password"},
		{"", ""},
	} {
		result := s.Login(context.Background(), pair[0], pair[1])
		assert.False(t, result.Success)
		assert.Equal(t, "Usuario o contraseña inválidos", result.Error)
		assert.Empty(t, result.Token, "no session may be issued on failure")
	}
}

func TestRegister_PasswordMismatch(t *testing.T) {
	s := newTestSessions()
	result := s.Register(context.Background(), RegisterInput{
		Email: "new@example.com", Password: "abc", ConfirmPassword: "abd",
	})
	assert.False(t, result.Success)
	assert.Empty(t, result.Token)
}

func TestRegister_LogsInImmediately(t *testing.T) {
	s := newTestSessions()
	result := s.Register(context.Background(), RegisterInput{
		Email: "new@example.com", Name: "Nueva", Password: "abc", ConfirmPassword: "abc",
	})
	require.True(t, result.Success)
	decoded := s.Decode(result.Token)
	require.NotNil(t, decoded)
	assert.Equal(t, "new@example.com", decoded.Email)
}

func TestCookies(t *testing.T) {
	s := newTestSessions()
	c := s.Cookie("tok")
	assert.Equal(t, SessionCookieName, c.Name)
	assert.True(t, c.HttpOnly)
	assert.WithinDuration(t, time.Now().Add(SessionTTL), c.Expires, time.Minute)

	expired := s.ExpiredCookie()
	assert.Empty(t, expired.Value)
	assert.True(t, expired.Expires.Before(time.Now()))
	assert.Equal(t, -1, expired.MaxAge)
}
