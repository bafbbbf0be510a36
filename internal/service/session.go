package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog/log"

	"github.com/vitrina-solutions/storefront-service/internal/model"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "session"

// SessionTTL is the sliding lifetime of a session. Every matched request
// re-signs the token with the expiration pushed this far forward.
const SessionTTL = 24 * time.Hour

// ErrInvalidCredentials is returned by verifiers when the pair does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// invalidCredentialsMsg is the user-facing login failure message.
const invalidCredentialsMsg = "Usuario o contraseña inválidos"

// CredentialVerifier checks a login pair and returns the identity it
// proves. Implementations must return ErrInvalidCredentials for a
// mismatch and reserve other errors for transport failure.
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string) (*model.UserIdentity, error)
}

// StaticVerifier verifies against a single configured credential pair.
// It stands in for a password-hash store or an identity provider.
type StaticVerifier struct {
	Email    string
	Password string
	Name     string
}

func (v *StaticVerifier) Verify(_ context.Context, email, password string) (*model.UserIdentity, error) {
	if email != v.Email || password != v.Password {
		return nil, ErrInvalidCredentials
	}
	return &model.UserIdentity{Email: v.Email, Name: v.Name}, nil
}

type sessionClaims struct {
	Name       string `json:"name,omitempty"`
	TenantSlug string `json:"tenant_slug,omitempty"`
	jwt.RegisteredClaims
}

// LoginResult is the outcome of a login or register attempt. On success
// Token holds the freshly signed session value and RedirectTo the
// post-login location; on failure Error carries the user-facing message.
type LoginResult struct {
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
	Token      string `json:"-"`
	RedirectTo string `json:"-"`
}

// RegisterInput is the public registration form payload.
type RegisterInput struct {
	Email           string
	Name            string
	Password        string
	ConfirmPassword string
}

// SessionService signs and verifies session tokens and drives the
// login, register, logout and refresh flows.
type SessionService struct {
	secret   []byte
	verifier CredentialVerifier
	notifier *AuthStateNotifier

	now func() time.Time
}

func NewSessionService(secret []byte, verifier CredentialVerifier, notifier *AuthStateNotifier) *SessionService {
	return &SessionService{
		secret:   secret,
		verifier: verifier,
		notifier: notifier,
		now:      time.Now,
	}
}

// Encode signs the identity into a compact token expiring SessionTTL
// from now.
func (s *SessionService) Encode(id model.UserIdentity) (string, error) {
	now := s.now()
	claims := sessionClaims{
		Name:       id.Name,
		TenantSlug: id.TenantSlug,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Decode verifies the token's signature and expiration and returns the
// carried identity, or nil on any failure. It never returns an error:
// an expired, tampered or malformed token reads as "no session".
func (s *SessionService) Decode(token string) *model.UserIdentity {
	if token == "" {
		return nil
	}
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil
	}
	return &model.UserIdentity{
		Email:      claims.Subject,
		Name:       claims.Name,
		TenantSlug: claims.TenantSlug,
	}
}

// Refresh re-signs a valid token with the expiration pushed SessionTTL
// forward from now. Invalid tokens return ("", nil) and pass through
// unmodified at the call site.
func (s *SessionService) Refresh(token string) (string, *model.UserIdentity) {
	id := s.Decode(token)
	if id == nil {
		return "", nil
	}
	fresh, err := s.Encode(*id)
	if err != nil {
		log.Error().Err(err).Msg("session refresh failed")
		return "", nil
	}
	return fresh, id
}

// Login verifies the pair and, on success, issues a session and the
// /dashboard redirect. A mismatch yields the user-facing message and no
// cookie; a verifier transport failure is reported the same way but
// logged at error level.
func (s *SessionService) Login(ctx context.Context, email, password string) LoginResult {
	id, err := s.verifier.Verify(ctx, email, password)
	if err != nil {
		if !errors.Is(err, ErrInvalidCredentials) {
			log.Error().Err(err).Msg("credential verification failed")
		}
		return LoginResult{Success: false, Error: invalidCredentialsMsg}
	}

	token, err := s.Encode(*id)
	if err != nil {
		log.Error().Err(err).Msg("session signing failed")
		return LoginResult{Success: false, Error: invalidCredentialsMsg}
	}

	s.notifier.publish(id)
	return LoginResult{Success: true, Token: token, RedirectTo: "/dashboard"}
}

// Register validates the form locally and logs the new user straight in
// with a fresh session. Account persistence is out of scope; the flow
// only mints the session.
func (s *SessionService) Register(ctx context.Context, in RegisterInput) LoginResult {
	if in.Email == "" || in.Password == "" {
		return LoginResult{Success: false, Error: "Correo y contraseña son obligatorios"}
	}
	if in.Password != in.ConfirmPassword {
		return LoginResult{Success: false, Error: "Las contraseñas no coinciden"}
	}

	id := model.UserIdentity{Email: in.Email, Name: in.Name}
	token, err := s.Encode(id)
	if err != nil {
		log.Error().Err(err).Msg("session signing failed")
		return LoginResult{Success: false, Error: invalidCredentialsMsg}
	}

	s.notifier.publish(&id)
	return LoginResult{Success: true, Token: token, RedirectTo: "/dashboard"}
}

// Logout publishes the signed-out state. The cookie overwrite happens at
// the HTTP layer via ExpiredCookie.
func (s *SessionService) Logout() {
	s.notifier.publish(nil)
}

// Cookie wraps a token in the session cookie with a 24 h expiry.
func (s *SessionService) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  s.now().Add(SessionTTL),
	}
}

// ExpiredCookie overwrites the session with an empty, already-expired value.
func (s *SessionService) ExpiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	}
}
