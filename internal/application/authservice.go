// Package application contains use-case orchestration services.
package application

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ericfisherdev/iocpanel/internal/domain/model"
	"github.com/ericfisherdev/iocpanel/internal/domain/port/driven"
)

// ErrInvalidCredentials is returned for every failed login. It deliberately does
// not say whether the username or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

// FallbackUserID is the user id given to sessions created from the fallback credential.
const FallbackUserID int64 = 0

// DefaultSessionTTL applies when AuthOptions.SessionTTL is not set.
const DefaultSessionTTL = 24 * time.Hour

// FallbackCredential is the built-in username/password pair accepted when no
// stored user matches the submitted username.
type FallbackCredential struct {
	Enabled  bool
	Username string
	Password string
}

// AuthOptions configures an AuthService.
type AuthOptions struct {
	SessionTTL time.Duration
	Fallback   FallbackCredential
}

// AuthService verifies credentials, creates sessions, and decides whether a
// session token grants access to protected pages.
type AuthService struct {
	users    driven.UserStore
	sessions driven.SessionStore
	ttl      time.Duration
	fallback FallbackCredential
	logger   *slog.Logger
	now      func() time.Time
}

// NewAuthService creates a new AuthService with the required dependencies.
func NewAuthService(users driven.UserStore, sessions driven.SessionStore, opts AuthOptions, logger *slog.Logger) *AuthService {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &AuthService{
		users:    users,
		sessions: sessions,
		ttl:      ttl,
		fallback: opts.Fallback,
		logger:   logger,
		now:      time.Now,
	}
}

// Fallback returns the configured fallback credential, for the login page hint.
func (s *AuthService) Fallback() FallbackCredential {
	return s.fallback
}

// VerifyCredentials checks a username/password pair.
//
// A stored user is checked against its bcrypt hash and nothing else. The
// fallback pair is only consulted when no stored user has that username, or
// when cpanel_users does not exist. Any other store error is returned wrapped.
func (s *AuthService) VerifyCredentials(ctx context.Context, username, password string) (model.Principal, error) {
	user, err := s.users.GetByUsername(ctx, username)
	switch {
	case errors.Is(err, driven.ErrTableMissing):
		s.logger.Debug("user table missing, using fallback credential")
		return s.verifyFallback(username, password)
	case err != nil:
		return model.Principal{}, fmt.Errorf("look up user: %w", err)
	case user == nil:
		return s.verifyFallback(username, password)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.Warn("unusable password hash", "username", user.Username, "error", err)
		}
		return model.Principal{}, ErrInvalidCredentials
	}

	return model.Principal{UserID: user.ID, Username: user.Username, Role: user.Role}, nil
}

func (s *AuthService) verifyFallback(username, password string) (model.Principal, error) {
	if !s.fallback.Enabled {
		return model.Principal{}, ErrInvalidCredentials
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.fallback.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.fallback.Password)) == 1
	if !userOK || !passOK {
		return model.Principal{}, ErrInvalidCredentials
	}

	s.logger.Warn("login accepted with fallback credential", "username", username)
	return model.Principal{UserID: FallbackUserID, Username: username, Role: model.RoleSuperAdmin}, nil
}

// Login verifies the credentials and, on success, stores and returns a new session.
func (s *AuthService) Login(ctx context.Context, username, password string) (model.Session, error) {
	principal, err := s.VerifyCredentials(ctx, username, password)
	if err != nil {
		return model.Session{}, err
	}

	now := s.now().UTC()
	session := model.Session{
		ID:        uuid.NewString(),
		UserID:    principal.UserID,
		Username:  principal.Username,
		Role:      principal.Role,
		LoggedIn:  true,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return model.Session{}, fmt.Errorf("store session: %w", err)
	}

	s.logger.Info("login succeeded", "username", session.Username, "role", session.Role)
	return session, nil
}

// Check decides whether the session token grants access. An error is returned
// only when the session store itself fails.
func (s *AuthService) Check(ctx context.Context, token string) (Decision, error) {
	if token == "" {
		return Unauthorized{Reason: ReasonNoSession}, nil
	}

	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil {
		return Unauthorized{Reason: ReasonUnknown}, nil
	}
	if !session.LoggedIn {
		return Unauthorized{Reason: ReasonNotLoggedIn}, nil
	}
	if session.Expired(s.now()) {
		if err := s.sessions.Delete(ctx, session.ID); err != nil {
			s.logger.Warn("failed to delete expired session", "error", err)
		}
		return Unauthorized{Reason: ReasonExpired}, nil
	}

	return Authorized{Session: *session}, nil
}

// Logout destroys the session. An empty token is a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// PurgeExpired removes every expired session and returns the number removed.
func (s *AuthService) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.sessions.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	return n, nil
}
