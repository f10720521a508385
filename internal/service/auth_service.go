package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"google.golang.org/api/idtoken"

	"github.com/voyago/voyago-backend/internal/domain"
	"github.com/voyago/voyago-backend/internal/repository/ports"
	"github.com/voyago/voyago-backend/internal/util"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyUsed   = errors.New("email already registered")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrInvalidGoogleToken = errors.New("invalid google token")
)

type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionRepository
	jwt      *util.JWTManager
	aud      string

	// validateIDToken is swappable in tests; defaults to idtoken.Validate.
	validateIDToken func(ctx context.Context, idTok, audience string) (*idtoken.Payload, error)
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionRepository, jwt *util.JWTManager, googleAudience string) *AuthService {
	return &AuthService{
		users:           users,
		sessions:        sessions,
		jwt:             jwt,
		aud:             googleAudience,
		validateIDToken: idtoken.Validate,
	}
}

type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

func (s *AuthService) RegisterWithEmail(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errors.New("email is required")
	}
	if err := util.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, salt, err := util.DerivePassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CreateEmailUser(ctx, email, hash, salt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailAlreadyUsed
		}
		return nil, err
	}
	return s.issueSession(ctx, user)
}

func (s *AuthService) LoginWithEmail(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !util.VerifyPassword(password, user.PasswordSalt, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.issueSession(ctx, user)
}

func (s *AuthService) LoginWithGoogle(ctx context.Context, idTok string) (*AuthResult, error) {
	payload, err := s.validateIDToken(ctx, idTok, s.aud)
	if err != nil {
		return nil, ErrInvalidGoogleToken
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, ErrInvalidGoogleToken
	}
	var fullName, imageURL *string
	if name, ok := payload.Claims["name"].(string); ok && name != "" {
		fullName = &name
	}
	if picture, ok := payload.Claims["picture"].(string); ok && picture != "" {
		imageURL = &picture
	}

	user, err := s.users.UpsertGoogleUser(ctx, strings.ToLower(email), fullName, imageURL)
	if err != nil {
		return nil, err
	}
	return s.issueSession(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	revoked, err := s.sessions.DeactivateSession(ctx, token)
	if err != nil {
		return err
	}
	if !revoked {
		return ErrInvalidSession
	}
	return nil
}

// Authenticate checks both the JWT signature and the backing session row, so
// a logged-out token is rejected before its expiry.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return nil, ErrInvalidSession
	}

	session, err := s.sessions.FindActiveSession(ctx, token)
	if err != nil || session == nil || !session.IsActive {
		return nil, ErrInvalidSession
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrInvalidSession
	}
	return user, nil
}

func (s *AuthService) issueSession(ctx context.Context, user *domain.User) (*AuthResult, error) {
	token, expiresAt, err := s.jwt.Generate(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	if _, err := s.sessions.CreateSession(ctx, user.ID, token, expiresAt); err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}
