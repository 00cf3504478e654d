package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-user-directory/app/observability/metrics"
	"github.com/FACorreiaa/go-user-directory/config"
	"github.com/FACorreiaa/go-user-directory/internal/types"
)

var _ AuthService = (*AuthServiceImpl)(nil)

// Authenticator verifies credentials against the user directory.
type Authenticator interface {
	Authenticate(login, password string) (types.User, error)
}

type AuthService interface {
	Login(ctx context.Context, login, password, clientIP string) (*types.LoginResponse, error)
}

type AuthServiceImpl struct {
	logger   *slog.Logger
	users    Authenticator
	issuer   *TokenIssuer
	metrics  *metrics.AppMetrics
	failures *cache.Cache

	maxAttempts int
}

// NewAuthService wires the login flow. A non-positive MaxLoginAttempts disables throttling.
func NewAuthService(users Authenticator, issuer *TokenIssuer, sec config.SecurityConfig, m *metrics.AppMetrics, logger *slog.Logger) *AuthServiceImpl {
	window := sec.LockoutWindow
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &AuthServiceImpl{
		logger:      logger,
		users:       users,
		issuer:      issuer,
		metrics:     m,
		failures:    cache.New(window, 2*window),
		maxAttempts: sec.MaxLoginAttempts,
	}
}

// Login exchanges valid credentials for a signed access token. Failed attempts
// are counted per login and client address, so one client cannot lock an
// account out for everyone else.
func (s *AuthServiceImpl) Login(ctx context.Context, login, password, clientIP string) (resp *types.LoginResponse, err error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "Login", trace.WithAttributes(
		attribute.String("user.login", login),
		attribute.String("client.address", clientIP),
	))
	defer span.End()
	defer func() { s.metrics.RecordLogin(ctx, err) }()

	l := s.logger.With(slog.String("method", "Login"), slog.String("login", login), slog.String("client_ip", clientIP))
	l.DebugContext(ctx, "Attempting login")

	key := failureKey(login, clientIP)
	if s.lockedOut(key) {
		l.WarnContext(ctx, "Login rejected, too many failed attempts")
		span.SetStatus(codes.Error, "too many attempts")
		return nil, fmt.Errorf("login %q: %w", login, types.ErrTooManyAttempts)
	}

	user, err := s.users.Authenticate(login, password)
	if err != nil {
		s.recordFailure(key)
		l.WarnContext(ctx, "Invalid credentials", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid credentials")
		return nil, err
	}
	s.failures.Delete(key)

	token, expiresAt, err := s.issuer.IssueToken(user)
	if err != nil {
		l.ErrorContext(ctx, "Failed to issue token", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "token issue failed")
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	l.InfoContext(ctx, "User logged in", slog.String("role", user.Role()))
	span.SetStatus(codes.Ok, "logged in")
	return &types.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Login:     user.Login,
		Role:      user.Role(),
	}, nil
}

func failureKey(login, clientIP string) string {
	return login + "|" + clientIP
}

func (s *AuthServiceImpl) lockedOut(key string) bool {
	if s.maxAttempts <= 0 {
		return false
	}
	v, ok := s.failures.Get(key)
	if !ok {
		return false
	}
	count, _ := v.(int)
	return count >= s.maxAttempts
}

func (s *AuthServiceImpl) recordFailure(key string) {
	if s.maxAttempts <= 0 {
		return
	}
	if err := s.failures.Add(key, 1, cache.DefaultExpiration); err == nil {
		return
	}
	if _, err := s.failures.IncrementInt(key, 1); err != nil {
		// entry expired between Add and IncrementInt
		s.failures.Set(key, 1, cache.DefaultExpiration)
	}
}
