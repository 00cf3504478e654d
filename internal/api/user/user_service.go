package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-user-directory/app/observability/metrics"
	"github.com/FACorreiaa/go-user-directory/internal/types"
)

// Ensure implementation satisfies the interface
var _ UserService = (*UserServiceImpl)(nil)

// UserService applies the authorization rules on top of the directory.
// Every method acts on behalf of the verified caller.
type UserService interface {
	// Create
	CreateUser(ctx context.Context, actor types.Actor, params types.CreateUserParams) (types.User, error)

	// Update
	UpdateName(ctx context.Context, actor types.Actor, login, newName string) error
	UpdateGender(ctx context.Context, actor types.Actor, login string, newGender types.Gender) error
	UpdateBirthday(ctx context.Context, actor types.Actor, login string, newBirthday time.Time) error
	UpdatePassword(ctx context.Context, actor types.Actor, login, newPassword string) error
	UpdateLogin(ctx context.Context, actor types.Actor, login, newLogin string) error

	// Read
	ListActive(ctx context.Context, actor types.Actor) ([]types.User, error)
	GetUser(ctx context.Context, actor types.Actor, login string) (types.User, error)
	GetOwnUser(ctx context.Context, actor types.Actor, login, password string) (types.User, error)
	ListOlderThan(ctx context.Context, actor types.Actor, ageYears int) ([]types.User, error)

	// Delete
	Revoke(ctx context.Context, actor types.Actor, login string) error
	HardDelete(ctx context.Context, actor types.Actor, login string) error
	Restore(ctx context.Context, actor types.Actor, login string) error
}

// UserServiceImpl provides the implementation for UserService.
type UserServiceImpl struct {
	logger  *slog.Logger
	repo    UserRepo
	metrics *metrics.AppMetrics
}

// NewUserService creates a new user service instance.
func NewUserService(repo UserRepo, m *metrics.AppMetrics, logger *slog.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		logger:  logger,
		repo:    repo,
		metrics: m,
	}
}

// op is the per-call instrumentation: a span, a scoped logger and the metric start time.
type op struct {
	name  string
	start time.Time
	span  trace.Span
	l     *slog.Logger
}

func (s *UserServiceImpl) begin(ctx context.Context, name string, actor types.Actor, target string) (context.Context, *op) {
	attrs := []attribute.KeyValue{
		attribute.String("actor.login", actor.Login),
		attribute.String("actor.role", actor.Role),
	}
	logAttrs := []any{slog.String("method", name), slog.String("actor", actor.Login)}
	if target != "" {
		attrs = append(attrs, attribute.String("user.login", target))
		logAttrs = append(logAttrs, slog.String("login", target))
	}
	ctx, span := otel.Tracer("UserService").Start(ctx, name, trace.WithAttributes(attrs...))
	o := &op{name: name, start: time.Now(), span: span, l: s.logger.With(logAttrs...)}
	o.l.DebugContext(ctx, "Starting operation")
	return ctx, o
}

// end records the outcome. Caller errors are logged at warn, anything else at error.
func (s *UserServiceImpl) end(ctx context.Context, o *op, err error) {
	defer o.span.End()
	s.metrics.RecordOperation(ctx, o.name, o.start, err)

	if err == nil {
		o.l.InfoContext(ctx, "Operation completed")
		o.span.SetStatus(codes.Ok, "")
		return
	}
	o.span.RecordError(err)
	o.span.SetStatus(codes.Error, types.ErrorKind(err))
	if types.ErrorKind(err) == "error" {
		o.l.ErrorContext(ctx, "Operation failed", slog.Any("error", err))
		return
	}
	o.l.WarnContext(ctx, "Operation rejected", slog.Any("error", err), slog.String("kind", types.ErrorKind(err)))
}

// requireAdmin passes only when the token says admin and the directory agrees
// that the caller is an active administrator.
func (s *UserServiceImpl) requireAdmin(actor types.Actor) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("%s is not an administrator: %w", actor.Login, types.ErrAccessDenied)
	}
	u, ok := s.repo.Lookup(actor.Login)
	if !ok || !u.IsAdmin || !u.IsActive() {
		return fmt.Errorf("%s is not an active administrator: %w", actor.Login, types.ErrAccessDenied)
	}
	return nil
}

// requireModify checks CanModify. An administrator addressing a missing login
// gets ErrNotFound; everyone else gets ErrAccessDenied so existence is not leaked.
func (s *UserServiceImpl) requireModify(actor types.Actor, login string) error {
	if s.repo.CanModify(actor.Login, login) {
		return nil
	}
	if _, exists := s.repo.Lookup(login); !exists && s.requireAdmin(actor) == nil {
		return fmt.Errorf("login %q: %w", login, types.ErrNotFound)
	}
	return fmt.Errorf("%s may not modify %s: %w", actor.Login, login, types.ErrAccessDenied)
}

// CreateUser adds a new user. Admin only.
func (s *UserServiceImpl) CreateUser(ctx context.Context, actor types.Actor, params types.CreateUserParams) (u types.User, err error) {
	ctx, o := s.begin(ctx, "CreateUser", actor, params.Login)
	defer func() { s.end(ctx, o, err) }()

	if err = s.requireAdmin(actor); err != nil {
		return types.User{}, err
	}
	return s.repo.CreateUser(params, actor.Login)
}

func (s *UserServiceImpl) UpdateName(ctx context.Context, actor types.Actor, login, newName string) (err error) {
	ctx, o := s.begin(ctx, "UpdateName", actor, login)
	defer func() { s.end(ctx, o, err) }()

	if err = s.requireModify(actor, login); err != nil {
		return err
	}
	return s.repo.UpdateName(login, newName, actor.Login)
}

func (s *UserServiceImpl) UpdateGender(ctx context.Context, actor types.Actor, login string, newGender types.Gender) (err error) {
	ctx, o := s.begin(ctx, "UpdateGender", actor, login)
	defer func() { s.end(ctx, o, err) }()

	if err = s.requireModify(actor, login); err != nil {
		return err
	}
	return s.repo.UpdateGender(login, newGender, actor.Login)
}

func (s *UserServiceImpl) UpdateBirthday(ctx context.Context, actor types.Actor, login string, newBirthday time.Time) (err error) {
	ctx, o := s.begin(ctx, "UpdateBirthday", actor, login)
	defer func() { s.end(ctx, o, err) }()

	if err = s.requireModify(actor, login); err != nil {
		return err
	}
	return s.repo.UpdateBirthday(login, newBirthday, actor.Login)
}

func (s *UserServiceImpl) UpdatePassword(ctx context.Context, actor types.Actor, login, newPassword string) (err error) {
	ctx, o := s.begin(ctx, "UpdatePassword", actor, login)
	defer func() { s.end(ctx, o, err) }()

	if err = s.requireModify(actor, login); err != nil {
		return err
	}
	return s.repo.UpdatePassword(login, newPassword, actor.Login)
}

// UpdateLogin renames a user. Tokens already issued for the old login stop
// matching any record and are rejected by the next authorization check.
func (s *UserServiceImpl) UpdateLogin(ctx context.Context, actor types.Actor, login, newLogin string) (err error) {
	ctx, o := s.begin(ctx, "UpdateLogin", actor, login)
	defer func() { s.end(ctx, o, err) }()

	if err = s.requireModify(actor, login); err != nil {
		return err
	}
	return s.repo.UpdateLogin(login, newLogin, actor.Login)
}

// ListActive returns all active users. Admin only.
func (s *UserServiceImpl) ListActive(ctx context.Context, actor types.Actor) (users []types.User, err error) {
	ctx, o := s.begin(ctx, "ListActive", actor, "")
	defer func() { s.end(ctx, o, err) }()

	if err = s.requireAdmin(actor); err != nil {
		return nil, err
	}
	users = s.repo.ListActive()
	o.l.DebugContext(ctx, "Listed active users", slog.Int("count", len(users)))
	return users, nil
}

// GetUser returns any record, active or revoked. Admin only.
func (s *UserServiceImpl) GetUser(ctx context.Context, actor types.Actor, login string) (u types.User, err error) {
	ctx, o := s.begin(ctx, "GetUser", actor, login)
	defer func() { s.end(ctx, o, err) }()

	if err = s.requireAdmin(actor); err != nil {
		return types.User{}, err
	}
	u, ok := s.repo.Lookup(login)
	if !ok {
		return types.User{}, fmt.Errorf("login %q: %w", login, types.ErrNotFound)
	}
	return u, nil
}

// GetOwnUser returns the caller's own record after re-checking the password.
func (s *UserServiceImpl) GetOwnUser(ctx context.Context, actor types.Actor, login, password string) (u types.User, err error) {
	ctx, o := s.begin(ctx, "GetOwnUser", actor, login)
	defer func() { s.end(ctx, o, err) }()

	if login != actor.Login {
		return types.User{}, fmt.Errorf("%s may only read own record: %w", actor.Login, types.ErrAccessDenied)
	}
	return s.repo.Authenticate(login, password)
}

// ListOlderThan returns active users older than ageYears. Admin only.
func (s *UserServiceImpl) ListOlderThan(ctx context.Context, actor types.Actor, ageYears int) (users []types.User, err error) {
	ctx, o := s.begin(ctx, "ListOlderThan", actor, "")
	defer func() { s.end(ctx, o, err) }()

	if err = s.requireAdmin(actor); err != nil {
		return nil, err
	}
	if ageYears < 0 {
		return nil, &types.ValidationError{Field: "age", Reason: "must not be negative"}
	}
	if ageYears > MaxAgeYears {
		return nil, &types.ValidationError{Field: "age", Reason: fmt.Sprintf("must not exceed %d", MaxAgeYears)}
	}
	return s.repo.ListActiveOlderThan(ageYears), nil
}

// Revoke soft-deletes a user. Admin only.
func (s *UserServiceImpl) Revoke(ctx context.Context, actor types.Actor, login string) (err error) {
	ctx, o := s.begin(ctx, "Revoke", actor, login)
	defer func() { s.end(ctx, o, err) }()

	if err = s.requireAdmin(actor); err != nil {
		return err
	}
	return s.repo.Revoke(login, actor.Login)
}

// HardDelete removes a user permanently. Admin only.
func (s *UserServiceImpl) HardDelete(ctx context.Context, actor types.Actor, login string) (err error) {
	ctx, o := s.begin(ctx, "HardDelete", actor, login)
	defer func() { s.end(ctx, o, err) }()

	if err = s.requireAdmin(actor); err != nil {
		return err
	}
	return s.repo.HardDelete(login)
}

// Restore clears a revocation. Admin only.
func (s *UserServiceImpl) Restore(ctx context.Context, actor types.Actor, login string) (err error) {
	ctx, o := s.begin(ctx, "Restore", actor, login)
	defer func() { s.end(ctx, o, err) }()

	if err = s.requireAdmin(actor); err != nil {
		return err
	}
	return s.repo.Restore(login)
}
