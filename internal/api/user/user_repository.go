package user

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/FACorreiaa/go-user-directory/internal/types"
)

const (
	// BootstrapAdminLogin is the seeded administrator that can never be removed.
	BootstrapAdminLogin = "admin"
	bootstrapAdminPass  = "admin"
	bootstrapAdminName  = "Administrator"
	systemLogin         = "system"

	// MaxAgeYears bounds ListActiveOlderThan. Larger values overflow the
	// cutoff date computed by time.AddDate.
	MaxAgeYears = 100000

	// dummyPassword is hashed once so unknown logins still pay for a bcrypt comparison.
	dummyPassword = "directory-dummy-password"
)

// Ensure implementation satisfies the interface
var _ UserRepo = (*UserDirectory)(nil)

// UserRepo is the authoritative in-memory set of user records keyed by login.
type UserRepo interface {
	CreateUser(params types.CreateUserParams, createdBy string) (types.User, error)
	UpdateLogin(login, newLogin, modifiedBy string) error
	UpdatePassword(login, newPassword, modifiedBy string) error
	UpdateName(login, newName, modifiedBy string) error
	UpdateGender(login string, newGender types.Gender, modifiedBy string) error
	UpdateBirthday(login string, newBirthday time.Time, modifiedBy string) error
	Revoke(login, revokedBy string) error
	Restore(login string) error
	HardDelete(login string) error
	Authenticate(login, password string) (types.User, error)
	Lookup(login string) (types.User, bool)
	ListActive() []types.User
	ListActiveOlderThan(ageYears int) []types.User
	CanModify(actingLogin, targetLogin string) bool
}

// UserDirectory keeps every record behind a single lock. Every read-modify-write
// sequence, including the re-key done by UpdateLogin, runs under the write lock.
type UserDirectory struct {
	mu    sync.RWMutex
	users map[string]*types.User

	bcryptCost int
	dummyHash  []byte
	now        func() time.Time
}

type DirectoryOption func(*UserDirectory)

// WithBcryptCost sets the cost used when hashing passwords.
func WithBcryptCost(cost int) DirectoryOption {
	return func(d *UserDirectory) {
		if cost != 0 {
			d.bcryptCost = cost
		}
	}
}

// WithClock replaces the time source. Returned times are converted to UTC.
func WithClock(now func() time.Time) DirectoryOption {
	return func(d *UserDirectory) {
		d.now = now
	}
}

// NewUserDirectory creates a directory seeded with the bootstrap administrator.
func NewUserDirectory(opts ...DirectoryOption) (*UserDirectory, error) {
	d := &UserDirectory{
		users:      make(map[string]*types.User),
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}

	dummy, err := d.hashPassword(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("init dummy hash: %w", err)
	}
	d.dummyHash = []byte(dummy)

	hash, err := d.hashPassword(bootstrapAdminPass)
	if err != nil {
		return nil, fmt.Errorf("seed bootstrap admin: %w", err)
	}
	d.users[BootstrapAdminLogin] = &types.User{
		ID:           uuid.New(),
		Login:        BootstrapAdminLogin,
		PasswordHash: hash,
		Name:         bootstrapAdminName,
		Gender:       types.GenderUnspecified,
		IsAdmin:      true,
		CreatedOn:    d.timestamp(),
		CreatedBy:    systemLogin,
	}
	return d, nil
}

func (d *UserDirectory) timestamp() time.Time {
	return d.now().UTC()
}

func (d *UserDirectory) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), d.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func notFound(login string) error {
	return fmt.Errorf("login %q: %w", login, types.ErrNotFound)
}

// CreateUser validates params and inserts a new record.
func (d *UserDirectory) CreateUser(params types.CreateUserParams, createdBy string) (types.User, error) {
	if err := validateCreate(params); err != nil {
		return types.User{}, err
	}
	// bcrypt is slow; hash before taking the lock.
	hash, err := d.hashPassword(params.Password)
	if err != nil {
		return types.User{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.users[params.Login]; exists {
		return types.User{}, fmt.Errorf("login %q: %w", params.Login, types.ErrDuplicateKey)
	}
	if _, ok := d.users[createdBy]; !ok {
		return types.User{}, notFound(createdBy)
	}

	u := &types.User{
		ID:           uuid.New(),
		Login:        params.Login,
		PasswordHash: hash,
		Name:         params.Name,
		Gender:       params.Gender,
		IsAdmin:      params.IsAdmin,
		CreatedOn:    d.timestamp(),
		CreatedBy:    createdBy,
	}
	if params.Birthday != nil {
		b := params.Birthday.UTC()
		u.Birthday = &b
	}
	d.users[u.Login] = u
	return u.Clone(), nil
}

// mutate applies fn to the record under login and stamps the modification.
// fn runs under the write lock and must not fail.
func (d *UserDirectory) mutate(login, modifiedBy string, fn func(u *types.User)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	u, ok := d.users[login]
	if !ok {
		return notFound(login)
	}
	if _, ok := d.users[modifiedBy]; !ok {
		return notFound(modifiedBy)
	}
	fn(u)
	d.stampModified(u, modifiedBy)
	return nil
}

func (d *UserDirectory) stampModified(u *types.User, modifiedBy string) {
	now := d.timestamp()
	u.ModifiedOn = &now
	u.ModifiedBy = modifiedBy
}

// UpdateLogin re-keys the record from login to newLogin in one critical section.
func (d *UserDirectory) UpdateLogin(login, newLogin, modifiedBy string) error {
	if err := validateLogin(newLogin); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	u, ok := d.users[login]
	if !ok {
		return notFound(login)
	}
	if login == BootstrapAdminLogin {
		return fmt.Errorf("rename %q: %w", login, types.ErrForbidden)
	}
	if _, ok := d.users[modifiedBy]; !ok {
		return notFound(modifiedBy)
	}
	if _, taken := d.users[newLogin]; taken {
		return fmt.Errorf("login %q: %w", newLogin, types.ErrDuplicateKey)
	}

	delete(d.users, login)
	u.Login = newLogin
	d.stampModified(u, modifiedBy)
	d.users[newLogin] = u
	return nil
}

func (d *UserDirectory) UpdatePassword(login, newPassword, modifiedBy string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	hash, err := d.hashPassword(newPassword)
	if err != nil {
		return err
	}
	return d.mutate(login, modifiedBy, func(u *types.User) {
		u.PasswordHash = hash
	})
}

func (d *UserDirectory) UpdateName(login, newName, modifiedBy string) error {
	if err := validateName(newName); err != nil {
		return err
	}
	return d.mutate(login, modifiedBy, func(u *types.User) {
		u.Name = newName
	})
}

func (d *UserDirectory) UpdateGender(login string, newGender types.Gender, modifiedBy string) error {
	if err := validateGender(newGender); err != nil {
		return err
	}
	return d.mutate(login, modifiedBy, func(u *types.User) {
		u.Gender = newGender
	})
}

func (d *UserDirectory) UpdateBirthday(login string, newBirthday time.Time, modifiedBy string) error {
	b := newBirthday.UTC()
	return d.mutate(login, modifiedBy, func(u *types.User) {
		u.Birthday = &b
	})
}

// Revoke soft-deletes a user by stamping the revocation fields.
func (d *UserDirectory) Revoke(login, revokedBy string) error {
	if login == BootstrapAdminLogin {
		return fmt.Errorf("revoke %q: %w", login, types.ErrForbidden)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	u, ok := d.users[login]
	if !ok {
		return notFound(login)
	}
	if _, ok := d.users[revokedBy]; !ok {
		return notFound(revokedBy)
	}
	now := d.timestamp()
	u.RevokedOn = &now
	u.RevokedBy = revokedBy
	return nil
}

// Restore clears the revocation fields. Restoring an active user is a no-op.
func (d *UserDirectory) Restore(login string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	u, ok := d.users[login]
	if !ok {
		return notFound(login)
	}
	u.RevokedOn = nil
	u.RevokedBy = ""
	return nil
}

// HardDelete removes the record permanently.
func (d *UserDirectory) HardDelete(login string) error {
	if login == BootstrapAdminLogin {
		return fmt.Errorf("delete %q: %w", login, types.ErrForbidden)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.users[login]; !ok {
		return notFound(login)
	}
	delete(d.users, login)
	return nil
}

// Authenticate returns the user when login exists, the password matches and
// the account is active. Every failure is reported as ErrUnauthenticated.
func (d *UserDirectory) Authenticate(login, password string) (types.User, error) {
	u, ok := d.Lookup(login)
	if !ok {
		// keep the response time of unknown logins in line with wrong passwords
		_ = bcrypt.CompareHashAndPassword(d.dummyHash, []byte(password))
		return types.User{}, fmt.Errorf("unknown login: %w", types.ErrUnauthenticated)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return types.User{}, fmt.Errorf("password mismatch: %w", types.ErrUnauthenticated)
	}
	if !u.IsActive() {
		return types.User{}, fmt.Errorf("account revoked: %w", types.ErrUnauthenticated)
	}
	return u, nil
}

// Lookup returns a copy of the record under login. No policy is applied.
func (d *UserDirectory) Lookup(login string) (types.User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	u, ok := d.users[login]
	if !ok {
		return types.User{}, false
	}
	return u.Clone(), true
}

// ListActive returns active users ordered by creation time.
func (d *UserDirectory) ListActive() []types.User {
	return d.collect(func(u *types.User) bool {
		return u.IsActive()
	})
}

// ListActiveOlderThan returns active users born strictly before now minus ageYears.
// Users without a birthday are excluded, and so is everyone when ageYears
// is negative or above MaxAgeYears.
func (d *UserDirectory) ListActiveOlderThan(ageYears int) []types.User {
	if ageYears < 0 || ageYears > MaxAgeYears {
		return []types.User{}
	}
	threshold := d.timestamp().AddDate(-ageYears, 0, 0)
	return d.collect(func(u *types.User) bool {
		return u.IsActive() && u.Birthday != nil && u.Birthday.Before(threshold)
	})
}

func (d *UserDirectory) collect(keep func(u *types.User) bool) []types.User {
	d.mu.RLock()
	out := make([]types.User, 0, len(d.users))
	for _, u := range d.users {
		if keep(u) {
			out = append(out, u.Clone())
		}
	}
	d.mu.RUnlock()

	slices.SortFunc(out, func(a, b types.User) int {
		if c := a.CreatedOn.Compare(b.CreatedOn); c != 0 {
			return c
		}
		return strings.Compare(a.Login, b.Login)
	})
	return out
}

// CanModify reports whether actingLogin may change targetLogin. Admins may change
// anyone; other users only themselves and only while active. Unknown logins yield false.
func (d *UserDirectory) CanModify(actingLogin, targetLogin string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	actor, ok := d.users[actingLogin]
	if !ok {
		return false
	}
	target, ok := d.users[targetLogin]
	if !ok {
		return false
	}
	if actor.IsAdmin {
		return true
	}
	return actingLogin == targetLogin && target.IsActive()
}
