package user

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/FACorreiaa/go-user-directory/internal/types"
)

// fakeClock advances by one second on every call so creation order is stable.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func newTestDirectory(t *testing.T) (*UserDirectory, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	d, err := NewUserDirectory(WithBcryptCost(bcrypt.MinCost), WithClock(clock.Now))
	require.NoError(t, err)
	return d, clock
}

func mustCreate(t *testing.T, d *UserDirectory, login string, opts ...func(p *types.CreateUserParams)) types.User {
	t.Helper()
	p := types.CreateUserParams{
		Login:    login,
		Password: "secret1",
		Name:     "John",
		Gender:   types.GenderMale,
	}
	for _, o := range opts {
		o(&p)
	}
	u, err := d.CreateUser(p, BootstrapAdminLogin)
	require.NoError(t, err)
	return u
}

func bornYearsAgo(clock *fakeClock, years int) func(p *types.CreateUserParams) {
	return func(p *types.CreateUserParams) {
		b := clock.now.AddDate(-years, 0, 0)
		p.Birthday = &b
	}
}

func TestNewUserDirectory_SeedsBootstrapAdmin(t *testing.T) {
	d, _ := newTestDirectory(t)

	admin, ok := d.Lookup(BootstrapAdminLogin)
	require.True(t, ok)
	assert.True(t, admin.IsAdmin)
	assert.True(t, admin.IsActive())
	assert.Equal(t, "system", admin.CreatedBy)
	assert.Equal(t, "Administrator", admin.Name)
	assert.NotEqual(t, "admin", admin.PasswordHash, "password must be stored hashed")

	_, err := d.Authenticate("admin", "admin")
	assert.NoError(t, err)
}

func TestCreateUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		d, _ := newTestDirectory(t)
		u := mustCreate(t, d, "alice")

		got, ok := d.Lookup("alice")
		require.True(t, ok)
		assert.Equal(t, u.ID, got.ID)
		assert.True(t, got.IsActive())
		assert.Nil(t, got.RevokedOn)
		assert.Empty(t, got.RevokedBy)
		assert.Nil(t, got.ModifiedOn)
		assert.Equal(t, "admin", got.CreatedBy)
		assert.Equal(t, time.UTC, got.CreatedOn.Location())
	})

	t.Run("DuplicateLogin", func(t *testing.T) {
		d, _ := newTestDirectory(t)
		first := mustCreate(t, d, "alice")

		_, err := d.CreateUser(types.CreateUserParams{Login: "alice", Password: "other1", Name: "Alice"}, "admin")
		assert.ErrorIs(t, err, types.ErrDuplicateKey)

		got, ok := d.Lookup("alice")
		require.True(t, ok)
		assert.Equal(t, first.ID, got.ID)
		assert.Equal(t, "John", got.Name)
	})

	t.Run("UnknownCreator", func(t *testing.T) {
		d, _ := newTestDirectory(t)
		_, err := d.CreateUser(types.CreateUserParams{Login: "alice", Password: "p1", Name: "Alice"}, "ghost")
		assert.ErrorIs(t, err, types.ErrNotFound)
		_, ok := d.Lookup("alice")
		assert.False(t, ok)
	})

	invalid := []struct {
		name   string
		params types.CreateUserParams
		field  string
	}{
		{"EmptyLogin", types.CreateUserParams{Login: "", Password: "p1", Name: "Ann"}, "login"},
		{"LoginWithSymbols", types.CreateUserParams{Login: "a-b", Password: "p1", Name: "Ann"}, "login"},
		{"CyrillicLogin", types.CreateUserParams{Login: "иван", Password: "p1", Name: "Ann"}, "login"},
		{"EmptyPassword", types.CreateUserParams{Login: "ann", Password: "", Name: "Ann"}, "password"},
		{"PasswordWithSpace", types.CreateUserParams{Login: "ann", Password: "p 1", Name: "Ann"}, "password"},
		{"EmptyName", types.CreateUserParams{Login: "ann", Password: "p1", Name: ""}, "name"},
		{"NameWithDigits", types.CreateUserParams{Login: "ann", Password: "p1", Name: "John123"}, "name"},
		{"NameWithSpace", types.CreateUserParams{Login: "ann", Password: "p1", Name: "John Smith"}, "name"},
		{"GenderTooHigh", types.CreateUserParams{Login: "ann", Password: "p1", Name: "Ann", Gender: 3}, "gender"},
		{"GenderNegative", types.CreateUserParams{Login: "ann", Password: "p1", Name: "Ann", Gender: -1}, "gender"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := newTestDirectory(t)
			_, err := d.CreateUser(tt.params, "admin")
			require.ErrorIs(t, err, types.ErrValidation)

			var verr *types.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Len(t, d.ListActive(), 1, "directory must be unchanged")
		})
	}

	t.Run("LatinAndCyrillicNames", func(t *testing.T) {
		d, _ := newTestDirectory(t)
		for i, name := range []string{"Иван", "John", "Ёжик", "ИванJohn"} {
			_, err := d.CreateUser(types.CreateUserParams{
				Login: fmt.Sprintf("user%d", i), Password: "p1", Name: name,
			}, "admin")
			assert.NoError(t, err, name)
		}
	})
}

func TestCreateUser_ConcurrentSameLogin(t *testing.T) {
	d, _ := newTestDirectory(t)

	const workers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		dupes     int
	)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := d.CreateUser(types.CreateUserParams{Login: "race", Password: "p1", Name: "Race"}, "admin")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, types.ErrDuplicateKey):
				dupes++
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, dupes)
	assert.Len(t, d.ListActive(), 2)
}

func TestUpdateLogin(t *testing.T) {
	t.Run("RekeysRecord", func(t *testing.T) {
		d, _ := newTestDirectory(t)
		alice := mustCreate(t, d, "alice")

		require.NoError(t, d.UpdateLogin("alice", "bob", "admin"))

		_, ok := d.Lookup("alice")
		assert.False(t, ok)
		bob, ok := d.Lookup("bob")
		require.True(t, ok)
		assert.Equal(t, alice.ID, bob.ID)
		assert.Equal(t, "bob", bob.Login)
		require.NotNil(t, bob.ModifiedOn)
		assert.Equal(t, "admin", bob.ModifiedBy)
	})

	t.Run("OntoExistingLogin", func(t *testing.T) {
		d, _ := newTestDirectory(t)
		alice := mustCreate(t, d, "alice")
		bob := mustCreate(t, d, "bob", func(p *types.CreateUserParams) { p.Name = "Bob" })

		err := d.UpdateLogin("alice", "bob", "admin")
		assert.ErrorIs(t, err, types.ErrDuplicateKey)

		gotAlice, ok := d.Lookup("alice")
		require.True(t, ok)
		assert.Equal(t, alice, gotAlice)
		gotBob, ok := d.Lookup("bob")
		require.True(t, ok)
		assert.Equal(t, bob, gotBob)
	})

	t.Run("SameLogin", func(t *testing.T) {
		d, _ := newTestDirectory(t)
		mustCreate(t, d, "alice")
		assert.ErrorIs(t, d.UpdateLogin("alice", "alice", "admin"), types.ErrDuplicateKey)
	})

	t.Run("InvalidNewLogin", func(t *testing.T) {
		d, _ := newTestDirectory(t)
		mustCreate(t, d, "alice")
		assert.ErrorIs(t, d.UpdateLogin("alice", "al ice", "admin"), types.ErrValidation)
		_, ok := d.Lookup("alice")
		assert.True(t, ok)
	})

	t.Run("NotFound", func(t *testing.T) {
		d, _ := newTestDirectory(t)
		assert.ErrorIs(t, d.UpdateLogin("ghost", "bob", "admin"), types.ErrNotFound)
	})

	t.Run("BootstrapAdminCannotBeRenamed", func(t *testing.T) {
		d, _ := newTestDirectory(t)
		assert.ErrorIs(t, d.UpdateLogin("admin", "root", "admin"), types.ErrForbidden)
		_, ok := d.Lookup("admin")
		assert.True(t, ok)
	})

	t.Run("ConcurrentRenamesNeverLoseRecords", func(t *testing.T) {
		d, _ := newTestDirectory(t)
		mustCreate(t, d, "a0")
		mustCreate(t, d, "b0")

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(2)
			go func(i int) {
				defer wg.Done()
				_ = d.UpdateLogin(fmt.Sprintf("a%d", i), fmt.Sprintf("a%d", i+1), "admin")
			}(i)
			go func(i int) {
				defer wg.Done()
				_ = d.UpdateLogin(fmt.Sprintf("b%d", i), fmt.Sprintf("a%d", i), "admin")
			}(i)
		}
		wg.Wait()

		// Whatever the interleaving, both records survive under distinct keys.
		assert.Len(t, d.ListActive(), 3)
	})
}

func TestFieldUpdates(t *testing.T) {
	d, clock := newTestDirectory(t)
	mustCreate(t, d, "alice")

	t.Run("Name", func(t *testing.T) {
		require.NoError(t, d.UpdateName("alice", "Алиса", "alice"))
		u, _ := d.Lookup("alice")
		assert.Equal(t, "Алиса", u.Name)
		assert.Equal(t, "alice", u.ModifiedBy)
		assert.NotNil(t, u.ModifiedOn)

		assert.ErrorIs(t, d.UpdateName("alice", "Alice1", "admin"), types.ErrValidation)
		u, _ = d.Lookup("alice")
		assert.Equal(t, "Алиса", u.Name)
	})

	t.Run("Password", func(t *testing.T) {
		require.NoError(t, d.UpdatePassword("alice", "newpass2", "admin"))
		_, err := d.Authenticate("alice", "secret1")
		assert.ErrorIs(t, err, types.ErrUnauthenticated)
		_, err = d.Authenticate("alice", "newpass2")
		assert.NoError(t, err)

		assert.ErrorIs(t, d.UpdatePassword("alice", "bad pass", "admin"), types.ErrValidation)
	})

	t.Run("Gender", func(t *testing.T) {
		require.NoError(t, d.UpdateGender("alice", types.GenderFemale, "admin"))
		u, _ := d.Lookup("alice")
		assert.Equal(t, types.GenderFemale, u.Gender)

		assert.ErrorIs(t, d.UpdateGender("alice", 7, "admin"), types.ErrValidation)
	})

	t.Run("Birthday", func(t *testing.T) {
		b := time.Date(1990, 5, 17, 0, 0, 0, 0, time.FixedZone("MSK", 3*3600))
		require.NoError(t, d.UpdateBirthday("alice", b, "admin"))
		u, _ := d.Lookup("alice")
		require.NotNil(t, u.Birthday)
		assert.True(t, b.Equal(*u.Birthday))
		assert.Equal(t, time.UTC, u.Birthday.Location())
		assert.Equal(t, "admin", u.ModifiedBy)
	})

	t.Run("StampsModificationTime", func(t *testing.T) {
		before, _ := d.Lookup("alice")
		require.NoError(t, d.UpdateName("alice", "Alice", "admin"))
		after, _ := d.Lookup("alice")
		assert.True(t, after.ModifiedOn.After(*before.ModifiedOn))
		assert.False(t, after.ModifiedOn.After(clock.now))
	})

	t.Run("NotFound", func(t *testing.T) {
		assert.ErrorIs(t, d.UpdateName("ghost", "Ghost", "admin"), types.ErrNotFound)
		assert.ErrorIs(t, d.UpdatePassword("ghost", "p1", "admin"), types.ErrNotFound)
		assert.ErrorIs(t, d.UpdateGender("ghost", 1, "admin"), types.ErrNotFound)
		assert.ErrorIs(t, d.UpdateBirthday("ghost", time.Now(), "admin"), types.ErrNotFound)
	})

	t.Run("UnknownModifier", func(t *testing.T) {
		before, _ := d.Lookup("alice")
		assert.ErrorIs(t, d.UpdateName("alice", "Bob", "ghost"), types.ErrNotFound)
		after, _ := d.Lookup("alice")
		assert.Equal(t, before, after)
	})
}

func TestRevokeRestore(t *testing.T) {
	d, _ := newTestDirectory(t)
	mustCreate(t, d, "bob")

	t.Run("BootstrapAdminIsProtected", func(t *testing.T) {
		assert.ErrorIs(t, d.Revoke("admin", "admin"), types.ErrForbidden)
		admin, _ := d.Lookup("admin")
		assert.True(t, admin.IsActive())
	})

	t.Run("RevokeBlocksLogin", func(t *testing.T) {
		require.NoError(t, d.Revoke("bob", "admin"))
		u, ok := d.Lookup("bob")
		require.True(t, ok, "revoke keeps the record")
		assert.False(t, u.IsActive())
		assert.Equal(t, "admin", u.RevokedBy)

		_, err := d.Authenticate("bob", "secret1")
		assert.ErrorIs(t, err, types.ErrUnauthenticated)
		assert.Len(t, d.ListActive(), 1)
	})

	t.Run("RestoreAllowsLogin", func(t *testing.T) {
		require.NoError(t, d.Restore("bob"))
		u, _ := d.Lookup("bob")
		assert.True(t, u.IsActive())
		assert.Empty(t, u.RevokedBy)

		_, err := d.Authenticate("bob", "secret1")
		assert.NoError(t, err)
	})

	t.Run("RestoreIsIdempotent", func(t *testing.T) {
		assert.NoError(t, d.Restore("bob"))
		assert.NoError(t, d.Restore("admin"))
	})

	t.Run("NotFound", func(t *testing.T) {
		assert.ErrorIs(t, d.Revoke("ghost", "admin"), types.ErrNotFound)
		assert.ErrorIs(t, d.Restore("ghost"), types.ErrNotFound)
	})

	t.Run("UnknownRevoker", func(t *testing.T) {
		assert.ErrorIs(t, d.Revoke("bob", "ghost"), types.ErrNotFound)
		u, _ := d.Lookup("bob")
		assert.True(t, u.IsActive(), "failed revoke leaves the record untouched")
	})
}

func TestHardDelete(t *testing.T) {
	d, _ := newTestDirectory(t)
	mustCreate(t, d, "bob")

	assert.ErrorIs(t, d.HardDelete("admin"), types.ErrForbidden)
	_, ok := d.Lookup("admin")
	assert.True(t, ok)

	require.NoError(t, d.HardDelete("bob"))
	_, ok = d.Lookup("bob")
	assert.False(t, ok)
	assert.ErrorIs(t, d.HardDelete("bob"), types.ErrNotFound)
	assert.ErrorIs(t, d.Restore("bob"), types.ErrNotFound)

	// the login becomes free again
	mustCreate(t, d, "bob")
}

func TestAuthenticate(t *testing.T) {
	d, _ := newTestDirectory(t)
	mustCreate(t, d, "carol")

	u, err := d.Authenticate("carol", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "carol", u.Login)

	_, err = d.Authenticate("carol", "wrong1")
	assert.ErrorIs(t, err, types.ErrUnauthenticated)
	_, err = d.Authenticate("nobody", "secret1")
	assert.ErrorIs(t, err, types.ErrUnauthenticated)
}

func TestAuthenticate_UnknownLoginComparesDummyHash(t *testing.T) {
	d, err := NewUserDirectory(WithBcryptCost(bcrypt.MinCost + 1))
	require.NoError(t, err)

	cost, err := bcrypt.Cost(d.dummyHash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost+1, cost, "dummy hash uses the configured cost")

	_, err = d.Authenticate("nobody", dummyPassword)
	assert.ErrorIs(t, err, types.ErrUnauthenticated, "the dummy password never authenticates")
}

func TestListActive_OrderedByCreation(t *testing.T) {
	d, _ := newTestDirectory(t)
	mustCreate(t, d, "zed")
	mustCreate(t, d, "amy")
	mustCreate(t, d, "kim")

	var logins []string
	for _, u := range d.ListActive() {
		logins = append(logins, u.Login)
	}
	assert.Equal(t, []string{"admin", "zed", "amy", "kim"}, logins)
}

func TestListActiveOlderThan(t *testing.T) {
	d, clock := newTestDirectory(t)
	mustCreate(t, d, "nobirthday")
	mustCreate(t, d, "revoked40", bornYearsAgo(clock, 40))
	mustCreate(t, d, "active40", bornYearsAgo(clock, 40))
	mustCreate(t, d, "young20", bornYearsAgo(clock, 20))
	require.NoError(t, d.Revoke("revoked40", "admin"))

	got := d.ListActiveOlderThan(30)
	require.Len(t, got, 1)
	assert.Equal(t, "active40", got[0].Login)

	assert.Len(t, d.ListActiveOlderThan(10), 2)
	assert.Empty(t, d.ListActiveOlderThan(100))
}

func TestListActiveOlderThan_HugeAge(t *testing.T) {
	d, _ := newTestDirectory(t)
	mustCreate(t, d, "bob", func(p *types.CreateUserParams) {
		b := time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)
		p.Birthday = &b
	})
	require.Len(t, d.ListActiveOlderThan(40), 1)

	for _, age := range []int{MaxAgeYears + 1, 1 << 40, 300000000000, math.MaxInt / 2, math.MaxInt} {
		assert.Empty(t, d.ListActiveOlderThan(age), "age %d", age)
	}
	assert.Empty(t, d.ListActiveOlderThan(MaxAgeYears))
}

func TestCanModify(t *testing.T) {
	d, _ := newTestDirectory(t)
	mustCreate(t, d, "bob")
	mustCreate(t, d, "carol")

	assert.True(t, d.CanModify("admin", "bob"))
	assert.True(t, d.CanModify("admin", "admin"))
	assert.False(t, d.CanModify("bob", "carol"))
	assert.False(t, d.CanModify("bob", "admin"))
	assert.True(t, d.CanModify("bob", "bob"))

	require.NoError(t, d.Revoke("bob", "admin"))
	assert.False(t, d.CanModify("bob", "bob"))
	assert.True(t, d.CanModify("admin", "bob"), "admins may modify revoked users")

	assert.False(t, d.CanModify("ghost", "bob"))
	assert.False(t, d.CanModify("admin", "ghost"))
}

func TestLookup_ReturnsCopy(t *testing.T) {
	d, _ := newTestDirectory(t)
	mustCreate(t, d, "dave")
	require.NoError(t, d.UpdateBirthday("dave", time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), "admin"))

	u, _ := d.Lookup("dave")
	u.Name = "Mallory"
	*u.Birthday = time.Time{}

	again, _ := d.Lookup("dave")
	assert.Equal(t, "John", again.Name)
	assert.Equal(t, 2000, again.Birthday.Year())
}
