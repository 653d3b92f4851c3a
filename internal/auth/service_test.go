package auth_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/auth"
	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/metrics"
	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/person"
	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[int]*user.User
}

func (f *fakeUserRepo) Create(_ context.Context, u *user.User) (*user.User, error) {
	u.ID = len(f.users) + 1
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetAll(_ context.Context, _, _ int) ([]user.User, error) {
	var all []user.User
	for _, u := range f.users {
		all = append(all, *u)
	}
	return all, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int) (*user.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByLogin(_ context.Context, login string) (*user.User, error) {
	for _, u := range f.users {
		if u.Login == login {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, u *user.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.users[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

type fakePersonRepo struct {
	people map[int]*person.Person
}

func (f *fakePersonRepo) Create(_ context.Context, p *person.Person) (*person.Person, error) {
	p.ID = len(f.people) + 1
	f.people[p.ID] = p
	return p, nil
}

func (f *fakePersonRepo) GetAll(_ context.Context, _, _ int) ([]person.Person, error) {
	var all []person.Person
	for _, p := range f.people {
		all = append(all, *p)
	}
	return all, nil
}

func (f *fakePersonRepo) GetByID(_ context.Context, id int) (*person.Person, error) {
	if p, ok := f.people[id]; ok {
		return p, nil
	}
	return nil, person.ErrPersonNotFound
}

func (f *fakePersonRepo) Update(_ context.Context, p *person.Person) error {
	if _, ok := f.people[p.ID]; !ok {
		return person.ErrPersonNotFound
	}
	f.people[p.ID] = p
	return nil
}

func (f *fakePersonRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.people[id]; !ok {
		return person.ErrPersonNotFound
	}
	delete(f.people, id)
	return nil
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

// newTestService seeds an admin account without a person and a plain account
// linked to person 1.
func newTestService(t *testing.T) (*auth.Service, *fakeUserRepo) {
	t.Helper()

	personID := 1
	users := &fakeUserRepo{users: map[int]*user.User{
		1: {ID: 1, Login: "admin", PasswordHash: mustHash(t, "adminpass"), Role: user.RoleAdmin},
		2: {ID: 2, Login: "ivanov", PasswordHash: mustHash(t, "password123"), Role: user.RoleUser, PersonID: &personID},
	}}
	people := &fakePersonRepo{people: map[int]*person.Person{
		1: {ID: 1, FirstName: "Ivan", LastName: "Ivanov", Type: person.TypeStudent},
	}}

	tokens := auth.NewTokenIssuer("test-secret-key", 30*time.Minute)
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	return auth.NewService(users, people, tokens, metrics.NewMock(), logger), users
}

func TestService_Authenticate(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		usr, err := service.Authenticate(ctx, "ivanov", "password123")
		require.NoError(t, err)
		assert.Equal(t, 2, usr.ID)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := service.Authenticate(ctx, "ivanov", "wrong")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("UnknownLogin", func(t *testing.T) {
		_, err := service.Authenticate(ctx, "nobody", "password123")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	// Wrong password and unknown login must be indistinguishable so the
	// endpoint cannot be used to probe which accounts exist.
	t.Run("NoUserExistenceOracle", func(t *testing.T) {
		_, errWrongPassword := service.Authenticate(ctx, "ivanov", "wrong")
		_, errUnknownLogin := service.Authenticate(ctx, "nobody", "wrong")
		assert.Equal(t, errWrongPassword, errUnknownLogin)
	})
}

func TestService_Login(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	t.Run("WithLinkedPerson", func(t *testing.T) {
		resp, err := service.Login(ctx, "ivanov", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "bearer", resp.TokenType)
		assert.Equal(t, "ivanov", resp.Username)
		require.NotNil(t, resp.Person)
		assert.Equal(t, "Ivan", resp.Person.FirstName)
		assert.Equal(t, "Ivanov", resp.Person.LastName)
	})

	t.Run("WithoutLinkedPerson", func(t *testing.T) {
		resp, err := service.Login(ctx, "admin", "adminpass")
		require.NoError(t, err)
		assert.Nil(t, resp.Person)
	})

	t.Run("BadCredentials", func(t *testing.T) {
		_, err := service.Login(ctx, "ivanov", "wrong")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestService_UserFromToken(t *testing.T) {
	service, users := newTestService(t)
	ctx := context.Background()

	t.Run("RoundTrip", func(t *testing.T) {
		resp, err := service.Login(ctx, "ivanov", "password123")
		require.NoError(t, err)

		usr, err := service.UserFromToken(ctx, resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, 2, usr.ID)
		assert.Equal(t, "ivanov", usr.Login)
	})

	t.Run("DeletedUser", func(t *testing.T) {
		resp, err := service.Login(ctx, "ivanov", "password123")
		require.NoError(t, err)

		require.NoError(t, users.Delete(ctx, 2))

		_, err = service.UserFromToken(ctx, resp.AccessToken)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := service.UserFromToken(ctx, "garbage")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
