package auth

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentmoney/internal/core"
	"studentmoney/internal/kv"
)

func newService(t *testing.T) (*Service, *kv.MemoryStore) {
	t.Helper()
	store := kv.NewMemoryStore()
	return NewService(store), store
}

func TestSignupValidation(t *testing.T) {
	cases := []struct {
		name string
		req  Signup
		want error
	}{
		{"missing email", Signup{Password: "secret1", Name: "An"}, ErrEmailRequired},
		{"not an email", Signup{Email: "nope", Password: "secret1", Name: "An"}, ErrEmailRequired},
		{"missing name", Signup{Email: "an@example.com", Password: "secret1"}, ErrNameRequired},
		{"short password", Signup{Email: "an@example.com", Password: "abc", Name: "An"}, ErrPasswordTooShort},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.req.Validate(), tc.want)
		})
	}
}

func TestCreateAccountSeedsLists(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	profile, err := svc.CreateAccount(ctx, Signup{Email: "An@Example.com", Password: "secret1", Name: "An"})
	require.NoError(t, err)
	assert.NotEmpty(t, profile.ID)
	assert.Equal(t, "an@example.com", profile.Email)

	for _, kind := range core.Kinds() {
		raw, found, err := store.Get(ctx, listKey(profile.ID, kind))
		require.NoError(t, err)
		require.True(t, found, "list %s must be seeded", kind)
		if kind != core.KindCategories {
			assert.Equal(t, "[]", string(raw))
		}
	}

	raw, _, err := store.Get(ctx, listKey(profile.ID, core.KindCategories))
	require.NoError(t, err)
	var cats []core.Category
	require.NoError(t, json.Unmarshal(raw, &cats))
	assert.Len(t, cats, 15)
	for _, c := range cats {
		assert.True(t, c.IsDefault)
		assert.Equal(t, profile.ID, c.UserID)
	}
}

func TestCreateAccountDuplicateEmail(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.CreateAccount(ctx, Signup{Email: "an@example.com", Password: "secret1", Name: "An"})
	require.NoError(t, err)

	_, err = svc.CreateAccount(ctx, Signup{Email: "AN@example.com", Password: "secret2", Name: "Other"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginAndVerify(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.CreateAccount(ctx, Signup{Email: "an@example.com", Password: "secret1", Name: "An"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "an@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "unknown@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	token, profile, err := svc.Login(ctx, "an@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, profile.ID)

	got, err := svc.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.Verify(ctx, "bogus-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.CreateAccount(ctx, Signup{Email: "an@example.com", Password: "secret1", Name: "An"})
	require.NoError(t, err)
	token, _, err := svc.Login(ctx, "an@example.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token))
	_, err = svc.Verify(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// logging out twice is harmless
	require.NoError(t, svc.Logout(ctx, token))
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.CreateAccount(ctx, Signup{Email: "an@example.com", Password: "secret1", Name: "An"})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, created.ID, "An Nguyễn", "")
	require.NoError(t, err)
	assert.Equal(t, "An Nguyễn", updated.Name)
	assert.Equal(t, "an@example.com", updated.Email)

	updated, err = svc.UpdateProfile(ctx, created.ID, "", "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)

	// old address is released, login works with the new one
	token, _, err := svc.Login(ctx, "new@example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	_, _, err = svc.Login(ctx, "an@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfileEmailConflict(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	first, err := svc.CreateAccount(ctx, Signup{Email: "a@example.com", Password: "secret1", Name: "A"})
	require.NoError(t, err)
	_, err = svc.CreateAccount(ctx, Signup{Email: "b@example.com", Password: "secret1", Name: "B"})
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, first.ID, "", "b@example.com")
	assert.ErrorIs(t, err, ErrEmailTaken)
}
