package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modabridge/storefront/internal/core/domain"
	"github.com/modabridge/storefront/internal/core/service"
)

const testSecret = "test-signing-secret"

func newAuth(t *testing.T, remoteMode bool) (*service.Auth, *memStore) {
	t.Helper()
	local := newMemStore()
	store := service.NewStore(local, unconfiguredGateway())
	return service.NewAuth(store, local, testSecret, remoteMode), local
}

func seedAdmin(t *testing.T, auth *service.Auth) domain.AdminUser {
	t.Helper()
	u, err := auth.CreateAdminUser(
		t.Context(), "Thandi", "thandi@example.com", "s3cret",
		domain.RoleAdmin, []string{"products"},
	)
	require.NoError(t, err)
	return u
}

func TestAuthAdminLogin(t *testing.T) {

	t.Run("ValidCredentialsIssueToken", func(t *testing.T) {
		auth, local := newAuth(t, false)
		seedAdmin(t, auth)

		token, err := auth.AdminLogin(t.Context(), "thandi@example.com", "s3cret")
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		assert.True(t, auth.Authorized(service.AreaAdmin, token))
		assert.True(t, local.Has("session_admin"))
	})

	t.Run("WrongPassword", func(t *testing.T) {
		auth, _ := newAuth(t, false)
		seedAdmin(t, auth)

		_, err := auth.AdminLogin(t.Context(), "thandi@example.com", "nope")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		auth, _ := newAuth(t, false)

		_, err := auth.AdminLogin(t.Context(), "ghost@example.com", "s3cret")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("RemoteModeSkipsSessionFlag", func(t *testing.T) {
		auth, local := newAuth(t, true)
		seedAdmin(t, auth)

		_, err := auth.AdminLogin(t.Context(), "thandi@example.com", "s3cret")
		require.NoError(t, err)
		assert.False(t, local.Has("session_admin"))
	})
}

func TestAuthAuthorized(t *testing.T) {

	t.Run("AdminTokenDoesNotOpenClientArea", func(t *testing.T) {
		auth, _ := newAuth(t, true)
		seedAdmin(t, auth)

		token, err := auth.AdminLogin(t.Context(), "thandi@example.com", "s3cret")
		require.NoError(t, err)

		assert.True(t, auth.Authorized(service.AreaAdmin, token))
		assert.False(t, auth.Authorized(service.AreaClient, token))
	})

	t.Run("ForeignSecretRejected", func(t *testing.T) {
		issuer, _ := newAuth(t, true)
		seedAdmin(t, issuer)
		token, err := issuer.AdminLogin(t.Context(), "thandi@example.com", "s3cret")
		require.NoError(t, err)

		local := newMemStore()
		store := service.NewStore(local, unconfiguredGateway())
		verifier := service.NewAuth(store, local, "another-secret", true)

		assert.False(t, verifier.Authorized(service.AreaAdmin, token))
	})

	t.Run("LocalFlagStandsInWithoutRemote", func(t *testing.T) {
		auth, local := newAuth(t, false)
		require.NoError(t, local.Set("session_client", []byte("u1")))

		assert.True(t, auth.Authorized(service.AreaClient, ""))
	})

	t.Run("NoFlagFallbackInRemoteMode", func(t *testing.T) {
		auth, local := newAuth(t, true)
		require.NoError(t, local.Set("session_client", []byte("u1")))

		assert.False(t, auth.Authorized(service.AreaClient, ""))
	})

	t.Run("GarbageToken", func(t *testing.T) {
		auth, _ := newAuth(t, true)
		assert.False(t, auth.Authorized(service.AreaAdmin, "not.a.token"))
	})
}

func TestAuthClientSession(t *testing.T) {

	t.Run("IssuesTokenWithSubject", func(t *testing.T) {
		auth, _ := newAuth(t, true)

		token, err := auth.ClientSession(t.Context(), "u42")
		require.NoError(t, err)

		sub, ok := auth.Identify(service.AreaClient, token)
		require.True(t, ok)
		assert.Equal(t, "u42", sub)
	})

	t.Run("EmptyUserID", func(t *testing.T) {
		auth, _ := newAuth(t, true)

		_, err := auth.ClientSession(t.Context(), "")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("IdentifyReadsFlagInLocalMode", func(t *testing.T) {
		auth, _ := newAuth(t, false)

		_, err := auth.ClientSession(t.Context(), "u42")
		require.NoError(t, err)

		sub, ok := auth.Identify(service.AreaClient, "")
		require.True(t, ok)
		assert.Equal(t, "u42", sub)
	})

	t.Run("LogoutClearsFlag", func(t *testing.T) {
		auth, local := newAuth(t, false)

		_, err := auth.ClientSession(t.Context(), "u42")
		require.NoError(t, err)
		require.True(t, local.Has("session_client"))

		auth.Logout(service.AreaClient)
		assert.False(t, local.Has("session_client"))
	})
}

func TestAuthEnsureOwner(t *testing.T) {

	t.Run("BootstrapsFirstAccount", func(t *testing.T) {
		local := newMemStore()
		store := service.NewStore(local, unconfiguredGateway())
		auth := service.NewAuth(store, local, testSecret, false)

		require.NoError(t, auth.EnsureOwner(t.Context(), "owner@example.com", "pw"))

		users := store.AdminUsers()
		require.Len(t, users, 1)
		assert.Equal(t, domain.RoleOwner, users[0].Role)
		assert.Equal(t, "owner@example.com", users[0].Email)
	})

	t.Run("NoOpWhenTeamExists", func(t *testing.T) {
		local := newMemStore()
		store := service.NewStore(local, unconfiguredGateway())
		auth := service.NewAuth(store, local, testSecret, false)
		seedAdmin(t, auth)

		require.NoError(t, auth.EnsureOwner(t.Context(), "owner@example.com", "pw"))
		assert.Len(t, store.AdminUsers(), 1)
	})

	t.Run("NoOpWithoutCredentials", func(t *testing.T) {
		local := newMemStore()
		store := service.NewStore(local, unconfiguredGateway())
		auth := service.NewAuth(store, local, testSecret, false)

		require.NoError(t, auth.EnsureOwner(t.Context(), "", ""))
		assert.Empty(t, store.AdminUsers())
	})
}
