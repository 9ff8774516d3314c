package identity_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SubscribeReplaysCurrentState(t *testing.T) {
	provider := identity.NewMemory()

	var got []*domain.Principal
	unsubscribe := provider.Subscribe(func(p *domain.Principal) {
		got = append(got, p)
	})
	defer unsubscribe()

	// immediate replay of the anonymous state
	require.Len(t, got, 1)
	assert.Nil(t, got[0])

	principal, err := provider.SignUp(t.Context(), "a@example.com", "pw")
	require.NoError(t, err)

	require.Len(t, got, 2)
	require.NotNil(t, got[1])
	assert.Equal(t, principal.UserID, got[1].UserID)

	require.NoError(t, provider.SignOut(t.Context()))
	require.Len(t, got, 3)
	assert.Nil(t, got[2])
}

func TestMemory_SignIn(t *testing.T) {
	provider := identity.NewMemory()

	signedUp, err := provider.SignUp(t.Context(), "a@example.com", "pw")
	require.NoError(t, err)

	t.Run("correct password: ok, same uid", func(t *testing.T) {
		principal, err := provider.SignIn(t.Context(), "a@example.com", "pw")
		require.NoError(t, err)
		assert.Equal(t, signedUp.UserID, principal.UserID)
	})

	t.Run("wrong password: rejected", func(t *testing.T) {
		_, err := provider.SignIn(t.Context(), "a@example.com", "nope")
		require.ErrorIs(t, err, domain.ErrAuthRequired)
	})

	t.Run("unknown account: rejected", func(t *testing.T) {
		_, err := provider.SignIn(t.Context(), "b@example.com", "pw")
		require.ErrorIs(t, err, domain.ErrAuthRequired)
	})

	t.Run("duplicate sign up: rejected", func(t *testing.T) {
		_, err := provider.SignUp(t.Context(), "a@example.com", "pw")
		require.ErrorContains(t, err, "already exists")
	})
}

func TestFirebase_SignIn(t *testing.T) {
	idToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "uid-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/accounts:signInWithPassword", r.URL.Path)
		require.Equal(t, "test-key", r.URL.Query().Get("key"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@example.com", body["email"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"idToken": idToken,
			"localId": "uid-123",
			"email":   "a@example.com",
		})
	}))
	defer srv.Close()

	provider, err := identity.NewFirebase("test-key", identity.WithEndpoint(srv.URL))
	require.NoError(t, err)

	var last *domain.Principal
	defer provider.Subscribe(func(p *domain.Principal) { last = p })()

	principal, err := provider.SignIn(t.Context(), "a@example.com", "pw")
	require.NoError(t, err)

	assert.Equal(t, "uid-123", principal.UserID)
	assert.Equal(t, "a@example.com", principal.Email)

	// subscribers see the sign-in
	require.NotNil(t, last)
	assert.Equal(t, "uid-123", last.UserID)

	require.NoError(t, provider.SignOut(t.Context()))
	assert.Nil(t, last)
}

func TestFirebase_SignInRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"message": "INVALID_PASSWORD"}}`))
	}))
	defer srv.Close()

	provider, err := identity.NewFirebase("test-key", identity.WithEndpoint(srv.URL))
	require.NoError(t, err)

	_, err = provider.SignIn(t.Context(), "a@example.com", "bad")
	require.ErrorIs(t, err, domain.ErrAuthRequired)
}
