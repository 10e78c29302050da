package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoparts-storefront-api/internal/cache"
	"autoparts-storefront-api/internal/cms"
	"autoparts-storefront-api/pkg/apierror"
)

func newTestSession(t *testing.T, handler http.Handler, ttl time.Duration) SessionService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := cms.New(cms.Config{BaseURL: server.URL})
	memCache := cache.NewMemoryCache()
	t.Cleanup(func() { memCache.Close() })

	return NewSessionService(client, memCache, ttl)
}

func authHandler(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/new-local", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Identifier string `json:"identifier"`
			Password   string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		if body.Identifier == "user@example.com" && body.Password == "secret" {
			w.Write([]byte(`{"jwt":"cms-jwt-token","user":{"id":1,"username":"user"}}`))
			return
		}
		http.Error(w, `{"error":{"message":"Invalid identifier or password"}}`, http.StatusBadRequest)
	})
	return mux
}

func TestSignInIssuesOpaqueToken(t *testing.T) {
	svc := newTestSession(t, authHandler(t), time.Hour)
	ctx := context.Background()

	token, data, err := svc.SignIn(ctx, "user@example.com", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "cms-jwt-token", token, "the CMS JWT must never be the client token")
	assert.Equal(t, "cms-jwt-token", data.CMSToken)

	validated, err := svc.Validate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "cms-jwt-token", validated.CMSToken)
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	svc := newTestSession(t, authHandler(t), time.Hour)

	_, _, err := svc.SignIn(context.Background(), "user@example.com", "wrong")
	require.Error(t, err)

	apiErr, ok := err.(*apierror.Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestSignInRequiresCredentials(t *testing.T) {
	svc := newTestSession(t, authHandler(t), time.Hour)

	_, _, err := svc.SignIn(context.Background(), "", "")
	require.Error(t, err)

	apiErr, ok := err.(*apierror.Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestValidateUnknownToken(t *testing.T) {
	svc := newTestSession(t, authHandler(t), time.Hour)

	_, err := svc.Validate(context.Background(), "not-a-token")
	require.Error(t, err)

	apiErr, ok := err.(*apierror.Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestRefreshExtendsSession(t *testing.T) {
	svc := newTestSession(t, authHandler(t), time.Hour)
	ctx := context.Background()

	token, data, err := svc.SignIn(ctx, "user@example.com", "secret")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, token)
	require.NoError(t, err)
	assert.False(t, refreshed.ExpiresAt.Before(data.ExpiresAt))

	_, err = svc.Refresh(ctx, "not-a-token")
	assert.Error(t, err)
}

func TestSignOutInvalidatesToken(t *testing.T) {
	svc := newTestSession(t, authHandler(t), time.Hour)
	ctx := context.Background()

	token, _, err := svc.SignIn(ctx, "user@example.com", "secret")
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(ctx, token))

	_, err = svc.Validate(ctx, token)
	assert.Error(t, err)
}
