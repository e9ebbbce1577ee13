package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tokenServer returns an httptest server answering the OAuth token
// endpoint and a counter of token requests it received.
func tokenServer(t *testing.T, accessToken string, expiresIn int) (*httptest.Server, *atomic.Int64) {
	t.Helper()

	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/oauth/token", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))

		calls.Add(1)

		response := map[string]interface{}{"access_token": accessToken}
		if expiresIn > 0 {
			response["expires_in"] = expiresIn
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response)
	}))
	return server, &calls
}

func TestEnsureCredentialWithAPIKey(t *testing.T) {
	server, calls := tokenServer(t, "unused", 3600)
	defer server.Close()

	config := DefaultConfig(server.URL)
	config.APIKey = "static-key"
	client := NewClientWithConfig(config)

	credential, err := client.auth.EnsureCredential(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "static-key", credential)
	assert.Equal(t, int64(0), calls.Load(), "API key must never trigger a token request")
}

func TestAuthenticateWithAPIKeyIsNoOp(t *testing.T) {
	server, calls := tokenServer(t, "unused", 3600)
	defer server.Close()

	config := DefaultConfig(server.URL)
	config.APIKey = "static-key"
	client := NewClientWithConfig(config)

	require.NoError(t, client.Authenticate(context.Background()))
	assert.Equal(t, int64(0), calls.Load())
}

func TestAuthenticateRequiresCredentials(t *testing.T) {
	client := NewClient("http://localhost:8000")

	err := client.Authenticate(context.Background())
	require.Error(t, err)

	var authErr *AuthenticationError
	assert.ErrorAs(t, err, &authErr)
}

func TestAuthenticateTokenEndpointFailure(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		response   string
	}{
		{
			name:       "unauthorized",
			statusCode: http.StatusUnauthorized,
			response:   `{"detail": "bad credentials"}`,
		},
		{
			name:       "server error",
			statusCode: http.StatusInternalServerError,
			response:   `{}`,
		},
		{
			name:       "missing access token",
			statusCode: http.StatusOK,
			response:   `{"expires_in": 3600}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.response))
			}))
			defer server.Close()

			config := DefaultConfig(server.URL)
			config.ClientID = "client-id"
			config.ClientSecret = "client-secret"
			client := NewClientWithConfig(config)

			err := client.Authenticate(context.Background())
			require.Error(t, err)

			var authErr *AuthenticationError
			assert.ErrorAs(t, err, &authErr)
		})
	}
}

func TestEnsureCredentialReusesCachedToken(t *testing.T) {
	server, calls := tokenServer(t, "token-1", 3600)
	defer server.Close()

	config := DefaultConfig(server.URL)
	config.ClientID = "client-id"
	config.ClientSecret = "client-secret"
	client := NewClientWithConfig(config)

	first, err := client.auth.EnsureCredential(context.Background())
	require.NoError(t, err)
	second, err := client.auth.EnsureCredential(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "token-1", first)
	assert.Equal(t, "token-1", second)
	assert.Equal(t, int64(1), calls.Load(), "valid cached token must be reused")
}

func TestEnsureCredentialRefreshesExpiredToken(t *testing.T) {
	// expires_in below the 60s safety margin yields an already expired
	// token, so the second call must refresh.
	server, calls := tokenServer(t, "short-lived", 30)
	defer server.Close()

	config := DefaultConfig(server.URL)
	config.ClientID = "client-id"
	config.ClientSecret = "client-secret"
	client := NewClientWithConfig(config)

	_, err := client.auth.EnsureCredential(context.Background())
	require.NoError(t, err)
	_, err = client.auth.EnsureCredential(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), calls.Load())
}

func TestEnsureCredentialWithoutExpiryNeverRefreshes(t *testing.T) {
	server, calls := tokenServer(t, "eternal", 0)
	defer server.Close()

	config := DefaultConfig(server.URL)
	config.ClientID = "client-id"
	config.ClientSecret = "client-secret"
	client := NewClientWithConfig(config)

	for i := 0; i < 3; i++ {
		_, err := client.auth.EnsureCredential(context.Background())
		require.NoError(t, err)
	}

	assert.Equal(t, int64(1), calls.Load())
}

func TestEnsureCredentialSingleFlight(t *testing.T) {
	server, calls := tokenServer(t, "shared", 3600)
	defer server.Close()

	config := DefaultConfig(server.URL)
	config.ClientID = "client-id"
	config.ClientSecret = "client-secret"
	client := NewClientWithConfig(config)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			credential, err := client.auth.EnsureCredential(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, "shared", credential)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), calls.Load(), "concurrent callers must share one token request")
}

func TestAuthenticateScopeOverride(t *testing.T) {
	var receivedScope string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		receivedScope = r.PostForm.Get("scope")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"access_token": "token", "expires_in": 3600})
	}))
	defer server.Close()

	config := DefaultConfig(server.URL)
	config.ClientID = "client-id"
	config.ClientSecret = "client-secret"
	client := NewClientWithConfig(config)

	require.NoError(t, client.Authenticate(context.Background()))
	assert.Equal(t, "read write", receivedScope)

	require.NoError(t, client.Authenticate(context.Background(), "admin"))
	assert.Equal(t, "admin", receivedScope)
}

func TestFailedRefreshPreservesState(t *testing.T) {
	var fail atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"access_token": "token-1", "expires_in": 3600})
	}))
	defer server.Close()

	config := DefaultConfig(server.URL)
	config.ClientID = "client-id"
	config.ClientSecret = "client-secret"
	client := NewClientWithConfig(config)

	require.NoError(t, client.Authenticate(context.Background()))
	require.NotNil(t, client.auth.Token())

	fail.Store(true)
	err := client.Authenticate(context.Background())
	require.Error(t, err)

	token := client.auth.Token()
	require.NotNil(t, token, "a failed refresh must not clear the previous token")
	assert.Equal(t, "token-1", token.AccessToken)
}
