package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// tokenExpiryMargin is subtracted from the server-reported lifetime so a
// token is refreshed before it can expire mid-flight.
const tokenExpiryMargin = 60 * time.Second

// Authenticator manages the client's credential state: either a static API
// key or an OAuth2 client-credentials token with expiry tracking.
//
// An API key always takes priority over OAuth; when one is set no token
// request is ever issued. All credential access is serialized so that
// expired-token detection and refresh is atomic and concurrent callers
// during a refresh wait for the single in-flight token request instead of
// issuing duplicates.
type Authenticator struct {
	tokenURL     string
	clientID     string
	clientSecret string
	scope        string
	httpClient   *http.Client
	logger       *zap.Logger

	mu     sync.Mutex
	apiKey string
	token  *oauth2.Token
}

// newAuthenticator creates an Authenticator for the given registry base URL.
func newAuthenticator(registryURL, clientID, clientSecret, apiKey, scope string, httpClient *http.Client, logger *zap.Logger) *Authenticator {
	return &Authenticator{
		tokenURL:     strings.TrimSuffix(registryURL, "/") + "/auth/oauth/token",
		clientID:     clientID,
		clientSecret: clientSecret,
		scope:        scope,
		httpClient:   httpClient,
		logger:       logger,
		apiKey:       apiKey,
	}
}

// SetAPIKey sets a static API key, bypassing OAuth for all later requests.
func (a *Authenticator) SetAPIKey(apiKey string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.apiKey = apiKey
}

// EnsureCredential returns the current bearer credential, performing a
// token request first when no valid cached token exists. With an API key
// set it returns immediately without any HTTP call.
func (a *Authenticator) EnsureCredential(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.apiKey != "" {
		return a.apiKey, nil
	}

	if a.token != nil && a.token.Valid() {
		return a.token.AccessToken, nil
	}

	if err := a.authenticate(ctx, a.scope); err != nil {
		return "", err
	}
	return a.token.AccessToken, nil
}

// Authenticate performs the OAuth2 client-credentials token exchange,
// replacing any cached token. With an API key set it is a no-op. An
// optional scope overrides the configured one for this exchange.
func (a *Authenticator) Authenticate(ctx context.Context, scope ...string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.apiKey != "" {
		return nil
	}

	authScope := a.scope
	if len(scope) > 0 && scope[0] != "" {
		authScope = scope[0]
	}
	return a.authenticate(ctx, authScope)
}

// authenticate issues the token request. Callers must hold a.mu; keeping
// the lock across the exchange is what makes concurrent callers reuse the
// single in-flight refresh. A failed exchange leaves the previous token
// state untouched.
func (a *Authenticator) authenticate(ctx context.Context, scope string) error {
	if a.clientID == "" || a.clientSecret == "" {
		return NewAuthenticationError("client ID and secret are required for authentication", nil)
	}

	a.logger.Debug("requesting access token",
		zap.String("token_url", a.tokenURL),
		zap.String("scope", scope))

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", a.clientID)
	form.Set("client_secret", a.clientSecret)
	form.Set("scope", scope)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return &AuthenticationError{A2AError: &A2AError{Message: "failed to create token request", Err: err}}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		a.logger.Error("token request failed", zap.Error(err))
		return &AuthenticationError{A2AError: &A2AError{Message: "authentication request failed", Err: err}}
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			a.logger.Warn("failed to close token response body", zap.Error(closeErr))
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		a.logger.Error("token endpoint returned error", zap.Int("status_code", resp.StatusCode))
		return NewAuthenticationError("authentication failed", map[string]interface{}{"status_code": resp.StatusCode})
	}

	var tokenData struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenData); err != nil {
		return &AuthenticationError{A2AError: &A2AError{Message: "failed to decode token response", Err: err}}
	}

	if tokenData.AccessToken == "" {
		return NewAuthenticationError("no access token received", nil)
	}

	token := &oauth2.Token{AccessToken: tokenData.AccessToken}
	if tokenData.ExpiresIn > 0 {
		// Zero Expiry means the token never expires.
		token.Expiry = time.Now().Add(time.Duration(tokenData.ExpiresIn)*time.Second - tokenExpiryMargin)
	}
	a.token = token

	a.logger.Debug("access token acquired", zap.Time("expires_at", token.Expiry))
	return nil
}

// Token returns a copy of the cached OAuth2 token, or nil when none is held.
func (a *Authenticator) Token() *oauth2.Token {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.token == nil {
		return nil
	}
	copied := *a.token
	return &copied
}
