package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorportal/models"
	"vendorportal/services"
)

// memStore is an in-memory TokenStore. failSave simulates an unavailable
// backing database: writes vanish, reads come back empty.
type memStore struct {
	mu       sync.Mutex
	tokens   map[string]string
	failSave bool
}

func newMemStore() *memStore {
	return &memStore{tokens: map[string]string{}}
}

func (s *memStore) Save(sessionID, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSave {
		return
	}
	s.tokens[sessionID] = token
}

func (s *memStore) Read(sessionID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens[sessionID]
}

func (s *memStore) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, sessionID)
}

func (s *memStore) all() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []string{}
	for _, t := range s.tokens {
		out = append(out, t)
	}
	return out
}

// fakeAPI overrides only the VendorAPI methods a test touches; anything else
// panics via the embedded nil interface.
type fakeAPI struct {
	services.VendorAPI
	currentUserFn func(token string) (*models.User, error)
	updatePhoneFn func(token, phone string) (*models.User, error)
	phoneUpdates  []string
}

func (f *fakeAPI) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	return f.currentUserFn(token)
}

func (f *fakeAPI) UpdatePhone(ctx context.Context, token, phone string) (*models.User, error) {
	f.phoneUpdates = append(f.phoneUpdates, phone)
	if f.updatePhoneFn != nil {
		return f.updatePhoneFn(token, phone)
	}
	return &models.User{Phone: phone}, nil
}

func oauthTestEnv(api services.VendorAPI, store *memStore) (*Env, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	env := &Env{API: api, Store: store, Drafts: NewDraftStore(), PortalBaseURL: "http://portal"}
	r := gin.New()
	r.GET("/auth/google/success", OAuthSuccessHandler(env))
	return env, r
}

func TestOAuthSuccessStoresTokenAndRedirects(t *testing.T) {
	store := newMemStore()
	_, r := oauthTestEnv(&fakeAPI{}, store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/google/success?token=T1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile", w.Header().Get("Location"))
	require.Equal(t, []string{"T1"}, store.all())

	// A session cookie must ride on the redirect.
	cookies := w.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == "portal_session" && c.Value != "" {
			found = true
		}
	}
	assert.True(t, found, "session cookie missing")
}

func TestOAuthErrorLeavesStoreUntouched(t *testing.T) {
	store := newMemStore()
	_, r := oauthTestEnv(&fakeAPI{}, store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/google/success?token=T1&error=access_denied", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?error=oauth_failed", w.Header().Get("Location"))
	assert.Empty(t, store.all())
}

func TestOAuthMissingTokenFails(t *testing.T) {
	store := newMemStore()
	_, r := oauthTestEnv(&fakeAPI{}, store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/google/success", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, "/login?error=oauth_failed", w.Header().Get("Location"))
	assert.Empty(t, store.all())
}

func TestOAuthRedirectNormalization(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"token=T1", "/profile"},
		{"token=T1&redirect=/", "/profile"},
		{"token=T1&redirect=/rfq-requests", "/rfq-requests"},
		{"token=T1&redirect=https://evil.example", "/profile"},
	}
	for _, tt := range tests {
		store := newMemStore()
		_, r := oauthTestEnv(&fakeAPI{}, store)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/auth/google/success?"+tt.query, nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, tt.want, w.Header().Get("Location"), tt.query)
	}
}

func TestOAuthStoreWriteFailureRoutesToLogin(t *testing.T) {
	store := newMemStore()
	store.failSave = true
	_, r := oauthTestEnv(&fakeAPI{}, store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/google/success?token=T1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, "/login?error=oauth_failed", w.Header().Get("Location"))
	// No cookie when the session could not be established.
	for _, c := range w.Result().Cookies() {
		assert.NotEqual(t, "portal_session", c.Name)
	}
}

func TestOAuthPhoneReconciliation(t *testing.T) {
	t.Run("phone attached when user has none", func(t *testing.T) {
		api := &fakeAPI{currentUserFn: func(token string) (*models.User, error) {
			return &models.User{ID: "u1"}, nil
		}}
		store := newMemStore()
		_, r := oauthTestEnv(api, store)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/auth/google/success?token=T1&phone=9999", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, "/profile", w.Header().Get("Location"))
		assert.Equal(t, []string{"9999"}, api.phoneUpdates)
	})

	t.Run("existing phone is kept", func(t *testing.T) {
		api := &fakeAPI{currentUserFn: func(token string) (*models.User, error) {
			return &models.User{ID: "u1", Phone: "1111"}, nil
		}}
		store := newMemStore()
		_, r := oauthTestEnv(api, store)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/auth/google/success?token=T1&phone=9999", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, "/profile", w.Header().Get("Location"))
		assert.Empty(t, api.phoneUpdates)
	})

	t.Run("reconciliation failure never blocks the redirect", func(t *testing.T) {
		api := &fakeAPI{currentUserFn: func(token string) (*models.User, error) {
			return nil, assertError("backend down")
		}}
		store := newMemStore()
		_, r := oauthTestEnv(api, store)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/auth/google/success?token=T1&phone=9999", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, "/profile", w.Header().Get("Location"))
		assert.Equal(t, []string{"T1"}, store.all())
	})
}

type assertError string

func (e assertError) Error() string { return string(e) }
