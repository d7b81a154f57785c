package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorportal/utils"
)

func guardedRouter(store *memStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	env := &Env{Store: store, Drafts: NewDraftStore()}
	r := gin.New()
	r.GET("/portal/ping", ValidateSession(env), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"token": authToken(c)})
	})
	return r
}

func TestGuardBouncesWithoutCookie(t *testing.T) {
	r := guardedRouter(newMemStore())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/portal/ping", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	// The intended destination is remembered for after login. Gin URL-encodes
	// cookie values on write and unescapes them on read, so the raw value is
	// compared after unescaping.
	var remembered string
	for _, c := range w.Result().Cookies() {
		if c.Name == "redirect_after_login" {
			v, err := url.QueryUnescape(c.Value)
			require.NoError(t, err)
			remembered = v
		}
	}
	assert.Equal(t, "/portal/ping", remembered)
}

func TestGuardBouncesWhenStoreHasNoToken(t *testing.T) {
	store := newMemStore()
	r := guardedRouter(store)

	cookie, err := utils.GenerateSessionCookie("s1")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/portal/ping", nil)
	req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: cookie})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestGuardPassesWithLiveSession(t *testing.T) {
	store := newMemStore()
	store.Save("s1", "tok-1")
	r := guardedRouter(store)

	cookie, err := utils.GenerateSessionCookie("s1")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/portal/ping", nil)
	req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: cookie})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tok-1")
}

func TestGuardRejectsTamperedCookie(t *testing.T) {
	store := newMemStore()
	store.Save("s1", "tok-1")
	r := guardedRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/portal/ping", nil)
	req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: "not-a-jwt"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}
