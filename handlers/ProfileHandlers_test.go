package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorportal/models"
	"vendorportal/services"
)

type profileAPI struct {
	services.VendorAPI
	stored     *models.VendorProfile
	fetches    int
	lastUpdate *models.VendorProfile
}

func (f *profileAPI) VendorProfile(ctx context.Context, token string) (*models.VendorProfile, error) {
	f.fetches++
	return f.stored, nil
}

func (f *profileAPI) UpdateVendorProfile(ctx context.Context, token string, profile models.VendorProfile) (*models.VendorProfile, error) {
	f.lastUpdate = &profile
	return &profile, nil
}

func profileTestRouter(api *profileAPI) (*gin.Engine, *Env) {
	gin.SetMode(gin.TestMode)
	env := &Env{API: api, Store: newMemStore(), Drafts: NewDraftStore()}
	r := gin.New()
	// Simulate the guard's context values with a fixed session.
	r.Use(func(c *gin.Context) {
		c.Set("sessionID", "s1")
		c.Set("authToken", "tok")
	})
	r.GET("/portal/profile", GetProfileHandler(env))
	r.PUT("/portal/profile", UpdateProfileScalarsHandler(env))
	r.POST("/portal/profile/save", SaveProfileHandler(env))
	r.POST("/portal/profile/contacts", AddContactHandler(env))
	return r, env
}

func TestGetProfileLoadsDraftOnce(t *testing.T) {
	api := &profileAPI{stored: &models.VendorProfile{About: "Pipes", ContactDetails: []models.ContactDetail{{ContactPerson: "Asha"}}}}
	r, _ := profileTestRouter(api)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/portal/profile", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
	// The draft is cached per session; the backend is hit once.
	assert.Equal(t, 1, api.fetches)
}

func TestGetProfileWithNoSavedProfileYieldsEmptyDraft(t *testing.T) {
	api := &profileAPI{stored: nil}
	r, _ := profileTestRouter(api)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/portal/profile", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Profile models.EditableProfile `json:"profile"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Profile.Contacts)
	assert.Empty(t, resp.Profile.Contacts)
}

func TestScalarUpdateOnlyTouchesPresentFields(t *testing.T) {
	api := &profileAPI{stored: &models.VendorProfile{About: "Pipes", Experience: 5}}
	r, env := profileTestRouter(api)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/portal/profile", strings.NewReader(`{"experience":9}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	draft := env.Drafts.Get("s1")
	require.NotNil(t, draft)
	assert.Equal(t, 9, draft.Experience)
	assert.Equal(t, "Pipes", draft.About)
}

func TestSaveProfileSanitizesAboutAndRefreshesDraft(t *testing.T) {
	api := &profileAPI{stored: &models.VendorProfile{}}
	r, env := profileTestRouter(api)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/portal/profile", strings.NewReader(`{"about":"Pipes <script>alert(1)</script>"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/portal/profile/save", nil))
	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, api.lastUpdate)
	assert.NotContains(t, api.lastUpdate.About, "<script>")
	assert.Contains(t, api.lastUpdate.About, "Pipes")

	// The draft is rebuilt from the backend's echo of the save.
	draft := env.Drafts.Get("s1")
	require.NotNil(t, draft)
	assert.NotContains(t, draft.About, "<script>")
}

func TestConcurrentDraftMutationsSerialize(t *testing.T) {
	api := &profileAPI{stored: &models.VendorProfile{}}
	r, env := profileTestRouter(api)

	// Parallel requests on one session take the draft lock one at a time, so
	// every add lands and the backend is still only fetched once.
	const n = 25
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/portal/profile/contacts", strings.NewReader(`{"contactPerson":"Asha"}`))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)
		}()
	}
	wg.Wait()

	require.Len(t, env.Drafts.Get("s1").Contacts, n)
	assert.Equal(t, 1, api.fetches)
}

func TestAddContactReturnsLocalID(t *testing.T) {
	api := &profileAPI{stored: &models.VendorProfile{}}
	r, env := profileTestRouter(api)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/portal/profile/contacts", strings.NewReader(`{"contactPerson":"Asha","email":"a@x.com","phone":"1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	require.Len(t, env.Drafts.Get("s1").Contacts, 1)
	assert.Equal(t, resp.ID, env.Drafts.Get("s1").Contacts[0].LocalID)
}
