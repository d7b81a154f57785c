package handlers

import (
	"sync"

	"gorm.io/gorm"

	"vendorportal/models"
	"vendorportal/services"
	"vendorportal/storage"
)

// Env bundles the dependencies every handler needs. Handlers are free
// functions taking an *Env and returning a gin.HandlerFunc.
type Env struct {
	API           services.VendorAPI
	Store         storage.TokenStore
	Uploader      *services.Uploader
	Drafts        *DraftStore
	Gorm          *gorm.DB
	PortalBaseURL string
}

// DraftStore keeps each session's in-progress profile draft. Drafts live only
// as long as the process; a restart just means the next profile page load
// refetches from the backend. Each session carries its own mutex so two
// parallel requests on the same session cannot race on the draft.
type DraftStore struct {
	mu     sync.Mutex
	drafts map[string]*sessionDraft
}

type sessionDraft struct {
	mu      sync.Mutex
	profile *models.EditableProfile
}

func NewDraftStore() *DraftStore {
	return &DraftStore{drafts: make(map[string]*sessionDraft)}
}

func (d *DraftStore) entry(sessionID string) *sessionDraft {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, ok := d.drafts[sessionID]
	if !ok {
		e = &sessionDraft{}
		d.drafts[sessionID] = e
	}
	return e
}

// Lock serializes draft access for one session and returns the unlock. A
// handler holds the lock for the whole request, so list mutations from
// concurrent requests apply one at a time.
func (d *DraftStore) Lock(sessionID string) func() {
	e := d.entry(sessionID)
	e.mu.Lock()
	return e.mu.Unlock
}

// Get and Set expect the caller to hold the session lock.
func (d *DraftStore) Get(sessionID string) *models.EditableProfile {
	return d.entry(sessionID).profile
}

func (d *DraftStore) Set(sessionID string, p *models.EditableProfile) {
	d.entry(sessionID).profile = p
}

func (d *DraftStore) Delete(sessionID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.drafts, sessionID)
}
