package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorportal/models"
	"vendorportal/services"
)

var inboxFixture = []models.RfqRequest{
	{RfqID: "RFQ-1", AssignmentID: "a1", ProductName: "Steel Pipes", Buyer: models.Buyer{Name: "Acme"}, VendorStatus: models.RfqStatusInvited},
	{RfqID: "RFQ-2", AssignmentID: "a2", ProductName: "Cement Bags", Buyer: models.Buyer{Name: "BuildCo"}, VendorStatus: models.RfqStatusAssigned},
	{RfqID: "RFQ-3", AssignmentID: "a3", ProductName: "Copper Wire", Buyer: models.Buyer{Name: "Acme"}, VendorStatus: models.RfqStatusCompleted},
}

func TestDisplayStatus(t *testing.T) {
	assert.Equal(t, "New", DisplayStatus(models.RfqStatusInvited))
	assert.Equal(t, "Assigned", DisplayStatus(models.RfqStatusAssigned))
	assert.Equal(t, "Completed", DisplayStatus(models.RfqStatusCompleted))
}

func TestFilterRfqs(t *testing.T) {
	tests := []struct {
		name    string
		search  string
		status  string
		wantIDs []string
	}{
		{"no filter", "", "", []string{"RFQ-1", "RFQ-2", "RFQ-3"}},
		{"all status bypasses", "", "All Status", []string{"RFQ-1", "RFQ-2", "RFQ-3"}},
		{"status exact match", "", models.RfqStatusInvited, []string{"RFQ-1"}},
		{"search product", "pipes", "", []string{"RFQ-1"}},
		{"search buyer case-insensitive", "ACME", "", []string{"RFQ-1", "RFQ-3"}},
		{"search rfq id", "rfq-2", "", []string{"RFQ-2"}},
		{"search and status are conjunctive", "acme", models.RfqStatusCompleted, []string{"RFQ-3"}},
		{"conjunction can be empty", "acme", models.RfqStatusAssigned, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterRfqs(inboxFixture, tt.search, tt.status)
			ids := []string{}
			for _, r := range got {
				ids = append(ids, r.RfqID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

// rfqAPI fakes the RFQ-facing slice of the backend.
type rfqAPI struct {
	services.VendorAPI
	rfqFetches int
	quoteErr   error
	lastQuote  *models.CreateQuotePayload
}

func (f *rfqAPI) VendorRfqs(ctx context.Context, token string) ([]models.RfqRequest, error) {
	f.rfqFetches++
	return inboxFixture, nil
}

func (f *rfqAPI) CreateQuote(ctx context.Context, token string, payload models.CreateQuotePayload) (*models.Quote, error) {
	f.lastQuote = &payload
	if f.quoteErr != nil {
		return nil, f.quoteErr
	}
	return &models.Quote{ID: "q1", VendorAssignmentID: payload.VendorAssignmentID, VendorStatus: "Submitted"}, nil
}

func rfqTestRouter(api *rfqAPI) *gin.Engine {
	gin.SetMode(gin.TestMode)
	env := &Env{API: api, Store: newMemStore(), Drafts: NewDraftStore()}
	r := gin.New()
	r.GET("/portal/rfqs", ListRfqsHandler(env))
	r.POST("/portal/rfqs/:assignmentId/quote", SubmitQuoteHandler(env))
	return r
}

func TestListRfqsRelabelsInvited(t *testing.T) {
	api := &rfqAPI{}
	r := rfqTestRouter(api)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/portal/rfqs?status=Invited", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Rfqs []models.RfqView `json:"rfqs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Rfqs, 1)
	assert.Equal(t, "New", resp.Rfqs[0].DisplayStatus)
	// The underlying status is reported as the backend sent it.
	assert.Equal(t, models.RfqStatusInvited, resp.Rfqs[0].VendorStatus)
}

func TestSubmitQuoteSuccessRefetchesOnce(t *testing.T) {
	api := &rfqAPI{}
	r := rfqTestRouter(api)

	body := `{"unitPrice":"12.50","deliveryDate":"2026-09-15","validTill":"2026-09-30","description":"FOB"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/portal/rfqs/a1/quote", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, api.rfqFetches)
	require.NotNil(t, api.lastQuote)
	assert.Equal(t, "a1", api.lastQuote.VendorAssignmentID)
	assert.Equal(t, "Submitted", api.lastQuote.QuoteStatus)

	var resp struct {
		Quote models.Quote     `json:"quote"`
		Rfqs  []models.RfqView `json:"rfqs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "q1", resp.Quote.ID)
	assert.Len(t, resp.Rfqs, len(inboxFixture))
}

func TestSubmitQuoteFailureSurfacesMessageWithoutRefetch(t *testing.T) {
	api := &rfqAPI{quoteErr: assertError("Quote already submitted")}
	r := rfqTestRouter(api)

	body := `{"unitPrice":"12.50","deliveryDate":"2026-09-15","validTill":"2026-09-30"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/portal/rfqs/a1/quote", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Quote already submitted")
	assert.Equal(t, 0, api.rfqFetches)
}

func TestSubmitQuoteRequiresMandatoryFields(t *testing.T) {
	api := &rfqAPI{}
	r := rfqTestRouter(api)

	// validTill missing
	body := `{"unitPrice":"12.50","deliveryDate":"2026-09-15"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/portal/rfqs/a1/quote", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, api.lastQuote)
	assert.Equal(t, 0, api.rfqFetches)
}
