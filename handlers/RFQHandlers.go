package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vendorportal/models"
	"vendorportal/storage"
)

// DisplayStatus maps the backend's vendor-facing status to the label the
// portal shows. Only "Invited" is relabeled; the underlying value is never
// rewritten.
func DisplayStatus(status string) string {
	if status == models.RfqStatusInvited {
		return "New"
	}
	return status
}

// FilterRfqs applies the inbox filter: a case-insensitive substring match over
// product name, buyer name and RFQ id, AND an exact status match. An empty
// search matches everything; "All Status" (or empty) bypasses the status leg.
func FilterRfqs(rfqs []models.RfqRequest, search, status string) []models.RfqRequest {
	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]models.RfqRequest, 0, len(rfqs))
	for _, r := range rfqs {
		if needle != "" {
			haystack := strings.ToLower(r.ProductName + " " + r.Buyer.Name + " " + r.RfqID)
			if !strings.Contains(haystack, needle) {
				continue
			}
		}
		if status != "" && status != "All Status" && r.VendorStatus != status {
			continue
		}
		out = append(out, r)
	}
	return out
}

func toViews(rfqs []models.RfqRequest) []models.RfqView {
	views := make([]models.RfqView, 0, len(rfqs))
	for _, r := range rfqs {
		views = append(views, models.RfqView{RfqRequest: r, DisplayStatus: DisplayStatus(r.VendorStatus)})
	}
	return views
}

// ListRfqsHandler returns the RFQ inbox
// @Summary List RFQ requests
// @Description Fetch the vendor's RFQ assignments and apply the search/status filter
// @Tags RFQ
// @Produce json
// @Param search query string false "Substring over product name, buyer name and RFQ id"
// @Param status query string false "Exact status, or All Status"
// @Success 200 {object} models.RfqListResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /portal/rfqs [get]
func ListRfqsHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		rfqs, err := env.API.VendorRfqs(c.Request.Context(), authToken(c))
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		filtered := FilterRfqs(rfqs, c.Query("search"), c.Query("status"))
		c.JSON(http.StatusOK, gin.H{"rfqs": toViews(filtered)})
	}
}

// quoteForm is the quote submission body. The three date/price fields are
// required; description and attachment are optional.
type quoteForm struct {
	UnitPrice    string `json:"unitPrice" binding:"required"`
	DeliveryDate string `json:"deliveryDate" binding:"required"`
	ValidTill    string `json:"validTill" binding:"required"`
	Description  string `json:"description"`
	Attachment   string `json:"attachment"`
}

// SubmitQuoteHandler submits a quote for an RFQ assignment
// @Summary Submit quote
// @Description Create a quote on the backend; on success the inbox is refetched once and returned alongside the quote
// @Tags RFQ
// @Accept json
// @Produce json
// @Param assignmentId path string true "Vendor assignment id"
// @Param body body handlers.quoteForm true "Quote"
// @Success 200 {object} models.QuoteResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /portal/rfqs/{assignmentId}/quote [post]
func SubmitQuoteHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form quoteForm
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}
		payload := models.CreateQuotePayload{
			VendorAssignmentID: c.Param("assignmentId"),
			UnitPrice:          form.UnitPrice,
			DeliveryDate:       form.DeliveryDate,
			ValidTill:          form.ValidTill,
			Description:        form.Description,
			Attachment:         form.Attachment,
			QuoteStatus:        "Submitted",
		}
		quote, err := env.API.CreateQuote(c.Request.Context(), authToken(c), payload)
		if err != nil {
			// Failure surfaces the backend's message; no inbox refetch.
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		storage.LogActivity(env.Gorm, "rfq", "quote-submitted",
			"quote created for assignment "+payload.VendorAssignmentID, sessionID(c))

		// Exactly one refetch so the caller sees the updated assignment status.
		rfqs, err := env.API.VendorRfqs(c.Request.Context(), authToken(c))
		if err != nil {
			log.Println("[submit-quote] inbox refetch failed:", err)
			c.JSON(http.StatusOK, gin.H{"quote": quote})
			return
		}
		c.JSON(http.StatusOK, gin.H{"quote": quote, "rfqs": toViews(rfqs)})
	}
}

// ListQuotesHandler returns the vendor's submitted quotes
// @Summary List quotes
// @Tags RFQ
// @Produce json
// @Success 200 {object} models.QuoteListResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /portal/quotes [get]
func ListQuotesHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		quotes, err := env.API.VendorQuotes(c.Request.Context(), authToken(c))
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"quotes": quotes})
	}
}
