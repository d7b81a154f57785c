package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// ExportRfqsHandler streams the RFQ inbox as a spreadsheet
// @Summary Export RFQ inbox
// @Description Apply the same search/status filter as the inbox and stream the result as .xlsx
// @Tags RFQ
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param search query string false "Substring over product name, buyer name and RFQ id"
// @Param status query string false "Exact status, or All Status"
// @Success 200
// @Failure 502 {object} models.ErrorResponse
// @Router /portal/rfqs/export [get]
func ExportRfqsHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		rfqs, err := env.API.VendorRfqs(c.Request.Context(), authToken(c))
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		filtered := FilterRfqs(rfqs, c.Query("search"), c.Query("status"))

		f := excelize.NewFile()
		sheet := "Sheet1"
		headers := []string{"RFQ ID", "Product", "Quantity", "Target Unit Price", "Buyer", "Buyer Email", "Deadline", "Status"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}
		for row, r := range filtered {
			values := []interface{}{
				r.RfqID, r.ProductName, r.Quantity, r.TargetUnitPrice,
				r.Buyer.Name, r.Buyer.Email, r.Deadline, DisplayStatus(r.VendorStatus),
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				f.SetCellValue(sheet, cell, v)
			}
		}

		c.Header("Content-Disposition", `attachment; filename="rfq-requests.xlsx"`)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := f.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write spreadsheet"})
		}
	}
}

// QuotePdfHandler renders a submitted quote as a PDF
// @Summary Quote PDF
// @Description Render a one-page summary of a submitted quote
// @Tags RFQ
// @Produce application/pdf
// @Param id path string true "Quote id"
// @Success 200
// @Failure 404 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /portal/quotes/{id}/pdf [get]
func QuotePdfHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		quotes, err := env.API.VendorQuotes(c.Request.Context(), authToken(c))
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		id := c.Param("id")
		idx := -1
		for i := range quotes {
			if quotes[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Quote not found"})
			return
		}
		quote := quotes[idx]

		pdf := gofpdf.New("P", "mm", "A4", "")
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 16)
		pdf.Cell(0, 12, "Quote Summary")
		pdf.Ln(16)

		pdf.SetFont("Arial", "", 11)
		lines := [][2]string{
			{"Quote ID", quote.ID},
			{"Assignment", quote.VendorAssignmentID},
			{"Unit Price", quote.UnitPrice},
			{"Delivery Date", quote.DeliveryDate},
			{"Valid Till", quote.ValidTill},
			{"Status", quote.VendorStatus},
			{"Submitted", quote.CreatedAt},
		}
		for _, line := range lines {
			pdf.SetFont("Arial", "B", 11)
			pdf.Cell(45, 8, line[0])
			pdf.SetFont("Arial", "", 11)
			pdf.Cell(0, 8, line[1])
			pdf.Ln(8)
		}
		if quote.Description != "" {
			pdf.Ln(4)
			pdf.SetFont("Arial", "B", 11)
			pdf.Cell(0, 8, "Description")
			pdf.Ln(8)
			pdf.SetFont("Arial", "", 11)
			pdf.MultiCell(0, 6, quote.Description, "", "L", false)
		}

		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="quote-%s.pdf"`, quote.ID))
		c.Header("Content-Type", "application/pdf")
		if err := pdf.Output(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write PDF"})
		}
	}
}
