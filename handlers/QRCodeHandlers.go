package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
)

// ProfileQRHandler returns a QR code for the vendor's profile page
// @Summary Profile QR code
// @Description Generate a PNG QR code pointing at the vendor's profile
// @Tags Profile
// @Produce image/png
// @Success 200
// @Failure 500 {object} models.ErrorResponse
// @Router /portal/profile/qr [get]
func ProfileQRHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		link := env.PortalBaseURL + "/profile"
		png, err := qrcode.Encode(link, qrcode.Medium, 256)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
			return
		}
		c.Data(http.StatusOK, "image/png", png)
	}
}
