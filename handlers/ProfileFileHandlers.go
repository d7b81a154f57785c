package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vendorportal/services"
)

// UploadCatalogFileHandler uploads a catalog PDF
// @Summary Upload catalog file
// @Description Validate, presign, upload to storage and confirm, then attach the file to the catalog entry
// @Tags Profile
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Catalog id"
// @Param file formData file true "PDF file, 10MB max"
// @Success 200 {object} models.UploadResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /portal/profile/catalogs/{id}/file [post]
func UploadCatalogFileHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		draft, release, err := draftFor(c, env)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		defer release()
		entry, err := draft.CatalogEntry(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		header, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
			return
		}
		// Validation runs before any backend call.
		if err := services.ValidateCatalogFile(header.Filename, header.Size); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
			return
		}
		defer file.Close()

		// The entry's name and description ride on the confirm step.
		ref, err := env.Uploader.UploadCatalog(c.Request.Context(), authToken(c), header.Filename, header.Size, file, entry.Name, entry.Description)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		entry.PdfURL = ref.URL
		entry.PdfFileName = ref.FileName
		c.JSON(http.StatusOK, gin.H{"fileUrl": ref.URL, "fileName": ref.FileName})
	}
}

// UploadDocumentFileHandler uploads a business document
// @Summary Upload document file
// @Description Presign and upload a business document, then attach it to the document entry
// @Tags Profile
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Document id"
// @Param file formData file true "File, 10MB max"
// @Success 200 {object} models.UploadResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /portal/profile/documents/{id}/file [post]
func UploadDocumentFileHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		draft, release, err := draftFor(c, env)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		defer release()
		header, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
			return
		}
		if err := services.ValidateFileSize(header.Size); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
			return
		}
		defer file.Close()

		ref, err := env.Uploader.UploadFile(c.Request.Context(), authToken(c), header.Filename, header.Size, file)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		if err := draft.SetDocumentFile(c.Param("id"), ref.URL, ref.FileName); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"fileUrl": ref.URL, "fileName": ref.FileName})
	}
}

// UploadSupplierCatalogHandler uploads the supplier catalog sheet
// @Summary Upload supplier catalog
// @Tags Profile
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File, 10MB max"
// @Success 200 {object} models.UploadResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /portal/profile/supplier-catalog/file [post]
func UploadSupplierCatalogHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		draft, release, err := draftFor(c, env)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		defer release()
		header, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
			return
		}
		if err := services.ValidateFileSize(header.Size); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
			return
		}
		defer file.Close()

		ref, err := env.Uploader.UploadFile(c.Request.Context(), authToken(c), header.Filename, header.Size, file)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		draft.SetSupplierCatalog(ref.URL, ref.FileName)
		c.JSON(http.StatusOK, gin.H{"fileUrl": ref.URL, "fileName": ref.FileName})
	}
}

// ViewCatalogHandler opens a saved catalog file
// @Summary View catalog file
// @Description Exchange the catalog's array index for a short-lived signed URL and redirect to it
// @Tags Profile
// @Param id path int true "Catalog index in the saved profile"
// @Success 302
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /portal/profile/catalogs/{id}/view [get]
func ViewCatalogHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		index, err := strconv.Atoi(c.Param("id"))
		if err != nil || index < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid catalog index"})
			return
		}
		signed, err := env.API.CatalogSignedURL(c.Request.Context(), authToken(c), index)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.Redirect(http.StatusFound, signed)
	}
}

// ViewFileHandler opens any stored file by its durable URL
// @Summary View stored file
// @Description Exchange a stored file URL for a short-lived signed URL and redirect to it
// @Tags Profile
// @Param url query string true "Stored file URL"
// @Success 302
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /portal/files/view [get]
func ViewFileHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileURL := c.Query("url")
		if fileURL == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "url query parameter is required"})
			return
		}
		signed, err := env.API.FileSignedURL(c.Request.Context(), authToken(c), fileURL)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.Redirect(http.StatusFound, signed)
	}
}
