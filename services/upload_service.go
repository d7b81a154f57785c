package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// MaxUploadSize caps every portal upload at 10MB, checked before any network
// traffic happens.
const MaxUploadSize = 10 << 20

// ContentTypeForFile maps a file name's extension to the MIME type sent on the
// presign request and the storage PUT.
func ContentTypeForFile(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return "application/pdf"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".xls":
		return "application/vnd.ms-excel"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

// ValidateCatalogFile enforces the catalog upload rules: PDF only, 10MB max.
func ValidateCatalogFile(fileName string, size int64) error {
	if strings.ToLower(filepath.Ext(fileName)) != ".pdf" {
		return fmt.Errorf("only PDF files are allowed for catalogs")
	}
	if size > MaxUploadSize {
		return fmt.Errorf("file size must be less than 10MB")
	}
	return nil
}

// ValidateFileSize enforces the generic upload cap.
func ValidateFileSize(size int64) error {
	if size > MaxUploadSize {
		return fmt.Errorf("file size must be less than 10MB")
	}
	return nil
}

// FileReference is what an upload leaves behind: the durable URL the profile
// stores plus the backend's normalized file name.
type FileReference struct {
	URL      string
	FileName string
}

// Uploader drives the presigned upload choreography against the backend.
type Uploader struct {
	API VendorAPI
}

func NewUploader(api VendorAPI) *Uploader {
	return &Uploader{API: api}
}

// UploadCatalog runs the three-step catalog flow: presign, raw PUT to object
// storage, confirm. The catalog entry's name and description ride on the
// confirm call so the backend can persist them alongside the file. Validation
// happens first so an oversized or non-PDF file never produces a network call.
func (u *Uploader) UploadCatalog(ctx context.Context, token, fileName string, size int64, body io.Reader, catalogName, description string) (*FileReference, error) {
	if err := ValidateCatalogFile(fileName, size); err != nil {
		return nil, err
	}
	presigned, err := u.API.CatalogPresignedURL(ctx, token, fileName, "application/pdf")
	if err != nil {
		return nil, err
	}
	if err := u.API.UploadToPresignedURL(ctx, presigned.PresignedURL, "application/pdf", body, size); err != nil {
		return nil, err
	}
	if err := u.API.ConfirmCatalogUpload(ctx, token, presigned.S3URL, presigned.FileName, catalogName, description); err != nil {
		return nil, err
	}
	return &FileReference{URL: presigned.S3URL, FileName: presigned.FileName}, nil
}

// UploadFile runs the two-step generic flow: presign then PUT. Generic files
// have no confirm step.
func (u *Uploader) UploadFile(ctx context.Context, token, fileName string, size int64, body io.Reader) (*FileReference, error) {
	if err := ValidateFileSize(size); err != nil {
		return nil, err
	}
	contentType := ContentTypeForFile(fileName)
	presigned, err := u.API.FilePresignedURL(ctx, token, fileName, contentType)
	if err != nil {
		return nil, err
	}
	if err := u.API.UploadToPresignedURL(ctx, presigned.PresignedURL, contentType, body, size); err != nil {
		return nil, err
	}
	return &FileReference{URL: presigned.S3URL, FileName: presigned.FileName}, nil
}
