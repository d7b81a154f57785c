package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"

	"vendorportal/models"
)

// VendorAPI is the portal's view of the remote vendor backend: one method per
// backend operation. Every call is a single attempt; the portal adds no
// retries and no timeout beyond whatever the injected http.Client carries.
type VendorAPI interface {
	Signup(ctx context.Context, req models.SignupRequest) (*models.TokenResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error)
	CurrentUser(ctx context.Context, token string) (*models.User, error)
	UpdatePhone(ctx context.Context, token, phone string) (*models.User, error)
	GoogleAuthURL(ctx context.Context, redirect string) (string, error)
	VendorProfile(ctx context.Context, token string) (*models.VendorProfile, error)
	UpdateVendorProfile(ctx context.Context, token string, profile models.VendorProfile) (*models.VendorProfile, error)
	CatalogPresignedURL(ctx context.Context, token, fileName, fileType string) (*models.PresignedUpload, error)
	ConfirmCatalogUpload(ctx context.Context, token, s3URL, fileName, catalogName, description string) error
	FilePresignedURL(ctx context.Context, token, fileName, fileType string) (*models.PresignedUpload, error)
	FileSignedURL(ctx context.Context, token, fileURL string) (string, error)
	CatalogSignedURL(ctx context.Context, token string, index int) (string, error)
	VendorRfqs(ctx context.Context, token string) ([]models.RfqRequest, error)
	CreateQuote(ctx context.Context, token string, payload models.CreateQuotePayload) (*models.Quote, error)
	VendorQuotes(ctx context.Context, token string) ([]models.Quote, error)
	UploadToPresignedURL(ctx context.Context, presignedURL, contentType string, body io.Reader, size int64) error
}

// Client talks to the vendor backend over its JSON envelope protocol.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// apiEnvelope is the backend's uniform response wrapper. Failures put the
// human-readable text in message, sometimes in error.
type apiEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

// call performs one backend request and unwraps the envelope. Any failure is
// returned as an error whose text is the backend's message, else its error
// field, else the operation-specific fallback.
func (c *Client) call(ctx context.Context, token, method, path string, body interface{}, fallback string) (json.RawMessage, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fallback, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fallback, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := c.httpClient
	if token != "" {
		// The bearer header rides on an oauth2 transport wrapped around the
		// injected client.
		octx := context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
		client = oauth2.NewClient(octx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fallback, err)
	}
	defer resp.Body.Close()

	var env apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%s: %w", fallback, err)
	}
	// A non-2xx status is a failure no matter what the body claims.
	if resp.StatusCode < 200 || resp.StatusCode > 299 || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		if msg == "" {
			msg = fallback
		}
		return nil, errors.New(msg)
	}
	return env.Data, nil
}

func (c *Client) Signup(ctx context.Context, req models.SignupRequest) (*models.TokenResponse, error) {
	const fallback = "Signup failed"
	data, err := c.call(ctx, "", http.MethodPost, "/api/auth/signup", req, fallback)
	if err != nil {
		return nil, err
	}
	var out models.TokenResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", fallback, err)
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error) {
	const fallback = "Login failed"
	data, err := c.call(ctx, "", http.MethodPost, "/api/auth/login", req, fallback)
	if err != nil {
		return nil, err
	}
	var out models.TokenResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", fallback, err)
	}
	return &out, nil
}

func (c *Client) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	const fallback = "Not authenticated"
	data, err := c.call(ctx, token, http.MethodGet, "/api/auth/me", nil, fallback)
	if err != nil {
		return nil, err
	}
	var out struct {
		User models.User `json:"user"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", fallback, err)
	}
	return &out.User, nil
}

func (c *Client) UpdatePhone(ctx context.Context, token, phone string) (*models.User, error) {
	const fallback = "Failed to update phone"
	body := map[string]string{"phone": phone}
	data, err := c.call(ctx, token, http.MethodPatch, "/api/auth/me", body, fallback)
	if err != nil {
		return nil, err
	}
	var out struct {
		User models.User `json:"user"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", fallback, err)
	}
	return &out.User, nil
}

// GoogleAuthURL asks the backend for the Google consent URL; the redirect
// parameter is where the backend sends the browser after the handshake.
func (c *Client) GoogleAuthURL(ctx context.Context, redirect string) (string, error) {
	const fallback = "Failed to get Google OAuth URL"
	path := "/api/auth/google"
	if redirect != "" {
		path += "?redirect=" + url.QueryEscape(redirect)
	}
	data, err := c.call(ctx, "", http.MethodGet, path, nil, fallback)
	if err != nil {
		return "", err
	}
	var out struct {
		AuthURL string `json:"authUrl"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("%s: %w", fallback, err)
	}
	return out.AuthURL, nil
}

func (c *Client) VendorProfile(ctx context.Context, token string) (*models.VendorProfile, error) {
	const fallback = "Failed to get vendor profile"
	data, err := c.call(ctx, token, http.MethodGet, "/api/vendor/profile", nil, fallback)
	if err != nil {
		return nil, err
	}
	var out struct {
		Profile *models.VendorProfile `json:"profile"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", fallback, err)
	}
	return out.Profile, nil
}

func (c *Client) UpdateVendorProfile(ctx context.Context, token string, profile models.VendorProfile) (*models.VendorProfile, error) {
	const fallback = "Failed to update vendor profile"
	data, err := c.call(ctx, token, http.MethodPut, "/api/vendor/profile", profile, fallback)
	if err != nil {
		return nil, err
	}
	var out struct {
		Profile *models.VendorProfile `json:"profile"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", fallback, err)
	}
	return out.Profile, nil
}

func (c *Client) CatalogPresignedURL(ctx context.Context, token, fileName, fileType string) (*models.PresignedUpload, error) {
	const fallback = "Failed to generate presigned URL"
	body := map[string]string{"fileName": fileName, "fileType": fileType}
	data, err := c.call(ctx, token, http.MethodPost, "/api/vendor/catalog/presigned-url", body, fallback)
	if err != nil {
		return nil, err
	}
	var out models.PresignedUpload
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", fallback, err)
	}
	return &out, nil
}

// ConfirmCatalogUpload tells the backend to persist the uploaded file as a
// catalog. Catalog name and description are optional and omitted when empty.
func (c *Client) ConfirmCatalogUpload(ctx context.Context, token, s3URL, fileName, catalogName, description string) error {
	body := map[string]string{"s3Url": s3URL, "fileName": fileName}
	if catalogName != "" {
		body["catalogName"] = catalogName
	}
	if description != "" {
		body["description"] = description
	}
	_, err := c.call(ctx, token, http.MethodPost, "/api/vendor/catalog/confirm-upload", body, "Failed to confirm upload")
	return err
}

func (c *Client) FilePresignedURL(ctx context.Context, token, fileName, fileType string) (*models.PresignedUpload, error) {
	const fallback = "Failed to generate presigned URL"
	body := map[string]string{"fileName": fileName, "fileType": fileType}
	data, err := c.call(ctx, token, http.MethodPost, "/api/product-sheet/presigned-url", body, fallback)
	if err != nil {
		return nil, err
	}
	var out models.PresignedUpload
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", fallback, err)
	}
	return &out, nil
}

// FileSignedURL exchanges a stored file URL for a short-lived signed one.
func (c *Client) FileSignedURL(ctx context.Context, token, fileURL string) (string, error) {
	const fallback = "Failed to get signed file URL"
	body := map[string]string{"url": fileURL}
	data, err := c.call(ctx, token, http.MethodPost, "/api/product-sheet/presigned-download", body, fallback)
	if err != nil {
		return "", err
	}
	var out struct {
		SignedURL string `json:"signedUrl"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("%s: %w", fallback, err)
	}
	return out.SignedURL, nil
}

// CatalogSignedURL is the index-keyed variant: the backend addresses catalog
// files by their position in the saved profile's catalog array.
func (c *Client) CatalogSignedURL(ctx context.Context, token string, index int) (string, error) {
	const fallback = "Failed to get signed URL"
	path := fmt.Sprintf("/api/vendor/catalog/%d/signed-url", index)
	data, err := c.call(ctx, token, http.MethodGet, path, nil, fallback)
	if err != nil {
		return "", err
	}
	var out struct {
		SignedURL string `json:"signedUrl"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("%s: %w", fallback, err)
	}
	return out.SignedURL, nil
}

func (c *Client) VendorRfqs(ctx context.Context, token string) ([]models.RfqRequest, error) {
	const fallback = "Failed to get RFQ requests"
	data, err := c.call(ctx, token, http.MethodGet, "/api/vendor/rfqs", nil, fallback)
	if err != nil {
		return nil, err
	}
	var out struct {
		Rfqs []models.RfqRequest `json:"rfqs"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", fallback, err)
	}
	return out.Rfqs, nil
}

func (c *Client) CreateQuote(ctx context.Context, token string, payload models.CreateQuotePayload) (*models.Quote, error) {
	const fallback = "Failed to create quote"
	data, err := c.call(ctx, token, http.MethodPost, "/api/vendor/quotes", payload, fallback)
	if err != nil {
		return nil, err
	}
	var out struct {
		Quote models.Quote `json:"quote"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", fallback, err)
	}
	return &out.Quote, nil
}

func (c *Client) VendorQuotes(ctx context.Context, token string) ([]models.Quote, error) {
	const fallback = "Failed to get quotes"
	data, err := c.call(ctx, token, http.MethodGet, "/api/vendor/quotes", nil, fallback)
	if err != nil {
		return nil, err
	}
	var out struct {
		Quotes []models.Quote `json:"quotes"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", fallback, err)
	}
	return out.Quotes, nil
}

// UploadToPresignedURL PUTs the file bytes straight to object storage. The
// presigned URL already carries the authorization, so no bearer is attached
// and no envelope comes back.
func (c *Client) UploadToPresignedURL(ctx context.Context, presignedURL, contentType string, body io.Reader, size int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, presignedURL, body)
	if err != nil {
		return fmt.Errorf("Failed to upload file to storage: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = size

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("Failed to upload file to storage: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("Failed to upload file to storage: status %d", resp.StatusCode)
	}
	return nil
}
