package models

// Swagger / API docs: common request and response models referenced by handler annotations

// ErrorResponse is used in @Failure for error responses
type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid input"`
	Details string `json:"details,omitempty" example:""`
}

// MessageResponse is generic response for APIs that return only {"message": "..."}
type MessageResponse struct {
	Message string `json:"message" example:"Success"`
}

// SessionResponse is used in @Success for login and signup (swagger)
type SessionResponse struct {
	Message string `json:"message" example:"Logged in"`
	User    User   `json:"user"`
}

// ProfileResponse is used in @Success for the profile editor endpoints (swagger)
type ProfileResponse struct {
	Profile *EditableProfile `json:"profile"`
}

// EntryCreatedResponse is used in @Success for list-entry adds (swagger)
type EntryCreatedResponse struct {
	ID string `json:"id" example:"2f1f6f9a-3c61-4d8e-9f0a-7b6a5e2d1c0b"`
}

// TagsCreatedResponse is used in @Success for bulk tag adds (swagger)
type TagsCreatedResponse struct {
	IDs []string `json:"ids"`
}

// RfqListResponse is used in @Success for the RFQ inbox (swagger)
type RfqListResponse struct {
	Rfqs []RfqView `json:"rfqs"`
}

// RfqView is an inbox row: the backend assignment plus the label the portal
// shows for its status.
type RfqView struct {
	RfqRequest
	DisplayStatus string `json:"displayStatus" example:"New"`
}

// QuoteResponse is used in @Success for quote submission (swagger)
type QuoteResponse struct {
	Quote Quote     `json:"quote"`
	Rfqs  []RfqView `json:"rfqs"`
}

// QuoteListResponse is used in @Success for quote history (swagger)
type QuoteListResponse struct {
	Quotes []Quote `json:"quotes"`
}

// UploadResponse is used in @Success for file uploads (swagger)
type UploadResponse struct {
	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`
}
