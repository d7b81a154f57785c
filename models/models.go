package models

// Types mirroring the vendor backend's JSON contracts. Field names follow the
// backend exactly; optional fields carry omitempty so that an empty value is
// dropped from the payload instead of being sent as "".

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type TokenResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ContactDetail struct {
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Designation   string `json:"designation,omitempty"`
}

// Address types accepted by the backend. A custom label is only meaningful
// when the type is "others".
const (
	AddressTypeOffice    = "office"
	AddressTypeWarehouse = "warehouse"
	AddressTypeFactory   = "factory"
	AddressTypeStore     = "store"
	AddressTypeOthers    = "others"
)

type BusinessAddress struct {
	AddressLine1       string `json:"addressLine1"`
	AddressLine2       string `json:"addressLine2,omitempty"`
	City               string `json:"city"`
	State              string `json:"state"`
	Pincode            string `json:"pincode"`
	AddressType        string `json:"addressType,omitempty"`
	CustomAddressLabel string `json:"customAddressLabel,omitempty"`
}

type PlatformRating struct {
	Platform     string  `json:"platform"`
	Rating       float64 `json:"rating"`
	Count        int     `json:"count"`
	PlatformLink string  `json:"platformLink,omitempty"`
}

type Catalog struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PdfURL      string `json:"pdfUrl,omitempty"`
	PdfFileName string `json:"pdfFileName,omitempty"`
}

type ClienteleEntry struct {
	Name     string `json:"name"`
	Industry string `json:"industry,omitempty"`
	Website  string `json:"website,omitempty"`
}

type BankAccount struct {
	BankName          string `json:"bankName,omitempty"`
	AccountHolderName string `json:"accountHolderName,omitempty"`
	AccountNumber     string `json:"accountNumber,omitempty"`
	IFSCCode          string `json:"ifscCode,omitempty"`
}

type BusinessDocument struct {
	DocumentType string `json:"documentType"`
	FileURL      string `json:"fileUrl,omitempty"`
	FileName     string `json:"fileName,omitempty"`
}

type SupplierBrand struct {
	Name       string   `json:"name"`
	Categories []string `json:"categories,omitempty"`
}

type SupplierCatalog struct {
	FileURL  string `json:"fileUrl,omitempty"`
	FileName string `json:"fileName,omitempty"`
}

type VendorProfile struct {
	ID                string             `json:"_id,omitempty"`
	Experience        int                `json:"experience,omitempty"`
	TeamSize          int                `json:"teamSize,omitempty"`
	About             string             `json:"about,omitempty"`
	Website           string             `json:"website,omitempty"`
	Location          string             `json:"location,omitempty"`
	MinimumOrderValue int                `json:"minimumOrderValue,omitempty"`
	WhoAreYou         string             `json:"whoAreYou,omitempty"`
	Clientele         []ClienteleEntry   `json:"clientele,omitempty"`
	PlatformRatings   []PlatformRating   `json:"platformRatings,omitempty"`
	ContactDetails    []ContactDetail    `json:"contactDetails,omitempty"`
	BusinessAddresses []BusinessAddress  `json:"businessAddresses,omitempty"`
	Catalogs          []Catalog          `json:"catalogs,omitempty"`
	Industries        []string           `json:"industries,omitempty"`
	BankDetails       *BankAccount       `json:"bankDetails,omitempty"`
	BankAccounts      []BankAccount      `json:"bankAccounts,omitempty"`
	BusinessDocuments []BusinessDocument `json:"businessDocuments,omitempty"`
	SupplierBrands    []SupplierBrand    `json:"supplierBrands,omitempty"`
	SupplierCatalog   *SupplierCatalog   `json:"supplierCatalog,omitempty"`
	CreatedAt         string             `json:"createdAt,omitempty"`
	UpdatedAt         string             `json:"updatedAt,omitempty"`
}

type Buyer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Vendor-facing RFQ statuses as the backend reports them. "Invited" is shown
// to the vendor as "New" but the underlying value is never rewritten.
const (
	RfqStatusInvited   = "Invited"
	RfqStatusAssigned  = "Assigned"
	RfqStatusCompleted = "Completed"
)

type RfqRequest struct {
	RfqID            string `json:"rfqId"`
	AssignmentID     string `json:"assignmentId"`
	EnquiryProductID string `json:"enquiryProductId,omitempty"`
	ProductName      string `json:"productName"`
	Quantity         string `json:"quantity"`
	TargetUnitPrice  string `json:"targetUnitPrice,omitempty"`
	Buyer            Buyer  `json:"buyer"`
	Deadline         string `json:"deadline"`
	VendorStatus     string `json:"vendorStatus"`
	CreatedAt        string `json:"createdAt,omitempty"`
}

type Quote struct {
	ID                 string `json:"_id,omitempty"`
	VendorAssignmentID string `json:"vendorAssignmentId"`
	UnitPrice          string `json:"unitPrice,omitempty"`
	DeliveryDate       string `json:"deliveryDate,omitempty"`
	ValidTill          string `json:"validTill,omitempty"`
	Description        string `json:"description,omitempty"`
	Attachment         string `json:"attachment,omitempty"`
	VisibleToClient    bool   `json:"visibletoClient,omitempty"`
	AdminStatus        string `json:"adminStatus,omitempty"`
	BuyerStatus        string `json:"buyerStatus,omitempty"`
	VendorStatus       string `json:"vendorStatus,omitempty"`
	CreatedAt          string `json:"createdAt,omitempty"`
	UpdatedAt          string `json:"updatedAt,omitempty"`
}

type CreateQuotePayload struct {
	VendorAssignmentID string `json:"vendorAssignmentId"`
	UnitPrice          string `json:"unitPrice,omitempty"`
	DeliveryDate       string `json:"deliveryDate,omitempty"`
	ValidTill          string `json:"validTill,omitempty"`
	Description        string `json:"description,omitempty"`
	Attachment         string `json:"attachment,omitempty"`
	QuoteStatus        string `json:"quoteStatus,omitempty"`
}

// PresignedUpload is the backend's answer to a presigned-URL request, for both
// the catalog-specific and the generic file endpoint.
type PresignedUpload struct {
	PresignedURL string `json:"presignedUrl"`
	S3URL        string `json:"s3Url"`
	Key          string `json:"key"`
	FileName     string `json:"fileName"`
}
