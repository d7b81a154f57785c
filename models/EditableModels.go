package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// The profile editor works on a session-local copy of the vendor profile in
// which every repeated sub-record carries a locally generated id. The ids give
// list entries a stable identity while the draft is being edited; they are
// stripped again when the save payload is built. Ids are UUIDs, so two adds in
// the same instant can never collide.

func newLocalID() string {
	return uuid.NewString()
}

type EditableContact struct {
	LocalID string `json:"localId"`
	ContactDetail
}

type EditableAddress struct {
	LocalID string `json:"localId"`
	BusinessAddress
}

type EditableRating struct {
	LocalID string `json:"localId"`
	PlatformRating
}

type EditableCatalog struct {
	LocalID string `json:"localId"`
	Catalog
}

type EditableBankAccount struct {
	LocalID string `json:"localId"`
	BankAccount
}

type EditableClient struct {
	LocalID string `json:"localId"`
	ClienteleEntry
}

type EditableDocument struct {
	LocalID string `json:"localId"`
	BusinessDocument
}

// EditableTag is a single free-text tag (an industry, or a brand category).
type EditableTag struct {
	LocalID string `json:"localId"`
	Value   string `json:"value"`
}

type EditableBrand struct {
	LocalID    string        `json:"localId"`
	Name       string        `json:"name"`
	Categories []EditableTag `json:"categories"`
}

// EditableProfile is the draft the portal holds per session. Scalar fields are
// plain values (zero when the backend has nothing), list fields are always
// non-nil so the editing surface never has to distinguish absent from empty.
type EditableProfile struct {
	Experience        int                   `json:"experience"`
	TeamSize          int                   `json:"teamSize"`
	About             string                `json:"about"`
	Website           string                `json:"website"`
	Location          string                `json:"location"`
	MinimumOrderValue int                   `json:"minimumOrderValue"`
	WhoAreYou         string                `json:"whoAreYou"`
	Contacts          []EditableContact     `json:"contacts"`
	Addresses         []EditableAddress     `json:"addresses"`
	Ratings           []EditableRating      `json:"ratings"`
	Catalogs          []EditableCatalog     `json:"catalogs"`
	Industries        []EditableTag         `json:"industries"`
	BankAccounts      []EditableBankAccount `json:"bankAccounts"`
	Clientele         []EditableClient      `json:"clientele"`
	Documents         []EditableDocument    `json:"documents"`
	Brands            []EditableBrand       `json:"brands"`
	SupplierCatalog   SupplierCatalog       `json:"supplierCatalog"`
}

// NewEditableProfile maps a backend profile into the editable shape. A nil
// profile (vendor has never saved one) yields an empty draft with all lists
// present.
func NewEditableProfile(p *VendorProfile) *EditableProfile {
	e := &EditableProfile{
		Contacts:     []EditableContact{},
		Addresses:    []EditableAddress{},
		Ratings:      []EditableRating{},
		Catalogs:     []EditableCatalog{},
		Industries:   []EditableTag{},
		BankAccounts: []EditableBankAccount{},
		Clientele:    []EditableClient{},
		Documents:    []EditableDocument{},
		Brands:       []EditableBrand{},
	}
	if p == nil {
		return e
	}

	e.Experience = p.Experience
	e.TeamSize = p.TeamSize
	e.About = p.About
	e.Website = p.Website
	e.Location = p.Location
	e.MinimumOrderValue = p.MinimumOrderValue
	e.WhoAreYou = p.WhoAreYou

	for _, c := range p.ContactDetails {
		e.Contacts = append(e.Contacts, EditableContact{LocalID: newLocalID(), ContactDetail: c})
	}
	for _, a := range p.BusinessAddresses {
		e.Addresses = append(e.Addresses, EditableAddress{LocalID: newLocalID(), BusinessAddress: a})
	}
	for _, r := range p.PlatformRatings {
		e.Ratings = append(e.Ratings, EditableRating{LocalID: newLocalID(), PlatformRating: r})
	}
	for _, c := range p.Catalogs {
		e.Catalogs = append(e.Catalogs, EditableCatalog{LocalID: newLocalID(), Catalog: c})
	}
	for _, v := range p.Industries {
		e.Industries = append(e.Industries, EditableTag{LocalID: newLocalID(), Value: v})
	}
	for _, b := range p.BankAccounts {
		e.BankAccounts = append(e.BankAccounts, EditableBankAccount{LocalID: newLocalID(), BankAccount: b})
	}
	// Older profiles only have the single legacy bankDetails object.
	if len(p.BankAccounts) == 0 && p.BankDetails != nil {
		e.BankAccounts = append(e.BankAccounts, EditableBankAccount{LocalID: newLocalID(), BankAccount: *p.BankDetails})
	}
	for _, c := range p.Clientele {
		e.Clientele = append(e.Clientele, EditableClient{LocalID: newLocalID(), ClienteleEntry: c})
	}
	for _, d := range p.BusinessDocuments {
		e.Documents = append(e.Documents, EditableDocument{LocalID: newLocalID(), BusinessDocument: d})
	}
	for _, b := range p.SupplierBrands {
		eb := EditableBrand{LocalID: newLocalID(), Name: b.Name, Categories: []EditableTag{}}
		for _, cat := range b.Categories {
			eb.Categories = append(eb.Categories, EditableTag{LocalID: newLocalID(), Value: cat})
		}
		e.Brands = append(e.Brands, eb)
	}
	if p.SupplierCatalog != nil {
		e.SupplierCatalog = *p.SupplierCatalog
	}
	return e
}

// SavePayload builds the denormalized profile the backend expects: local ids
// stripped, tag lists flattened back to string slices, and bank details sent
// both ways — the first account as the legacy bankDetails object and the full
// list under bankAccounts. Optional empty strings are dropped by the omitempty
// tags on the backend types.
func (e *EditableProfile) SavePayload() VendorProfile {
	p := VendorProfile{
		Experience:        e.Experience,
		TeamSize:          e.TeamSize,
		About:             e.About,
		Website:           e.Website,
		Location:          e.Location,
		MinimumOrderValue: e.MinimumOrderValue,
		WhoAreYou:         e.WhoAreYou,
	}
	for _, c := range e.Contacts {
		p.ContactDetails = append(p.ContactDetails, c.ContactDetail)
	}
	for _, a := range e.Addresses {
		p.BusinessAddresses = append(p.BusinessAddresses, a.BusinessAddress)
	}
	for _, r := range e.Ratings {
		p.PlatformRatings = append(p.PlatformRatings, r.PlatformRating)
	}
	for _, c := range e.Catalogs {
		p.Catalogs = append(p.Catalogs, c.Catalog)
	}
	for _, t := range e.Industries {
		p.Industries = append(p.Industries, t.Value)
	}
	for _, b := range e.BankAccounts {
		p.BankAccounts = append(p.BankAccounts, b.BankAccount)
	}
	if len(e.BankAccounts) > 0 {
		first := e.BankAccounts[0].BankAccount
		p.BankDetails = &first
	}
	for _, c := range e.Clientele {
		p.Clientele = append(p.Clientele, c.ClienteleEntry)
	}
	for _, d := range e.Documents {
		p.BusinessDocuments = append(p.BusinessDocuments, d.BusinessDocument)
	}
	for _, b := range e.Brands {
		sb := SupplierBrand{Name: b.Name}
		for _, cat := range b.Categories {
			sb.Categories = append(sb.Categories, cat.Value)
		}
		p.SupplierBrands = append(p.SupplierBrands, sb)
	}
	if e.SupplierCatalog.FileURL != "" {
		sc := e.SupplierCatalog
		p.SupplierCatalog = &sc
	}
	return p
}

// ScalarUpdate carries the top-level scalar fields of the editor; only fields
// present in the request body are applied.
type ScalarUpdate struct {
	Experience        *int    `json:"experience"`
	TeamSize          *int    `json:"teamSize"`
	About             *string `json:"about"`
	Website           *string `json:"website"`
	Location          *string `json:"location"`
	MinimumOrderValue *int    `json:"minimumOrderValue"`
	WhoAreYou         *string `json:"whoAreYou"`
}

func (e *EditableProfile) ApplyScalars(u ScalarUpdate) {
	if u.Experience != nil {
		e.Experience = *u.Experience
	}
	if u.TeamSize != nil {
		e.TeamSize = *u.TeamSize
	}
	if u.About != nil {
		e.About = *u.About
	}
	if u.Website != nil {
		e.Website = *u.Website
	}
	if u.Location != nil {
		e.Location = *u.Location
	}
	if u.MinimumOrderValue != nil {
		e.MinimumOrderValue = *u.MinimumOrderValue
	}
	if u.WhoAreYou != nil {
		e.WhoAreYou = *u.WhoAreYou
	}
}

func entryNotFound(list, id string) error {
	return fmt.Errorf("no %s entry with id %s", list, id)
}

func unknownField(list, field string) error {
	return fmt.Errorf("unknown %s field %q", list, field)
}

// ---- contacts ----

func (e *EditableProfile) AddContact(c ContactDetail) string {
	entry := EditableContact{LocalID: newLocalID(), ContactDetail: c}
	e.Contacts = append(e.Contacts, entry)
	return entry.LocalID
}

func (e *EditableProfile) UpdateContact(id, field, value string) error {
	for i := range e.Contacts {
		if e.Contacts[i].LocalID != id {
			continue
		}
		switch field {
		case "contactPerson":
			e.Contacts[i].ContactPerson = value
		case "email":
			e.Contacts[i].Email = value
		case "phone":
			e.Contacts[i].Phone = value
		case "designation":
			e.Contacts[i].Designation = value
		default:
			return unknownField("contact", field)
		}
		return nil
	}
	return entryNotFound("contact", id)
}

// RemoveContact refuses to drop the last contact; the backend treats at least
// one reachable contact as part of a valid profile.
func (e *EditableProfile) RemoveContact(id string) error {
	idx := -1
	for i := range e.Contacts {
		if e.Contacts[i].LocalID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return entryNotFound("contact", id)
	}
	if len(e.Contacts) <= 1 {
		return fmt.Errorf("at least one contact is required")
	}
	e.Contacts = append(e.Contacts[:idx], e.Contacts[idx+1:]...)
	return nil
}

// ---- addresses ----

func validAddressType(t string) bool {
	switch t {
	case AddressTypeOffice, AddressTypeWarehouse, AddressTypeFactory, AddressTypeStore, AddressTypeOthers:
		return true
	}
	return false
}

func (e *EditableProfile) AddAddress(a BusinessAddress) (string, error) {
	if a.AddressType != "" && !validAddressType(a.AddressType) {
		return "", fmt.Errorf("invalid address type %q", a.AddressType)
	}
	entry := EditableAddress{LocalID: newLocalID(), BusinessAddress: a}
	e.Addresses = append(e.Addresses, entry)
	return entry.LocalID, nil
}

func (e *EditableProfile) UpdateAddress(id, field, value string) error {
	for i := range e.Addresses {
		if e.Addresses[i].LocalID != id {
			continue
		}
		switch field {
		case "addressLine1":
			e.Addresses[i].AddressLine1 = value
		case "addressLine2":
			e.Addresses[i].AddressLine2 = value
		case "city":
			e.Addresses[i].City = value
		case "state":
			e.Addresses[i].State = value
		case "pincode":
			e.Addresses[i].Pincode = value
		case "addressType":
			if !validAddressType(value) {
				return fmt.Errorf("invalid address type %q", value)
			}
			e.Addresses[i].AddressType = value
			// The custom label only applies to "others".
			if value != AddressTypeOthers {
				e.Addresses[i].CustomAddressLabel = ""
			}
		case "customAddressLabel":
			e.Addresses[i].CustomAddressLabel = value
		default:
			return unknownField("address", field)
		}
		return nil
	}
	return entryNotFound("address", id)
}

func (e *EditableProfile) RemoveAddress(id string) error {
	idx := -1
	for i := range e.Addresses {
		if e.Addresses[i].LocalID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return entryNotFound("address", id)
	}
	if len(e.Addresses) <= 1 {
		return fmt.Errorf("at least one business address is required")
	}
	e.Addresses = append(e.Addresses[:idx], e.Addresses[idx+1:]...)
	return nil
}

// ---- platform ratings ----

func (e *EditableProfile) AddRating(r PlatformRating) string {
	entry := EditableRating{LocalID: newLocalID(), PlatformRating: r}
	e.Ratings = append(e.Ratings, entry)
	return entry.LocalID
}

func (e *EditableProfile) UpdateRating(id, field, value string) error {
	for i := range e.Ratings {
		if e.Ratings[i].LocalID != id {
			continue
		}
		switch field {
		case "platform":
			e.Ratings[i].Platform = value
		case "rating":
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("rating must be a number: %w", err)
			}
			e.Ratings[i].Rating = f
		case "count":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("count must be an integer: %w", err)
			}
			e.Ratings[i].Count = n
		case "platformLink":
			e.Ratings[i].PlatformLink = value
		default:
			return unknownField("rating", field)
		}
		return nil
	}
	return entryNotFound("rating", id)
}

func (e *EditableProfile) RemoveRating(id string) error {
	for i := range e.Ratings {
		if e.Ratings[i].LocalID == id {
			e.Ratings = append(e.Ratings[:i], e.Ratings[i+1:]...)
			return nil
		}
	}
	return entryNotFound("rating", id)
}

// ---- catalogs ----

func (e *EditableProfile) AddCatalog(c Catalog) string {
	entry := EditableCatalog{LocalID: newLocalID(), Catalog: c}
	e.Catalogs = append(e.Catalogs, entry)
	return entry.LocalID
}

func (e *EditableProfile) UpdateCatalog(id, field, value string) error {
	for i := range e.Catalogs {
		if e.Catalogs[i].LocalID != id {
			continue
		}
		switch field {
		case "name":
			e.Catalogs[i].Name = value
		case "description":
			e.Catalogs[i].Description = value
		default:
			return unknownField("catalog", field)
		}
		return nil
	}
	return entryNotFound("catalog", id)
}

func (e *EditableProfile) RemoveCatalog(id string) error {
	for i := range e.Catalogs {
		if e.Catalogs[i].LocalID == id {
			e.Catalogs = append(e.Catalogs[:i], e.Catalogs[i+1:]...)
			return nil
		}
	}
	return entryNotFound("catalog", id)
}

// CatalogEntry looks up one catalog by its local id.
func (e *EditableProfile) CatalogEntry(id string) (*EditableCatalog, error) {
	for i := range e.Catalogs {
		if e.Catalogs[i].LocalID == id {
			return &e.Catalogs[i], nil
		}
	}
	return nil, entryNotFound("catalog", id)
}

// ---- industries (tag list, no dedupe) ----

// SplitTagInput turns raw comma-delimited tag input into clean values:
// split on commas, trim whitespace, drop empty segments.
func SplitTagInput(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// AddIndustries appends every value from the raw input as a new tag.
// Industries are deliberately not deduplicated.
func (e *EditableProfile) AddIndustries(raw string) []string {
	ids := []string{}
	for _, v := range SplitTagInput(raw) {
		entry := EditableTag{LocalID: newLocalID(), Value: v}
		e.Industries = append(e.Industries, entry)
		ids = append(ids, entry.LocalID)
	}
	return ids
}

func (e *EditableProfile) RemoveIndustry(id string) error {
	for i := range e.Industries {
		if e.Industries[i].LocalID == id {
			e.Industries = append(e.Industries[:i], e.Industries[i+1:]...)
			return nil
		}
	}
	return entryNotFound("industry", id)
}

// ---- bank accounts ----

func (e *EditableProfile) AddBankAccount(b BankAccount) string {
	entry := EditableBankAccount{LocalID: newLocalID(), BankAccount: b}
	e.BankAccounts = append(e.BankAccounts, entry)
	return entry.LocalID
}

func (e *EditableProfile) UpdateBankAccount(id, field, value string) error {
	for i := range e.BankAccounts {
		if e.BankAccounts[i].LocalID != id {
			continue
		}
		switch field {
		case "bankName":
			e.BankAccounts[i].BankName = value
		case "accountHolderName":
			e.BankAccounts[i].AccountHolderName = value
		case "accountNumber":
			e.BankAccounts[i].AccountNumber = value
		case "ifscCode":
			e.BankAccounts[i].IFSCCode = value
		default:
			return unknownField("bank account", field)
		}
		return nil
	}
	return entryNotFound("bank account", id)
}

func (e *EditableProfile) RemoveBankAccount(id string) error {
	for i := range e.BankAccounts {
		if e.BankAccounts[i].LocalID == id {
			e.BankAccounts = append(e.BankAccounts[:i], e.BankAccounts[i+1:]...)
			return nil
		}
	}
	return entryNotFound("bank account", id)
}

// ---- clientele ----

func (e *EditableProfile) AddClient(c ClienteleEntry) string {
	entry := EditableClient{LocalID: newLocalID(), ClienteleEntry: c}
	e.Clientele = append(e.Clientele, entry)
	return entry.LocalID
}

func (e *EditableProfile) UpdateClient(id, field, value string) error {
	for i := range e.Clientele {
		if e.Clientele[i].LocalID != id {
			continue
		}
		switch field {
		case "name":
			e.Clientele[i].Name = value
		case "industry":
			e.Clientele[i].Industry = value
		case "website":
			e.Clientele[i].Website = value
		default:
			return unknownField("client", field)
		}
		return nil
	}
	return entryNotFound("client", id)
}

func (e *EditableProfile) RemoveClient(id string) error {
	for i := range e.Clientele {
		if e.Clientele[i].LocalID == id {
			e.Clientele = append(e.Clientele[:i], e.Clientele[i+1:]...)
			return nil
		}
	}
	return entryNotFound("client", id)
}

// ---- business documents ----

func (e *EditableProfile) AddDocument(d BusinessDocument) string {
	entry := EditableDocument{LocalID: newLocalID(), BusinessDocument: d}
	e.Documents = append(e.Documents, entry)
	return entry.LocalID
}

func (e *EditableProfile) UpdateDocument(id, field, value string) error {
	for i := range e.Documents {
		if e.Documents[i].LocalID != id {
			continue
		}
		switch field {
		case "documentType":
			e.Documents[i].DocumentType = value
		default:
			return unknownField("document", field)
		}
		return nil
	}
	return entryNotFound("document", id)
}

func (e *EditableProfile) RemoveDocument(id string) error {
	for i := range e.Documents {
		if e.Documents[i].LocalID == id {
			e.Documents = append(e.Documents[:i], e.Documents[i+1:]...)
			return nil
		}
	}
	return entryNotFound("document", id)
}

func (e *EditableProfile) SetDocumentFile(id, url, fileName string) error {
	for i := range e.Documents {
		if e.Documents[i].LocalID == id {
			e.Documents[i].FileURL = url
			e.Documents[i].FileName = fileName
			return nil
		}
	}
	return entryNotFound("document", id)
}

// ---- supplier brands ----

func (e *EditableProfile) AddBrand(name string) string {
	entry := EditableBrand{LocalID: newLocalID(), Name: name, Categories: []EditableTag{}}
	e.Brands = append(e.Brands, entry)
	return entry.LocalID
}

func (e *EditableProfile) UpdateBrand(id, field, value string) error {
	for i := range e.Brands {
		if e.Brands[i].LocalID != id {
			continue
		}
		switch field {
		case "name":
			e.Brands[i].Name = value
		default:
			return unknownField("brand", field)
		}
		return nil
	}
	return entryNotFound("brand", id)
}

func (e *EditableProfile) RemoveBrand(id string) error {
	for i := range e.Brands {
		if e.Brands[i].LocalID == id {
			e.Brands = append(e.Brands[:i], e.Brands[i+1:]...)
			return nil
		}
	}
	return entryNotFound("brand", id)
}

// AddBrandCategories appends tags from the raw input to one brand, skipping
// values the brand already carries.
func (e *EditableProfile) AddBrandCategories(brandID, raw string) ([]string, error) {
	for i := range e.Brands {
		if e.Brands[i].LocalID != brandID {
			continue
		}
		existing := map[string]bool{}
		for _, c := range e.Brands[i].Categories {
			existing[c.Value] = true
		}
		ids := []string{}
		for _, v := range SplitTagInput(raw) {
			if existing[v] {
				continue
			}
			existing[v] = true
			entry := EditableTag{LocalID: newLocalID(), Value: v}
			e.Brands[i].Categories = append(e.Brands[i].Categories, entry)
			ids = append(ids, entry.LocalID)
		}
		return ids, nil
	}
	return nil, entryNotFound("brand", brandID)
}

func (e *EditableProfile) RemoveBrandCategory(brandID, catID string) error {
	for i := range e.Brands {
		if e.Brands[i].LocalID != brandID {
			continue
		}
		for j := range e.Brands[i].Categories {
			if e.Brands[i].Categories[j].LocalID == catID {
				e.Brands[i].Categories = append(e.Brands[i].Categories[:j], e.Brands[i].Categories[j+1:]...)
				return nil
			}
		}
		return entryNotFound("brand category", catID)
	}
	return entryNotFound("brand", brandID)
}

// ---- supplier catalog ----

func (e *EditableProfile) SetSupplierCatalog(url, fileName string) {
	e.SupplierCatalog = SupplierCatalog{FileURL: url, FileName: fileName}
}

func (e *EditableProfile) ClearSupplierCatalog() {
	e.SupplierCatalog = SupplierCatalog{}
}
