package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"vendorportal/models"
)

// Free-text profile fields are stripped of any markup before they leave the
// portal.
var sanitizer = bluemonday.StrictPolicy()

// draftFor returns the session's profile draft, loading it from the backend on
// first touch. A vendor with no saved profile gets an empty draft. The session
// draft lock is held on success; the caller must defer the returned release.
func draftFor(c *gin.Context, env *Env) (*models.EditableProfile, func(), error) {
	sid := sessionID(c)
	release := env.Drafts.Lock(sid)
	if draft := env.Drafts.Get(sid); draft != nil {
		return draft, release, nil
	}
	profile, err := env.API.VendorProfile(c.Request.Context(), authToken(c))
	if err != nil {
		release()
		return nil, nil, err
	}
	draft := models.NewEditableProfile(profile)
	env.Drafts.Set(sid, draft)
	return draft, release, nil
}

// GetProfileHandler returns the session's profile draft
// @Summary Get profile draft
// @Description Return the editable profile, loading it from the backend on first access
// @Tags Profile
// @Produce json
// @Success 200 {object} models.ProfileResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /portal/profile [get]
func GetProfileHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		draft, release, err := draftFor(c, env)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		defer release()
		c.JSON(http.StatusOK, gin.H{"profile": draft})
	}
}

// UpdateProfileScalarsHandler updates top-level profile fields
// @Summary Update profile scalars
// @Description Apply the scalar fields present in the body to the draft
// @Tags Profile
// @Accept json
// @Produce json
// @Param body body models.ScalarUpdate true "Fields to update"
// @Success 200 {object} models.ProfileResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /portal/profile [put]
func UpdateProfileScalarsHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		draft, release, err := draftFor(c, env)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		defer release()
		var update models.ScalarUpdate
		if err := c.ShouldBindJSON(&update); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}
		draft.ApplyScalars(update)
		c.JSON(http.StatusOK, gin.H{"profile": draft})
	}
}

// SaveProfileHandler persists the draft to the backend
// @Summary Save profile
// @Description Build the denormalized payload from the draft and send it to the backend
// @Tags Profile
// @Produce json
// @Success 200 {object} models.ProfileResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /portal/profile/save [post]
func SaveProfileHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		draft, release, err := draftFor(c, env)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		defer release()
		draft.About = sanitizer.Sanitize(draft.About)
		for i := range draft.Catalogs {
			draft.Catalogs[i].Description = sanitizer.Sanitize(draft.Catalogs[i].Description)
		}
		updated, err := env.API.UpdateVendorProfile(c.Request.Context(), authToken(c), draft.SavePayload())
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		// Rebuild the draft from what the backend actually stored.
		fresh := models.NewEditableProfile(updated)
		env.Drafts.Set(sessionID(c), fresh)
		c.JSON(http.StatusOK, gin.H{"profile": fresh, "message": "Profile saved"})
	}
}

// fieldUpdate is the body for single-field list-entry updates.
type fieldUpdate struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// tagInput is the body for comma-delimited tag additions.
type tagInput struct {
	Value string `json:"value" binding:"required"`
}

func updateEntry(env *Env, apply func(*models.EditableProfile, string, string, string) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		draft, release, err := draftFor(c, env)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		defer release()
		var body fieldUpdate
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}
		if err := apply(draft, c.Param("id"), body.Field, body.Value); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"profile": draft})
	}
}

func removeEntry(env *Env, apply func(*models.EditableProfile, string) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		draft, release, err := draftFor(c, env)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		defer release()
		if err := apply(draft, c.Param("id")); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"profile": draft})
	}
}

// AddContactHandler adds a contact entry
// @Summary Add contact
// @Tags Profile
// @Accept json
// @Produce json
// @Param body body models.ContactDetail true "Contact"
// @Success 200 {object} models.EntryCreatedResponse
// @Router /portal/profile/contacts [post]
func AddContactHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		draft, release, err := draftFor(c, env)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		defer release()
		var body models.ContactDetail
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": draft.AddContact(body)})
	}
}

func UpdateContactHandler(env *Env) gin.HandlerFunc {
	return updateEntry(env, (*models.EditableProfile).UpdateContact)
}

func RemoveContactHandler(env *Env) gin.HandlerFunc {
	return removeEntry(env, (*models.EditableProfile).RemoveContact)
}

// AddAddressHandler adds a business address
// @Summary Add address
// @Tags Profile
// @Accept json
// @Produce json
// @Param body body models.BusinessAddress true "Address"
// @Success 200 {object} models.EntryCreatedResponse
// @Router /portal/profile/addresses [post]
func AddAddressHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		draft, release, err := draftFor(c, env)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		defer release()
		var body models.BusinessAddress
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}
		id, err := draft.AddAddress(body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	}
}

func UpdateAddressHandler(env *Env) gin.HandlerFunc {
	return updateEntry(env, (*models.EditableProfile).UpdateAddress)
}

func RemoveAddressHandler(env *Env) gin.HandlerFunc {
	return removeEntry(env, (*models.EditableProfile).RemoveAddress)
}

// AddRatingHandler adds a platform rating
// @Summary Add platform rating
// @Tags Profile
// @Accept json
// @Produce json
// @Param body body models.PlatformRating true "Rating"
// @Success 200 {object} models.EntryCreatedResponse
// @Router /portal/profile/ratings [post]
func AddRatingHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		draft, release, err := draftFor(c, env)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		defer release()
		var body models.PlatformRating
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": draft.AddRating(body)})
	}
}

func UpdateRatingHandler(env *Env) gin.HandlerFunc {
	return updateEntry(env, (*models.EditableProfile).UpdateRating)
}

func RemoveRatingHandler(env *Env) gin.HandlerFunc {
	return removeEntry(env, (*models.EditableProfile).RemoveRating)
}

// AddCatalogHandler adds a catalog entry
// @Summary Add catalog
// @Tags Profile
// @Accept json
// @Produce json
// @Param body body models.Catalog true "Catalog"
// @Success 200 {object} models.EntryCreatedResponse
// @Router /portal/profile/catalogs [post]
func AddCatalogHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		draft, release, err := draftFor(c, env)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		defer release()
		var body models.Catalog
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": draft.AddCatalog(body)})
	}
}

func UpdateCatalogHandler(env *Env) gin.HandlerFunc {
	return updateEntry(env, (*models.EditableProfile).UpdateCatalog)
}

func RemoveCatalogHandler(env *Env) gin.HandlerFunc {
	return removeEntry(env, (*models.EditableProfile).RemoveCatalog)
}

// AddIndustriesHandler bulk-adds industry tags
// @Summary Add industries
// @Description Split the comma-delimited value into tags and append them all
// @Tags Profile
// @Accept json
// @Produce json
// @Param body body handlers.tagInput true "Comma-delimited industries"
// @Success 200 {object} models.TagsCreatedResponse
// @Router /portal/profile/industries [post]
func AddIndustriesHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		draft, release, err := draftFor(c, env)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		defer release()
		var body tagInput
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ids": draft.AddIndustries(body.Value)})
	}
}

func RemoveIndustryHandler(env *Env) gin.HandlerFunc {
	return removeEntry(env, (*models.EditableProfile).RemoveIndustry)
}

// AddBankAccountHandler adds a bank account
// @Summary Add bank account
// @Tags Profile
// @Accept json
// @Produce json
// @Param body body models.BankAccount true "Bank account"
// @Success 200 {object} models.EntryCreatedResponse
// @Router /portal/profile/bank-accounts [post]
func AddBankAccountHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		draft, release, err := draftFor(c, env)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		defer release()
		var body models.BankAccount
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": draft.AddBankAccount(body)})
	}
}

func UpdateBankAccountHandler(env *Env) gin.HandlerFunc {
	return updateEntry(env, (*models.EditableProfile).UpdateBankAccount)
}

func RemoveBankAccountHandler(env *Env) gin.HandlerFunc {
	return removeEntry(env, (*models.EditableProfile).RemoveBankAccount)
}

// AddClientHandler adds a clientele entry
// @Summary Add client
// @Tags Profile
// @Accept json
// @Produce json
// @Param body body models.ClienteleEntry true "Client"
// @Success 200 {object} models.EntryCreatedResponse
// @Router /portal/profile/clientele [post]
func AddClientHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		draft, release, err := draftFor(c, env)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		defer release()
		var body models.ClienteleEntry
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": draft.AddClient(body)})
	}
}

func UpdateClientHandler(env *Env) gin.HandlerFunc {
	return updateEntry(env, (*models.EditableProfile).UpdateClient)
}

func RemoveClientHandler(env *Env) gin.HandlerFunc {
	return removeEntry(env, (*models.EditableProfile).RemoveClient)
}

// AddDocumentHandler adds a business document entry
// @Summary Add document
// @Tags Profile
// @Accept json
// @Produce json
// @Param body body models.BusinessDocument true "Document"
// @Success 200 {object} models.EntryCreatedResponse
// @Router /portal/profile/documents [post]
func AddDocumentHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		draft, release, err := draftFor(c, env)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		defer release()
		var body models.BusinessDocument
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": draft.AddDocument(body)})
	}
}

func UpdateDocumentHandler(env *Env) gin.HandlerFunc {
	return updateEntry(env, (*models.EditableProfile).UpdateDocument)
}

func RemoveDocumentHandler(env *Env) gin.HandlerFunc {
	return removeEntry(env, (*models.EditableProfile).RemoveDocument)
}

// AddBrandHandler adds a supplier brand
// @Summary Add brand
// @Tags Profile
// @Accept json
// @Produce json
// @Param body body handlers.tagInput true "Brand name"
// @Success 200 {object} models.EntryCreatedResponse
// @Router /portal/profile/brands [post]
func AddBrandHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		draft, release, err := draftFor(c, env)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		defer release()
		var body tagInput
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": draft.AddBrand(body.Value)})
	}
}

func UpdateBrandHandler(env *Env) gin.HandlerFunc {
	return updateEntry(env, (*models.EditableProfile).UpdateBrand)
}

func RemoveBrandHandler(env *Env) gin.HandlerFunc {
	return removeEntry(env, (*models.EditableProfile).RemoveBrand)
}

// AddBrandCategoriesHandler bulk-adds categories to a brand
// @Summary Add brand categories
// @Description Split the comma-delimited value into tags and append the ones the brand does not already carry
// @Tags Profile
// @Accept json
// @Produce json
// @Param id path string true "Brand id"
// @Param body body handlers.tagInput true "Comma-delimited categories"
// @Success 200 {object} models.TagsCreatedResponse
// @Router /portal/profile/brands/{id}/categories [post]
func AddBrandCategoriesHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		draft, release, err := draftFor(c, env)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		defer release()
		var body tagInput
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}
		ids, err := draft.AddBrandCategories(c.Param("id"), body.Value)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ids": ids})
	}
}

func RemoveBrandCategoryHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		draft, release, err := draftFor(c, env)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		defer release()
		if err := draft.RemoveBrandCategory(c.Param("id"), c.Param("catId")); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"profile": draft})
	}
}
