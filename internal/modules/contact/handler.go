package contact

import (
	"errors"
	"net/http"
	"strconv"

	"brokerage/internal/domain"
	"brokerage/internal/modules/catalog"
	"brokerage/internal/modules/rental"
	"brokerage/internal/pkg/response"
	"brokerage/internal/pkg/validator"
	"brokerage/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	consultations := rg.Group("/consultations")
	{
		consultations.POST("", h.SubmitConsultation)
		consultations.GET("", h.ListConsultations)
		consultations.PATCH("/:id/read", h.MarkConsultationRead)
		consultations.POST("/:id/respond", h.RespondConsultation)
	}

	contacts := rg.Group("/contacts")
	{
		contacts.POST("", h.CreateContact)
		contacts.GET("", h.ListContacts)
		contacts.POST("/resolve", h.ResolveContact)
		contacts.POST("/convert", h.Convert)
		contacts.GET("/:id", h.GetContact)
		contacts.PUT("/:id", h.UpdateContact)
		contacts.DELETE("/:id", h.DeleteContact)
		contacts.POST("/:id/interests", h.AddInterest)
		contacts.GET("/:id/links", h.ListLinks)
	}
}

// SubmitConsultation handles POST /api/v1/consultations
func (h *Handler) SubmitConsultation(c *gin.Context) {
	var req SubmitConsultationRequest
	if !bind(c, &req) {
		return
	}
	res, err := h.service.SubmitConsultation(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

// ListConsultations handles GET /api/v1/consultations?unread=true
func (h *Handler) ListConsultations(c *gin.Context) {
	f := repository.ConsultationFilter{UnreadOnly: c.Query("unread") == "true"}
	f.ContactID, _ = strconv.ParseInt(c.Query("contact_id"), 10, 64)
	f.PropertyID, _ = strconv.ParseInt(c.Query("property_id"), 10, 64)
	f.Limit, f.Offset = pagination(c)

	items, total, err := h.service.ListConsultations(c.Request.Context(), f)
	if err != nil {
		handleError(c, err)
		return
	}
	response.List(c, items, total, f.Limit, f.Offset)
}

// MarkConsultationRead handles PATCH /api/v1/consultations/:id/read
func (h *Handler) MarkConsultationRead(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.MarkConsultationRead(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "read": true})
}

// RespondConsultation handles POST /api/v1/consultations/:id/respond
func (h *Handler) RespondConsultation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req RespondRequest
	if !bind(c, &req) {
		return
	}
	cons, err := h.service.RespondConsultation(c.Request.Context(), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"consultation": cons})
}

// CreateContact handles POST /api/v1/contacts
func (h *Handler) CreateContact(c *gin.Context) {
	var req CreateContactRequest
	if !bind(c, &req) {
		return
	}
	contact, err := h.service.CreateContact(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"contact": contact})
}

// ListContacts handles GET /api/v1/contacts?category=lead&q=gomez
func (h *Handler) ListContacts(c *gin.Context) {
	f := repository.ContactFilter{
		Category: domain.ContactCategory(c.Query("category")),
		Search:   c.Query("q"),
	}
	f.Limit, f.Offset = pagination(c)

	items, total, err := h.service.ListContacts(c.Request.Context(), f)
	if err != nil {
		handleError(c, err)
		return
	}
	response.List(c, items, total, f.Limit, f.Offset)
}

// GetContact handles GET /api/v1/contacts/:id
func (h *Handler) GetContact(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	contact, err := h.service.GetContact(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"contact": contact})
}

// UpdateContact handles PUT /api/v1/contacts/:id
func (h *Handler) UpdateContact(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateContactRequest
	if !bind(c, &req) {
		return
	}
	contact, err := h.service.UpdateContact(c.Request.Context(), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"contact": contact})
}

// DeleteContact handles DELETE /api/v1/contacts/:id
func (h *Handler) DeleteContact(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteContact(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ResolveContact handles POST /api/v1/contacts/resolve
func (h *Handler) ResolveContact(c *gin.Context) {
	var req ResolveRequest
	if !bind(c, &req) {
		return
	}
	res, err := h.service.ResolveContact(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"found":      res.Found(),
		"contact":    res.Contact,
		"matched_by": res.MatchedBy,
	})
}

// Convert handles POST /api/v1/contacts/convert
func (h *Handler) Convert(c *gin.Context) {
	var req ConvertRequest
	if !bind(c, &req) {
		return
	}
	res, err := h.service.Convert(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	response.Success(c, status, res)
}

// AddInterest handles POST /api/v1/contacts/:id/interests
func (h *Handler) AddInterest(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req InterestRequest
	if !bind(c, &req) {
		return
	}
	link, err := h.service.AddInterest(c.Request.Context(), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"link": link})
}

// ListLinks handles GET /api/v1/contacts/:id/links
func (h *Handler) ListLinks(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	links, err := h.service.ListLinks(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"links": links})
}

func bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return id, true
}

func pagination(c *gin.Context) (limit, offset int) {
	limit = 20
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}

func handleError(c *gin.Context, err error) {
	var (
		ve  *validator.ValidationError
		dup *DuplicateContactError
		te  *TransitionError
	)
	switch {
	case errors.As(err, &ve):
		response.Validation(c, ve)
	case errors.As(err, &dup):
		response.ErrorWithDetails(c, http.StatusConflict, "DUPLICATE_CONTACT", "Contact already exists", gin.H{
			"existing_contact_id": dup.ExistingID,
			"field":               dup.Field,
		})
	case errors.Is(err, ErrDuplicateContact):
		response.Error(c, http.StatusConflict, "DUPLICATE_CONTACT", "Contact already exists")
	case errors.As(err, &te):
		response.ErrorWithDetails(c, http.StatusConflict, "INVALID_TRANSITION", te.Error(), gin.H{
			"from": te.From,
			"to":   te.To,
		})
	case errors.Is(err, ErrContactNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Contact not found")
	case errors.Is(err, ErrConsultationNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Consultation not found")
	case errors.Is(err, catalog.ErrPropertyNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property not found")
	case errors.Is(err, ErrConsultationMismatch):
		response.Error(c, http.StatusConflict, "CONSULTATION_MISMATCH", "Consultation belongs to another contact")
	case errors.Is(err, ErrContactInUse):
		response.Error(c, http.StatusConflict, "CONTACT_IN_USE", "Contact has rentals and cannot be deleted")
	default:
		rental.HandleError(c, err)
	}
}
