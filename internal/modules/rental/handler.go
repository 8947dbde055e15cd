package rental

import (
	"errors"
	"net/http"
	"strconv"

	"brokerage/internal/domain"
	"brokerage/internal/lock"
	"brokerage/internal/modules/catalog"
	"brokerage/internal/pkg/response"
	"brokerage/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rentals := rg.Group("/rentals")
	{
		rentals.POST("", h.CreateRental)
		rentals.GET("/:id", h.GetRental)
		rentals.PUT("/:id", h.UpdateRental)
	}
	rg.GET("/properties/:id/rentals", h.ListByProperty)
	rg.GET("/properties/:id/availability", h.Availability)
	rg.GET("/contacts/:id/rentals", h.ListByTenant)
}

// CreateRental handles POST /api/v1/rentals
func (h *Handler) CreateRental(c *gin.Context) {
	var req CreateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	r, err := h.service.CreateRental(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"rental": r})
}

// GetRental handles GET /api/v1/rentals/:id
func (h *Handler) GetRental(c *gin.Context) {
	id, ok := parseID(c, "rental")
	if !ok {
		return
	}
	r, err := h.service.GetRental(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rental": r})
}

// UpdateRental handles PUT /api/v1/rentals/:id
func (h *Handler) UpdateRental(c *gin.Context) {
	id, ok := parseID(c, "rental")
	if !ok {
		return
	}
	var req UpdateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	r, err := h.service.UpdateRental(c.Request.Context(), id, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rental": r})
}

// ListByProperty handles GET /api/v1/properties/:id/rentals
func (h *Handler) ListByProperty(c *gin.Context) {
	id, ok := parseID(c, "property")
	if !ok {
		return
	}
	items, err := h.service.ListByProperty(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rentals": items})
}

// ListByTenant handles GET /api/v1/contacts/:id/rentals
func (h *Handler) ListByTenant(c *gin.Context) {
	id, ok := parseID(c, "contact")
	if !ok {
		return
	}
	items, err := h.service.ListByTenant(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rentals": items})
}

// Availability handles GET /api/v1/properties/:id/availability?start_date=2025-03-01&end_date=2025-09-01
func (h *Handler) Availability(c *gin.Context) {
	id, ok := parseID(c, "property")
	if !ok {
		return
	}
	av, err := h.service.Availability(c.Request.Context(), id, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"availability": av,
		"reason":       av.Reason(),
	})
}

func parseID(c *gin.Context, what string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+what+" ID")
		return 0, false
	}
	return id, true
}

// HandleError writes the envelope for rental failures. The contact module
// reuses it for conversions that book a rental.
func HandleError(c *gin.Context, err error) {
	var (
		ve *validator.ValidationError
		ue *UnavailableError
	)
	switch {
	case errors.As(err, &ve):
		response.Validation(c, ve)
	case errors.As(err, &ue):
		details := gin.H{"property_id": ue.PropertyID}
		if ue.RentalID != 0 {
			details["rental_id"] = ue.RentalID
			details["start_date"] = ue.Period.Start.Format(domain.DateLayout)
			details["end_date"] = ue.Period.End.Format(domain.DateLayout)
		}
		response.ErrorWithDetails(c, http.StatusConflict, "RENTAL_CONFLICT", ue.Error(), details)
	case errors.Is(err, ErrRentalNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Rental not found")
	case errors.Is(err, ErrTenantNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Tenant contact not found")
	case errors.Is(err, catalog.ErrPropertyNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property not found")
	case errors.Is(err, ErrNotTenant):
		response.Error(c, http.StatusUnprocessableEntity, "NOT_TENANT", "Contact must be converted to tenant first")
	case errors.Is(err, lock.ErrLockTimeout):
		response.Error(c, http.StatusServiceUnavailable, "PROPERTY_BUSY", "Property is being modified, retry shortly")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
