package asset

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"culturehub/internal/pkg/response"
	"culturehub/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /api/cultural-centers/:id/assets
func (h *Handler) List(c *gin.Context) {
	facilityID, ok := parseID(c)
	if !ok {
		return
	}
	out, err := h.service.List(c.Request.Context(), facilityID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

// Create handles POST /api/cultural-centers/:id/assets
func (h *Handler) Create(c *gin.Context) {
	facilityID, ok := parseID(c)
	if !ok {
		return
	}
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	a, err := h.service.Create(c.Request.Context(), facilityID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, a)
}

// Update handles PUT /api/assets/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	a, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

// Delete handles DELETE /api/assets/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(c, "Asset not found")
	case errors.Is(err, ErrFacilityNotFound):
		response.NotFound(c, "Cultural center not found")
	case errors.Is(err, ErrInvalidCondition):
		response.Error(c, http.StatusBadRequest, "INVALID_CONDITION", "Condition must be GOOD, NEEDS_REPAIR or BROKEN")
	default:
		response.Internal(c, err)
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return id, true
}
