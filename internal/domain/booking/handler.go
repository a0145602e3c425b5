package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"culturehub/internal/domain"
	"culturehub/internal/domain/pricing"
	"culturehub/internal/middleware"
	"culturehub/internal/pkg/response"
	"culturehub/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func actorFrom(c *gin.Context) Actor {
	return Actor{
		UserID: c.GetInt64(middleware.ContextUserID),
		Name:   c.GetString(middleware.ContextUserName),
		Admin:  middleware.IsAdmin(c),
	}
}

// List handles GET /api/bookings?search=&sort=event|created&facilityId=&status=
func (h *Handler) List(c *gin.Context) {
	q := ListQuery{
		Search: c.Query("search"),
		Sort:   pricing.ParseSortMode(c.Query("sort")),
		Status: domain.BookingStatus(c.Query("status")),
	}
	if raw := c.Query("facilityId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid facilityId")
			return
		}
		q.FacilityID = id
	}

	list, err := h.service.List(c.Request.Context(), actorFrom(c), q)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// Calendar handles GET /api/bookings/calendar?date=&building=&showPrivate=
func (h *Handler) Calendar(c *gin.Context) {
	showPrivate, _ := strconv.ParseBool(c.DefaultQuery("showPrivate", "false"))
	view, err := h.service.Calendar(c.Request.Context(), actorFrom(c), CalendarQuery{
		Date:        c.Query("date"),
		Building:    c.Query("building"),
		ShowPrivate: showPrivate,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// Get handles GET /api/bookings/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	b, err := h.service.Get(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

// Quote handles POST /api/bookings/quote
func (h *Handler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	q, err := h.service.Quote(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, q)
}

// Create handles POST /api/bookings
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	b, err := h.service.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b)
}

// ConfirmPayment handles POST /api/bookings/:id/confirm-payment
func (h *Handler) ConfirmPayment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	b, err := h.service.ConfirmPayment(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

// Reject handles POST /api/bookings/:id/reject
func (h *Handler) Reject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	b, err := h.service.Reject(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

// Delete handles DELETE /api/bookings/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Stats handles GET /api/bookings/stats?from=&to=
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(c, "Booking not found")
	case errors.Is(err, ErrFacilityNotFound):
		response.NotFound(c, "Cultural center not found")
	case errors.Is(err, ErrInvalidTime):
		response.Error(c, http.StatusBadRequest, "INVALID_TIME", "Start and end time must be valid date-times")
	case errors.Is(err, ErrInvalidInterval):
		response.Error(c, http.StatusBadRequest, "INVALID_INTERVAL", "End time must be after start time")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrSlotTaken):
		response.Error(c, http.StatusConflict, "SLOT_TAKEN", "The cultural center is already booked for this time")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATUS_TRANSITION", "Booking cannot change to this status")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	case errors.Is(err, ErrBusy):
		response.Error(c, http.StatusServiceUnavailable, "BUSY", "Cultural center is busy, please retry")
	default:
		response.Internal(c, err)
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return 0, false
	}
	return id, true
}
