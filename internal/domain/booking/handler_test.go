package booking

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"culturehub/internal/domain"
	"culturehub/internal/middleware"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *fixture) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	f := newFixture(t)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if uid := c.GetHeader("X-Test-User-ID"); uid != "" {
			id, _ := strconv.ParseInt(uid, 10, 64)
			c.Set(middleware.ContextUserID, id)
			c.Set(middleware.ContextRole, c.GetHeader("X-Test-Role"))
			c.Set(middleware.ContextUserName, "Test User")
		}
		c.Next()
	})
	NewHandler(f.svc).RegisterRoutes(r.Group("/api"))
	return r, f
}

func doJSONRequest(r http.Handler, method, path string, body any, userID int64, role string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID > 0 {
		req.Header.Set("X-Test-User-ID", strconv.FormatInt(userID, 10))
		req.Header.Set("X-Test-Role", role)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code string `json:"code"`
	} `json:"error"`
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, out any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	if out != nil {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return env
}

func TestBookingEndpoints_CheckoutFlow(t *testing.T) {
	r, f := setupTestRouter(t)

	rr := doJSONRequest(r, http.MethodPost, "/api/bookings/quote", map[string]any{
		"culturalCenterId": f.court.ID, "startTime": "2024-05-10T18:00", "endTime": "2024-05-10T19:30",
	}, 10, middleware.RoleStaff)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var quote struct {
		Hours    *float64 `json:"hours"`
		UnitRate int64    `json:"unitRate"`
		Amount   int64    `json:"amount"`
	}
	decode(t, rr, &quote)
	assert.Equal(t, int64(50000), quote.UnitRate)
	assert.Equal(t, int64(75000), quote.Amount)

	rr = doJSONRequest(r, http.MethodPost, "/api/bookings", map[string]any{
		"title": "Cầu lông tối", "startTime": "2024-05-10T18:00", "endTime": "2024-05-10T19:30",
		"culturalCenterId": f.court.ID, "visibility": "PUBLIC", "status": "PENDING_PAYMENT", "fee": quote.Amount,
	}, 10, middleware.RoleStaff)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var created domain.Booking
	decode(t, rr, &created)
	assert.Equal(t, domain.BookingPendingPayment, created.Status)
	assert.Equal(t, int64(75000), *created.Fee)

	rr = doJSONRequest(r, http.MethodPost, "/api/bookings", map[string]any{
		"title": "Trùng giờ", "startTime": "2024-05-10T19:00", "endTime": "2024-05-10T20:00",
		"culturalCenterId": f.court.ID,
	}, 11, middleware.RoleStaff)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "SLOT_TAKEN", decode(t, rr, nil).Error.Code)

	rr = doJSONRequest(r, http.MethodPost, fmt.Sprintf("/api/bookings/%d/confirm-payment", created.ID), nil, 10, middleware.RoleStaff)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var confirmed domain.Booking
	decode(t, rr, &confirmed)
	assert.Equal(t, domain.BookingApproved, confirmed.Status)
	assert.True(t, confirmed.FeePaid)

	rr = doJSONRequest(r, http.MethodGet, "/api/bookings/calendar?date=2024-05-10", nil, 11, middleware.RoleStaff)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var view CalendarView
	decode(t, rr, &view)
	assert.Len(t, view.Bookings, 1)

	// paid booking can no longer be abandoned by its owner
	rr = doJSONRequest(r, http.MethodDelete, fmt.Sprintf("/api/bookings/%d", created.ID), nil, 10, middleware.RoleStaff)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestBookingEndpoints_AbandonCheckout(t *testing.T) {
	r, f := setupTestRouter(t)

	rr := doJSONRequest(r, http.MethodPost, "/api/bookings", map[string]any{
		"title": "Bỏ dở", "startTime": "2024-05-10T08:00", "endTime": "2024-05-10T09:00", "culturalCenterId": f.hall.ID,
	}, 10, middleware.RoleStaff)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var created domain.Booking
	decode(t, rr, &created)

	path := fmt.Sprintf("/api/bookings/%d", created.ID)
	for i := 0; i < 2; i++ {
		rr = doJSONRequest(r, http.MethodDelete, path, nil, 10, middleware.RoleStaff)
		assert.Equal(t, http.StatusNoContent, rr.Code, "attempt %d", i+1)
	}

	rr = doJSONRequest(r, http.MethodGet, path, nil, 10, middleware.RoleStaff)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestBookingEndpoints_Validation(t *testing.T) {
	r, f := setupTestRouter(t)

	rr := doJSONRequest(r, http.MethodPost, "/api/bookings", map[string]any{
		"startTime": "2024-05-10T08:00", "endTime": "2024-05-10T09:00", "culturalCenterId": f.hall.ID,
	}, 10, middleware.RoleStaff)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode(t, rr, nil).Error.Code)

	rr = doJSONRequest(r, http.MethodPost, "/api/bookings", map[string]any{
		"title": "x", "startTime": "2024-05-10T09:00", "endTime": "2024-05-10T08:00", "culturalCenterId": f.hall.ID,
	}, 10, middleware.RoleStaff)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "INVALID_INTERVAL", decode(t, rr, nil).Error.Code)

	rr = doJSONRequest(r, http.MethodGet, "/api/bookings/abc", nil, 10, middleware.RoleStaff)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSONRequest(r, http.MethodGet, "/api/bookings?facilityId=-1", nil, 10, middleware.RoleStaff)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestBookingEndpoints_AdminOnly(t *testing.T) {
	r, f := setupTestRouter(t)
	b := f.insert(t, domain.Booking{
		Title: "Chờ duyệt", Status: domain.BookingPending, CulturalCenterID: f.hall.ID, UserID: 10,
		StartTime: local("2024-05-10", "08:00"), EndTime: local("2024-05-10", "09:00"),
	})

	rr := doJSONRequest(r, http.MethodGet, "/api/bookings/stats", nil, 10, middleware.RoleStaff)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = doJSONRequest(r, http.MethodGet, "/api/bookings/stats?from=2024-05-01&to=2024-06-01", nil, 1, middleware.RoleAdmin)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var stats Stats
	decode(t, rr, &stats)
	assert.Equal(t, 1, stats.ByStatus[domain.BookingPending])

	rr = doJSONRequest(r, http.MethodPost, fmt.Sprintf("/api/bookings/%d/reject", b.ID), nil, 10, middleware.RoleStaff)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = doJSONRequest(r, http.MethodPost, fmt.Sprintf("/api/bookings/%d/reject", b.ID), nil, 1, middleware.RoleAdmin)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = doJSONRequest(r, http.MethodPost, fmt.Sprintf("/api/bookings/%d/confirm-payment", b.ID), nil, 1, middleware.RoleAdmin)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "INVALID_STATUS_TRANSITION", decode(t, rr, nil).Error.Code)
}

func TestBookingEndpoints_ListSorted(t *testing.T) {
	r, f := setupTestRouter(t)
	f.insert(t, domain.Booking{
		Title: "Muộn", Status: domain.BookingApproved, CulturalCenterID: f.hall.ID,
		StartTime: local("2024-05-12", "08:00"), EndTime: local("2024-05-12", "09:00"),
	})
	f.insert(t, domain.Booking{
		Title: "Sớm", Status: domain.BookingApproved, CulturalCenterID: f.hall.ID,
		StartTime: local("2024-05-11", "08:00"), EndTime: local("2024-05-11", "09:00"),
	})

	rr := doJSONRequest(r, http.MethodGet, "/api/bookings?sort=event", nil, 10, middleware.RoleStaff)
	require.Equal(t, http.StatusOK, rr.Code)
	var list []domain.Booking
	decode(t, rr, &list)
	require.Len(t, list, 2)
	assert.Equal(t, "Sớm", list[0].Title)

	rr = doJSONRequest(r, http.MethodGet, "/api/bookings?search=mu", nil, 10, middleware.RoleStaff)
	require.Equal(t, http.StatusOK, rr.Code)
	decode(t, rr, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Muộn", list[0].Title)
}
