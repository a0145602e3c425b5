package asset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"culturehub/internal/middleware"
	"culturehub/internal/pkg/logger"
)

func TestAssetEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)
	f := seedFacility(t, db, "nha-van-hoa")

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, int64(1))
		c.Set(middleware.ContextRole, c.GetHeader("X-Test-Role"))
		c.Next()
	})
	NewHandler(NewService(NewRepository(db), logger.Nop())).RegisterRoutes(r.Group("/api"))

	do := func(method, path, role string, body any) *httptest.ResponseRecorder {
		b, _ := json.Marshal(body)
		req := httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Test-Role", role)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr
	}

	path := fmt.Sprintf("/api/cultural-centers/%d/assets", f.ID)

	rr := do(http.MethodPost, path, middleware.RoleStaff, map[string]any{"name": "Loa", "quantity": 2})
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for staff create, got %d", rr.Code)
	}

	rr = do(http.MethodPost, path, middleware.RoleAdmin, map[string]any{"name": "Loa", "quantity": 0})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero quantity, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = do(http.MethodPost, path, middleware.RoleAdmin, map[string]any{"name": "Loa", "quantity": 2})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = do(http.MethodGet, path, middleware.RoleStaff, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Data ListResponse `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid list response: %v", err)
	}
	if len(resp.Data.Assets) != 1 || resp.Data.Summary.Total != 2 {
		t.Fatalf("unexpected list: %+v", resp.Data)
	}

	rr = do(http.MethodPut, fmt.Sprintf("/api/assets/%d", resp.Data.Assets[0].ID), middleware.RoleAdmin, map[string]any{"condition": "SOMETIMES"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad condition, got %d", rr.Code)
	}

	rr = do(http.MethodGet, "/api/cultural-centers/999/assets", middleware.RoleStaff, nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown facility, got %d", rr.Code)
	}
}
