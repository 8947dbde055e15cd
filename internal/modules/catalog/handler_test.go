package catalog

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"brokerage/internal/domain"
	"brokerage/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(repo *MockPropertyRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewService(repo, "ARS", nil)).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func doJSONRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	return env
}

func TestHandler_QuotePrice(t *testing.T) {
	repo := new(MockPropertyRepository)
	repo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Property{
		ID: 1, Code: "P1", Currency: "USD", BasePrice: 1000, DiscountPct: 10, SurchargePct: 10,
	}, nil)
	r := setupTestRouter(repo)

	rr := doJSONRequest(r, http.MethodPost, "/api/v1/properties/1/quote", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var data struct {
		Quote Quote `json:"quote"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rr).Data, &data))
	assert.Equal(t, 990.0, data.Quote.Price)
	assert.Equal(t, "USD", data.Quote.Currency)
}

func TestHandler_GetProperty_NotFound(t *testing.T) {
	repo := new(MockPropertyRepository)
	repo.On("GetByID", mock.Anything, int64(7)).Return(nil, repository.ErrNotFound)
	r := setupTestRouter(repo)

	rr := doJSONRequest(r, http.MethodGet, "/api/v1/properties/7", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, rr).Error.Code)

	rr = doJSONRequest(r, http.MethodGet, "/api/v1/properties/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_CreateProperty_ValidationDetails(t *testing.T) {
	r := setupTestRouter(new(MockPropertyRepository))

	rr := doJSONRequest(r, http.MethodPost, "/api/v1/properties", map[string]any{
		"code": "P1", "title": "Casa", "kind": "house", "operation": "lease",
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)

	env := decode(t, rr)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Equal(t, "operation", env.Error.Details["field"])
}
