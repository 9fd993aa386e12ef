package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yelpcamp/backend/internal/auth/middleware"
	"github.com/yelpcamp/backend/internal/models"
	"github.com/yelpcamp/backend/internal/services"
	"go.uber.org/zap"
)

// stubTokenValidator resolves every token to a fixed user ID
type stubTokenValidator struct {
	userID string
	err    error
}

func (s *stubTokenValidator) ValidateToken(tokenString string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.userID, nil
}

// mockCampgroundService is a mock implementation of CampgroundService
type mockCampgroundService struct {
	list       *models.CampgroundList
	campground *models.Campground
	detail     *models.CampgroundDetail
	err        error

	lastUserID string
}

func (m *mockCampgroundService) List(ctx context.Context, search, pageStr, limitStr string) (*models.CampgroundList, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.list, nil
}

func (m *mockCampgroundService) GetByID(ctx context.Context, id int) (*models.CampgroundDetail, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.detail, nil
}

func (m *mockCampgroundService) Create(ctx context.Context, userID string, req *models.CreateCampgroundRequest) (*models.Campground, error) {
	m.lastUserID = userID
	if m.err != nil {
		return nil, m.err
	}
	return m.campground, nil
}

func (m *mockCampgroundService) Update(ctx context.Context, userID string, id int, req *models.UpdateCampgroundRequest) (*models.Campground, error) {
	m.lastUserID = userID
	if m.err != nil {
		return nil, m.err
	}
	return m.campground, nil
}

func (m *mockCampgroundService) Delete(ctx context.Context, userID string, id int) error {
	m.lastUserID = userID
	return m.err
}

// setupCampgroundRouter mounts the campground routes behind stub auth middleware
func setupCampgroundRouter(t *testing.T, svc CampgroundService) chi.Router {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	handler := NewCampgroundHandler(svc, logger)

	validator := &stubTokenValidator{userID: "user-1"}
	r := chi.NewRouter()
	handler.RegisterRoutes(r, middleware.RequireAuth(validator), middleware.OptionalAuth(validator))
	return r
}

func decodeErrorResponse(t *testing.T, rec *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestCampgroundHandler_List(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &mockCampgroundService{
			list: &models.CampgroundList{
				Campgrounds: []models.Campground{{ID: 1, Name: "Cloud's Rest"}},
				Pagination:  models.Pagination{Page: 1, Limit: 12, Total: 1, TotalPages: 1},
			},
		}
		router := setupCampgroundRouter(t, svc)

		req := httptest.NewRequest(http.MethodGet, "/campgrounds", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp models.CampgroundList
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Len(t, resp.Campgrounds, 1)
		assert.Equal(t, "Cloud's Rest", resp.Campgrounds[0].Name)
		assert.Equal(t, 1, resp.Pagination.Total)
	})

	t.Run("validation error", func(t *testing.T) {
		svc := &mockCampgroundService{err: &services.ValidationError{Message: "Page must be a positive integer"}}
		router := setupCampgroundRouter(t, svc)

		req := httptest.NewRequest(http.MethodGet, "/campgrounds?page=abc", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeErrorResponse(t, rec)
		assert.Equal(t, "Validation Error", resp.Error)
		assert.Equal(t, "Page must be a positive integer", resp.Message)
	})

	t.Run("internal error", func(t *testing.T) {
		svc := &mockCampgroundService{err: errors.New("database error")}
		router := setupCampgroundRouter(t, svc)

		req := httptest.NewRequest(http.MethodGet, "/campgrounds", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		resp := decodeErrorResponse(t, rec)
		assert.Equal(t, "Internal Server Error", resp.Error)
		assert.Equal(t, "An unexpected error occurred", resp.Message)
	})
}

func TestCampgroundHandler_GetByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &mockCampgroundService{
			detail: &models.CampgroundDetail{
				Campground: models.Campground{ID: 7, Name: "Coastal Bluffs"},
				Author:     &models.Author{ID: "user-1", Username: "johncamper"},
				Comments:   []models.Comment{{ID: 2, Text: "Loved it"}},
			},
		}
		router := setupCampgroundRouter(t, svc)

		req := httptest.NewRequest(http.MethodGet, "/campgrounds/7", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp models.CampgroundDetail
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, 7, resp.ID)
		assert.Equal(t, "johncamper", resp.Author.Username)
		require.Len(t, resp.Comments, 1)
	})

	t.Run("empty relations stay in the body", func(t *testing.T) {
		svc := &mockCampgroundService{
			detail: &models.CampgroundDetail{
				Campground: models.Campground{ID: 8, Name: "Fresh Camp"},
				Comments:   []models.Comment{},
			},
		}
		router := setupCampgroundRouter(t, svc)

		req := httptest.NewRequest(http.MethodGet, "/campgrounds/8", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var body map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.Contains(t, body, "comments")
		assert.JSONEq(t, `[]`, string(body["comments"]))
		require.Contains(t, body, "author")
		assert.JSONEq(t, `null`, string(body["author"]))
	})

	t.Run("invalid id", func(t *testing.T) {
		router := setupCampgroundRouter(t, &mockCampgroundService{})

		req := httptest.NewRequest(http.MethodGet, "/campgrounds/abc", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeErrorResponse(t, rec)
		assert.Equal(t, "Campground ID must be a valid number", resp.Message)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &mockCampgroundService{err: &services.NotFoundError{Resource: "Campground"}}
		router := setupCampgroundRouter(t, svc)

		req := httptest.NewRequest(http.MethodGet, "/campgrounds/999", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		resp := decodeErrorResponse(t, rec)
		assert.Equal(t, "Not Found", resp.Error)
		assert.Equal(t, "Campground not found", resp.Message)
	})
}

func TestCampgroundHandler_Create(t *testing.T) {
	body := `{"name":"Cloud's Rest","price":"9.00","image":"https://example.com/1.jpg","description":"A campsite"}`

	t.Run("success", func(t *testing.T) {
		svc := &mockCampgroundService{
			campground: &models.Campground{ID: 1, Name: "Cloud's Rest"},
		}
		router := setupCampgroundRouter(t, svc)

		req := httptest.NewRequest(http.MethodPost, "/campgrounds", strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer some-token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "user-1", svc.lastUserID)

		var resp models.Campground
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, 1, resp.ID)
	})

	t.Run("missing token", func(t *testing.T) {
		router := setupCampgroundRouter(t, &mockCampgroundService{})

		req := httptest.NewRequest(http.MethodPost, "/campgrounds", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		resp := decodeErrorResponse(t, rec)
		assert.Equal(t, "You must be logged in", resp.Message)
	})

	t.Run("invalid JSON body", func(t *testing.T) {
		router := setupCampgroundRouter(t, &mockCampgroundService{})

		req := httptest.NewRequest(http.MethodPost, "/campgrounds", strings.NewReader("{not json"))
		req.Header.Set("Authorization", "Bearer some-token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeErrorResponse(t, rec)
		assert.Equal(t, "Invalid JSON body", resp.Message)
	})

	t.Run("validation error", func(t *testing.T) {
		svc := &mockCampgroundService{err: &services.ValidationError{Message: "Campground name is required"}}
		router := setupCampgroundRouter(t, svc)

		req := httptest.NewRequest(http.MethodPost, "/campgrounds", strings.NewReader(`{}`))
		req.Header.Set("Authorization", "Bearer some-token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeErrorResponse(t, rec)
		assert.Equal(t, "Validation Error", resp.Error)
		assert.Equal(t, "Campground name is required", resp.Message)
	})
}

func TestCampgroundHandler_Update(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &mockCampgroundService{
			campground: &models.Campground{ID: 1, Name: "New Name"},
		}
		router := setupCampgroundRouter(t, svc)

		req := httptest.NewRequest(http.MethodPut, "/campgrounds/1", strings.NewReader(`{"name":"New Name"}`))
		req.Header.Set("Authorization", "Bearer some-token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp models.Campground
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "New Name", resp.Name)
	})

	t.Run("forbidden", func(t *testing.T) {
		svc := &mockCampgroundService{err: services.ErrForbidden}
		router := setupCampgroundRouter(t, svc)

		req := httptest.NewRequest(http.MethodPut, "/campgrounds/1", strings.NewReader(`{"name":"New Name"}`))
		req.Header.Set("Authorization", "Bearer some-token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		resp := decodeErrorResponse(t, rec)
		assert.Equal(t, "Forbidden", resp.Error)
		assert.Equal(t, "You don't have permission to do that", resp.Message)
	})
}

func TestCampgroundHandler_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &mockCampgroundService{}
		router := setupCampgroundRouter(t, svc)

		req := httptest.NewRequest(http.MethodDelete, "/campgrounds/1", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp models.SuccessResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "Campground deleted", resp.Message)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &mockCampgroundService{err: &services.NotFoundError{Resource: "Campground"}}
		router := setupCampgroundRouter(t, svc)

		req := httptest.NewRequest(http.MethodDelete, "/campgrounds/999", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
