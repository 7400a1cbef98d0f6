package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookhub/internal/httpapi/dto"
	"bookhub/internal/httpapi/handler"
	"bookhub/internal/httpapi/models"
	"bookhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- HELPER FUNCTIONS FOR POINTERS ---
func stringPtr(s string) *string { return &s }
func intPtr(i int) *int          { return &i }

// --- MOCK SERVICE ---

type MockBookService struct {
	mock.Mock
}

func (m *MockBookService) Create(ctx context.Context, b *models.Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookService) GetAll(ctx context.Context, skip, limit int) ([]models.Book, error) {
	args := m.Called(ctx, skip, limit)
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookService) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	args := m.Called(ctx, id)
	// Handle nil return safely
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookService) Update(ctx context.Context, id int64, upd dto.UpdateBookDTO) (*models.Book, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- SETUP ---

func setupBookRouter(mockService *MockBookService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewBookHandler(mockService)

	rg := r.Group("/books")
	h.RegisterRoutes(rg)
	return r
}

// --- TESTS ---

func TestBookHandler_Create(t *testing.T) {
	mockService := new(MockBookService)
	r := setupBookRouter(mockService)

	createDTO := dto.CreateBookDTO{
		Title:         "Dune",
		Author:        "Herbert",
		Genre:         "SF",
		YearPublished: 1965,
	}

	t.Run("Success", func(t *testing.T) {
		// the service fills ID and the generated summary before returning
		mockService.On("Create", mock.Anything, mock.MatchedBy(func(b *models.Book) bool {
			return b.Title == "Dune" && b.Author == "Herbert" && b.YearPublished == 1965
		})).Run(func(args mock.Arguments) {
			b := args.Get(1).(*models.Book)
			b.ID = 1
			b.Summary = stringPtr("A desert planet epic.")
		}).Return(nil).Once()

		body, _ := json.Marshal(createDTO)
		req, _ := http.NewRequest(http.MethodPost, "/books/", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp dto.BookResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "Dune", resp.Title)
		assert.Equal(t, "Herbert", resp.Author)
		assert.Equal(t, "SF", resp.Genre)
		assert.Equal(t, 1965, resp.YearPublished)
		assert.NotNil(t, resp.Summary)
		assert.NotEmpty(t, *resp.Summary)
		mockService.AssertExpectations(t)
	})

	t.Run("ValidationError", func(t *testing.T) {
		// Title is required in CreateBookDTO
		invalidDTO := dto.CreateBookDTO{Author: "Author Only"}
		body, _ := json.Marshal(invalidDTO)
		req, _ := http.NewRequest(http.MethodPost, "/books/", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("WhitespaceTitleRejected", func(t *testing.T) {
		// "   " passes the required binding, the service catches it
		mockService.On("Create", mock.Anything, mock.MatchedBy(func(b *models.Book) bool {
			return b.Title == "   "
		})).Return(service.ErrInvalidBook).Once()

		blankDTO := createDTO
		blankDTO.Title = "   "
		body, _ := json.Marshal(blankDTO)
		req, _ := http.NewRequest(http.MethodPost, "/books/", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("InferenceFailure", func(t *testing.T) {
		mockService.On("Create", mock.Anything, mock.Anything).
			Return(llmFailure{}).Once()

		body, _ := json.Marshal(createDTO)
		req, _ := http.NewRequest(http.MethodPost, "/books/", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

type llmFailure struct{}

func (llmFailure) Error() string { return "generate book-summary: model server returned 500" }

func TestBookHandler_List(t *testing.T) {
	mockService := new(MockBookService)
	r := setupBookRouter(mockService)

	expected := []models.Book{
		{ID: 1, Title: "Dune", Author: "Herbert", Genre: "SF", YearPublished: 1965, Summary: stringPtr("sand")},
		{ID: 2, Title: "Emma", Author: "Austen", Genre: "Romance", YearPublished: 1815},
	}

	t.Run("Defaults", func(t *testing.T) {
		mockService.On("GetAll", mock.Anything, 0, 100).Return(expected, nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/books/", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp []dto.BookResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Len(t, resp, 2)
		assert.Equal(t, "Dune", resp[0].Title)
		mockService.AssertExpectations(t)
	})

	t.Run("SkipLimitHonored", func(t *testing.T) {
		mockService.On("GetAll", mock.Anything, 5, 10).Return([]models.Book{}, nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/books/?skip=5&limit=10", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
		mockService.AssertExpectations(t)
	})

	t.Run("GarbageWindowFallsBackToDefaults", func(t *testing.T) {
		mockService.On("GetAll", mock.Anything, 0, 100).Return([]models.Book{}, nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/books/?skip=-3&limit=9999", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})
}

func TestBookHandler_Get(t *testing.T) {
	mockService := new(MockBookService)
	r := setupBookRouter(mockService)

	t.Run("Success", func(t *testing.T) {
		expected := &models.Book{ID: 101, Title: "Dune", Author: "Herbert", Genre: "SF", YearPublished: 1965}
		mockService.On("GetByID", mock.Anything, int64(101)).Return(expected, nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/books/101", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.BookResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, int64(101), resp.ID)
		assert.Equal(t, "Dune", resp.Title)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockService.On("GetByID", mock.Anything, int64(999)).Return(nil, service.ErrBookNotFound).Once()

		req, _ := http.NewRequest(http.MethodGet, "/books/999", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("InvalidID", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/books/abc", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBookHandler_Update(t *testing.T) {
	mockService := new(MockBookService)
	r := setupBookRouter(mockService)

	t.Run("PartialUpdate", func(t *testing.T) {
		upd := dto.UpdateBookDTO{Title: stringPtr("X")}
		updated := &models.Book{ID: 10, Title: "X", Author: "Herbert", Genre: "SF", YearPublished: 1965}

		mockService.On("Update", mock.Anything, int64(10), mock.MatchedBy(func(d dto.UpdateBookDTO) bool {
			return d.Title != nil && *d.Title == "X" && d.Author == nil && d.YearPublished == nil
		})).Return(updated, nil).Once()

		body, _ := json.Marshal(upd)
		req, _ := http.NewRequest(http.MethodPut, "/books/10", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.BookResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, "X", resp.Title)
		assert.Equal(t, "Herbert", resp.Author)
		mockService.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockService.On("Update", mock.Anything, int64(999), mock.Anything).
			Return(nil, service.ErrBookNotFound).Once()

		body, _ := json.Marshal(dto.UpdateBookDTO{YearPublished: intPtr(2000)})
		req, _ := http.NewRequest(http.MethodPut, "/books/999", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestBookHandler_Delete(t *testing.T) {
	mockService := new(MockBookService)
	r := setupBookRouter(mockService)

	t.Run("Success", func(t *testing.T) {
		mockService.On("Delete", mock.Anything, int64(7)).Return(nil).Once()

		req, _ := http.NewRequest(http.MethodDelete, "/books/7", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("NotFound", func(t *testing.T) {
		mockService.On("Delete", mock.Anything, int64(999)).Return(service.ErrBookNotFound).Once()

		req, _ := http.NewRequest(http.MethodDelete, "/books/999", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestBookHandler_GetSummary(t *testing.T) {
	mockService := new(MockBookService)
	r := setupBookRouter(mockService)

	t.Run("ReturnsBookFields", func(t *testing.T) {
		expected := &models.Book{ID: 3, Title: "Dune", Author: "Herbert", Summary: stringPtr("sand and spice")}
		mockService.On("GetByID", mock.Anything, int64(3)).Return(expected, nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/books/3/summary", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.BookResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, "sand and spice", *resp.Summary)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockService.On("GetByID", mock.Anything, int64(404)).Return(nil, service.ErrBookNotFound).Once()

		req, _ := http.NewRequest(http.MethodGet, "/books/404/summary", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
