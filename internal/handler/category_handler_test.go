package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/service"
	"github.com/centavo/centavo-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type categoryHandlerFixture struct {
	categoryRepo *testutil.MockCategoryRepository
	globalRepo   *testutil.MockGlobalCategoryRepository
	publisher    *testutil.MockEventPublisher
	handler      *CategoryHandler
}

func newCategoryHandlerFixture() *categoryHandlerFixture {
	categoryRepo := testutil.NewMockCategoryRepository()
	globalRepo := testutil.NewMockGlobalCategoryRepository()
	publisher := testutil.NewMockEventPublisher()
	categoryService := service.NewCategoryService(categoryRepo, globalRepo, publisher)
	return &categoryHandlerFixture{
		categoryRepo: categoryRepo,
		globalRepo:   globalRepo,
		publisher:    publisher,
		handler:      NewCategoryHandler(categoryService),
	}
}

func TestCreateCategory_Success(t *testing.T) {
	e := echo.New()
	f := newCategoryHandlerFixture()
	userID := uuid.New()

	body := `{"name": "Mercado", "icon": "shopping-cart", "color": "#10b981", "type": "expense"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/categories", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContextWithUser(c, "auth0|cat123", "cat@example.com", "", "", userID)

	err := f.handler.CreateCategory(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response CategoryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Name != "Mercado" {
		t.Errorf("Expected name 'Mercado', got %s", response.Name)
	}
	if response.Global {
		t.Error("Expected a personal category, got global")
	}
}

func TestCreateCategory_InvalidIcon(t *testing.T) {
	e := echo.New()
	f := newCategoryHandlerFixture()

	body := `{"name": "Mercado", "icon": "rocket-ship", "color": "#10b981", "type": "expense"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/categories", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContextWithUser(c, "auth0|cat123", "cat@example.com", "", "", uuid.New())

	err := f.handler.CreateCategory(c)
	if err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal problem details: %v", err)
	}
	if len(problem.Errors) == 0 || problem.Errors[0].Field != "icon" {
		t.Errorf("Expected a validation error on field 'icon', got %+v", problem.Errors)
	}
}

func TestCreateCategory_Unauthorized(t *testing.T) {
	e := echo.New()
	f := newCategoryHandlerFixture()

	body := `{"name": "Mercado", "icon": "shopping-cart", "color": "#10b981", "type": "expense"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/categories", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := f.handler.CreateCategory(c)
	if err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestGetCategories(t *testing.T) {
	e := echo.New()
	f := newCategoryHandlerFixture()
	userID := uuid.New()

	f.categoryRepo.AddCategory(&domain.Category{
		UserID: userID,
		Name:   "Arriendo",
		Icon:   "house",
		Color:  "#3b82f6",
		Type:   domain.TransactionTypeExpense,
	})
	f.categoryRepo.AddCategory(&domain.Category{
		UserID: userID,
		Name:   "Salario",
		Icon:   "briefcase",
		Color:  "#10b981",
		Type:   domain.TransactionTypeIncome,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContextWithUser(c, "auth0|cat123", "cat@example.com", "", "", userID)

	err := f.handler.GetCategories(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response []CategoryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(response) != 2 {
		t.Fatalf("Expected 2 categories, got %d", len(response))
	}
	// Income categories sort before expense ones
	if response[0].Name != "Salario" {
		t.Errorf("Expected 'Salario' first, got %s", response[0].Name)
	}
}

func TestGetGlobalCategories(t *testing.T) {
	e := echo.New()
	f := newCategoryHandlerFixture()

	f.globalRepo.AddCategory(&domain.GlobalCategory{
		ID:    uuid.New(),
		Name:  "Comida",
		Icon:  "hamburger",
		Color: "#f59e0b",
		Type:  domain.TransactionTypeExpense,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories/global", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := f.handler.GetGlobalCategories(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response []CategoryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response) != 1 {
		t.Fatalf("Expected 1 global category, got %d", len(response))
	}
	if !response[0].Global {
		t.Error("Expected global flag to be true")
	}
}

func TestDeleteCategory_Success(t *testing.T) {
	e := echo.New()
	f := newCategoryHandlerFixture()
	userID := uuid.New()

	category := &domain.Category{
		UserID: userID,
		Name:   "Viejo",
		Icon:   "wrench",
		Color:  "#6366f1",
		Type:   domain.TransactionTypeExpense,
	}
	f.categoryRepo.AddCategory(category)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/categories/"+category.ID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(category.ID.String())

	setupAuthContextWithUser(c, "auth0|cat123", "cat@example.com", "", "", userID)

	err := f.handler.DeleteCategory(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}
}

func TestDeleteCategory_InUse(t *testing.T) {
	e := echo.New()
	f := newCategoryHandlerFixture()
	userID := uuid.New()

	category := &domain.Category{
		UserID: userID,
		Name:   "Transporte",
		Icon:   "bus",
		Color:  "#14b8a6",
		Type:   domain.TransactionTypeExpense,
	}
	f.categoryRepo.AddCategory(category)
	f.categoryRepo.InUse[category.ID] = true

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/categories/"+category.ID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(category.ID.String())

	setupAuthContextWithUser(c, "auth0|cat123", "cat@example.com", "", "", userID)

	err := f.handler.DeleteCategory(c)
	if err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal problem details: %v", err)
	}
	if problem.Type != ErrorTypeConflict {
		t.Errorf("Expected conflict problem type, got %s", problem.Type)
	}
	if len(f.publisher.Events) != 0 {
		t.Errorf("Expected no events after a failed delete, got %d", len(f.publisher.Events))
	}
}

func TestDeleteCategory_NotFound(t *testing.T) {
	e := echo.New()
	f := newCategoryHandlerFixture()

	id := uuid.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/categories/"+id.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	setupAuthContextWithUser(c, "auth0|cat123", "cat@example.com", "", "", uuid.New())

	err := f.handler.DeleteCategory(c)
	if err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}
