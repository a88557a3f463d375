package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/service"
	"github.com/centavo/centavo-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func newDashboardHandlerFixture() (*DashboardHandler, *testutil.MockTransactionRepository, *testutil.MockCategoryRepository) {
	transactionRepo := testutil.NewMockTransactionRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	globalRepo := testutil.NewMockGlobalCategoryRepository()
	publisher := testutil.NewMockEventPublisher()
	categoryService := service.NewCategoryService(categoryRepo, globalRepo, publisher)
	transactionService := service.NewTransactionService(transactionRepo, categoryService, publisher)
	dashboardService := service.NewDashboardService(transactionService)
	return NewDashboardHandler(dashboardService), transactionRepo, categoryRepo
}

func TestGetSummary_Success(t *testing.T) {
	e := echo.New()
	handler, transactionRepo, categoryRepo := newDashboardHandlerFixture()
	userID := uuid.New()

	category := &domain.Category{
		UserID: userID,
		Name:   "Salario",
		Icon:   "briefcase",
		Color:  "#10b981",
		Type:   domain.TransactionTypeIncome,
	}
	categoryRepo.AddCategory(category)

	// Dated today so it lands inside the current week's buckets
	transactionRepo.AddTransaction(&domain.Transaction{
		UserID:     userID,
		Amount:     decimal.NewFromInt(1000000),
		Date:       time.Now(),
		Type:       domain.TransactionTypeIncome,
		CategoryID: category.ID,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContextWithUser(c, "auth0|dash123", "dash@example.com", "", "", userID)

	err := handler.GetSummary(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response DashboardSummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.TotalIncome.Formatted != "$1.000.000" {
		t.Errorf("Expected formatted income '$1.000.000', got %s", response.TotalIncome.Formatted)
	}
	if response.Balance.Formatted != "$1.000.000" {
		t.Errorf("Expected formatted balance '$1.000.000', got %s", response.Balance.Formatted)
	}
	if len(response.WeeklyActivity) != 7 {
		t.Fatalf("Expected 7 weekly buckets, got %d", len(response.WeeklyActivity))
	}
	if len(response.RecentTransactions) != 1 {
		t.Errorf("Expected 1 recent transaction, got %d", len(response.RecentTransactions))
	}
}

func TestGetSummary_Empty(t *testing.T) {
	e := echo.New()
	handler, _, _ := newDashboardHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContextWithUser(c, "auth0|dash123", "dash@example.com", "", "", uuid.New())

	err := handler.GetSummary(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response DashboardSummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.TotalExpenses.Formatted != "$0" {
		t.Errorf("Expected formatted expenses '$0', got %s", response.TotalExpenses.Formatted)
	}
	if len(response.RecentTransactions) != 0 {
		t.Errorf("Expected no recent transactions, got %d", len(response.RecentTransactions))
	}
}

func TestGetSummary_Unauthorized(t *testing.T) {
	e := echo.New()
	handler, _, _ := newDashboardHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.GetSummary(c)
	if err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}
