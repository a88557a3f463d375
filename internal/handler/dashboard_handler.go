package handler

import (
	"net/http"
	"time"

	"github.com/centavo/centavo-backend/internal/middleware"
	"github.com/centavo/centavo-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// SummaryTotalResponse pairs a raw amount with its peso rendering
type SummaryTotalResponse struct {
	Amount    string `json:"amount"`
	Formatted string `json:"formatted"`
}

// DayActivityResponse is one bar of the weekly activity chart
type DayActivityResponse struct {
	Day     string `json:"day"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

// DashboardSummaryResponse is the dashboard payload
type DashboardSummaryResponse struct {
	TotalIncome        SummaryTotalResponse  `json:"totalIncome"`
	TotalExpenses      SummaryTotalResponse  `json:"totalExpenses"`
	Balance            SummaryTotalResponse  `json:"balance"`
	WeeklyActivity     []DayActivityResponse `json:"weeklyActivity"`
	RecentTransactions []TransactionResponse `json:"recentTransactions"`
}

// GetSummary godoc
// @Summary Get the dashboard summary
// @Description Totals over all transactions, this week's daily activity, and the most recent transactions
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DashboardSummaryResponse
// @Failure 401 {object} ProblemDetails
// @Router /dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	summary, err := h.dashboardService.GetSummary(userID, time.Now())
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to build dashboard summary")
		return NewInternalError(c, "Failed to build dashboard summary")
	}

	week := make([]DayActivityResponse, 0, len(summary.WeeklyActivity))
	for _, d := range summary.WeeklyActivity {
		week = append(week, DayActivityResponse{
			Day:     d.Day,
			Income:  d.Income.String(),
			Expense: d.Expense.String(),
		})
	}

	recent := make([]TransactionResponse, 0, len(summary.RecentTransactions))
	for _, t := range summary.RecentTransactions {
		recent = append(recent, toTransactionResponse(t))
	}

	return c.JSON(http.StatusOK, DashboardSummaryResponse{
		TotalIncome:        toSummaryTotalResponse(summary.TotalIncome),
		TotalExpenses:      toSummaryTotalResponse(summary.TotalExpenses),
		Balance:            toSummaryTotalResponse(summary.Balance),
		WeeklyActivity:     week,
		RecentTransactions: recent,
	})
}

func toSummaryTotalResponse(t service.SummaryTotal) SummaryTotalResponse {
	return SummaryTotalResponse{
		Amount:    t.Amount.String(),
		Formatted: t.Formatted,
	}
}
