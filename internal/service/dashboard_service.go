package service

import (
	"time"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// recentTransactionCount is how many transactions the dashboard lists
const recentTransactionCount = 5

// DashboardService aggregates the user's data for the dashboard view
type DashboardService struct {
	transactionService *TransactionService
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(transactionService *TransactionService) *DashboardService {
	return &DashboardService{transactionService: transactionService}
}

// SummaryTotal pairs a raw amount with its peso rendering
type SummaryTotal struct {
	Amount    decimal.Decimal `json:"amount"`
	Formatted string          `json:"formatted"`
}

// DashboardSummary is the full dashboard payload
type DashboardSummary struct {
	TotalIncome        SummaryTotal          `json:"totalIncome"`
	TotalExpenses      SummaryTotal          `json:"totalExpenses"`
	Balance            SummaryTotal          `json:"balance"`
	WeeklyActivity     []domain.DayActivity  `json:"weeklyActivity"`
	RecentTransactions []*domain.Transaction `json:"recentTransactions"`
}

// GetSummary computes totals over all of the user's transactions, buckets
// the current week's activity, and picks the most recent transactions.
func (s *DashboardService) GetSummary(userID uuid.UUID, now time.Time) (*DashboardSummary, error) {
	transactions, err := s.transactionService.GetTransactions(userID)
	if err != nil {
		return nil, err
	}

	totals := domain.Aggregate(transactions)
	week := domain.BucketByWeek(transactions, now)

	recent := transactions
	if len(recent) > recentTransactionCount {
		recent = recent[:recentTransactionCount]
	}

	return &DashboardSummary{
		TotalIncome:        newSummaryTotal(totals.TotalIncome),
		TotalExpenses:      newSummaryTotal(totals.TotalExpenses),
		Balance:            newSummaryTotal(totals.Balance),
		WeeklyActivity:     week[:],
		RecentTransactions: recent,
	}, nil
}

func newSummaryTotal(amount decimal.Decimal) SummaryTotal {
	return SummaryTotal{
		Amount:    amount,
		Formatted: domain.FormatCOP(amount),
	}
}
