package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Totals holds the three headline aggregates shown on the dashboard.
type Totals struct {
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	Balance       decimal.Decimal `json:"balance"`
}

// Aggregate sums income and expense amounts over the full transaction set.
// Balance is income minus expenses and may be negative. An empty input
// yields zero totals.
func Aggregate(transactions []*Transaction) Totals {
	income := decimal.Zero
	expenses := decimal.Zero
	for _, t := range transactions {
		switch t.Type {
		case TransactionTypeIncome:
			income = income.Add(t.Amount)
		case TransactionTypeExpense:
			expenses = expenses.Add(t.Amount)
		}
	}
	return Totals{
		TotalIncome:   income,
		TotalExpenses: expenses,
		Balance:       income.Sub(expenses),
	}
}

// DayActivity is one bar of the weekly activity chart.
type DayActivity struct {
	Day     string          `json:"day"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

var weekDayLabels = [7]string{"Lun", "Mar", "Mié", "Jue", "Vie", "Sáb", "Dom"}

// BucketByWeek distributes transactions over the Monday-to-Sunday week
// containing now. Sunday belongs to the week that started six days earlier,
// not the week it begins. Transactions match a bucket by calendar day in
// now's location; anything outside the window contributes to no bucket.
// The result always has exactly seven entries labeled Lun through Dom.
func BucketByWeek(transactions []*Transaction, now time.Time) [7]DayActivity {
	loc := now.Location()

	daysFromMonday := int(now.Weekday()) - 1
	if now.Weekday() == time.Sunday {
		daysFromMonday = 6
	}
	monday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).
		AddDate(0, 0, -daysFromMonday)

	var week [7]DayActivity
	offsets := make(map[[3]int]int, 7)
	for i := range week {
		week[i] = DayActivity{
			Day:     weekDayLabels[i],
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		}
		d := monday.AddDate(0, 0, i)
		offsets[[3]int{d.Year(), int(d.Month()), d.Day()}] = i
	}

	for _, t := range transactions {
		d := t.Date.In(loc)
		i, ok := offsets[[3]int{d.Year(), int(d.Month()), d.Day()}]
		if !ok {
			continue
		}
		switch t.Type {
		case TransactionTypeIncome:
			week[i].Income = week[i].Income.Add(t.Amount)
		case TransactionTypeExpense:
			week[i].Expense = week[i].Expense.Add(t.Amount)
		}
	}

	return week
}
