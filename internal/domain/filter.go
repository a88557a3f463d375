package domain

import "strings"

// FilterType restricts a transaction list to one direction of money flow.
type FilterType string

const (
	FilterAll     FilterType = "all"
	FilterIncome  FilterType = "income"
	FilterExpense FilterType = "expense"
)

// ParseFilterType maps a query parameter to a FilterType. Empty and unknown
// values mean no restriction.
func ParseFilterType(s string) FilterType {
	switch s {
	case string(FilterIncome):
		return FilterIncome
	case string(FilterExpense):
		return FilterExpense
	default:
		return FilterAll
	}
}

// FilterTransactions narrows transactions first by type, then by a
// case-insensitive substring search over the description and the resolved
// category name. A transaction with neither field matching is dropped; a
// nil description never matches a non-empty query. The relative order of
// survivors is preserved and the input slice is left untouched.
func FilterTransactions(transactions []*Transaction, ft FilterType, query string) []*Transaction {
	filtered := transactions

	if ft == FilterIncome || ft == FilterExpense {
		byType := make([]*Transaction, 0, len(filtered))
		for _, t := range filtered {
			if string(t.Type) == string(ft) {
				byType = append(byType, t)
			}
		}
		filtered = byType
	}

	if query != "" {
		q := strings.ToLower(query)
		byQuery := make([]*Transaction, 0, len(filtered))
		for _, t := range filtered {
			if t.Description != nil && strings.Contains(strings.ToLower(*t.Description), q) {
				byQuery = append(byQuery, t)
				continue
			}
			if t.Category != nil && strings.Contains(strings.ToLower(t.Category.Name), q) {
				byQuery = append(byQuery, t)
			}
		}
		filtered = byQuery
	}

	return filtered
}

// DateGroup is a run of transactions sharing a localized full-date label.
type DateGroup struct {
	Label        string         `json:"label"`
	Transactions []*Transaction `json:"transactions"`
}

// GroupByDate splits transactions into groups keyed by their Spanish
// full-date label. Groups appear in the order their label is first seen,
// which for a date-descending input means newest day first.
func GroupByDate(transactions []*Transaction) []DateGroup {
	groups := make([]DateGroup, 0)
	byLabel := make(map[string]int)

	for _, t := range transactions {
		label := FormatFullDate(t.Date)
		i, ok := byLabel[label]
		if !ok {
			i = len(groups)
			byLabel[label] = i
			groups = append(groups, DateGroup{Label: label})
		}
		groups[i].Transactions = append(groups[i].Transactions, t)
	}

	return groups
}

// FilterAndGroup runs the filter pipeline and groups the survivors by date.
func FilterAndGroup(transactions []*Transaction, ft FilterType, query string) []DateGroup {
	return GroupByDate(FilterTransactions(transactions, ft, query))
}
