// Package core holds the transaction domain model and its derived
// aggregations. Aggregations are pure: they recompute from the full input
// collection on every call and never cache state.
package core

import (
	"sort"
	"strings"
)

// NormalizeCategory maps missing or blank categories to DefaultCategory.
func NormalizeCategory(category string) string {
	if strings.TrimSpace(category) == "" {
		return DefaultCategory
	}
	return category
}

// Balance returns the signed sum of all amounts. Empty input yields 0.
func Balance(records []Transaction) float64 {
	var sum float64
	for _, t := range records {
		sum += t.Amount
	}
	return sum
}

// CategoryTotals sums absolute spending (negative amounts only) per category.
// Every category present in the input appears as a key, so an income-only
// category is reported with total 0. Income never contributes to a total.
func CategoryTotals(records []Transaction) map[string]float64 {
	totals := make(map[string]float64)
	for _, t := range records {
		cat := NormalizeCategory(t.Category)
		if t.Amount < 0 {
			totals[cat] += -t.Amount
		} else {
			totals[cat] += 0
		}
	}
	return totals
}

// MonthlyRunningBalance walks the records in stable date-ascending order,
// accumulating a running sum and recording it under the record's "YYYY-MM"
// bucket. The final value for a month is the balance as of its last
// transaction. Months without transactions never appear.
func MonthlyRunningBalance(records []Transaction) map[string]float64 {
	sorted := make([]Transaction, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date.Time)
	})

	months := make(map[string]float64)
	var running float64
	for _, t := range sorted {
		running += t.Amount
		months[t.Date.MonthKey()] = running
	}
	return months
}

// SortByDateDesc returns a new slice ordered by date descending. The sort key
// is the date alone; same-day records keep their original relative order.
func SortByDateDesc(records []Transaction) []Transaction {
	sorted := make([]Transaction, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date.Time)
	})
	return sorted
}
