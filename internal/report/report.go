// Package report computes the derived figures shown by the CLI:
// balances, budget health, goal progress, reminder schedules and the
// time-series breakdowns. Everything here is a pure function over
// loaded records.
package report

import (
	"math"
	"sort"
	"time"

	"github.com/jinzhu/now"

	"studentmoney/internal/core"
)

// Totals are the all-time income, expense and balance figures.
type Totals struct {
	Income  float64
	Expense float64
}

func (t Totals) Balance() float64 { return t.Income - t.Expense }

// SavingsRate is the balance as a share of income, zero when there is
// no income yet.
func (t Totals) SavingsRate() float64 {
	if t.Income == 0 {
		return 0
	}
	return t.Balance() / t.Income * 100
}

// Sum totals every transaction by type.
func Sum(txs []core.Transaction) Totals {
	var t Totals
	for _, tx := range txs {
		switch tx.Type {
		case core.Income:
			t.Income += tx.Amount
		case core.Expense:
			t.Expense += tx.Amount
		}
	}
	return t
}

// SumInMonth totals the transactions falling in at's calendar month.
func SumInMonth(txs []core.Transaction, at time.Time) Totals {
	var t Totals
	for _, tx := range txs {
		if !tx.Date.InMonth(at.Year(), at.Month()) {
			continue
		}
		switch tx.Type {
		case core.Income:
			t.Income += tx.Amount
		case core.Expense:
			t.Expense += tx.Amount
		}
	}
	return t
}

// SpentInMonth sums expense transactions for one category within at's
// calendar month.
func SpentInMonth(txs []core.Transaction, categoryID string, at time.Time) float64 {
	begin := now.New(at).BeginningOfMonth()
	end := now.New(at).EndOfMonth()
	var spent float64
	for _, tx := range txs {
		if tx.Type != core.Expense || tx.CategoryID != categoryID {
			continue
		}
		d := tx.Date.Time
		if d.Before(begin) || d.After(end) {
			continue
		}
		spent += tx.Amount
	}
	return spent
}

// Tier labels how close spending is to a budget cap.
type Tier string

const (
	TierOver    Tier = "over"
	TierWarning Tier = "warning"
	TierCaution Tier = "caution"
	TierSafe    Tier = "safe"
)

// TierFor maps a utilization percentage to its tier. The thresholds
// are checked from most to least severe.
func TierFor(percentage float64) Tier {
	switch {
	case percentage >= 100:
		return TierOver
	case percentage >= 90:
		return TierWarning
	case percentage >= 70:
		return TierCaution
	default:
		return TierSafe
	}
}

// BudgetStatus is one budget with its current-month utilization.
type BudgetStatus struct {
	Budget     core.Budget
	Spent      float64
	Percentage float64
	Tier       Tier
}

// EvaluateBudget computes at-month utilization for one budget. A zero
// cap reports zero percent rather than dividing by zero.
func EvaluateBudget(b core.Budget, txs []core.Transaction, at time.Time) BudgetStatus {
	status := BudgetStatus{
		Budget: b,
		Spent:  SpentInMonth(txs, b.CategoryID, at),
	}
	if b.Amount > 0 {
		status.Percentage = status.Spent / b.Amount * 100
	}
	status.Tier = TierFor(status.Percentage)
	return status
}

// EvaluateBudgets evaluates every budget against the same month.
func EvaluateBudgets(budgets []core.Budget, txs []core.Transaction, at time.Time) []BudgetStatus {
	out := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, EvaluateBudget(b, txs, at))
	}
	return out
}

// GoalStatus is one goal with its derived progress figures.
type GoalStatus struct {
	Goal      core.Goal
	Progress  float64
	DaysLeft  int
	Completed bool
}

// EvaluateGoal computes progress toward the target, capped at 100,
// and the days remaining until the deadline. DaysLeft is negative for
// past deadlines.
func EvaluateGoal(g core.Goal, today core.Date) GoalStatus {
	status := GoalStatus{Goal: g, Completed: g.Completed()}
	if g.TargetAmount > 0 {
		status.Progress = math.Min(g.CurrentAmount/g.TargetAmount*100, 100)
	}
	status.DaysLeft = int(math.Ceil(g.Deadline.Sub(today.Time).Hours() / 24))
	return status
}

// NextOccurrence returns the next calendar date a monthly reminder
// lands on: the given day in today's month, or in the next month when
// that day has already passed. Days past the month's end roll over the
// way the calendar normalizes them.
func NextOccurrence(dayOfMonth int, today core.Date) core.Date {
	next := core.NewDate(today.Year(), int(today.Month()), dayOfMonth)
	if next.Before(today.Time) {
		next = core.NewDate(today.Year(), int(today.Month())+1, dayOfMonth)
	}
	return next
}

// SeriesPoint is one day's totals in a daily series.
type SeriesPoint struct {
	Date    core.Date
	Income  float64
	Expense float64
}

// DailySeries buckets transactions per day over the window of `days`
// days ending at endingAt inclusive. Every day appears, zero-filled,
// and transactions outside the window are dropped.
func DailySeries(txs []core.Transaction, days int, endingAt core.Date) []SeriesPoint {
	points := make([]SeriesPoint, 0, days)
	index := make(map[string]int, days)
	for i := days - 1; i >= 0; i-- {
		d := core.Date{Time: endingAt.AddDate(0, 0, -i)}
		index[d.String()] = len(points)
		points = append(points, SeriesPoint{Date: d})
	}
	for _, tx := range txs {
		i, ok := index[tx.Date.String()]
		if !ok {
			continue
		}
		switch tx.Type {
		case core.Income:
			points[i].Income += tx.Amount
		case core.Expense:
			points[i].Expense += tx.Amount
		}
	}
	return points
}

// TrendPoint is one month's totals in the monthly trend.
type TrendPoint struct {
	Year    int
	Month   time.Month
	Income  float64
	Expense float64
}

func (p TrendPoint) Balance() float64 { return p.Income - p.Expense }

// MonthlyTrend buckets transactions per month over the `months`
// months ending at endingAt's month inclusive. Stepping happens from
// the first of the month so a month-end endingAt cannot overflow past
// a short month.
func MonthlyTrend(txs []core.Transaction, months int, endingAt core.Date) []TrendPoint {
	base := now.New(endingAt.Time).BeginningOfMonth()
	points := make([]TrendPoint, 0, months)
	index := make(map[[2]int]int, months)
	for i := months - 1; i >= 0; i-- {
		m := base.AddDate(0, -i, 0)
		index[[2]int{m.Year(), int(m.Month())}] = len(points)
		points = append(points, TrendPoint{Year: m.Year(), Month: m.Month()})
	}
	for _, tx := range txs {
		i, ok := index[[2]int{tx.Date.Year(), int(tx.Date.Month())}]
		if !ok {
			continue
		}
		switch tx.Type {
		case core.Income:
			points[i].Income += tx.Amount
		case core.Expense:
			points[i].Expense += tx.Amount
		}
	}
	return points
}

// CategoryShare is one category's slice of total spending.
type CategoryShare struct {
	Name       string
	Icon       string
	Value      float64
	Percentage float64
}

// fallbackCategoryName labels spending whose category no longer exists.
const fallbackCategoryName = "Khác"

// CategoryDistribution groups expense transactions by category, keeps
// the top eight by value and expresses each as a percentage of the
// retained total.
func CategoryDistribution(txs []core.Transaction, cats []core.Category) []CategoryShare {
	const top = 8

	totals := make(map[string]float64)
	for _, tx := range txs {
		if tx.Type == core.Expense {
			totals[tx.CategoryID] += tx.Amount
		}
	}

	byID := make(map[string]core.Category, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}

	shares := make([]CategoryShare, 0, len(totals))
	for id, value := range totals {
		share := CategoryShare{Name: fallbackCategoryName, Value: value}
		if c, ok := byID[id]; ok {
			share.Name = c.Name
			share.Icon = c.Icon
		}
		shares = append(shares, share)
	}
	sort.SliceStable(shares, func(i, j int) bool { return shares[i].Value > shares[j].Value })
	if len(shares) > top {
		shares = shares[:top]
	}

	var retained float64
	for _, s := range shares {
		retained += s.Value
	}
	if retained > 0 {
		for i := range shares {
			shares[i].Percentage = shares[i].Value / retained * 100
		}
	}
	return shares
}
