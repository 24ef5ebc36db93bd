package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2025, 3, 9)
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-09"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, back.Equal(d.Time))
}

func TestDateUnmarshalEmpty(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.True(t, d.IsZero())
}

func TestParseDateInvalid(t *testing.T) {
	_, err := ParseDate("09/03/2025")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDateInMonth(t *testing.T) {
	d := NewDate(2025, 6, 15)
	assert.True(t, d.InMonth(2025, time.June))
	assert.False(t, d.InMonth(2025, time.July))
	assert.False(t, d.InMonth(2024, time.June))
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Type:        Expense,
		Amount:      50000,
		Description: "bún chả",
		CategoryID:  "default_5",
		Date:        NewDate(2025, 1, 10),
	}
	require.NoError(t, good.Validate())

	cases := []struct {
		name string
		mut  func(*Transaction)
		want error
	}{
		{"bad type", func(tx *Transaction) { tx.Type = "transfer" }, ErrInvalidType},
		{"negative amount", func(tx *Transaction) { tx.Amount = -1 }, ErrInvalidAmount},
		{"blank description", func(tx *Transaction) { tx.Description = "  " }, ErrEmptyDescription},
		{"no category", func(tx *Transaction) { tx.CategoryID = "" }, ErrEmptyCategory},
		{"zero date", func(tx *Transaction) { tx.Date = Date{} }, ErrInvalidDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := good
			tc.mut(&tx)
			assert.ErrorIs(t, tx.Validate(), tc.want)
		})
	}
}

func TestBudgetValidate(t *testing.T) {
	good := Budget{CategoryID: "default_5", Amount: 1000000, Period: PeriodMonthly}
	require.NoError(t, good.Validate())

	bad := good
	bad.Amount = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidAmount)

	bad = good
	bad.Period = "weekly"
	assert.ErrorIs(t, bad.Validate(), ErrInvalidPeriod)
}

func TestGoalValidate(t *testing.T) {
	good := Goal{Name: "Laptop mới", TargetAmount: 20000000, Deadline: NewDate(2026, 1, 1)}
	require.NoError(t, good.Validate())

	bad := good
	bad.TargetAmount = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidAmount)

	bad = good
	bad.CurrentAmount = -5
	assert.ErrorIs(t, bad.Validate(), ErrInvalidAmount)
}

func TestGoalCompleted(t *testing.T) {
	g := Goal{TargetAmount: 100, CurrentAmount: 99}
	assert.False(t, g.Completed())
	g.CurrentAmount = 100
	assert.True(t, g.Completed())
	g.CurrentAmount = 150
	assert.True(t, g.Completed())
}

func TestReminderValidate(t *testing.T) {
	good := Reminder{
		Title:      "Tiền nhà",
		Type:       Expense,
		CategoryID: "default_7",
		Amount:     1500000,
		Frequency:  PeriodMonthly,
		DayOfMonth: 5,
	}
	require.NoError(t, good.Validate())

	for _, day := range []int{0, 32, -1} {
		bad := good
		bad.DayOfMonth = day
		assert.ErrorIs(t, bad.Validate(), ErrInvalidDay, "day %d", day)
	}
}

func TestKindNames(t *testing.T) {
	assert.Len(t, Kinds(), 5)
	assert.Equal(t, "transaction", KindTransactions.Singular())
	assert.Equal(t, "transactions", KindTransactions.Plural())
	assert.True(t, Kind("budgets").Valid())
	assert.False(t, Kind("accounts").Valid())
}
