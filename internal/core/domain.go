package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Income  EntryType = "income"
	Expense EntryType = "expense"

	PeriodMonthly = "monthly"

	dateLayout = "2006-01-02"
)

type (
	// EntryType partitions categories, transactions and reminders
	// into income and expense.
	EntryType string

	// Date is a calendar date carried on the wire as "YYYY-MM-DD".
	Date struct {
		time.Time
	}

	// Category classifies transactions. Default categories are seeded at
	// account creation and cannot be edited or deleted.
	Category struct {
		ID        string    `json:"id"`
		UserID    string    `json:"userId"`
		Name      string    `json:"name"`
		Type      EntryType `json:"type"`
		Icon      string    `json:"icon"`
		IsDefault bool      `json:"isDefault"`
		CreatedAt time.Time `json:"createdAt"`
	}

	// Transaction is a single income or expense record.
	Transaction struct {
		ID          string    `json:"id"`
		UserID      string    `json:"userId"`
		Type        EntryType `json:"type"`
		Amount      float64   `json:"amount"`
		Description string    `json:"description"`
		CategoryID  string    `json:"categoryId"`
		Date        Date      `json:"date"`
		Image       string    `json:"image,omitempty"`
		CreatedAt   time.Time `json:"createdAt"`
	}

	// Budget caps monthly spending for one expense category.
	// At most one budget may exist per category.
	Budget struct {
		ID         string    `json:"id"`
		UserID     string    `json:"userId"`
		CategoryID string    `json:"categoryId"`
		Amount     float64   `json:"amount"`
		Period     string    `json:"period"`
		CreatedAt  time.Time `json:"createdAt"`
	}

	// Goal is a savings target. CurrentAmount only grows through the
	// explicit add-funds operation.
	Goal struct {
		ID            string    `json:"id"`
		UserID        string    `json:"userId"`
		Name          string    `json:"name"`
		Icon          string    `json:"icon"`
		TargetAmount  float64   `json:"targetAmount"`
		CurrentAmount float64   `json:"currentAmount"`
		Deadline      Date      `json:"deadline"`
		CreatedAt     time.Time `json:"createdAt"`
	}

	// Reminder is a declarative monthly schedule entry. Nothing fires it;
	// the next occurrence is computed for display only.
	Reminder struct {
		ID         string    `json:"id"`
		UserID     string    `json:"userId"`
		Title      string    `json:"title"`
		Type       EntryType `json:"type"`
		CategoryID string    `json:"categoryId"`
		Amount     float64   `json:"amount"`
		Frequency  string    `json:"frequency"`
		DayOfMonth int       `json:"dayOfMonth"`
		Enabled    bool      `json:"enabled"`
		CreatedAt  time.Time `json:"createdAt"`
	}

	// UserProfile is the account view exposed by GET /profile.
	UserProfile struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrInvalidType      = errors.New("type must be income or expense")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyName        = errors.New("empty name")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidDay       = errors.New("day of month must be between 1 and 31")
	ErrInvalidPeriod    = errors.New("unsupported period")
)

func (t EntryType) Valid() bool {
	return t == Income || t == Expense
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses the "YYYY-MM-DD" wire format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

// Today returns the current calendar date.
func Today() Date {
	y, m, d := time.Now().Date()
	return NewDate(y, int(m), d)
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// InMonth reports whether the date falls in the given calendar month.
func (d Date) InMonth(year int, month time.Month) bool {
	return d.Year() == year && d.Month() == month
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if !c.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}

func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if t.Amount < 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if t.CategoryID == "" {
		return ErrEmptyCategory
	}
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (b Budget) Validate() error {
	if b.CategoryID == "" {
		return ErrEmptyCategory
	}
	if b.Amount <= 0 {
		return ErrInvalidAmount
	}
	if b.Period != PeriodMonthly {
		return ErrInvalidPeriod
	}
	return nil
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	if g.TargetAmount <= 0 {
		return ErrInvalidAmount
	}
	if g.CurrentAmount < 0 {
		return ErrInvalidAmount
	}
	if g.Deadline.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (r Reminder) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrEmptyName
	}
	if !r.Type.Valid() {
		return ErrInvalidType
	}
	if r.CategoryID == "" {
		return ErrEmptyCategory
	}
	if r.Amount < 0 {
		return ErrInvalidAmount
	}
	if r.Frequency != PeriodMonthly {
		return ErrInvalidPeriod
	}
	if r.DayOfMonth < 1 || r.DayOfMonth > 31 {
		return ErrInvalidDay
	}
	return nil
}

// Completed reports whether the goal target has been reached.
func (g Goal) Completed() bool {
	return g.CurrentAmount >= g.TargetAmount
}
