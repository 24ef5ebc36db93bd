package core

import "fmt"

const (
	KindTransactions Kind = "transactions"
	KindCategories   Kind = "categories"
	KindBudgets      Kind = "budgets"
	KindGoals        Kind = "goals"
	KindReminders    Kind = "reminders"
)

// Kind names one of the five per-user record lists. Its string value is
// both the route segment and the plural envelope key on the wire.
type Kind string

var kindSingular = map[Kind]string{
	KindTransactions: "transaction",
	KindCategories:   "category",
	KindBudgets:      "budget",
	KindGoals:        "goal",
	KindReminders:    "reminder",
}

// Kinds returns all record kinds in a stable order.
func Kinds() []Kind {
	return []Kind{KindTransactions, KindCategories, KindBudgets, KindGoals, KindReminders}
}

// Valid reports whether k names a known record kind.
func (k Kind) Valid() bool {
	_, ok := kindSingular[k]
	return ok
}

// Plural is the envelope key for list responses.
func (k Kind) Plural() string {
	return string(k)
}

// Singular is the envelope key for single-record responses.
func (k Kind) Singular() string {
	s, ok := kindSingular[k]
	if !ok {
		panic(fmt.Sprintf("unknown record kind %q", string(k)))
	}
	return s
}
