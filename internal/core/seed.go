package core

import "fmt"

type seedCategory struct {
	name string
	typ  EntryType
	icon string
}

// The fixed default set every account starts with: 5 income and
// 10 expense categories.
var defaultCategorySeed = []seedCategory{
	{"Lương", Income, "💰"},
	{"Học bổng", Income, "🎓"},
	{"Trợ cấp gia đình", Income, "👨‍👩‍👧"},
	{"Làm thêm", Income, "💼"},
	{"Thu nhập khác", Income, "💵"},
	{"Ăn uống", Expense, "🍜"},
	{"Học tập", Expense, "📚"},
	{"Nhà trọ", Expense, "🏠"},
	{"Di chuyển", Expense, "🚗"},
	{"Giải trí", Expense, "🎮"},
	{"Mua sắm", Expense, "🛍️"},
	{"Sức khỏe", Expense, "💊"},
	{"Điện nước", Expense, "💡"},
	{"Internet", Expense, "📱"},
	{"Chi tiêu khác", Expense, "💸"},
}

// DefaultCategories builds the seed category list for a user. IDs follow
// the fixed "default_<index>" scheme so seeded lists are identical across
// backends.
func DefaultCategories(userID string) []Category {
	out := make([]Category, 0, len(defaultCategorySeed))
	for i, s := range defaultCategorySeed {
		out = append(out, Category{
			ID:        fmt.Sprintf("default_%d", i),
			UserID:    userID,
			Name:      s.name,
			Type:      s.typ,
			Icon:      s.icon,
			IsDefault: true,
		})
	}
	return out
}
