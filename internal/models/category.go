package models

// Category labels a history row for filtering and statements.
type Category string

const CategoryGeneral Category = "General"

// Categories is the fixed set offered to the user, in display order.
var Categories = []Category{
	CategoryGeneral, "Salary", "Savings", "Rent", "Groceries", "Utilities",
	"Transfer", "ATM", "Entertainment", "Bills", "Other",
}

// ParseCategory maps a stored value onto the known set. Files edited by hand
// may carry anything; unknown values fall back to General rather than
// failing the read.
func ParseCategory(s string) Category {
	for _, c := range Categories {
		if string(c) == s {
			return c
		}
	}
	return CategoryGeneral
}
