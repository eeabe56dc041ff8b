package tms_model

import "time"

type ProductCategory string

const (
	RealExpenseCategory ProductCategory = "real_expense"
	MadeUpExpense       ProductCategory = "made_up_expense"
	SalaryCategory      ProductCategory = "salary"
)

// Product classifies what an advance or expense line is spent on.
// Advances only accept real expense products.
type Product struct {
	ID       uint            `json:"id" gorm:"primarykey"`
	Name     string          `json:"name"`
	Category ProductCategory `json:"category"`

	Created time.Time `json:"created"`
}
