package tms_model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Currency rate is expressed as units of the currency per one base unit.
type Currency struct {
	ID   uint    `json:"id" gorm:"primarykey"`
	Name string  `json:"name"`
	Code string  `json:"code" gorm:"index:currency_code,unique"`
	Rate float64 `json:"rate"`
	Base bool    `json:"base"`

	Created time.Time `json:"created"`
}

// Convert translates an amount held in this currency into the target
// currency. Rate arithmetic goes through decimal, float error on rate
// division must not leak into ledger amounts. An unconfigured rate
// converts to zero.
func (c *Currency) Convert(amount float64, to *Currency) float64 {
	if to == nil || c.ID == to.ID {
		return amount
	}

	if c.Rate == 0 || to.Rate == 0 {
		return 0
	}

	value := decimal.NewFromFloat(amount).
		Div(decimal.NewFromFloat(c.Rate)).
		Mul(decimal.NewFromFloat(to.Rate))

	res, _ := value.Round(5).Float64()
	return res
}

func BaseCurrency(db *gorm.DB) (*Currency, error) {
	var cur Currency
	err := db.
		Model(&Currency{}).
		Where("base = ?", true).
		First(&cur).
		Error

	return &cur, err
}
