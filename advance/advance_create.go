package advance

import (
	"context"
	"errors"
	"time"

	"github.com/pdcgo/tms_service/sequence"
	"github.com/pdcgo/tms_service/tms_model"
	"gorm.io/gorm"
)

type AdvanceCreatePayload struct {
	OperatingUnitID uint    `json:"operating_unit_id"`
	TravelID        uint    `json:"travel_id"`
	UnitID          uint    `json:"unit_id"`
	DriverID        uint    `json:"driver_id"`
	Amount          float64 `json:"amount"`
	CurrencyID      uint    `json:"currency_id"`
	Date            string  `json:"date"`
	Notes           string  `json:"notes"`
	AutoExpense     bool    `json:"auto_expense"`
	ProductID       uint    `json:"product_id"`
}

// AdvanceCreate opens a draft advance and allocates its number from the
// operating unit sequence in the same transaction.
func (s *advanceServiceImpl) AdvanceCreate(
	ctx context.Context,
	actor *ActingContext,
	pay *AdvanceCreatePayload,
) (*tms_model.Advance, error) {
	var err error
	var adv tms_model.Advance

	if pay.Amount <= 0 {
		return &adv, &ValidationError{
			Reason: "the amount must be greater than zero",
		}
	}

	date := time.Now()
	if pay.Date != "" {
		date, err = time.Parse("2006-01-02", pay.Date)
		if err != nil {
			return &adv, &ValidationError{
				Reason: "date malformed, expecting YYYY-MM-DD",
			}
		}
	}

	err = s.
		db.
		WithContext(ctx).
		Transaction(func(tx *gorm.DB) error {
			var unit tms_model.OperatingUnit
			err = tx.
				Model(&tms_model.OperatingUnit{}).
				Where("id = ?", pay.OperatingUnitID).
				Find(&unit).
				Error

			if err != nil {
				return err
			}

			if unit.ID == 0 {
				return &ValidationError{
					Reason: "operating unit not found",
				}
			}

			var product tms_model.Product
			err = tx.
				Model(&tms_model.Product{}).
				Where("id = ?", pay.ProductID).
				Find(&product).
				Error

			if err != nil {
				return err
			}

			if product.ID == 0 {
				return &ValidationError{
					Reason: "product not found",
				}
			}

			if product.Category != tms_model.RealExpenseCategory {
				return &ValidationError{
					Reason: "product is not a real expense product",
				}
			}

			currencyID := pay.CurrencyID
			if currencyID == 0 {
				currencyID = actor.CurrencyID
			}

			number, err := sequence.NextByID(tx, unit.AdvanceSequenceID)
			if err != nil {
				if errors.Is(err, sequence.ErrNoSequence) {
					return &ConfigurationError{
						Missing: "sequence",
						Reason:  "no advance sequence configured",
					}
				}
				return err
			}

			adv = tms_model.Advance{
				OperatingUnitID: unit.ID,
				Number:          number,
				State:           tms_model.AdvanceDraft,
				Date:            date,
				TravelID:        pay.TravelID,
				UnitID:          pay.UnitID,
				DriverID:        pay.DriverID,
				Amount:          pay.Amount,
				CurrencyID:      currencyID,
				Notes:           pay.Notes,
				AutoExpense:     pay.AutoExpense,
				ProductID:       pay.ProductID,
				CreatedByID:     actor.UserID,
				Created:         time.Now(),
			}

			return tx.Save(&adv).Error
		})

	return &adv, err
}
