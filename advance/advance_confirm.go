package advance

import (
	"context"
	"fmt"
	"time"

	"github.com/pdcgo/tms_service/accounting_transaction/advance_transaction"
	"github.com/pdcgo/tms_service/timeline"
	"github.com/pdcgo/tms_service/tms_model"
	"gorm.io/gorm"
)

// AdvanceConfirm posts the advance to the general ledger and moves it to
// confirmed. Prerequisites are checked in a fixed order, amount, then
// journal, then credit account, then debit account, so the first error
// reported is deterministic under multiple misconfigurations.
func (s *advanceServiceImpl) AdvanceConfirm(
	ctx context.Context,
	actor *ActingContext,
	advanceID uint,
) (*tms_model.Advance, error) {
	var adv *tms_model.Advance
	var skipped bool

	err := s.
		db.
		WithContext(ctx).
		Transaction(func(tx *gorm.DB) error {
			var err error
			adv, err = s.lockAdvance(tx, advanceID)
			if err != nil {
				return err
			}

			if adv.State != tms_model.AdvanceApproved {
				return &StateError{
					Reason: fmt.Sprintf("advance %s is not approved", adv.Number),
				}
			}

			if adv.Amount <= 0 {
				return &ValidationError{
					Reason: "the amount must be greater than zero",
				}
			}

			var unit tms_model.OperatingUnit
			err = tx.
				Model(&tms_model.OperatingUnit{}).
				Where("id = ?", adv.OperatingUnitID).
				Find(&unit).
				Error

			if err != nil {
				return err
			}

			if unit.AdvanceJournalID == 0 {
				return &ConfigurationError{
					Missing: "journal",
					Reason:  "the advance does not have a journal assigned",
				}
			}

			var driver tms_model.Driver
			err = tx.
				Model(&tms_model.Driver{}).
				Preload("HomeAddress").
				Where("id = ?", adv.DriverID).
				Find(&driver).
				Error

			if err != nil {
				return err
			}

			if driver.HomeAddress == nil || driver.HomeAddress.PayableAccountID == 0 {
				return &ConfigurationError{
					Missing: "driver home address",
					Reason:  "the driver does not have a home address assigned",
				}
			}
			creditAccountID := driver.HomeAddress.PayableAccountID

			if driver.AdvanceAccountID == 0 {
				return &ConfigurationError{
					Missing: "chart of accounts mapping",
					Reason:  "the driver advance account is not configured",
				}
			}
			debitAccountID := driver.AdvanceAccountID

			total, err := s.convertTotal(tx, adv, actor)
			if err != nil {
				return err
			}

			if total <= 0 {
				if s.strictZeroTotal {
					return &ValidationError{
						Reason: "converted total is not positive",
					}
				}

				// historical behavior, a non positive total posts
				// nothing and the advance stays approved
				skipped = true
				return nil
			}

			narration, err := s.confirmNarration(tx, adv, &unit, &driver)
			if err != nil {
				return err
			}

			tran, err := advance_transaction.
				NewAdvanceTransaction(tx, actor.UserID).
				Confirm(adv, &advance_transaction.ConfirmPayload{
					JournalID:       unit.AdvanceJournalID,
					DebitAccountID:  debitAccountID,
					CreditAccountID: creditAccountID,
					Total:           total,
					Narration:       narration,
					EntryDate:       time.Now(),
				})

			if err != nil {
				return &LedgerError{
					Reason: "could not create accounting move",
					Err:    err,
				}
			}

			if tran == nil || tran.ID == 0 {
				return &LedgerError{
					Reason: "could not create accounting move",
				}
			}

			adv.MoveID = tran.ID
			// the posted total in company currency, payment clears
			// this exact amount later
			adv.MoveAmount = total
			adv.State = tms_model.AdvanceConfirmed
			return tx.Save(adv).Error
		})

	if err != nil {
		return adv, err
	}

	if skipped {
		return adv, nil
	}

	s.timeline.Post(ctx, adv.RefID(), &timeline.Event{
		Kind:    timeline.AdvanceConfirmed,
		ActorID: actor.UserID,
		Fields: map[string]string{
			"number": adv.Number,
			"move":   fmt.Sprintf("%d", adv.MoveID),
		},
	})

	return adv, nil
}

func (s *advanceServiceImpl) convertTotal(
	tx *gorm.DB,
	adv *tms_model.Advance,
	actor *ActingContext,
) (float64, error) {
	var err error
	var cur, userCur tms_model.Currency

	err = tx.
		Model(&tms_model.Currency{}).
		Where("id = ?", adv.CurrencyID).
		Find(&cur).
		Error

	if err != nil {
		return 0, err
	}

	err = tx.
		Model(&tms_model.Currency{}).
		Where("id = ?", actor.CurrencyID).
		Find(&userCur).
		Error

	if err != nil {
		return 0, err
	}

	return cur.Convert(adv.Amount, &userCur), nil
}

func (s *advanceServiceImpl) confirmNarration(
	tx *gorm.DB,
	adv *tms_model.Advance,
	unit *tms_model.OperatingUnit,
	driver *tms_model.Driver,
) (string, error) {
	var err error
	var travel tms_model.Travel
	var vehicle tms_model.Vehicle

	if adv.TravelID != 0 {
		err = tx.Model(&tms_model.Travel{}).Where("id = ?", adv.TravelID).Find(&travel).Error
		if err != nil {
			return "", err
		}
	}

	if adv.UnitID != 0 {
		err = tx.Model(&tms_model.Vehicle{}).Where("id = ?", adv.UnitID).Find(&vehicle).Error
		if err != nil {
			return "", err
		}
	}

	narration := fmt.Sprintf(
		"* Base: %s\n* Advance: %s\n* Travel: %s\n* Driver: %s\n* Vehicle: %s",
		unit.Name,
		adv.Number,
		travel.Name,
		driver.Name,
		vehicle.Name,
	)

	return narration, nil
}
