package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pdcgo/tms_service/accounting_core"
	"github.com/pdcgo/tms_service/advance"
	"github.com/pdcgo/tms_service/timeline"
	"github.com/pdcgo/tms_service/tms_model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentCreatePayload struct {
	AdvanceID uint `json:"advance_id"`
}

// PaymentCreate pays out a confirmed advance. The payable raised at
// confirmation is cleared against cash and the payment gets linked to
// the advance, which makes it paid.
func (p *paymentServiceImpl) PaymentCreate(
	ctx context.Context,
	actor *advance.ActingContext,
	pay *PaymentCreatePayload,
) (*tms_model.Payment, error) {
	var payment tms_model.Payment
	var adv tms_model.Advance

	err := accounting_core.OpenTransaction(ctx, p.db, func(tx *gorm.DB, bookmng accounting_core.BookManage) error {
		var err error

		err = tx.
			Clauses(clause.Locking{
				Strength: "UPDATE",
			}).
			Model(&tms_model.Advance{}).
			Where("id = ?", pay.AdvanceID).
			Find(&adv).
			Error

		if err != nil {
			return err
		}

		if adv.ID == 0 {
			return errors.New("advance not found")
		}

		if adv.State != tms_model.AdvanceConfirmed {
			return errors.New("advance not confirmed")
		}

		if adv.Paid() {
			return errors.New("advance already paid")
		}

		// the payout clears the exact total posted at confirmation,
		// already expressed in company currency
		payment = tms_model.Payment{
			OperatingUnitID: adv.OperatingUnitID,
			DriverID:        adv.DriverID,
			Amount:          adv.MoveAmount,
			CurrencyID:      actor.CurrencyID,
			Status:          tms_model.PaymentPosted,
			CreatedByID:     actor.UserID,
			CreatedAt:       time.Now(),
		}

		err = tx.Save(&payment).Error
		if err != nil {
			return err
		}

		ref := accounting_core.NewRefID(&accounting_core.RefData{
			RefType: accounting_core.PaymentRef,
			ID:      payment.ID,
		})

		tran := accounting_core.Transaction{
			RefID:           ref,
			OperatingUnitID: adv.OperatingUnitID,
			CreatedByID:     actor.UserID,
			Desc:            fmt.Sprintf("payment advance %s", adv.Number),
			EntryDate:       time.Now(),
		}

		err = bookmng.
			NewTransaction().
			Create(&tran).
			Err()

		if err != nil {
			return err
		}

		err = bookmng.
			NewCreateEntry(adv.OperatingUnitID, actor.UserID).
			From(&accounting_core.EntryAccountPayload{
				Key:             accounting_core.PayableAccount,
				OperatingUnitID: adv.OperatingUnitID,
			}, payment.Amount).
			From(&accounting_core.EntryAccountPayload{
				Key:             accounting_core.CashAccount,
				OperatingUnitID: adv.OperatingUnitID,
			}, payment.Amount).
			Transaction(&tran).
			Commit().
			Err()

		if err != nil {
			return err
		}

		adv.PaymentID = payment.ID
		return tx.Save(&adv).Error
	})

	if err != nil {
		return &payment, err
	}

	p.timeline.Post(ctx, adv.RefID(), &timeline.Event{
		Kind:    timeline.PaymentLinked,
		ActorID: actor.UserID,
		Fields: map[string]string{
			"number":  adv.Number,
			"payment": fmt.Sprintf("%d", payment.ID),
		},
	})

	return &payment, nil
}
