package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdcgo/tms_service/accounting_core"
	"github.com/pdcgo/tms_service/advance"
	"github.com/pdcgo/tms_service/timeline"
	"github.com/pdcgo/tms_service/tms_model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PaymentCancel counter-posts the payment entries and detaches it from
// its advance. The advance becomes unpaid and cancellable again.
func (p *paymentServiceImpl) PaymentCancel(
	ctx context.Context,
	actor *advance.ActingContext,
	paymentID uint,
) (*tms_model.Payment, error) {
	var payment tms_model.Payment
	var adv tms_model.Advance

	err := p.
		db.
		WithContext(ctx).
		Transaction(func(tx *gorm.DB) error {
			var err error

			err = tx.
				Clauses(clause.Locking{
					Strength: "UPDATE",
				}).
				Model(&tms_model.Payment{}).
				Where("id = ?", paymentID).
				Find(&payment).
				Error

			if err != nil {
				return err
			}

			if payment.ID == 0 {
				return errors.New("payment not found")
			}

			if payment.Status != tms_model.PaymentPosted {
				return errors.New("payment not posted")
			}

			ref := accounting_core.NewRefID(&accounting_core.RefData{
				RefType: accounting_core.PaymentRef,
				ID:      payment.ID,
			})

			txmut := accounting_core.
				NewTransactionMutation(tx).
				ByRefID(ref, true)

			err = txmut.Err()
			if err != nil {
				return err
			}

			if txmut.IsExist() {
				err = txmut.
					RollbackEntry(actor.UserID, fmt.Sprintf("cancel payment %d", payment.ID)).
					Err()

				if err != nil {
					return err
				}
			}

			err = tx.
				Model(&tms_model.Advance{}).
				Where("payment_id = ?", payment.ID).
				Find(&adv).
				Error

			if err != nil {
				return err
			}

			if adv.ID != 0 {
				adv.PaymentID = 0
				err = tx.Save(&adv).Error
				if err != nil {
					return err
				}
			}

			payment.Status = tms_model.PaymentCancelled
			return tx.Save(&payment).Error
		})

	if err != nil {
		return &payment, err
	}

	if adv.ID != 0 {
		p.timeline.Post(ctx, adv.RefID(), &timeline.Event{
			Kind:    timeline.PaymentCancelled,
			ActorID: actor.UserID,
			Fields: map[string]string{
				"number":  adv.Number,
				"payment": fmt.Sprintf("%d", payment.ID),
			},
		})
	}

	return &payment, nil
}
