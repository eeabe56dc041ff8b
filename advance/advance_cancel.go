package advance

import (
	"context"
	"fmt"

	"github.com/pdcgo/tms_service/accounting_transaction/advance_transaction"
	"github.com/pdcgo/tms_service/timeline"
	"github.com/pdcgo/tms_service/tms_model"
	"gorm.io/gorm"
)

// AdvanceCancel reverses the ledger posting, clears the move reference
// and moves the advance to cancelled. A paid advance cannot be
// cancelled, the payment goes first.
func (s *advanceServiceImpl) AdvanceCancel(
	ctx context.Context,
	actor *ActingContext,
	advanceID uint,
) (*tms_model.Advance, error) {
	var adv *tms_model.Advance

	err := s.
		db.
		WithContext(ctx).
		Transaction(func(tx *gorm.DB) error {
			var err error
			adv, err = s.lockAdvance(tx, advanceID)
			if err != nil {
				return err
			}

			switch adv.State {
			case tms_model.AdvanceApproved, tms_model.AdvanceConfirmed:
			default:
				return &StateError{
					Reason: fmt.Sprintf("advance %s is not approved or confirmed", adv.Number),
				}
			}

			if adv.Paid() {
				return &StateError{
					Reason: "advance already paid; cancel the payment first",
				}
			}

			err = advance_transaction.
				NewAdvanceTransaction(tx, actor.UserID).
				Cancel(adv, fmt.Sprintf("cancel advance %s", adv.Number))

			if err != nil {
				return &LedgerError{
					Reason: "could not reverse accounting move",
					Err:    err,
				}
			}

			adv.MoveID = 0
			adv.MoveAmount = 0
			adv.State = tms_model.AdvanceCancelled
			return tx.Save(adv).Error
		})

	if err != nil {
		return adv, err
	}

	s.timeline.Post(ctx, adv.RefID(), &timeline.Event{
		Kind:    timeline.AdvanceCancelled,
		ActorID: actor.UserID,
		Fields: map[string]string{
			"number": adv.Number,
		},
	})

	return adv, nil
}
