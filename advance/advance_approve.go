package advance

import (
	"context"
	"fmt"

	"github.com/pdcgo/tms_service/timeline"
	"github.com/pdcgo/tms_service/tms_model"
	"gorm.io/gorm"
)

// AdvanceApprove moves a draft advance to approved and notes who did it.
func (s *advanceServiceImpl) AdvanceApprove(
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

			if adv.State != tms_model.AdvanceDraft {
				return &StateError{
					Reason: fmt.Sprintf("advance %s is not in draft", adv.Number),
				}
			}

			adv.State = tms_model.AdvanceApproved
			return tx.Save(adv).Error
		})

	if err != nil {
		return adv, err
	}

	s.timeline.Post(ctx, adv.RefID(), &timeline.Event{
		Kind:    timeline.AdvanceApproved,
		ActorID: actor.UserID,
		Fields: map[string]string{
			"number": adv.Number,
		},
	})

	return adv, nil
}
