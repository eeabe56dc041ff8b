package advance

import (
	"context"
	"fmt"

	"github.com/pdcgo/tms_service/timeline"
	"github.com/pdcgo/tms_service/tms_model"
	"gorm.io/gorm"
)

// AdvanceResetToDraft reopens a cancelled advance. Refused when the
// linked travel itself got cancelled.
func (s *advanceServiceImpl) AdvanceResetToDraft(
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

			if adv.State != tms_model.AdvanceCancelled {
				return &StateError{
					Reason: fmt.Sprintf("advance %s is not cancelled", adv.Number),
				}
			}

			if adv.TravelID != 0 {
				var travel tms_model.Travel
				err = tx.
					Model(&tms_model.Travel{}).
					Where("id = ?", adv.TravelID).
					Find(&travel).
					Error

				if err != nil {
					return err
				}

				if travel.State == tms_model.TravelCancelled {
					return &StateError{
						Reason: "travel is cancelled",
					}
				}
			}

			adv.State = tms_model.AdvanceDraft
			return tx.Save(adv).Error
		})

	if err != nil {
		return adv, err
	}

	s.timeline.Post(ctx, adv.RefID(), &timeline.Event{
		Kind:    timeline.AdvanceDrafted,
		ActorID: actor.UserID,
		Fields: map[string]string{
			"number": adv.Number,
		},
	})

	return adv, nil
}
