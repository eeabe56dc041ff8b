package advance

import (
	"context"

	"github.com/pdcgo/tms_service/timeline"
	"github.com/pdcgo/tms_service/tms_model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ActingContext carries the acting user and its company currency into a
// transition. Passed explicitly, the service reads no ambient state.
type ActingContext struct {
	UserID     uint
	CurrencyID uint
}

type AdvanceService interface {
	AdvanceCreate(ctx context.Context, actor *ActingContext, pay *AdvanceCreatePayload) (*tms_model.Advance, error)
	AdvanceApprove(ctx context.Context, actor *ActingContext, advanceID uint) (*tms_model.Advance, error)
	AdvanceConfirm(ctx context.Context, actor *ActingContext, advanceID uint) (*tms_model.Advance, error)
	AdvanceCancel(ctx context.Context, actor *ActingContext, advanceID uint) (*tms_model.Advance, error)
	AdvanceResetToDraft(ctx context.Context, actor *ActingContext, advanceID uint) (*tms_model.Advance, error)
	AdvanceGet(ctx context.Context, advanceID uint) (*tms_model.Advance, error)
	AdvanceList(ctx context.Context, pay *AdvanceListPayload) ([]*tms_model.Advance, error)
}

type advanceServiceImpl struct {
	db       *gorm.DB
	timeline *timeline.Timeline

	// strictZeroTotal turns a confirm whose converted total is zero or
	// negative into a validation failure instead of the silent no-op the
	// books historically tolerated.
	strictZeroTotal bool
}

type ServiceOption func(s *advanceServiceImpl)

func WithStrictZeroTotal() ServiceOption {
	return func(s *advanceServiceImpl) {
		s.strictZeroTotal = true
	}
}

func (s *advanceServiceImpl) lockAdvance(tx *gorm.DB, advanceID uint) (*tms_model.Advance, error) {
	var adv tms_model.Advance

	err := tx.
		Clauses(clause.Locking{
			Strength: "UPDATE",
		}).
		Model(&tms_model.Advance{}).
		Where("id = ?", advanceID).
		Find(&adv).
		Error

	if err != nil {
		return &adv, err
	}

	if adv.ID == 0 {
		return &adv, &ValidationError{
			Reason: "advance not found",
		}
	}

	return &adv, nil
}

// AdvanceGet returns one advance with its relations preloaded.
func (s *advanceServiceImpl) AdvanceGet(ctx context.Context, advanceID uint) (*tms_model.Advance, error) {
	var adv tms_model.Advance

	err := s.
		db.
		WithContext(ctx).
		Model(&tms_model.Advance{}).
		Preload("OperatingUnit").
		Preload("Driver").
		Preload("Travel").
		Preload("Unit").
		Preload("Currency").
		Preload("Product").
		Where("id = ?", advanceID).
		Find(&adv).
		Error

	if err != nil {
		return &adv, err
	}

	if adv.ID == 0 {
		return &adv, &ValidationError{
			Reason: "advance not found",
		}
	}

	return &adv, nil
}

func NewAdvanceService(db *gorm.DB, tl *timeline.Timeline, opts ...ServiceOption) AdvanceService {
	srv := &advanceServiceImpl{
		db:       db,
		timeline: tl,
	}

	for _, opt := range opts {
		opt(srv)
	}

	return srv
}
