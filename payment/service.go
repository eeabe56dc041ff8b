package payment

import (
	"context"

	"github.com/pdcgo/tms_service/advance"
	"github.com/pdcgo/tms_service/timeline"
	"github.com/pdcgo/tms_service/tms_model"
	"gorm.io/gorm"
)

type PaymentService interface {
	PaymentCreate(ctx context.Context, actor *advance.ActingContext, pay *PaymentCreatePayload) (*tms_model.Payment, error)
	PaymentCancel(ctx context.Context, actor *advance.ActingContext, paymentID uint) (*tms_model.Payment, error)
}

type paymentServiceImpl struct {
	db       *gorm.DB
	timeline *timeline.Timeline
}

func NewPaymentService(db *gorm.DB, tl *timeline.Timeline) PaymentService {
	return &paymentServiceImpl{
		db:       db,
		timeline: tl,
	}
}
