package advance

import (
	"context"

	"github.com/pdcgo/tms_service/tms_model"
)

type AdvanceListPayload struct {
	OperatingUnitID uint                   `json:"operating_unit_id"`
	DriverID        uint                   `json:"driver_id"`
	TravelID        uint                   `json:"travel_id"`
	State           tms_model.AdvanceState `json:"state"`
	Limit           int                    `json:"limit"`
	Offset          int                    `json:"offset"`
}

func (s *advanceServiceImpl) AdvanceList(
	ctx context.Context,
	pay *AdvanceListPayload,
) ([]*tms_model.Advance, error) {
	items := []*tms_model.Advance{}

	query := s.
		db.
		WithContext(ctx).
		Model(&tms_model.Advance{}).
		Order("number desc, date desc")

	if pay.OperatingUnitID != 0 {
		query = query.Where("operating_unit_id = ?", pay.OperatingUnitID)
	}

	if pay.DriverID != 0 {
		query = query.Where("driver_id = ?", pay.DriverID)
	}

	if pay.TravelID != 0 {
		query = query.Where("travel_id = ?", pay.TravelID)
	}

	if pay.State != "" {
		query = query.Where("state = ?", pay.State)
	}

	if pay.Limit != 0 {
		query = query.Limit(pay.Limit).Offset(pay.Offset)
	}

	err := query.Find(&items).Error
	return items, err
}
