package tms_model

import "time"

type TravelState string

const (
	TravelDraft     TravelState = "draft"
	TravelProgress  TravelState = "progress"
	TravelDone      TravelState = "done"
	TravelCancelled TravelState = "cancel"
)

type Travel struct {
	ID              uint        `json:"id" gorm:"primarykey"`
	Name            string      `json:"name"`
	OperatingUnitID uint        `json:"operating_unit_id"`
	State           TravelState `json:"state"`
	DriverID        uint        `json:"driver_id"`
	UnitID          uint        `json:"unit_id"`

	DepartureDate time.Time `json:"departure_date"`
	ArrivalDate   time.Time `json:"arrival_date"`

	Created time.Time `json:"created"`
}
