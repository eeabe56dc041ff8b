package tms_model

import "time"

type Vehicle struct {
	ID           uint   `json:"id" gorm:"primarykey"`
	Name         string `json:"name"`
	LicensePlate string `json:"license_plate" gorm:"index:vehicle_plate,unique"`

	Created time.Time `json:"created"`
}
