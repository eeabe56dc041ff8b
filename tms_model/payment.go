package tms_model

import "time"

type PaymentStatus string

const (
	PaymentPosted    PaymentStatus = "posted"
	PaymentCancelled PaymentStatus = "cancel"
)

type Payment struct {
	ID              uint          `json:"id" gorm:"primarykey"`
	OperatingUnitID uint          `json:"operating_unit_id"`
	DriverID        uint          `json:"driver_id"`
	Amount          float64       `json:"amount"`
	CurrencyID      uint          `json:"currency_id"`
	Status          PaymentStatus `json:"status"`
	CreatedByID     uint          `json:"created_by_id"`
	CreatedAt       time.Time     `json:"created_at"`
}

// GetEntityID implements authorization_iface.Entity.
func (p *Payment) GetEntityID() string {
	return "tms/payment"
}
