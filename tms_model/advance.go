package tms_model

import (
	"time"

	"github.com/pdcgo/tms_service/accounting_core"
)

type AdvanceState string

const (
	AdvanceDraft     AdvanceState = "draft"
	AdvanceApproved  AdvanceState = "approved"
	AdvanceConfirmed AdvanceState = "confirmed"
	AdvanceClosed    AdvanceState = "closed"
	AdvanceCancelled AdvanceState = "cancel"
)

// Advance is a cash payment issued to a driver ahead of travel expenses.
// Number is assigned once at creation and never changes, the unique
// index backstops the sequence allocation under concurrent creates.
type Advance struct {
	ID              uint         `json:"id" gorm:"primarykey"`
	OperatingUnitID uint         `json:"operating_unit_id" gorm:"not null"`
	Number          string       `json:"number" gorm:"index:advance_number,unique"`
	State           AdvanceState `json:"state"`
	Date            time.Time    `json:"date"`
	TravelID        uint         `json:"travel_id"`
	UnitID          uint         `json:"unit_id"`
	DriverID        uint         `json:"driver_id"`
	Amount          float64      `json:"amount"`
	CurrencyID      uint         `json:"currency_id"`
	Notes           string       `json:"notes"`
	MoveID          uint         `json:"move_id"`
	MoveAmount      float64      `json:"move_amount"`
	PaymentID       uint         `json:"payment_id"`
	AutoExpense     bool         `json:"auto_expense"`
	ProductID       uint         `json:"product_id"`
	CreatedByID     uint         `json:"created_by_id"`

	OperatingUnit *OperatingUnit            `json:"operating_unit,omitempty"`
	Travel        *Travel                   `json:"travel,omitempty" gorm:"foreignKey:TravelID"`
	Unit          *Vehicle                  `json:"unit,omitempty" gorm:"foreignKey:UnitID"`
	Driver        *Driver                   `json:"driver,omitempty"`
	Currency      *Currency                 `json:"currency,omitempty"`
	Product       *Product                  `json:"product,omitempty"`
	Move          *accounting_core.Transaction `json:"move,omitempty" gorm:"foreignKey:MoveID"`
	Payment       *Payment                  `json:"payment,omitempty"`

	Created time.Time `json:"created"`
}

// Paid is a read-time projection, true iff a payment is attached. Never
// stored so it cannot drift from the payment link.
func (a *Advance) Paid() bool {
	return a.PaymentID != 0
}

// RefID ties the advance to its ledger transaction and timeline.
func (a *Advance) RefID() accounting_core.RefID {
	return accounting_core.NewRefID(&accounting_core.RefData{
		RefType: accounting_core.AdvanceRef,
		ID:      a.ID,
	})
}

// GetEntityID implements authorization_iface.Entity.
func (a *Advance) GetEntityID() string {
	return "tms/advance"
}
