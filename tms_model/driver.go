package tms_model

import "time"

// Address is the driver home address. Its payable account is the credit
// side of every confirmed advance.
type Address struct {
	ID               uint   `json:"id" gorm:"primarykey"`
	Street           string `json:"street"`
	City             string `json:"city"`
	Country          string `json:"country"`
	PayableAccountID uint   `json:"payable_account_id"`
}

type Driver struct {
	ID               uint   `json:"id" gorm:"primarykey"`
	Name             string `json:"name"`
	EmployeeNumber   string `json:"employee_number" gorm:"index:driver_employee_number,unique"`
	AdvanceAccountID uint   `json:"advance_account_id"`
	HomeAddressID    uint   `json:"home_address_id"`

	HomeAddress *Address `json:"home_address,omitempty" gorm:"foreignKey:HomeAddressID"`

	Created time.Time `json:"created"`
}

// GetEntityID implements authorization_iface.Entity.
func (d *Driver) GetEntityID() string {
	return "tms/driver"
}
