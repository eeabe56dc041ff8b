package tms_model

import "time"

type Uom struct {
	ID   uint   `json:"id" gorm:"primarykey"`
	Name string `json:"name" gorm:"index:uom_name,unique"`
}

// Transportable is a catalog item that can be carried on a travel.
type Transportable struct {
	ID    uint   `json:"id" gorm:"primarykey"`
	Name  string `json:"name" gorm:"index:transportable_name,unique"`
	UomID uint   `json:"uom_id"`

	Uom *Uom `json:"uom,omitempty"`

	Created time.Time `json:"created"`
}

// GetEntityID implements authorization_iface.Entity.
func (t *Transportable) GetEntityID() string {
	return "tms/transportable"
}
