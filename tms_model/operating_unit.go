package tms_model

import (
	"time"

	"github.com/pdcgo/tms_service/accounting_core"
)

// OperatingUnit owns its own advance numbering sequence and accounting
// journal.
type OperatingUnit struct {
	ID                uint   `json:"id" gorm:"primarykey"`
	Name              string `json:"name" gorm:"index:operating_unit_name,unique"`
	Code              string `json:"code"`
	AdvanceSequenceID uint   `json:"advance_sequence_id"`
	AdvanceJournalID  uint   `json:"advance_journal_id"`

	AdvanceJournal *accounting_core.Journal `json:"advance_journal,omitempty" gorm:"foreignKey:AdvanceJournalID"`

	Created time.Time `json:"created"`
}

// GetEntityID implements authorization_iface.Entity.
func (o *OperatingUnit) GetEntityID() string {
	return "tms/operating_unit"
}
