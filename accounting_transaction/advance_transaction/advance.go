package advance_transaction

import (
	"fmt"
	"time"

	"github.com/pdcgo/tms_service/accounting_core"
	"github.com/pdcgo/tms_service/tms_model"
	"gorm.io/gorm"
)

type ConfirmPayload struct {
	JournalID       uint
	DebitAccountID  uint
	CreditAccountID uint
	Total           float64
	Narration       string
	EntryDate       time.Time
}

type AdvanceTransaction interface {
	Confirm(adv *tms_model.Advance, payload *ConfirmPayload) (*accounting_core.Transaction, error)
	Cancel(adv *tms_model.Advance, desc string) error
}

type advanceTransactionImpl struct {
	tx     *gorm.DB
	userID uint
}

// Confirm posts the two balanced advance lines, debit on the driver
// advance account, credit on the payable account. A cancelled and
// reconfirmed advance reuses its transaction header, the ref id is
// unique per advance.
func (a *advanceTransactionImpl) Confirm(
	adv *tms_model.Advance,
	payload *ConfirmPayload,
) (*accounting_core.Transaction, error) {
	var err error

	ref := adv.RefID()

	txmut := accounting_core.
		NewTransactionMutation(a.tx).
		ByRefID(ref, true)

	err = txmut.Err()
	if err != nil {
		return nil, err
	}

	tran := txmut.Data()
	if tran.ID == 0 {
		tran = &accounting_core.Transaction{
			RefID:           ref,
			OperatingUnitID: adv.OperatingUnitID,
			JournalID:       payload.JournalID,
			CreatedByID:     a.userID,
			Desc:            fmt.Sprintf("Advance: %s", adv.Number),
			EntryDate:       payload.EntryDate,
		}

		err = accounting_core.
			NewTransaction(a.tx).
			Create(tran).
			Err()

		if err != nil {
			return nil, err
		}
	}

	err = accounting_core.
		NewCreateEntry(a.tx, adv.OperatingUnitID, a.userID).
		Set(payload.DebitAccountID, 0, payload.Total).
		Set(payload.CreditAccountID, payload.Total, 0).
		Desc(adv.Number).
		Narration(payload.Narration).
		Journal(payload.JournalID).
		TransactionID(tran.ID).
		Commit(accounting_core.CustomTimeOption(payload.EntryDate)).
		Err()

	if err != nil {
		return nil, err
	}

	return tran, nil
}

// Cancel counter-posts whatever the advance transaction currently holds.
// No-op when the advance never reached the ledger.
func (a *advanceTransactionImpl) Cancel(adv *tms_model.Advance, desc string) error {
	if adv.MoveID == 0 {
		return nil
	}

	txmut := accounting_core.
		NewTransactionMutation(a.tx).
		ByRefID(adv.RefID(), true)

	err := txmut.Err()
	if err != nil {
		return err
	}

	if !txmut.IsExist() {
		return nil
	}

	return txmut.
		RollbackEntry(a.userID, desc).
		Err()
}

func NewAdvanceTransaction(tx *gorm.DB, userID uint) AdvanceTransaction {
	return &advanceTransactionImpl{
		tx:     tx,
		userID: userID,
	}
}
