package accounting_core

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreateTransaction interface {
	Create(tran *Transaction) CreateTransaction
	Err() error
}

type createTansactionImpl struct {
	tx   *gorm.DB
	err  error
	tran *Transaction
}

// Create implements CreateTransaction.
func (c *createTansactionImpl) Create(tran *Transaction) CreateTransaction {
	tran.Created = time.Now()
	if tran.EntryDate.IsZero() {
		tran.EntryDate = time.Now()
	}
	err := c.tx.Save(tran).Error
	if err != nil {
		return c.setErr(err)
	}

	c.tran = tran

	return c
}

// Err implements CreateTransaction.
func (c *createTansactionImpl) Err() error {
	return c.err
}

func (c *createTansactionImpl) setErr(err error) *createTansactionImpl {
	if c.err != nil {
		return c
	}

	if err != nil {
		c.err = err
	}

	return c
}

func NewTransaction(tx *gorm.DB) CreateTransaction {
	return &createTansactionImpl{
		tx: tx,
	}
}

var ErrTransactionNotLoaded = errors.New("transaction not loaded")

type TransactionMutation interface {
	ByRefID(refid RefID, lock bool) TransactionMutation
	CheckEntry() TransactionMutation
	RollbackEntry(userID uint, desc string) TransactionMutation
	IsExist() bool
	Data() *Transaction
	Err() error
}

type transactionMutationImpl struct {
	tx   *gorm.DB
	data *Transaction
	err  error
}

// CheckEntry implements TransactionMutation.
func (t *transactionMutationImpl) CheckEntry() TransactionMutation {
	var err error
	var entries JournalEntriesList

	if t.data == nil {
		return t.setErr(ErrTransactionNotLoaded)
	}

	err = t.
		tx.
		Model(&JournalEntry{}).
		Preload("Account").
		Where("transaction_id = ?", t.data.ID).
		Find(&entries).
		Error

	if err != nil {
		return t.setErr(err)
	}

	mapBalances, err := entries.AccountBalance()
	if err != nil {
		return t.setErr(err)
	}

	var debit, credit float64
	for _, balance := range mapBalances {
		debit += balance.Debit
		credit += balance.Credit
	}

	if debit != credit {
		return t.setErr(&ErrEntryInvalid{
			Debit:  debit,
			Credit: credit,
			List:   entries,
		})
	}

	return t
}

// Data implements TransactionMutation.
func (t *transactionMutationImpl) Data() *Transaction {
	return t.data
}

// IsExist implements TransactionMutation.
func (t *transactionMutationImpl) IsExist() bool {
	return t.data.ID != 0
}

// ByRefID implements TransactionMutation.
func (t *transactionMutationImpl) ByRefID(refid RefID, lock bool) TransactionMutation {
	var err error
	tx := t.tx

	t.data = &Transaction{}

	if lock {
		tx = tx.Clauses(clause.Locking{
			Strength: "UPDATE",
		})
	}
	err = tx.Model(&Transaction{}).
		Where("ref_id = ?", refid).
		Find(t.data).
		Error

	if err != nil {
		return t.setErr(err)
	}
	return t
}

// RollbackEntry implements TransactionMutation. The reversal is
// append-only, counter entries flagged as rollback keep the book
// auditable instead of deleting lines. Only the net outstanding per
// account is counter-posted, already reversed pairs stay settled, so
// entry magnitudes never grow across repeated rollback and repost
// cycles. Nothing outstanding is a no-op.
func (t *transactionMutationImpl) RollbackEntry(userID uint, desc string) TransactionMutation {
	var err error
	entries := []*JournalEntry{}

	if t.data == nil {
		return t.setErr(ErrTransactionNotLoaded)
	}

	err = t.
		tx.
		Model(&JournalEntry{}).
		Where("transaction_id = ?", t.data.ID).
		Find(&entries).
		Error

	if err != nil {
		return t.setErr(err)
	}

	if len(entries) == 0 {
		return t.setErr(errors.New("entries on transaction is empty"))
	}

	type outstanding struct {
		unitID uint
		debit  float64
		credit float64
	}

	nets := map[uint]*outstanding{}
	for _, entry := range entries {
		net := nets[entry.AccountID]
		if net == nil {
			net = &outstanding{
				unitID: entry.OperatingUnitID,
			}
			nets[entry.AccountID] = net
		}

		net.debit += entry.Debit
		net.credit += entry.Credit
	}

	unitEntries := map[uint]CreateEntry{}

	for accID, net := range nets {
		diff := RoundUp(net.debit-net.credit, Precision)
		if diff == 0 {
			continue
		}

		if unitEntries[net.unitID] == nil {
			unitEntries[net.unitID] = NewCreateEntry(t.tx, net.unitID, userID)
		}

		// swapped sides produce the counter posting
		if diff > 0 {
			unitEntries[net.unitID].Set(accID, diff, 0)
		} else {
			unitEntries[net.unitID].Set(accID, 0, -diff)
		}
	}

	for _, nentries := range unitEntries {
		err = nentries.
			TransactionID(t.data.ID).
			Journal(t.data.JournalID).
			Desc(desc).
			Commit(RollbackOption()).
			Err()

		if err != nil {
			return t.setErr(err)
		}
	}

	return t
}

// Err implements TransactionMutation.
func (t *transactionMutationImpl) Err() error {
	return t.err
}

func (t *transactionMutationImpl) setErr(err error) *transactionMutationImpl {
	if t.err != nil {
		return t
	}

	if err != nil {
		t.err = err
	}

	return t
}

func NewTransactionMutation(tx *gorm.DB) TransactionMutation {
	return &transactionMutationImpl{
		tx: tx,
	}
}
