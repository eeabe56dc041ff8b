package accounting_core

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type BookManage interface {
	NewCreateEntry(unitID uint, createdByID uint) CreateEntry
	NewTransaction() CreateTransaction
	NewTransactionMutation() TransactionMutation
	Entries() JournalEntriesList
}

type bookManageImpl struct {
	tx      *gorm.DB
	entries JournalEntriesList
}

// Entries implements BookManage.
func (h *bookManageImpl) Entries() JournalEntriesList {
	return h.entries
}

// NewTransaction implements BookManage.
func (h *bookManageImpl) NewTransaction() CreateTransaction {
	return &createTansactionImpl{
		tx: h.tx,
	}
}

// NewTransactionMutation implements BookManage.
func (h *bookManageImpl) NewTransactionMutation() TransactionMutation {
	return &transactionMutationImpl{
		tx: h.tx,
	}
}

// NewCreateEntry implements BookManage.
func (h *bookManageImpl) NewCreateEntry(unitID uint, createdByID uint) CreateEntry {
	return &createEntryImpl{
		tx:          h.tx,
		unitID:      unitID,
		createdByID: createdByID,
		entries:     map[uint]*JournalEntry{},
		accountMap:  map[uint]*Account{},
		afterCommit: h.afterCommit,
	}
}

func (h *bookManageImpl) afterCommit(c *createEntryImpl) error {
	for _, entry := range c.entries {
		h.entries = append(h.entries, entry)
	}

	return nil
}

var ErrSkipTransaction = errors.New("skip transaction")

// OpenTransaction runs handle inside one database transaction and checks
// every entry created through the book manager got persisted. Ledger
// postings either land complete or not at all.
func OpenTransaction(ctx context.Context, db *gorm.DB, handle func(tx *gorm.DB, bookmng BookManage) error) error {
	var err error

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		hdlr := bookManageImpl{
			tx: tx,
		}

		err = handle(tx, &hdlr)
		if err != nil {
			return err
		}

		if len(hdlr.entries) == 0 {
			return errors.New("entries empty in ending transaction")
		}

		for _, entry := range hdlr.entries {
			if entry.ID == 0 {
				return fmt.Errorf("theres entry not save desc %s", entry.Desc)
			}
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSkipTransaction) {
			return nil
		}

		return err
	}

	return nil
}
