package accounting_core

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"
)

var Precision = 5

func RoundUp(x float64, n int) float64 {
	pow := math.Pow(10, float64(n))
	result := math.Floor(x*pow) / pow
	return result
}

var ErrEmptyEntry = errors.New("entry empty")

type ErrEntryInvalid struct {
	Debit     float64            `json:"debit"`
	Credit    float64            `json:"credit"`
	List      JournalEntriesList `json:"list"`
	Precision int                `json:"precision"`
}

// Error implements error.
func (e *ErrEntryInvalid) Error() string {
	raw, _ := json.Marshal(e)
	return "journal entry invalid" + string(raw)
}

type EntryAccountPayload struct {
	Key             AccountKey
	OperatingUnitID uint
}

type EntryOption func(entry *JournalEntry) error

func EntryDescOption(desc string) EntryOption {
	return func(entry *JournalEntry) error {
		entry.Desc = desc
		return nil
	}
}

func EntryNarrationOption(narration string) EntryOption {
	return func(entry *JournalEntry) error {
		entry.Narration = narration
		return nil
	}
}

type CommitOption func(entry *JournalEntry) error

func RollbackOption() CommitOption {
	return func(entry *JournalEntry) error {
		entry.Rollback = true
		return nil
	}
}

func CustomTimeOption(t time.Time) CommitOption {
	return func(entry *JournalEntry) error {
		entry.EntryTime = t
		return nil
	}
}

type CreateEntry interface {
	Commit(opts ...CommitOption) CreateEntry
	Rollback(oldentries map[uint]*ChangeBalance, opts ...EntryOption) CreateEntry
	Desc(desc string) CreateEntry
	Narration(text string) CreateEntry
	Journal(journalID uint) CreateEntry
	TransactionID(txID uint) CreateEntry
	Transaction(tx *Transaction) CreateEntry
	EntryTime(t time.Time) CreateEntry
	Set(accID uint, credit, debit float64) CreateEntry
	From(account *EntryAccountPayload, amount float64, opts ...EntryOption) CreateEntry
	To(account *EntryAccountPayload, amount float64, opts ...EntryOption) CreateEntry
	Err() error
}

type createEntryImpl struct {
	tx          *gorm.DB
	unitID      uint
	createdByID uint
	entries     map[uint]*JournalEntry
	accountMap  map[uint]*Account
	afterCommit func(c *createEntryImpl) error
	err         error
}

// Rollback implements CreateEntry.
func (c *createEntryImpl) Rollback(oldentries map[uint]*ChangeBalance, opts ...EntryOption) CreateEntry {
	for _, ch := range oldentries {
		amount := ch.Change()
		if amount > 0 {
			c.From(&EntryAccountPayload{
				Key:             ch.Account.AccountKey,
				OperatingUnitID: ch.Account.OperatingUnitID,
			}, amount, opts...)
		}

		if amount < 0 {
			c.To(&EntryAccountPayload{
				Key:             ch.Account.AccountKey,
				OperatingUnitID: ch.Account.OperatingUnitID,
			}, math.Abs(amount), opts...)
		}
	}

	return c
}

// Set implements CreateEntry.
func (c *createEntryImpl) Set(accID uint, credit float64, debit float64) CreateEntry {
	var err error
	if c.accountMap[accID] == nil {
		c.accountMap[accID] = &Account{}
		err = c.tx.Model(&Account{}).First(c.accountMap[accID], accID).Error
		if err != nil {
			return c.setErr(err)
		}
	}

	c.mergeEntry(accID, &JournalEntry{
		AccountID: accID,
		Credit:    credit,
		Debit:     debit,
	})
	return c
}

// EntryTime implements CreateEntry.
func (c *createEntryImpl) EntryTime(t time.Time) CreateEntry {
	if c.isEntryEmpty() {
		return c.setErr(ErrEmptyEntry)
	}

	for _, entry := range c.entries {
		entry.EntryTime = t
	}
	return c
}

// Journal implements CreateEntry.
func (c *createEntryImpl) Journal(journalID uint) CreateEntry {
	if c.isEntryEmpty() {
		return c.setErr(ErrEmptyEntry)
	}

	for _, entry := range c.entries {
		entry.JournalID = journalID
	}
	return c
}

// Transaction implements CreateEntry.
func (c *createEntryImpl) Transaction(tx *Transaction) CreateEntry {
	if c.isEntryEmpty() {
		return c.setErr(ErrEmptyEntry)
	}

	for _, entry := range c.entries {
		if entry.Desc == "" {
			entry.Desc = tx.Desc
		}
		if entry.JournalID == 0 {
			entry.JournalID = tx.JournalID
		}

		entry.TransactionID = tx.ID
	}
	return c
}

// From implements CreateEntry.
func (c *createEntryImpl) From(account *EntryAccountPayload, amount float64, opts ...EntryOption) CreateEntry {
	return c.To(account, amount*-1, opts...)
}

// Commit implements CreateEntry.
func (c *createEntryImpl) Commit(opts ...CommitOption) CreateEntry {
	if c.isEntryEmpty() {
		return c.setErr(ErrEmptyEntry)
	}
	var entries JournalEntriesList

	var debit, credit float64

	for _, entry := range c.entries {
		if entry.EntryTime.IsZero() {
			entry.EntryTime = time.Now()
		}

		// options commit
		for _, opt := range opts {
			err := opt(entry)
			if err != nil {
				return c.setErr(err)
			}
		}

		entry.OperatingUnitID = c.unitID
		entry.CreatedByID = c.createdByID

		debit += entry.Debit
		credit += entry.Credit

		if entry.Debit == entry.Credit {
			continue
		}

		if entry.Debit > 0 && entry.Credit > 0 {
			dentry := *entry
			dentry.Credit = 0
			entries = append(entries, &dentry)
			entry.Debit = 0
			entries = append(entries, entry)
			continue
		}

		entries = append(entries, entry)
	}

	// checking debit and credit balance
	if RoundUp(debit, Precision) != RoundUp(credit, Precision) {
		return c.setErr(&ErrEntryInvalid{
			Debit:     debit,
			Credit:    credit,
			List:      entries,
			Precision: Precision,
		})
	}

	err := c.tx.Save(&entries).Error
	if err != nil {
		return c.setErr(err)
	}

	if c.afterCommit != nil {
		err = c.afterCommit(c)
		if err != nil {
			return c.setErr(err)
		}
	}

	return c
}

// Desc implements CreateEntry.
func (c *createEntryImpl) Desc(desc string) CreateEntry {
	if c.isEntryEmpty() {
		return c.setErr(ErrEmptyEntry)
	}

	for _, entry := range c.entries {
		if entry.Desc == "" {
			entry.Desc = desc
		}
	}
	return c
}

// Narration implements CreateEntry.
func (c *createEntryImpl) Narration(text string) CreateEntry {
	if c.isEntryEmpty() {
		return c.setErr(ErrEmptyEntry)
	}

	for _, entry := range c.entries {
		entry.Narration = text
	}
	return c
}

// Err implements CreateEntry.
func (c *createEntryImpl) Err() error {
	return c.err
}

// To implements CreateEntry.
func (c *createEntryImpl) To(account *EntryAccountPayload, amount float64, opts ...EntryOption) CreateEntry {
	acc, err := c.getAccount(account)
	if err != nil {
		return c.setErr(err)
	}

	entry := &JournalEntry{
		AccountID: acc.ID,
	}

	err = acc.SetAmountEntry(amount, entry)
	if err != nil {
		return c.setErr(err)
	}

	for _, opt := range opts {
		err = opt(entry)
		if err != nil {
			return c.setErr(err)
		}
	}

	c.mergeEntry(entry.AccountID, entry)

	return c
}

// TransactionID implements CreateEntry.
func (c *createEntryImpl) TransactionID(txID uint) CreateEntry {
	if c.isEntryEmpty() {
		return c.setErr(ErrEmptyEntry)
	}

	for _, entry := range c.entries {
		entry.TransactionID = txID
	}
	return c
}

func (c *createEntryImpl) getAccount(accp *EntryAccountPayload) (*Account, error) {
	var acc Account

	err := c.tx.Model(&Account{}).
		Where("account_key = ?", accp.Key).
		Where("operating_unit_id = ?", accp.OperatingUnitID).
		Find(&acc).
		Error

	if err != nil {
		return &acc, err
	}

	if acc.ID == 0 {
		return &acc, fmt.Errorf("account not found %s in operating unit %d", accp.Key, accp.OperatingUnitID)
	}

	c.accountMap[acc.ID] = &acc
	return &acc, nil
}

func (c *createEntryImpl) mergeEntry(accID uint, entry *JournalEntry) {
	if c.entries[accID] != nil {
		c.entries[accID].Credit += entry.Credit
		c.entries[accID].Debit += entry.Debit
	} else {
		c.entries[accID] = entry
	}
}

func (c *createEntryImpl) isEntryEmpty() bool {
	return len(c.entries) == 0
}

func (c *createEntryImpl) setErr(err error) *createEntryImpl {
	if c.err != nil {
		return c
	}

	if err != nil {
		c.err = err
	}

	return c
}

func NewCreateEntry(tx *gorm.DB, unitID uint, createdByID uint) CreateEntry {
	return &createEntryImpl{
		tx:          tx,
		unitID:      unitID,
		createdByID: createdByID,
		entries:     map[uint]*JournalEntry{},
		accountMap:  map[uint]*Account{},
	}
}
