package accounting_core

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

type CoaCode int

const (
	ASSET     CoaCode = 10
	LIABILITY CoaCode = 20
	EQUITY    CoaCode = 30
	REVENUE   CoaCode = 40
	EXPENSE   CoaCode = 50
)

type BalanceType string

const (
	CreditBalance BalanceType = "c"
	DebitBalance  BalanceType = "d"
)

func (b BalanceType) DiffBalance(debit, credit float64) float64 {
	switch b {
	case CreditBalance:
		return credit - debit
	case DebitBalance:
		return debit - credit
	default:
		return 0
	}
}

// Journal scopes ledger postings to an operating unit book.
type Journal struct {
	ID              uint   `json:"id" gorm:"primarykey"`
	Code            string `json:"code" gorm:"index:journal_code,unique"`
	Name            string `json:"name"`
	OperatingUnitID uint   `json:"operating_unit_id"`

	Created time.Time `json:"created"`
}

type Account struct {
	ID              uint        `json:"id" gorm:"primarykey"`
	AccountKey      AccountKey  `json:"account_key" gorm:"index:unit_key,unique"`
	OperatingUnitID uint        `json:"operating_unit_id" gorm:"index:unit_key,unique"`
	Coa             CoaCode     `json:"coa"`
	BalanceType     BalanceType `json:"balance_type"`

	Name string `json:"name"`

	Created time.Time `json:"created"`
}

func (ac *Account) Key() string {
	return fmt.Sprintf("accounting_core/%s/%d", ac.AccountKey, ac.OperatingUnitID)
}

func (ac *Account) SetAmountEntry(amount float64, entry *JournalEntry) error {
	if amount == 0 {
		return fmt.Errorf("account %s amount entry set is zero", ac.AccountKey)
	}

	amountAbs := math.Abs(amount)

	switch ac.BalanceType {
	case CreditBalance:
		if amount > 0 {
			entry.Credit = amountAbs
		}
		if amount < 0 {
			entry.Debit = amountAbs
		}
	case DebitBalance:
		if amount > 0 {
			entry.Debit = amountAbs
		}
		if amount < 0 {
			entry.Credit = amountAbs
		}
	default:
		return fmt.Errorf("account type invalid %s", ac.BalanceType)
	}

	return nil
}

type JournalEntry struct {
	ID              uint      `json:"id" gorm:"primarykey"`
	AccountID       uint      `json:"account_id"`
	JournalID       uint      `json:"journal_id"`
	OperatingUnitID uint      `json:"operating_unit_id"`
	TransactionID   uint      `json:"transaction_id"`
	CreatedByID     uint      `json:"created_by_id"`
	EntryTime       time.Time `json:"entry_time"`
	Debit           float64   `json:"debit"`
	Credit          float64   `json:"credit"`
	Desc            string    `json:"desc"`
	Narration       string    `json:"narration"`
	Rollback        bool      `json:"rollback" gorm:"index"`

	Account     *Account     `json:"account"`
	Transaction *Transaction `json:"-"`
}

type JournalEntriesList []*JournalEntry

type ChangeBalance struct {
	Account *Account
	Debit   float64
	Credit  float64
}

func (cb *ChangeBalance) Change() float64 {
	var change float64
	switch cb.Account.BalanceType {
	case DebitBalance:
		change = cb.Debit - cb.Credit
	case CreditBalance:
		change = cb.Credit - cb.Debit
	}

	return change
}

func (entries JournalEntriesList) AccountBalance() (map[uint]*ChangeBalance, error) {
	changemap := map[uint]*ChangeBalance{}

	for _, en := range entries {
		if en.Account == nil {
			return changemap, errors.New("please preload account in entry")
		}
		var ok bool
		var change *ChangeBalance
		change, ok = changemap[en.AccountID]
		if !ok {
			change = &ChangeBalance{
				Debit:   0,
				Credit:  0,
				Account: en.Account,
			}
			changemap[en.AccountID] = change
		}

		change.Debit += en.Debit
		change.Credit += en.Credit
	}
	return changemap, nil
}

func (entries JournalEntriesList) AccountBalanceKey(key AccountKey) (*ChangeBalance, error) {
	accmap, err := entries.AccountBalance()
	res := ChangeBalance{
		Account: &Account{},
	}
	if err != nil {
		return &res, err
	}

	for _, ac := range accmap {
		if ac.Account.AccountKey == key {
			return ac, nil
		}
	}

	return &res, fmt.Errorf("account not found %s", key)
}

type RefType string

const (
	AdvanceRef RefType = "advance"
	ExpenseRef RefType = "expense"
	TravelRef  RefType = "travel"
	PaymentRef RefType = "payment"
)

type RefData struct {
	RefType RefType
	ID      uint
}

type RefID string

func (r RefID) Extract() (*RefData, error) {
	ss := strings.Split(string(r), "#")
	if len(ss) != 2 {
		return nil, fmt.Errorf("ref id malformed %s", r)
	}
	idx, err := strconv.ParseUint(ss[1], 10, 64)
	if err != nil {
		return nil, err
	}
	return &RefData{
		RefType: RefType(ss[0]),
		ID:      uint(idx),
	}, nil
}

func NewRefID(data *RefData) RefID {
	return RefID(fmt.Sprintf("%s#%d", data.RefType, data.ID))
}

// Transaction is the ledger entry header. Lines hang off it as journal
// entries and must balance. RefID ties it back to the source document.
type Transaction struct {
	ID              uint      `json:"id" gorm:"primarykey"`
	RefID           RefID     `json:"ref_id" gorm:"index:ref_unique,unique"`
	OperatingUnitID uint      `json:"operating_unit_id"`
	JournalID       uint      `json:"journal_id"`
	CreatedByID     uint      `json:"created_by_id"`
	Desc            string    `json:"desc"`
	EntryDate       time.Time `json:"entry_date"`
	Created         time.Time `json:"created"`
}
