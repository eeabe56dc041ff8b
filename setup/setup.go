package setup

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pdcgo/tms_service/accounting_core"
	"github.com/pdcgo/tms_service/sequence"
	"github.com/pdcgo/tms_service/tms_model"
	"gorm.io/gorm"
)

// SetupOperatingUnit bootstraps everything an operating unit needs
// before advances can flow, the numbering sequence, the advance journal
// and the seed chart of accounts.
func SetupOperatingUnit(tx *gorm.DB, unit *tms_model.OperatingUnit) error {
	var err error

	if unit.Name == "" {
		return errors.New("operating unit name is empty")
	}

	if unit.Code == "" {
		unit.Code = strings.ToUpper(strings.ReplaceAll(unit.Name, " ", "_"))
	}

	unit.Created = time.Now()
	err = tx.Save(unit).Error
	if err != nil {
		return err
	}

	seq := sequence.NumberSequence{
		Code:       fmt.Sprintf("advance_%s", strings.ToLower(unit.Code)),
		Prefix:     fmt.Sprintf("ADV/%s/", unit.Code),
		Padding:    5,
		NextNumber: 1,
		Created:    time.Now(),
	}

	err = tx.Save(&seq).Error
	if err != nil {
		return err
	}

	journal := accounting_core.Journal{
		Code:            fmt.Sprintf("ADVJ_%s", unit.Code),
		Name:            fmt.Sprintf("Advance Journal %s", unit.Name),
		OperatingUnitID: unit.ID,
		Created:         time.Now(),
	}

	err = tx.Save(&journal).Error
	if err != nil {
		return err
	}

	for _, acc := range accounting_core.DefaultSeedAccount() {
		err = accounting_core.
			NewCreateAccount(tx).
			Create(
				acc.BalanceType,
				acc.Coa,
				unit.ID,
				acc.AccountKey,
				fmt.Sprintf("%s (%s)", acc.AccountKey, unit.Code),
			)

		if err != nil {
			return err
		}
	}

	unit.AdvanceSequenceID = seq.ID
	unit.AdvanceJournalID = journal.ID
	return tx.Save(unit).Error
}

// SetupDriver wires the driver to the unit advance and payable accounts
// so a confirm can resolve both sides.
func SetupDriver(tx *gorm.DB, driver *tms_model.Driver, unitID uint) error {
	var err error

	advanceAcc, err := findAccount(tx, accounting_core.DriverAdvanceAccount, unitID)
	if err != nil {
		return err
	}

	payableAcc, err := findAccount(tx, accounting_core.PayableAccount, unitID)
	if err != nil {
		return err
	}

	if driver.HomeAddressID == 0 {
		return errors.New("driver home address is empty")
	}

	err = tx.
		Model(&tms_model.Address{}).
		Where("id = ?", driver.HomeAddressID).
		Update("payable_account_id", payableAcc.ID).
		Error

	if err != nil {
		return err
	}

	driver.AdvanceAccountID = advanceAcc.ID
	return tx.Save(driver).Error
}

func findAccount(tx *gorm.DB, key accounting_core.AccountKey, unitID uint) (*accounting_core.Account, error) {
	var acc accounting_core.Account
	err := tx.
		Model(&accounting_core.Account{}).
		Where("account_key = ?", key).
		Where("operating_unit_id = ?", unitID).
		Find(&acc).
		Error

	if err != nil {
		return &acc, err
	}

	if acc.ID == 0 {
		return &acc, fmt.Errorf("account %s not seeded in operating unit %d", key, unitID)
	}

	return &acc, nil
}
