package accounting_core

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type CreateAccount interface {
	Create(btype BalanceType, coa CoaCode, unitID uint, key AccountKey, name string) error
}

type createAccountImpl struct {
	tx *gorm.DB
}

// Create implements CreateAccount.
func (c *createAccountImpl) Create(
	btype BalanceType,
	coa CoaCode,
	unitID uint,
	key AccountKey,
	name string,
) error {
	var old Account
	err := c.tx.
		Model(&Account{}).
		Where("operating_unit_id = ?", unitID).
		Where("account_key = ?", key).
		Find(&old).
		Error

	if err != nil {
		return err
	}

	if old.ID != 0 {
		return errors.New("account already created")
	}

	acc := Account{
		AccountKey:      key,
		OperatingUnitID: unitID,
		Coa:             coa,
		BalanceType:     btype,
		Name:            name,
		Created:         time.Now(),
	}

	return c.tx.Save(&acc).Error
}

func NewCreateAccount(tx *gorm.DB) CreateAccount {
	return &createAccountImpl{
		tx: tx,
	}
}
