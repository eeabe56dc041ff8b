package tms_mock

import (
	"fmt"
	"testing"
	"time"

	"github.com/pdcgo/shared/pkg/moretest"
	"github.com/pdcgo/tms_service/accounting_core"
	"github.com/pdcgo/tms_service/setup"
	"github.com/pdcgo/tms_service/tms_model"
	"github.com/zeebo/assert"
	"gorm.io/gorm"
)

func PopulateAccountKey(db *gorm.DB, unitID uint) moretest.SetupFunc {
	return func(t *testing.T) func() error {
		var err error
		accs := accounting_core.DefaultSeedAccount()
		for _, acc := range accs {

			var old accounting_core.Account
			err =
				db.
					Model(&accounting_core.Account{}).
					Where("operating_unit_id = ?", unitID).
					Where("account_key = ?", acc.AccountKey).
					Find(&old).
					Error

			if err != nil {
				assert.Nil(t, err)
			}

			if old.ID != 0 {
				continue
			}

			err = accounting_core.
				NewCreateAccount(db).
				Create(
					acc.BalanceType,
					acc.Coa,
					unitID,
					acc.AccountKey,
					fmt.Sprintf("%s (%d)", acc.AccountKey, unitID),
				)

			if err != nil {
				assert.Nil(t, err)
			}

		}

		return nil
	}
}

// PopulateOperatingUnit provisions a full unit, sequence, journal and
// seed accounts included.
func PopulateOperatingUnit(db *gorm.DB, unit *tms_model.OperatingUnit) moretest.SetupFunc {
	return func(t *testing.T) func() error {
		err := setup.SetupOperatingUnit(db, unit)
		assert.Nil(t, err)
		return nil
	}
}

// PopulateDriver saves the driver with a home address and wires both
// account references off the unit seed accounts. The unit is read at
// setup time so it can come from an earlier setup in the same list.
func PopulateDriver(db *gorm.DB, driver *tms_model.Driver, unit *tms_model.OperatingUnit) moretest.SetupFunc {
	return func(t *testing.T) func() error {
		var err error

		if driver.HomeAddressID == 0 {
			addr := tms_model.Address{
				Street: "Jl. Mock No. 1",
				City:   "Mockville",
			}
			err = db.Save(&addr).Error
			assert.Nil(t, err)
			driver.HomeAddressID = addr.ID
		}

		if driver.EmployeeNumber == "" {
			driver.EmployeeNumber = fmt.Sprintf("EMP-%d", time.Now().UnixNano())
		}

		driver.Created = time.Now()
		err = db.Save(driver).Error
		assert.Nil(t, err)

		err = setup.SetupDriver(db, driver, unit.ID)
		assert.Nil(t, err)
		return nil
	}
}

func PopulateBaseCurrency(db *gorm.DB, cur *tms_model.Currency) moretest.SetupFunc {
	return func(t *testing.T) func() error {
		if cur.Code == "" {
			cur.Code = "IDR"
		}
		if cur.Rate == 0 {
			cur.Rate = 1
		}
		cur.Base = true
		cur.Created = time.Now()

		err := db.Save(cur).Error
		assert.Nil(t, err)
		return nil
	}
}

func PopulateCurrency(db *gorm.DB, cur *tms_model.Currency) moretest.SetupFunc {
	return func(t *testing.T) func() error {
		cur.Created = time.Now()
		err := db.Save(cur).Error
		assert.Nil(t, err)
		return nil
	}
}

func PopulateProduct(db *gorm.DB, product *tms_model.Product) moretest.SetupFunc {
	return func(t *testing.T) func() error {
		if product.Category == "" {
			product.Category = tms_model.RealExpenseCategory
		}
		product.Created = time.Now()

		err := db.Save(product).Error
		assert.Nil(t, err)
		return nil
	}
}

func PopulateTravel(db *gorm.DB, travel *tms_model.Travel) moretest.SetupFunc {
	return func(t *testing.T) func() error {
		if travel.State == "" {
			travel.State = tms_model.TravelDraft
		}
		travel.Created = time.Now()

		err := db.Save(travel).Error
		assert.Nil(t, err)
		return nil
	}
}
