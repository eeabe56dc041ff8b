package setup_test

import (
	"testing"

	"github.com/pdcgo/shared/pkg/moretest"
	"github.com/pdcgo/shared/pkg/moretest/moretest_mock"
	"github.com/pdcgo/tms_service/accounting_core"
	"github.com/pdcgo/tms_service/sequence"
	"github.com/pdcgo/tms_service/setup"
	"github.com/pdcgo/tms_service/tms_model"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestSetupOperatingUnit(t *testing.T) {
	var db gorm.DB

	var migrate moretest.SetupFunc = func(t *testing.T) func() error {
		err := db.AutoMigrate(
			&accounting_core.Account{},
			&accounting_core.Journal{},
			&sequence.NumberSequence{},
			&tms_model.OperatingUnit{},
			&tms_model.Address{},
			&tms_model.Driver{},
		)
		assert.Nil(t, err)

		return nil
	}

	moretest.Suite(t, "testing operating unit setup",
		moretest.SetupListFunc{
			moretest_mock.MockSqliteDatabase(&db),
			migrate,
		},
		func(t *testing.T) {
			unit := tms_model.OperatingUnit{
				Name: "Jakarta Pusat",
			}

			err := setup.SetupOperatingUnit(&db, &unit)
			assert.Nil(t, err)

			t.Run("testing sequence and journal wired", func(t *testing.T) {
				assert.NotZero(t, unit.AdvanceSequenceID)
				assert.NotZero(t, unit.AdvanceJournalID)
				assert.Equal(t, "JAKARTA_PUSAT", unit.Code)

				var seq sequence.NumberSequence
				err := db.
					Model(&sequence.NumberSequence{}).
					Where("id = ?", unit.AdvanceSequenceID).
					Find(&seq).
					Error
				assert.Nil(t, err)
				assert.Equal(t, "ADV/JAKARTA_PUSAT/", seq.Prefix)
			})

			t.Run("testing accounts seeded", func(t *testing.T) {
				var count int64
				err := db.
					Model(&accounting_core.Account{}).
					Where("operating_unit_id = ?", unit.ID).
					Count(&count).
					Error
				assert.Nil(t, err)
				assert.Equal(t, int64(len(accounting_core.DefaultSeedAccount())), count)
			})

			t.Run("testing empty name rejected", func(t *testing.T) {
				bad := tms_model.OperatingUnit{}
				err := setup.SetupOperatingUnit(&db, &bad)
				assert.NotNil(t, err)
			})

			t.Run("testing driver wiring", func(t *testing.T) {
				addr := tms_model.Address{City: "Jakarta"}
				err := db.Save(&addr).Error
				assert.Nil(t, err)

				driver := tms_model.Driver{
					Name:           "Slamet",
					EmployeeNumber: "EMP-001",
					HomeAddressID:  addr.ID,
				}
				err = db.Save(&driver).Error
				assert.Nil(t, err)

				err = setup.SetupDriver(&db, &driver, unit.ID)
				assert.Nil(t, err)
				assert.NotZero(t, driver.AdvanceAccountID)

				var saved tms_model.Address
				err = db.
					Model(&tms_model.Address{}).
					Where("id = ?", addr.ID).
					Find(&saved).
					Error
				assert.Nil(t, err)
				assert.NotZero(t, saved.PayableAccountID)
			})
		},
	)
}
