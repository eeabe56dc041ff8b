package advance_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/pdcgo/shared/pkg/moretest"
	"github.com/pdcgo/shared/pkg/moretest/moretest_mock"
	"github.com/pdcgo/tms_service/accounting_core"
	"github.com/pdcgo/tms_service/advance"
	"github.com/pdcgo/tms_service/sequence"
	"github.com/pdcgo/tms_service/timeline"
	"github.com/pdcgo/tms_service/tms_mock"
	"github.com/pdcgo/tms_service/tms_model"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func migrateAll(db *gorm.DB) moretest.SetupFunc {
	return func(t *testing.T) func() error {
		err := db.AutoMigrate(
			&accounting_core.Account{},
			&accounting_core.Journal{},
			&accounting_core.JournalEntry{},
			&accounting_core.Transaction{},
			&sequence.NumberSequence{},
			&timeline.TimelineNote{},
			&tms_model.OperatingUnit{},
			&tms_model.Address{},
			&tms_model.Driver{},
			&tms_model.Vehicle{},
			&tms_model.Travel{},
			&tms_model.Product{},
			&tms_model.Currency{},
			&tms_model.Advance{},
			&tms_model.Payment{},
		)
		assert.Nil(t, err)

		return nil
	}
}

func TestAdvanceLifecycle(t *testing.T) {
	var db gorm.DB
	unit := tms_model.OperatingUnit{Name: "Jakarta"}
	driver := tms_model.Driver{Name: "Budi"}
	cur := tms_model.Currency{Name: "Indonesian Rupiah"}
	product := tms_model.Product{Name: "Travel Cash"}

	moretest.Suite(t, "testing advance lifecycle",
		moretest.SetupListFunc{
			moretest_mock.MockSqliteDatabase(&db),
			migrateAll(&db),
			tms_mock.PopulateOperatingUnit(&db, &unit),
			tms_mock.PopulateDriver(&db, &driver, &unit),
			tms_mock.PopulateBaseCurrency(&db, &cur),
			tms_mock.PopulateProduct(&db, &product),
		},
		func(t *testing.T) {
			tl := timeline.NewTimeline(&db)
			srv := advance.NewAdvanceService(&db, tl)
			actor := &advance.ActingContext{
				UserID:     1,
				CurrencyID: cur.ID,
			}

			var adv *tms_model.Advance

			t.Run("testing create", func(t *testing.T) {
				var err error
				adv, err = srv.AdvanceCreate(t.Context(), actor, &advance.AdvanceCreatePayload{
					OperatingUnitID: unit.ID,
					DriverID:        driver.ID,
					Amount:          500,
					ProductID:       product.ID,
				})

				assert.Nil(t, err)
				assert.Equal(t, tms_model.AdvanceDraft, adv.State)
				assert.NotEmpty(t, adv.Number)
				assert.Equal(t, cur.ID, adv.CurrencyID)
			})

			t.Run("testing numbers unique per create", func(t *testing.T) {
				other, err := srv.AdvanceCreate(t.Context(), actor, &advance.AdvanceCreatePayload{
					OperatingUnitID: unit.ID,
					DriverID:        driver.ID,
					Amount:          100,
					ProductID:       product.ID,
				})

				assert.Nil(t, err)
				assert.NotEqual(t, adv.Number, other.Number)
			})

			t.Run("testing approve", func(t *testing.T) {
				res, err := srv.AdvanceApprove(t.Context(), actor, adv.ID)
				assert.Nil(t, err)
				assert.Equal(t, tms_model.AdvanceApproved, res.State)
			})

			t.Run("testing confirm posts to ledger", func(t *testing.T) {
				res, err := srv.AdvanceConfirm(t.Context(), actor, adv.ID)
				assert.Nil(t, err)
				assert.Equal(t, tms_model.AdvanceConfirmed, res.State)
				assert.NotZero(t, res.MoveID)
				adv = res

				var entries accounting_core.JournalEntriesList
				err = db.
					Model(&accounting_core.JournalEntry{}).
					Preload("Account").
					Where("transaction_id = ?", adv.MoveID).
					Find(&entries).
					Error
				assert.Nil(t, err)
				assert.Len(t, entries, 2)

				debit, err := entries.AccountBalanceKey(accounting_core.DriverAdvanceAccount)
				assert.Nil(t, err)
				assert.Equal(t, 500.0, debit.Change())

				credit, err := entries.AccountBalanceKey(accounting_core.PayableAccount)
				assert.Nil(t, err)
				assert.Equal(t, 500.0, credit.Change())

				for _, entry := range entries {
					assert.Equal(t, unit.AdvanceJournalID, entry.JournalID)
					assert.True(t, strings.Contains(entry.Narration, "* Advance: "+adv.Number))
					assert.True(t, strings.Contains(entry.Narration, "* Driver: "+driver.Name))
				}
			})

			t.Run("testing timeline notes", func(t *testing.T) {
				notes, err := tl.Notes(t.Context(), adv.RefID())
				assert.Nil(t, err)
				assert.Len(t, notes, 2)
				assert.Equal(t, timeline.AdvanceApproved, notes[0].Kind)
				assert.Equal(t, timeline.AdvanceConfirmed, notes[1].Kind)
			})

			t.Run("testing cancel reverses the move", func(t *testing.T) {
				res, err := srv.AdvanceCancel(t.Context(), actor, adv.ID)
				assert.Nil(t, err)
				assert.Equal(t, tms_model.AdvanceCancelled, res.State)
				assert.Zero(t, res.MoveID)

				var tran accounting_core.Transaction
				err = db.
					Model(&accounting_core.Transaction{}).
					Where("ref_id = ?", adv.RefID()).
					Find(&tran).
					Error
				assert.Nil(t, err)

				var entries accounting_core.JournalEntriesList
				err = db.
					Model(&accounting_core.JournalEntry{}).
					Preload("Account").
					Where("transaction_id = ?", tran.ID).
					Find(&entries).
					Error
				assert.Nil(t, err)
				assert.Len(t, entries, 4)

				balance, err := entries.AccountBalanceKey(accounting_core.DriverAdvanceAccount)
				assert.Nil(t, err)
				assert.Equal(t, 0.0, balance.Change())
			})

			t.Run("testing reset to draft", func(t *testing.T) {
				res, err := srv.AdvanceResetToDraft(t.Context(), actor, adv.ID)
				assert.Nil(t, err)
				assert.Equal(t, tms_model.AdvanceDraft, res.State)
			})

			t.Run("testing reconfirm keeps books balanced", func(t *testing.T) {
				_, err := srv.AdvanceApprove(t.Context(), actor, adv.ID)
				assert.Nil(t, err)

				res, err := srv.AdvanceConfirm(t.Context(), actor, adv.ID)
				assert.Nil(t, err)
				assert.Equal(t, tms_model.AdvanceConfirmed, res.State)

				var entries accounting_core.JournalEntriesList
				err = db.
					Model(&accounting_core.JournalEntry{}).
					Preload("Account").
					Where("transaction_id = ?", res.MoveID).
					Find(&entries).
					Error
				assert.Nil(t, err)

				balance, err := entries.AccountBalanceKey(accounting_core.DriverAdvanceAccount)
				assert.Nil(t, err)
				assert.Equal(t, 500.0, balance.Change())
			})

			t.Run("testing list filters", func(t *testing.T) {
				items, err := srv.AdvanceList(t.Context(), &advance.AdvanceListPayload{
					OperatingUnitID: unit.ID,
					State:           tms_model.AdvanceConfirmed,
				})
				assert.Nil(t, err)
				assert.Len(t, items, 1)
			})
		},
	)
}

func TestAdvanceCreateValidation(t *testing.T) {
	var db gorm.DB
	unit := tms_model.OperatingUnit{Name: "Surabaya"}
	driver := tms_model.Driver{Name: "Agus"}
	cur := tms_model.Currency{}
	product := tms_model.Product{Name: "Travel Cash"}
	salary := tms_model.Product{Name: "Salary", Category: tms_model.SalaryCategory}

	moretest.Suite(t, "testing advance create validation",
		moretest.SetupListFunc{
			moretest_mock.MockSqliteDatabase(&db),
			migrateAll(&db),
			tms_mock.PopulateOperatingUnit(&db, &unit),
			tms_mock.PopulateDriver(&db, &driver, &unit),
			tms_mock.PopulateBaseCurrency(&db, &cur),
			tms_mock.PopulateProduct(&db, &product),
			tms_mock.PopulateProduct(&db, &salary),
		},
		func(t *testing.T) {
			srv := advance.NewAdvanceService(&db, timeline.NewTimeline(&db))
			actor := &advance.ActingContext{
				UserID:     1,
				CurrencyID: cur.ID,
			}

			t.Run("testing zero amount rejected", func(t *testing.T) {
				_, err := srv.AdvanceCreate(t.Context(), actor, &advance.AdvanceCreatePayload{
					OperatingUnitID: unit.ID,
					DriverID:        driver.ID,
					Amount:          0,
					ProductID:       product.ID,
				})

				var verr *advance.ValidationError
				assert.True(t, errors.As(err, &verr))
			})

			t.Run("testing negative amount rejected", func(t *testing.T) {
				_, err := srv.AdvanceCreate(t.Context(), actor, &advance.AdvanceCreatePayload{
					OperatingUnitID: unit.ID,
					DriverID:        driver.ID,
					Amount:          -10,
					ProductID:       product.ID,
				})

				var verr *advance.ValidationError
				assert.True(t, errors.As(err, &verr))
			})

			t.Run("testing unknown operating unit rejected", func(t *testing.T) {
				_, err := srv.AdvanceCreate(t.Context(), actor, &advance.AdvanceCreatePayload{
					OperatingUnitID: 9999,
					DriverID:        driver.ID,
					Amount:          100,
					ProductID:       product.ID,
				})

				var verr *advance.ValidationError
				assert.True(t, errors.As(err, &verr))
			})

			t.Run("testing non expense product rejected", func(t *testing.T) {
				_, err := srv.AdvanceCreate(t.Context(), actor, &advance.AdvanceCreatePayload{
					OperatingUnitID: unit.ID,
					DriverID:        driver.ID,
					Amount:          100,
					ProductID:       salary.ID,
				})

				var verr *advance.ValidationError
				assert.True(t, errors.As(err, &verr))
			})

			t.Run("testing malformed date rejected", func(t *testing.T) {
				_, err := srv.AdvanceCreate(t.Context(), actor, &advance.AdvanceCreatePayload{
					OperatingUnitID: unit.ID,
					DriverID:        driver.ID,
					Amount:          100,
					ProductID:       product.ID,
					Date:            "31-12-2026",
				})

				var verr *advance.ValidationError
				assert.True(t, errors.As(err, &verr))
			})

			t.Run("testing unit without sequence rejected", func(t *testing.T) {
				bare := tms_model.OperatingUnit{Name: "Bare Unit"}
				err := db.Save(&bare).Error
				assert.Nil(t, err)

				_, err = srv.AdvanceCreate(t.Context(), actor, &advance.AdvanceCreatePayload{
					OperatingUnitID: bare.ID,
					DriverID:        driver.ID,
					Amount:          100,
					ProductID:       product.ID,
				})

				var cerr *advance.ConfigurationError
				assert.True(t, errors.As(err, &cerr))
				assert.Equal(t, "sequence", cerr.Missing)
			})
		},
	)
}

func TestAdvanceConfirmValidationOrder(t *testing.T) {
	var db gorm.DB
	unit := tms_model.OperatingUnit{Name: "Medan"}
	cur := tms_model.Currency{}
	product := tms_model.Product{Name: "Travel Cash"}

	// driver saved bare on purpose, the wiring happens per subtest
	driver := tms_model.Driver{Name: "Joko", EmployeeNumber: "EMP-900"}

	moretest.Suite(t, "testing confirm prerequisite order",
		moretest.SetupListFunc{
			moretest_mock.MockSqliteDatabase(&db),
			migrateAll(&db),
			tms_mock.PopulateOperatingUnit(&db, &unit),
			tms_mock.PopulateBaseCurrency(&db, &cur),
			tms_mock.PopulateProduct(&db, &product),
			func(t *testing.T) func() error {
				addr := tms_model.Address{City: "Medan"}
				err := db.Save(&addr).Error
				assert.Nil(t, err)

				driver.HomeAddressID = addr.ID
				err = db.Save(&driver).Error
				assert.Nil(t, err)
				return nil
			},
		},
		func(t *testing.T) {
			srv := advance.NewAdvanceService(&db, timeline.NewTimeline(&db))
			actor := &advance.ActingContext{
				UserID:     1,
				CurrencyID: cur.ID,
			}

			adv, err := srv.AdvanceCreate(t.Context(), actor, &advance.AdvanceCreatePayload{
				OperatingUnitID: unit.ID,
				DriverID:        driver.ID,
				Amount:          250,
				ProductID:       product.ID,
			})
			assert.Nil(t, err)

			_, err = srv.AdvanceApprove(t.Context(), actor, adv.ID)
			assert.Nil(t, err)

			t.Run("testing confirm without approve rejected", func(t *testing.T) {
				other, err := srv.AdvanceCreate(t.Context(), actor, &advance.AdvanceCreatePayload{
					OperatingUnitID: unit.ID,
					DriverID:        driver.ID,
					Amount:          250,
					ProductID:       product.ID,
				})
				assert.Nil(t, err)

				_, err = srv.AdvanceConfirm(t.Context(), actor, other.ID)

				var serr *advance.StateError
				assert.True(t, errors.As(err, &serr))
			})

			t.Run("testing missing journal reported first", func(t *testing.T) {
				journalID := unit.AdvanceJournalID
				err := db.
					Model(&tms_model.OperatingUnit{}).
					Where("id = ?", unit.ID).
					Update("advance_journal_id", 0).
					Error
				assert.Nil(t, err)

				_, err = srv.AdvanceConfirm(t.Context(), actor, adv.ID)

				var cerr *advance.ConfigurationError
				assert.True(t, errors.As(err, &cerr))
				assert.Equal(t, "journal", cerr.Missing)

				err = db.
					Model(&tms_model.OperatingUnit{}).
					Where("id = ?", unit.ID).
					Update("advance_journal_id", journalID).
					Error
				assert.Nil(t, err)
			})

			t.Run("testing missing payable account next", func(t *testing.T) {
				_, err := srv.AdvanceConfirm(t.Context(), actor, adv.ID)

				var cerr *advance.ConfigurationError
				assert.True(t, errors.As(err, &cerr))
				assert.Equal(t, "driver home address", cerr.Missing)
			})

			t.Run("testing missing advance account last", func(t *testing.T) {
				var payable accounting_core.Account
				err := db.
					Model(&accounting_core.Account{}).
					Where("account_key = ?", accounting_core.PayableAccount).
					Where("operating_unit_id = ?", unit.ID).
					Find(&payable).
					Error
				assert.Nil(t, err)

				err = db.
					Model(&tms_model.Address{}).
					Where("id = ?", driver.HomeAddressID).
					Update("payable_account_id", payable.ID).
					Error
				assert.Nil(t, err)

				_, err = srv.AdvanceConfirm(t.Context(), actor, adv.ID)

				var cerr *advance.ConfigurationError
				assert.True(t, errors.As(err, &cerr))
				assert.Equal(t, "chart of accounts mapping", cerr.Missing)
			})

			t.Run("testing confirm succeeds once wired", func(t *testing.T) {
				var advanceAcc accounting_core.Account
				err := db.
					Model(&accounting_core.Account{}).
					Where("account_key = ?", accounting_core.DriverAdvanceAccount).
					Where("operating_unit_id = ?", unit.ID).
					Find(&advanceAcc).
					Error
				assert.Nil(t, err)

				err = db.
					Model(&tms_model.Driver{}).
					Where("id = ?", driver.ID).
					Update("advance_account_id", advanceAcc.ID).
					Error
				assert.Nil(t, err)

				res, err := srv.AdvanceConfirm(t.Context(), actor, adv.ID)
				assert.Nil(t, err)
				assert.Equal(t, tms_model.AdvanceConfirmed, res.State)
			})
		},
	)
}

func TestAdvanceZeroConvertedTotal(t *testing.T) {
	var db gorm.DB
	unit := tms_model.OperatingUnit{Name: "Makassar"}
	driver := tms_model.Driver{Name: "Rudi"}
	cur := tms_model.Currency{}
	dead := tms_model.Currency{Name: "Dead Currency", Code: "XXX", Rate: 0}
	product := tms_model.Product{Name: "Travel Cash"}

	moretest.Suite(t, "testing zero converted total",
		moretest.SetupListFunc{
			moretest_mock.MockSqliteDatabase(&db),
			migrateAll(&db),
			tms_mock.PopulateOperatingUnit(&db, &unit),
			tms_mock.PopulateDriver(&db, &driver, &unit),
			tms_mock.PopulateBaseCurrency(&db, &cur),
			tms_mock.PopulateCurrency(&db, &dead),
			tms_mock.PopulateProduct(&db, &product),
		},
		func(t *testing.T) {
			tl := timeline.NewTimeline(&db)
			actor := &advance.ActingContext{
				UserID:     1,
				CurrencyID: cur.ID,
			}

			newApproved := func(t *testing.T, srv advance.AdvanceService) *tms_model.Advance {
				adv, err := srv.AdvanceCreate(t.Context(), actor, &advance.AdvanceCreatePayload{
					OperatingUnitID: unit.ID,
					DriverID:        driver.ID,
					Amount:          500,
					CurrencyID:      dead.ID,
					ProductID:       product.ID,
				})
				assert.Nil(t, err)

				_, err = srv.AdvanceApprove(t.Context(), actor, adv.ID)
				assert.Nil(t, err)

				return adv
			}

			t.Run("testing default keeps advance approved", func(t *testing.T) {
				srv := advance.NewAdvanceService(&db, tl)
				adv := newApproved(t, srv)

				res, err := srv.AdvanceConfirm(t.Context(), actor, adv.ID)
				assert.Nil(t, err)
				assert.Equal(t, tms_model.AdvanceApproved, res.State)
				assert.Zero(t, res.MoveID)
			})

			t.Run("testing strict mode rejects", func(t *testing.T) {
				srv := advance.NewAdvanceService(&db, tl, advance.WithStrictZeroTotal())
				adv := newApproved(t, srv)

				_, err := srv.AdvanceConfirm(t.Context(), actor, adv.ID)

				var verr *advance.ValidationError
				assert.True(t, errors.As(err, &verr))
			})
		},
	)
}

func TestAdvanceCancelAndResetGuards(t *testing.T) {
	var db gorm.DB
	unit := tms_model.OperatingUnit{Name: "Bandung"}
	driver := tms_model.Driver{Name: "Dewi"}
	cur := tms_model.Currency{}
	product := tms_model.Product{Name: "Travel Cash"}
	travel := tms_model.Travel{Name: "BDG-JKT", State: tms_model.TravelCancelled}

	moretest.Suite(t, "testing cancel and reset guards",
		moretest.SetupListFunc{
			moretest_mock.MockSqliteDatabase(&db),
			migrateAll(&db),
			tms_mock.PopulateOperatingUnit(&db, &unit),
			tms_mock.PopulateDriver(&db, &driver, &unit),
			tms_mock.PopulateBaseCurrency(&db, &cur),
			tms_mock.PopulateProduct(&db, &product),
			tms_mock.PopulateTravel(&db, &travel),
		},
		func(t *testing.T) {
			srv := advance.NewAdvanceService(&db, timeline.NewTimeline(&db))
			actor := &advance.ActingContext{
				UserID:     1,
				CurrencyID: cur.ID,
			}

			adv, err := srv.AdvanceCreate(t.Context(), actor, &advance.AdvanceCreatePayload{
				OperatingUnitID: unit.ID,
				DriverID:        driver.ID,
				TravelID:        travel.ID,
				Amount:          300,
				ProductID:       product.ID,
			})
			assert.Nil(t, err)

			t.Run("testing cancel from draft rejected", func(t *testing.T) {
				_, err := srv.AdvanceCancel(t.Context(), actor, adv.ID)

				var serr *advance.StateError
				assert.True(t, errors.As(err, &serr))
			})

			_, err = srv.AdvanceApprove(t.Context(), actor, adv.ID)
			assert.Nil(t, err)

			_, err = srv.AdvanceConfirm(t.Context(), actor, adv.ID)
			assert.Nil(t, err)

			t.Run("testing paid advance cannot cancel", func(t *testing.T) {
				err := db.
					Model(&tms_model.Advance{}).
					Where("id = ?", adv.ID).
					Update("payment_id", 77).
					Error
				assert.Nil(t, err)

				_, err = srv.AdvanceCancel(t.Context(), actor, adv.ID)

				var serr *advance.StateError
				assert.True(t, errors.As(err, &serr))

				err = db.
					Model(&tms_model.Advance{}).
					Where("id = ?", adv.ID).
					Update("payment_id", 0).
					Error
				assert.Nil(t, err)
			})

			t.Run("testing reset blocked by cancelled travel", func(t *testing.T) {
				_, err := srv.AdvanceCancel(t.Context(), actor, adv.ID)
				assert.Nil(t, err)

				_, err = srv.AdvanceResetToDraft(t.Context(), actor, adv.ID)

				var serr *advance.StateError
				assert.True(t, errors.As(err, &serr))
			})
		},
	)
}
