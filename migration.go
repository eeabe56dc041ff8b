package tms_service

import (
	"log"
	"time"

	"github.com/pdcgo/tms_service/accounting_core"
	"github.com/pdcgo/tms_service/sequence"
	"github.com/pdcgo/tms_service/timeline"
	"github.com/pdcgo/tms_service/tms_model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SeedHandler func() error

func NewSeedHandler(
	db *gorm.DB,
) SeedHandler {
	return func() error {
		log.Println("seeding tms service")

		base := tms_model.Currency{
			Name:    "Indonesian Rupiah",
			Code:    "IDR",
			Rate:    1,
			Base:    true,
			Created: time.Now(),
		}

		return db.
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&base).
			Error
	}
}

type MigrationHandler func() error

func NewMigrationHandler(
	db *gorm.DB,
) MigrationHandler {
	return func() error {
		log.Println("migrating tms service")
		return db.AutoMigrate(
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
			&tms_model.Uom{},
			&tms_model.Transportable{},
		)
	}
}
