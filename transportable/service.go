package transportable

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pdcgo/tms_service/tms_model"
	"gorm.io/gorm"
)

type TransportableService interface {
	TransportableCreate(ctx context.Context, pay *TransportableCreatePayload) (*tms_model.Transportable, error)
	TransportableCopy(ctx context.Context, transportableID uint) (*tms_model.Transportable, error)
}

type transportableServiceImpl struct {
	db *gorm.DB
}

type TransportableCreatePayload struct {
	Name  string `json:"name"`
	UomID uint   `json:"uom_id"`
}

func (t *transportableServiceImpl) TransportableCreate(
	ctx context.Context,
	pay *TransportableCreatePayload,
) (*tms_model.Transportable, error) {
	var item tms_model.Transportable

	if pay.Name == "" {
		return &item, errors.New("name is empty")
	}

	if pay.UomID == 0 {
		return &item, errors.New("unit of measure is empty")
	}

	err := t.
		db.
		WithContext(ctx).
		Transaction(func(tx *gorm.DB) error {
			var old tms_model.Transportable
			err := tx.
				Model(&tms_model.Transportable{}).
				Where("name = ?", pay.Name).
				Find(&old).
				Error

			if err != nil {
				return err
			}

			if old.ID != 0 {
				return errors.New("name must be unique")
			}

			item = tms_model.Transportable{
				Name:    pay.Name,
				UomID:   pay.UomID,
				Created: time.Now(),
			}

			return tx.Save(&item).Error
		})

	return &item, err
}

// TransportableCopy duplicates an item under the copy naming convention,
// "Copy of [name]" first, then "Copy of [name, n]" for later copies.
func (t *transportableServiceImpl) TransportableCopy(
	ctx context.Context,
	transportableID uint,
) (*tms_model.Transportable, error) {
	var copied tms_model.Transportable

	err := t.
		db.
		WithContext(ctx).
		Transaction(func(tx *gorm.DB) error {
			var item tms_model.Transportable
			err := tx.
				Model(&tms_model.Transportable{}).
				Where("id = ?", transportableID).
				Find(&item).
				Error

			if err != nil {
				return err
			}

			if item.ID == 0 {
				return errors.New("transportable not found")
			}

			var copiedCount int64
			err = tx.
				Model(&tms_model.Transportable{}).
				Where("name LIKE ? ESCAPE ?", fmt.Sprintf("Copy of [%s%%", escapeLike(item.Name)), `\`).
				Count(&copiedCount).
				Error

			if err != nil {
				return err
			}

			newName := fmt.Sprintf("Copy of [%s]", item.Name)
			if copiedCount != 0 {
				newName = fmt.Sprintf("Copy of [%s, %d]", item.Name, copiedCount)
			}

			copied = tms_model.Transportable{
				Name:    newName,
				UomID:   item.UomID,
				Created: time.Now(),
			}

			return tx.Save(&copied).Error
		})

	return &copied, err
}

// escapeLike neutralizes wildcard characters inside a name before it
// gets interpolated into a LIKE pattern.
func escapeLike(name string) string {
	return strings.NewReplacer(
		`\`, `\\`,
		`%`, `\%`,
		`_`, `\_`,
	).Replace(name)
}

func NewTransportableService(db *gorm.DB) TransportableService {
	return &transportableServiceImpl{
		db: db,
	}
}
