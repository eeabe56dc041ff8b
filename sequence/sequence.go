package sequence

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNoSequence = errors.New("sequence not configured")

// NumberSequence hands out human readable document numbers. The counter
// row is locked FOR UPDATE so two allocations can never observe the same
// value, numbers are monotonically increasing in allocation order.
type NumberSequence struct {
	ID         uint   `json:"id" gorm:"primarykey"`
	Code       string `json:"code" gorm:"index:sequence_code,unique"`
	Prefix     string `json:"prefix"`
	Padding    int    `json:"padding"`
	NextNumber int64  `json:"next_number"`

	Created time.Time `json:"created"`
}

func (s *NumberSequence) format(n int64) string {
	return fmt.Sprintf("%s%0*d", s.Prefix, s.Padding, n)
}

// NextByID allocates the next identifier of the sequence inside the
// caller transaction. A zero or missing sequence id reports
// ErrNoSequence, there is no sentinel value.
func NextByID(tx *gorm.DB, seqID uint) (string, error) {
	if seqID == 0 {
		return "", ErrNoSequence
	}

	var seq NumberSequence
	err := tx.
		Clauses(clause.Locking{
			Strength: "UPDATE",
		}).
		Model(&NumberSequence{}).
		Where("id = ?", seqID).
		Find(&seq).
		Error

	if err != nil {
		return "", err
	}

	if seq.ID == 0 {
		return "", ErrNoSequence
	}

	number := seq.format(seq.NextNumber)

	err = tx.
		Model(&NumberSequence{}).
		Where("id = ?", seq.ID).
		Update("next_number", gorm.Expr("next_number + ?", 1)).
		Error

	if err != nil {
		return "", err
	}

	return number, nil
}
