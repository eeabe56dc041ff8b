package timeline_test

import (
	"testing"
	"time"

	"github.com/pdcgo/shared/pkg/moretest"
	"github.com/pdcgo/shared/pkg/moretest/moretest_mock"
	"github.com/pdcgo/tms_service/accounting_core"
	"github.com/pdcgo/tms_service/timeline"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTimeline(t *testing.T) {
	var db gorm.DB

	var migrate moretest.SetupFunc = func(t *testing.T) func() error {
		err := db.AutoMigrate(
			&timeline.TimelineNote{},
		)
		assert.Nil(t, err)

		return nil
	}

	moretest.Suite(t, "testing timeline",
		moretest.SetupListFunc{
			moretest_mock.MockSqliteDatabase(&db),
			migrate,
		},
		func(t *testing.T) {
			tl := timeline.NewTimeline(&db)
			ref := accounting_core.NewRefID(&accounting_core.RefData{
				RefType: accounting_core.AdvanceRef,
				ID:      12,
			})

			now := time.Now()

			tl.Post(t.Context(), ref, &timeline.Event{
				Kind:    timeline.AdvanceApproved,
				ActorID: 1,
				At:      now.Add(-time.Minute),
				Fields: map[string]string{
					"number": "ADV/JKT/00001",
				},
			})

			tl.Post(t.Context(), ref, &timeline.Event{
				Kind:    timeline.AdvanceConfirmed,
				ActorID: 1,
				At:      now,
			})

			t.Run("testing notes ordered by time", func(t *testing.T) {
				notes, err := tl.Notes(t.Context(), ref)
				assert.Nil(t, err)
				assert.Len(t, notes, 2)
				assert.Equal(t, timeline.AdvanceApproved, notes[0].Kind)
				assert.Equal(t, timeline.AdvanceConfirmed, notes[1].Kind)
			})

			t.Run("testing other ref empty", func(t *testing.T) {
				other := accounting_core.NewRefID(&accounting_core.RefData{
					RefType: accounting_core.AdvanceRef,
					ID:      99,
				})

				notes, err := tl.Notes(t.Context(), other)
				assert.Nil(t, err)
				assert.Len(t, notes, 0)
			})
		},
	)
}
