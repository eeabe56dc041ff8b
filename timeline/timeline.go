package timeline

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/pdcgo/tms_service/accounting_core"
	"gorm.io/gorm"
)

type NoteKind string

const (
	AdvanceApproved  NoteKind = "advance_approved"
	AdvanceConfirmed NoteKind = "advance_confirmed"
	AdvanceCancelled NoteKind = "advance_cancelled"
	AdvanceDrafted   NoteKind = "advance_drafted"
	PaymentLinked    NoteKind = "payment_linked"
	PaymentCancelled NoteKind = "payment_cancelled"
)

// Event is the structured audit payload. Rendering belongs to whoever
// reads the timeline, the service never formats markup.
type Event struct {
	Kind    NoteKind          `json:"kind"`
	ActorID uint              `json:"actor_id"`
	At      time.Time         `json:"at"`
	Fields  map[string]string `json:"fields"`
}

type TimelineNote struct {
	ID      uint                  `json:"id" gorm:"primarykey"`
	RefID   accounting_core.RefID `json:"ref_id" gorm:"index"`
	Kind    NoteKind              `json:"kind"`
	ActorID uint                  `json:"actor_id"`
	NotedAt time.Time             `json:"noted_at"`
	Payload string                `json:"payload"`
}

type Timeline struct {
	db *gorm.DB
}

// Post appends an event note. The call is fire and forget, a failed
// note is logged and never rolls back the transition it describes.
func (tl *Timeline) Post(ctx context.Context, ref accounting_core.RefID, ev *Event) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	raw, err := json.Marshal(ev.Fields)
	if err != nil {
		slog.Error("timeline payload marshal failed", slog.String("ref", string(ref)), slog.Any("err", err))
		return
	}

	note := TimelineNote{
		RefID:   ref,
		Kind:    ev.Kind,
		ActorID: ev.ActorID,
		NotedAt: ev.At,
		Payload: string(raw),
	}

	err = tl.db.WithContext(ctx).Save(&note).Error
	if err != nil {
		slog.Error("timeline note post failed", slog.String("ref", string(ref)), slog.Any("err", err))
	}
}

func (tl *Timeline) Notes(ctx context.Context, ref accounting_core.RefID) ([]*TimelineNote, error) {
	notes := []*TimelineNote{}
	err := tl.db.
		WithContext(ctx).
		Model(&TimelineNote{}).
		Where("ref_id = ?", ref).
		Order("noted_at asc").
		Find(&notes).
		Error

	return notes, err
}

func NewTimeline(db *gorm.DB) *Timeline {
	return &Timeline{
		db: db,
	}
}
