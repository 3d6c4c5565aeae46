package delivery

import (
	"errors"
	"time"

	"cementops/internal/pkg/errs"
	"cementops/internal/pkg/guard"
)

// ErrHistoryEntryIsNotConstructed is returned when using an improperly
// initialized HistoryEntry.
var ErrHistoryEntryIsNotConstructed = errors.New(
	"HistoryEntry must be created via NewHistoryEntry constructor")

// ErrActorIsRequired is returned when a history entry is recorded without an actor.
var ErrActorIsRequired = errs.NewValueIsRequiredError("actor")

// ErrRecordedAtIsRequired is returned when a history entry carries no timestamp.
var ErrRecordedAtIsRequired = errs.NewValueIsRequiredError("recorded at")

// HistoryEntry is an immutable record of one status change on a delivery:
// which status was entered, when, by whom, and an optional free-text note.
// Entries are only ever appended; they are never edited or removed.
type HistoryEntry struct {
	status     Status
	recordedAt time.Time
	actor      string
	note       string

	guard guard.ConstructorGuard
}

// NewHistoryEntry creates a history entry for a status change.
// The status must be valid, the timestamp non-zero, and the actor non-empty;
// the note may be empty.
func NewHistoryEntry(status Status, recordedAt time.Time, actor string, note string) (HistoryEntry, error) {
	if err := status.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if recordedAt.IsZero() {
		return HistoryEntry{}, ErrRecordedAtIsRequired
	}
	if actor == "" {
		return HistoryEntry{}, ErrActorIsRequired
	}

	return HistoryEntry{
		status:     status,
		recordedAt: recordedAt,
		actor:      actor,
		note:       note,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate checks if the HistoryEntry was properly constructed.
func (h HistoryEntry) Validate() error {
	return h.guard.Validate(ErrHistoryEntryIsNotConstructed)
}

// Status returns the status the delivery entered.
func (h HistoryEntry) Status() Status {
	return h.status
}

// RecordedAt returns when the change happened.
func (h HistoryEntry) RecordedAt() time.Time {
	return h.recordedAt
}

// Actor returns who performed the change.
func (h HistoryEntry) Actor() string {
	return h.actor
}

// Note returns the optional free-text note attached to the change.
func (h HistoryEntry) Note() string {
	return h.note
}
