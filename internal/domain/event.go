package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event is an organizational activity record. Its location selections are the
// source of truth the visit counters are derived from.
type Event struct {
	ID      string
	OwnerID string
	Title   string
	Notes   string

	// EventDate is the effective date of the activity; it drives
	// last_visit_date on the touched counters.
	EventDate time.Time

	Locations LocationSet

	Archived   bool
	ArchivedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewEvent(ownerID, title, notes string, eventDate time.Time, locations LocationSet, now time.Time) (*Event, error) {
	ownerID = strings.TrimSpace(ownerID)
	title = strings.TrimSpace(title)
	notes = strings.TrimSpace(notes)

	if ownerID == "" {
		return nil, ErrValidation("owner_id is required")
	}
	if title == "" || len(title) > 200 {
		return nil, ErrValidation("title is required and must be <= 200 chars")
	}
	if len(notes) > 4000 {
		return nil, ErrValidation("notes must be <= 4000 chars")
	}
	if eventDate.IsZero() {
		return nil, ErrValidation("event_date is required")
	}

	return &Event{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Title:     title,
		Notes:     notes,
		EventDate: eventDate.UTC(),
		Locations: locations,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}, nil
}

func (e *Event) Archive(now time.Time) error {
	if e.Archived {
		return ErrInvalidState("event already archived")
	}
	t := now.UTC()
	e.Archived = true
	e.ArchivedAt = &t
	e.UpdatedAt = t
	return nil
}

// Deletable reports whether a hard delete is allowed. Policy: an event must
// first be archived; deleting a live event is rejected upstream.
func (e *Event) Deletable() bool { return e.Archived }

// ApplyUpdate mutates the event in place. Location selections are replaced
// wholesale, never patched; the caller diffs old vs new to adjust counters.
func (e *Event) ApplyUpdate(title, notes *string, eventDate *time.Time, locations *LocationSet, now time.Time) error {
	if e.Archived {
		return ErrInvalidState("archived event cannot be updated")
	}

	if title != nil {
		v := strings.TrimSpace(*title)
		if v == "" || len(v) > 200 {
			return ErrValidation("title must be non-empty and <= 200 chars")
		}
		e.Title = v
	}
	if notes != nil {
		v := strings.TrimSpace(*notes)
		if len(v) > 4000 {
			return ErrValidation("notes must be <= 4000 chars")
		}
		e.Notes = v
	}
	if eventDate != nil {
		if eventDate.IsZero() {
			return ErrValidation("event_date must not be zero")
		}
		e.EventDate = eventDate.UTC()
	}
	if locations != nil {
		e.Locations = *locations
	}
	e.UpdatedAt = now.UTC()
	return nil
}
