package event

import (
	"context"
	"time"

	"github.com/secretariat-suite/engagement-service/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

type CreateCmd struct {
	ActorID   string
	ActorRole string

	Title     string
	Notes     string
	EventDate time.Time
	Locations domain.LocationSet
}

func (s *Service) Create(ctx context.Context, cmd CreateCmd) (*domain.Event, error) {
	if !canCreate(cmd.ActorRole) {
		return nil, domain.ErrForbidden("not allowed to create events")
	}
	now := s.clock.Now()
	ev, err := domain.NewEvent(cmd.ActorID, cmd.Title, cmd.Notes, cmd.EventDate, cmd.Locations, now)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, ev); err != nil {
		return nil, err
	}

	// Counter update is non-fatal: the event record is the source of truth
	// and a reconcile repairs any drift.
	if err := s.engine.RecordEvent(ctx, ev); err != nil {
		zlog.Warn().Err(err).Str("event_id", ev.ID).Msg("visit counters stale until next reconcile")
	}
	return ev, nil
}
