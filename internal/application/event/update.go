package event

import (
	"context"
	"time"

	"github.com/secretariat-suite/engagement-service/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

type UpdateCmd struct {
	ActorID   string
	ActorRole string
	EventID   string

	Title     *string
	Notes     *string
	EventDate *time.Time

	// Locations replaces the whole selection when present; there is no
	// incremental patch.
	Locations *domain.LocationSet
}

func (s *Service) Update(ctx context.Context, cmd UpdateCmd) (*domain.Event, error) {
	ev, err := s.repo.GetByID(ctx, cmd.EventID)
	if err != nil {
		return nil, err
	}
	if !canManage(cmd.ActorID, cmd.ActorRole, ev.OwnerID) {
		return nil, domain.ErrForbidden("not allowed")
	}

	oldSet := ev.Locations

	if err := ev.ApplyUpdate(cmd.Title, cmd.Notes, cmd.EventDate, cmd.Locations, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, ev); err != nil {
		return nil, err
	}

	// Only changed selections move counters; a title edit touches nothing.
	if cmd.Locations != nil {
		if err := s.engine.ApplyEdit(ctx, ev, oldSet); err != nil {
			zlog.Warn().Err(err).Str("event_id", ev.ID).Msg("visit counters stale until next reconcile")
		}
	}
	return ev, nil
}
