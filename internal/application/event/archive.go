package event

import (
	"context"

	"github.com/secretariat-suite/engagement-service/internal/domain"
)

// Archive retires an event without touching counters: archived events still
// count as visits. Only a later hard delete decrements.
func (s *Service) Archive(ctx context.Context, eventID, actorID, actorRole string) (*domain.Event, error) {
	ev, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !canManage(actorID, actorRole, ev.OwnerID) {
		return nil, domain.ErrForbidden("not allowed")
	}
	if err := ev.Archive(s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}
