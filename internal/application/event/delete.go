package event

import (
	"context"

	"github.com/secretariat-suite/engagement-service/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

// Delete hard-deletes an archived event and retracts its visits. Deleting a
// live event is rejected: archive first.
func (s *Service) Delete(ctx context.Context, eventID, actorID, actorRole string) error {
	ev, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if !canManage(actorID, actorRole, ev.OwnerID) {
		return domain.ErrForbidden("not allowed")
	}
	if !ev.Deletable() {
		return domain.ErrInvalidState("only archived events can be deleted")
	}
	if err := s.repo.Delete(ctx, ev.ID); err != nil {
		return err
	}

	if err := s.engine.RetractEvent(ctx, ev); err != nil {
		zlog.Warn().Err(err).Str("event_id", ev.ID).Msg("visit counters stale until next reconcile")
	}
	return nil
}
