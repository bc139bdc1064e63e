package event

import (
	"context"

	"github.com/secretariat-suite/engagement-service/internal/domain"
)

func (s *Service) Get(ctx context.Context, eventID, actorID, actorRole string) (*domain.Event, error) {
	ev, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !canManage(actorID, actorRole, ev.OwnerID) {
		return nil, domain.ErrForbidden("not allowed")
	}
	return ev, nil
}

func (s *Service) List(ctx context.Context, page, pageSize int) ([]*domain.Event, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return s.repo.List(ctx, page, pageSize)
}
