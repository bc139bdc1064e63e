package event

import (
	"context"
	"time"

	"github.com/secretariat-suite/engagement-service/internal/domain"
)

type Clock interface {
	Now() time.Time
}

type EventRepo interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	Update(ctx context.Context, e *domain.Event) error
	Delete(ctx context.Context, id string) error

	List(ctx context.Context, page, pageSize int) ([]*domain.Event, int, error)
}

// CounterEngine is the engagement engine as the event lifecycle sees it.
// Failures here are logged and swallowed: counter drift is tolerated, losing
// the event record is not.
type CounterEngine interface {
	RecordEvent(ctx context.Context, ev *domain.Event) error
	RetractEvent(ctx context.Context, ev *domain.Event) error
	ApplyEdit(ctx context.Context, ev *domain.Event, oldSet domain.LocationSet) error
}
