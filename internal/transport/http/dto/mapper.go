package dto

import (
	"github.com/secretariat-suite/engagement-service/internal/domain"
)

// ToLocationSet normalizes the request's loose category map. Unknown
// categories and non-positive ids are dropped, same as the storage parser.
func ToLocationSet(m map[string][]int64) domain.LocationSet {
	sel := map[domain.Category][]int64{}
	for k, ids := range m {
		sel[domain.Category(k)] = ids
	}
	return domain.NewLocationSet(sel)
}

func FromLocationSet(s domain.LocationSet) map[string][]int64 {
	out := map[string][]int64{}
	for _, cat := range domain.Categories {
		if ids := s.IDs(cat); ids != nil {
			out[string(cat)] = ids
		}
	}
	return out
}

func ToEventResp(e *domain.Event) EventResp {
	return EventResp{
		ID:         e.ID,
		OwnerID:    e.OwnerID,
		Title:      e.Title,
		Notes:      e.Notes,
		EventDate:  e.EventDate,
		Locations:  FromLocationSet(e.Locations),
		Archived:   e.Archived,
		ArchivedAt: e.ArchivedAt,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func ToCounterResp(rec domain.CounterRecord) CounterResp {
	return CounterResp{
		Category:      string(rec.Ref.Category),
		LocationID:    rec.Ref.ID,
		VisitCount:    rec.VisitCount,
		LastVisitDate: rec.LastVisitAt,
	}
}
