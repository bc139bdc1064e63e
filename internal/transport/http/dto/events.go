package dto

import "time"

// Location selections travel as the loose storage shape: category -> id list.
// The domain parser owns coercion and unknown-category policy.
type CreateEventReq struct {
	Title     string             `json:"title"`
	Notes     string             `json:"notes"`
	EventDate time.Time          `json:"event_date"`
	Locations map[string][]int64 `json:"locations"`
}

type UpdateEventReq struct {
	Title     *string             `json:"title,omitempty"`
	Notes     *string             `json:"notes,omitempty"`
	EventDate *time.Time          `json:"event_date,omitempty"`
	Locations *map[string][]int64 `json:"locations,omitempty"`
}
