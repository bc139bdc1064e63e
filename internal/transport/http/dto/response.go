package dto

import "time"

// EventResp is the stable API response model.
type EventResp struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`

	Title string `json:"title"`
	Notes string `json:"notes,omitempty"`

	EventDate time.Time          `json:"event_date"`
	Locations map[string][]int64 `json:"locations"`

	Archived   bool       `json:"archived"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CounterResp struct {
	Category      string     `json:"category"`
	LocationID    int64      `json:"location_id"`
	VisitCount    int64      `json:"visit_count"`
	LastVisitDate *time.Time `json:"last_visit_date,omitempty"`
}

type ReconcileResp struct {
	EventsProcessed  int `json:"events_processed"`
	LocationsUpdated int `json:"locations_updated"`
}

type PageResp[T any] struct {
	Items    []T `json:"items"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}
