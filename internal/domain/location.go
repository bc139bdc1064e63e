package domain

import "fmt"

// Category is one of the seven location kinds an event can touch.
type Category string

const (
	CategoryDistrict     Category = "district"
	CategoryTown         Category = "town"
	CategoryNeighborhood Category = "neighborhood"
	CategoryVillage      Category = "village"
	CategorySTK          Category = "stk" // civil-society organization
	CategoryMosque       Category = "mosque"
	CategoryEvent        Category = "event"
)

// Categories lists every category in canonical order. Iteration over location
// sets and reconciliation output follow this order so results are reproducible.
var Categories = []Category{
	CategoryDistrict,
	CategoryTown,
	CategoryNeighborhood,
	CategoryVillage,
	CategorySTK,
	CategoryMosque,
	CategoryEvent,
}

func (c Category) Valid() bool {
	switch c {
	case CategoryDistrict, CategoryTown, CategoryNeighborhood, CategoryVillage,
		CategorySTK, CategoryMosque, CategoryEvent:
		return true
	}
	return false
}

// LocationRef identifies a single location: (category, id). It is a pure
// lookup key; equality is by value.
type LocationRef struct {
	Category Category
	ID       int64
}

// NewLocationRef panics on an unknown category or non-positive id. Callers
// construct refs from the fixed Category constants and validated ids, so a bad
// ref is a programming mistake, not a runtime condition.
func NewLocationRef(c Category, id int64) LocationRef {
	if !c.Valid() {
		panic(fmt.Sprintf("domain: unknown location category %q", c))
	}
	if id <= 0 {
		panic(fmt.Sprintf("domain: non-positive location id %d", id))
	}
	return LocationRef{Category: c, ID: id}
}

func (r LocationRef) String() string {
	return fmt.Sprintf("%s:%d", r.Category, r.ID)
}
