package domain

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// LocationSet is the normalized form of an event's location selections: for
// each category, the set of selected location ids. Events store this as a
// loose JSON map (category -> list of ids, ids possibly numeric strings);
// ParseLocationSet is the only place that loose shape is interpreted.
type LocationSet struct {
	ids map[Category][]int64 // sorted ascending, no duplicates
}

// ParseLocationSet decodes the stored category->ids map. Ids are coerced from
// numbers or numeric strings and deduplicated; unknown categories and
// non-coercible or non-positive ids are dropped rather than failing the whole
// event (rows written by newer code must stay readable).
func ParseLocationSet(raw []byte) (LocationSet, error) {
	if len(raw) == 0 {
		return LocationSet{}, nil
	}

	var m map[string][]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return LocationSet{}, ErrValidationMeta("malformed location set", map[string]string{
			"locations": "must be a map of category to id list",
		})
	}

	out := map[Category][]int64{}
	for k, vals := range m {
		cat := Category(strings.TrimSpace(k))
		if !cat.Valid() {
			continue
		}
		seen := map[int64]bool{}
		var ids []int64
		for _, v := range vals {
			id, ok := coerceID(v)
			if !ok || id <= 0 || seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
		if len(ids) == 0 {
			continue
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		out[cat] = ids
	}
	if len(out) == 0 {
		return LocationSet{}, nil
	}
	return LocationSet{ids: out}, nil
}

func coerceID(v any) (int64, bool) {
	switch t := v.(type) {
	case float64:
		id := int64(t)
		if float64(id) != t {
			return 0, false
		}
		return id, true
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0, false
		}
		return id, true
	case json.Number:
		id, err := t.Int64()
		if err != nil {
			return 0, false
		}
		return id, true
	}
	return 0, false
}

// NewLocationSet builds a set from already-typed selections. Input slices are
// copied, deduplicated and sorted; empty categories are omitted.
func NewLocationSet(sel map[Category][]int64) LocationSet {
	out := map[Category][]int64{}
	for cat, vals := range sel {
		if !cat.Valid() {
			continue
		}
		seen := map[int64]bool{}
		var ids []int64
		for _, id := range vals {
			if id <= 0 || seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
		if len(ids) == 0 {
			continue
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		out[cat] = ids
	}
	if len(out) == 0 {
		return LocationSet{}
	}
	return LocationSet{ids: out}
}

// Refs returns every LocationRef in the set, categories in canonical order,
// ids ascending.
func (s LocationSet) Refs() []LocationRef {
	var refs []LocationRef
	for _, cat := range Categories {
		for _, id := range s.ids[cat] {
			refs = append(refs, LocationRef{Category: cat, ID: id})
		}
	}
	return refs
}

// IDs returns the selected ids for one category (ascending; nil if none).
func (s LocationSet) IDs(cat Category) []int64 {
	ids := s.ids[cat]
	if len(ids) == 0 {
		return nil
	}
	out := make([]int64, len(ids))
	copy(out, ids)
	return out
}

func (s LocationSet) Contains(ref LocationRef) bool {
	for _, id := range s.ids[ref.Category] {
		if id == ref.ID {
			return true
		}
	}
	return false
}

func (s LocationSet) IsEmpty() bool { return len(s.ids) == 0 }

func (s LocationSet) Len() int {
	n := 0
	for _, ids := range s.ids {
		n += len(ids)
	}
	return n
}

// MarshalJSON produces the storage shape: {"category": [ids...], ...}.
func (s LocationSet) MarshalJSON() ([]byte, error) {
	m := map[Category][]int64{}
	for cat, ids := range s.ids {
		m[cat] = ids
	}
	return json.Marshal(m)
}

func (s *LocationSet) UnmarshalJSON(raw []byte) error {
	parsed, err := ParseLocationSet(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// DiffLocationSets compares an event's previous and new selections and
// returns the refs that appeared and the refs that disappeared. Refs present
// in both sets are absent from both slices.
func DiffLocationSets(oldSet, newSet LocationSet) (added, removed []LocationRef) {
	for _, ref := range newSet.Refs() {
		if !oldSet.Contains(ref) {
			added = append(added, ref)
		}
	}
	for _, ref := range oldSet.Refs() {
		if !newSet.Contains(ref) {
			removed = append(removed, ref)
		}
	}
	return added, removed
}
