package domain

import "time"

// CounterRecord is the stored visit aggregate for one location. A location
// that was never referenced reads as a zero record; callers cannot tell the
// two apart, which is intentional (records are created lazily and never
// deleted, even when the count returns to zero).
type CounterRecord struct {
	Ref         LocationRef
	VisitCount  int64
	LastVisitAt *time.Time
}
