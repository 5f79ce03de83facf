package domain

import "time"

// RecordFilter narrows list queries. Zero values mean "no constraint".
// CreatedBefore is exclusive.
type RecordFilter struct {
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	Status        string
	Program       string
	Search        string
	Limit         int
}

// DateRange returns a copy of f carrying only the date bounds.
func (f RecordFilter) DateRange() RecordFilter {
	return RecordFilter{CreatedAfter: f.CreatedAfter, CreatedBefore: f.CreatedBefore}
}
