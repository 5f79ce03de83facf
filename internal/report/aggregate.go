package report

import "sort"

// KeyFunc maps a record to its group key. It must be total: records with
// missing source data map to a sentinel label rather than an empty key.
type KeyFunc[R any] func(R) string

// Measure is a named numeric accumulator. Value returns false when the
// record carries no value; such records still count toward the group but add
// nothing to the sum.
type Measure[R any] struct {
	Name  string
	Value func(R) (float64, bool)
}

// Group holds the measures accumulated for one key.
type Group struct {
	Count int                `json:"count"`
	Sums  map[string]float64 `json:"sums"`
}

// Sum returns the accumulated total of the named measure.
func (g *Group) Sum(name string) float64 {
	if g == nil {
		return 0
	}
	return g.Sums[name]
}

// Average returns Sum(name)/Count, or 0 for an empty group.
func (g *Group) Average(name string) float64 {
	if g == nil || g.Count == 0 {
		return 0
	}
	return g.Sums[name] / float64(g.Count)
}

// Result maps group keys to their measures.
type Result map[string]*Group

// Keys returns the group keys in ascending order.
func (r Result) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Total returns the number of records folded into the result.
func (r Result) Total() int {
	total := 0
	for _, g := range r {
		total += g.Count
	}
	return total
}

// Sum returns the named measure summed across every group.
func (r Result) Sum(name string) float64 {
	total := 0.0
	for _, g := range r {
		total += g.Sums[name]
	}
	return total
}

// Rows projects the result onto rows ordered by key. Each row carries
// keyField, "count" and one column per measure name, in that order.
func (r Result) Rows(keyField string, measures ...string) []Row {
	rows := make([]Row, 0, len(r))
	for _, key := range r.Keys() {
		g := r[key]
		row := MapRow{}
		row.Set(keyField, key)
		row.Set("count", g.Count)
		for _, m := range measures {
			row.Set(m, g.Sums[m])
		}
		rows = append(rows, row)
	}
	return rows
}

// Aggregator folds records into a Result in a single pass.
type Aggregator[R any] struct {
	key      KeyFunc[R]
	measures []Measure[R]
	groups   Result
}

func NewAggregator[R any](key KeyFunc[R], measures ...Measure[R]) *Aggregator[R] {
	return &Aggregator[R]{key: key, measures: measures, groups: Result{}}
}

// Seed creates zero-valued groups so known categories appear in the result
// even when no record maps to them.
func (a *Aggregator[R]) Seed(keys ...string) *Aggregator[R] {
	for _, k := range keys {
		a.group(k)
	}
	return a
}

// Add folds records into the running result.
func (a *Aggregator[R]) Add(records ...R) *Aggregator[R] {
	for _, rec := range records {
		g := a.group(a.key(rec))
		g.Count++
		for _, m := range a.measures {
			if v, ok := m.Value(rec); ok {
				g.Sums[m.Name] += v
			}
		}
	}
	return a
}

// Result returns the accumulated groups.
func (a *Aggregator[R]) Result() Result {
	return a.groups
}

func (a *Aggregator[R]) group(key string) *Group {
	g, ok := a.groups[key]
	if !ok {
		g = &Group{Sums: make(map[string]float64, len(a.measures))}
		for _, m := range a.measures {
			g.Sums[m.Name] = 0
		}
		a.groups[key] = g
	}
	return g
}

// Aggregate groups records by key and accumulates every measure per group.
// An empty input yields an empty result.
func Aggregate[R any](records []R, key KeyFunc[R], measures ...Measure[R]) Result {
	return NewAggregator(key, measures...).Add(records...).Result()
}
