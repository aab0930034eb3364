package cities

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// ListState is the immutable filter and sort state of the city list.
// Transitions return a new value; the receiver is never modified.
type ListState struct {
	search      string
	timezone    string
	hasTimezone bool
	sortKey     SortKey
	direction   Direction
}

// WithSearch returns a copy filtering on a case-folded substring of the name.
func (s ListState) WithSearch(term string) ListState {
	s.search = fold(term)
	return s
}

// WithTimezone returns a copy restricted to records in exactly tz.
func (s ListState) WithTimezone(tz string) ListState {
	s.timezone = tz
	s.hasTimezone = true
	return s
}

// WithoutTimezone returns a copy with no timezone constraint.
func (s ListState) WithoutTimezone() ListState {
	s.timezone = ""
	s.hasTimezone = false
	return s
}

// WithSort toggles ordering on key: the same key flips the direction,
// a different key starts ascending.
func (s ListState) WithSort(key SortKey) ListState {
	if key == SortNone {
		s.sortKey = SortNone
		s.direction = ""
		return s
	}
	if s.sortKey == key {
		s.direction = s.direction.Flip()
		return s
	}
	s.sortKey = key
	s.direction = Ascending
	return s
}

func (s ListState) Search() string { return s.search }

// Timezone returns the active timezone filter and whether one is set.
func (s ListState) Timezone() (string, bool) { return s.timezone, s.hasTimezone }

func (s ListState) SortKey() SortKey { return s.sortKey }

func (s ListState) Direction() Direction { return s.direction }

// Matches reports whether r passes both the search and timezone filters.
func (s ListState) Matches(r Record) bool {
	if s.hasTimezone && r.Timezone != s.timezone {
		return false
	}
	if s.search == "" {
		return true
	}
	return strings.Contains(fold(r.Name), s.search)
}

// Project filters records and, when a sort key is set, orders them stably.
// The input slice is left untouched.
func (s ListState) Project(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if s.Matches(r) {
			out = append(out, r)
		}
	}

	if s.sortKey == SortNone {
		return out
	}

	key, desc := s.sortKey, s.direction == Descending
	slices.SortStableFunc(out, func(a, b Record) int {
		c := strings.Compare(key.field(a), key.field(b))
		if desc {
			return -c
		}
		return c
	})
	return out
}

// TimezoneOptions returns the distinct timezones of records in first-seen order.
func TimezoneOptions(records []Record) []string {
	seen := make(map[string]struct{}, len(records))
	var opts []string
	for _, r := range records {
		if _, ok := seen[r.Timezone]; ok {
			continue
		}
		seen[r.Timezone] = struct{}{}
		opts = append(opts, r.Timezone)
	}
	return opts
}

// fold applies Unicode case folding. A Caser keeps state, so one is built per call.
func fold(s string) string {
	return cases.Fold().String(s)
}
