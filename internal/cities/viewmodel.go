package cities

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrSuperseded is returned when a fetch completes after a newer one was started.
var ErrSuperseded = errors.New("cities: fetch superseded by a newer request")

// Status distinguishes why a projection may be empty.
type Status string

const (
	// StatusLoading means no record set has been loaded yet.
	StatusLoading Status = "loading"
	// StatusNoData means records are loaded but nothing passes the filters.
	StatusNoData Status = "no_data"
	StatusReady  Status = "ready"
)

// Projection is the filtered and sorted city list shown to the user.
type Projection struct {
	Status  Status   `json:"status"`
	Records []Record `json:"cities"`
}

// ViewModel holds the full record set of one session and its list state.
// It is safe for concurrent use.
type ViewModel struct {
	provider Provider

	mu         sync.RWMutex
	records    []Record
	loaded     bool
	state      ListState
	projection []Record
	generation uint64
}

// NewViewModel creates an unloaded ViewModel that fetches from provider.
func NewViewModel(provider Provider) *ViewModel {
	return &ViewModel{provider: provider}
}

// Load replaces the record set and recomputes the projection.
// A Refresh still in flight is superseded.
func (vm *ViewModel) Load(records []Record) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.generation++
	vm.records = slices.Clone(records)
	vm.loaded = true
	vm.recompute()
}

// Refresh fetches the record set from the provider and loads it.
// On failure the view-model keeps its previous contents.
func (vm *ViewModel) Refresh(ctx context.Context) error {
	if vm.provider == nil {
		return fmt.Errorf("cities: no provider configured")
	}

	vm.mu.Lock()
	vm.generation++
	gen := vm.generation
	vm.mu.Unlock()

	records, err := vm.provider.FetchCities(ctx)

	vm.mu.Lock()
	defer vm.mu.Unlock()

	if gen != vm.generation {
		return ErrSuperseded
	}
	if err != nil {
		return err
	}

	vm.records = slices.Clone(records)
	vm.loaded = true
	vm.recompute()
	return nil
}

// SetSearchTerm updates the name filter.
func (vm *ViewModel) SetSearchTerm(term string) {
	vm.apply(func(s ListState) ListState { return s.WithSearch(term) })
}

// SetTimezoneFilter restricts the list to one timezone.
func (vm *ViewModel) SetTimezoneFilter(tz string) {
	vm.apply(func(s ListState) ListState { return s.WithTimezone(tz) })
}

// ClearTimezoneFilter removes the timezone restriction.
func (vm *ViewModel) ClearTimezoneFilter() {
	vm.apply(ListState.WithoutTimezone)
}

// SetSort toggles ordering on column.
func (vm *ViewModel) SetSort(column SortKey) {
	vm.apply(func(s ListState) ListState { return s.WithSort(column) })
}

// Projection returns the current list together with its status.
func (vm *ViewModel) Projection() Projection {
	vm.mu.RLock()
	defer vm.mu.RUnlock()

	if !vm.loaded {
		return Projection{Status: StatusLoading}
	}
	p := Projection{Status: StatusReady, Records: slices.Clone(vm.projection)}
	if len(p.Records) == 0 {
		p.Status = StatusNoData
	}
	return p
}

// TimezoneOptions returns the distinct timezones of the loaded record set.
func (vm *ViewModel) TimezoneOptions() []string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return TimezoneOptions(vm.records)
}

// State returns the current filter and sort state.
func (vm *ViewModel) State() ListState {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.state
}

// Loaded reports whether a record set has been loaded.
func (vm *ViewModel) Loaded() bool {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.loaded
}

func (vm *ViewModel) apply(transition func(ListState) ListState) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.state = transition(vm.state)
	vm.recompute()
}

// recompute must be called with mu held for writing.
func (vm *ViewModel) recompute() {
	vm.projection = vm.state.Project(vm.records)
}

