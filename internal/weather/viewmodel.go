package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
)

// ErrSuperseded is returned when a fetch completes after a newer one was started.
// Its result has been discarded.
var ErrSuperseded = errors.New("weather: fetch superseded by a newer request")

// Status is the state of the weather view.
type Status string

const (
	StatusLoading Status = "loading"
	StatusFailed  Status = "failed"
	StatusReady   Status = "ready"
)

// ViewModel holds the selected city, unit system and last observation of one session.
// Every SetCity and ToggleUnit starts a new request generation; completions from
// older generations are dropped, so the most recently started request wins.
type ViewModel struct {
	provider Provider

	mu         sync.RWMutex
	city       string
	units      UnitSystem
	generation uint64
	last       *Observation
	lastCity   string
	lastErr    error
}

// NewViewModel creates a ViewModel in metric units with no city selected.
func NewViewModel(provider Provider) *ViewModel {
	return &ViewModel{
		provider: provider,
		units:    Metric,
	}
}

// SetCity selects a city and fetches its weather in the current unit system.
func (vm *ViewModel) SetCity(ctx context.Context, name string) error {
	vm.mu.Lock()
	vm.city = name
	units := vm.units
	vm.mu.Unlock()

	return vm.fetch(ctx, name, units)
}

// Select sets the city and unit system together and fetches once.
func (vm *ViewModel) Select(ctx context.Context, name string, units UnitSystem) error {
	vm.mu.Lock()
	vm.city = name
	vm.units = units
	vm.mu.Unlock()

	return vm.fetch(ctx, name, units)
}

// ToggleUnit flips the unit system and re-fetches the selected city.
// With no city selected only the unit system changes.
func (vm *ViewModel) ToggleUnit(ctx context.Context) error {
	vm.mu.Lock()
	vm.units = vm.units.Toggle()
	city, units := vm.city, vm.units
	vm.mu.Unlock()

	if city == "" {
		return nil
	}
	return vm.fetch(ctx, city, units)
}

// Display returns the display fields of the last observation. ok is false while
// no observation exists for the current city and unit system.
func (vm *ViewModel) Display() (d Display, ok bool) {
	vm.mu.RLock()
	defer vm.mu.RUnlock()

	if !vm.current() {
		return Display{}, false
	}
	return NewDisplay(*vm.last), true
}

// Status reports whether the view can render, is waiting, or its last fetch failed.
func (vm *ViewModel) Status() Status {
	vm.mu.RLock()
	defer vm.mu.RUnlock()

	switch {
	case vm.current():
		return StatusReady
	case vm.lastErr != nil:
		return StatusFailed
	default:
		return StatusLoading
	}
}

func (vm *ViewModel) City() string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.city
}

func (vm *ViewModel) Units() UnitSystem {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.units
}

func (vm *ViewModel) fetch(ctx context.Context, city string, units UnitSystem) error {
	if vm.provider == nil {
		return fmt.Errorf("weather: no provider configured")
	}

	vm.mu.Lock()
	vm.generation++
	gen := vm.generation
	vm.lastErr = nil
	vm.mu.Unlock()

	obs, err := vm.provider.FetchWeather(ctx, city, units)

	vm.mu.Lock()
	defer vm.mu.Unlock()

	if gen != vm.generation {
		log.Printf("DEBUG: dropping stale weather result for %s (%s)", city, units)
		return ErrSuperseded
	}
	if err != nil {
		vm.lastErr = err
		return err
	}

	obs.UnitSystem = units
	vm.last = &obs
	vm.lastCity = city
	return nil
}

// current must be called with mu held.
func (vm *ViewModel) current() bool {
	return vm.last != nil && vm.lastCity == vm.city && vm.last.UnitSystem == vm.units
}
