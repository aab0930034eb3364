package cities

import (
	"context"
	"errors"
	"slices"
	"testing"
)

type stubProvider struct {
	records []Record
	err     error
	calls   int
	// before runs inside FetchCities, ahead of returning.
	before func()
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) FetchCities(ctx context.Context) ([]Record, error) {
	p.calls++
	if p.before != nil {
		p.before()
	}
	return p.records, p.err
}

func TestViewModelScenario(t *testing.T) {
	vm := NewViewModel(nil)
	vm.Load(sampleRecords())

	vm.SetSearchTerm("pr")
	if got, want := names(vm.Projection().Records), []string{"prague", "Perth"}; !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	vm.SetTimezoneFilter("Europe/Prague")
	if got, want := names(vm.Projection().Records), []string{"prague"}; !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	vm.ClearTimezoneFilter()
	if got := vm.Projection().Records; len(got) != 2 {
		t.Fatalf("expected 2 records after clearing timezone, got %d", len(got))
	}
}

func TestViewModelSortSequence(t *testing.T) {
	vm := NewViewModel(nil)
	vm.Load(sampleRecords())

	vm.SetSort(SortName)
	if got, want := names(vm.Projection().Records), []string{"Paris", "Perth", "prague"}; !slices.Equal(got, want) {
		t.Fatalf("name asc: expected %v, got %v", want, got)
	}

	vm.SetSort(SortName)
	if got, want := names(vm.Projection().Records), []string{"prague", "Perth", "Paris"}; !slices.Equal(got, want) {
		t.Fatalf("name desc: expected %v, got %v", want, got)
	}

	vm.SetSort(SortTimezone)
	state := vm.State()
	if state.SortKey() != SortTimezone || state.Direction() != Ascending {
		t.Fatalf("expected timezone asc, got %s %s", state.SortKey(), state.Direction())
	}
	if got, want := names(vm.Projection().Records), []string{"Perth", "Paris", "prague"}; !slices.Equal(got, want) {
		t.Fatalf("timezone asc: expected %v, got %v", want, got)
	}
}

func TestViewModelStatuses(t *testing.T) {
	vm := NewViewModel(nil)

	if p := vm.Projection(); p.Status != StatusLoading || len(p.Records) != 0 {
		t.Fatalf("expected loading before load, got %+v", p)
	}

	vm.Load(nil)
	if p := vm.Projection(); p.Status != StatusNoData {
		t.Fatalf("expected no_data for empty load, got %s", p.Status)
	}

	vm.Load(sampleRecords())
	if p := vm.Projection(); p.Status != StatusReady {
		t.Fatalf("expected ready, got %s", p.Status)
	}

	vm.SetSearchTerm("zzz")
	if p := vm.Projection(); p.Status != StatusNoData {
		t.Fatalf("expected no_data when filters match nothing, got %s", p.Status)
	}
}

func TestViewModelFiltersSurviveLoad(t *testing.T) {
	vm := NewViewModel(nil)
	vm.SetSearchTerm("per")
	vm.Load(sampleRecords())

	if got, want := names(vm.Projection().Records), []string{"Perth"}; !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestViewModelRefresh(t *testing.T) {
	p := &stubProvider{records: sampleRecords()}
	vm := NewViewModel(p)

	if err := vm.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !vm.Loaded() {
		t.Fatalf("expected view-model to be loaded")
	}
	if got := vm.TimezoneOptions(); len(got) != 3 {
		t.Fatalf("expected 3 timezone options, got %v", got)
	}
}

func TestViewModelRefreshFailureLeavesUnloaded(t *testing.T) {
	p := &stubProvider{err: errors.New("boom")}
	vm := NewViewModel(p)

	if err := vm.Refresh(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if vm.Loaded() {
		t.Fatalf("failed fetch must not load the view-model")
	}
	if st := vm.Projection().Status; st != StatusLoading {
		t.Fatalf("expected loading status, got %s", st)
	}
}

func TestViewModelRefreshDiscardsStaleCompletion(t *testing.T) {
	vm := NewViewModel(nil)

	newer := &stubProvider{records: sampleRecords()[:1]}
	stale := &stubProvider{records: sampleRecords()}
	// A newer refresh starts and completes while the first one is in flight.
	stale.before = func() {
		vm.provider = newer
		if err := vm.Refresh(context.Background()); err != nil {
			t.Errorf("newer refresh: unexpected error: %v", err)
		}
	}
	vm.provider = stale

	if err := vm.Refresh(context.Background()); !errors.Is(err, ErrSuperseded) {
		t.Fatalf("expected ErrSuperseded, got %v", err)
	}
	if got := names(vm.Projection().Records); !slices.Equal(got, []string{"Paris"}) {
		t.Fatalf("expected newer result to win, got %v", got)
	}
}

func TestProjectionReturnsCopy(t *testing.T) {
	vm := NewViewModel(nil)
	vm.Load(sampleRecords())

	p := vm.Projection()
	p.Records[0].Name = "Modified"

	if vm.Projection().Records[0].Name == "Modified" {
		t.Fatalf("Projection should return a copy")
	}
}

func TestLoadSupersedesRefreshInFlight(t *testing.T) {
	vm := NewViewModel(nil)

	p := &stubProvider{records: sampleRecords()}
	p.before = func() { vm.Load(sampleRecords()[:1]) }
	vm.provider = p

	if err := vm.Refresh(context.Background()); !errors.Is(err, ErrSuperseded) {
		t.Fatalf("expected ErrSuperseded, got %v", err)
	}
	if got := names(vm.Projection().Records); !slices.Equal(got, []string{"Paris"}) {
		t.Fatalf("expected loaded records to win, got %v", got)
	}
}

func TestRefreshDoesNotAliasProviderSlice(t *testing.T) {
	p := &stubProvider{records: sampleRecords()}
	vm := NewViewModel(p)
	if err := vm.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p.records[0].Name = "Modified"

	if got := names(vm.Projection().Records); slices.Contains(got, "Modified") {
		t.Fatalf("view-model should hold its own copy, got %v", got)
	}
}
