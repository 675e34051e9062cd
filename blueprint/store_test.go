package blueprint

import (
	"path/filepath"
	"testing"

	"holdem-engine/holdem"
)

func TestSaveLoadRoundTripsPolicy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "strategy.json")

	var vec [holdem.NumActions]float64
	vec[holdem.Fold] = 0.1
	vec[holdem.Call] = 0.3
	vec[holdem.RaiseHalfPot] = 0.6

	sf := StrategyFile{
		Meta: Meta{Iterations: 1000, Seed: 42, AbstractionVersion: "v1", StoppingReason: "target_iterations_reached"},
		Policy: map[string][holdem.NumActions]float64{
			"flop|IP|tex=0000|spr=2_4|unopened|r=0|hs=6": vec,
		},
	}
	if err := Save(path, sf); err != nil {
		t.Fatalf("Save: %v", err)
	}

	store := NewStore()
	if err := store.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	got, ok := store.Lookup("flop|IP|tex=0000|spr=2_4|unopened|r=0|hs=6")
	if !ok {
		t.Fatalf("expected key to round-trip")
	}
	for i, want := range vec {
		if diff := got[i] - want; diff > 1e-7 || diff < -1e-7 {
			t.Errorf("action %d: got %v, want %v", i, got[i], want)
		}
	}
	if store.Meta().Seed != 42 {
		t.Fatalf("meta did not round-trip: %+v", store.Meta())
	}
}

func TestLookupMissingKeyReportsFalse(t *testing.T) {
	store := NewStore()
	_, ok := store.Lookup("nonexistent")
	if ok {
		t.Fatalf("expected missing key to report false")
	}
}

func TestLoadNonexistentFileReturnsError(t *testing.T) {
	store := NewStore()
	if err := store.Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected an error loading a nonexistent file")
	}
}
