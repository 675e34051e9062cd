package store

import (
	"path/filepath"
	"testing"

	"holdem-engine/blueprint"
)

func TestSaveCheckpointRoundTripsThroughLatest(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "checkpoints.db")
	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	rec := blueprint.CheckpointRecord{
		Iteration:      10000,
		InfosetCount:   4321,
		ThroughputPerS: 512.5,
		MemoryBytes:    1 << 20,
		Drift:          0.031,
		EvalPerProfile: map[string]float64{"nit": 0.12, "aggro": -0.05},
		EvalAggregate:  0.035,
	}
	if err := s.SaveCheckpoint(rec); err != nil {
		t.Fatalf("SaveCheckpoint: %v", err)
	}

	got, ok, err := s.Latest()
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if !ok {
		t.Fatalf("expected a checkpoint to exist")
	}
	if got.Iteration != rec.Iteration || got.InfosetCount != rec.InfosetCount {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, rec)
	}
	if got.EvalPerProfile["nit"] != 0.12 {
		t.Fatalf("EvalPerProfile not preserved: %+v", got.EvalPerProfile)
	}
}

func TestLatestReportsFalseOnEmptyStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "checkpoints.db")
	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	_, ok, err := s.Latest()
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if ok {
		t.Fatalf("expected no checkpoint in a freshly opened store")
	}
}

func TestListOrdersByIteration(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "checkpoints.db")
	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	for _, iter := range []int{300, 100, 200} {
		rec := blueprint.CheckpointRecord{Iteration: iter, EvalPerProfile: map[string]float64{}}
		if err := s.SaveCheckpoint(rec); err != nil {
			t.Fatalf("SaveCheckpoint: %v", err)
		}
	}

	list, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 checkpoints, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i].Iteration < list[i-1].Iteration {
			t.Fatalf("checkpoints not sorted ascending by iteration: %+v", list)
		}
	}
}
