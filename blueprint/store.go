package blueprint

import (
	"encoding/json"
	"os"
	"sync"

	"holdem-engine/holdem"
)

// Store is a read-mostly blueprint prior table: built once by Load,
// safe to share across sessions per spec.md §5 ("Blueprint prior table:
// read-only after load; safe to share"). The mutex guards Load
// replacing the table while readers look it up.
type Store struct {
	mu   sync.RWMutex
	data StrategyFile
}

// NewStore returns an empty store; callers typically follow with Load.
func NewStore() *Store {
	return &Store{data: StrategyFile{Policy: map[string][holdem.NumActions]float64{}}}
}

// Load reads a strategy file from path and replaces the store's
// contents, mirroring the teacher's MemoryBuffer.Load (os.Open +
// json.NewDecoder).
func (s *Store) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var sf StrategyFile
	if err := json.NewDecoder(f).Decode(&sf); err != nil {
		return err
	}
	if sf.Policy == nil {
		sf.Policy = map[string][holdem.NumActions]float64{}
	}

	s.mu.Lock()
	s.data = sf
	s.mu.Unlock()
	return nil
}

// Save writes the strategy file to path, rounding probabilities to 8
// decimals first, mirroring the teacher's MemoryBuffer.Save (os.Create
// + json.NewEncoder).
func Save(path string, sf StrategyFile) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rounded := sf.Rounded()
	return json.NewEncoder(f).Encode(rounded)
}

// Lookup returns the probability vector for key and whether it was
// present. A missing key is spec.md §7's MissingPrior condition — the
// caller falls back to EV-only scoring silently.
func (s *Store) Lookup(key string) ([holdem.NumActions]float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data.Policy[key]
	return v, ok
}

// Meta returns the loaded strategy file's meta block.
func (s *Store) Meta() Meta {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Meta
}

// Len reports how many infoset keys are loaded.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data.Policy)
}
