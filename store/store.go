// Package store persists trainer checkpoints to sqlite via gorm,
// grounded on the gorm.Open/AutoMigrate/Create/Where shape read from
// the pack's dx-service table runtime (gorm.DB field, db.Create,
// gorm.ErrRecordNotFound), adapted from that game-table persistence
// layer to spec.md §4.7's checkpoint record stream.
package store

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"holdem-engine/blueprint"
)

// CheckpointRow is the gorm model backing one trainer checkpoint.
type CheckpointRow struct {
	ID             uint `gorm:"primaryKey"`
	CreatedAt      time.Time
	Iteration      int `gorm:"index"`
	InfosetCount   int
	ThroughputPerS float64
	MemoryBytes    int64
	Drift          float64
	EvalAggregate  float64
	EvalByProfile  string // JSON-encoded map[string]float64
}

// Store wraps a gorm.DB opened against a sqlite checkpoint database.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if absent) the sqlite database at path and
// migrates the checkpoint table.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&CheckpointRow{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// SaveCheckpoint appends one checkpoint record, per spec.md §4.7's
// append-only checkpoint stream.
func (s *Store) SaveCheckpoint(c blueprint.CheckpointRecord) error {
	evalJSON, err := json.Marshal(c.EvalPerProfile)
	if err != nil {
		return err
	}
	row := CheckpointRow{
		Iteration:      c.Iteration,
		InfosetCount:   c.InfosetCount,
		ThroughputPerS: c.ThroughputPerS,
		MemoryBytes:    c.MemoryBytes,
		Drift:          c.Drift,
		EvalAggregate:  c.EvalAggregate,
		EvalByProfile:  string(evalJSON),
	}
	return s.db.Create(&row).Error
}

// Latest returns the most recent checkpoint, or ok=false if none exist.
func (s *Store) Latest() (blueprint.CheckpointRecord, bool, error) {
	var row CheckpointRow
	err := s.db.Order("iteration desc").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return blueprint.CheckpointRecord{}, false, nil
	}
	if err != nil {
		return blueprint.CheckpointRecord{}, false, err
	}
	rec, err := rowToRecord(row)
	return rec, true, err
}

// List returns every checkpoint ordered by iteration.
func (s *Store) List() ([]blueprint.CheckpointRecord, error) {
	var rows []CheckpointRow
	if err := s.db.Order("iteration asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]blueprint.CheckpointRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := rowToRecord(row)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func rowToRecord(row CheckpointRow) (blueprint.CheckpointRecord, error) {
	var perProfile map[string]float64
	if err := json.Unmarshal([]byte(row.EvalByProfile), &perProfile); err != nil {
		return blueprint.CheckpointRecord{}, err
	}
	return blueprint.CheckpointRecord{
		Iteration:      row.Iteration,
		InfosetCount:   row.InfosetCount,
		ThroughputPerS: row.ThroughputPerS,
		MemoryBytes:    row.MemoryBytes,
		Drift:          row.Drift,
		EvalPerProfile: perProfile,
		EvalAggregate:  row.EvalAggregate,
	}, nil
}

// Close releases the underlying sqlite connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
