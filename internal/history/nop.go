package history

import "cvforge/internal/model"

// NopStore discards records. Used by generate --dry-run so trial runs
// leave no trace in the history file.
type NopStore struct{}

func NewNopStore() *NopStore { return &NopStore{} }

func (s *NopStore) Append(rec model.GenerationRecord) error { return nil }
func (s *NopStore) List() ([]model.GenerationRecord, error) { return nil, nil }
func (s *NopStore) Clear() error                            { return nil }
