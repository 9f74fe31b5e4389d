package dataset

import "sync/atomic"

// Source hands out the dataset a tool call should use. Callers read the
// snapshot once per call.
type Source interface {
	Snapshot() *Dataset
}

// Store publishes datasets atomically. Readers never observe a partially
// replaced dataset.
type Store struct {
	current atomic.Pointer[Dataset]
}

// NewStore returns a store publishing d.
func NewStore(d *Dataset) *Store {
	s := &Store{}
	s.current.Store(d)
	return s
}

func (s *Store) Snapshot() *Dataset {
	return s.current.Load()
}

// Swap publishes d and returns the dataset it replaced.
func (s *Store) Swap(d *Dataset) *Dataset {
	return s.current.Swap(d)
}

// Static is a Source that always returns the same dataset.
type Static struct {
	D *Dataset
}

func (s Static) Snapshot() *Dataset {
	return s.D
}
