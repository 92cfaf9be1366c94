package listview

import (
	"context"
	"errors"
	"sync"
)

// ErrStale is returned by Load when a newer load was issued before this one
// finished. The caller should drop the result; the newer load owns the state.
var ErrStale = errors.New("stale load superseded by a newer one")

// Fetcher retrieves the full record set for a list page.
type Fetcher[T Record] func(ctx context.Context) ([]T, error)

// Session owns the record set behind one list page. Every Load carries a
// monotonic generation and a completion that no longer matches the latest
// generation is discarded, so a slow fetch can never overwrite a newer one.
type Session[T Record] struct {
	mu      sync.Mutex
	fetch   Fetcher[T]
	gen     uint64
	records []T
	loadErr error
}

func NewSession[T Record](fetch Fetcher[T]) *Session[T] {
	return &Session[T]{fetch: fetch}
}

// Load fetches the record set. On failure the previous records are cleared so
// the view degrades to an empty page instead of showing stale rows.
func (s *Session[T]) Load(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	fetch := s.fetch
	s.mu.Unlock()

	records, err := fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return ErrStale
	}
	if err != nil {
		s.records = nil
		s.loadErr = err
		return err
	}
	s.records = records
	s.loadErr = nil
	return nil
}

// View computes the current page from the last successful load.
func (s *Session[T]) View(criteria Criteria, sort Sort, page, pageSize int) (Page[T], error) {
	s.mu.Lock()
	records, err := s.records, s.loadErr
	s.mu.Unlock()

	if err != nil {
		return ComputeView([]T(nil), criteria, sort, page, pageSize), err
	}
	return ComputeView(records, criteria, sort, page, pageSize), nil
}

// Stats aggregates over the full unfiltered record set of the last load.
func (s *Session[T]) Stats(opts StatsOptions[T]) Stats {
	s.mu.Lock()
	records := s.records
	s.mu.Unlock()

	return ComputeStats(records, opts)
}
