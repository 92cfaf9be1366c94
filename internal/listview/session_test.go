package listview

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLoadAndView(t *testing.T) {
	session := NewSession(func(ctx context.Context) ([]testRecord, error) {
		return refundFixtures(), nil
	})

	require.NoError(t, session.Load(context.Background()))

	page, err := session.View(Criteria{Status: "APPROVED"}, Sort{Direction: Desc}, 1, 10)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)

	stats := session.Stats(StatsOptions[testRecord]{
		SumStatus: "APPROVED",
		Value:     func(r testRecord) int { return r.points },
	})
	assert.Equal(t, 1000, stats.Sum)
}

func TestSessionDiscardsStaleLoad(t *testing.T) {
	block := make(chan struct{})
	var calls int
	var mu sync.Mutex

	session := NewSession(func(ctx context.Context) ([]testRecord, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()

		if n == 1 {
			<-block
			return []testRecord{{id: "SLOW", status: "PENDING", date: "2024-01-01"}}, nil
		}
		return []testRecord{{id: "FRESH", status: "PENDING", date: "2024-02-01"}}, nil
	})

	var wg sync.WaitGroup
	wg.Add(1)
	var slowErr error
	go func() {
		defer wg.Done()
		slowErr = session.Load(context.Background())
	}()

	// Wait for the slow load to be in flight before issuing the fresh one.
	for {
		mu.Lock()
		started := calls > 0
		mu.Unlock()
		if started {
			break
		}
	}

	require.NoError(t, session.Load(context.Background()))
	close(block)
	wg.Wait()

	assert.ErrorIs(t, slowErr, ErrStale)

	page, err := session.View(Criteria{}, Sort{}, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "FRESH", page.Items[0].id)
}

func TestSessionFailureClearsView(t *testing.T) {
	fail := false
	session := NewSession(func(ctx context.Context) ([]testRecord, error) {
		if fail {
			return nil, errors.New("upstream down")
		}
		return refundFixtures(), nil
	})

	require.NoError(t, session.Load(context.Background()))

	fail = true
	err := session.Load(context.Background())
	require.Error(t, err)

	// Previous records are gone; the view degrades to an empty page.
	page, viewErr := session.View(Criteria{}, Sort{}, 1, 10)
	assert.Error(t, viewErr)
	assert.Empty(t, page.Items)

	// A later successful load recovers.
	fail = false
	require.NoError(t, session.Load(context.Background()))
	page, viewErr = session.View(Criteria{}, Sort{}, 1, 10)
	require.NoError(t, viewErr)
	assert.Len(t, page.Items, 5)
}
