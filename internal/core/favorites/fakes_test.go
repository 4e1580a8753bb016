package favorites

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"forecast.app/internal/core/location"
	"forecast.app/internal/core/result"
	"forecast.app/internal/core/weather"
	"forecast.app/internal/ports"
	"forecast.app/pkg/errors"
)

type memoryStore struct {
	mu      sync.Mutex
	nextID  uint
	rows    map[uint]ports.FavoriteData
	updates map[uint]int

	// updateErr, when set, fails every UpdateSnapshot
	updateErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{rows: map[uint]ports.FavoriteData{}, updates: map[uint]int{}}
}

func (m *memoryStore) List(_ context.Context) ([]*ports.FavoriteData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*ports.FavoriteData, 0, len(m.rows))
	for _, row := range m.rows {
		r := row
		out = append(out, &r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memoryStore) FindByID(_ context.Context, id uint) (*ports.FavoriteData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, errors.NewNotFoundError("favorite not found")
	}
	return &row, nil
}

func (m *memoryStore) Insert(_ context.Context, fav *ports.FavoriteData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	fav.ID = m.nextID
	fav.CreatedAt = time.Now()
	m.rows[fav.ID] = *fav
	return nil
}

func (m *memoryStore) UpdateSnapshot(_ context.Context, id uint, snapshot *ports.SnapshotData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	row, ok := m.rows[id]
	if !ok {
		return errors.NewNotFoundError("favorite not found")
	}
	row.Snapshot = snapshot
	m.rows[id] = row
	m.updates[id]++
	return nil
}

func (m *memoryStore) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return errors.NewNotFoundError("favorite not found")
	}
	delete(m.rows, id)
	return nil
}

func (m *memoryStore) updateCount(id uint) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updates[id]
}

// scriptedWeather answers FetchCurrent from a per-coordinate script and
// optionally blocks until released.
type scriptedWeather struct {
	mu       sync.Mutex
	outcomes map[location.Coordinate]result.Envelope[weather.Snapshot]
	gate     chan struct{}
	calls    int32
	inFlight int32
	peak     int32
}

func newScriptedWeather() *scriptedWeather {
	return &scriptedWeather{outcomes: map[location.Coordinate]result.Envelope[weather.Snapshot]{}}
}

func (w *scriptedWeather) on(c location.Coordinate, env result.Envelope[weather.Snapshot]) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.outcomes[c] = env
}

func (w *scriptedWeather) block() chan struct{} {
	w.gate = make(chan struct{})
	return w.gate
}

func (w *scriptedWeather) FetchCurrent(ctx context.Context, c location.Coordinate) result.Envelope[weather.Snapshot] {
	atomic.AddInt32(&w.calls, 1)
	n := atomic.AddInt32(&w.inFlight, 1)
	defer atomic.AddInt32(&w.inFlight, -1)
	for {
		peak := atomic.LoadInt32(&w.peak)
		if n <= peak || atomic.CompareAndSwapInt32(&w.peak, peak, n) {
			break
		}
	}

	if w.gate != nil {
		select {
		case <-w.gate:
		case <-ctx.Done():
			return result.Failure[weather.Snapshot](errors.NewNetworkError("weather request canceled", ctx.Err()))
		}
	}

	w.mu.Lock()
	env, ok := w.outcomes[c]
	w.mu.Unlock()
	if !ok {
		return result.Failure[weather.Snapshot](errors.NewNetworkError("unscripted coordinate", nil))
	}
	return env
}

func (w *scriptedWeather) peakInFlight() int {
	return int(atomic.LoadInt32(&w.peak))
}

func (w *scriptedWeather) callCount() int {
	return int(atomic.LoadInt32(&w.calls))
}

type staticResolver map[string]location.Coordinate

func (r staticResolver) ResolveForward(_ context.Context, name string) (location.Coordinate, bool) {
	c, ok := r[name]
	return c, ok
}

type staticGate bool

func (g staticGate) IsReachable(context.Context) bool { return bool(g) }
