package favorites

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"forecast.app/internal/core/result"
	"forecast.app/internal/core/weather"
	"forecast.app/internal/ports"
	"forecast.app/pkg/errors"
)

const defaultMaxConcurrentFetches = 4

// Orchestrator refreshes the snapshots of favorites. Each refresh runs in a
// View; canceling a view or a single favorite guarantees the canceled task
// never writes to the store.
type Orchestrator struct {
	store   ports.FavoritesRepository
	weather WeatherFetcher
	logger  ports.Logger
	metrics ports.DataLayerMetrics
	sem     *semaphore.Weighted

	mu    sync.Mutex
	views map[*View]struct{}
}

type OrchestratorDependencies struct {
	Store   ports.FavoritesRepository
	Weather WeatherFetcher
	Config  ports.ConfigProvider
	Logger  ports.Logger
	Metrics ports.DataLayerMetrics
}

func NewOrchestrator(deps OrchestratorDependencies) (*Orchestrator, error) {
	if deps.Store == nil {
		return nil, errors.NewValidationError("favorites store is required")
	}
	if deps.Weather == nil {
		return nil, errors.NewValidationError("weather fetcher is required")
	}
	if deps.Config == nil {
		return nil, errors.NewValidationError("config is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}

	limit := deps.Config.GetFavoritesConfig().MaxConcurrentFetches
	if limit < 1 {
		limit = defaultMaxConcurrentFetches
	}

	return &Orchestrator{
		store:   deps.Store,
		weather: deps.Weather,
		logger:  deps.Logger,
		metrics: deps.Metrics,
		sem:     semaphore.NewWeighted(int64(limit)),
		views:   make(map[*View]struct{}),
	}, nil
}

// Open starts a view bound to ctx. Canceling ctx has the same effect as Close.
func (o *Orchestrator) Open(ctx context.Context) *View {
	viewCtx, cancel := context.WithCancel(ctx)
	v := &View{
		orchestrator: o,
		ctx:          viewCtx,
		cancel:       cancel,
		tasks:        make(map[uint]*task),
	}

	o.mu.Lock()
	o.views[v] = struct{}{}
	o.mu.Unlock()

	return v
}

// Forget cancels the tasks of favorite id in every open view
func (o *Orchestrator) Forget(id uint) {
	o.mu.Lock()
	views := make([]*View, 0, len(o.views))
	for v := range o.views {
		views = append(views, v)
	}
	o.mu.Unlock()

	for _, v := range views {
		v.Cancel(id)
	}
}

// RefreshAll refreshes every stored favorite in a single view and returns
// the favorites, most recent first, with the outcome of each refresh.
func (o *Orchestrator) RefreshAll(ctx context.Context) ([]Entry, error) {
	rows, err := o.store.List(ctx)
	if err != nil {
		return nil, err
	}

	favs := make([]Favorite, 0, len(rows))
	for _, row := range rows {
		favs = append(favs, fromData(row))
	}

	v := o.Open(ctx)
	defer v.Close()

	v.Refresh(favs)
	v.Wait()

	entries := make([]Entry, 0, len(favs))
	for _, fav := range favs {
		env, _ := v.Result(fav.ID)
		if snapshot, ok := env.Value(); ok {
			fav.Snapshot = &snapshot
		}
		entries = append(entries, Entry{Favorite: fav, Weather: env})
	}
	return entries, nil
}

func (o *Orchestrator) detach(v *View) {
	o.mu.Lock()
	delete(o.views, v)
	o.mu.Unlock()
}

type task struct {
	cancel   context.CancelFunc
	cell     *result.Cell[weather.Snapshot]
	running  bool
	canceled bool
}

// View is one presentation lifetime: an HTTP request, a CLI invocation or a
// scheduled refresh. It owns one task and one result cell per favorite.
type View struct {
	orchestrator *Orchestrator
	ctx          context.Context
	cancel       context.CancelFunc

	mu     sync.Mutex
	tasks  map[uint]*task
	closed bool
	wg     sync.WaitGroup
}

// Refresh starts a fetch for each favorite that has no fetch in flight in this view
func (v *View) Refresh(favs []Favorite) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed || v.ctx.Err() != nil {
		return
	}

	for _, fav := range favs {
		t, ok := v.tasks[fav.ID]
		if ok && t.running {
			continue
		}
		if !ok {
			t = &task{cell: result.NewCell[weather.Snapshot]()}
			v.tasks[fav.ID] = t
		}

		taskCtx, cancel := context.WithCancel(v.ctx)
		t.cancel = cancel
		t.running = true
		t.canceled = false
		tok := t.cell.Begin()

		v.wg.Add(1)
		go v.run(taskCtx, t, tok, fav)
	}
}

func (v *View) run(ctx context.Context, t *task, tok result.Token, fav Favorite) {
	o := v.orchestrator
	defer v.wg.Done()
	defer v.finish(t)

	if err := o.sem.Acquire(ctx, 1); err != nil {
		o.metrics.RecordFavoriteRefresh(ports.OutcomeCanceled)
		return
	}
	if ctx.Err() != nil {
		o.sem.Release(1)
		o.metrics.RecordFavoriteRefresh(ports.OutcomeCanceled)
		return
	}
	env := o.weather.FetchCurrent(ctx, fav.Coordinate)
	o.sem.Release(1)

	snapshot, ok := env.Value()
	if !ok {
		if ctx.Err() != nil {
			o.metrics.RecordFavoriteRefresh(ports.OutcomeCanceled)
			return
		}
		o.metrics.RecordFavoriteRefresh(env.Kind().String())
		o.logger.Debug("Favorite refresh failed",
			ports.F("favorite_id", fav.ID),
			ports.F("kind", env.Kind().String()))
		t.cell.Settle(tok, env)
		return
	}

	attempted, err := v.store(ctx, t, fav.ID, snapshot)
	switch {
	case !attempted:
		o.metrics.RecordFavoriteRefresh(ports.OutcomeCanceled)
		return
	case err != nil:
		// the fetched snapshot is still shown; only the write is reported
		o.metrics.RecordFavoriteRefresh(errors.KindOf(err).String())
	default:
		o.metrics.RecordFavoriteRefresh(ports.OutcomeSuccess)
	}
	t.cell.Settle(tok, env)
}

// store writes the snapshot unless the task was canceled. The cancellation
// check and the write happen under the view lock, so Cancel and Close
// returning means no further write from this view. attempted is false when
// the task was canceled; err is the store's error otherwise.
func (v *View) store(ctx context.Context, t *task, id uint, snapshot weather.Snapshot) (attempted bool, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if t.canceled || ctx.Err() != nil {
		return false, nil
	}

	o := v.orchestrator
	if err := o.store.UpdateSnapshot(context.WithoutCancel(ctx), id, snapshotData(snapshot)); err != nil {
		if errors.IsNotFoundError(err) {
			o.logger.Debug("Favorite removed before refresh completed", ports.F("favorite_id", id))
		} else {
			o.logger.Warn("Failed to store favorite snapshot", ports.F("favorite_id", id), ports.F("error", err))
		}
		return true, err
	}
	return true, nil
}

func (v *View) finish(t *task) {
	v.mu.Lock()
	t.running = false
	v.mu.Unlock()
}

// Cancel stops the fetch for favorite id. A canceled fetch never reaches the store.
func (v *View) Cancel(id uint) {
	v.mu.Lock()
	defer v.mu.Unlock()

	t, ok := v.tasks[id]
	if !ok {
		return
	}
	t.canceled = true
	if t.cancel != nil {
		t.cancel()
	}
}

// Close cancels every task of the view and detaches it from the orchestrator
func (v *View) Close() {
	v.mu.Lock()
	v.closed = true
	for _, t := range v.tasks {
		t.canceled = true
	}
	v.cancel()
	v.mu.Unlock()

	v.orchestrator.detach(v)
}

// Wait blocks until every started task has finished
func (v *View) Wait() {
	v.wg.Wait()
}

// Result returns the envelope for favorite id, and false when this view
// never refreshed it.
func (v *View) Result(id uint) (result.Envelope[weather.Snapshot], bool) {
	v.mu.Lock()
	t, ok := v.tasks[id]
	v.mu.Unlock()

	if !ok {
		return result.Loading[weather.Snapshot](), false
	}
	return t.cell.Get(), true
}

// Results returns the current envelope of every favorite refreshed in this view
func (v *View) Results() map[uint]result.Envelope[weather.Snapshot] {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := make(map[uint]result.Envelope[weather.Snapshot], len(v.tasks))
	for id, t := range v.tasks {
		out[id] = t.cell.Get()
	}
	return out
}
