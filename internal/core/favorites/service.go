package favorites

import (
	"context"
	"fmt"

	"forecast.app/internal/core/location"
	"forecast.app/internal/core/result"
	"forecast.app/internal/ports"
	"forecast.app/pkg/errors"
)

// Service exposes the favorites store and the search flow that creates favorites
type Service struct {
	store        ports.FavoritesRepository
	resolver     ForwardResolver
	weather      WeatherFetcher
	connectivity ports.ConnectivityChecker
	orchestrator *Orchestrator
	logger       ports.Logger
}

type ServiceDependencies struct {
	Store        ports.FavoritesRepository
	Resolver     ForwardResolver
	Weather      WeatherFetcher
	Connectivity ports.ConnectivityChecker
	Orchestrator *Orchestrator
	Logger       ports.Logger
}

func NewService(deps ServiceDependencies) (*Service, error) {
	if deps.Store == nil {
		return nil, errors.NewValidationError("favorites store is required")
	}
	if deps.Resolver == nil {
		return nil, errors.NewValidationError("location resolver is required")
	}
	if deps.Weather == nil {
		return nil, errors.NewValidationError("weather fetcher is required")
	}
	if deps.Connectivity == nil {
		return nil, errors.NewValidationError("connectivity checker is required")
	}
	if deps.Orchestrator == nil {
		return nil, errors.NewValidationError("orchestrator is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	return &Service{
		store:        deps.Store,
		resolver:     deps.Resolver,
		weather:      deps.Weather,
		connectivity: deps.Connectivity,
		orchestrator: deps.Orchestrator,
		logger:       deps.Logger,
	}, nil
}

// List returns all favorites, most recently added first
func (s *Service) List(ctx context.Context) ([]Favorite, error) {
	rows, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	favs := make([]Favorite, 0, len(rows))
	for _, row := range rows {
		favs = append(favs, fromData(row))
	}
	return favs, nil
}

// Get returns one favorite
func (s *Service) Get(ctx context.Context, id uint) (Favorite, error) {
	row, err := s.store.FindByID(ctx, id)
	if err != nil {
		return Favorite{}, err
	}
	return fromData(row), nil
}

// Add stores a favorite without a snapshot
func (s *Service) Add(ctx context.Context, displayName string, coord location.Coordinate) (Favorite, error) {
	return s.insert(ctx, Favorite{DisplayName: displayName, Coordinate: coord})
}

// Delete removes a favorite and cancels its in-flight refreshes
func (s *Service) Delete(ctx context.Context, id uint) error {
	s.orchestrator.Forget(id)

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Favorite deleted", ports.F("favorite_id", id))
	return nil
}

// Search resolves placeName, fetches its current weather and, on success,
// saves it as a favorite carrying the fetched snapshot. Nothing remote is
// called while offline.
func (s *Service) Search(ctx context.Context, placeName string) result.Envelope[Favorite] {
	name := cleanName(placeName)
	if name == "" {
		return result.Failure[Favorite](errors.NewValidationError("place name cannot be empty"))
	}

	if !s.connectivity.IsReachable(ctx) {
		s.logger.Info("Search skipped while offline", ports.F("place", name))
		return result.Failure[Favorite](errors.NewNetworkError("no internet connection", nil))
	}

	coord, ok := s.resolver.ResolveForward(ctx, name)
	if !ok {
		return result.Failure[Favorite](errors.NewUnknownPlaceError(fmt.Sprintf("no location found for %q", name)))
	}

	env := s.weather.FetchCurrent(ctx, coord)
	snapshot, ok := env.Value()
	if !ok {
		return result.Failure[Favorite](env.Err())
	}

	fav, err := s.insert(ctx, Favorite{DisplayName: name, Coordinate: coord, Snapshot: &snapshot})
	if err != nil {
		return result.Failure[Favorite](err)
	}
	return result.Success(fav)
}

func (s *Service) insert(ctx context.Context, fav Favorite) (Favorite, error) {
	fav.DisplayName = cleanName(fav.DisplayName)
	if fav.DisplayName == "" {
		return Favorite{}, errors.NewValidationError("display name cannot be empty")
	}
	if err := fav.Coordinate.Validate(); err != nil {
		return Favorite{}, err
	}

	data := toData(fav)
	if err := s.store.Insert(ctx, data); err != nil {
		return Favorite{}, err
	}

	s.logger.Info("Favorite added",
		ports.F("favorite_id", data.ID),
		ports.F("name", data.DisplayName),
		ports.F("coordinate", fav.Coordinate.String()))

	fav.ID = data.ID
	fav.CreatedAt = data.CreatedAt
	return fav, nil
}
