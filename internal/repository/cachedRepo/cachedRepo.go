package cachedRepo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/chenders/deadonfilm/internal/domain"
	"github.com/chenders/deadonfilm/pkg/prometheus"
)

type MediaRepository interface {
	SearchActors(ctx context.Context, query string) ([]domain.Actor, error)
	GetFilmography(ctx context.Context, actorID int) ([]domain.FilmographyEntry, error)
	GetMovieCast(ctx context.Context, movieID int) ([]int, error)
	GetActorDetail(ctx context.Context, actorID int) (domain.ActorDetail, error)
	GetMovieByID(ctx context.Context, movieID int) (domain.Movie, error)
}

type CacheRepository interface {
	GetMovieByID(ctx context.Context, movieID int) (domain.Movie, error)
	SetMovie(ctx context.Context, movie domain.Movie) error
	GetFilmography(ctx context.Context, actorID int) ([]domain.FilmographyEntry, error)
	SetFilmography(ctx context.Context, actorID int, films []domain.FilmographyEntry) error
}

// CachedRepo decorates a MediaRepository with a shared cache for the two
// provider calls worth keeping across sessions: movie details and raw
// filmographies. Cast lists are always fetched fresh.
type CachedRepo struct {
	repo  MediaRepository
	cache CacheRepository
	log   *slog.Logger
}

func NewCachedRepo(repo MediaRepository, cache CacheRepository, log *slog.Logger) *CachedRepo {

	return &CachedRepo{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func (r *CachedRepo) SearchActors(ctx context.Context, query string) ([]domain.Actor, error) {
	return r.repo.SearchActors(ctx, query)
}
func (r *CachedRepo) GetMovieCast(ctx context.Context, movieID int) ([]int, error) {
	return r.repo.GetMovieCast(ctx, movieID)
}
func (r *CachedRepo) GetActorDetail(ctx context.Context, actorID int) (domain.ActorDetail, error) {
	return r.repo.GetActorDetail(ctx, actorID)
}

func (r *CachedRepo) GetMovieByID(ctx context.Context, movieID int) (domain.Movie, error) {
	const op = "cachedRepo.GetMovieByID"
	movie, err := r.cache.GetMovieByID(ctx, movieID)
	if err == nil {
		prometheus.CacheOperations.WithLabelValues("hit").Inc()
		return movie, nil
	}
	if errors.Is(err, domain.ErrRecordNotFound) {
		prometheus.CacheOperations.WithLabelValues("miss").Inc()
	} else {
		prometheus.CacheOperations.WithLabelValues("error").Inc()
		r.log.WarnContext(ctx, "cache lookup failed",
			"movieID", movieID,
			"error", err,
		)
	}
	movie, err = r.repo.GetMovieByID(ctx, movieID)
	if err != nil {
		return domain.Movie{}, fmt.Errorf("%s: %w", op, err)
	}

	// Write-back must survive the request context being cancelled.
	go func() {
		writeCtx := context.WithoutCancel(ctx)
		if err := r.cache.SetMovie(writeCtx, movie); err != nil {
			r.log.ErrorContext(writeCtx, "failed to cache movie",
				"movieID", movieID,
				"error", err,
			)
		}
	}()
	return movie, nil
}

func (r *CachedRepo) GetFilmography(ctx context.Context, actorID int) ([]domain.FilmographyEntry, error) {
	const op = "cachedRepo.GetFilmography"
	films, err := r.cache.GetFilmography(ctx, actorID)
	if err == nil {
		prometheus.CacheOperations.WithLabelValues("hit").Inc()
		return films, nil
	}
	if errors.Is(err, domain.ErrRecordNotFound) {
		prometheus.CacheOperations.WithLabelValues("miss").Inc()
	} else {
		prometheus.CacheOperations.WithLabelValues("error").Inc()
		r.log.WarnContext(ctx, "cache lookup failed",
			"actorID", actorID,
			"error", err,
		)
	}
	films, err = r.repo.GetFilmography(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	go func() {
		writeCtx := context.WithoutCancel(ctx)
		if err := r.cache.SetFilmography(writeCtx, actorID, films); err != nil {
			r.log.ErrorContext(writeCtx, "failed to cache filmography",
				"actorID", actorID,
				"error", err,
			)
		}
	}()
	return films, nil
}
