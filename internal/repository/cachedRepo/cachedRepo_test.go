package cachedRepo

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chenders/deadonfilm/internal/domain"
)

type fakeMedia struct {
	movies     map[int]domain.Movie
	films      map[int][]domain.FilmographyEntry
	movieCalls int
	filmCalls  int
	err        error
}

func (f *fakeMedia) SearchActors(ctx context.Context, query string) ([]domain.Actor, error) {
	return []domain.Actor{{ID: 1, Name: query}}, nil
}

func (f *fakeMedia) GetFilmography(ctx context.Context, actorID int) ([]domain.FilmographyEntry, error) {
	f.filmCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.films[actorID], nil
}

func (f *fakeMedia) GetMovieCast(ctx context.Context, movieID int) ([]int, error) {
	return []int{1, 2}, nil
}

func (f *fakeMedia) GetActorDetail(ctx context.Context, actorID int) (domain.ActorDetail, error) {
	return domain.ActorDetail{ID: actorID}, nil
}

func (f *fakeMedia) GetMovieByID(ctx context.Context, movieID int) (domain.Movie, error) {
	f.movieCalls++
	if f.err != nil {
		return domain.Movie{}, f.err
	}
	movie, ok := f.movies[movieID]
	if !ok {
		return domain.Movie{}, domain.ErrRecordNotFound
	}
	return movie, nil
}

type fakeCache struct {
	mu     sync.Mutex
	movies map[int]domain.Movie
	films  map[int][]domain.FilmographyEntry
	getErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		movies: make(map[int]domain.Movie),
		films:  make(map[int][]domain.FilmographyEntry),
	}
}

func (c *fakeCache) GetMovieByID(ctx context.Context, movieID int) (domain.Movie, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return domain.Movie{}, c.getErr
	}
	movie, ok := c.movies[movieID]
	if !ok {
		return domain.Movie{}, domain.ErrRecordNotFound
	}
	return movie, nil
}

func (c *fakeCache) SetMovie(ctx context.Context, movie domain.Movie) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.movies[movie.ID] = movie
	return nil
}

func (c *fakeCache) GetFilmography(ctx context.Context, actorID int) ([]domain.FilmographyEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	films, ok := c.films[actorID]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return films, nil
}

func (c *fakeCache) SetFilmography(ctx context.Context, actorID int, films []domain.FilmographyEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.films[actorID] = films
	return nil
}

func (c *fakeCache) hasMovie(movieID int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.movies[movieID]
	return ok
}

func (c *fakeCache) hasFilmography(actorID int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.films[actorID]
	return ok
}

func newTestCachedRepo(media *fakeMedia, cache *fakeCache) *CachedRepo {
	return NewCachedRepo(media, cache, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestGetMovieByID_CacheHit(t *testing.T) {
	media := &fakeMedia{}
	cache := newFakeCache()
	cache.movies[10] = domain.Movie{ID: 10, Title: "Cached"}
	repo := newTestCachedRepo(media, cache)

	movie, err := repo.GetMovieByID(context.Background(), 10)
	require.NoError(t, err)
	require.Equal(t, "Cached", movie.Title)
	require.Zero(t, media.movieCalls)
}

func TestGetMovieByID_MissFetchesAndWritesBack(t *testing.T) {
	media := &fakeMedia{movies: map[int]domain.Movie{10: {ID: 10, Title: "Fresh"}}}
	cache := newFakeCache()
	repo := newTestCachedRepo(media, cache)

	movie, err := repo.GetMovieByID(context.Background(), 10)
	require.NoError(t, err)
	require.Equal(t, "Fresh", movie.Title)
	require.Equal(t, 1, media.movieCalls)

	require.Eventually(t, func() bool { return cache.hasMovie(10) },
		time.Second, 10*time.Millisecond, "write-back never landed")

	_, err = repo.GetMovieByID(context.Background(), 10)
	require.NoError(t, err)
	require.Equal(t, 1, media.movieCalls, "second lookup must be served from cache")
}

func TestGetMovieByID_WriteBackSurvivesCancelledRequest(t *testing.T) {
	media := &fakeMedia{movies: map[int]domain.Movie{10: {ID: 10, Title: "Fresh"}}}
	cache := newFakeCache()
	repo := newTestCachedRepo(media, cache)

	ctx, cancel := context.WithCancel(context.Background())
	movie, err := repo.GetMovieByID(ctx, 10)
	cancel()
	require.NoError(t, err)
	require.Equal(t, "Fresh", movie.Title)

	require.Eventually(t, func() bool { return cache.hasMovie(10) },
		time.Second, 10*time.Millisecond)
}

func TestGetMovieByID_CacheFailureFallsThrough(t *testing.T) {
	media := &fakeMedia{movies: map[int]domain.Movie{10: {ID: 10, Title: "Fresh"}}}
	cache := newFakeCache()
	cache.getErr = errors.New("connection refused")
	repo := newTestCachedRepo(media, cache)

	movie, err := repo.GetMovieByID(context.Background(), 10)
	require.NoError(t, err)
	require.Equal(t, "Fresh", movie.Title)
}

func TestGetMovieByID_RepoErrorPropagates(t *testing.T) {
	media := &fakeMedia{err: errors.New("upstream 500")}
	repo := newTestCachedRepo(media, newFakeCache())

	_, err := repo.GetMovieByID(context.Background(), 10)
	require.Error(t, err)
}

func TestGetFilmography_MissFetchesAndWritesBack(t *testing.T) {
	media := &fakeMedia{films: map[int][]domain.FilmographyEntry{
		5: {{MovieID: 10, Title: "A", ReleaseDate: "2000-01-01"}},
	}}
	cache := newFakeCache()
	repo := newTestCachedRepo(media, cache)

	films, err := repo.GetFilmography(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, films, 1)
	require.Equal(t, 1, media.filmCalls)

	require.Eventually(t, func() bool { return cache.hasFilmography(5) },
		time.Second, 10*time.Millisecond, "write-back never landed")

	_, err = repo.GetFilmography(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, 1, media.filmCalls, "second lookup must be served from cache")
}

func TestGetFilmography_CacheHit(t *testing.T) {
	media := &fakeMedia{}
	cache := newFakeCache()
	cache.films[5] = []domain.FilmographyEntry{{MovieID: 10, Title: "A"}}
	repo := newTestCachedRepo(media, cache)

	films, err := repo.GetFilmography(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, films, 1)
	require.Zero(t, media.filmCalls)
}

func TestUncachedCallsPassThrough(t *testing.T) {
	media := &fakeMedia{}
	repo := newTestCachedRepo(media, newFakeCache())
	ctx := context.Background()

	actors, err := repo.SearchActors(ctx, "query")
	require.NoError(t, err)
	require.Len(t, actors, 1)

	cast, err := repo.GetMovieCast(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, cast)

	detail, err := repo.GetActorDetail(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, 5, detail.ID)
}
