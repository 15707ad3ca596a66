package usecase

import (
	"context"

	"github.com/chenders/deadonfilm/internal/domain"
)

// filmographyCache memoizes filmography lookups for the lifetime of one
// search, so an actor reachable from several branches is fetched once.
// Owned exclusively by the search that created it.
type filmographyCache struct {
	repo    MediaRepository
	entries map[int][]domain.FilmographyEntry
}

func newFilmographyCache(repo MediaRepository) *filmographyCache {
	return &filmographyCache{
		repo:    repo,
		entries: make(map[int][]domain.FilmographyEntry),
	}
}

func (c *filmographyCache) Get(ctx context.Context, actorID int) ([]domain.FilmographyEntry, error) {
	if films, ok := c.entries[actorID]; ok {
		return films, nil
	}

	films, err := c.repo.GetFilmography(ctx, actorID)
	if err != nil {
		return nil, err
	}
	c.entries[actorID] = films
	return films, nil
}

func (c *filmographyCache) Reset() {
	c.entries = make(map[int][]domain.FilmographyEntry)
}
