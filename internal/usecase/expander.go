package usecase

import (
	"context"
	"log/slog"
	"sort"
	"strconv"

	"github.com/chenders/deadonfilm/internal/domain"
)

const (
	// maxCreditsPerActor bounds how many filmography entries are expanded,
	// capping the number of cast lookups per expansion step.
	maxCreditsPerActor = 20
	// maxCastPerMovie bounds how many billed cast members of one movie are
	// considered co-stars.
	maxCastPerMovie = 30
)

// coStarExpander turns one actor into the set of co-stars reachable through
// the most popular movies of their filmography.
type coStarExpander struct {
	repo  MediaRepository
	films *filmographyCache
	log   *slog.Logger
}

func newCoStarExpander(repo MediaRepository, films *filmographyCache, log *slog.Logger) *coStarExpander {
	return &coStarExpander{repo: repo, films: films, log: log}
}

// CoStars maps every discovered co-star to the single connecting movie.
// Movies are processed in descending popularity and the first movie seen for
// a co-star wins. Provider failures degrade the result instead of failing
// it; the only error returned is context cancellation.
func (e *coStarExpander) CoStars(ctx context.Context, actorID int) (map[int]domain.Movie, error) {
	films, err := e.films.Get(ctx, actorID)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		e.log.WarnContext(ctx, "filmography fetch failed, expanding nothing",
			"actorID", actorID,
			"error", err,
		)
		return map[int]domain.Movie{}, nil
	}

	// Undated entries are dropped: year display and movie dedup rely on
	// the release date.
	dated := make([]domain.FilmographyEntry, 0, len(films))
	for _, entry := range films {
		if entry.ReleaseDate != "" {
			dated = append(dated, entry)
		}
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].Popularity > dated[j].Popularity
	})
	if len(dated) > maxCreditsPerActor {
		dated = dated[:maxCreditsPerActor]
	}

	coStars := make(map[int]domain.Movie)
	for _, entry := range dated {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cast, err := e.repo.GetMovieCast(ctx, entry.MovieID)
		if err != nil {
			e.log.WarnContext(ctx, "cast fetch failed, skipping movie",
				"movieID", entry.MovieID,
				"error", err,
			)
			continue
		}
		if len(cast) > maxCastPerMovie {
			cast = cast[:maxCastPerMovie]
		}
		for _, castID := range cast {
			if castID == actorID {
				continue
			}
			if _, ok := coStars[castID]; ok {
				continue
			}
			coStars[castID] = domain.Movie{
				ID:    entry.MovieID,
				Title: entry.Title,
				Year:  releaseYear(entry.ReleaseDate),
			}
		}
	}

	return coStars, nil
}

// releaseYear pulls the year out of a provider date like "2003-05-14".
func releaseYear(releaseDate string) int {
	if len(releaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(releaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}
