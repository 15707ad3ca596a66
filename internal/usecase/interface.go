package usecase

import (
	"context"

	"github.com/chenders/deadonfilm/internal/domain"
)

type MediaRepository interface {
	SearchActors(ctx context.Context, query string) ([]domain.Actor, error)
	GetFilmography(ctx context.Context, actorID int) ([]domain.FilmographyEntry, error)
	GetMovieCast(ctx context.Context, movieID int) ([]int, error)
	GetActorDetail(ctx context.Context, actorID int) (domain.ActorDetail, error)
	GetMovieByID(ctx context.Context, movieID int) (domain.Movie, error)
}

type DeceasedStore interface {
	GetRecords(ctx context.Context, actorIDs []int) (map[int]domain.DeceasedRecord, error)
}
