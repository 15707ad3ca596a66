package telegram

import (
	"context"

	"github.com/chenders/deadonfilm/internal/domain"
)

type StateProvider interface {
	SetState(ctx context.Context, chatID int64, state *domain.SessionState) error
	GetStateByID(ctx context.Context, chatID int64) *domain.SessionState
	ResetUserState(ctx context.Context, chatID int64)
	GetCurrentStatesID(ctx context.Context) []int64
	GetCorrelationID(ctx context.Context, chatID int64) string
}

type ActorProvider interface {
	SearchActor(ctx context.Context, query string) ([]domain.Actor, error)
}

type ConnectionProvider interface {
	FindConnection(ctx context.Context, firstActorID int, secondActorID int,
		maxDegrees int) (domain.ConnectionResult, error)
}

type MovieProvider interface {
	GetMovieByID(ctx context.Context, movieID int) (domain.Movie, error)
}
