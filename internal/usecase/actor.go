package usecase

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/chenders/deadonfilm/internal/domain"
)

type Actor struct {
	repo MediaRepository
}

func NewActor(repo MediaRepository) *Actor {
	return &Actor{repo: repo}
}

func (uc *Actor) SearchActor(ctx context.Context, query string) ([]domain.Actor, error) {
	const op = "useCase.ActorSearcher"

	if len(query) == 0 {
		return nil, fmt.Errorf("%s:empty query", op)
	}

	actors, err := uc.repo.SearchActors(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s:repo error: %v", op, err)
	}

	if len(actors) == 0 {
		return nil, fmt.Errorf("%s:actors not found", op)
	}

	// An exact name match with a photo wins outright, skipping the pick list.
	normalizedQuery := normalizeName(query)
	for _, actor := range actors {
		if normalizeName(actor.Name) == normalizedQuery && actor.PhotoURL != "" {
			return []domain.Actor{actor}, nil
		}
	}

	filtered := filteringActors(actors)
	result := make([]domain.Actor, 0, 3)
	if len(filtered) >= 3 {
		result = append(result, filtered[:3]...)
	} else {
		result = append(result, filtered...)
	}
	return result, nil
}

func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	reg := regexp.MustCompile(`[^a-zа-яё]`)
	return reg.ReplaceAllString(name, "")
}

func filteringActors(actors []domain.Actor) []domain.Actor {
	filtered := make([]domain.Actor, 0)

	for _, actor := range actors {
		if actor.PhotoURL != "" && actor.Name != "" {
			filtered = append(filtered, actor)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Popularity > filtered[j].Popularity
	})

	return filtered
}
