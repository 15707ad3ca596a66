package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chenders/deadonfilm/internal/domain"
)

func TestSearchActor(t *testing.T) {
	t.Run("empty query is an error", func(t *testing.T) {
		uc := NewActor(newFakeRepo())
		_, err := uc.SearchActor(context.Background(), "")
		require.Error(t, err)
	})

	t.Run("repo failure is an error", func(t *testing.T) {
		repo := newFakeRepo()
		repo.searchErr = errors.New("upstream 500")
		uc := NewActor(repo)
		_, err := uc.SearchActor(context.Background(), "Киану Ривз")
		require.Error(t, err)
	})

	t.Run("no candidates is an error", func(t *testing.T) {
		uc := NewActor(newFakeRepo())
		_, err := uc.SearchActor(context.Background(), "Несуществующий Актер")
		require.Error(t, err)
	})

	t.Run("exact name match wins regardless of popularity", func(t *testing.T) {
		repo := newFakeRepo()
		repo.searchResults = []domain.Actor{
			{ID: 2, Name: "Киану Ривз младший", PhotoURL: "p2", Popularity: 90},
			{ID: 1, Name: "Киану Ривз", PhotoURL: "p1", Popularity: 10},
		}
		uc := NewActor(repo)

		actors, err := uc.SearchActor(context.Background(), "киану ривз")
		require.NoError(t, err)
		require.Len(t, actors, 1)
		require.Equal(t, 1, actors[0].ID)
	})

	t.Run("exact match without a photo falls back to the pick list", func(t *testing.T) {
		repo := newFakeRepo()
		repo.searchResults = []domain.Actor{
			{ID: 1, Name: "Киану Ривз", Popularity: 10},
			{ID: 2, Name: "Киану Ривз младший", PhotoURL: "p2", Popularity: 90},
		}
		uc := NewActor(repo)

		actors, err := uc.SearchActor(context.Background(), "киану ривз")
		require.NoError(t, err)
		require.Len(t, actors, 1)
		require.Equal(t, 2, actors[0].ID)
	})

	t.Run("top three by popularity", func(t *testing.T) {
		repo := newFakeRepo()
		repo.searchResults = []domain.Actor{
			{ID: 1, Name: "Крис Эванс", PhotoURL: "p", Popularity: 30},
			{ID: 2, Name: "Крис Пратт", PhotoURL: "p", Popularity: 50},
			{ID: 3, Name: "Крис Пайн", PhotoURL: "p", Popularity: 10},
			{ID: 4, Name: "Крис Хемсворт", PhotoURL: "p", Popularity: 70},
			{ID: 5, Name: "Крис Рок", PhotoURL: "p", Popularity: 20},
		}
		uc := NewActor(repo)

		actors, err := uc.SearchActor(context.Background(), "Крис")
		require.NoError(t, err)
		require.Len(t, actors, 3)
		require.Equal(t, []int{4, 2, 1}, []int{actors[0].ID, actors[1].ID, actors[2].ID})
	})

	t.Run("candidates without photo or name are dropped", func(t *testing.T) {
		repo := newFakeRepo()
		repo.searchResults = []domain.Actor{
			{ID: 1, Name: "Том Харди", Popularity: 90},
			{ID: 2, Name: "", PhotoURL: "p", Popularity: 80},
			{ID: 3, Name: "Том Холланд", PhotoURL: "p", Popularity: 10},
		}
		uc := NewActor(repo)

		actors, err := uc.SearchActor(context.Background(), "Том")
		require.NoError(t, err)
		require.Len(t, actors, 1)
		require.Equal(t, 3, actors[0].ID)
	})
}

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  Киану Ривз ", "киануривз"},
		{"Jean-Claude Van Damme", "jeanclaudevandamme"},
		{"Ёлка", "ёлка"},
		{"O'Neill 2", "oneill"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, normalizeName(tc.in), "input %q", tc.in)
	}
}
