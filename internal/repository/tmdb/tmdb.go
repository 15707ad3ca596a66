package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/chenders/deadonfilm/configs"
	"github.com/chenders/deadonfilm/internal/domain"
	"github.com/chenders/deadonfilm/pkg/prometheus"
)

const imageBase = "https://image.tmdb.org/t/p/w500"

type Repo struct {
	Path     string
	APIKey   string
	Language string
	Client   *http.Client
}

func NewRepo(config *configs.Config) *Repo {

	return &Repo{
		APIKey:   config.TMDB.Token,
		Path:     config.TMDB.Path,
		Language: config.TMDB.Language,
		Client: &http.Client{
			Timeout: time.Second * 10,
		},
	}
}

func (repo *Repo) SearchActors(ctx context.Context, query string) ([]domain.Actor, error) {
	encodedQuery := url.QueryEscape(query)
	req := fmt.Sprintf("search/person?page=1&query=%s&language=%s", encodedQuery, repo.Language)

	resp, err := repo.doRequest(ctx, req)
	if err != nil {
		prometheus.APIFailures.WithLabelValues("SearchActors").Inc()
		return nil, err
	}

	var searchInfo struct {
		Results []struct {
			ID          int     `json:"id"`
			Name        string  `json:"name"`
			ProfilePath string  `json:"profile_path"`
			Popularity  float64 `json:"popularity"`
		} `json:"results"`
	}
	if err = json.Unmarshal(resp, &searchInfo); err != nil {
		return nil, err
	}

	actors := make([]domain.Actor, 0, len(searchInfo.Results))
	for _, person := range searchInfo.Results {
		actors = append(actors, domain.Actor{
			ID:         person.ID,
			Name:       person.Name,
			PhotoURL:   imageURL(person.ProfilePath),
			Popularity: person.Popularity,
		})
	}

	return actors, nil
}

func (repo *Repo) GetFilmography(ctx context.Context, actorID int) ([]domain.FilmographyEntry, error) {
	req := fmt.Sprintf("person/%d/movie_credits?language=%s", actorID, repo.Language)

	resp, err := repo.doRequest(ctx, req)
	if err != nil {
		prometheus.APIFailures.WithLabelValues("GetFilmography").Inc()
		return nil, err
	}

	var creditsInfo struct {
		Cast []struct {
			ID          int     `json:"id"`
			Title       string  `json:"title"`
			ReleaseDate string  `json:"release_date"`
			Popularity  float64 `json:"popularity"`
		} `json:"cast"`
	}
	if err = json.Unmarshal(resp, &creditsInfo); err != nil {
		return nil, err
	}

	films := make([]domain.FilmographyEntry, 0, len(creditsInfo.Cast))
	for _, credit := range creditsInfo.Cast {
		films = append(films, domain.FilmographyEntry{
			MovieID:     credit.ID,
			Title:       credit.Title,
			ReleaseDate: credit.ReleaseDate,
			Popularity:  credit.Popularity,
		})
	}

	return films, nil
}

// GetMovieCast returns actor IDs in the provider's billing order.
func (repo *Repo) GetMovieCast(ctx context.Context, movieID int) ([]int, error) {
	req := fmt.Sprintf("movie/%d/credits?language=%s", movieID, repo.Language)

	resp, err := repo.doRequest(ctx, req)
	if err != nil {
		prometheus.APIFailures.WithLabelValues("GetMovieCast").Inc()
		return nil, err
	}

	var castInfo struct {
		Cast []struct {
			ID int `json:"id"`
		} `json:"cast"`
	}
	if err = json.Unmarshal(resp, &castInfo); err != nil {
		return nil, err
	}

	result := make([]int, 0, len(castInfo.Cast))
	for _, member := range castInfo.Cast {
		result = append(result, member.ID)
	}

	return result, nil
}

func (repo *Repo) GetActorDetail(ctx context.Context, actorID int) (domain.ActorDetail, error) {
	req := fmt.Sprintf("person/%d?language=%s", actorID, repo.Language)

	resp, err := repo.doRequest(ctx, req)
	if err != nil {
		prometheus.APIFailures.WithLabelValues("GetActorDetail").Inc()
		return domain.ActorDetail{}, err
	}

	var personInfo struct {
		ID          int    `json:"id"`
		Name        string `json:"name"`
		ProfilePath string `json:"profile_path"`
		Deathday    string `json:"deathday"`
	}
	if err = json.Unmarshal(resp, &personInfo); err != nil {
		return domain.ActorDetail{}, err
	}

	return domain.ActorDetail{
		ID:        personInfo.ID,
		Name:      personInfo.Name,
		PhotoURL:  imageURL(personInfo.ProfilePath),
		DeathDate: personInfo.Deathday,
	}, nil
}

func (repo *Repo) GetMovieByID(ctx context.Context, movieID int) (domain.Movie, error) {
	req := fmt.Sprintf("movie/%d?language=%s", movieID, repo.Language)

	resp, err := repo.doRequest(ctx, req)
	if err != nil {
		prometheus.APIFailures.WithLabelValues("GetMovieByID").Inc()
		return domain.Movie{}, err
	}

	var movieInfo struct {
		ID          int     `json:"id"`
		Title       string  `json:"title"`
		ReleaseDate string  `json:"release_date"`
		PosterPath  string  `json:"poster_path"`
		VoteAverage float32 `json:"vote_average"`
	}
	if err = json.Unmarshal(resp, &movieInfo); err != nil {
		return domain.Movie{}, err
	}

	return domain.Movie{
		ID:        movieInfo.ID,
		Title:     movieInfo.Title,
		Year:      releaseYear(movieInfo.ReleaseDate),
		PosterURL: imageURL(movieInfo.PosterPath),
		Rating:    movieInfo.VoteAverage,
	}, nil
}

func (repo *Repo) doRequest(ctx context.Context, endpoint string) ([]byte, error) {
	const op = "Repo.doRequest"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, repo.Path+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request:%w", op, err)
	}
	req.Header.Add("accept", "application/json")
	req.Header.Add("Authorization", "Bearer "+repo.APIKey)

	resp, err := repo.Client.Do(req)
	if err != nil {
		// A cancelled request is the caller's doing, not a provider outage.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w: %v", op, domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%s: %w: bad status %d, response: %s",
			op, domain.ErrProviderUnavailable, resp.StatusCode, body)
	}

	return io.ReadAll(resp.Body)
}

// imageURL expands a provider image path like "/abc.jpg" to a full URL.
func imageURL(path string) string {
	if path == "" {
		return ""
	}
	return imageBase + path
}

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
