package redisCache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chenders/deadonfilm/configs"
	"github.com/chenders/deadonfilm/internal/domain"
)

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(config *configs.Config) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:         config.RD.Host,
		DB:           config.RD.DB,
		Username:     config.RD.User,
		Password:     config.RD.Password,
		MaxRetries:   config.RD.MaxRetries,
		DialTimeout:  config.RD.DialTimeout,
		ReadTimeout:  config.RD.ReadTimeout,
		WriteTimeout: config.RD.WriteTimeout,
	})

	return &Cache{
		client: client,
		ttl:    config.RD.CacheTTL,
	}
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}

func (c *Cache) GetMovieByID(ctx context.Context, movieID int) (domain.Movie, error) {
	const op = "redisCache.GetMovieByID"
	data, err := c.client.Get(ctx, movieKey(movieID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Movie{}, domain.ErrRecordNotFound
		}
		return domain.Movie{}, fmt.Errorf("%s: %w", op, err)
	}

	var movie domain.Movie
	if err := json.Unmarshal(data, &movie); err != nil {
		return domain.Movie{}, fmt.Errorf("%s: %w", op, err)
	}
	return movie, nil
}

func (c *Cache) SetMovie(ctx context.Context, movie domain.Movie) error {
	const op = "redisCache.SetMovie"
	data, err := json.Marshal(movie)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := c.client.Set(ctx, movieKey(movie.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *Cache) GetFilmography(ctx context.Context, actorID int) ([]domain.FilmographyEntry, error) {
	const op = "redisCache.GetFilmography"
	data, err := c.client.Get(ctx, filmographyKey(actorID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var films []domain.FilmographyEntry
	if err := json.Unmarshal(data, &films); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return films, nil
}

func (c *Cache) SetFilmography(ctx context.Context, actorID int, films []domain.FilmographyEntry) error {
	const op = "redisCache.SetFilmography"
	data, err := json.Marshal(films)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := c.client.Set(ctx, filmographyKey(actorID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func movieKey(movieID int) string {
	return fmt.Sprintf("movie:%d", movieID)
}

func filmographyKey(actorID int) string {
	return fmt.Sprintf("films:%d", actorID)
}
