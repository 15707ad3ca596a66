package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chenders/deadonfilm/configs"
	"github.com/chenders/deadonfilm/configs/loader/dotEnvLoader"
	"github.com/chenders/deadonfilm/internal/delivery/telegram"
	"github.com/chenders/deadonfilm/internal/repository/SessionStates"
	"github.com/chenders/deadonfilm/internal/repository/cachedRepo"
	"github.com/chenders/deadonfilm/internal/repository/necrology"
	"github.com/chenders/deadonfilm/internal/repository/redisCache"
	"github.com/chenders/deadonfilm/internal/repository/tmdb"
	"github.com/chenders/deadonfilm/internal/usecase"
	"github.com/chenders/deadonfilm/pkg/logger"
	"github.com/chenders/deadonfilm/pkg/prometheus"
)

func main() {

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	loader := dotEnvLoader.DotEnvLoader{}
	cfg := configs.MustLoad(loader)
	log := logger.NewLogger(cfg)

	prometheus.Init()
	http.Handle("/metrics", promhttp.Handler())
	go http.ListenAndServe(":8080", nil)
	log.Info("Starting prometheus at port 8080")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := tmdb.NewRepo(cfg)
	cache := redisCache.NewCache(cfg)
	defer cache.Close()
	if err := cache.Ping(ctx); err != nil {
		log.Warn("redis unavailable, falling back to direct provider calls", "error", err)
	}
	cached := cachedRepo.NewCachedRepo(repo, cache, log)

	necrologyStore, err := necrology.NewStore(cfg, log)
	if err != nil {
		log.Error("failed to open necrology store", "error", err)
		os.Exit(1)
	}
	defer necrologyStore.Close()
	if cfg.NC.Seed != "" {
		if _, err := necrologyStore.ImportFile(ctx, cfg.NC.Seed); err != nil {
			log.Error("failed to import necrology seed", "path", cfg.NC.Seed, "error", err)
			os.Exit(1)
		}
	}

	actors := usecase.NewActor(cached)
	connections := usecase.NewConnection(cached, necrologyStore, log)
	sessionStates := SessionStates.NewSessionStates()

	bot, err := telegram.NewBot(cfg, sessionStates, actors, connections, cached, log)
	if err != nil {
		log.Error("failed to create bot", "error", err)
		os.Exit(1)
	}
	log.Info("Starting bot")
	go bot.Run(ctx)
	<-done
	log.Info("Shutting down bot")

	cancel()
	bot.Stop()
	log.Info("Service stopped")
}
