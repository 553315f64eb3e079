package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ewintr.nl/potongin/clip"
	"ewintr.nl/potongin/config"
	"ewintr.nl/potongin/fetcher"
	"ewintr.nl/potongin/handler"
	"ewintr.nl/potongin/storage"
	"ewintr.nl/potongin/transcript"
	"golang.org/x/exp/slog"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("unable to load config", slog.String("err", err.Error()))
		os.Exit(1)
	}
	level, err := cfg.Level()
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("invalid log level", slog.String("err", err.Error()))
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	clipRepo, err := openClipRepository(cfg)
	if err != nil {
		logger.Error("unable to open clip store", slog.String("store", cfg.Store), slog.String("err", err.Error()))
		os.Exit(1)
	}
	logger.Info("clip store ready", slog.String("store", cfg.Store))

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	yt := transcript.NewYoutube(transcript.YoutubeInfo{Client: httpClient})
	transcripts := transcript.NewService(yt, logger)

	var metadata handler.MetadataFetcher
	if cfg.YoutubeAPIKey != "" {
		ytClient, err := youtube.NewService(ctx, option.WithAPIKey(cfg.YoutubeAPIKey))
		if err != nil {
			logger.Error("unable to create youtube service", slog.String("err", err.Error()))
			os.Exit(1)
		}
		metadata = fetcher.NewYoutube(ytClient)
	}

	var titler clip.TitleFetcher
	if cfg.OpenAIAPIKey != "" {
		titler = fetcher.NewOpenAI(cfg.OpenAIAPIKey)
	}

	var index storage.ClipIndex
	if cfg.WeaviateHost != "" {
		wv, err := storage.NewWeaviate(storage.WeaviateInfo{
			Scheme:       cfg.WeaviateScheme,
			Host:         cfg.WeaviateHost,
			ApiKey:       cfg.WeaviateAPIKey,
			OpenaiApiKey: cfg.OpenAIAPIKey,
		})
		if err != nil {
			logger.Error("unable to create weaviate client", slog.String("err", err.Error()))
			os.Exit(1)
		}
		if err := wv.EnsureSchema(ctx); err != nil {
			logger.Error("unable to prepare weaviate schema", slog.String("err", err.Error()))
			os.Exit(1)
		}
		index = wv
	}
	logger.Info("optional services",
		slog.Bool("metadata", metadata != nil),
		slog.Bool("titles", titler != nil),
		slog.Bool("search", index != nil),
	)

	clips := clip.NewService(clipRepo, index, titler, logger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.APIPort),
		Handler:           handler.NewServer(transcripts, clips, metadata, clipRepo, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
	}()
	logger.Info("http server started", slog.Int("port", cfg.APIPort))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", slog.String("err", err.Error()))
	}

	logger.Info("service stopped")
}

func openClipRepository(cfg *config.Config) (storage.ClipRepository, error) {
	switch cfg.Store {
	case config.StorePostgres:
		db, err := storage.OpenPostgres(storage.PostgresInfo{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			Database: cfg.Postgres.Database,
		})
		if err != nil {
			return nil, err
		}
		postgres, err := storage.NewPostgres(db)
		if err != nil {
			return nil, err
		}
		return storage.NewPostgresClipRepository(postgres), nil
	default:
		db, err := storage.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		sqlite, err := storage.NewSQLite(db, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return storage.NewSQLiteClipRepository(sqlite), nil
	}
}
