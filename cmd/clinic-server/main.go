package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/medcare/clinic-management/internal/api"
	"github.com/medcare/clinic-management/internal/chat"
	"github.com/medcare/clinic-management/internal/clinic"
	"github.com/medcare/clinic-management/internal/config"
	"github.com/medcare/clinic-management/internal/db"
	redisclient "github.com/medcare/clinic-management/internal/redis"
	"github.com/medcare/clinic-management/internal/storage"
)

const version = "1.0.0"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("clinic-server starting up")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	log.Printf("running in env=%s http_port=%s storage_backend=%s", cfg.Env, cfg.HTTPPort, cfg.StorageBackend)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, cleanup, err := buildBackend(rootCtx, cfg)
	if err != nil {
		log.Fatalf("storage backend error: %v", err)
	}
	defer cleanup()

	// The store is built once here and handed to every panel; nothing
	// reaches it through a global.
	store := clinic.New(backend)
	store.SeedSampleData()

	loadCtx, cancelLoad := context.WithTimeout(rootCtx, 10*time.Second)
	if err := store.Load(loadCtx); err != nil {
		log.Printf("snapshot load failed, continuing with seed data: %v", err)
	}
	cancelLoad()

	responder := chat.NewResponder(cfg.ChatMinDelay, cfg.ChatMaxDelay)

	router := api.NewRouter(api.RouterConfig{
		Store:     store,
		Responder: responder,
		Backend:   backend,
		Env:       cfg.Env,
		Version:   version,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-rootCtx.Done()
	log.Println("shutting down clinic-server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}

	// Final snapshot on the way out; best effort like every other save.
	saveCtx, cancelSave := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelSave()
	if err := store.Save(saveCtx); err != nil {
		log.Printf("final snapshot save failed: %v", err)
	}

	log.Println("clinic-server stopped")
}

// buildBackend constructs the configured storage backend and returns a
// cleanup for whatever connections it holds.
func buildBackend(ctx context.Context, cfg config.Config) (storage.Backend, func(), error) {
	noop := func() {}

	switch cfg.StorageBackend {
	case config.BackendFile:
		return storage.NewFileBackend(cfg.SnapshotFile), noop, nil

	case config.BackendMemory:
		return storage.NewMemoryBackend(), noop, nil

	case config.BackendRedis:
		rdb, err := redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
		if err != nil {
			return nil, nil, fmt.Errorf("redis connection: %w", err)
		}
		log.Println("connected to Redis")
		cleanup := func() {
			if err := rdb.Close(); err != nil {
				log.Printf("error closing redis: %v", err)
			}
		}
		return storage.NewRedisBackend(rdb, cfg.SnapshotKey), cleanup, nil

	case config.BackendPostgres:
		pgCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		pool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres connection: %w", err)
		}
		log.Println("connected to Postgres")

		backend, err := storage.NewPostgresBackend(pgCtx, pool, cfg.SnapshotKey)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return backend, pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
