package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/loghive/loghive-manifest-sync/internal/cluster"
	"github.com/loghive/loghive-manifest-sync/internal/config"
	"github.com/loghive/loghive-manifest-sync/internal/logging"
	"github.com/loghive/loghive-manifest-sync/internal/metrics"
	"github.com/loghive/loghive-manifest-sync/internal/storage"
	"github.com/loghive/loghive-manifest-sync/internal/syncer"
	"github.com/loghive/loghive-manifest-sync/internal/wal"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("[main] Manifest Sync %s (%s)", syncer.Version, syncer.GitSHA)

	cfg := config.MustLoad()

	logging.Setup(logging.Config{
		Format: cfg.Log.Format,
		Level:  cfg.Log.Level,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Graceful shutdown handler
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		sig := <-ch
		log.Printf("[shutdown] received signal: %v", sig)
		cancel()
	}()

	if cfg.Metrics.Enabled {
		metrics.Init("")
		go func() {
			log.Printf("[main] metrics server listening on %s", cfg.Metrics.Address)
			if err := metrics.StartServer(cfg.Metrics.Address); err != nil {
				log.Printf("[main] metrics server error: %v", err)
			}
		}()
	}

	node, err := cluster.NewNode(cfg.Node.Roles)
	if err != nil {
		log.Fatalf("[main] failed to parse node roles: %v", err)
	}

	storeCfg := storage.Config{
		Backend:    cfg.Storage.Backend,
		LocalDir:   cfg.Storage.LocalDir,
		GCSBucket:  cfg.Storage.GCSBucket,
		S3Bucket:   cfg.Storage.S3Bucket,
		S3Endpoint: cfg.Storage.S3Endpoint,
		S3Region:   cfg.Storage.S3Region,
		Prefix:     cfg.Storage.Prefix,
	}

	store, err := storage.NewObjectStore(storeCfg)
	if err != nil {
		log.Fatalf("[main] failed to create storage: %v", err)
	}
	defer store.Close()

	s, err := syncer.New(cfg.WAL, node, wal.NewRegistry(), store)
	if err != nil {
		log.Fatalf("[main] failed to create syncer: %v", err)
	}
	defer s.Close()

	if err := s.Run(ctx); err != nil {
		if ctx.Err() != nil {
			log.Printf("[main] shutdown complete")
		} else {
			log.Fatalf("[main] syncer failed: %v", err)
		}
	}

	log.Println("[main] manifest sync stopped cleanly")
	time.Sleep(100 * time.Millisecond)
}
