// Package syncer moves file_list manifests from the local WAL to
// remote object storage.
//
// Ingesters close manifests under <wal_dir>/file_list/ as *.json
// files. The syncer scans that directory on a fixed interval,
// compresses each closed manifest with zstd and uploads it under a
// key derived from the manifest's name, removing the local copy once
// the upload succeeds. Files that fail to upload stay on disk and are
// retried on the next cycle; the filesystem itself is the only record
// of what remains to be synced.
package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/loghive/loghive-manifest-sync/internal/cluster"
	"github.com/loghive/loghive-manifest-sync/internal/compress"
	"github.com/loghive/loghive-manifest-sync/internal/config"
	"github.com/loghive/loghive-manifest-sync/internal/logging"
	"github.com/loghive/loghive-manifest-sync/internal/metrics"
	"github.com/loghive/loghive-manifest-sync/internal/storage"
	"github.com/loghive/loghive-manifest-sync/internal/util"
	"github.com/loghive/loghive-manifest-sync/internal/wal"
)

// RoleChecker reports which cluster roles this node holds.
type RoleChecker interface {
	HasRole(role cluster.Role) bool
}

// Guard answers whether a WAL artifact is still held open by an
// active writer. Implementations must be safe to call concurrently
// with writers.
type Guard interface {
	InUse(org, stream string, st wal.StreamType, name string) bool
}

// Syncer owns the file_list sync loop for one node.
type Syncer struct {
	cfg   config.WALConfig
	node  RoleChecker
	guard Guard
	store storage.ObjectStore
	codec *compress.Codec
	log   *slog.Logger
}

// New creates a Syncer. The caller keeps ownership of store and is
// responsible for closing it.
func New(cfg config.WALConfig, node RoleChecker, guard Guard, store storage.ObjectStore) (*Syncer, error) {
	codec, err := compress.NewCodec()
	if err != nil {
		return nil, fmt.Errorf("create codec: %w", err)
	}

	return &Syncer{
		cfg:   cfg,
		node:  node,
		guard: guard,
		store: store,
		codec: codec,
		log:   logging.Component("syncer"),
	}, nil
}

// Close releases the compression codec.
func (s *Syncer) Close() {
	s.codec.Close()
}

// Run executes sync cycles until ctx is cancelled, then returns
// ctx.Err(). Only ingester nodes carry a WAL; on any other role Run
// returns nil immediately.
//
// A failed cycle is logged and counted, never fatal: the next tick
// retries from whatever the filesystem still holds.
func (s *Syncer) Run(ctx context.Context) error {
	if !s.node.HasRole(cluster.RoleIngester) {
		s.log.Info("node is not an ingester, file_list sync disabled")
		return nil
	}

	dir := filepath.Join(s.cfg.Dir, "file_list")
	if err := util.EnsureDir(dir); err != nil {
		return fmt.Errorf("create file_list dir %s: %w", dir, err)
	}

	interval := s.cfg.SyncInterval()
	s.log.Info("starting file_list sync loop",
		"dir", dir,
		"interval", interval.String(),
		"concurrency", s.cfg.SyncConcurrency,
	)

	return s.loop(ctx, interval)
}

// loop runs sync cycles on a fixed interval until ctx is cancelled.
// The first cycle fires one full interval after start, giving writers
// time to close out manifests from before the restart.
func (s *Syncer) loop(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("file_list sync loop stopped")
			return ctx.Err()

		case <-ticker.C:
			if _, err := s.SyncCycle(ctx); err != nil {
				s.log.Error("sync cycle failed", "error", err)
				if m := metrics.Get(); m != nil {
					m.IncCycleFailures()
				}
			}
		}
	}
}
