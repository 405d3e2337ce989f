package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/loghive/loghive-manifest-sync/internal/logging"
	"github.com/loghive/loghive-manifest-sync/internal/metrics"
	"github.com/loghive/loghive-manifest-sync/internal/partition"
	"github.com/loghive/loghive-manifest-sync/internal/util"
	"github.com/loghive/loghive-manifest-sync/internal/wal"
)

// SyncCycle scans the file_list WAL directory once and uploads every
// closed manifest. Per-file failures are tallied in Stats, not
// returned: the cycle only errors when the directory itself cannot be
// scanned.
func (s *Syncer) SyncCycle(ctx context.Context) (Stats, error) {
	log := logging.CycleLogger(uuid.New().String())
	startTime := time.Now()

	pattern := filepath.Join(s.cfg.Dir, "file_list", "*.json")
	files, err := util.ScanFiles(pattern)
	if err != nil {
		return Stats{}, fmt.Errorf("scan %s: %w", pattern, err)
	}

	stats := Stats{Scanned: len(files)}

	if len(files) > 0 {
		concurrency := s.cfg.SyncConcurrency
		if concurrency < 1 {
			concurrency = 1
		}

		var mu sync.Mutex
		eg := &errgroup.Group{}
		eg.SetLimit(concurrency)

		for _, path := range files {
			eg.Go(func() error {
				outcome := s.processFile(ctx, log, path)
				mu.Lock()
				stats.record(outcome)
				mu.Unlock()
				return nil
			})
		}

		// Workers report outcomes through stats, never errors.
		_ = eg.Wait()
	}

	stats.Duration = time.Since(startTime)

	if m := metrics.Get(); m != nil {
		m.ObserveCycleDuration(stats.Duration.Seconds())
		m.SetLastSyncTimestamp(float64(time.Now().Unix()))
		m.SetFilesRetained(float64(stats.Retained))
	}

	if stats.Scanned > 0 {
		log.Info("sync cycle complete",
			"scanned", stats.Scanned,
			"uploaded", stats.Uploaded,
			"skipped_in_use", stats.SkippedInUse,
			"removed_empty", stats.RemovedEmpty,
			"vanished", stats.Vanished,
			"retained", stats.Retained,
			"duration_ms", stats.Duration.Milliseconds(),
		)
	}

	return stats, nil
}

// processFile uploads one manifest and removes the local copy on
// success. The returned Outcome says what happened; nothing here is
// fatal to the cycle.
func (s *Syncer) processFile(ctx context.Context, log *slog.Logger, path string) Outcome {
	name := filepath.Base(path)

	// An active writer still owns this manifest; reconsider next cycle.
	if s.guard.InUse("", "", wal.StreamTypeFileList, name) {
		log.Debug("file_list still in use, skipping", "file", path)
		if m := metrics.Get(); m != nil {
			m.IncSkippedInUse()
		}
		return OutcomeSkippedInUse
	}

	log.Info("converting file_list", "file", path)

	err := s.uploadFile(ctx, log, path, name)
	switch {
	case err == nil:
		if rmErr := os.Remove(path); rmErr != nil {
			log.Error("failed to remove uploaded file_list", "file", path, "error", rmErr)
			if m := metrics.Get(); m != nil {
				m.IncDeleteFailures()
			}
		}
		return OutcomeUploaded

	case errors.Is(err, ErrEmptyManifest):
		log.Warn("removed empty file_list", "file", path)
		if m := metrics.Get(); m != nil {
			m.IncRemovedEmpty()
		}
		return OutcomeRemovedEmpty

	case errors.Is(err, partition.ErrMalformedName):
		log.Error("file_list name not parseable, retaining", "file", path, "error", err)
		return OutcomeRetained

	case errors.Is(err, os.ErrNotExist):
		// A concurrent cleanup won the race between scan and open.
		log.Debug("file_list vanished before upload", "file", path)
		return OutcomeVanished

	default:
		log.Error("file_list upload failed, retaining for retry", "file", path, "error", err)
		if m := metrics.Get(); m != nil {
			m.IncUploadFailures()
		}
		return OutcomeRetained
	}
}

// uploadFile compresses a manifest and writes it to remote storage
// under its derived object key. Zero-length manifests are removed
// locally and reported as ErrEmptyManifest.
func (s *Syncer) uploadFile(ctx context.Context, log *slog.Logger, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	log.Info("file_list upload begin", "file", path, "bytes", info.Size())

	if info.Size() == 0 {
		if rmErr := os.Remove(path); rmErr != nil {
			log.Error("failed to remove empty file_list", "file", path, "error", rmErr)
		}
		return fmt.Errorf("%w: %s", ErrEmptyManifest, path)
	}

	uploadStart := time.Now()

	compressed, err := s.codec.Compress(f)
	if err != nil {
		return fmt.Errorf("compress %s: %w", path, err)
	}

	key, err := partition.FileListObjectKey(name)
	if err != nil {
		return err
	}

	if err := s.store.Put(ctx, key, compressed); err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}

	log.Info("file_list upload succeeded",
		"key", key,
		"uri", s.store.URI(key),
		"bytes", len(compressed),
	)

	if m := metrics.Get(); m != nil {
		columns := strings.Split(name, "_")
		labels := metrics.Labels{Org: columns[1], StreamType: columns[2]}
		m.IncManifestsUploaded(labels)
		m.ObserveManifestBytes(labels, float64(len(compressed)))
		m.ObserveUploadDuration(time.Since(uploadStart).Seconds())
	}

	return nil
}
