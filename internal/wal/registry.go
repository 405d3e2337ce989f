// Package wal tracks write activity on local write-ahead artifacts.
package wal

import "sync"

// StreamType identifies the kind of artifact held in the WAL directory.
type StreamType string

const (
	StreamTypeLogs     StreamType = "logs"
	StreamTypeMetrics  StreamType = "metrics"
	StreamTypeTraces   StreamType = "traces"
	StreamTypeFileList StreamType = "file_list"
)

// Registry tracks which WAL artifacts are currently held open by writers.
// Ingest writers acquire a lease before appending to an artifact and release
// it once the artifact is sealed; anything holding a lease must not be moved
// or deleted. Safe for concurrent use.
type Registry struct {
	mu   sync.Mutex
	open map[string]int // refcount per artifact
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{open: make(map[string]int)}
}

// Acquire marks an artifact as in use and returns a lease that must be
// released when the writer is done with it.
func (r *Registry) Acquire(org, stream string, st StreamType, name string) *Lease {
	key := artifactKey(org, stream, st, name)
	r.mu.Lock()
	r.open[key]++
	r.mu.Unlock()
	return &Lease{registry: r, key: key}
}

// InUse reports whether any writer currently holds the artifact.
func (r *Registry) InUse(org, stream string, st StreamType, name string) bool {
	key := artifactKey(org, stream, st, name)
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.open[key] > 0
}

func artifactKey(org, stream string, st StreamType, name string) string {
	return org + "/" + stream + "/" + string(st) + "/" + name
}

// Lease represents a writer's hold on a WAL artifact.
type Lease struct {
	registry *Registry
	key      string
	once     sync.Once
}

// Release drops the writer's hold. Calling Release more than once is a no-op.
func (l *Lease) Release() {
	l.once.Do(func() {
		l.registry.mu.Lock()
		defer l.registry.mu.Unlock()
		if l.registry.open[l.key] > 1 {
			l.registry.open[l.key]--
			return
		}
		delete(l.registry.open, l.key)
	})
}
