package syncer

import (
	"errors"
	"time"
)

// Version information (set via ldflags)
var (
	Version = "v0.1.0"
	GitSHA  = "unknown"
)

// ErrEmptyManifest marks a zero-length manifest that was removed
// locally without being uploaded.
var ErrEmptyManifest = errors.New("file_list manifest is empty")

// Outcome classifies what a sync cycle did with one manifest.
type Outcome int

const (
	OutcomeUploaded     Outcome = iota // uploaded and removed locally
	OutcomeSkippedInUse                // writer still appending, left untouched
	OutcomeRemovedEmpty                // zero-length, deleted without upload
	OutcomeVanished                    // removed by another actor before open
	OutcomeRetained                    // failed, kept on disk for the next cycle
)

// Stats summarizes a single sync cycle.
type Stats struct {
	Scanned      int
	Uploaded     int
	SkippedInUse int
	RemovedEmpty int
	Vanished     int
	Retained     int
	Duration     time.Duration
}

func (st *Stats) record(o Outcome) {
	switch o {
	case OutcomeUploaded:
		st.Uploaded++
	case OutcomeSkippedInUse:
		st.SkippedInUse++
	case OutcomeRemovedEmpty:
		st.RemovedEmpty++
	case OutcomeVanished:
		st.Vanished++
	case OutcomeRetained:
		st.Retained++
	}
}
