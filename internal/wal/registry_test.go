package wal

import (
	"sync"
	"testing"
)

func TestRegistryInUse(t *testing.T) {
	reg := NewRegistry()

	if reg.InUse("org1", "s1", StreamTypeFileList, "f.json") {
		t.Error("fresh registry should report nothing in use")
	}

	lease := reg.Acquire("org1", "s1", StreamTypeFileList, "f.json")
	if !reg.InUse("org1", "s1", StreamTypeFileList, "f.json") {
		t.Error("artifact should be in use after Acquire")
	}

	// Different coordinates must not be affected.
	if reg.InUse("org2", "s1", StreamTypeFileList, "f.json") {
		t.Error("different org should not be in use")
	}
	if reg.InUse("org1", "s1", StreamTypeLogs, "f.json") {
		t.Error("different stream type should not be in use")
	}

	lease.Release()
	if reg.InUse("org1", "s1", StreamTypeFileList, "f.json") {
		t.Error("artifact should be free after Release")
	}
}

func TestRegistryRefcount(t *testing.T) {
	reg := NewRegistry()

	l1 := reg.Acquire("", "", StreamTypeFileList, "shared.json")
	l2 := reg.Acquire("", "", StreamTypeFileList, "shared.json")

	l1.Release()
	if !reg.InUse("", "", StreamTypeFileList, "shared.json") {
		t.Error("artifact should stay in use while a second lease is held")
	}

	l2.Release()
	if reg.InUse("", "", StreamTypeFileList, "shared.json") {
		t.Error("artifact should be free after all leases are released")
	}
}

func TestLeaseReleaseIdempotent(t *testing.T) {
	reg := NewRegistry()

	l1 := reg.Acquire("", "", StreamTypeFileList, "a.json")
	l2 := reg.Acquire("", "", StreamTypeFileList, "a.json")

	// Double release of one lease must not consume the other's hold.
	l1.Release()
	l1.Release()

	if !reg.InUse("", "", StreamTypeFileList, "a.json") {
		t.Error("second lease should still hold the artifact")
	}

	l2.Release()
	if reg.InUse("", "", StreamTypeFileList, "a.json") {
		t.Error("artifact should be free after both leases released")
	}
}

func TestRegistryConcurrent(t *testing.T) {
	reg := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lease := reg.Acquire("org", "stream", StreamTypeLogs, "hot.json")
			reg.InUse("org", "stream", StreamTypeLogs, "hot.json")
			lease.Release()
		}()
	}
	wg.Wait()

	if reg.InUse("org", "stream", StreamTypeLogs, "hot.json") {
		t.Error("artifact should be free after all goroutines released")
	}
}
