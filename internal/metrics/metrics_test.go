package metrics

import (
	"testing"
	"time"
)

func TestRecorderKeepsMostRecentSamples(t *testing.T) {
	rec := NewRecorder(2)
	now := time.Now().UTC()

	rec.Record(RequestSample{Path: "/a", Timestamp: now})
	rec.Record(RequestSample{Path: "/b", Timestamp: now})
	rec.Record(RequestSample{Path: "/c", Timestamp: now})

	got := rec.Snapshot()
	if len(got) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(got))
	}
	if got[0].Path != "/b" || got[1].Path != "/c" {
		t.Fatalf("expected oldest sample evicted, got %+v", got)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	rec := NewRecorder(4)
	rec.Record(RequestSample{Path: "/a"})

	snap := rec.Snapshot()
	snap[0].Path = "/mutated"

	if rec.Snapshot()[0].Path != "/a" {
		t.Fatalf("snapshot mutation leaked into recorder")
	}
}
