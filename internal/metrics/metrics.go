package metrics

import (
	"sync"
	"time"
)

type RequestSample struct {
	Path      string        `json:"path"`
	Method    string        `json:"method"`
	Status    int           `json:"status"`
	Latency   time.Duration `json:"latency"`
	Timestamp time.Time     `json:"timestamp"`
}

// Recorder keeps the most recent request samples in a bounded ring.
type Recorder struct {
	mu      sync.Mutex
	limit   int
	samples []RequestSample
}

func NewRecorder(limit int) *Recorder {
	if limit <= 0 {
		limit = 256
	}
	return &Recorder{limit: limit}
}

func (r *Recorder) Record(s RequestSample) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples = append(r.samples, s)
	if len(r.samples) > r.limit {
		r.samples = r.samples[len(r.samples)-r.limit:]
	}
}

// Snapshot returns a copy, newest last.
func (r *Recorder) Snapshot() []RequestSample {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RequestSample(nil), r.samples...)
}
