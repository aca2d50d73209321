package pipeline

import "sync"

// RunTracker serializes ingestion per owner: the newest run wins and the
// results of any run started earlier are discarded when they land.
type RunTracker struct {
	mu     sync.Mutex
	latest map[string]string
}

func NewRunTracker() *RunTracker {
	return &RunTracker{latest: make(map[string]string)}
}

// Begin marks runId as the owner's current run, superseding any prior one.
func (t *RunTracker) Begin(ownerId string, runId string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.latest[ownerId] = runId
}

// IsCurrent reports whether runId is still the owner's newest run.
func (t *RunTracker) IsCurrent(ownerId string, runId string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.latest[ownerId] == runId
}

// Finish clears the owner's slot if runId still holds it.
func (t *RunTracker) Finish(ownerId string, runId string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.latest[ownerId] == runId {
		delete(t.latest, ownerId)
	}
}
