package cronjobs

import (
	"sort"
	"sync"

	"go-conceptgraph/types"
)

// SnapshotStore keeps the latest graph of every feed in memory.
type SnapshotStore struct {
	mu        sync.RWMutex
	snapshots map[string]types.FeedSnapshot
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{snapshots: make(map[string]types.FeedSnapshot)}
}

func (s *SnapshotStore) Put(snap types.FeedSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snap.Name] = snap
}

func (s *SnapshotStore) Get(name string) (types.FeedSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[name]
	return snap, ok
}

// List returns all snapshots sorted by feed name.
func (s *SnapshotStore) List() []types.FeedSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.FeedSnapshot, 0, len(s.snapshots))
	for _, snap := range s.snapshots {
		out = append(out, snap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
