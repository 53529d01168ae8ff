package repositories

import (
	"context"
	"encoding/json"
	"sync"

	"perfume-store/models"
)

// CartStorage is the durable slot a cart snapshot is serialized into on every
// mutation. Load must treat "absent" as an empty snapshot; the store treats
// malformed data the same way, so adapters return raw decode errors and let
// the caller degrade.
type CartStorage interface {
	Load(ctx context.Context, key string) ([]models.CartLine, error)
	Save(ctx context.Context, key string, lines []models.CartLine) error
	Delete(ctx context.Context, key string) error
}

// MemoryCartRepository keeps serialized snapshots in process memory. Used in
// tests and as the degraded mode when no external storage is reachable. It
// stores JSON bytes rather than live slices so loads exercise the same
// round-trip as the real adapters.
type MemoryCartRepository struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

func NewMemoryCartRepository() *MemoryCartRepository {
	return &MemoryCartRepository{snapshots: make(map[string][]byte)}
}

func (r *MemoryCartRepository) Load(ctx context.Context, key string) ([]models.CartLine, error) {
	r.mu.RLock()
	raw, ok := r.snapshots[key]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	var lines []models.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *MemoryCartRepository) Save(ctx context.Context, key string, lines []models.CartLine) error {
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.snapshots[key] = raw
	r.mu.Unlock()
	return nil
}

func (r *MemoryCartRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	delete(r.snapshots, key)
	r.mu.Unlock()
	return nil
}

// Corrupt overwrites a stored snapshot with non-JSON bytes. Test hook for the
// malformed-snapshot degradation path.
func (r *MemoryCartRepository) Corrupt(key string) {
	r.mu.Lock()
	r.snapshots[key] = []byte("{not json")
	r.mu.Unlock()
}
