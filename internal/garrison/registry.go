package garrison

import (
	"context"
	"sort"
	"sync"

	"github.com/napolitain/battle-lnk/internal/errx"
)

// Registry resolves fortress ids to fortresses
type Registry interface {
	Get(ctx context.Context, id string) (Fortress, error)
	Put(ctx context.Context, f Fortress) error
	List(ctx context.Context) ([]Fortress, error)
}

// MemoryRegistry is a Registry held in memory. Values are copied in and out,
// so callers never share group storage with it.
type MemoryRegistry struct {
	mu         sync.RWMutex
	fortresses map[string]Fortress
}

// NewMemoryRegistry creates a registry seeded with fortresses. Later
// entries replace earlier ones with the same id.
func NewMemoryRegistry(fortresses ...Fortress) *MemoryRegistry {
	r := &MemoryRegistry{fortresses: make(map[string]Fortress, len(fortresses))}
	for _, f := range fortresses {
		r.fortresses[f.ID] = f.Clone()
	}
	return r
}

func (r *MemoryRegistry) Get(ctx context.Context, id string) (Fortress, error) {
	if err := ctx.Err(); err != nil {
		return Fortress{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.fortresses[id]
	if !ok {
		return Fortress{}, errx.NotFound("fortress %q", id)
	}
	return f.Clone(), nil
}

func (r *MemoryRegistry) Put(ctx context.Context, f Fortress) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := f.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.fortresses[f.ID] = f.Clone()
	return nil
}

// List returns all fortresses sorted by id
func (r *MemoryRegistry) List(ctx context.Context) ([]Fortress, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Fortress, 0, len(r.fortresses))
	for _, f := range r.fortresses {
		out = append(out, f.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}
