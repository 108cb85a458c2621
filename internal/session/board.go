package session

import (
	"sort"
	"sync"
)

// Board holds the surfaces of one front end, created on first use.
type Board struct {
	opts []Option

	mu       sync.Mutex
	surfaces map[string]*Surface
}

// NewBoard creates a board whose surfaces are built with opts.
func NewBoard(opts ...Option) *Board {
	return &Board{opts: opts, surfaces: make(map[string]*Surface)}
}

// Surface returns the surface called name, creating it if needed. Extra options apply
// only when the surface is created.
func (b *Board) Surface(name string, opts ...Option) *Surface {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.surfaces[name]
	if !ok {
		all := append(append([]Option(nil), b.opts...), opts...)
		s = NewSurface(name, all...)
		b.surfaces[name] = s
	}
	return s
}

// Snapshots returns the state of every surface, sorted by name.
func (b *Board) Snapshots() []Snapshot {
	b.mu.Lock()
	list := make([]*Surface, 0, len(b.surfaces))
	for _, s := range b.surfaces {
		list = append(list, s)
	}
	b.mu.Unlock()
	out := make([]Snapshot, 0, len(list))
	for _, s := range list {
		out = append(out, s.Snapshot())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Surface < out[j].Surface })
	return out
}

// Close closes every surface.
func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.surfaces {
		s.Close()
	}
}
