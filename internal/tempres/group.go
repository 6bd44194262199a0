package tempres

import (
	"context"
	"sync"
)

// Group tracks related resources so they can be released together.
type Group struct {
	guard *Guard
	owner string

	mu        sync.Mutex
	resources []*Resource
}

// NewGroup returns an empty group whose resources default to owner.
func (g *Guard) NewGroup(owner string) *Group {
	return &Group{guard: g, owner: owner}
}

// Acquire creates a resource and tracks it in the group.
func (grp *Group) Acquire(ctx context.Context, req Request) (*Resource, error) {
	if req.Owner == "" {
		req.Owner = grp.owner
	}

	res, err := grp.guard.Acquire(ctx, req)
	if err != nil {
		return nil, err
	}

	grp.mu.Lock()
	grp.resources = append(grp.resources, res)
	grp.mu.Unlock()

	return res, nil
}

// Len returns the number of tracked resources.
func (grp *Group) Len() int {
	grp.mu.Lock()
	defer grp.mu.Unlock()
	return len(grp.resources)
}

// Resources returns the tracked resources in creation order.
func (grp *Group) Resources() []*Resource {
	grp.mu.Lock()
	defer grp.mu.Unlock()
	return append([]*Resource(nil), grp.resources...)
}

// Release releases all tracked resources in reverse creation order and
// empties the group. A resource that fails to go away does not stop the
// others from being attempted.
func (grp *Group) Release() {
	grp.mu.Lock()
	tracked := grp.resources
	grp.resources = nil
	grp.mu.Unlock()

	for i := len(tracked) - 1; i >= 0; i-- {
		grp.guard.Release(tracked[i])
	}
}
