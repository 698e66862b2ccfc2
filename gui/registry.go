package gui

import (
	"sync"

	"github.com/google/uuid"
)

// Instance is a GUI as tracked by a Registry, independent of its page key type.
type Instance interface {
	// Viewer returns the viewer the GUI belongs to.
	Viewer() uuid.UUID
	// Destroy destroys the GUI and reports if it removed any event subscriptions.
	Destroy() bool
	// Destroyed checks if the GUI was destroyed.
	Destroyed() bool
}

// Registry maps viewers to the single GUI currently active for them. A Registry is safe for concurrent
// use.
type Registry struct {
	mu        sync.Mutex
	instances map[uuid.UUID]Instance
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{instances: make(map[uuid.UUID]Instance)}
}

// Swap registers inst for its viewer. A different GUI previously registered for the same viewer is
// destroyed and returned.
func (r *Registry) Swap(inst Instance) (prev Instance) {
	r.mu.Lock()
	prev = r.instances[inst.Viewer()]
	r.instances[inst.Viewer()] = inst
	r.mu.Unlock()

	if prev == nil || prev == inst {
		return nil
	}
	prev.Destroy()
	return prev
}

// Lookup returns the GUI registered for the viewer passed.
func (r *Registry) Lookup(viewer uuid.UUID) (Instance, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inst, ok := r.instances[viewer]
	return inst, ok
}

// LookupGUI returns the GUI registered for the viewer passed if it has page keys of type K.
func LookupGUI[K comparable](r *Registry, viewer uuid.UUID) (*GUI[K], bool) {
	inst, ok := r.Lookup(viewer)
	if !ok {
		return nil, false
	}
	g, ok := inst.(*GUI[K])
	return g, ok
}

// Remove removes inst from the registry if it is still the GUI registered for its viewer. Remove
// reports if inst was removed.
func (r *Registry) Remove(inst Instance) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.instances[inst.Viewer()]; !ok || cur != inst {
		return false
	}
	delete(r.instances, inst.Viewer())
	return true
}

// Len returns the amount of registered GUIs.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.instances)
}

// CleanupAll destroys every registered GUI and empties the registry. It returns the amount of GUIs
// destroyed.
func (r *Registry) CleanupAll() int {
	r.mu.Lock()
	all := make([]Instance, 0, len(r.instances))
	for _, inst := range r.instances {
		all = append(all, inst)
	}
	clear(r.instances)
	r.mu.Unlock()

	for _, inst := range all {
		inst.Destroy()
	}
	return len(all)
}
