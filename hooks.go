package depsync

import (
	"sync"

	"github.com/agentstation/depsync/pkg/events"
)

// EventHook is called once per reported event.
type EventHook func(e events.Event)

// hooks manages event callbacks.
type hooks struct {
	mu        sync.RWMutex
	onEvent   []EventHook
	onAdded   []EventHook
	onUpdated []EventHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnEvent registers a callback for every event.
func (s *syncer) OnEvent(fn EventHook) {
	s.hooks.mu.Lock()
	defer s.hooks.mu.Unlock()
	s.hooks.onEvent = append(s.hooks.onEvent, fn)
}

// OnAdded registers a callback for declarations added to either file.
func (s *syncer) OnAdded(fn EventHook) {
	s.hooks.mu.Lock()
	defer s.hooks.mu.Unlock()
	s.hooks.onAdded = append(s.hooks.onAdded, fn)
}

// OnUpdated registers a callback for versions updated in either file.
func (s *syncer) OnUpdated(fn EventHook) {
	s.hooks.mu.Lock()
	defer s.hooks.mu.Unlock()
	s.hooks.onUpdated = append(s.hooks.onUpdated, fn)
}

// trigger calls the hooks registered for e.
func (h *hooks) trigger(e events.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, hook := range h.onEvent {
		hook(e)
	}
	switch e.Kind {
	case events.AddedToCatalog, events.AddedToBuildFile:
		for _, hook := range h.onAdded {
			hook(e)
		}
	case events.UpdatedCatalogVersion, events.UpdatedBuildFileVersion:
		for _, hook := range h.onUpdated {
			hook(e)
		}
	}
}
