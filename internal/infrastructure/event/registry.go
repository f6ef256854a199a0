package event

import (
	"sort"
	"sync"

	"github.com/hesab/backend/internal/domain/shared"
)

// subscription is one handler and the event types it asked for. No types
// means every event.
type subscription struct {
	handler shared.EventHandler
	types   map[string]struct{}
}

func (s subscription) wants(eventType string) bool {
	if len(s.types) == 0 {
		return true
	}
	_, ok := s.types[eventType]
	return ok
}

func (s subscription) typeList() []string {
	if len(s.types) == 0 {
		return nil
	}
	out := make([]string, 0, len(s.types))
	for t := range s.types {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// subscriptions keeps handlers in the order they subscribed. Subscribing the
// same handler again widens its types instead of delivering twice, and an
// empty type list on a resubscribe widens it to every event.
type subscriptions struct {
	mu   sync.RWMutex
	list []subscription
}

// add registers handler and returns the types it now listens to, nil
// meaning every event. A new handler with no eventTypes falls back to
// handler.EventTypes().
func (s *subscriptions) add(handler shared.EventHandler, eventTypes []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.list {
		if s.list[i].handler != handler {
			continue
		}
		if len(eventTypes) == 0 || len(s.list[i].types) == 0 {
			s.list[i].types = nil
			return nil
		}
		for _, t := range eventTypes {
			s.list[i].types[t] = struct{}{}
		}
		return s.list[i].typeList()
	}

	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	sub := subscription{handler: handler}
	if len(eventTypes) > 0 {
		sub.types = make(map[string]struct{}, len(eventTypes))
		for _, t := range eventTypes {
			sub.types[t] = struct{}{}
		}
	}
	s.list = append(s.list, sub)
	return sub.typeList()
}

func (s *subscriptions) remove(handler shared.EventHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.list[:0]
	for _, sub := range s.list {
		if sub.handler != handler {
			kept = append(kept, sub)
		}
	}
	s.list = kept
}

// matching returns a snapshot of the handlers that want eventType
func (s *subscriptions) matching(eventType string) []shared.EventHandler {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []shared.EventHandler
	for _, sub := range s.list {
		if sub.wants(eventType) {
			out = append(out, sub.handler)
		}
	}
	return out
}
