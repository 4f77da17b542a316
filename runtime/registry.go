package runtime

import (
	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/domain/event"
	"context"
	"sync"
)

type room map[contract.SessionID]contract.EventSink

// Registry maps every identity to the set of its live sessions.
// A single RWMutex guards both maps; delivery always happens on a snapshot,
// outside the lock, so a slow sink never blocks joins or leaves.
type Registry struct {
	mu     sync.RWMutex
	rooms  map[domain.RoomKey]room
	owners map[contract.SessionID]domain.RoomKey
}

func NewRegistry() *Registry {
	return &Registry{
		rooms:  make(map[domain.RoomKey]room),
		owners: make(map[contract.SessionID]domain.RoomKey),
	}
}

// Join registers the session in its identity's room, creating the room on the fly.
// It returns false when the session is already registered.
func (r *Registry) Join(identity domain.UserID, sink contract.EventSink) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.owners[sink.ID()]; exists {
		return false
	}
	key := domain.RoomKeyFor(identity)
	members, ok := r.rooms[key]
	if !ok {
		members = make(room)
		r.rooms[key] = members
	}
	members[sink.ID()] = sink
	r.owners[sink.ID()] = key
	return true
}

// Leave removes the session from whichever room holds it.
// Empty rooms are dropped so the map only grows with live identities.
func (r *Registry) Leave(sessionID contract.SessionID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key, ok := r.owners[sessionID]
	if !ok {
		return false
	}
	delete(r.owners, sessionID)
	if members, ok := r.rooms[key]; ok {
		delete(members, sessionID)
		if len(members) == 0 {
			delete(r.rooms, key)
		}
	}
	return true
}

// SinksFor returns a snapshot of the identity's sessions, nil when offline.
func (r *Registry) SinksFor(identity domain.UserID) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.rooms[domain.RoomKeyFor(identity)]
	if !ok {
		return nil
	}
	sinks := make([]contract.EventSink, 0, len(members))
	for _, sink := range members {
		sinks = append(sinks, sink)
	}
	return sinks
}

// Sessions returns a snapshot of every live session.
func (r *Registry) Sessions() []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sinks := make([]contract.EventSink, 0, len(r.owners))
	for _, members := range r.rooms {
		for _, sink := range members {
			sinks = append(sinks, sink)
		}
	}
	return sinks
}

// Stats returns the number of non-empty rooms and live sessions.
func (r *Registry) Stats() (rooms, sessions int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms), len(r.owners)
}

// Broadcast delivers the event to every session of the identity.
// An offline identity is not an error: nothing is queued.
func (r *Registry) Broadcast(ctx context.Context, identity domain.UserID, e event.Event) contract.Delivery {
	return deliver(ctx, r.SinksFor(identity), e)
}

func (r *Registry) BroadcastAll(ctx context.Context, e event.Event) contract.Delivery {
	return deliver(ctx, r.Sessions(), e)
}

func deliver(ctx context.Context, sinks []contract.EventSink, e event.Event) contract.Delivery {
	var d contract.Delivery
	for _, sink := range sinks {
		if err := sink.Consume(ctx, e); err != nil {
			d.Failed++
			continue
		}
		d.Delivered++
	}
	return d
}
