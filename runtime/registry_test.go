package runtime

import (
	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/domain/event"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type Sink struct {
	mu       sync.Mutex
	id       contract.SessionID
	identity domain.UserID
	received []event.Event
	err      error
}

func newSink(identity domain.UserID) *Sink {
	return &Sink{id: contract.SessionID(uuid.NewString()), identity: identity}
}

func (s *Sink) ID() contract.SessionID { return s.id }

func (s *Sink) Identity() domain.UserID { return s.identity }

func (s *Sink) ConnectedAt() time.Time { return time.Time{} }

func (s *Sink) Events() []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]event.Event(nil), s.received...)
}

func (s *Sink) Consume(_ context.Context, e event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.received = append(s.received, e)
	return nil
}

func TestRegistry_Join_One_Identity_One_Session(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	sink := newSink(42)

	// Given no session is connected
	rooms, sessions := registry.Stats()
	req.Zero(rooms)
	req.Zero(sessions)

	// When identity 42 joins
	req.True(registry.Join(42, sink))

	// Then its room holds exactly that session
	req.Len(registry.SinksFor(42), 1)
	req.Contains(registry.SinksFor(42), contract.EventSink(sink))
	req.Nil(registry.SinksFor(7))
}

func TestRegistry_Join_Is_Idempotent_Per_Session(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	sink := newSink(1)

	req.True(registry.Join(1, sink))
	req.False(registry.Join(1, sink))

	_, sessions := registry.Stats()
	req.Equal(1, sessions)
}

func TestRegistry_Multiple_Sessions_Same_Identity(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	phone, laptop := newSink(1), newSink(1)

	registry.Join(1, phone)
	registry.Join(1, laptop)

	// When one session leaves
	req.True(registry.Leave(phone.ID()))

	// Then the other one is still reachable
	req.Equal([]contract.EventSink{laptop}, registry.SinksFor(1))
}

func TestRegistry_Leave_Drops_Empty_Room(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	sink := newSink(3)
	registry.Join(3, sink)

	req.True(registry.Leave(sink.ID()))
	req.False(registry.Leave(sink.ID()))

	rooms, sessions := registry.Stats()
	req.Zero(rooms)
	req.Zero(sessions)
	req.Nil(registry.SinksFor(3))
}

func TestRegistry_Broadcast_Targets_Only_Identity(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	target, other := newSink(42), newSink(43)
	registry.Join(42, target)
	registry.Join(43, other)

	// When pinging identity 42
	delivery := registry.Broadcast(context.Background(), 42, event.Ping())

	// Then only its session receives the event
	req.Equal(contract.Delivery{Delivered: 1}, delivery)
	req.Len(target.Events(), 1)
	req.Equal("ping", target.Events()[0].Name())
	req.Empty(other.Events())
}

func TestRegistry_Broadcast_Offline_Identity_Is_Noop(t *testing.T) {
	registry := NewRegistry()
	delivery := registry.Broadcast(context.Background(), 99, event.Ping())
	require.Equal(t, contract.Delivery{}, delivery)
}

func TestRegistry_BroadcastAll_Counts_Failures(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	ok1, ok2, broken := newSink(1), newSink(2), newSink(3)
	broken.err = fmt.Errorf("buffer full")
	registry.Join(1, ok1)
	registry.Join(2, ok2)
	registry.Join(3, broken)

	delivery := registry.BroadcastAll(context.Background(), event.Ping())

	req.Equal(contract.Delivery{Delivered: 2, Failed: 1}, delivery)
	req.Len(ok1.Events(), 1)
	req.Len(ok2.Events(), 1)
}

func TestRegistry_Concurrent_Join_Leave(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	const identities, perIdentity = 20, 25

	var wg sync.WaitGroup
	kept := make(chan *Sink, identities*perIdentity)
	for i := 1; i <= identities; i++ {
		for j := 0; j < perIdentity; j++ {
			wg.Add(1)
			go func(id domain.UserID, leave bool) {
				defer wg.Done()
				sink := newSink(id)
				registry.Join(id, sink)
				registry.BroadcastAll(context.Background(), event.Ping())
				if leave {
					registry.Leave(sink.ID())
					return
				}
				kept <- sink
			}(domain.UserID(i), j%2 == 0)
		}
	}
	wg.Wait()
	close(kept)

	// Then exactly the sessions that did not leave are registered
	expected := 0
	for sink := range kept {
		expected++
		req.Contains(registry.SinksFor(sink.Identity()), contract.EventSink(sink))
	}
	_, sessions := registry.Stats()
	req.Equal(expected, sessions)
	req.Len(registry.Sessions(), expected)
}
