//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-relay/domain"
	"chat-relay/domain/event"
	"context"
	"reflect"
	"time"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

type SessionID string

// EventSink is one live session owned by exactly one identity.
// Consume must not block past ctx: a sink that can't accept an event in time
// returns an error.
type EventSink interface {
	ID() SessionID
	Identity() domain.UserID
	ConnectedAt() time.Time
	Consume(ctx context.Context, e event.Event) error
}

// Delivery counts the outcome of one broadcast.
type Delivery struct {
	Delivered int
	Failed    int
}

type IRegistry interface {
	Join(identity domain.UserID, sink EventSink) bool
	Leave(sessionID SessionID) bool
	SinksFor(identity domain.UserID) []EventSink
	Sessions() []EventSink
	Broadcast(ctx context.Context, identity domain.UserID, e event.Event) Delivery
	BroadcastAll(ctx context.Context, e event.Event) Delivery
}

type IFanout interface {
	Broadcast(ctx context.Context, identity domain.UserID, e event.Event) Delivery
	BroadcastToMany(ctx context.Context, identities []domain.UserID, e event.Event) Delivery
	BroadcastAll(ctx context.Context, e event.Event) Delivery
}
