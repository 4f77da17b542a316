package websocket

import (
	"chat-relay/auth"
	"chat-relay/domain"
	"chat-relay/domain/event"
	"chat-relay/errors"
	"chat-relay/mocks"
	"chat-relay/runtime"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	ws "github.com/gorilla/websocket"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type countingObserver struct {
	mu         sync.Mutex
	handshakes map[string]int
	open       int
}

func (c *countingObserver) Handshake(outcome string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handshakes[outcome]++
}

func (c *countingObserver) count(outcome string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handshakes[outcome]
}

func (c *countingObserver) SessionOpened() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open++
}

func (c *countingObserver) SessionClosed() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open--
}

type fixture struct {
	server   *httptest.Server
	registry *runtime.Registry
	tokens   *auth.TokenManager
	ingest   *mocks.MockIChatService
	observer *countingObserver
}

func setup(t *testing.T) fixture {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	f := fixture{
		registry: runtime.NewRegistry(),
		tokens:   auth.NewTokenManager("secret", time.Hour),
		ingest:   mocks.NewMockIChatService(ctrl),
		observer: &countingObserver{handshakes: map[string]int{}},
	}
	gatekeeper := NewGatekeeper(log, f.tokens, f.registry, f.ingest, f.observer,
		NewOriginPolicy([]string{"*"}, log), DefaultSessionConfig())
	f.server = httptest.NewServer(gatekeeper)
	t.Cleanup(func() {
		gatekeeper.CloseAll()
		f.server.Close()
	})
	return f
}

func (f fixture) url(token string) string {
	u := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ws"
	if token != "" {
		u += "?token=" + token
	}
	return u
}

func (f fixture) dial(t *testing.T, identity domain.UserID) *ws.Conn {
	t.Helper()
	token, err := f.tokens.Issue(domain.User{ID: identity, Username: "user"})
	require.NoError(t, err)
	conn, resp, err := ws.DefaultDialer.Dial(f.url(token), nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	t.Cleanup(func() { _ = conn.Close() })
	require.Eventually(t, func() bool { return len(f.registry.SinksFor(identity)) > 0 },
		time.Second, 10*time.Millisecond)
	return conn
}

func TestGatekeeper_Rejects_Bad_Credentials(t *testing.T) {
	f := setup(t)
	other := auth.NewTokenManager("other", time.Hour)
	forged, err := other.Issue(domain.User{ID: 42})
	require.NoError(t, err)

	for name, token := range map[string]string{"missing": "", "garbage": "abc", "forged": forged} {
		t.Run(name, func(t *testing.T) {
			req := require.New(t)

			conn, resp, err := ws.DefaultDialer.Dial(f.url(token), nil)

			// Then the handshake fails with a bare 401
			req.Error(err)
			req.Nil(conn)
			req.Equal(http.StatusUnauthorized, resp.StatusCode)
			_, sessions := f.registry.Stats()
			req.Zero(sessions)
		})
	}
	require.Equal(t, 3, f.observer.count(outcomeRejected))
}

func TestGatekeeper_Broadcast_Reaches_Only_Its_Identity(t *testing.T) {
	req := require.New(t)
	f := setup(t)

	// Given identity 42 and identity 7 connected
	conn42 := f.dial(t, 42)
	conn7 := f.dial(t, 7)

	// When broadcasting ping to 42
	d := f.registry.Broadcast(context.Background(), 42, event.Ping())
	req.Equal(1, d.Delivered)

	// Then 42 receives the ping frame
	req.NoError(conn42.SetReadDeadline(time.Now().Add(time.Second)))
	_, raw, err := conn42.ReadMessage()
	req.NoError(err)
	var frame Frame
	req.NoError(json.Unmarshal(raw, &frame))
	req.Equal("ping", frame.Event)
	req.JSONEq(`{}`, string(frame.Data))

	// And 7 receives nothing
	req.NoError(conn7.SetReadDeadline(time.Now().Add(100 * time.Millisecond)))
	_, _, err = conn7.ReadMessage()
	req.Error(err)
}

func TestGatekeeper_Send_Message_Is_Ingested(t *testing.T) {
	req := require.New(t)
	f := setup(t)
	conn := f.dial(t, 1)

	received := make(chan domain.SendMessageCommand, 1)
	f.ingest.EXPECT().
		IngestMessage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cmd domain.SendMessageCommand) (domain.Message, error) {
			received <- cmd
			return domain.Message{ID: 1, ChatID: cmd.ChatID}, nil
		})

	// When the client emits send_message
	req.NoError(conn.WriteMessage(ws.TextMessage,
		[]byte(`{"event":"send_message","data":{"chat_id":5,"user_id":1,"message":"hi","created_at":"2000-01-01"}}`)))

	// Then the ingest receives the command
	select {
	case cmd := <-received:
		req.Equal(domain.ChatID(5), cmd.ChatID)
		req.Equal(domain.UserID(1), cmd.UserID)
		req.Equal(lo.ToPtr("hi"), cmd.Body)
		req.Nil(cmd.Photo)
	case <-time.After(time.Second):
		req.Fail("send_message was not ingested")
	}
}

func TestGatekeeper_Ingest_Failure_Keeps_Session(t *testing.T) {
	req := require.New(t)
	f := setup(t)
	conn := f.dial(t, 1)

	done := make(chan struct{})
	f.ingest.EXPECT().
		IngestMessage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, domain.SendMessageCommand) (domain.Message, error) {
			close(done)
			return domain.Message{}, errors.ErrMissingField
		})

	req.NoError(conn.WriteMessage(ws.TextMessage, []byte(`{"event":"send_message","data":{"message":"hi"}}`)))
	<-done

	// No error frame is sent back and the session stays registered
	req.NoError(conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond)))
	_, _, err := conn.ReadMessage()
	req.Error(err)
	req.Len(f.registry.SinksFor(1), 1)
}

func TestGatekeeper_Disconnect_Leaves_Room(t *testing.T) {
	req := require.New(t)
	f := setup(t)
	conn := f.dial(t, 3)

	// When the client goes away
	req.NoError(conn.WriteMessage(ws.CloseMessage, ws.FormatCloseMessage(ws.CloseNormalClosure, "")))
	_ = conn.Close()

	// Then its session and room disappear
	req.Eventually(func() bool {
		rooms, sessions := f.registry.Stats()
		return rooms == 0 && sessions == 0
	}, time.Second, 10*time.Millisecond)
	req.Eventually(func() bool {
		f.observer.mu.Lock()
		defer f.observer.mu.Unlock()
		return f.observer.open == 0
	}, time.Second, 10*time.Millisecond)
}

func TestSession_Consume_Slow_Consumer(t *testing.T) {
	req := require.New(t)
	cfg := DefaultSessionConfig()
	cfg.BufferSize = 1
	session := newSession(nil, 1, cfg, slog.Default())

	req.NoError(session.Consume(context.Background(), event.Ping()))
	req.ErrorIs(session.Consume(context.Background(), event.Ping()), errors.ErrSlowConsumer)
	req.ErrorIs(session.Consume(context.Background(), event.Ping()), errors.ErrSessionClosed)

	select {
	case <-session.Done():
	default:
		req.Fail("slow session should be closed")
	}
}

func TestSession_Consume_Honours_Context(t *testing.T) {
	req := require.New(t)
	session := newSession(nil, 1, DefaultSessionConfig(), slog.Default())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// An expired delivery budget fails the event but keeps the session open
	req.ErrorIs(session.Consume(ctx, event.Ping()), context.Canceled)
	req.Empty(session.send)

	select {
	case <-session.Done():
		req.Fail("session should stay open")
	default:
	}
	req.NoError(session.Consume(context.Background(), event.Ping()))
}
