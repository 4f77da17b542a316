package websocket

import (
	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/domain/event"
	"chat-relay/errors"
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"
)

// MessageIngester is the part of the chat service a session feeds.
type MessageIngester interface {
	IngestMessage(ctx context.Context, cmd domain.SendMessageCommand) (domain.Message, error)
}

type SessionConfig struct {
	BufferSize     int
	MaxMessageSize int64
	PingPeriod     time.Duration
	PongWait       time.Duration
	WriteWait      time.Duration
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		BufferSize:     256,
		MaxMessageSize: 64 * 1024,
		PingPeriod:     54 * time.Second,
		PongWait:       60 * time.Second,
		WriteWait:      10 * time.Second,
	}
}

// Session is one live socket owned by exactly one identity.
// The read pump feeds inbound frames to the ingester; the write pump is the
// only writer of data frames. Consume never blocks: a full buffer closes
// the session.
type Session struct {
	id          contract.SessionID
	identity    domain.UserID
	connectedAt time.Time
	conn        *ws.Conn
	cfg         SessionConfig
	send        chan []byte
	done        chan struct{}
	closeOnce   sync.Once
	log         *slog.Logger
}

func newSession(conn *ws.Conn, identity domain.UserID, cfg SessionConfig, log *slog.Logger) *Session {
	id := contract.SessionID(uuid.NewString())
	return &Session{
		id:          id,
		identity:    identity,
		connectedAt: time.Now().UTC(),
		conn:        conn,
		cfg:         cfg,
		send:        make(chan []byte, cfg.BufferSize),
		done:        make(chan struct{}),
		log:         log.With("session_id", id, "user_id", identity),
	}
}

func (s *Session) ID() contract.SessionID { return s.id }

func (s *Session) Identity() domain.UserID { return s.identity }

func (s *Session) ConnectedAt() time.Time { return s.connectedAt }

func (s *Session) Consume(ctx context.Context, e event.Event) error {
	frame, err := encode(e)
	if err != nil {
		return err
	}
	select {
	case <-s.done:
		return errors.ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	select {
	case s.send <- frame:
		return nil
	case <-s.done:
		return errors.ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	default:
		s.log.Warn("Send buffer full, disconnecting slow session", "event", e.Name())
		s.Close()
		return errors.ErrSlowConsumer
	}
}

// Close stops the write pump, which sends a close frame and releases the connection.
func (s *Session) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// Done is closed once the session is closing.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// readPump returns when the peer goes away or the connection breaks.
func (s *Session) readPump(ctx context.Context, ingest MessageIngester) {
	s.conn.SetReadLimit(s.cfg.MaxMessageSize)
	if err := s.conn.SetReadDeadline(time.Now().Add(s.cfg.PongWait)); err != nil {
		s.log.Debug("Cannot set read deadline", "error", err)
	}
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.cfg.PongWait))
	})

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			s.logReadError(err)
			return
		}
		s.handleFrame(ctx, ingest, raw)
	}
}

// handleFrame has no error channel back to the sender: failures are only logged.
func (s *Session) handleFrame(ctx context.Context, ingest MessageIngester, raw []byte) {
	var frame Frame
	if err := json.Unmarshal(raw, &frame); err != nil {
		s.log.Warn("Invalid frame", "error", err)
		return
	}
	if frame.Event != SendMessageEvent {
		s.log.Debug("Ignoring unknown event", "event", frame.Event)
		return
	}
	var cmd domain.SendMessageCommand
	if err := json.Unmarshal(frame.Data, &cmd); err != nil {
		s.log.Warn("Invalid send_message payload", "error", err)
		return
	}
	message, err := ingest.IngestMessage(ctx, cmd)
	if err != nil {
		s.log.Error("Message ingest failed", "chat_id", cmd.ChatID, "error", err)
		return
	}
	s.log.Debug("Message ingested", "chat_id", message.ChatID, "message_id", message.ID)
}

func (s *Session) logReadError(err error) {
	switch {
	case errors.Is(err, ws.ErrReadLimit):
		s.log.Warn("Frame exceeded maximum size", "max", s.cfg.MaxMessageSize)
	case ws.IsUnexpectedCloseError(err, ws.CloseNormalClosure, ws.CloseGoingAway, ws.CloseAbnormalClosure):
		s.log.Warn("Unexpected socket close", "error", err)
	default:
		s.log.Debug("Session disconnected", "error", err)
	}
}

func (s *Session) writePump() {
	ticker := time.NewTicker(s.cfg.PingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case frame := <-s.send:
			if !s.write(ws.TextMessage, frame) {
				return
			}
		case <-ticker.C:
			if !s.write(ws.PingMessage, nil) {
				return
			}
		case <-s.done:
			_ = s.conn.WriteControl(ws.CloseMessage,
				ws.FormatCloseMessage(ws.CloseNormalClosure, ""), time.Now().Add(s.cfg.WriteWait))
			return
		}
	}
}

func (s *Session) write(messageType int, payload []byte) bool {
	if err := s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteWait)); err != nil {
		s.log.Debug("Cannot set write deadline", "error", err)
		return false
	}
	if err := s.conn.WriteMessage(messageType, payload); err != nil {
		s.log.Debug("Write failed", "error", err)
		return false
	}
	return true
}
