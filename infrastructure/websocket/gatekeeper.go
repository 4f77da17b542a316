package websocket

import (
	"chat-relay/auth"
	"chat-relay/contract"
	"log/slog"
	"net/http"

	ws "github.com/gorilla/websocket"
)

const (
	outcomeAccepted = "accepted"
	outcomeRejected = "rejected"
)

// Observer receives session lifecycle notifications.
type Observer interface {
	Handshake(outcome string)
	SessionOpened()
	SessionClosed()
}

// Gatekeeper authenticates socket handshakes and binds each accepted
// connection to its identity's room.
type Gatekeeper struct {
	log      *slog.Logger
	verifier auth.Verifier
	registry contract.IRegistry
	ingest   MessageIngester
	observer Observer
	cfg      SessionConfig
	upgrader ws.Upgrader
}

func NewGatekeeper(log *slog.Logger,
	verifier auth.Verifier,
	registry contract.IRegistry,
	ingest MessageIngester,
	observer Observer,
	origins OriginPolicy,
	cfg SessionConfig) *Gatekeeper {
	return &Gatekeeper{
		log:      log,
		verifier: verifier,
		registry: registry,
		ingest:   ingest,
		observer: observer,
		cfg:      cfg,
		upgrader: ws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     origins.Check,
		},
	}
}

// Authenticate reads the token query parameter and verifies it.
func (g *Gatekeeper) Authenticate(r *http.Request) (auth.Identity, error) {
	return g.verifier.Verify(r.URL.Query().Get("token"))
}

// ServeHTTP rejects an unauthenticated handshake with a bare 401 before any
// upgrade, so no session ever exists for it. An accepted connection is served
// until the peer leaves.
func (g *Gatekeeper) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, err := g.Authenticate(r)
	if err != nil {
		g.observer.Handshake(outcomeRejected)
		g.log.Debug("Socket handshake rejected", "remote", r.RemoteAddr, "error", err)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.observer.Handshake(outcomeRejected)
		g.log.Warn("Socket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	g.observer.Handshake(outcomeAccepted)

	session := newSession(conn, identity.UserID, g.cfg, g.log)
	g.registry.Join(identity.UserID, session)
	g.observer.SessionOpened()
	session.log.Info("Session connected")

	defer func() {
		g.registry.Leave(session.ID())
		session.Close()
		g.observer.SessionClosed()
		session.log.Info("Session disconnected")
	}()

	go session.writePump()
	session.readPump(r.Context(), g.ingest)
}

// CloseAll disconnects every live session, used on shutdown since hijacked
// connections are not tracked by the HTTP server.
func (g *Gatekeeper) CloseAll() {
	for _, sink := range g.registry.Sessions() {
		if session, ok := sink.(*Session); ok {
			session.Close()
		}
	}
}
