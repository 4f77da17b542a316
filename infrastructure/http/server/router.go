package server

import (
	"chat-relay/auth"
	"chat-relay/observability"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type statsSource interface {
	Stats() (rooms, sessions int)
}

// Routes gathers what the router serves besides the REST handlers.
type Routes struct {
	Verifier   auth.Verifier
	Gatekeeper http.Handler
	Metrics    http.Handler
	Stats      statsSource
	// ImagesDir is served under /images/ when attachments are kept on disk.
	ImagesDir string
}

func NewRouter(log *slog.Logger, h *Handler, routes Routes) http.Handler {
	mux := http.NewServeMux()
	protected := auth.Middleware(routes.Verifier, func(w http.ResponseWriter, err error) {
		writeError(log, w, err)
	})

	handle := func(pattern, operation string, handler http.HandlerFunc) {
		mux.Handle(pattern, otelhttp.NewHandler(handler, operation))
	}
	handleProtected := func(pattern, operation string, handler http.HandlerFunc) {
		mux.Handle(pattern, otelhttp.NewHandler(protected(handler), operation))
	}

	handle("POST /register", "register", h.Register)
	handle("POST /login", "login", h.Login)

	handleProtected("POST /group-chat", "create_group_chat", h.CreateGroupChat)
	handleProtected("GET /user/{id}/chats", "list_chats", h.ListChats)
	handleProtected("POST /message/{chatId}/{userId}/send", "send_attachment", h.SendAttachment)
	handleProtected("GET /getuserlist/{username}", "search_users", h.SearchUsers)
	handleProtected("GET /users", "list_users", h.ListUsers)
	handleProtected("POST /user", "get_user", h.GetUser)
	handleProtected("POST /update/password", "update_password", h.UpdatePassword)
	handleProtected("POST /update/profile_picture", "update_profile_picture", h.UpdateProfilePicture)
	handleProtected("GET /debug/keys", "inspect_store", h.InspectStore)

	if routes.ImagesDir != "" {
		mux.Handle("GET /images/", http.StripPrefix("/images/", http.FileServer(http.Dir(routes.ImagesDir))))
	}
	if routes.Gatekeeper != nil {
		mux.Handle("GET /ws", routes.Gatekeeper)
	}
	if routes.Metrics != nil {
		mux.Handle("GET /metrics", routes.Metrics)
	}
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		if routes.Stats == nil {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
			return
		}
		writeJSON(w, http.StatusOK, observability.Snapshot(routes.Stats))
	})
	return mux
}
