package server

import (
	"chat-relay/auth"
	"chat-relay/domain"
	"chat-relay/domain/event"
	"chat-relay/errors"
	"chat-relay/repositories"
	"chat-relay/services"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/samber/lo"
)

const defaultMaxUploadSize = 10 << 20

type Handler struct {
	log           *slog.Logger
	chats         services.IChatService
	users         services.IUserService
	accounts      services.IAuthService
	inspector     repositories.IInspector
	policy        *auth.Policy
	maxUploadSize int64
}

func NewHandler(log *slog.Logger,
	chats services.IChatService,
	users services.IUserService,
	accounts services.IAuthService,
	inspector repositories.IInspector,
	policy *auth.Policy,
	maxUploadSize int64) *Handler {
	if maxUploadSize <= 0 {
		maxUploadSize = defaultMaxUploadSize
	}
	return &Handler{
		log:           log,
		chats:         chats,
		users:         users,
		accounts:      accounts,
		inspector:     inspector,
		policy:        policy,
		maxUploadSize: maxUploadSize,
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(h.log, w, err)
		return
	}
	if _, err := h.accounts.Register(req.Username, req.Password); err != nil {
		writeError(h.log, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, messageResponse{Message: "User registered successfully"})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(h.log, w, err)
		return
	}
	token, err := h.accounts.Login(req.Username, req.Password)
	if err != nil {
		writeError(h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Login successful", Token: token.String()})
}

// CreateGroupChat accepts {"user_ids": [...]} where ids may be numbers,
// numeric strings or {"id": n} objects.
func (h *Handler) CreateGroupChat(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r, auth.ActionCreateGroupChat) {
		return
	}
	var req groupChatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(h.log, w, err)
		return
	}
	details, err := h.chats.CreateGroupChat(r.Context(), req.UserIDs)
	if err != nil {
		writeError(h.log, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, event.FromChatDetails(details))
}

func (h *Handler) ListChats(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r, auth.ActionListChats) {
		return
	}
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(h.log, w, err)
		return
	}
	chats, err := h.chats.ListChats(domain.UserID(userID))
	if err != nil {
		writeError(h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toChatSummaries(chats))
}

// SendAttachment stages a multipart upload (fields "message" and "file").
// The message itself must still be sent over the socket.
func (h *Handler) SendAttachment(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r, auth.ActionSendAttachment) {
		return
	}
	chatID, err := pathID(r, "chatId")
	if err != nil {
		writeError(h.log, w, err)
		return
	}
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(h.log, w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err = r.ParseMultipartForm(h.maxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		writeError(h.log, w, fmt.Errorf("%w: %v", errors.ErrValidation, err))
		return
	}

	cmd := domain.StageAttachmentCommand{ChatID: domain.ChatID(chatID), UserID: domain.UserID(userID)}
	if values, ok := r.Form["message"]; ok && len(values) > 0 {
		cmd.Body = lo.ToPtr(values[0])
	}
	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		defer file.Close()
		content, readErr := io.ReadAll(file)
		if readErr != nil {
			writeError(h.log, w, fmt.Errorf("%w: %v", errors.ErrIO, readErr))
			return
		}
		cmd.Filename = header.Filename
		cmd.Content = content
	case !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart):
		writeError(h.log, w, fmt.Errorf("%w: %v", errors.ErrValidation, err))
		return
	}

	staged, err := h.chats.StageAttachment(r.Context(), cmd)
	if err != nil {
		writeError(h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStagedMessage(staged))
}

func (h *Handler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFrom(r.Context())
	users, err := h.users.SearchUsers(r.Context(), identity, r.PathValue("username"))
	if err != nil {
		writeError(h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserPayloads(users))
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFrom(r.Context())
	users, err := h.users.ListUsers(identity)
	if err != nil {
		writeError(h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponses(users))
}

// GetUser looks a user up by the username in the body; the password hash is never sent.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	var req usernameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(h.log, w, err)
		return
	}
	user, err := h.users.GetByUsername(req.Username)
	if err != nil {
		writeError(h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req passwordUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(h.log, w, err)
		return
	}
	identity, _ := auth.IdentityFrom(r.Context())
	err := h.users.UpdatePassword(identity, domain.UpdatePasswordCommand{
		Username:    req.Username,
		Password:    req.Password,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		writeError(h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Password updated successfully"})
}

// UpdateProfilePicture takes a multipart upload with fields "username" and "file".
func (h *Handler) UpdateProfilePicture(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		writeError(h.log, w, fmt.Errorf("%w: %v", errors.ErrValidation, err))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(h.log, w, fmt.Errorf("%w: file is required", errors.ErrMissingField))
		return
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		writeError(h.log, w, fmt.Errorf("%w: %v", errors.ErrIO, err))
		return
	}

	identity, _ := auth.IdentityFrom(r.Context())
	user, err := h.users.UpdateProfilePicture(r.Context(), identity, domain.UpdateProfilePictureCommand{
		Username: r.FormValue("username"),
		Filename: header.Filename,
		Content:  content,
	})
	if err != nil {
		writeError(h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, pictureResponse{
		Message:  "Profile picture updated successfully",
		Filename: lo.FromPtr(user.ProfilePicture),
	})
}

// InspectStore lists raw store keys under ?prefix= for operators.
func (h *Handler) InspectStore(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r, auth.ActionInspectStore) {
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(h.log, w, fmt.Errorf("%w: limit must be a positive integer", errors.ErrValidation))
			return
		}
		limit = n
	}
	rows, err := h.inspector.Inspect(r.URL.Query().Get("prefix"), limit)
	if err != nil {
		writeError(h.log, w, errors.Persistence(err))
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *Handler) authorize(w http.ResponseWriter, r *http.Request, action auth.Action) bool {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		writeError(h.log, w, errors.ErrMissingToken)
		return false
	}
	if err := h.policy.Authorize(identity, action); err != nil {
		writeError(h.log, w, err)
		return false
	}
	return true
}

func decodeJSON(r *http.Request, v any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", errors.ErrValidation, err)
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", errors.ErrMissingField, name)
	}
	return id, nil
}
