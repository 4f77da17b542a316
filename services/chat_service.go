//go:generate go run go.uber.org/mock/mockgen -source=chat_service.go -destination=../mocks/mock_chat_service.go -package=mocks
package services

import (
	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/domain/event"
	"chat-relay/errors"
	"chat-relay/repositories"
	"chat-relay/storage"
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

// FanoutScope selects who receives receive_message_<chat> events.
type FanoutScope string

const (
	// ScopeMembers delivers to the identities linked to the chat, and to the sender.
	ScopeMembers FanoutScope = "members"
	// ScopeAll delivers to every live session.
	ScopeAll FanoutScope = "all"
)

const (
	outcomeOK       = "ok"
	outcomeInvalid  = "invalid"
	outcomeNotFound = "not_found"
	outcomeFailed   = "failed"
)

type IChatService interface {
	IngestMessage(ctx context.Context, cmd domain.SendMessageCommand) (domain.Message, error)
	CreateGroupChat(ctx context.Context, rawMemberIDs []any) (domain.ChatDetails, error)
	ListChats(userID domain.UserID) ([]domain.ChatDetails, error)
	StageAttachment(ctx context.Context, cmd domain.StageAttachmentCommand) (domain.StagedMessage, error)
}

// ContentFilter rewrites a message body before it is stored.
type ContentFilter interface {
	Censor(body string) (string, bool)
}

// Observer receives the outcome of every chat operation.
type Observer interface {
	MessageIngested(outcome string)
	GroupChat(outcome string)
	AttachmentWritten(n int)
}

type ChatService struct {
	log         *slog.Logger
	messages    repositories.IMessageRepository
	chats       repositories.IChatRepository
	transactor  repositories.ITransactor
	fanout      contract.IFanout
	attachments storage.AttachmentStore
	observer    Observer
	scope       FanoutScope
	filter      ContentFilter
	validate    *validator.Validate
}

func NewChatService(log *slog.Logger,
	messages repositories.IMessageRepository,
	chats repositories.IChatRepository,
	transactor repositories.ITransactor,
	fanout contract.IFanout,
	attachments storage.AttachmentStore,
	observer Observer,
	scope FanoutScope) *ChatService {
	if observer == nil {
		observer = noopObserver{}
	}
	if scope != ScopeAll {
		scope = ScopeMembers
	}
	return &ChatService{
		log:         log,
		messages:    messages,
		chats:       chats,
		transactor:  transactor,
		fanout:      fanout,
		attachments: attachments,
		observer:    observer,
		scope:       scope,
		validate:    validator.New(),
	}
}

// WithContentFilter masks blocklisted words of every ingested body.
func (s *ChatService) WithContentFilter(filter ContentFilter) *ChatService {
	s.filter = filter
	return s
}

// IngestMessage persists a message then fans it out.
// Neither the chat nor the sender's membership is checked.
// A delivery problem never fails the ingest: the message is already stored.
func (s *ChatService) IngestMessage(ctx context.Context, cmd domain.SendMessageCommand) (domain.Message, error) {
	if err := s.validate.Struct(cmd); err != nil {
		s.observer.MessageIngested(outcomeInvalid)
		return domain.Message{}, fmt.Errorf("%w: chat_id and user_id are required", errors.ErrMissingField)
	}

	body := cmd.Body
	if s.filter != nil && body != nil {
		if censored, matched := s.filter.Censor(*body); matched {
			s.log.Debug("Message body censored", "chat_id", cmd.ChatID, "user_id", cmd.UserID)
			body = &censored
		}
	}

	message, err := s.messages.StoreMessage(domain.Message{
		ChatID: cmd.ChatID,
		UserID: cmd.UserID,
		Body:   body,
		Photo:  cmd.Photo,
	})
	if err != nil {
		s.observer.MessageIngested(outcomeFailed)
		return domain.Message{}, errors.Persistence(err)
	}
	s.observer.MessageIngested(outcomeOK)

	evt := event.NewMessageReceived(message)
	if s.scope == ScopeAll {
		s.fanout.BroadcastAll(ctx, evt)
		return message, nil
	}

	members, err := s.chats.GetChatMembers(message.ChatID)
	if err != nil {
		s.log.Warn("Cannot resolve chat members, message not delivered",
			"chat_id", message.ChatID, "message_id", message.ID, "error", err)
		return message, nil
	}
	s.fanout.BroadcastToMany(ctx, append(members, message.UserID), evt)
	return message, nil
}

// CreateGroupChat creates a group chat and its memberships in one unit of work.
// Members are notified only once the transaction is committed.
func (s *ChatService) CreateGroupChat(ctx context.Context, rawMemberIDs []any) (domain.ChatDetails, error) {
	ids := NormalizeMemberIDs(rawMemberIDs)
	if len(ids) < 2 {
		s.observer.GroupChat(outcomeInvalid)
		return domain.ChatDetails{}, errors.ErrNotEnoughMembers
	}

	var details domain.ChatDetails
	err := s.transactor.WithinTransaction(ctx, func(tx repositories.Tx) error {
		chat, err := tx.CreateChat(domain.GroupChatName(ids), true)
		if err != nil {
			return err
		}
		users, err := tx.FindUsersByIDs(ids)
		if err != nil {
			return err
		}
		if len(users) != len(ids) {
			found := lo.Map(users, func(u domain.User, _ int) domain.UserID { return u.ID })
			missing, _ := lo.Difference(ids, found)
			return fmt.Errorf("%w: %v", errors.ErrUserNotFound, missing)
		}
		if err = tx.AddMembers(chat.ID, ids); err != nil {
			return err
		}
		details, err = tx.GetChatDetails(chat.ID)
		return err
	})
	if err != nil {
		s.observer.GroupChat(outcome(err))
		s.log.Debug("Group chat aborted", "user_ids", ids, "error", err)
		return domain.ChatDetails{}, err
	}
	s.observer.GroupChat(outcomeOK)
	s.log.Info("Group chat created", "chat_id", details.ID, "members", len(details.Users))

	evt := event.NewGroupChatCreated(details)
	for _, id := range details.MemberIDs() {
		s.fanout.Broadcast(ctx, id, evt)
	}
	return details, nil
}

func (s *ChatService) ListChats(userID domain.UserID) ([]domain.ChatDetails, error) {
	return s.chats.ListChatsForUser(userID)
}

// StageAttachment stores an uploaded file and returns the message a client
// may send afterwards. It neither persists nor fans out the message.
// A failed write is logged and leaves photo empty.
func (s *ChatService) StageAttachment(ctx context.Context, cmd domain.StageAttachmentCommand) (domain.StagedMessage, error) {
	if err := s.validate.Struct(cmd); err != nil {
		return domain.StagedMessage{}, fmt.Errorf("%w: chat_id and user_id are required", errors.ErrMissingField)
	}
	staged := domain.StagedMessage{ChatID: cmd.ChatID, UserID: cmd.UserID, Body: cmd.Body}
	if len(cmd.Content) == 0 && cmd.Filename == "" {
		return staged, nil
	}

	attachment, err := s.attachments.Save(ctx, cmd.Filename, cmd.Content)
	if err != nil {
		s.log.Error("Cannot write attachment", "chat_id", cmd.ChatID, "user_id", cmd.UserID,
			"filename", cmd.Filename, "error", err)
		return staged, nil
	}
	s.observer.AttachmentWritten(attachment.Size)
	staged.Photo = lo.ToPtr(attachment.Name)
	return staged, nil
}

func outcome(err error) string {
	switch {
	case errors.Is(err, errors.ErrNotFound):
		return outcomeNotFound
	case errors.Is(err, errors.ErrValidation):
		return outcomeInvalid
	default:
		return outcomeFailed
	}
}

type noopObserver struct{}

func (noopObserver) MessageIngested(string) {}

func (noopObserver) GroupChat(string) {}

func (noopObserver) AttachmentWritten(int) {}
