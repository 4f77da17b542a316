package domain

// SendMessageCommand is the inbound send_message payload.
// Any client timestamp is ignored: the store assigns created_at.
type SendMessageCommand struct {
	ChatID ChatID  `json:"chat_id" validate:"required,gt=0"`
	UserID UserID  `json:"user_id" validate:"required,gt=0"`
	Body   *string `json:"message"`
	Photo  *string `json:"photo"`
}

// StageAttachmentCommand describes an upload on the non-persisting attachment path.
type StageAttachmentCommand struct {
	ChatID   ChatID `validate:"required,gt=0"`
	UserID   UserID `validate:"required,gt=0"`
	Body     *string
	Filename string
	Content  []byte
}

// StagedMessage is what the attachment path hands back; it has no id because it is never stored.
type StagedMessage struct {
	ChatID ChatID
	UserID UserID
	Body   *string
	Photo  *string
}

// UpdatePasswordCommand replaces a password once the current one is confirmed.
type UpdatePasswordCommand struct {
	Username    string `validate:"required"`
	Password    string `validate:"required"`
	NewPassword string `validate:"required"`
}

// UpdateProfilePictureCommand replaces the picture shown next to a user in chats.
type UpdateProfilePictureCommand struct {
	Username string `validate:"required"`
	Filename string
	Content  []byte `validate:"required,min=1"`
}
