//go:generate go run go.uber.org/mock/mockgen -source=attachment.go -destination=../mocks/mock_attachment_store.go -package=mocks
package storage

import (
	"chat-relay/domain/mimetypes"
	"context"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Attachment describes a stored upload.
type Attachment struct {
	Name        string
	ContentType mimetypes.MIME
	Size        int
}

type AttachmentStore interface {
	Save(ctx context.Context, filename string, content []byte) (Attachment, error)
}

// ObjectName keeps only the base name of a client supplied filename and
// prefixes it with a random uuid so that uploads never overwrite each other.
func ObjectName(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	if base == "." || base == "/" || base == ".." {
		base = "upload"
	}
	return uuid.NewString() + "-" + base
}

func detect(content []byte) mimetypes.MIME {
	return mimetypes.Parse(mimetype.Detect(content).String())
}
