package storage

import (
	"chat-relay/errors"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// DiskStore writes attachments under a single directory, served back as static files.
type DiskStore struct {
	dir string
	log *slog.Logger
}

func NewDiskStore(dir string, log *slog.Logger) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrIO, err)
	}
	return &DiskStore{dir: dir, log: log}, nil
}

func (d *DiskStore) Dir() string {
	return d.dir
}

// Save writes to a temporary file first and renames it, so a partially
// written upload is never visible under its final name.
func (d *DiskStore) Save(ctx context.Context, filename string, content []byte) (Attachment, error) {
	if err := ctx.Err(); err != nil {
		return Attachment{}, err
	}
	name := ObjectName(filename)
	tmp, err := os.CreateTemp(d.dir, ".upload-*")
	if err != nil {
		return Attachment{}, fmt.Errorf("%w: %v", errors.ErrIO, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err = tmp.Write(content); err != nil {
		_ = tmp.Close()
		return Attachment{}, fmt.Errorf("%w: %v", errors.ErrIO, err)
	}
	if err = tmp.Close(); err != nil {
		return Attachment{}, fmt.Errorf("%w: %v", errors.ErrIO, err)
	}
	if err = os.Rename(tmp.Name(), filepath.Join(d.dir, name)); err != nil {
		return Attachment{}, fmt.Errorf("%w: %v", errors.ErrIO, err)
	}

	attachment := Attachment{Name: name, ContentType: detect(content), Size: len(content)}
	d.log.Debug("Attachment written", "name", name, "content_type", attachment.ContentType, "size", attachment.Size)
	return attachment, nil
}
