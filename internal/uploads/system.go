// Package uploads implements the file upload views. Files are written to
// storage and each save is recorded in a ledger that the JSON API lists.
package uploads

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/JaimeStill/web-quickstart/pkg/pagination"
	"github.com/JaimeStill/web-quickstart/pkg/storage"
	"github.com/google/uuid"
)

// FixedKey is the storage key used by the plain upload view.
const FixedKey = "uploaded_file.txt"

// StagingDir holds uploads until they are recorded. SecureFilename never
// yields a key with a leading dot, so staged files cannot collide with saved ones.
const StagingDir = ".staging"

// System saves uploaded files and lists recorded uploads.
type System interface {
	// Save streams r to key and records it under the client filename.
	Save(ctx context.Context, key, filename string, r io.Reader) (*Upload, error)
	List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Upload], error)
}

type system struct {
	storage storage.System
	ledger  Ledger
	logger  *slog.Logger
	now     func() time.Time
}

// New creates an uploads System over store and ledger.
func New(store storage.System, ledger Ledger, logger *slog.Logger) System {
	return &system{
		storage: store,
		ledger:  ledger,
		logger:  logger.With("system", "uploads"),
		now:     time.Now,
	}
}

func (s *system) Save(ctx context.Context, key, filename string, r io.Reader) (*Upload, error) {
	if key == "" {
		return nil, ErrInvalidFilename
	}

	id := uuid.New()
	staged := StagingDir + "/" + id.String()

	size, err := s.storage.Store(ctx, staged, r)
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	rec, err := s.ledger.Record(ctx, Upload{
		ID:        id,
		Key:       key,
		Filename:  filename,
		Size:      size,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		s.discard(staged)
		return nil, fmt.Errorf("record upload: %w", err)
	}

	if err := s.storage.Move(ctx, staged, key); err != nil {
		s.logger.Error("upload recorded but not moved into place", "id", id, "key", key, "error", err)
		s.discard(staged)
		return nil, fmt.Errorf("move upload: %w", err)
	}

	s.logger.Info("upload saved", "id", id, "key", key, "filename", filename, "size", size)
	return rec, nil
}

func (s *system) discard(key string) {
	if err := s.storage.Delete(context.Background(), key); err != nil {
		s.logger.Error("cleanup of staged upload failed", "key", key, "error", err)
	}
}

func (s *system) List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Upload], error) {
	return s.ledger.List(ctx, page)
}
