package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"docvault/internal/model"
	"docvault/internal/repository"
	"docvault/internal/storage"
)

// Timeouts for backend calls; no operation may hang the caller.
const (
	storagePutTimeout  = 2 * time.Minute
	storageGetTimeout  = 30 * time.Second
	storageStatTimeout = 10 * time.Second
)

// DocumentService defines the use cases for storing and retrieving documents.
type DocumentService interface {
	// Store writes the content to object storage, then saves metadata, and
	// rolls back the object if the metadata save fails. A failed rollback
	// surfaces ErrStoreInconsistent.
	Store(ctx context.Context, owner, filename, contentType string, r io.Reader, size int64) (*model.Document, error)

	// List returns all documents owned by owner, ordered by creation time.
	List(ctx context.Context, owner string) ([]model.Document, error)

	// Fetch returns the document's content stream and metadata.
	Fetch(ctx context.Context, id string) (io.ReadCloser, *model.Document, error)

	// Delete removes a document from both storage and the registry.
	Delete(ctx context.Context, id string) error
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store storage.Storage
	repo  repository.DocumentRepository
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository) DocumentService {
	return &documentService{store: store, repo: repo}
}

// retryOnce runs op, retrying one time with exponential backoff on transient
// failure. Errors wrapped in backoff.Permanent are not retried.
func retryOnce(ctx context.Context, op func() error) error {
	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 1), ctx)
	return backoff.Retry(op, bo)
}

// asUnavailable folds dependency timeouts into the Unavailable failure class.
func asUnavailable(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

func objectKey(id string) string {
	return path.Join("documents", id)
}

func (s *documentService) Store(ctx context.Context, owner, filename, contentType string, r io.Reader, size int64) (*model.Document, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: reader is nil", ErrInvalidInput)
	}
	if owner == "" {
		return nil, fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}
	if filename == "" {
		return nil, fmt.Errorf("%w: filename is required", ErrInvalidInput)
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidInput)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	id := uuid.New().String()
	key := objectKey(id)

	// Upload to object storage first; the document id is not published
	// anywhere until the metadata row commits, so concurrent readers never
	// observe a half-written pair.
	putCtx, cancel := context.WithTimeout(ctx, storagePutTimeout)
	defer cancel()
	objInfo, err := s.store.Put(putCtx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": filename,
		},
	})
	if err != nil {
		return nil, asUnavailable(fmt.Errorf("upload to storage: %w", err))
	}

	doc := &model.Document{
		ID:          id,
		Filename:    filename,
		StoragePath: objInfo.Key,
		Size:        objInfo.Size,
		ContentType: contentType,
		Owner:       owner,
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		// Rollback: delete the object so no orphan blob remains.
		delErr := retryOnce(ctx, func() error { return s.store.Delete(ctx, key) })
		if delErr != nil {
			return nil, fmt.Errorf("%w: db save failed: %v; rollback delete failed: %v", ErrStoreInconsistent, err, delErr)
		}
		return nil, asUnavailable(fmt.Errorf("db save failed: %w", err))
	}
	return stored, nil
}

func (s *documentService) List(ctx context.Context, owner string) ([]model.Document, error) {
	if owner == "" {
		return nil, fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}

	docs, err := s.repo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, asUnavailable(err)
	}

	// Metadata without a blob is corruption, surfaced rather than skipped.
	for i := range docs {
		err := retryOnce(ctx, func() error {
			statCtx, cancel := context.WithTimeout(ctx, storageStatTimeout)
			defer cancel()
			if _, err := s.store.Stat(statCtx, docs[i].StoragePath); err != nil {
				if errors.Is(err, storage.ErrObjectNotFound) {
					return backoff.Permanent(err)
				}
				return err
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, storage.ErrObjectNotFound) {
				return nil, fmt.Errorf("%w: document %s has no blob", ErrStoreInconsistent, docs[i].ID)
			}
			return nil, asUnavailable(fmt.Errorf("stat blob %s: %w", docs[i].ID, err))
		}
	}

	return docs, nil
}

func (s *documentService) Fetch(ctx context.Context, id string) (io.ReadCloser, *model.Document, error) {
	if id == "" {
		return nil, nil, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}

	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, asUnavailable(err)
	}

	var rc io.ReadCloser
	err = retryOnce(ctx, func() error {
		getCtx, cancel := context.WithTimeout(ctx, storageGetTimeout)
		defer cancel()
		body, _, err := s.store.Get(getCtx, doc.StoragePath)
		if err != nil {
			if errors.Is(err, storage.ErrObjectNotFound) {
				return backoff.Permanent(err)
			}
			return err
		}
		rc = body
		return nil
	})
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, nil, fmt.Errorf("%w: document %s has no blob", ErrStoreInconsistent, doc.ID)
		}
		return nil, nil, asUnavailable(fmt.Errorf("get blob: %w", err))
	}

	return rc, doc, nil
}

// Delete removes a document from storage, then deletes its record.
func (s *documentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}

	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return asUnavailable(err)
	}

	// Delete from storage first; if this fails, keep the DB row so the blob
	// stays reachable for a later retry.
	if err := retryOnce(ctx, func() error { return s.store.Delete(ctx, doc.StoragePath) }); err != nil {
		return asUnavailable(fmt.Errorf("delete storage: %w", err))
	}
	return s.repo.Delete(ctx, id)
}
