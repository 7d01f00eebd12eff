package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"contabil/internal/model"
	"contabil/internal/repository"
	"contabil/internal/storage"
)

// presignExpiry bounds how long a download link stays valid.
const presignExpiry = 15 * time.Minute

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// DocumentService handles a client's uploaded files. Every operation checks
// that the client belongs to the calling user before touching storage.
type DocumentService interface {
	// Upload streams the content to object storage and records its metadata.
	// Storage is rolled back if the metadata write fails. The stored object
	// key is a UUID plus the original extension.
	Upload(ctx context.Context, userID, clientID string, r io.Reader, originalFilename, contentType string, size int64) (*model.Document, error)

	// List returns a client's documents using limit/offset and a total count.
	List(ctx context.Context, userID, clientID string, limit, offset int) (*DocumentListResult, error)

	// DownloadURL returns a presigned, time-limited URL for one document.
	DownloadURL(ctx context.Context, userID, id string) (string, error)

	// Delete removes a document from both storage and the database.
	Delete(ctx context.Context, userID, id string) error
}

type documentService struct {
	store   storage.Storage
	docs    repository.DocumentRepository
	clients repository.ClientRepository
}

// NewDocumentService constructs a DocumentService.
func NewDocumentService(store storage.Storage, docs repository.DocumentRepository, clients repository.ClientRepository) DocumentService {
	return &documentService{store: store, docs: docs, clients: clients}
}

func (s *documentService) Upload(ctx context.Context, userID, clientID string, r io.Reader, originalFilename, contentType string, size int64) (*model.Document, error) {
	if r == nil {
		return nil, &ValidationError{Message: "file content is required"}
	}
	if _, err := s.ownedClient(ctx, userID, clientID); err != nil {
		return nil, err
	}

	ext := filepath.Ext(originalFilename)
	key := filepath.ToSlash(filepath.Join("documents", clientID, uuid.NewString()+ext))

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc := &model.Document{
		ClientID:    clientID,
		FileName:    originalFilename,
		StoragePath: objInfo.Key,
		FileType:    objInfo.ContentType,
		FileSize:    objInfo.Size,
	}
	stored, err := s.docs.Create(ctx, doc)
	if err != nil {
		// Rollback: remove the orphaned object.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *documentService) List(ctx context.Context, userID, clientID string, limit, offset int) (*DocumentListResult, error) {
	if _, err := s.ownedClient(ctx, userID, clientID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.docs.ListByClient(ctx, clientID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *documentService) DownloadURL(ctx context.Context, userID, id string) (string, error) {
	doc, err := s.ownedDocument(ctx, userID, id)
	if err != nil {
		return "", err
	}
	return s.store.PresignGet(ctx, doc.StoragePath, presignExpiry)
}

func (s *documentService) Delete(ctx context.Context, userID, id string) error {
	doc, err := s.ownedDocument(ctx, userID, id)
	if err != nil {
		return err
	}
	// Storage first; a failed storage delete keeps the DB row so the file
	// stays reachable for a retry.
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.docs.Delete(ctx, id)
}

func (s *documentService) ownedClient(ctx context.Context, userID, clientID string) (*model.Client, error) {
	c, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if c.UserID != userID {
		return nil, ErrForbidden
	}
	return c, nil
}

func (s *documentService) ownedDocument(ctx context.Context, userID, id string) (*model.Document, error) {
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, err := s.ownedClient(ctx, userID, doc.ClientID); err != nil {
		return nil, err
	}
	return doc, nil
}
