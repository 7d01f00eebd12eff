package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"contabil/internal/model"
	repomocks "contabil/internal/repository/mocks"
	"contabil/internal/storage"
	storagemocks "contabil/internal/storage/mocks"
)

func ownedClientRepo(ctx context.Context) *repomocks.MockClientRepository {
	clients := new(repomocks.MockClientRepository)
	clients.On("FindByID", ctx, "client-1").Return(&model.Client{ID: "client-1", UserID: "user-1"}, nil)
	return clients
}

func TestDocumentService_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("uploads and records metadata", func(t *testing.T) {
		store := new(storagemocks.MockStorage)
		docs := new(repomocks.MockDocumentRepository)
		clients := ownedClientRepo(ctx)

		store.On("Put", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "documents/client-1/") && strings.HasSuffix(key, ".pdf")
		}), mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{Key: "documents/client-1/x.pdf", Size: 42, ContentType: "application/pdf"}, nil)
		docs.On("Create", ctx, mock.MatchedBy(func(d *model.Document) bool {
			return d.ClientID == "client-1" && d.FileName == "nota.pdf" && d.FileSize == 42
		})).Return(&model.Document{ID: "doc-1"}, nil)

		svc := NewDocumentService(store, docs, clients)
		out, err := svc.Upload(ctx, "user-1", "client-1", strings.NewReader("pdf"), "nota.pdf", "application/pdf", 42)

		assert.NoError(t, err)
		assert.Equal(t, "doc-1", out.ID)
		store.AssertExpectations(t)
		docs.AssertExpectations(t)
	})

	t.Run("rolls back storage when the db write fails", func(t *testing.T) {
		store := new(storagemocks.MockStorage)
		docs := new(repomocks.MockDocumentRepository)
		clients := ownedClientRepo(ctx)

		store.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{Key: "documents/client-1/x.pdf"}, nil)
		docs.On("Create", ctx, mock.Anything).Return(nil, errors.New("db down"))
		store.On("Delete", ctx, mock.Anything).Return(nil)

		svc := NewDocumentService(store, docs, clients)
		_, err := svc.Upload(ctx, "user-1", "client-1", strings.NewReader("pdf"), "nota.pdf", "application/pdf", 3)

		assert.Error(t, err)
		store.AssertCalled(t, "Delete", ctx, mock.Anything)
	})

	t.Run("rejects another user's client", func(t *testing.T) {
		store := new(storagemocks.MockStorage)
		clients := ownedClientRepo(ctx)

		svc := NewDocumentService(store, new(repomocks.MockDocumentRepository), clients)
		_, err := svc.Upload(ctx, "intruder", "client-1", strings.NewReader("pdf"), "nota.pdf", "application/pdf", 3)

		assert.ErrorIs(t, err, ErrForbidden)
		store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDocumentService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes storage object then db row", func(t *testing.T) {
		store := new(storagemocks.MockStorage)
		docs := new(repomocks.MockDocumentRepository)
		clients := ownedClientRepo(ctx)

		docs.On("FindByID", ctx, "doc-1").
			Return(&model.Document{ID: "doc-1", ClientID: "client-1", StoragePath: "documents/client-1/x.pdf"}, nil)
		store.On("Delete", ctx, "documents/client-1/x.pdf").Return(nil)
		docs.On("Delete", ctx, "doc-1").Return(nil)

		svc := NewDocumentService(store, docs, clients)
		err := svc.Delete(ctx, "user-1", "doc-1")

		assert.NoError(t, err)
		store.AssertExpectations(t)
		docs.AssertExpectations(t)
	})

	t.Run("keeps db row when storage delete fails", func(t *testing.T) {
		store := new(storagemocks.MockStorage)
		docs := new(repomocks.MockDocumentRepository)
		clients := ownedClientRepo(ctx)

		docs.On("FindByID", ctx, "doc-1").
			Return(&model.Document{ID: "doc-1", ClientID: "client-1", StoragePath: "p"}, nil)
		store.On("Delete", ctx, "p").Return(errors.New("storage down"))

		svc := NewDocumentService(store, docs, clients)
		err := svc.Delete(ctx, "user-1", "doc-1")

		assert.Error(t, err)
		docs.AssertNotCalled(t, "Delete", mock.Anything, "doc-1")
	})

	t.Run("unknown document", func(t *testing.T) {
		docs := new(repomocks.MockDocumentRepository)
		docs.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		svc := NewDocumentService(new(storagemocks.MockStorage), docs, ownedClientRepo(ctx))
		err := svc.Delete(ctx, "user-1", "missing")

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDocumentService_DownloadURL(t *testing.T) {
	ctx := context.Background()

	store := new(storagemocks.MockStorage)
	docs := new(repomocks.MockDocumentRepository)
	clients := ownedClientRepo(ctx)

	docs.On("FindByID", ctx, "doc-1").
		Return(&model.Document{ID: "doc-1", ClientID: "client-1", StoragePath: "documents/client-1/x.pdf"}, nil)
	store.On("PresignGet", ctx, "documents/client-1/x.pdf", presignExpiry).
		Return("https://minio.local/signed", nil)

	svc := NewDocumentService(store, docs, clients)
	url, err := svc.DownloadURL(ctx, "user-1", "doc-1")

	assert.NoError(t, err)
	assert.Equal(t, "https://minio.local/signed", url)
}
