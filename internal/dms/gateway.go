package dms

import (
	"context"
	"io"

	"dms-go/internal/model"
)

// AuthResult is the payload returned by login and registration.
type AuthResult struct {
	AccessToken string     `json:"access_token"`
	User        model.User `json:"user"`
}

// Gateway is the REST API server. Each method is a single best-effort round
// trip: no retries, no timeouts beyond ctx, no caching.
// Failures are *RemoteError for non-2xx responses or wrap ErrTransport.
type Gateway interface {
	Login(ctx context.Context, creds model.Credentials) (*AuthResult, error)
	Register(ctx context.Context, reg model.Registration) (*AuthResult, error)
	Profile(ctx context.Context, token string) (*model.User, error)

	ListDocuments(ctx context.Context, token string, filter model.DocumentFilter) (*model.DocumentPage, error)
	GetDocument(ctx context.Context, token string, id int64) (*model.Document, error)
	UploadDocument(ctx context.Context, token string, file io.Reader, req model.UploadRequest) (*model.Document, error)

	// DownloadDocument returns the raw document body. The caller must close it.
	DownloadDocument(ctx context.Context, token string, id int64) (io.ReadCloser, error)
	DeleteDocument(ctx context.Context, token string, id int64) error
	FetchStats(ctx context.Context, token string) (*model.Stats, error)

	ListCategories(ctx context.Context, token string) ([]model.Category, error)
	CreateCategory(ctx context.Context, token string, fields model.CategoryFields) (*model.Category, error)
	UpdateCategory(ctx context.Context, token string, id int64, fields model.CategoryFields) (*model.Category, error)
	DeleteCategory(ctx context.Context, token string, id int64) error
}
