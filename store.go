package md2conf

import (
	"context"

	"github.com/alnah/go-md2conf/internal/confluence"
)

// RemotePage is the fetched state of a document in the remote store. The
// version is owned exclusively by the store and advances by exactly one per
// successful update.
type RemotePage struct {
	ID      string
	Title   string
	Version int
	Body    string
}

// Store is the contract the publisher needs from the remote document store.
// UploadAttachment must be idempotent under re-upload of the same name.
type Store interface {
	Fetch(ctx context.Context, id string) (*RemotePage, error)
	Update(ctx context.Context, id string, version int, title, body string) error
	Create(ctx context.Context, spaceKey, title, body, parentID string) (string, error)
	UploadAttachment(ctx context.Context, id, name string, data []byte, mimeType string) (string, error)
}

// Compile-time interface implementation check.
var _ Store = (*confluenceStore)(nil)

// NewConfluenceStore returns a Store backed by the Confluence REST API,
// authenticating with an email and API token.
func NewConfluenceStore(baseURL, email, token string) Store {
	return &confluenceStore{client: confluence.NewClient(baseURL, email, token)}
}

// confluenceStore adapts the internal REST client to the Store contract.
type confluenceStore struct {
	client *confluence.Client
}

func (s *confluenceStore) Fetch(ctx context.Context, id string) (*RemotePage, error) {
	page, err := s.client.GetContent(ctx, id)
	if err != nil {
		return nil, err
	}
	return &RemotePage{ID: page.ID, Title: page.Title, Version: page.Version, Body: page.Body}, nil
}

func (s *confluenceStore) Update(ctx context.Context, id string, version int, title, body string) error {
	return s.client.UpdateContent(ctx, id, version, title, body)
}

func (s *confluenceStore) Create(ctx context.Context, spaceKey, title, body, parentID string) (string, error) {
	return s.client.CreateContent(ctx, spaceKey, title, body, parentID)
}

func (s *confluenceStore) UploadAttachment(ctx context.Context, id, name string, data []byte, mimeType string) (string, error) {
	return s.client.UploadAttachment(ctx, id, name, data, mimeType)
}
