package api

import (
	"context"
	"net/http"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driven"
)

// Ensure Documents implements the interface.
var _ driven.DocumentAPI = (*Documents)(nil)

// Documents is the /documents resource.
type Documents struct {
	client *Client
}

// NewDocuments creates the document module.
func NewDocuments(client *Client) *Documents {
	return &Documents{client: client}
}

type documentEnvelope struct {
	Document domain.Document `json:"document"`
}

type reviewsEnvelope struct {
	Reviews []domain.Review `json:"reviews"`
}

// List returns one page of documents, optionally filtered by status.
func (d *Documents) List(
	ctx context.Context,
	params domain.DocumentListParams,
) (*domain.ListResponse[domain.Document], error) {
	q := listQuery(params.ListParams)
	if params.Status != "" {
		q.Set("status", params.Status.String())
	}

	var out domain.ListResponse[domain.Document]
	if err := d.client.Do(ctx, Request{Path: pathDocuments, Query: q}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get fetches one document.
func (d *Documents) Get(ctx context.Context, id string) (*domain.Document, error) {
	return d.call(ctx, Request{Path: itemPath(pathDocuments, id)})
}

// Create adds a document.
func (d *Documents) Create(ctx context.Context, req domain.CreateDocumentRequest) (*domain.Document, error) {
	return d.call(ctx, Request{Method: http.MethodPost, Path: pathDocuments, Body: req})
}

// Update changes a document.
func (d *Documents) Update(ctx context.Context, id string, req domain.UpdateDocumentRequest) (*domain.Document, error) {
	return d.call(ctx, Request{Method: http.MethodPut, Path: itemPath(pathDocuments, id), Body: req})
}

// Delete removes a document.
func (d *Documents) Delete(ctx context.Context, id string) error {
	return d.client.Do(ctx, Request{Method: http.MethodDelete, Path: itemPath(pathDocuments, id)}, nil)
}

// Submit sends a document for review. The backend returns the updated
// document together with a confirmation message.
func (d *Documents) Submit(ctx context.Context, id string) (*domain.SubmitResult, error) {
	var out domain.SubmitResult
	req := Request{Method: http.MethodPost, Path: itemPath(pathDocuments, id, "submit")}
	if err := d.client.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reviews lists the reviews recorded against a document.
func (d *Documents) Reviews(ctx context.Context, id string) ([]domain.Review, error) {
	var env reviewsEnvelope
	if err := d.client.Do(ctx, Request{Path: itemPath(pathDocuments, id, "reviews")}, &env); err != nil {
		return nil, err
	}
	return env.Reviews, nil
}

func (d *Documents) call(ctx context.Context, req Request) (*domain.Document, error) {
	var env documentEnvelope
	if err := d.client.Do(ctx, req, &env); err != nil {
		return nil, err
	}
	return &env.Document, nil
}
