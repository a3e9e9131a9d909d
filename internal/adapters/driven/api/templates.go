package api

import (
	"context"
	"net/http"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driven"
)

// Ensure Templates implements the interface.
var _ driven.TemplateAPI = (*Templates)(nil)

// Templates is the /templates resource.
type Templates struct {
	client *Client
}

// NewTemplates creates the template module.
func NewTemplates(client *Client) *Templates {
	return &Templates{client: client}
}

type templateEnvelope struct {
	Template domain.Template `json:"template"`
}

// List returns one page of templates, optionally filtered by audience.
func (t *Templates) List(
	ctx context.Context,
	params domain.TemplateListParams,
) (*domain.ListResponse[domain.Template], error) {
	q := listQuery(params.ListParams)
	if params.Audience != "" {
		q.Set("audience", params.Audience.String())
	}

	var out domain.ListResponse[domain.Template]
	if err := t.client.Do(ctx, Request{Path: pathTemplates, Query: q}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get fetches one template.
func (t *Templates) Get(ctx context.Context, id string) (*domain.Template, error) {
	return t.call(ctx, Request{Path: itemPath(pathTemplates, id)})
}

// Create adds a template.
func (t *Templates) Create(ctx context.Context, req domain.CreateTemplateRequest) (*domain.Template, error) {
	return t.call(ctx, Request{Method: http.MethodPost, Path: pathTemplates, Body: req})
}

// Update changes a template.
func (t *Templates) Update(ctx context.Context, id string, req domain.UpdateTemplateRequest) (*domain.Template, error) {
	return t.call(ctx, Request{Method: http.MethodPut, Path: itemPath(pathTemplates, id), Body: req})
}

// Delete removes a template.
func (t *Templates) Delete(ctx context.Context, id string) error {
	return t.client.Do(ctx, Request{Method: http.MethodDelete, Path: itemPath(pathTemplates, id)}, nil)
}

func (t *Templates) call(ctx context.Context, req Request) (*domain.Template, error) {
	var env templateEnvelope
	if err := t.client.Do(ctx, req, &env); err != nil {
		return nil, err
	}
	return &env.Template, nil
}
