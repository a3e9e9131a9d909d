package services

import (
	"context"
	"fmt"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driven"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driving"
)

// Ensure TemplateService implements the interface.
var _ driving.TemplateService = (*TemplateService)(nil)

// TemplateService manages templates through the backend.
type TemplateService struct {
	api driven.TemplateAPI
	log recorder
}

// NewTemplateService creates a new template service. activity may be nil.
func NewTemplateService(api driven.TemplateAPI, activity driven.ActivityStore) *TemplateService {
	return &TemplateService{api: api, log: newRecorder(activity)}
}

// List returns a page of templates, optionally filtered by audience.
func (s *TemplateService) List(ctx context.Context, params domain.TemplateListParams) (*domain.ListResponse[domain.Template], error) {
	if s.api == nil {
		return nil, domain.ErrNotImplemented
	}
	if params.Audience != "" && !params.Audience.Valid() {
		return nil, fmt.Errorf("%w: unknown audience %q", domain.ErrInvalidInput, params.Audience)
	}
	return s.api.List(ctx, params)
}

// Get retrieves a template by ID.
func (s *TemplateService) Get(ctx context.Context, id string) (*domain.Template, error) {
	if s.api == nil {
		return nil, domain.ErrNotImplemented
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.api.Get(ctx, id)
}

// Create adds a template.
func (s *TemplateService) Create(ctx context.Context, req domain.CreateTemplateRequest) (*domain.Template, error) {
	if s.api == nil {
		return nil, domain.ErrNotImplemented
	}
	tmpl, err := s.api.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	s.log.record(ctx, domain.ActionCreated, domain.KindTemplate, tmpl.Name, tmpl.ID)
	return tmpl, nil
}

// Update changes a template.
func (s *TemplateService) Update(ctx context.Context, id string, req domain.UpdateTemplateRequest) (*domain.Template, error) {
	if s.api == nil {
		return nil, domain.ErrNotImplemented
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	tmpl, err := s.api.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update template: %w", err)
	}
	s.log.record(ctx, domain.ActionUpdated, domain.KindTemplate, tmpl.Name, tmpl.ID)
	return tmpl, nil
}

// Delete removes a template.
func (s *TemplateService) Delete(ctx context.Context, id string) error {
	if s.api == nil {
		return domain.ErrNotImplemented
	}
	if err := requireID(id); err != nil {
		return err
	}
	if err := s.api.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	s.log.record(ctx, domain.ActionDeleted, domain.KindTemplate, "", id)
	return nil
}
