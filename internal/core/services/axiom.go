package services

import (
	"context"
	"fmt"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driven"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driving"
)

// Ensure AxiomService implements the interface.
var _ driving.AxiomService = (*AxiomService)(nil)

// AxiomService manages axioms through the backend.
type AxiomService struct {
	api driven.AxiomAPI
	log recorder
}

// NewAxiomService creates a new axiom service. activity may be nil.
func NewAxiomService(api driven.AxiomAPI, activity driven.ActivityStore) *AxiomService {
	return &AxiomService{api: api, log: newRecorder(activity)}
}

// List returns a page of axioms.
func (s *AxiomService) List(ctx context.Context, params domain.ListParams) (*domain.ListResponse[domain.Axiom], error) {
	if s.api == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.api.List(ctx, params)
}

// Get retrieves an axiom by ID.
func (s *AxiomService) Get(ctx context.Context, id string) (*domain.Axiom, error) {
	if s.api == nil {
		return nil, domain.ErrNotImplemented
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.api.Get(ctx, id)
}

// Create adds an axiom.
func (s *AxiomService) Create(ctx context.Context, req domain.CreateAxiomRequest) (*domain.Axiom, error) {
	if s.api == nil {
		return nil, domain.ErrNotImplemented
	}
	axiom, err := s.api.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create axiom: %w", err)
	}
	s.log.record(ctx, domain.ActionCreated, domain.KindAxiom, axiom.Title, axiom.ID)
	return axiom, nil
}

// Update changes an axiom.
func (s *AxiomService) Update(ctx context.Context, id string, req domain.UpdateAxiomRequest) (*domain.Axiom, error) {
	if s.api == nil {
		return nil, domain.ErrNotImplemented
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	axiom, err := s.api.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update axiom: %w", err)
	}
	s.log.record(ctx, domain.ActionUpdated, domain.KindAxiom, axiom.Title, axiom.ID)
	return axiom, nil
}

// Delete removes an axiom.
func (s *AxiomService) Delete(ctx context.Context, id string) error {
	if s.api == nil {
		return domain.ErrNotImplemented
	}
	if err := requireID(id); err != nil {
		return err
	}
	if err := s.api.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete axiom: %w", err)
	}
	s.log.record(ctx, domain.ActionDeleted, domain.KindAxiom, "", id)
	return nil
}
