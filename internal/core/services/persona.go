package services

import (
	"context"
	"fmt"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driven"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driving"
)

// Ensure PersonaService implements the interface.
var _ driving.PersonaService = (*PersonaService)(nil)

// PersonaService manages reviewer personas through the backend.
type PersonaService struct {
	api driven.PersonaAPI
	log recorder
}

// NewPersonaService creates a new persona service. activity may be nil.
func NewPersonaService(api driven.PersonaAPI, activity driven.ActivityStore) *PersonaService {
	return &PersonaService{api: api, log: newRecorder(activity)}
}

// List returns a page of personas.
func (s *PersonaService) List(ctx context.Context, params domain.ListParams) (*domain.ListResponse[domain.Persona], error) {
	if s.api == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.api.List(ctx, params)
}

// Get retrieves a persona by ID.
func (s *PersonaService) Get(ctx context.Context, id string) (*domain.Persona, error) {
	if s.api == nil {
		return nil, domain.ErrNotImplemented
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.api.Get(ctx, id)
}

// Create adds a persona.
func (s *PersonaService) Create(ctx context.Context, req domain.CreatePersonaRequest) (*domain.Persona, error) {
	if s.api == nil {
		return nil, domain.ErrNotImplemented
	}
	persona, err := s.api.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create persona: %w", err)
	}
	s.log.record(ctx, domain.ActionCreated, domain.KindPersona, persona.Name, persona.ID)
	return persona, nil
}

// Update changes a persona.
func (s *PersonaService) Update(ctx context.Context, id string, req domain.UpdatePersonaRequest) (*domain.Persona, error) {
	if s.api == nil {
		return nil, domain.ErrNotImplemented
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	persona, err := s.api.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update persona: %w", err)
	}
	s.log.record(ctx, domain.ActionUpdated, domain.KindPersona, persona.Name, persona.ID)
	return persona, nil
}

// Delete removes a persona.
func (s *PersonaService) Delete(ctx context.Context, id string) error {
	if s.api == nil {
		return domain.ErrNotImplemented
	}
	if err := requireID(id); err != nil {
		return err
	}
	if err := s.api.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete persona: %w", err)
	}
	s.log.record(ctx, domain.ActionDeleted, domain.KindPersona, "", id)
	return nil
}

// AddExample attaches a calibration example.
func (s *PersonaService) AddExample(ctx context.Context, id string, req domain.AddPersonaExampleRequest) (*domain.Persona, error) {
	if s.api == nil {
		return nil, domain.ErrNotImplemented
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown example type %q", domain.ErrInvalidInput, req.Type)
	}
	persona, err := s.api.AddExample(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("add example: %w", err)
	}
	s.log.record(ctx, domain.ActionUpdated, domain.KindPersona, persona.Name, persona.ID)
	return persona, nil
}

// RemoveExample detaches an example.
func (s *PersonaService) RemoveExample(ctx context.Context, id, exampleID string) (*domain.Persona, error) {
	if s.api == nil {
		return nil, domain.ErrNotImplemented
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	if err := requireID(exampleID); err != nil {
		return nil, err
	}
	persona, err := s.api.RemoveExample(ctx, id, exampleID)
	if err != nil {
		return nil, fmt.Errorf("remove example: %w", err)
	}
	s.log.record(ctx, domain.ActionUpdated, domain.KindPersona, persona.Name, persona.ID)
	return persona, nil
}
