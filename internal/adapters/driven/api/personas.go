package api

import (
	"context"
	"net/http"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driven"
)

// Ensure Personas implements the interface.
var _ driven.PersonaAPI = (*Personas)(nil)

// Personas is the /personas resource, including calibration examples.
type Personas struct {
	client *Client
}

// NewPersonas creates the persona module.
func NewPersonas(client *Client) *Personas {
	return &Personas{client: client}
}

type personaEnvelope struct {
	Persona domain.Persona `json:"persona"`
}

// List returns one page of personas.
func (p *Personas) List(ctx context.Context, params domain.ListParams) (*domain.ListResponse[domain.Persona], error) {
	var out domain.ListResponse[domain.Persona]
	if err := p.client.Do(ctx, Request{Path: pathPersonas, Query: listQuery(params)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get fetches one persona.
func (p *Personas) Get(ctx context.Context, id string) (*domain.Persona, error) {
	return p.call(ctx, Request{Path: itemPath(pathPersonas, id)})
}

// Create adds a persona.
func (p *Personas) Create(ctx context.Context, req domain.CreatePersonaRequest) (*domain.Persona, error) {
	return p.call(ctx, Request{Method: http.MethodPost, Path: pathPersonas, Body: req})
}

// Update changes a persona.
func (p *Personas) Update(ctx context.Context, id string, req domain.UpdatePersonaRequest) (*domain.Persona, error) {
	return p.call(ctx, Request{Method: http.MethodPut, Path: itemPath(pathPersonas, id), Body: req})
}

// Delete removes a persona.
func (p *Personas) Delete(ctx context.Context, id string) error {
	return p.client.Do(ctx, Request{Method: http.MethodDelete, Path: itemPath(pathPersonas, id)}, nil)
}

// AddExample attaches a calibration example.
func (p *Personas) AddExample(
	ctx context.Context,
	id string,
	req domain.AddPersonaExampleRequest,
) (*domain.Persona, error) {
	return p.call(ctx, Request{
		Method: http.MethodPost,
		Path:   itemPath(pathPersonas, id, "examples"),
		Body:   req,
	})
}

// RemoveExample detaches a calibration example.
func (p *Personas) RemoveExample(ctx context.Context, id, exampleID string) (*domain.Persona, error) {
	return p.call(ctx, Request{
		Method: http.MethodDelete,
		Path:   itemPath(pathPersonas, id, "examples", exampleID),
	})
}

func (p *Personas) call(ctx context.Context, req Request) (*domain.Persona, error) {
	var env personaEnvelope
	if err := p.client.Do(ctx, req, &env); err != nil {
		return nil, err
	}
	return &env.Persona, nil
}
