package api

import (
	"context"
	"net/http"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driven"
)

// Ensure Axioms implements the interface.
var _ driven.AxiomAPI = (*Axioms)(nil)

// Axioms is the /axioms resource.
type Axioms struct {
	client *Client
}

// NewAxioms creates the axiom module.
func NewAxioms(client *Client) *Axioms {
	return &Axioms{client: client}
}

type axiomEnvelope struct {
	Axiom domain.Axiom `json:"axiom"`
}

// List returns one page of the user's axioms.
func (a *Axioms) List(ctx context.Context, params domain.ListParams) (*domain.ListResponse[domain.Axiom], error) {
	var out domain.ListResponse[domain.Axiom]
	if err := a.client.Do(ctx, Request{Path: pathAxioms, Query: listQuery(params)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get fetches one axiom.
func (a *Axioms) Get(ctx context.Context, id string) (*domain.Axiom, error) {
	return a.call(ctx, Request{Path: itemPath(pathAxioms, id)})
}

// Create adds an axiom.
func (a *Axioms) Create(ctx context.Context, req domain.CreateAxiomRequest) (*domain.Axiom, error) {
	return a.call(ctx, Request{Method: http.MethodPost, Path: pathAxioms, Body: req})
}

// Update changes an axiom.
func (a *Axioms) Update(ctx context.Context, id string, req domain.UpdateAxiomRequest) (*domain.Axiom, error) {
	return a.call(ctx, Request{Method: http.MethodPut, Path: itemPath(pathAxioms, id), Body: req})
}

// Delete removes an axiom.
func (a *Axioms) Delete(ctx context.Context, id string) error {
	return a.client.Do(ctx, Request{Method: http.MethodDelete, Path: itemPath(pathAxioms, id)}, nil)
}

func (a *Axioms) call(ctx context.Context, req Request) (*domain.Axiom, error) {
	var env axiomEnvelope
	if err := a.client.Do(ctx, req, &env); err != nil {
		return nil, err
	}
	return &env.Axiom, nil
}
