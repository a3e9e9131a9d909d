package services

import (
	"context"
	"fmt"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driven"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driving"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages PRD documents through the backend.
type DocumentService struct {
	api driven.DocumentAPI
	log recorder
}

// NewDocumentService creates a new document service. activity may be nil.
func NewDocumentService(api driven.DocumentAPI, activity driven.ActivityStore) *DocumentService {
	return &DocumentService{api: api, log: newRecorder(activity)}
}

// List returns a page of documents, optionally filtered by status.
func (s *DocumentService) List(ctx context.Context, params domain.DocumentListParams) (*domain.ListResponse[domain.Document], error) {
	if s.api == nil {
		return nil, domain.ErrNotImplemented
	}
	if params.Status != "" && !params.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown document status %q", domain.ErrInvalidInput, params.Status)
	}
	return s.api.List(ctx, params)
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	if s.api == nil {
		return nil, domain.ErrNotImplemented
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.api.Get(ctx, id)
}

// Create starts a new document.
func (s *DocumentService) Create(ctx context.Context, req domain.CreateDocumentRequest) (*domain.Document, error) {
	if s.api == nil {
		return nil, domain.ErrNotImplemented
	}
	doc, err := s.api.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	s.log.record(ctx, domain.ActionCreated, domain.KindDocument, doc.Title, doc.ID)
	return doc, nil
}

// Update changes a document.
func (s *DocumentService) Update(ctx context.Context, id string, req domain.UpdateDocumentRequest) (*domain.Document, error) {
	if s.api == nil {
		return nil, domain.ErrNotImplemented
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	doc, err := s.api.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update document: %w", err)
	}
	s.log.record(ctx, domain.ActionUpdated, domain.KindDocument, doc.Title, doc.ID)
	return doc, nil
}

// Delete removes a document.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	if s.api == nil {
		return domain.ErrNotImplemented
	}
	if err := requireID(id); err != nil {
		return err
	}
	if err := s.api.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	s.log.record(ctx, domain.ActionDeleted, domain.KindDocument, "", id)
	return nil
}

// Submit sends a document for review.
func (s *DocumentService) Submit(ctx context.Context, id string) (*domain.SubmitResult, error) {
	if s.api == nil {
		return nil, domain.ErrNotImplemented
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	res, err := s.api.Submit(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("submit document: %w", err)
	}
	s.log.record(ctx, domain.ActionSubmitted, domain.KindDocument, res.Document.Title, res.Document.ID)
	return res, nil
}

// Reviews lists reviews recorded against a document.
func (s *DocumentService) Reviews(ctx context.Context, id string) ([]domain.Review, error) {
	if s.api == nil {
		return nil, domain.ErrNotImplemented
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.api.Reviews(ctx, id)
}
