package driving

import (
	"context"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
)

// AxiomService manages the user's axioms.
type AxiomService interface {
	List(ctx context.Context, params domain.ListParams) (*domain.ListResponse[domain.Axiom], error)
	Get(ctx context.Context, id string) (*domain.Axiom, error)
	Create(ctx context.Context, req domain.CreateAxiomRequest) (*domain.Axiom, error)
	Update(ctx context.Context, id string, req domain.UpdateAxiomRequest) (*domain.Axiom, error)
	Delete(ctx context.Context, id string) error
}

// TemplateService manages document templates.
type TemplateService interface {
	List(ctx context.Context, params domain.TemplateListParams) (*domain.ListResponse[domain.Template], error)
	Get(ctx context.Context, id string) (*domain.Template, error)
	Create(ctx context.Context, req domain.CreateTemplateRequest) (*domain.Template, error)
	Update(ctx context.Context, id string, req domain.UpdateTemplateRequest) (*domain.Template, error)
	Delete(ctx context.Context, id string) error
}

// PersonaService manages reviewer personas and their examples.
type PersonaService interface {
	List(ctx context.Context, params domain.ListParams) (*domain.ListResponse[domain.Persona], error)
	Get(ctx context.Context, id string) (*domain.Persona, error)
	Create(ctx context.Context, req domain.CreatePersonaRequest) (*domain.Persona, error)
	Update(ctx context.Context, id string, req domain.UpdatePersonaRequest) (*domain.Persona, error)
	Delete(ctx context.Context, id string) error
	AddExample(ctx context.Context, id string, req domain.AddPersonaExampleRequest) (*domain.Persona, error)
	RemoveExample(ctx context.Context, id, exampleID string) (*domain.Persona, error)
}

// DocumentService manages PRD documents and their review workflow.
type DocumentService interface {
	List(ctx context.Context, params domain.DocumentListParams) (*domain.ListResponse[domain.Document], error)
	Get(ctx context.Context, id string) (*domain.Document, error)
	Create(ctx context.Context, req domain.CreateDocumentRequest) (*domain.Document, error)
	Update(ctx context.Context, id string, req domain.UpdateDocumentRequest) (*domain.Document, error)
	Delete(ctx context.Context, id string) error
	Submit(ctx context.Context, id string) (*domain.SubmitResult, error)
	Reviews(ctx context.Context, id string) ([]domain.Review, error)
}

// ReviewService records reviews against documents.
type ReviewService interface {
	Create(ctx context.Context, req domain.CreateReviewRequest) (*domain.Review, error)
	Update(ctx context.Context, id string, req domain.UpdateReviewRequest) (*domain.Review, error)
}

// ProfileService returns the signed-in user's backend profile.
type ProfileService interface {
	Me(ctx context.Context) (*domain.UserProfile, error)
}
