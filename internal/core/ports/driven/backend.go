package driven

import (
	"context"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
)

// AxiomAPI is the backend's axiom resource.
type AxiomAPI interface {
	List(ctx context.Context, params domain.ListParams) (*domain.ListResponse[domain.Axiom], error)
	Get(ctx context.Context, id string) (*domain.Axiom, error)
	Create(ctx context.Context, req domain.CreateAxiomRequest) (*domain.Axiom, error)
	Update(ctx context.Context, id string, req domain.UpdateAxiomRequest) (*domain.Axiom, error)
	Delete(ctx context.Context, id string) error
}

// TemplateAPI is the backend's template resource.
type TemplateAPI interface {
	List(ctx context.Context, params domain.TemplateListParams) (*domain.ListResponse[domain.Template], error)
	Get(ctx context.Context, id string) (*domain.Template, error)
	Create(ctx context.Context, req domain.CreateTemplateRequest) (*domain.Template, error)
	Update(ctx context.Context, id string, req domain.UpdateTemplateRequest) (*domain.Template, error)
	Delete(ctx context.Context, id string) error
}

// PersonaAPI is the backend's persona resource.
type PersonaAPI interface {
	List(ctx context.Context, params domain.ListParams) (*domain.ListResponse[domain.Persona], error)
	Get(ctx context.Context, id string) (*domain.Persona, error)
	Create(ctx context.Context, req domain.CreatePersonaRequest) (*domain.Persona, error)
	Update(ctx context.Context, id string, req domain.UpdatePersonaRequest) (*domain.Persona, error)
	Delete(ctx context.Context, id string) error

	// AddExample attaches a calibration example and returns the updated persona.
	AddExample(ctx context.Context, id string, req domain.AddPersonaExampleRequest) (*domain.Persona, error)

	// RemoveExample detaches an example and returns the updated persona.
	RemoveExample(ctx context.Context, id, exampleID string) (*domain.Persona, error)
}

// DocumentAPI is the backend's document resource.
type DocumentAPI interface {
	List(ctx context.Context, params domain.DocumentListParams) (*domain.ListResponse[domain.Document], error)
	Get(ctx context.Context, id string) (*domain.Document, error)
	Create(ctx context.Context, req domain.CreateDocumentRequest) (*domain.Document, error)
	Update(ctx context.Context, id string, req domain.UpdateDocumentRequest) (*domain.Document, error)
	Delete(ctx context.Context, id string) error

	// Submit sends the document for review.
	Submit(ctx context.Context, id string) (*domain.SubmitResult, error)

	// Reviews lists the reviews recorded against the document.
	Reviews(ctx context.Context, id string) ([]domain.Review, error)
}

// ReviewAPI is the backend's review resource.
type ReviewAPI interface {
	Create(ctx context.Context, req domain.CreateReviewRequest) (*domain.Review, error)
	Update(ctx context.Context, id string, req domain.UpdateReviewRequest) (*domain.Review, error)
}

// ProfileAPI is the backend's current-user endpoint.
type ProfileAPI interface {
	Me(ctx context.Context) (*domain.UserProfile, error)
}
