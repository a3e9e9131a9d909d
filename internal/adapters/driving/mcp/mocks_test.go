package mcp

import (
	"context"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
)

// mockSessionService is a mock implementation of driving.SessionService.
type mockSessionService struct {
	state domain.SessionState
}

func signedInSession() *mockSessionService {
	return &mockSessionService{state: domain.SessionState{
		Authenticated: true,
		Initialized:   true,
		User:          &domain.SessionUser{ID: "u-1", Email: "ada@example.com", Name: "Ada"},
	}}
}

func (m *mockSessionService) Initialize(_ context.Context) error { return nil }

func (m *mockSessionService) State() domain.SessionState { return m.state }

func (m *mockSessionService) IDToken(_ context.Context) (string, error) { return "token", nil }

func (m *mockSessionService) SignIn(_ context.Context, _, _ string) domain.AuthResult {
	return domain.Succeeded()
}

func (m *mockSessionService) SignUp(_ context.Context, _, _, _ string) domain.SignUpResult {
	return domain.SignUpResult{AuthResult: domain.Succeeded()}
}

func (m *mockSessionService) ConfirmSignUp(_ context.Context, _, _ string) domain.AuthResult {
	return domain.Succeeded()
}

func (m *mockSessionService) ResendConfirmationCode(_ context.Context, _ string) domain.AuthResult {
	return domain.Succeeded()
}

func (m *mockSessionService) ForgotPassword(_ context.Context, _ string) domain.AuthResult {
	return domain.Succeeded()
}

func (m *mockSessionService) ConfirmForgotPassword(_ context.Context, _, _, _ string) domain.AuthResult {
	return domain.Succeeded()
}

func (m *mockSessionService) SignOut(_ context.Context) error { return nil }

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents  []domain.Document
	document   *domain.Document
	reviews    []domain.Review
	nextToken  string
	err        error
	listParams domain.DocumentListParams
	created    *domain.CreateDocumentRequest
	submitted  string
}

func (m *mockDocumentService) List(
	_ context.Context, params domain.DocumentListParams,
) (*domain.ListResponse[domain.Document], error) {
	m.listParams = params
	if m.err != nil {
		return nil, m.err
	}
	return &domain.ListResponse[domain.Document]{Items: m.documents, NextToken: m.nextToken}, nil
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) Create(_ context.Context, req domain.CreateDocumentRequest) (*domain.Document, error) {
	m.created = &req
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Document{
		ID: "doc-new", Title: req.Title, Content: req.Content,
		TemplateID: req.TemplateID, PersonaID: req.PersonaID, Status: domain.DocumentDraft,
	}, nil
}

func (m *mockDocumentService) Update(
	_ context.Context, _ string, _ domain.UpdateDocumentRequest,
) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockDocumentService) Submit(_ context.Context, id string) (*domain.SubmitResult, error) {
	m.submitted = id
	if m.err != nil {
		return nil, m.err
	}
	return &domain.SubmitResult{
		Document: domain.Document{ID: id, Title: "Checkout", Status: domain.DocumentInReview},
		Message:  "Document submitted for review",
	}, nil
}

func (m *mockDocumentService) Reviews(_ context.Context, _ string) ([]domain.Review, error) {
	return m.reviews, m.err
}

// mockPersonaService is a mock implementation of driving.PersonaService.
type mockPersonaService struct {
	personas []domain.Persona
	err      error
}

func (m *mockPersonaService) List(
	_ context.Context, _ domain.ListParams,
) (*domain.ListResponse[domain.Persona], error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.ListResponse[domain.Persona]{Items: m.personas}, nil
}

func (m *mockPersonaService) Get(_ context.Context, _ string) (*domain.Persona, error) {
	return nil, m.err
}

func (m *mockPersonaService) Create(_ context.Context, _ domain.CreatePersonaRequest) (*domain.Persona, error) {
	return nil, m.err
}

func (m *mockPersonaService) Update(
	_ context.Context, _ string, _ domain.UpdatePersonaRequest,
) (*domain.Persona, error) {
	return nil, m.err
}

func (m *mockPersonaService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockPersonaService) AddExample(
	_ context.Context, _ string, _ domain.AddPersonaExampleRequest,
) (*domain.Persona, error) {
	return nil, m.err
}

func (m *mockPersonaService) RemoveExample(_ context.Context, _, _ string) (*domain.Persona, error) {
	return nil, m.err
}

// mockTemplateService is a mock implementation of driving.TemplateService.
type mockTemplateService struct {
	templates []domain.Template
	params    domain.TemplateListParams
	err       error
}

func (m *mockTemplateService) List(
	_ context.Context, params domain.TemplateListParams,
) (*domain.ListResponse[domain.Template], error) {
	m.params = params
	if m.err != nil {
		return nil, m.err
	}
	return &domain.ListResponse[domain.Template]{Items: m.templates}, nil
}

func (m *mockTemplateService) Get(_ context.Context, _ string) (*domain.Template, error) {
	return nil, m.err
}

func (m *mockTemplateService) Create(_ context.Context, _ domain.CreateTemplateRequest) (*domain.Template, error) {
	return nil, m.err
}

func (m *mockTemplateService) Update(
	_ context.Context, _ string, _ domain.UpdateTemplateRequest,
) (*domain.Template, error) {
	return nil, m.err
}

func (m *mockTemplateService) Delete(_ context.Context, _ string) error {
	return m.err
}

// mockAxiomService is a mock implementation of driving.AxiomService.
type mockAxiomService struct {
	axioms []domain.Axiom
	err    error
}

func (m *mockAxiomService) List(_ context.Context, _ domain.ListParams) (*domain.ListResponse[domain.Axiom], error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.ListResponse[domain.Axiom]{Items: m.axioms}, nil
}

func (m *mockAxiomService) Get(_ context.Context, _ string) (*domain.Axiom, error) {
	return nil, m.err
}

func (m *mockAxiomService) Create(_ context.Context, _ domain.CreateAxiomRequest) (*domain.Axiom, error) {
	return nil, m.err
}

func (m *mockAxiomService) Update(_ context.Context, _ string, _ domain.UpdateAxiomRequest) (*domain.Axiom, error) {
	return nil, m.err
}

func (m *mockAxiomService) Delete(_ context.Context, _ string) error {
	return m.err
}

// mockProfileService is a mock implementation of driving.ProfileService.
type mockProfileService struct {
	profile *domain.UserProfile
	err     error
}

func (m *mockProfileService) Me(_ context.Context) (*domain.UserProfile, error) {
	return m.profile, m.err
}
