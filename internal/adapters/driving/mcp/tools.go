package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/validation"
)

// defaultLimit is the page size used when a tool call gives none.
const defaultLimit = 20

// DocumentOutput is a document as returned by the tools.
type DocumentOutput struct {
	ID         string `json:"document_id"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	TemplateID string `json:"template_id,omitempty"`
	PersonaID  string `json:"persona_id,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
	Content    string `json:"content,omitempty"`
}

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct {
	Status    string `json:"status,omitempty" jsonschema:"only documents in this status: DRAFT, IN_REVIEW or APPROVED"`
	Limit     int    `json:"limit,omitempty" jsonschema:"maximum number of documents to return (default 20)"`
	NextToken string `json:"next_token,omitempty" jsonschema:"cursor from a previous call to fetch the next page"`
}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
	NextToken string           `json:"next_token,omitempty"`
}

// DocumentIDInput identifies one document.
type DocumentIDInput struct {
	DocumentID string `json:"document_id" jsonschema:"the document identifier"`
}

// CreateDocumentInput is the input schema for the create_document tool.
type CreateDocumentInput struct {
	Title      string `json:"title" jsonschema:"document title"`
	TemplateID string `json:"template_id" jsonschema:"template the document follows, see list_templates"`
	PersonaID  string `json:"persona_id,omitempty" jsonschema:"reviewer persona to write for, see list_personas"`
	Content    string `json:"content,omitempty" jsonschema:"initial markdown content"`
}

// SubmitDocumentOutput is the output schema for the submit_document tool.
type SubmitDocumentOutput struct {
	Document DocumentOutput `json:"document"`
	Message  string         `json:"message,omitempty"`
}

// ReviewOutput is a review as returned by the tools.
type ReviewOutput struct {
	ID        string `json:"review_id"`
	Status    string `json:"status"`
	Feedback  string `json:"feedback"`
	CreatedAt string `json:"created_at,omitempty"`
}

// ListReviewsOutput is the output schema for the list_reviews tool.
type ListReviewsOutput struct {
	Reviews []ReviewOutput `json:"reviews"`
	Count   int            `json:"count"`
}

// ListInput is the input schema for the simple list tools.
type ListInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of items to return (default 20)"`
}

// PersonaOutput is a persona as returned by the tools.
type PersonaOutput struct {
	ID             string   `json:"persona_id"`
	Name           string   `json:"name"`
	Role           string   `json:"role"`
	Tone           string   `json:"tone,omitempty"`
	Length         string   `json:"length,omitempty"`
	TechnicalDepth string   `json:"technical_depth,omitempty"`
	Likes          []string `json:"likes,omitempty"`
	Dislikes       []string `json:"dislikes,omitempty"`
	Examples       int      `json:"examples"`
}

// ListPersonasOutput is the output schema for the list_personas tool.
type ListPersonasOutput struct {
	Personas []PersonaOutput `json:"personas"`
	Count    int             `json:"count"`
}

// ListTemplatesInput is the input schema for the list_templates tool.
type ListTemplatesInput struct {
	Audience string `json:"audience,omitempty" jsonschema:"only templates for this audience: ENGINEERING, PRODUCT, LEADERSHIP or CUSTOM"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of templates to return (default 20)"`
}

// TemplateOutput is a template as returned by the tools.
type TemplateOutput struct {
	ID        string `json:"template_id"`
	Name      string `json:"name"`
	Audience  string `json:"audience"`
	IsDefault bool   `json:"is_default"`
	Structure string `json:"structure"`
}

// ListTemplatesOutput is the output schema for the list_templates tool.
type ListTemplatesOutput struct {
	Templates []TemplateOutput `json:"templates"`
	Count     int              `json:"count"`
}

// AxiomOutput is an axiom as returned by the tools.
type AxiomOutput struct {
	ID        string `json:"axiom_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	IsDefault bool   `json:"is_default"`
}

// ListAxiomsOutput is the output schema for the list_axioms tool.
type ListAxiomsOutput struct {
	Axioms []AxiomOutput `json:"axioms"`
	Count  int           `json:"count"`
}

// WhoamiInput is the empty input of the whoami tool.
type WhoamiInput struct{}

// WhoamiOutput is the output schema for the whoami tool.
type WhoamiOutput struct {
	ID               string `json:"user_id"`
	Email            string `json:"email"`
	Name             string `json:"name,omitempty"`
	SubscriptionTier string `json:"subscription_tier,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List the user's PRD documents, newest first",
	}, s.handleListDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_document",
		Description: "Get a PRD document including its markdown content",
	}, s.handleGetDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "create_document",
		Description: "Create a draft PRD document from a template",
	}, s.handleCreateDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "submit_document",
		Description: "Submit a draft document for review",
	}, s.handleSubmitDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_reviews",
		Description: "List the reviews of a document",
	}, s.handleListReviews)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_personas",
		Description: "List reviewer personas and their preferences",
	}, s.handleListPersonas)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_templates",
		Description: "List document templates and their structure",
	}, s.handleListTemplates)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_axioms",
		Description: "List the writing rules documents should follow",
	}, s.handleListAxioms)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "whoami",
		Description: "Show the signed-in user",
	}, s.handleWhoami)
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	return limit
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func documentOutput(doc *domain.Document, withContent bool) DocumentOutput {
	out := DocumentOutput{
		ID:         doc.ID,
		Title:      doc.Title,
		Status:     doc.Status.String(),
		TemplateID: doc.TemplateID,
		PersonaID:  doc.PersonaID,
		UpdatedAt:  formatTime(doc.UpdatedAt),
	}
	if withContent {
		out.Content = doc.Content
	}
	return out
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	if err := s.requireSession(); err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	params := domain.DocumentListParams{
		ListParams: domain.ListParams{Limit: limitOrDefault(input.Limit), NextToken: input.NextToken},
	}
	if input.Status != "" {
		status, err := domain.ParseDocumentStatus(input.Status)
		if err != nil {
			return nil, ListDocumentsOutput{}, err
		}
		params.Status = status
	}

	page, err := s.ports.Documents.List(ctx, params)
	if err != nil {
		return nil, ListDocumentsOutput{}, fmt.Errorf("listing documents: %w", err)
	}

	output := ListDocumentsOutput{
		Documents: make([]DocumentOutput, len(page.Items)),
		Count:     len(page.Items),
		NextToken: page.NextToken,
	}
	for i := range page.Items {
		output.Documents[i] = documentOutput(&page.Items[i], false)
	}

	return nil, output, nil
}

// handleGetDocument handles the get_document tool invocation.
func (s *Server) handleGetDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DocumentIDInput,
) (*mcp.CallToolResult, DocumentOutput, error) {
	if err := s.requireSession(); err != nil {
		return nil, DocumentOutput{}, err
	}
	if input.DocumentID == "" {
		return nil, DocumentOutput{}, fmt.Errorf("%w: document_id is required", domain.ErrInvalidInput)
	}

	doc, err := s.ports.Documents.Get(ctx, input.DocumentID)
	if err != nil {
		return nil, DocumentOutput{}, fmt.Errorf("getting document: %w", err)
	}

	return nil, documentOutput(doc, true), nil
}

// handleCreateDocument handles the create_document tool invocation.
// The input is checked with the same rules as the new document form.
func (s *Server) handleCreateDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateDocumentInput,
) (*mcp.CallToolResult, DocumentOutput, error) {
	if err := s.requireSession(); err != nil {
		return nil, DocumentOutput{}, err
	}

	form := validation.NewDocumentInput{
		Title:      input.Title,
		TemplateID: input.TemplateID,
		PersonaID:  input.PersonaID,
		Content:    input.Content,
	}
	if errs := form.Validate(); len(errs) > 0 {
		return nil, DocumentOutput{}, fmt.Errorf("%w: %w", domain.ErrInvalidInput, errs)
	}

	doc, err := s.ports.Documents.Create(ctx, form.Request())
	if err != nil {
		return nil, DocumentOutput{}, fmt.Errorf("creating document: %w", err)
	}

	return nil, documentOutput(doc, true), nil
}

// handleSubmitDocument handles the submit_document tool invocation.
func (s *Server) handleSubmitDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DocumentIDInput,
) (*mcp.CallToolResult, SubmitDocumentOutput, error) {
	if err := s.requireSession(); err != nil {
		return nil, SubmitDocumentOutput{}, err
	}
	if input.DocumentID == "" {
		return nil, SubmitDocumentOutput{}, fmt.Errorf("%w: document_id is required", domain.ErrInvalidInput)
	}

	result, err := s.ports.Documents.Submit(ctx, input.DocumentID)
	if err != nil {
		return nil, SubmitDocumentOutput{}, fmt.Errorf("submitting document: %w", err)
	}

	return nil, SubmitDocumentOutput{
		Document: documentOutput(&result.Document, false),
		Message:  result.Message,
	}, nil
}

// handleListReviews handles the list_reviews tool invocation.
func (s *Server) handleListReviews(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DocumentIDInput,
) (*mcp.CallToolResult, ListReviewsOutput, error) {
	if err := s.requireSession(); err != nil {
		return nil, ListReviewsOutput{}, err
	}
	if input.DocumentID == "" {
		return nil, ListReviewsOutput{}, fmt.Errorf("%w: document_id is required", domain.ErrInvalidInput)
	}

	reviews, err := s.ports.Documents.Reviews(ctx, input.DocumentID)
	if err != nil {
		return nil, ListReviewsOutput{}, fmt.Errorf("listing reviews: %w", err)
	}

	output := ListReviewsOutput{
		Reviews: make([]ReviewOutput, len(reviews)),
		Count:   len(reviews),
	}
	for i, r := range reviews {
		output.Reviews[i] = ReviewOutput{
			ID:        r.ID,
			Status:    string(r.Status),
			Feedback:  r.Feedback,
			CreatedAt: formatTime(r.CreatedAt),
		}
	}

	return nil, output, nil
}

// handleListPersonas handles the list_personas tool invocation.
func (s *Server) handleListPersonas(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListInput,
) (*mcp.CallToolResult, ListPersonasOutput, error) {
	if err := s.requireSession(); err != nil {
		return nil, ListPersonasOutput{}, err
	}
	if s.ports.Personas == nil {
		return nil, ListPersonasOutput{}, fmt.Errorf("personas: %w", ErrServiceUnavailable)
	}

	page, err := s.ports.Personas.List(ctx, domain.ListParams{Limit: limitOrDefault(input.Limit)})
	if err != nil {
		return nil, ListPersonasOutput{}, fmt.Errorf("listing personas: %w", err)
	}

	output := ListPersonasOutput{
		Personas: make([]PersonaOutput, len(page.Items)),
		Count:    len(page.Items),
	}
	for i, p := range page.Items {
		output.Personas[i] = PersonaOutput{
			ID:             p.ID,
			Name:           p.Name,
			Role:           p.Role,
			Tone:           p.Preferences.Tone,
			Length:         p.Preferences.Length,
			TechnicalDepth: p.Preferences.TechnicalDepth,
			Likes:          p.Preferences.Likes,
			Dislikes:       p.Preferences.Dislikes,
			Examples:       len(p.Examples),
		}
	}

	return nil, output, nil
}

// handleListTemplates handles the list_templates tool invocation.
func (s *Server) handleListTemplates(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListTemplatesInput,
) (*mcp.CallToolResult, ListTemplatesOutput, error) {
	if err := s.requireSession(); err != nil {
		return nil, ListTemplatesOutput{}, err
	}
	if s.ports.Templates == nil {
		return nil, ListTemplatesOutput{}, fmt.Errorf("templates: %w", ErrServiceUnavailable)
	}

	params := domain.TemplateListParams{ListParams: domain.ListParams{Limit: limitOrDefault(input.Limit)}}
	if input.Audience != "" {
		audience, err := domain.ParseTemplateAudience(input.Audience)
		if err != nil {
			return nil, ListTemplatesOutput{}, err
		}
		params.Audience = audience
	}

	page, err := s.ports.Templates.List(ctx, params)
	if err != nil {
		return nil, ListTemplatesOutput{}, fmt.Errorf("listing templates: %w", err)
	}

	output := ListTemplatesOutput{
		Templates: make([]TemplateOutput, len(page.Items)),
		Count:     len(page.Items),
	}
	for i, t := range page.Items {
		output.Templates[i] = TemplateOutput{
			ID:        t.ID,
			Name:      t.Name,
			Audience:  t.Audience.String(),
			IsDefault: t.IsDefault,
			Structure: t.Structure,
		}
	}

	return nil, output, nil
}

// handleListAxioms handles the list_axioms tool invocation.
func (s *Server) handleListAxioms(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListInput,
) (*mcp.CallToolResult, ListAxiomsOutput, error) {
	if err := s.requireSession(); err != nil {
		return nil, ListAxiomsOutput{}, err
	}
	if s.ports.Axioms == nil {
		return nil, ListAxiomsOutput{}, fmt.Errorf("axioms: %w", ErrServiceUnavailable)
	}

	page, err := s.ports.Axioms.List(ctx, domain.ListParams{Limit: limitOrDefault(input.Limit)})
	if err != nil {
		return nil, ListAxiomsOutput{}, fmt.Errorf("listing axioms: %w", err)
	}

	output := ListAxiomsOutput{
		Axioms: make([]AxiomOutput, len(page.Items)),
		Count:  len(page.Items),
	}
	for i, a := range page.Items {
		output.Axioms[i] = AxiomOutput{
			ID:        a.ID,
			Title:     a.Title,
			Content:   a.Content,
			IsDefault: a.IsDefault,
		}
	}

	return nil, output, nil
}

// handleWhoami handles the whoami tool invocation. Without a profile
// service it answers from the session alone.
func (s *Server) handleWhoami(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ WhoamiInput,
) (*mcp.CallToolResult, WhoamiOutput, error) {
	if err := s.requireSession(); err != nil {
		return nil, WhoamiOutput{}, err
	}

	if s.ports.Profile == nil {
		user := s.ports.Session.State().User
		if user == nil {
			return nil, WhoamiOutput{}, ErrNotSignedIn
		}
		return nil, WhoamiOutput{ID: user.ID, Email: user.Email, Name: user.Name}, nil
	}

	profile, err := s.ports.Profile.Me(ctx)
	if err != nil {
		return nil, WhoamiOutput{}, fmt.Errorf("getting profile: %w", err)
	}

	return nil, WhoamiOutput{
		ID:               profile.ID,
		Email:            profile.Email,
		Name:             profile.Name,
		SubscriptionTier: profile.SubscriptionTier,
	}, nil
}
