package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driven/storage/memory"
	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/forms"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driving"
	"github.com/kameleon-labs/kameleon-cli/internal/core/services"
	"github.com/kameleon-labs/kameleon-cli/internal/core/validation"
)

// testServices holds the mocks installed by setupTestServices.
var testServices *mockSet

type mockSet struct {
	session   *mockSession
	auth      *mockAuthFlows
	axioms    *mockAxioms
	templates *mockTemplates
	personas  *mockPersonas
	documents *mockDocuments
	reviews   *mockReviews
	profile   *mockProfile
	dashboard *mockDashboard
	settings  *services.SettingsService
}

// setupTestServices installs mocks for every service and resets global flags.
func setupTestServices() func() {
	resetFlags(rootCmd)
	testServices = &mockSet{
		session: &mockSession{state: domain.SessionState{
			Authenticated: true,
			Initialized:   true,
			User:          &domain.SessionUser{ID: "u-1", Email: "ada@example.com", Name: "Ada Lovelace"},
		}},
		auth:      &mockAuthFlows{},
		axioms:    &mockAxioms{},
		templates: &mockTemplates{},
		personas:  &mockPersonas{},
		documents: &mockDocuments{},
		reviews:   &mockReviews{},
		profile:   &mockProfile{},
		dashboard: &mockDashboard{},
		settings:  services.NewSettingsService(memory.NewConfigStore(), nil),
	}
	SetServices(&Services{
		Session:   testServices.session,
		Auth:      testServices.auth,
		Axioms:    testServices.axioms,
		Templates: testServices.templates,
		Personas:  testServices.personas,
		Documents: testServices.documents,
		Reviews:   testServices.reviews,
		Profile:   testServices.profile,
		Dashboard: testServices.dashboard,
	})
	SetSettingsService(testServices.settings)
	SetBootstrap(nil)

	return func() {
		SetServices(nil)
		SetSettingsService(nil)
		SetBootstrap(nil)
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		testServices = nil
	}
}

// resetFlags restores every flag in the tree, since cobra keeps values between executions.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

var fixedTime = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

// mockSession implements driving.SessionService.
type mockSession struct {
	state      domain.SessionState
	signedOut  bool
	signOutErr error
}

func (m *mockSession) Initialize(context.Context) error { return nil }

func (m *mockSession) State() domain.SessionState { return m.state }

func (m *mockSession) IDToken(context.Context) (string, error) { return "token", nil }

func (m *mockSession) SignIn(context.Context, string, string) domain.AuthResult {
	return domain.Succeeded()
}

func (m *mockSession) SignUp(context.Context, string, string, string) domain.SignUpResult {
	return domain.SignUpResult{AuthResult: domain.Succeeded()}
}

func (m *mockSession) ConfirmSignUp(context.Context, string, string) domain.AuthResult {
	return domain.Succeeded()
}

func (m *mockSession) ResendConfirmationCode(context.Context, string) domain.AuthResult {
	return domain.Succeeded()
}

func (m *mockSession) ForgotPassword(context.Context, string) domain.AuthResult {
	return domain.Succeeded()
}

func (m *mockSession) ConfirmForgotPassword(context.Context, string, string, string) domain.AuthResult {
	return domain.Succeeded()
}

func (m *mockSession) SignOut(context.Context) error {
	if m.signOutErr != nil {
		return m.signOutErr
	}
	m.signedOut = true
	m.state = domain.SessionState{Initialized: true}
	return nil
}

// mockAuthFlows implements driving.AuthFlows. It validates like the real flows
// and records the submitted input; failure replaces a successful outcome.
type mockAuthFlows struct {
	failure string

	login       *validation.LoginInput
	register    *validation.RegisterInput
	verify      *validation.VerifyEmailInput
	forgot      *validation.ForgotPasswordInput
	reset       *validation.ResetPasswordInput
	resendEmail string
	resendReset bool
}

func (m *mockAuthFlows) finish(errs validation.FieldErrors, success forms.Outcome) forms.Outcome {
	if len(errs) > 0 {
		return forms.Invalid(errs)
	}
	if m.failure != "" {
		return forms.Failure(m.failure)
	}
	return success
}

func (m *mockAuthFlows) Login(_ context.Context, in validation.LoginInput) forms.Outcome {
	m.login = &in
	return m.finish(in.Validate(), forms.Success(forms.NavigateTo(forms.RouteDashboard)))
}

func (m *mockAuthFlows) Register(_ context.Context, in validation.RegisterInput) forms.Outcome {
	m.register = &in
	return m.finish(in.Validate(), forms.Success(forms.NavigateTo(forms.RouteVerifyEmail).With("email", in.Email)))
}

func (m *mockAuthFlows) VerifyEmail(_ context.Context, in validation.VerifyEmailInput) forms.Outcome {
	m.verify = &in
	return m.finish(in.Validate(), forms.Success(forms.NavigateTo(forms.RouteLogin).After(2*time.Second)))
}

func (m *mockAuthFlows) ResendVerification(_ context.Context, email string) forms.Outcome {
	m.resendEmail = email
	if email == "" {
		return forms.Failure("Email is required to resend code")
	}
	o := forms.Success(nil)
	o.Message = "Verification code sent! Check your email."
	return m.finish(nil, o)
}

func (m *mockAuthFlows) ForgotPassword(_ context.Context, in validation.ForgotPasswordInput) forms.Outcome {
	m.forgot = &in
	return m.finish(in.Validate(), forms.Success(forms.NavigateTo(forms.RouteResetPassword).With("email", in.Email)))
}

func (m *mockAuthFlows) ResetPassword(_ context.Context, in validation.ResetPasswordInput) forms.Outcome {
	m.reset = &in
	return m.finish(in.Validate(), forms.Success(forms.NavigateTo(forms.RouteLogin)))
}

func (m *mockAuthFlows) ResendReset(_ context.Context, email string) forms.Outcome {
	m.resendEmail = email
	m.resendReset = true
	o := forms.Success(nil)
	o.Message = "New code sent! Check your email."
	return m.finish(nil, o)
}

// mockAxioms implements driving.AxiomService.
type mockAxioms struct {
	err       error
	listed    domain.ListParams
	created   *domain.CreateAxiomRequest
	updated   *domain.UpdateAxiomRequest
	deletedID string
}

func (m *mockAxioms) List(_ context.Context, params domain.ListParams) (*domain.ListResponse[domain.Axiom], error) {
	m.listed = params
	if m.err != nil {
		return nil, m.err
	}
	return &domain.ListResponse[domain.Axiom]{
		Items: []domain.Axiom{
			{ID: "ax-1", Title: "Measure everything", Content: "Every goal has a metric.", IsDefault: true},
			{ID: "ax-2", Title: "Plain words", Content: "No jargon."},
		},
		NextToken: "page-2",
	}, nil
}

func (m *mockAxioms) Get(_ context.Context, id string) (*domain.Axiom, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Axiom{ID: id, Title: "Measure everything", Content: "Every goal has a metric.", CreatedAt: fixedTime}, nil
}

func (m *mockAxioms) Create(_ context.Context, req domain.CreateAxiomRequest) (*domain.Axiom, error) {
	m.created = &req
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Axiom{ID: "ax-new", Title: req.Title, Content: req.Content}, nil
}

func (m *mockAxioms) Update(_ context.Context, id string, req domain.UpdateAxiomRequest) (*domain.Axiom, error) {
	m.updated = &req
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Axiom{ID: id}, nil
}

func (m *mockAxioms) Delete(_ context.Context, id string) error {
	m.deletedID = id
	return m.err
}

// mockTemplates implements driving.TemplateService.
type mockTemplates struct {
	err     error
	listed  domain.TemplateListParams
	created *domain.CreateTemplateRequest
	updated *domain.UpdateTemplateRequest
}

func (m *mockTemplates) List(_ context.Context, params domain.TemplateListParams) (*domain.ListResponse[domain.Template], error) {
	m.listed = params
	if m.err != nil {
		return nil, m.err
	}
	return &domain.ListResponse[domain.Template]{Items: []domain.Template{
		{ID: "tpl-1", Name: "Engineering PRD", Audience: domain.AudienceEngineering, IsDefault: true},
	}}, nil
}

func (m *mockTemplates) Get(_ context.Context, id string) (*domain.Template, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Template{ID: id, Name: "Engineering PRD", Audience: domain.AudienceEngineering, Structure: "# Goals"}, nil
}

func (m *mockTemplates) Create(_ context.Context, req domain.CreateTemplateRequest) (*domain.Template, error) {
	m.created = &req
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Template{ID: "tpl-new", Name: req.Name, Audience: req.Audience}, nil
}

func (m *mockTemplates) Update(_ context.Context, id string, req domain.UpdateTemplateRequest) (*domain.Template, error) {
	m.updated = &req
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Template{ID: id}, nil
}

func (m *mockTemplates) Delete(context.Context, string) error { return m.err }

// mockPersonas implements driving.PersonaService.
type mockPersonas struct {
	err       error
	created   *domain.CreatePersonaRequest
	updated   *domain.UpdatePersonaRequest
	example   *domain.AddPersonaExampleRequest
	removedID string
}

func (m *mockPersonas) persona(id string) *domain.Persona {
	return &domain.Persona{
		ID:          id,
		Name:        "Dana",
		Role:        "VP Engineering",
		Preferences: domain.PersonaPreferences{Tone: "direct", Likes: []string{"metrics"}},
		Examples:    []domain.PersonaExample{{ID: "ex-1", Type: domain.ExampleLiked, Content: "Crisp summary."}},
	}
}

func (m *mockPersonas) List(context.Context, domain.ListParams) (*domain.ListResponse[domain.Persona], error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.ListResponse[domain.Persona]{Items: []domain.Persona{*m.persona("p-1")}}, nil
}

func (m *mockPersonas) Get(_ context.Context, id string) (*domain.Persona, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.persona(id), nil
}

func (m *mockPersonas) Create(_ context.Context, req domain.CreatePersonaRequest) (*domain.Persona, error) {
	m.created = &req
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Persona{ID: "p-new", Name: req.Name, Role: req.Role}, nil
}

func (m *mockPersonas) Update(_ context.Context, id string, req domain.UpdatePersonaRequest) (*domain.Persona, error) {
	m.updated = &req
	if m.err != nil {
		return nil, m.err
	}
	return m.persona(id), nil
}

func (m *mockPersonas) Delete(context.Context, string) error { return m.err }

func (m *mockPersonas) AddExample(_ context.Context, id string, req domain.AddPersonaExampleRequest) (*domain.Persona, error) {
	m.example = &req
	if m.err != nil {
		return nil, m.err
	}
	p := m.persona(id)
	p.Examples = append(p.Examples, domain.PersonaExample{ID: "ex-2", Type: req.Type, Content: req.Content})
	return p, nil
}

func (m *mockPersonas) RemoveExample(_ context.Context, id, exampleID string) (*domain.Persona, error) {
	m.removedID = exampleID
	if m.err != nil {
		return nil, m.err
	}
	return m.persona(id), nil
}

// mockDocuments implements driving.DocumentService.
type mockDocuments struct {
	err         error
	listed      domain.DocumentListParams
	created     *domain.CreateDocumentRequest
	updated     *domain.UpdateDocumentRequest
	submittedID string
}

func (m *mockDocuments) List(_ context.Context, params domain.DocumentListParams) (*domain.ListResponse[domain.Document], error) {
	m.listed = params
	if m.err != nil {
		return nil, m.err
	}
	total := 12
	return &domain.ListResponse[domain.Document]{
		Items: []domain.Document{
			{ID: "doc-1", Title: "Checkout PRD", Status: domain.DocumentDraft, UpdatedAt: fixedTime},
		},
		Total: &total,
	}, nil
}

func (m *mockDocuments) Get(_ context.Context, id string) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Document{ID: id, Title: "Checkout PRD", Content: "# Goals", Status: domain.DocumentDraft, TemplateID: "tpl-1"}, nil
}

func (m *mockDocuments) Create(_ context.Context, req domain.CreateDocumentRequest) (*domain.Document, error) {
	m.created = &req
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Document{ID: "doc-new", Title: req.Title, Status: domain.DocumentDraft}, nil
}

func (m *mockDocuments) Update(_ context.Context, id string, req domain.UpdateDocumentRequest) (*domain.Document, error) {
	m.updated = &req
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Document{ID: id}, nil
}

func (m *mockDocuments) Delete(context.Context, string) error { return m.err }

func (m *mockDocuments) Submit(_ context.Context, id string) (*domain.SubmitResult, error) {
	m.submittedID = id
	if m.err != nil {
		return nil, m.err
	}
	return &domain.SubmitResult{
		Document: domain.Document{ID: id, Status: domain.DocumentInReview},
		Message:  "Document submitted for review",
	}, nil
}

func (m *mockDocuments) Reviews(_ context.Context, id string) ([]domain.Review, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []domain.Review{
		{ID: "rev-1", DocumentID: id, Feedback: "Add rollout plan", Status: domain.ReviewChangesRequested},
	}, nil
}

// mockReviews implements driving.ReviewService.
type mockReviews struct {
	err     error
	created *domain.CreateReviewRequest
	updated *domain.UpdateReviewRequest
}

func (m *mockReviews) Create(_ context.Context, req domain.CreateReviewRequest) (*domain.Review, error) {
	m.created = &req
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Review{ID: "rev-new", DocumentID: req.DocumentID, Status: req.Status}, nil
}

func (m *mockReviews) Update(_ context.Context, id string, req domain.UpdateReviewRequest) (*domain.Review, error) {
	m.updated = &req
	if m.err != nil {
		return nil, m.err
	}
	review := &domain.Review{ID: id, Status: domain.ReviewPending}
	if req.Status != nil {
		review.Status = *req.Status
	}
	return review, nil
}

// mockProfile implements driving.ProfileService.
type mockProfile struct {
	err error
}

func (m *mockProfile) Me(context.Context) (*domain.UserProfile, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.UserProfile{ID: "u-1", Email: "ada@example.com", Name: "Ada Lovelace", SubscriptionTier: "pro"}, nil
}

// mockDashboard implements driving.DashboardService.
type mockDashboard struct {
	err        error
	limitAsked int
}

func (m *mockDashboard) Overview(context.Context) (*driving.Overview, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &driving.Overview{
		Greeting: "Welcome back, Ada",
		Counts: map[domain.ActivityKind]int{
			domain.KindDocument: 3,
			domain.KindPersona:  2,
			domain.KindTemplate: 4,
		},
		Errors: map[domain.ActivityKind]string{
			domain.KindAxiom: "Failed to load axioms",
		},
		Recent: []domain.Activity{
			{ID: "a-1", Action: domain.ActionCreated, Kind: domain.KindPersona, Item: "Dana", At: time.Now()},
		},
	}, nil
}

func (m *mockDashboard) Activity(_ context.Context, limit int) ([]domain.Activity, error) {
	m.limitAsked = limit
	if m.err != nil {
		return nil, m.err
	}
	return []domain.Activity{
		{ID: "a-1", Action: domain.ActionSubmitted, Kind: domain.KindDocument, Item: "Checkout PRD", At: time.Now()},
	}, nil
}
