package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
)

// makeIDToken builds an ID token with the claims the session manager reads.
func makeIDToken(email, name string, exp time.Time) string {
	claims := jwt.MapClaims{
		"sub":   "user-" + email,
		"email": email,
		"name":  name,
		"exp":   exp.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		panic(err)
	}
	return signed
}

func makeTokens(email, name string, exp time.Time) *domain.Tokens {
	return &domain.Tokens{
		IDToken:      makeIDToken(email, name, exp),
		AccessToken:  "access-" + email,
		RefreshToken: "refresh-" + email,
		Expiry:       exp,
	}
}

// mockIdentity is a scriptable identity provider that counts calls.
type mockIdentity struct {
	mu    sync.Mutex
	calls map[string]int

	signInTokens      *domain.Tokens
	signInErr         error
	needsConfirmation bool
	signUpErr         error
	confirmErr        error
	resendErr         error
	forgotErr         error
	confirmForgotErr  error
	refreshTokens     *domain.Tokens
	refreshErr        error
	signOutErr        error
}

func newMockIdentity() *mockIdentity {
	return &mockIdentity{calls: make(map[string]int)}
}

func (m *mockIdentity) count(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[name]++
}

func (m *mockIdentity) Calls(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

func (m *mockIdentity) SignIn(_ context.Context, email, _ string) (*domain.Tokens, error) {
	m.count("SignIn")
	if m.signInErr != nil {
		return nil, m.signInErr
	}
	if m.signInTokens != nil {
		return m.signInTokens, nil
	}
	return makeTokens(email, "Ada Lovelace", time.Now().Add(time.Hour)), nil
}

func (m *mockIdentity) SignUp(context.Context, string, string, string) (bool, error) {
	m.count("SignUp")
	return m.needsConfirmation, m.signUpErr
}

func (m *mockIdentity) ConfirmSignUp(context.Context, string, string) error {
	m.count("ConfirmSignUp")
	return m.confirmErr
}

func (m *mockIdentity) ResendConfirmationCode(context.Context, string) error {
	m.count("ResendConfirmationCode")
	return m.resendErr
}

func (m *mockIdentity) ForgotPassword(context.Context, string) error {
	m.count("ForgotPassword")
	return m.forgotErr
}

func (m *mockIdentity) ConfirmForgotPassword(context.Context, string, string, string) error {
	m.count("ConfirmForgotPassword")
	return m.confirmForgotErr
}

func (m *mockIdentity) Refresh(context.Context, string) (*domain.Tokens, error) {
	m.count("Refresh")
	if m.refreshErr != nil {
		return nil, m.refreshErr
	}
	return m.refreshTokens, nil
}

func (m *mockIdentity) SignOut(context.Context, string) error {
	m.count("SignOut")
	return m.signOutErr
}

// mockSessionStore keeps one session in memory.
type mockSessionStore struct {
	session *domain.Session
	loadErr error
	saves   int
	clears  int
}

func (m *mockSessionStore) Load(context.Context) (*domain.Session, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.session == nil {
		return nil, domain.ErrNotFound
	}
	s := *m.session
	return &s, nil
}

func (m *mockSessionStore) Save(_ context.Context, s *domain.Session) error {
	m.saves++
	cp := *s
	m.session = &cp
	return nil
}

func (m *mockSessionStore) Clear(context.Context) error {
	m.clears++
	m.session = nil
	return nil
}

// mockActivityStore records activities in memory.
type mockActivityStore struct {
	mu    sync.Mutex
	items []domain.Activity
	err   error
}

func (m *mockActivityStore) Record(_ context.Context, a *domain.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.items = append([]domain.Activity{*a}, m.items...)
	return nil
}

func (m *mockActivityStore) Recent(_ context.Context, limit int) ([]domain.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit > len(m.items) {
		limit = len(m.items)
	}
	return append([]domain.Activity(nil), m.items[:limit]...), nil
}

func (m *mockActivityStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = nil
	return nil
}

// mockSession is a scriptable session service for the auth flows.
type mockSession struct {
	calls             map[string]int
	result            domain.AuthResult
	needsConfirmation bool
	state             domain.SessionState
}

func newMockSession(result domain.AuthResult) *mockSession {
	return &mockSession{calls: make(map[string]int), result: result}
}

func (m *mockSession) Initialize(context.Context) error { return nil }

func (m *mockSession) State() domain.SessionState { return m.state }

func (m *mockSession) IDToken(context.Context) (string, error) { return "", nil }

func (m *mockSession) SignOut(context.Context) error { return nil }

func (m *mockSession) SignIn(context.Context, string, string) domain.AuthResult {
	m.calls["SignIn"]++
	return m.result
}

func (m *mockSession) SignUp(context.Context, string, string, string) domain.SignUpResult {
	m.calls["SignUp"]++
	return domain.SignUpResult{AuthResult: m.result, NeedsConfirmation: m.needsConfirmation}
}

func (m *mockSession) ConfirmSignUp(context.Context, string, string) domain.AuthResult {
	m.calls["ConfirmSignUp"]++
	return m.result
}

func (m *mockSession) ResendConfirmationCode(context.Context, string) domain.AuthResult {
	m.calls["ResendConfirmationCode"]++
	return m.result
}

func (m *mockSession) ForgotPassword(context.Context, string) domain.AuthResult {
	m.calls["ForgotPassword"]++
	return m.result
}

func (m *mockSession) ConfirmForgotPassword(context.Context, string, string, string) domain.AuthResult {
	m.calls["ConfirmForgotPassword"]++
	return m.result
}

// mockDocumentAPI is an in-memory document backend.
type mockDocumentAPI struct {
	docs       map[string]domain.Document
	listErr    error
	lastParams domain.DocumentListParams
}

func newMockDocumentAPI(docs ...domain.Document) *mockDocumentAPI {
	m := &mockDocumentAPI{docs: make(map[string]domain.Document)}
	for _, d := range docs {
		m.docs[d.ID] = d
	}
	return m
}

func (m *mockDocumentAPI) List(_ context.Context, p domain.DocumentListParams) (*domain.ListResponse[domain.Document], error) {
	m.lastParams = p
	if m.listErr != nil {
		return nil, m.listErr
	}
	resp := &domain.ListResponse[domain.Document]{}
	for _, d := range m.docs {
		if p.Status == "" || d.Status == p.Status {
			resp.Items = append(resp.Items, d)
		}
	}
	return resp, nil
}

func (m *mockDocumentAPI) Get(_ context.Context, id string) (*domain.Document, error) {
	d, ok := m.docs[id]
	if !ok {
		return nil, domain.NewAPIError(404, "Document not found", "")
	}
	return &d, nil
}

func (m *mockDocumentAPI) Create(_ context.Context, req domain.CreateDocumentRequest) (*domain.Document, error) {
	d := domain.Document{ID: "doc-new", Title: req.Title, Status: domain.DocumentDraft}
	m.docs[d.ID] = d
	return &d, nil
}

func (m *mockDocumentAPI) Update(_ context.Context, id string, req domain.UpdateDocumentRequest) (*domain.Document, error) {
	d, ok := m.docs[id]
	if !ok {
		return nil, domain.NewAPIError(404, "", "")
	}
	if req.Title != nil {
		d.Title = *req.Title
	}
	m.docs[id] = d
	return &d, nil
}

func (m *mockDocumentAPI) Delete(_ context.Context, id string) error {
	if _, ok := m.docs[id]; !ok {
		return domain.NewAPIError(404, "", "")
	}
	delete(m.docs, id)
	return nil
}

func (m *mockDocumentAPI) Submit(_ context.Context, id string) (*domain.SubmitResult, error) {
	d, ok := m.docs[id]
	if !ok {
		return nil, domain.NewAPIError(404, "", "")
	}
	d.Status = domain.DocumentInReview
	m.docs[id] = d
	return &domain.SubmitResult{Document: d, Message: "Document submitted for review"}, nil
}

func (m *mockDocumentAPI) Reviews(context.Context, string) ([]domain.Review, error) {
	return []domain.Review{{ID: "r-1", Status: domain.ReviewPending}}, nil
}

// mockAxiomAPI returns a fixed page or error.
type mockAxiomAPI struct {
	page    *domain.ListResponse[domain.Axiom]
	err     error
	deleted []string
}

func (m *mockAxiomAPI) List(context.Context, domain.ListParams) (*domain.ListResponse[domain.Axiom], error) {
	return m.page, m.err
}

func (m *mockAxiomAPI) Get(_ context.Context, id string) (*domain.Axiom, error) {
	return &domain.Axiom{ID: id}, m.err
}

func (m *mockAxiomAPI) Create(_ context.Context, req domain.CreateAxiomRequest) (*domain.Axiom, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Axiom{ID: "ax-1", Title: req.Title, Content: req.Content}, nil
}

func (m *mockAxiomAPI) Update(_ context.Context, id string, _ domain.UpdateAxiomRequest) (*domain.Axiom, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Axiom{ID: id}, nil
}

func (m *mockAxiomAPI) Delete(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, id)
	return nil
}

// mockPersonaAPI returns fixed values.
type mockPersonaAPI struct {
	page *domain.ListResponse[domain.Persona]
	err  error
}

func (m *mockPersonaAPI) List(context.Context, domain.ListParams) (*domain.ListResponse[domain.Persona], error) {
	return m.page, m.err
}

func (m *mockPersonaAPI) Get(_ context.Context, id string) (*domain.Persona, error) {
	return &domain.Persona{ID: id}, m.err
}

func (m *mockPersonaAPI) Create(_ context.Context, req domain.CreatePersonaRequest) (*domain.Persona, error) {
	return &domain.Persona{ID: "p-1", Name: req.Name, Role: req.Role}, m.err
}

func (m *mockPersonaAPI) Update(_ context.Context, id string, _ domain.UpdatePersonaRequest) (*domain.Persona, error) {
	return &domain.Persona{ID: id}, m.err
}

func (m *mockPersonaAPI) Delete(context.Context, string) error { return m.err }

func (m *mockPersonaAPI) AddExample(_ context.Context, id string, req domain.AddPersonaExampleRequest) (*domain.Persona, error) {
	return &domain.Persona{ID: id, Name: "Dana", Examples: []domain.PersonaExample{{ID: "ex-1", Type: req.Type}}}, m.err
}

func (m *mockPersonaAPI) RemoveExample(_ context.Context, id, _ string) (*domain.Persona, error) {
	return &domain.Persona{ID: id, Name: "Dana"}, m.err
}

// mockTemplateAPI returns fixed values.
type mockTemplateAPI struct {
	page       *domain.ListResponse[domain.Template]
	err        error
	lastParams domain.TemplateListParams
}

func (m *mockTemplateAPI) List(_ context.Context, p domain.TemplateListParams) (*domain.ListResponse[domain.Template], error) {
	m.lastParams = p
	return m.page, m.err
}

func (m *mockTemplateAPI) Get(_ context.Context, id string) (*domain.Template, error) {
	return &domain.Template{ID: id}, m.err
}

func (m *mockTemplateAPI) Create(_ context.Context, req domain.CreateTemplateRequest) (*domain.Template, error) {
	return &domain.Template{ID: "t-1", Name: req.Name, Audience: req.Audience}, m.err
}

func (m *mockTemplateAPI) Update(_ context.Context, id string, _ domain.UpdateTemplateRequest) (*domain.Template, error) {
	return &domain.Template{ID: id}, m.err
}

func (m *mockTemplateAPI) Delete(context.Context, string) error { return m.err }

var errNetwork = errors.New("dial tcp 127.0.0.1:8000: connect: connection refused")
