package document

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/messages"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/styles"
	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
)

// MockDocumentService implements driving.DocumentService for testing.
type MockDocumentService struct {
	GetFunc     func(ctx context.Context, id string) (*domain.Document, error)
	SubmitFunc  func(ctx context.Context, id string) (*domain.SubmitResult, error)
	ReviewsFunc func(ctx context.Context, id string) ([]domain.Review, error)
}

func (m *MockDocumentService) List(_ context.Context, _ domain.DocumentListParams) (*domain.ListResponse[domain.Document], error) {
	return &domain.ListResponse[domain.Document]{}, nil
}

func (m *MockDocumentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return &domain.Document{ID: id}, nil
}

func (m *MockDocumentService) Create(_ context.Context, _ domain.CreateDocumentRequest) (*domain.Document, error) {
	return nil, nil
}

func (m *MockDocumentService) Update(_ context.Context, _ string, _ domain.UpdateDocumentRequest) (*domain.Document, error) {
	return nil, nil
}

func (m *MockDocumentService) Delete(_ context.Context, _ string) error {
	return nil
}

func (m *MockDocumentService) Submit(ctx context.Context, id string) (*domain.SubmitResult, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockDocumentService) Reviews(ctx context.Context, id string) ([]domain.Review, error) {
	if m.ReviewsFunc != nil {
		return m.ReviewsFunc(ctx, id)
	}
	return nil, nil
}

func sampleDocument() domain.Document {
	return domain.Document{
		ID:         "doc-1",
		Title:      "Checkout redesign",
		Content:    "Goals\nReduce checkout abandonment.",
		TemplateID: "tpl-1",
		Status:     domain.DocumentDraft,
	}
}

func withReviews() *MockDocumentService {
	return &MockDocumentService{
		GetFunc: func(_ context.Context, id string) (*domain.Document, error) {
			doc := sampleDocument()
			doc.Content = "Goals\nReduce checkout abandonment by 10%."
			return &doc, nil
		},
		ReviewsFunc: func(_ context.Context, id string) ([]domain.Review, error) {
			return []domain.Review{{
				ID:         "rev-1",
				DocumentID: id,
				Feedback:   "Clarify the success metric.",
				Status:     domain.ReviewChangesRequested,
				CreatedAt:  time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC),
			}}, nil
		},
	}
}

// opened returns a view showing sampleDocument with the load applied.
func opened(t *testing.T, svc *MockDocumentService) *View {
	t.Helper()
	v := NewView(styles.DefaultStyles(), svc)
	v.SetDimensions(100, 40)
	cmd := v.SetDocument(sampleDocument())
	require.NotNil(t, cmd)
	v, _ = v.Update(cmd())
	return v
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil)

	require.NotNil(t, v)
	assert.NotNil(t, v.styles)
	assert.Nil(t, v.Document())
	assert.Nil(t, v.Init())
	assert.Contains(t, v.View(), "No document selected")
}

func TestSetDocument_ShowsImmediately(t *testing.T) {
	v := NewView(nil, withReviews())

	_ = v.SetDocument(sampleDocument())

	view := v.View()
	assert.Contains(t, view, "Checkout redesign")
	assert.Contains(t, view, "Reduce checkout abandonment.")
	assert.Contains(t, view, "Loading reviews")
}

func TestSetDocument_LoadsDocumentAndReviews(t *testing.T) {
	v := opened(t, withReviews())

	require.NotNil(t, v.Document())
	assert.Len(t, v.Reviews(), 1)
	assert.NoError(t, v.Err())

	view := v.View()
	assert.Contains(t, view, "by 10%")
	assert.Contains(t, view, "Reviews (1)")
	assert.Contains(t, view, "Changes requested")
	assert.Contains(t, view, "Clarify the success metric.")
	assert.Contains(t, view, "Status: Draft")
	assert.Contains(t, view, "Template: tpl-1")
	assert.NotContains(t, view, "Loading reviews")
}

func TestSetDocument_NoReviews(t *testing.T) {
	v := opened(t, &MockDocumentService{})

	assert.Contains(t, v.View(), "No reviews yet")
}

func TestSetDocument_ReviewsError(t *testing.T) {
	svc := &MockDocumentService{
		ReviewsFunc: func(_ context.Context, _ string) ([]domain.Review, error) {
			return nil, errors.New("boom")
		},
	}

	v := opened(t, svc)

	assert.Error(t, v.Err())
	assert.Contains(t, v.View(), "Failed to load document")
	// The list copy stays visible.
	assert.Contains(t, v.View(), "Checkout redesign")
}

func TestSetDocument_NilService(t *testing.T) {
	v := NewView(nil, nil)

	msg := v.SetDocument(sampleDocument())()

	loaded, ok := msg.(messages.DocumentLoaded)
	require.True(t, ok)
	assert.Error(t, loaded.Err)
}

func TestUpdate_StaleLoadIgnored(t *testing.T) {
	v := opened(t, &MockDocumentService{})

	v.Update(messages.DocumentLoaded{DocumentID: "other", Err: errors.New("late")})

	assert.NoError(t, v.Err())
}

func TestUpdate_Submit(t *testing.T) {
	svc := withReviews()
	svc.SubmitFunc = func(_ context.Context, id string) (*domain.SubmitResult, error) {
		doc := sampleDocument()
		doc.Status = domain.DocumentInReview
		return &domain.SubmitResult{Document: doc, Message: "Document submitted for review"}, nil
	}
	v := opened(t, svc)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	require.NotNil(t, cmd)
	assert.Contains(t, v.View(), "Submitting for review")

	v.Update(cmd())

	assert.Equal(t, "Document submitted for review", v.Notice())
	assert.Equal(t, domain.DocumentInReview, v.Document().Status)
	assert.Contains(t, v.View(), "Status: In review")
}

func TestUpdate_SubmitFailure(t *testing.T) {
	svc := withReviews()
	svc.SubmitFunc = func(_ context.Context, _ string) (*domain.SubmitResult, error) {
		return nil, &domain.APIError{StatusCode: 409, Message: "Document is already in review"}
	}
	v := opened(t, svc)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	v.Update(cmd())

	assert.Contains(t, v.View(), "Document is already in review")
	assert.Empty(t, v.Notice())
}

func TestUpdate_SubmitIgnoredWhileLoading(t *testing.T) {
	v := NewView(nil, withReviews())
	_ = v.SetDocument(sampleDocument())

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})

	assert.Nil(t, cmd)
}

func TestUpdate_Scrolling(t *testing.T) {
	lines := make([]string, 100)
	for i := range lines {
		lines[i] = fmt.Sprintf("Line %d", i+1)
	}
	svc := &MockDocumentService{
		GetFunc: func(_ context.Context, id string) (*domain.Document, error) {
			return &domain.Document{ID: id, Title: "Long", Content: strings.Join(lines, "\n")}, nil
		},
	}
	v := opened(t, svc)
	v.SetDimensions(80, 20)

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, v.ScrollOffset())

	v.Update(tea.KeyMsg{Type: tea.KeyUp})
	v.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, v.ScrollOffset())

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	assert.Equal(t, v.maxScrollOffset(), v.ScrollOffset())
	assert.Contains(t, v.View(), "[100%]")

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	assert.Equal(t, 0, v.ScrollOffset())

	v.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, v.visibleLines(), v.ScrollOffset())
}

func TestLayout_WrapsLongLines(t *testing.T) {
	svc := &MockDocumentService{
		GetFunc: func(_ context.Context, id string) (*domain.Document, error) {
			return &domain.Document{ID: id, Content: strings.Repeat("word ", 40)}, nil
		},
	}
	v := opened(t, svc)
	v.SetDimensions(44, 40)

	for _, line := range v.lines {
		assert.LessOrEqual(t, len([]rune(line)), 40)
	}
}

func TestUpdate_EscReturnsToList(t *testing.T) {
	v := opened(t, &MockDocumentService{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewDocuments, changed.View)
}

func TestUpdate_ReloadKey(t *testing.T) {
	calls := 0
	svc := &MockDocumentService{
		ReviewsFunc: func(_ context.Context, _ string) ([]domain.Review, error) {
			calls++
			return nil, nil
		},
	}
	v := opened(t, svc)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	require.NotNil(t, cmd)
	v.Update(cmd())

	assert.Equal(t, 2, calls)
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Changes requested", humanize(string(domain.ReviewChangesRequested)))
	assert.Equal(t, "In review", humanize(string(domain.DocumentInReview)))
	assert.Equal(t, "Unknown", humanize(""))
}
