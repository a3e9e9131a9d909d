// Package documents provides the documents list view component for the TUI.
package documents

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/components/list"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/messages"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/styles"
	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/forms"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driving"
)

// filters is the cycle order of the status filter. The empty status shows all.
var filters = []domain.DocumentStatus{"", domain.DocumentDraft, domain.DocumentInReview, domain.DocumentApproved}

// View is the documents list view.
type View struct {
	styles          *styles.Styles
	documentService driving.DocumentService
	ctx             context.Context

	list      *list.ItemList
	documents []domain.Document
	nextToken string
	filter    int

	loading    bool
	submitting string
	notice     string
	err        error

	width  int
	height int
	ready  bool
}

// NewView creates a new documents view.
func NewView(s *styles.Styles, documentService driving.DocumentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:          s,
		documentService: documentService,
		ctx:             context.Background(),
		list:            list.NewItemList(s, "No documents yet. Press [n] to create your first PRD."),
	}
}

// WithContext sets the context used for backend calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the first page of documents.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.err = nil
	v.notice = ""
	return v.loadDocuments("")
}

// loadDocuments returns a command that loads one page of documents.
func (v *View) loadDocuments(token string) tea.Cmd {
	ctx := v.ctx
	svc := v.documentService
	params := domain.DocumentListParams{
		ListParams: domain.ListParams{NextToken: token},
		Status:     filters[v.filter],
	}
	return func() tea.Msg {
		if svc == nil {
			return messages.DocumentsLoaded{Err: fmt.Errorf("document service not available")}
		}
		page, err := svc.List(ctx, params)
		if err != nil {
			return messages.DocumentsLoaded{More: token != "", Err: err}
		}
		return messages.DocumentsLoaded{
			Documents: page.Items,
			NextToken: page.NextToken,
			More:      token != "",
		}
	}
}

// submitDocument returns a command that submits a document for review.
func (v *View) submitDocument(id string) tea.Cmd {
	ctx := v.ctx
	svc := v.documentService
	return func() tea.Msg {
		if svc == nil {
			return messages.DocumentSubmitted{DocumentID: id, Err: fmt.Errorf("document service not available")}
		}
		result, err := svc.Submit(ctx, id)
		return messages.DocumentSubmitted{DocumentID: id, Result: result, Err: err}
	}
}

// Update handles messages for the documents view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DocumentsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		if msg.More {
			v.documents = append(v.documents, msg.Documents...)
		} else {
			v.documents = msg.Documents
		}
		v.nextToken = msg.NextToken
		v.refreshRows()
		return v, nil

	case messages.DocumentSubmitted:
		if msg.DocumentID != v.submitting {
			return v, nil
		}
		v.submitting = ""
		if msg.Err != nil {
			v.notice = ""
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		if msg.Result != nil {
			v.notice = msg.Result.Message
			v.replace(msg.Result.Document)
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses in list mode.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if doc := v.SelectedDocument(); doc != nil {
			selected := *doc
			return v, func() tea.Msg {
				return messages.DocumentSelected{Document: selected}
			}
		}
	case "s":
		doc := v.SelectedDocument()
		if doc == nil || v.submitting != "" {
			return v, nil
		}
		v.submitting = doc.ID
		v.notice = ""
		return v, v.submitDocument(doc.ID)
	case "n":
		return v, func() tea.Msg {
			return messages.Navigate{To: forms.NavigateTo(forms.RouteNewDocument)}
		}
	case "f":
		v.filter = (v.filter + 1) % len(filters)
		v.list.SetSelected(0)
		return v, v.Init()
	case "m":
		if v.nextToken != "" && !v.loading {
			v.loading = true
			return v, v.loadDocuments(v.nextToken)
		}
	case "r":
		return v, v.Init()
	case "esc":
		return v, func() tea.Msg { return messages.FocusMenu{} }
	default:
		v.list.Update(msg)
	}

	return v, nil
}

// replace swaps in an updated copy of a document.
func (v *View) replace(doc domain.Document) {
	for i := range v.documents {
		if v.documents[i].ID == doc.ID {
			v.documents[i] = doc
			v.refreshRows()
			return
		}
	}
}

// refreshRows rebuilds the list rows from the documents.
func (v *View) refreshRows() {
	rows := make([]list.Row, len(v.documents))
	for i := range v.documents {
		doc := &v.documents[i]
		detail := "Updated " + doc.UpdatedAt.Format("Jan 2, 2006")
		if doc.UpdatedAt.IsZero() {
			detail = doc.ID
		}
		rows[i] = list.Row{
			ID:     doc.ID,
			Title:  doc.Title,
			Badge:  statusLabel(doc.Status),
			Detail: detail,
		}
	}
	v.list.SetRows(rows)
}

// statusLabel renders a status for display, e.g. "In review".
func statusLabel(s domain.DocumentStatus) string {
	if s == "" {
		return ""
	}
	label := strings.ToLower(strings.ReplaceAll(string(s), "_", " "))
	return strings.ToUpper(label[:1]) + label[1:]
}

// View renders the documents view.
func (v *View) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Documents (%d)", len(v.documents))
	if f := filters[v.filter]; f != "" {
		title = fmt.Sprintf("Documents (%d) - %s", len(v.documents), statusLabel(f))
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	if v.loading && len(v.documents) == 0 {
		b.WriteString(v.styles.Muted.Render("Loading documents..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(domain.UserMessage(v.err, "Failed to load documents")))
		b.WriteString("\n\n")
	}
	if v.notice != "" {
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n\n")
	}
	if v.submitting != "" {
		b.WriteString(v.styles.Muted.Render("Submitting for review..."))
		b.WriteString("\n\n")
	}

	b.WriteString(v.list.View())
	b.WriteString("\n")

	if v.nextToken != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("  More documents available. Press [m] to load more."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] navigate  [enter] open  [s] submit  [n] new  [f] filter  [r] reload  [esc] menu")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	// Reserve lines for title, banners and help.
	v.list.SetDimensions(width, height-10)
}

// Documents returns the current list of documents.
func (v *View) Documents() []domain.Document {
	return v.documents
}

// SelectedIndex returns the currently selected document index.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// SelectedDocument returns the currently selected document.
func (v *View) SelectedDocument() *domain.Document {
	i := v.list.Selected()
	if i < len(v.documents) {
		return &v.documents[i]
	}
	return nil
}

// Filter returns the active status filter. Empty means all statuses.
func (v *View) Filter() domain.DocumentStatus {
	return filters[v.filter]
}

// Notice returns the last submit message.
func (v *View) Notice() string {
	return v.notice
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
