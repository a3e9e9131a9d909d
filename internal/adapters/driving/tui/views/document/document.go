// Package document provides the single document view for the TUI.
package document

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/sync/errgroup"

	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/messages"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/styles"
	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driving"
)

// View shows one document with its reviews.
type View struct {
	styles          *styles.Styles
	documentService driving.DocumentService
	ctx             context.Context

	document     *domain.Document
	reviews      []domain.Review
	lines        []string
	scrollOffset int

	loading    bool
	submitting bool
	notice     string
	err        error

	width  int
	height int
	ready  bool
}

// NewView creates a new document view.
func NewView(s *styles.Styles, documentService driving.DocumentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:          s,
		documentService: documentService,
		ctx:             context.Background(),
		width:           80,
		height:          24,
	}
}

// WithContext sets the context used for backend calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetDocument shows doc immediately and loads its latest state and reviews.
func (v *View) SetDocument(doc domain.Document) tea.Cmd {
	v.document = &doc
	v.reviews = nil
	v.scrollOffset = 0
	v.notice = ""
	v.err = nil
	v.submitting = false
	v.loading = true
	v.layout()
	return v.load(doc.ID)
}

// load fetches the document and its reviews concurrently.
func (v *View) load(id string) tea.Cmd {
	ctx := v.ctx
	svc := v.documentService
	return func() tea.Msg {
		if svc == nil {
			return messages.DocumentLoaded{DocumentID: id, Err: fmt.Errorf("document service not available")}
		}

		var (
			doc     *domain.Document
			reviews []domain.Review
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			doc, err = svc.Get(gctx, id)
			return err
		})
		g.Go(func() error {
			var err error
			reviews, err = svc.Reviews(gctx, id)
			return err
		})
		if err := g.Wait(); err != nil {
			return messages.DocumentLoaded{DocumentID: id, Err: err}
		}
		return messages.DocumentLoaded{DocumentID: id, Document: doc, Reviews: reviews}
	}
}

// submit returns a command that submits the document for review.
func (v *View) submit(id string) tea.Cmd {
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

// Update handles messages for the document view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DocumentLoaded:
		if v.document == nil || msg.DocumentID != v.document.ID {
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		if msg.Document != nil {
			v.document = msg.Document
		}
		v.reviews = msg.Reviews
		v.layout()
		return v, nil

	case messages.DocumentSubmitted:
		if v.document == nil || msg.DocumentID != v.document.ID || !v.submitting {
			return v, nil
		}
		v.submitting = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		if msg.Result != nil {
			v.notice = msg.Result.Message
			doc := msg.Result.Document
			if doc.ID != "" {
				v.document = &doc
			}
		}
		v.layout()
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "pgup", "ctrl+u":
		v.scrollOffset = max(v.scrollOffset-v.visibleLines(), 0)
	case "pgdown", "ctrl+d":
		v.scrollOffset = min(v.scrollOffset+v.visibleLines(), v.maxScrollOffset())
	case "home", "g":
		v.scrollOffset = 0
	case "end", "G":
		v.scrollOffset = v.maxScrollOffset()
	case "s":
		if v.document == nil || v.submitting || v.loading {
			return v, nil
		}
		v.submitting = true
		v.notice = ""
		return v, v.submit(v.document.ID)
	case "r":
		if v.document == nil {
			return v, nil
		}
		v.loading = true
		return v, v.load(v.document.ID)
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewDocuments}
		}
	}

	return v, nil
}

// layout renders the document body and reviews into wrapped lines.
func (v *View) layout() {
	if v.document == nil {
		v.lines = nil
		return
	}

	contentWidth := max(v.width-4, 20)

	var body strings.Builder
	if v.document.Content == "" {
		body.WriteString("(No content)")
	} else {
		body.WriteString(v.document.Content)
	}
	body.WriteString("\n\n")
	body.WriteString(fmt.Sprintf("Reviews (%d)\n", len(v.reviews)))
	if len(v.reviews) == 0 {
		body.WriteString("No reviews yet. Submit the document to request one.\n")
	}
	for _, r := range v.reviews {
		body.WriteString(fmt.Sprintf("\n[%s] %s\n", humanize(string(r.Status)), r.CreatedAt.Format("Jan 2, 2006 15:04")))
		if r.Feedback != "" {
			body.WriteString(r.Feedback)
			body.WriteString("\n")
		}
	}

	wrapped := ansi.Wrap(strings.TrimRight(body.String(), "\n"), contentWidth, "")
	v.lines = strings.Split(wrapped, "\n")
	v.scrollOffset = min(v.scrollOffset, v.maxScrollOffset())
}

// humanize renders an enum value for display, e.g. "Changes requested".
func humanize(s string) string {
	if s == "" {
		return "Unknown"
	}
	label := strings.ToLower(strings.ReplaceAll(s, "_", " "))
	return strings.ToUpper(label[:1]) + label[1:]
}

// visibleLines returns the number of lines that can be displayed.
func (v *View) visibleLines() int {
	// Reserve lines for title, metadata, banners and help.
	return max(v.height-9, 1)
}

// maxScrollOffset returns the maximum scroll offset.
func (v *View) maxScrollOffset() int {
	return max(len(v.lines)-v.visibleLines(), 0)
}

// View renders the document view.
func (v *View) View() string {
	var b strings.Builder

	if v.document == nil {
		b.WriteString(v.styles.Title.Render("Document"))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Muted.Render("No document selected."))
		return b.String()
	}

	title := v.document.Title
	if title == "" {
		title = v.document.ID
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(v.metadata()))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", max(min(v.width-4, 60), 0)))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(domain.UserMessage(v.err, "Failed to load document")))
		b.WriteString("\n\n")
	}
	if v.notice != "" {
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n\n")
	}
	if v.submitting {
		b.WriteString(v.styles.Muted.Render("Submitting for review..."))
		b.WriteString("\n\n")
	}
	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading reviews..."))
		b.WriteString("\n\n")
	}

	visible := v.visibleLines()
	end := min(v.scrollOffset+visible, len(v.lines))
	for i := v.scrollOffset; i < end; i++ {
		b.WriteString(v.styles.Normal.Render(v.lines[i]))
		b.WriteString("\n")
	}

	if len(v.lines) > visible {
		b.WriteString("\n")
		percentage := 0
		if v.maxScrollOffset() > 0 {
			percentage = v.scrollOffset * 100 / v.maxScrollOffset()
		}
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d%%] Line %d-%d of %d",
			percentage, v.scrollOffset+1, end, len(v.lines))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// metadata renders the status line under the title.
func (v *View) metadata() string {
	parts := []string{"Status: " + humanize(string(v.document.Status))}
	if v.document.TemplateID != "" {
		parts = append(parts, "Template: "+v.document.TemplateID)
	}
	if v.document.PersonaID != "" {
		parts = append(parts, "Persona: "+v.document.PersonaID)
	}
	if !v.document.UpdatedAt.IsZero() {
		parts = append(parts, "Updated "+v.document.UpdatedAt.Format("Jan 2, 2006"))
	}
	return strings.Join(parts, "  ·  ")
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom  [s] submit  [r] reload  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.layout()
}

// Document returns the current document.
func (v *View) Document() *domain.Document {
	return v.document
}

// Reviews returns the loaded reviews.
func (v *View) Reviews() []domain.Review {
	return v.reviews
}

// Notice returns the last submit message.
func (v *View) Notice() string {
	return v.notice
}

// ScrollOffset returns the current scroll position.
func (v *View) ScrollOffset() int {
	return v.scrollOffset
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
