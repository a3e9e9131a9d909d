package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for Kameleon resources.
	uriScheme = "kameleon://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing documents.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "The user's PRD documents",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	// Template for document content.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}",
		Name:        "document-content",
		Description: "Markdown content of a specific document",
		MIMEType:    "text/markdown",
	}, s.handleDocumentContentResource)

	// Static resource with every axiom as one markdown page.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "axioms",
		Name:        "axioms",
		Description: "Writing rules every document should follow",
		MIMEType:    "text/markdown",
	}, s.handleAxiomsResource)
}

// handleDocumentsResource returns the first page of documents.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}

	page, err := s.ports.Documents.List(ctx, domain.DocumentListParams{})
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	// Build simplified document list.
	type docInfo struct {
		ID     string `json:"id"`
		Title  string `json:"title"`
		Status string `json:"status"`
		URI    string `json:"uri"`
	}

	infos := make([]docInfo, len(page.Items))
	for i := range page.Items {
		infos[i] = docInfo{
			ID:     page.Items[i].ID,
			Title:  page.Items[i].Title,
			Status: page.Items[i].Status.String(),
			URI:    uriScheme + "documents/" + page.Items[i].ID,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling documents: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDocumentContentResource returns the content of a specific document.
func (s *Server) handleDocumentContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}

	// Extract documentId from URI: kameleon://documents/{documentId}
	docID := extractDocumentID(req.Params.URI)
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	doc, err := s.ports.Documents.Get(ctx, docID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("getting document: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     doc.Content,
		}},
	}, nil
}

// handleAxiomsResource renders the axioms as markdown sections.
func (s *Server) handleAxiomsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	if s.ports.Axioms == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	page, err := s.ports.Axioms.List(ctx, domain.ListParams{})
	if err != nil {
		return nil, fmt.Errorf("listing axioms: %w", err)
	}

	var b strings.Builder
	for i, a := range page.Items {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "## %s\n\n%s\n", a.Title, strings.TrimSpace(a.Content))
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     b.String(),
		}},
	}, nil
}

// extractDocumentID extracts the document ID from a URI like kameleon://documents/{documentId}.
func extractDocumentID(uri string) string {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
