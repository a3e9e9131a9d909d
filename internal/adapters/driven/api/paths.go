package api

import (
	"net/url"
	"strconv"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
)

// Collection paths.
const (
	pathAxioms    = "/axioms"
	pathTemplates = "/templates"
	pathPersonas  = "/personas"
	pathDocuments = "/documents"
	pathReviews   = "/reviews"
	pathMe        = "/me"
)

// itemPath joins a collection with escaped path segments.
func itemPath(collection string, segments ...string) string {
	p := collection
	for _, s := range segments {
		p += "/" + url.PathEscape(s)
	}
	return p
}

// listQuery encodes pagination, leaving zero values out.
func listQuery(p domain.ListParams) url.Values {
	q := url.Values{}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.NextToken != "" {
		q.Set("nextToken", p.NextToken)
	}
	return q
}
