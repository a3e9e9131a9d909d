package domain

// ListParams are the pagination parameters shared by list operations.
type ListParams struct {
	// Limit caps the page size. Zero leaves it to the backend.
	Limit int
	// NextToken is the cursor returned by a previous page.
	NextToken string
}

// TemplateListParams adds the audience filter to ListParams.
type TemplateListParams struct {
	ListParams
	Audience TemplateAudience
}

// DocumentListParams adds the status filter to ListParams.
type DocumentListParams struct {
	ListParams
	Status DocumentStatus
}

// ListResponse is one page of a list operation.
type ListResponse[T any] struct {
	Items     []T    `json:"items"`
	NextToken string `json:"nextToken,omitempty"`
	Total     *int   `json:"total,omitempty"`
}

// HasMore reports whether another page is available.
func (r *ListResponse[T]) HasMore() bool {
	return r.NextToken != ""
}

// Count returns Total when the backend reported one, else the page length.
func (r *ListResponse[T]) Count() int {
	if r.Total != nil {
		return *r.Total
	}
	return len(r.Items)
}
