package api

import (
	"context"
	"net/http"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driven"
)

// Ensure the review and profile modules implement their interfaces.
var (
	_ driven.ReviewAPI  = (*Reviews)(nil)
	_ driven.ProfileAPI = (*Profile)(nil)
)

// Reviews is the /reviews resource.
type Reviews struct {
	client *Client
}

// NewReviews creates the review module.
func NewReviews(client *Client) *Reviews {
	return &Reviews{client: client}
}

type reviewEnvelope struct {
	Review domain.Review `json:"review"`
}

// Create records a review against a document.
func (r *Reviews) Create(ctx context.Context, req domain.CreateReviewRequest) (*domain.Review, error) {
	return r.call(ctx, Request{Method: http.MethodPost, Path: pathReviews, Body: req})
}

// Update changes a review's status or feedback.
func (r *Reviews) Update(ctx context.Context, id string, req domain.UpdateReviewRequest) (*domain.Review, error) {
	return r.call(ctx, Request{Method: http.MethodPut, Path: itemPath(pathReviews, id), Body: req})
}

func (r *Reviews) call(ctx context.Context, req Request) (*domain.Review, error) {
	var env reviewEnvelope
	if err := r.client.Do(ctx, req, &env); err != nil {
		return nil, err
	}
	return &env.Review, nil
}

// Profile is the /me endpoint.
type Profile struct {
	client *Client
}

// NewProfile creates the profile module.
func NewProfile(client *Client) *Profile {
	return &Profile{client: client}
}

type userEnvelope struct {
	User domain.UserProfile `json:"user"`
}

// Me returns the signed-in user's profile.
func (p *Profile) Me(ctx context.Context) (*domain.UserProfile, error) {
	var env userEnvelope
	if err := p.client.Do(ctx, Request{Path: pathMe}, &env); err != nil {
		return nil, err
	}
	return &env.User, nil
}
