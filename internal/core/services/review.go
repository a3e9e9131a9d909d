package services

import (
	"context"
	"fmt"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driven"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driving"
)

// Ensure ReviewService and ProfileService implement the interfaces.
var (
	_ driving.ReviewService  = (*ReviewService)(nil)
	_ driving.ProfileService = (*ProfileService)(nil)
)

// ReviewService records reviews through the backend.
type ReviewService struct {
	api driven.ReviewAPI
	log recorder
}

// NewReviewService creates a new review service. activity may be nil.
func NewReviewService(api driven.ReviewAPI, activity driven.ActivityStore) *ReviewService {
	return &ReviewService{api: api, log: newRecorder(activity)}
}

// Create records a review.
func (s *ReviewService) Create(ctx context.Context, req domain.CreateReviewRequest) (*domain.Review, error) {
	if s.api == nil {
		return nil, domain.ErrNotImplemented
	}
	if err := requireID(req.DocumentID); err != nil {
		return nil, err
	}
	if !req.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown review status %q", domain.ErrInvalidInput, req.Status)
	}
	review, err := s.api.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	s.log.record(ctx, domain.ActionCreated, domain.KindReview, "", review.ID)
	return review, nil
}

// Update changes a review.
func (s *ReviewService) Update(ctx context.Context, id string, req domain.UpdateReviewRequest) (*domain.Review, error) {
	if s.api == nil {
		return nil, domain.ErrNotImplemented
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	review, err := s.api.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	s.log.record(ctx, domain.ActionUpdated, domain.KindReview, "", review.ID)
	return review, nil
}

// ProfileService reads the current user's backend profile.
type ProfileService struct {
	api driven.ProfileAPI
}

// NewProfileService creates a new profile service.
func NewProfileService(api driven.ProfileAPI) *ProfileService {
	return &ProfileService{api: api}
}

// Me returns the signed-in user's profile.
func (s *ProfileService) Me(ctx context.Context) (*domain.UserProfile, error) {
	if s.api == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.api.Me(ctx)
}
