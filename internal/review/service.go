package review

import (
	"context"
	"strings"

	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the interface for review business logic.
type Service interface {
	List(ctx context.Context, propertyID *uuid.UUID) ([]Review, error)
	Get(ctx context.Context, id uuid.UUID) (*Review, error)
	Create(ctx context.Context, req CreateReviewRequest) (*Review, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateReviewRequest) (*Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, propertyID *uuid.UUID) (Stats, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new review service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger.Named("ReviewService")}
}

func (s *service) List(ctx context.Context, propertyID *uuid.UUID) ([]Review, error) {
	reviews, err := s.repo.List(ctx, propertyID)
	if err != nil {
		s.logger.Error("Failed to list reviews", zap.Error(err))
		return nil, common.StoreError(err, "Failed to fetch reviews.")
	}
	return reviews, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Review, error) {
	rev, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, common.StoreError(err, "Failed to fetch review.")
	}
	return rev, nil
}

func (s *service) Create(ctx context.Context, req CreateReviewRequest) (*Review, error) {
	name := strings.TrimSpace(firstNonEmpty(req.ReviewerName, req.ReviewerNameSnake))
	if name == "" {
		return nil, common.NewValidationAPIError("Reviewer name is required.", map[string]string{
			"reviewerName": "The reviewerName field is required.",
		})
	}
	comment := strings.TrimSpace(req.Comment)
	if comment == "" {
		return nil, common.NewValidationAPIError("Comment is required.", map[string]string{
			"comment": "The comment field is required.",
		})
	}

	rev := &Review{
		ReviewerName:  name,
		ReviewerEmail: trimmed(req.ReviewerEmail),
		Rating:        req.Rating,
		Title:         trimmed(req.Title),
		Comment:       comment,
		ServiceType:   trimmed(req.ServiceType),
		Location:      trimmed(req.Location),
	}
	if rev.ServiceType == nil {
		rev.ServiceType = trimmed(req.ServiceTypeSnake)
	}
	propertyID := req.PropertyID
	if propertyID == nil {
		propertyID = req.PropertyIDSnake
	}
	if propertyID != nil {
		// binding has already checked the format
		id := uuid.MustParse(*propertyID)
		rev.PropertyID = &id
	}

	if err := s.repo.Create(ctx, rev); err != nil {
		s.logger.Error("Failed to create review", zap.Error(err))
		return nil, common.StoreError(err, "Failed to create review.")
	}
	s.logger.Info("Review created", zap.String("id", rev.ID.String()), zap.Int("rating", rev.Rating))
	return rev, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateReviewRequest) (*Review, error) {
	changes := map[string]interface{}{}
	if v := trimmed(req.ReviewerName); v != nil {
		changes["reviewer_name"] = *v
	}
	if req.Rating != nil {
		changes["rating"] = *req.Rating
	}
	if req.Title != nil {
		changes["title"] = trimmed(req.Title)
	}
	if v := trimmed(req.Comment); v != nil {
		changes["comment"] = *v
	}
	if req.ServiceType != nil {
		changes["service_type"] = trimmed(req.ServiceType)
	}
	if req.Location != nil {
		changes["location"] = trimmed(req.Location)
	}

	rev, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, common.StoreError(err, "Failed to update review.")
	}
	return rev, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return common.StoreError(err, "Failed to delete review.")
	}
	s.logger.Info("Review deleted", zap.String("id", id.String()))
	return nil
}

func (s *service) Stats(ctx context.Context, propertyID *uuid.UUID) (Stats, error) {
	stats, err := s.repo.Stats(ctx, propertyID)
	if err != nil {
		s.logger.Error("Failed to compute review stats", zap.Error(err))
		return Stats{}, common.StoreError(err, "Failed to fetch review statistics.")
	}
	return stats, nil
}

// trimmed returns nil for nil or blank input.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
