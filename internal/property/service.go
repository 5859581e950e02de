package property

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/common"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/normalize"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/review"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/user"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// Service defines the interface for property business logic.
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]Property, error)
	Get(ctx context.Context, id uuid.UUID) (*Property, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]Property, error)
	ListReviews(ctx context.Context, id uuid.UUID) ([]review.Review, error)
	Create(ctx context.Context, body normalize.Body) (*Property, error)
	Update(ctx context.Context, id uuid.UUID, body normalize.Body) (*Property, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CreateInquiry(ctx context.Context, req CreateInquiryRequest) (*Inquiry, error)
}

type service struct {
	repo   Repository
	users  user.Repository
	logger *zap.Logger
}

// NewService creates a new property service.
func NewService(repo Repository, users user.Repository, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		users:  users,
		logger: logger.Named("PropertyService"),
	}
}

// List returns the raw store error; the handler decides to degrade it.
func (s *service) List(ctx context.Context, filter ListFilter) ([]Property, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Property, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, common.StoreError(err, "Failed to fetch property.")
	}
	return p, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerEmail string) ([]Property, error) {
	properties, err := s.repo.ListByOwner(ctx, ownerEmail)
	if err != nil {
		s.logger.Error("Failed to list owner properties", zap.Error(err))
		return nil, common.ErrInternalServer.WithMessage("Failed to fetch owner properties.").WithCause(err)
	}
	return properties, nil
}

func (s *service) ListReviews(ctx context.Context, id uuid.UUID) ([]review.Review, error) {
	reviews, err := s.repo.ListReviews(ctx, id)
	if err != nil {
		return nil, common.StoreError(err, "Failed to fetch property reviews.")
	}
	return reviews, nil
}

func (s *service) Create(ctx context.Context, body normalize.Body) (*Property, error) {
	fields, err := ParseCreate(body)
	if err != nil {
		s.logger.Warn("Rejected property create", zap.Error(err))
		return nil, validationError(err)
	}
	s.logWarnings(fields)
	if err := s.checkUserRefs(ctx, fields); err != nil {
		return nil, err
	}
	s.linkOwner(ctx, fields)
	namePhotos(fields)

	p, err := s.repo.Create(ctx, fields)
	if err != nil {
		s.logger.Error("Failed to create property", zap.Error(err))
		return nil, common.StoreError(err, "Failed to create property.")
	}
	s.logger.Info("Property created",
		zap.String("id", p.ID.String()),
		zap.String("listing_type", p.ListingType),
		zap.Int("photos", len(p.Photos)),
	)
	return p, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, body normalize.Body) (*Property, error) {
	fields, err := ParseUpdate(body)
	if err != nil {
		s.logger.Warn("Rejected property update", zap.String("id", id.String()), zap.Error(err))
		return nil, validationError(err)
	}
	s.logWarnings(fields)
	if err := s.checkUserRefs(ctx, fields); err != nil {
		return nil, err
	}
	s.linkOwner(ctx, fields)
	namePhotos(fields)

	p, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		s.logger.Error("Failed to update property", zap.String("id", id.String()), zap.Error(err))
		return nil, common.StoreError(err, "Failed to update property.")
	}
	s.logger.Info("Property updated", zap.String("id", id.String()))
	return p, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete property", zap.String("id", id.String()), zap.Error(err))
		return common.StoreError(err, "Failed to delete property.")
	}
	s.logger.Info("Property deleted", zap.String("id", id.String()))
	return nil
}

func (s *service) CreateInquiry(ctx context.Context, req CreateInquiryRequest) (*Inquiry, error) {
	inquiry := &Inquiry{
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:       req.Phone,
		Message:     req.Message,
		InquiryType: strings.TrimSpace(req.InquiryType),
	}
	if inquiry.InquiryType == "" {
		inquiry.InquiryType = "general"
	}
	raw := req.PropertyID
	if raw == nil || strings.TrimSpace(*raw) == "" {
		raw = req.PropertyIDSnake
	}
	if raw != nil && strings.TrimSpace(*raw) != "" {
		id, err := uuid.Parse(strings.TrimSpace(*raw))
		if err != nil {
			return nil, common.NewValidationAPIError("Property ID must be a valid UUID.", map[string]string{"propertyId": *raw})
		}
		inquiry.PropertyID = &id
	}

	if err := s.repo.CreateInquiry(ctx, inquiry); err != nil {
		s.logger.Error("Failed to create inquiry", zap.Error(err))
		return nil, common.StoreError(err, "Failed to submit inquiry.")
	}
	s.logger.Info("Inquiry created", zap.String("id", inquiry.ID.String()), zap.String("type", inquiry.InquiryType))
	return inquiry, nil
}

func validationError(err error) error {
	var fe *normalize.FieldError
	if errors.As(err, &fe) {
		return common.NewValidationAPIError(fe.Message, map[string]interface{}{
			"field":    fe.Field,
			"received": fe.Received,
		})
	}
	return common.ErrBadRequest.WithCause(err)
}

func (s *service) logWarnings(fields *Fields) {
	for _, w := range fields.Warnings {
		s.logger.Warn("Property input warning", zap.String("warning", w))
	}
}

// checkUserRefs rejects an ownerId or agentId that names no registered user.
func (s *service) checkUserRefs(ctx context.Context, fields *Fields) error {
	if s.users == nil {
		return nil
	}
	refs := []struct {
		key string
		id  *uuid.UUID
	}{
		{"ownerId", fields.OwnerID},
		{"agentId", fields.AgentID},
	}
	for _, ref := range refs {
		if ref.id == nil {
			continue
		}
		_, err := s.users.FindByID(ctx, *ref.id)
		if err == nil {
			continue
		}
		if apiErr, ok := common.IsAPIError(err); ok && apiErr.StatusCode == http.StatusNotFound {
			return common.NewValidationAPIError(
				fmt.Sprintf("%s does not match a registered user.", ref.key),
				map[string]interface{}{"field": ref.key, "received": ref.id.String()},
			)
		}
		return common.StoreError(err, "Failed to verify "+ref.key+".")
	}
	return nil
}

// linkOwner attaches a registered user as owner when only an email was given.
// A lookup failure is not fatal; the denormalized owner columns still hold the data.
func (s *service) linkOwner(ctx context.Context, fields *Fields) {
	if fields.OwnerID != nil || fields.OwnerEmail == nil || s.users == nil {
		return
	}
	u, err := s.users.FindByEmail(ctx, *fields.OwnerEmail)
	if err != nil {
		if _, ok := common.IsAPIError(err); !ok {
			s.logger.Warn("Owner lookup failed", zap.Error(err))
		}
		return
	}
	fields.OwnerID = &u.ID
	if fields.OwnerName == nil && u.FullName() != "" {
		name := u.FullName()
		fields.OwnerName = &name
	}
}

// namePhotos gives unnamed photos a name derived from the address or title.
func namePhotos(fields *Fields) {
	if fields.Photos == nil {
		return
	}
	base := "property"
	for _, candidate := range []*string{fields.Address, fields.Title} {
		if candidate != nil {
			if s := slug.Make(*candidate); s != "" {
				base = s
				break
			}
		}
	}
	photos := *fields.Photos
	for i := range photos {
		if photos[i].Name == nil || *photos[i].Name == "" {
			name := fmt.Sprintf("%s-photo-%d", base, i+1)
			photos[i].Name = &name
		}
	}
}
