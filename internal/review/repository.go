package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/common"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/platform/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for review data operations.
type Repository interface {
	List(ctx context.Context, propertyID *uuid.UUID) ([]Review, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)
	Create(ctx context.Context, review *Review) error
	Update(ctx context.Context, id uuid.UUID, changes map[string]interface{}) (*Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, propertyID *uuid.UUID) (Stats, error)
}

type gormRepository struct {
	pool *database.Pool
}

// NewGORMRepository creates a new GORM review repository.
func NewGORMRepository(pool *database.Pool) Repository {
	return &gormRepository{pool: pool}
}

func scoped(db *gorm.DB, propertyID *uuid.UUID) *gorm.DB {
	if propertyID != nil {
		return db.Where("property_id = ?", *propertyID)
	}
	return db
}

// List returns reviews newest first, optionally for one property.
func (r *gormRepository) List(ctx context.Context, propertyID *uuid.UUID) ([]Review, error) {
	var reviews []Review
	err := scoped(r.pool.Query(ctx).Model(&Review{}), propertyID).Order("created_at DESC").Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Review, error) {
	var rev Review
	if err := r.pool.Query(ctx).First(&rev, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithMessage("Review not found.")
		}
		return nil, fmt.Errorf("failed to load review %s: %w", id, err)
	}
	return &rev, nil
}

func (r *gormRepository) Create(ctx context.Context, review *Review) error {
	if err := r.pool.Query(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// Update applies changes and returns the stored row.
func (r *gormRepository) Update(ctx context.Context, id uuid.UUID, changes map[string]interface{}) (*Review, error) {
	db := r.pool.Query(ctx)
	if len(changes) > 0 {
		result := db.Model(&Review{}).Where("id = ?", id).Updates(changes)
		if result.Error != nil {
			return nil, fmt.Errorf("failed to update review %s: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, common.ErrNotFound.WithMessage("Review not found.")
		}
	}
	return r.FindByID(ctx, id)
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.pool.Query(ctx).Where("id = ?", id).Delete(&Review{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete review %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithMessage("Review not found.")
	}
	return nil
}

type aggregateRow struct {
	Total     int64
	RatingSum int64
	Five      int64
	Four      int64
	Three     int64
	Two       int64
	One       int64
}

// Stats aggregates in the store. Only the final rounding happens here, with
// the same rule ComputeStats uses.
func (r *gormRepository) Stats(ctx context.Context, propertyID *uuid.UUID) (Stats, error) {
	var row aggregateRow
	err := scoped(r.pool.Query(ctx).Model(&Review{}), propertyID).Select(
		"COUNT(*) AS total, " +
			"COALESCE(SUM(rating), 0) AS rating_sum, " +
			"COALESCE(SUM(CASE WHEN rating = 5 THEN 1 ELSE 0 END), 0) AS five, " +
			"COALESCE(SUM(CASE WHEN rating = 4 THEN 1 ELSE 0 END), 0) AS four, " +
			"COALESCE(SUM(CASE WHEN rating = 3 THEN 1 ELSE 0 END), 0) AS three, " +
			"COALESCE(SUM(CASE WHEN rating = 2 THEN 1 ELSE 0 END), 0) AS two, " +
			"COALESCE(SUM(CASE WHEN rating = 1 THEN 1 ELSE 0 END), 0) AS one",
	).Scan(&row).Error
	if err != nil {
		return Stats{}, fmt.Errorf("failed to compute review stats: %w", err)
	}

	return Stats{
		TotalReviews:     row.Total,
		AverageRating:    average(row.RatingSum, row.Total),
		FiveStarReviews:  row.Five,
		FourStarReviews:  row.Four,
		ThreeStarReviews: row.Three,
		TwoStarReviews:   row.Two,
		OneStarReviews:   row.One,
	}, nil
}
