package property

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/common"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/platform/database"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/review"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines the interface for property data operations.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Property, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Property, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]Property, error)
	ListReviews(ctx context.Context, id uuid.UUID) ([]review.Review, error)
	Create(ctx context.Context, fields *Fields) (*Property, error)
	Update(ctx context.Context, id uuid.UUID, fields *Fields) (*Property, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CreateInquiry(ctx context.Context, inquiry *Inquiry) error
}

type gormRepository struct {
	pool *database.Pool
}

// NewGORMRepository creates a new GORM property repository.
func NewGORMRepository(pool *database.Pool) Repository {
	return &gormRepository{pool: pool}
}

// preloader attaches owner/agent rows and the child collections.
func preloader(query *gorm.DB) *gorm.DB {
	return query.Preload("Owner").
		Preload("Agent").
		Preload("Photos", func(db *gorm.DB) *gorm.DB { return db.Order("display_order ASC") }).
		Preload("Features").
		Preload("Amenities")
}

func (f ListFilter) apply(q *gorm.DB) *gorm.DB {
	if f.PropertyType != "" {
		q = q.Where("properties.property_type = ?", f.PropertyType)
	}
	if f.ListingType != "" {
		q = q.Where("properties.listing_type = ?", strings.ToLower(f.ListingType))
	}
	if f.Status != "" {
		q = q.Where("properties.status = ?", f.Status)
	}
	if f.MinPrice != nil {
		q = q.Where("properties.price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("properties.price <= ?", *f.MaxPrice)
	}
	if f.MinBedrooms != nil {
		q = q.Where("properties.bedrooms >= ?", *f.MinBedrooms)
	}
	if f.MinBathrooms != nil {
		q = q.Where("properties.bathrooms >= ?", *f.MinBathrooms)
	}
	if city := strings.TrimSpace(f.City); city != "" {
		q = q.Where("LOWER(properties.city) LIKE ?", "%"+strings.ToLower(city)+"%")
	}
	return q
}

// List runs under the pool's bounded retry policy; callers may degrade on error.
func (r *gormRepository) List(ctx context.Context, filter ListFilter) ([]Property, error) {
	var properties []Property
	err := r.pool.ConnectWithRetry(ctx, func(conn *gorm.DB) error {
		query := filter.apply(preloader(conn.Model(&Property{})))
		return query.Order("properties.created_at DESC").Find(&properties).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

// FindByID retrieves one property with all relations, reviews included.
func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Property, error) {
	return loadProperty(r.pool.Query(ctx), id, true)
}

func loadProperty(db *gorm.DB, id uuid.UUID, withReviews bool) (*Property, error) {
	query := preloader(db)
	if withReviews {
		query = query.Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") })
	}
	var p Property
	if err := query.First(&p, "properties.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithMessage("Property not found.")
		}
		return nil, fmt.Errorf("failed to load property %s: %w", id, err)
	}
	return &p, nil
}

// ListByOwner matches the linked user's email or the denormalized owner_email.
func (r *gormRepository) ListByOwner(ctx context.Context, ownerEmail string) ([]Property, error) {
	email := strings.ToLower(strings.TrimSpace(ownerEmail))
	db := r.pool.Query(ctx)
	ownerIDs := db.Session(&gorm.Session{NewDB: true}).Model(&user.User{}).Select("id").Where("LOWER(email) = ?", email)

	var properties []Property
	err := preloader(db.Model(&Property{})).
		Where("LOWER(properties.owner_email) = ? OR properties.owner_id IN (?)", email, ownerIDs).
		Order("properties.created_at DESC").
		Find(&properties).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list properties for owner: %w", err)
	}
	return properties, nil
}

// ListReviews returns a property's reviews, newest first.
func (r *gormRepository) ListReviews(ctx context.Context, id uuid.UUID) ([]review.Review, error) {
	var reviews []review.Review
	err := r.pool.Query(ctx).Where("property_id = ?", id).Order("created_at DESC").Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews for property %s: %w", id, err)
	}
	return reviews, nil
}

// Create inserts the property row and every declared child row in one
// transaction. Nothing is persisted unless all of them succeed.
func (r *gormRepository) Create(ctx context.Context, fields *Fields) (*Property, error) {
	var created *Property
	err := r.pool.Transaction(ctx, func(tx *gorm.DB) error {
		p := fields.newProperty()
		if err := tx.Omit(clause.Associations).Create(p).Error; err != nil {
			return fmt.Errorf("failed to insert property: %w", err)
		}
		if err := writeChildren(tx, p.ID, fields, false); err != nil {
			return err
		}

		loaded, err := loadProperty(tx, p.ID, false)
		if err != nil {
			return err
		}
		created = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update patches only the supplied columns and replaces each child collection
// that the request carried. updated_at is always stamped.
func (r *gormRepository) Update(ctx context.Context, id uuid.UUID, fields *Fields) (*Property, error) {
	var updated *Property
	err := r.pool.Transaction(ctx, func(tx *gorm.DB) error {
		if err := ensureExists(tx, id); err != nil {
			return err
		}

		columns := fields.columns()
		columns["updated_at"] = time.Now().UTC()
		if err := tx.Model(&Property{}).Where("id = ?", id).Updates(columns).Error; err != nil {
			return fmt.Errorf("failed to update property: %w", err)
		}
		if err := writeChildren(tx, id, fields, true); err != nil {
			return err
		}

		loaded, err := loadProperty(tx, id, false)
		if err != nil {
			return err
		}
		updated = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a property and, first, everything that references it.
func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.pool.Transaction(ctx, func(tx *gorm.DB) error {
		if err := ensureExists(tx, id); err != nil {
			return err
		}

		dependents := []struct {
			name  string
			model interface{}
		}{
			{"features", &Feature{}},
			{"amenities", &Amenity{}},
			{"photos", &Photo{}},
			{"inquiries", &Inquiry{}},
			{"reviews", &review.Review{}},
		}
		for _, dep := range dependents {
			if err := tx.Where("property_id = ?", id).Delete(dep.model).Error; err != nil {
				return fmt.Errorf("failed to delete %s: %w", dep.name, err)
			}
		}

		result := tx.Where("id = ?", id).Delete(&Property{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete property: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return common.ErrNotFound.WithMessage("Property not found.")
		}
		return nil
	})
}

// CreateInquiry is a single insert; no transaction is needed.
func (r *gormRepository) CreateInquiry(ctx context.Context, inquiry *Inquiry) error {
	if err := r.pool.Query(ctx).Create(inquiry).Error; err != nil {
		return fmt.Errorf("failed to create inquiry: %w", err)
	}
	return nil
}

func ensureExists(tx *gorm.DB, id uuid.UUID) error {
	var count int64
	if err := tx.Model(&Property{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up property: %w", err)
	}
	if count == 0 {
		return common.ErrNotFound.WithMessage("Property not found.")
	}
	return nil
}

// writeChildren inserts features, amenities and photos, in that order. With
// replace set, each collection present in fields first has its rows removed.
func writeChildren(tx *gorm.DB, propertyID uuid.UUID, fields *Fields, replace bool) error {
	if fields.Features != nil {
		if replace {
			if err := tx.Where("property_id = ?", propertyID).Delete(&Feature{}).Error; err != nil {
				return fmt.Errorf("failed to clear features: %w", err)
			}
		}
		for _, name := range *fields.Features {
			if err := tx.Create(&Feature{PropertyID: propertyID, FeatureName: name}).Error; err != nil {
				return fmt.Errorf("failed to insert feature %q: %w", name, err)
			}
		}
	}

	if fields.Amenities != nil {
		if replace {
			if err := tx.Where("property_id = ?", propertyID).Delete(&Amenity{}).Error; err != nil {
				return fmt.Errorf("failed to clear amenities: %w", err)
			}
		}
		for _, name := range *fields.Amenities {
			if err := tx.Create(&Amenity{PropertyID: propertyID, AmenityName: name}).Error; err != nil {
				return fmt.Errorf("failed to insert amenity %q: %w", name, err)
			}
		}
	}

	if fields.Photos != nil {
		if replace {
			if err := tx.Where("property_id = ?", propertyID).Delete(&Photo{}).Error; err != nil {
				return fmt.Errorf("failed to clear photos: %w", err)
			}
		}
		for i, in := range *fields.Photos {
			size := int64(len(in.URL))
			if size > MaxPhotoBytes {
				return photoTooLarge(i, size)
			}
			if in.Size == nil {
				in.Size = &size
			}
			photo := &Photo{
				PropertyID:   propertyID,
				PhotoURL:     in.URL,
				PhotoName:    in.Name,
				PhotoSize:    in.Size,
				IsPrimary:    i == 0,
				DisplayOrder: i + 1,
			}
			if err := tx.Create(photo).Error; err != nil {
				return fmt.Errorf("failed to insert photo %d: %w", i+1, err)
			}
		}
	}
	return nil
}

func photoTooLarge(index int, size int64) *common.APIError {
	msg := fmt.Sprintf("Photo %d is too large (%.2f MB). Maximum size is %d MB.",
		index+1, float64(size)/(1<<20), MaxPhotoBytes>>20)
	return common.NewValidationAPIError(msg, map[string]interface{}{
		"photo":    index + 1,
		"size":     size,
		"maxBytes": MaxPhotoBytes,
	})
}
