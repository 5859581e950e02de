package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/common"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/platform/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for user data operations.
type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM user repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// Create inserts a new user record; emails are stored lowercased.
func (r *gormRepository) Create(ctx context.Context, user *User) error {
	user.Email = normalizeEmail(user.Email)
	user.Role = strings.ToLower(strings.TrimSpace(user.Role))
	if user.Role == "" {
		user.Role = RoleOwner
	}
	if !ValidRole(user.Role) {
		return common.NewValidationAPIError("Unknown user role.", map[string]string{
			"role": fmt.Sprintf("%q is not one of owner, agent, admin.", user.Role),
		})
	}
	if user.Email == "" {
		return common.NewValidationAPIError("Email is required.", map[string]string{"email": "required"})
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if database.Classify(err) == database.KindDuplicate {
			return common.ErrConflict.WithMessage("User with this email already exists.").WithCause(err)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByEmail retrieves a user by email, case-insensitively.
func (r *gormRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).Where("LOWER(email) = ?", normalizeEmail(email)).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithMessage("User not found with this email.")
		}
		return nil, err
	}
	return &u, nil
}

// FindByID retrieves a user by id.
func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithMessage("User not found.")
		}
		return nil, err
	}
	return &u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
