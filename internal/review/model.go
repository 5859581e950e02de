package review

import (
	"time"

	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/common"

	"github.com/google/uuid"
)

// Review is a client testimonial, optionally attached to one property.
type Review struct {
	common.BaseModel
	PropertyID    *uuid.UUID `gorm:"type:uuid;index" json:"property_id,omitempty"`
	ReviewerName  string     `gorm:"type:varchar(255);not null" json:"reviewer_name"`
	ReviewerEmail *string    `gorm:"type:varchar(255)" json:"reviewer_email,omitempty"`
	Rating        int        `gorm:"not null;check:rating_range,rating >= 1 AND rating <= 5" json:"rating"`
	Title         *string    `gorm:"type:varchar(255)" json:"title,omitempty"`
	Comment       string     `gorm:"type:text;not null" json:"comment"`
	ServiceType   *string    `gorm:"type:varchar(50)" json:"service_type,omitempty"`
	Location      *string    `gorm:"type:varchar(255)" json:"location,omitempty"`
}

// TableName specifies the table name for the Review model.
func (Review) TableName() string { return "reviews" }

// CreateReviewRequest is the body of POST /api/reviews. Both key spellings
// are accepted for the fields the frontend has sent both ways.
type CreateReviewRequest struct {
	PropertyID        *string `json:"propertyId" binding:"omitempty,uuid"`
	PropertyIDSnake   *string `json:"property_id" binding:"omitempty,uuid"`
	ReviewerName      string  `json:"reviewerName" binding:"omitempty,max=255"`
	ReviewerNameSnake string  `json:"reviewer_name" binding:"omitempty,max=255"`
	ReviewerEmail     *string `json:"reviewerEmail" binding:"omitempty,email,max=255"`
	Rating            int     `json:"rating" binding:"required,min=1,max=5"`
	Title             *string `json:"title" binding:"omitempty,max=255"`
	Comment           string  `json:"comment" binding:"required"`
	ServiceType       *string `json:"serviceType" binding:"omitempty,max=50"`
	ServiceTypeSnake  *string `json:"service_type" binding:"omitempty,max=50"`
	Location          *string `json:"location" binding:"omitempty,max=255"`
}

// UpdateReviewRequest patches a review; nil fields are left alone.
type UpdateReviewRequest struct {
	ReviewerName *string `json:"reviewerName" binding:"omitempty,min=1,max=255"`
	Rating       *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Title        *string `json:"title" binding:"omitempty,max=255"`
	Comment      *string `json:"comment" binding:"omitempty,min=1"`
	ServiceType  *string `json:"serviceType" binding:"omitempty,max=50"`
	Location     *string `json:"location" binding:"omitempty,max=255"`
}

// Response is the wire shape of a review. It mirrors the dual key naming the
// frontend reads.
type Response struct {
	ID           uuid.UUID  `json:"id"`
	PropertyID   *uuid.UUID `json:"property_id,omitempty"`
	PropertyIDC  *uuid.UUID `json:"propertyId,omitempty"`
	ReviewerName string     `json:"reviewer_name"`
	Name         string     `json:"reviewerName"`
	Rating       int        `json:"rating"`
	Title        *string    `json:"title,omitempty"`
	Comment      string     `json:"comment"`
	ServiceType  *string    `json:"service_type,omitempty"`
	Location     *string    `json:"location,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	CreatedAtC   time.Time  `json:"createdAt"`
}

// ToResponse converts a Review model to its wire shape. Reviewer emails are
// never echoed back.
func ToResponse(r *Review) Response {
	return Response{
		ID:           r.ID,
		PropertyID:   r.PropertyID,
		PropertyIDC:  r.PropertyID,
		ReviewerName: r.ReviewerName,
		Name:         r.ReviewerName,
		Rating:       r.Rating,
		Title:        r.Title,
		Comment:      r.Comment,
		ServiceType:  r.ServiceType,
		Location:     r.Location,
		CreatedAt:    r.CreatedAt,
		CreatedAtC:   r.CreatedAt,
	}
}

// ToResponses converts a slice of reviews.
func ToResponses(reviews []Review) []Response {
	out := make([]Response, len(reviews))
	for i := range reviews {
		out[i] = ToResponse(&reviews[i])
	}
	return out
}
