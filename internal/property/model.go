package property

import (
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/common"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/review"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/user"

	"github.com/google/uuid"
)

// Listing types select which marketplace page a property appears on.
const (
	ListingTypeRent = "rent"
	ListingTypeSell = "sell"
	ListingTypeBuy  = "buy"
)

// ListingTypes is the closed set accepted for listing_type.
var ListingTypes = []string{ListingTypeRent, ListingTypeSell, ListingTypeBuy}

// StatusActive is the default listing status.
const StatusActive = "active"

// MaxPhotoBytes caps the encoded size of a single photo (URL or base64 data).
const MaxPhotoBytes = 5 << 20

// Property is one listing.
type Property struct {
	common.BaseModel
	Title        *string  `gorm:"type:varchar(255)"`
	Description  *string  `gorm:"type:text"`
	Address      *string  `gorm:"type:varchar(255)"`
	City         *string  `gorm:"type:varchar(100);index"`
	State        *string  `gorm:"type:varchar(50)"`
	ZipCode      string   `gorm:"type:varchar(20);not null"`
	Latitude     *float64 `gorm:"type:decimal(10,8)"`
	Longitude    *float64 `gorm:"type:decimal(11,8)"`
	PropertyType string   `gorm:"type:varchar(100);not null;index"`
	ListingType  string   `gorm:"type:varchar(20);not null;index"`
	Status       string   `gorm:"type:varchar(50);not null;default:'active';index"`
	Bedrooms     int      `gorm:"not null"`
	Bathrooms    float64  `gorm:"type:decimal(4,1);not null"`
	SquareFeet   int      `gorm:"not null"`
	YearBuilt    *int
	LotSize      *float64 `gorm:"type:decimal(12,2)"`
	Price        float64  `gorm:"type:decimal(14,2);not null;index"`

	OwnerID    *uuid.UUID `gorm:"type:uuid;index"`
	Owner      *user.User `gorm:"foreignKey:OwnerID"`
	AgentID    *uuid.UUID `gorm:"type:uuid;index"`
	Agent      *user.User `gorm:"foreignKey:AgentID"`
	OwnerName  *string    `gorm:"type:varchar(255)"`
	OwnerEmail *string    `gorm:"type:varchar(255);index"`
	OwnerPhone *string    `gorm:"type:varchar(50)"`

	Photos    []Photo         `gorm:"foreignKey:PropertyID"`
	Features  []Feature       `gorm:"foreignKey:PropertyID"`
	Amenities []Amenity       `gorm:"foreignKey:PropertyID"`
	Reviews   []review.Review `gorm:"foreignKey:PropertyID"`
}

// TableName specifies the table name for the Property model.
func (Property) TableName() string { return "properties" }

// Photo is one gallery image. PhotoURL holds an http(s) URL or base64 data.
type Photo struct {
	common.BaseModel
	PropertyID   uuid.UUID `gorm:"type:uuid;not null;index"`
	PhotoURL     string    `gorm:"column:photo_url;type:text;not null"`
	PhotoName    *string   `gorm:"type:varchar(255)"`
	PhotoSize    *int64
	IsPrimary    bool `gorm:"not null;default:false"`
	DisplayOrder int  `gorm:"not null"`
}

func (Photo) TableName() string { return "property_photos" }

// Feature is a named feature of a property ("Hardwood floors").
type Feature struct {
	common.BaseModel
	PropertyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	FeatureName string    `gorm:"type:varchar(255);not null"`
}

func (Feature) TableName() string { return "property_features" }

// Amenity is a named amenity of a property ("Pool").
type Amenity struct {
	common.BaseModel
	PropertyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	AmenityName string    `gorm:"type:varchar(255);not null"`
}

func (Amenity) TableName() string { return "property_amenities" }

// Inquiry is a contact request, optionally about one property.
type Inquiry struct {
	common.BaseModel
	PropertyID  *uuid.UUID `gorm:"type:uuid;index"`
	Name        string     `gorm:"type:varchar(255);not null"`
	Email       string     `gorm:"type:varchar(255);not null"`
	Phone       *string    `gorm:"type:varchar(50)"`
	Message     *string    `gorm:"type:text"`
	InquiryType string     `gorm:"type:varchar(50);not null;default:'general'"`
}

func (Inquiry) TableName() string { return "inquiries" }

// ListFilter narrows the public listing query. Zero values mean "no filter".
type ListFilter struct {
	PropertyType string
	ListingType  string
	Status       string
	City         string
	MinPrice     *float64
	MaxPrice     *float64
	MinBedrooms  *int
	MinBathrooms *float64
}

// CreateInquiryRequest is the body of POST /api/inquiries.
type CreateInquiryRequest struct {
	PropertyID      *string `json:"propertyId" binding:"omitempty,uuid"`
	PropertyIDSnake *string `json:"property_id" binding:"omitempty,uuid"`
	Name            string  `json:"name" binding:"required,max=255"`
	Email           string  `json:"email" binding:"required,email,max=255"`
	Phone           *string `json:"phone" binding:"omitempty,max=50"`
	Message         *string `json:"message" binding:"omitempty,max=5000"`
	InquiryType     string  `json:"inquiryType" binding:"omitempty,max=50"`
}
