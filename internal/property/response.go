package property

import (
	"time"

	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/review"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/user"

	"github.com/google/uuid"
)

// PhotoResponse is one gallery entry.
type PhotoResponse struct {
	ID           uuid.UUID `json:"id"`
	PhotoURL     string    `json:"photo_url"`
	URL          string    `json:"url"`
	PhotoName    *string   `json:"photo_name,omitempty"`
	PhotoSize    *int64    `json:"photo_size,omitempty"`
	IsPrimary    bool      `json:"is_primary"`
	DisplayOrder int       `json:"display_order"`
}

// Response is the flattened property shape the frontend reads. Several
// columns are emitted under both their snake_case and camelCase names.
type Response struct {
	ID           uuid.UUID `json:"id"`
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	Address      *string   `json:"address"`
	City         *string   `json:"city"`
	State        *string   `json:"state"`
	ZipCode      string    `json:"zip_code"`
	ZipCodeC     string    `json:"zipCode"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	PropertyType string    `json:"property_type"`
	TypeC        string    `json:"propertyType"`
	ListingType  string    `json:"listing_type"`
	ListingTypeC string    `json:"listingType"`
	Status       string    `json:"status"`
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    float64   `json:"bathrooms"`
	SquareFeet   int       `json:"square_feet"`
	SquareFeetC  int       `json:"squareFeet"`
	YearBuilt    *int      `json:"year_built"`
	LotSize      *float64  `json:"lot_size"`
	Price        float64   `json:"price"`

	OwnerID    *uuid.UUID `json:"owner_id"`
	AgentID    *uuid.UUID `json:"agent_id"`
	OwnerName  *string    `json:"owner_name"`
	OwnerEmail *string    `json:"owner_email"`
	OwnerPhone *string    `json:"owner_phone"`
	AgentName  *string    `json:"agent_name"`
	AgentEmail *string    `json:"agent_email"`
	AgentPhone *string    `json:"agent_phone"`

	Photos    []PhotoResponse   `json:"photos"`
	Images    []string          `json:"images"`
	Features  []string          `json:"features"`
	Amenities []string          `json:"amenities"`
	Reviews   []review.Response `json:"reviews,omitempty"`

	CreatedAt  time.Time `json:"created_at"`
	CreatedAtC time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToResponse flattens p. Owner contact fields fall back from the linked user
// to the denormalized columns.
func ToResponse(p *Property) Response {
	resp := Response{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Address:      p.Address,
		City:         p.City,
		State:        p.State,
		ZipCode:      p.ZipCode,
		ZipCodeC:     p.ZipCode,
		Latitude:     p.Latitude,
		Longitude:    p.Longitude,
		PropertyType: p.PropertyType,
		TypeC:        p.PropertyType,
		ListingType:  p.ListingType,
		ListingTypeC: p.ListingType,
		Status:       p.Status,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		SquareFeet:   p.SquareFeet,
		SquareFeetC:  p.SquareFeet,
		YearBuilt:    p.YearBuilt,
		LotSize:      p.LotSize,
		Price:        p.Price,
		OwnerID:      p.OwnerID,
		AgentID:      p.AgentID,
		OwnerName:    p.OwnerName,
		OwnerEmail:   p.OwnerEmail,
		OwnerPhone:   p.OwnerPhone,
		Photos:       make([]PhotoResponse, len(p.Photos)),
		Images:       make([]string, len(p.Photos)),
		Features:     make([]string, len(p.Features)),
		Amenities:    make([]string, len(p.Amenities)),
		CreatedAt:    p.CreatedAt,
		CreatedAtC:   p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}

	if p.Owner != nil {
		resp.OwnerName = firstSet(contactName(p.Owner), p.OwnerName)
		resp.OwnerEmail = firstSet(&p.Owner.Email, p.OwnerEmail)
		resp.OwnerPhone = firstSet(p.Owner.Phone, p.OwnerPhone)
	}
	if p.Agent != nil {
		resp.AgentName = contactName(p.Agent)
		resp.AgentEmail = &p.Agent.Email
		resp.AgentPhone = p.Agent.Phone
	}

	for i, ph := range p.Photos {
		resp.Photos[i] = PhotoResponse{
			ID:           ph.ID,
			PhotoURL:     ph.PhotoURL,
			URL:          ph.PhotoURL,
			PhotoName:    ph.PhotoName,
			PhotoSize:    ph.PhotoSize,
			IsPrimary:    ph.IsPrimary,
			DisplayOrder: ph.DisplayOrder,
		}
		resp.Images[i] = ph.PhotoURL
	}
	for i, f := range p.Features {
		resp.Features[i] = f.FeatureName
	}
	for i, a := range p.Amenities {
		resp.Amenities[i] = a.AmenityName
	}
	if p.Reviews != nil {
		resp.Reviews = review.ToResponses(p.Reviews)
	}
	return resp
}

// ToResponses converts a slice of properties.
func ToResponses(properties []Property) []Response {
	out := make([]Response, len(properties))
	for i := range properties {
		out[i] = ToResponse(&properties[i])
	}
	return out
}

func contactName(u *user.User) *string {
	name := u.FullName()
	if name == "" {
		return nil
	}
	return &name
}

func firstSet(values ...*string) *string {
	for _, v := range values {
		if v != nil && *v != "" {
			return v
		}
	}
	return nil
}
