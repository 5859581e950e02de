package property

import (
	"fmt"
	"strings"

	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/normalize"

	"github.com/google/uuid"
	"github.com/spf13/cast"
)

var (
	fieldTitle        = normalize.Field{Label: "Title", Keys: []string{"title"}, MaxLen: 255}
	fieldDescription  = normalize.Field{Label: "Description", Keys: []string{"description"}}
	fieldAddress      = normalize.Field{Label: "Address", Keys: []string{"address"}, MaxLen: 255}
	fieldCity         = normalize.Field{Label: "City", Keys: []string{"city"}, MaxLen: 100}
	fieldState        = normalize.Field{Label: "State", Keys: []string{"state"}, MaxLen: 50}
	fieldZipCode      = normalize.Field{Label: "Zip code", Keys: []string{"zipCode", "zip_code"}, MaxLen: 20}
	fieldPropertyType = normalize.Field{Label: "Property type", Keys: []string{"propertyType", "property_type"}, MaxLen: 100}
	fieldListingType  = normalize.Field{Label: "Listing type", Keys: []string{"listingType", "listing_type"}, Lower: true}
	fieldStatus       = normalize.Field{Label: "Status", Keys: []string{"status"}, MaxLen: 50}
	fieldBedrooms     = normalize.Field{Label: "Bedrooms", Keys: []string{"bedrooms"}, Integer: true, Positive: true}
	fieldBathrooms    = normalize.Field{Label: "Bathrooms", Keys: []string{"bathrooms"}, Positive: true}
	fieldSquareFeet   = normalize.Field{Label: "Square feet", Keys: []string{"squareFeet", "square_feet", "sqft"}, Integer: true, Positive: true}
	fieldPrice        = normalize.Field{Label: "Price", Keys: []string{"price"}, Positive: true}
	fieldYearBuilt    = normalize.Field{Label: "Year built", Keys: []string{"yearBuilt", "year_built"}, Integer: true, Positive: true}
	fieldLotSize      = normalize.Field{Label: "Lot size", Keys: []string{"lotSize", "lot_size"}}
	fieldOwnerID      = normalize.Field{Label: "Owner id", Keys: []string{"ownerId", "owner_id"}}
	fieldAgentID      = normalize.Field{Label: "Agent id", Keys: []string{"agentId", "agent_id"}}
	fieldOwnerName    = normalize.Field{Label: "Owner name", Keys: []string{"ownerName", "owner_name"}, MaxLen: 255}
	fieldOwnerEmail   = normalize.Field{Label: "Owner email", Keys: []string{"ownerEmail", "owner_email"}, MaxLen: 255, Lower: true}
	fieldOwnerPhone   = normalize.Field{Label: "Owner phone", Keys: []string{"ownerPhone", "owner_phone"}, MaxLen: 50}
	fieldFeatures     = normalize.Field{Label: "Features", Keys: []string{"features"}, MaxLen: 255}
	fieldAmenities    = normalize.Field{Label: "Amenities", Keys: []string{"amenities"}, MaxLen: 255}
	fieldPhotos       = normalize.Field{Label: "Photos", Keys: []string{"photos"}}
)

// PhotoInput is one submitted photo, in submission order.
type PhotoInput struct {
	URL  string
	Name *string
	Size *int64
}

// Fields is a normalized create or update body. A nil pointer means the
// request did not touch that column; Clear lists nullable columns the request
// explicitly emptied. Nil child slices leave existing child rows alone.
type Fields struct {
	Title        *string
	Description  *string
	Address      *string
	City         *string
	State        *string
	ZipCode      *string
	PropertyType *string
	ListingType  *string
	Status       *string
	Bedrooms     *int
	Bathrooms    *float64
	SquareFeet   *int
	Price        *float64
	YearBuilt    *int
	LotSize      *float64
	Coordinates  *normalize.Coordinate
	OwnerID      *uuid.UUID
	AgentID      *uuid.UUID
	OwnerName    *string
	OwnerEmail   *string
	OwnerPhone   *string

	Clear []string

	Features  *[]string
	Amenities *[]string
	Photos    *[]PhotoInput

	// Warnings are non-fatal problems worth logging, such as a half coordinate pair.
	Warnings []string
}

// presence decides what an absent value means for a column.
type presence int

const (
	required  presence = iota // must hold a value on create; cannot be emptied on update
	optional                  // nullable; an explicit null on update clears it
	defaulted                 // not null with a default; an explicit null on update is ignored
)

// ParseCreate normalizes a create body. Required fields are enforced.
func ParseCreate(b normalize.Body) (*Fields, error) {
	return parse(b, true)
}

// ParseUpdate normalizes an update body. Only keys present in b are touched.
func ParseUpdate(b normalize.Body) (*Fields, error) {
	return parse(b, false)
}

type parser struct {
	b      normalize.Body
	create bool
	f      *Fields
	err    error
}

func parse(b normalize.Body, create bool) (*Fields, error) {
	p := &parser{b: b, create: create, f: &Fields{}}
	f := p.f

	f.ZipCode = p.str(fieldZipCode, "zip_code", required)
	f.PropertyType = p.str(fieldPropertyType, "property_type", required)
	f.ListingType = p.choice(fieldListingType, "listing_type", ListingTypes)
	f.Bedrooms = p.integer(fieldBedrooms, "bedrooms", required)
	f.Bathrooms = p.num(fieldBathrooms, "bathrooms", required)
	f.SquareFeet = p.integer(fieldSquareFeet, "square_feet", required)
	f.Price = p.num(fieldPrice, "price", required)

	f.Title = p.str(fieldTitle, "title", optional)
	f.Description = p.str(fieldDescription, "description", optional)
	f.Address = p.str(fieldAddress, "address", optional)
	f.City = p.str(fieldCity, "city", optional)
	f.State = p.str(fieldState, "state", optional)
	f.Status = p.str(fieldStatus, "status", defaulted)
	f.YearBuilt = p.integer(fieldYearBuilt, "year_built", optional)
	f.LotSize = p.num(fieldLotSize, "lot_size", optional)
	f.OwnerID = p.id(fieldOwnerID, "owner_id")
	f.AgentID = p.id(fieldAgentID, "agent_id")
	f.OwnerName = p.str(fieldOwnerName, "owner_name", optional)
	f.OwnerEmail = p.str(fieldOwnerEmail, "owner_email", optional)
	f.OwnerPhone = p.str(fieldOwnerPhone, "owner_phone", optional)
	p.coordinates()

	f.Features = p.list(fieldFeatures)
	f.Amenities = p.list(fieldAmenities)
	p.photos()

	if p.err != nil {
		return nil, p.err
	}
	if create && f.Status == nil {
		status := StatusActive
		f.Status = &status
	}
	return f, nil
}

// touched reports whether the field should be processed at all.
func (p *parser) touched(field normalize.Field) bool {
	return p.err == nil && (p.create || p.b.Has(field.Keys...))
}

// absent handles a field that was sent (or required) without a usable value.
func (p *parser) absent(field normalize.Field, column string, mode presence) {
	switch mode {
	case required:
		p.err = field.Missing(p.b)
	case optional:
		if !p.create {
			p.f.Clear = append(p.f.Clear, column)
		}
	}
}

func (p *parser) str(field normalize.Field, column string, mode presence) *string {
	if !p.touched(field) {
		return nil
	}
	v, ok, err := normalize.String(p.b, field)
	if err != nil {
		p.err = err
		return nil
	}
	if !ok {
		p.absent(field, column, mode)
		return nil
	}
	return &v
}

func (p *parser) choice(field normalize.Field, column string, allowed []string) *string {
	if !p.touched(field) {
		return nil
	}
	v, err := normalize.RequiredChoice(p.b, field, allowed)
	if err != nil {
		p.err = err
		return nil
	}
	return &v
}

func (p *parser) num(field normalize.Field, column string, mode presence) *float64 {
	if !p.touched(field) {
		return nil
	}
	v, ok, err := normalize.Number(p.b, field)
	if err != nil {
		p.err = err
		return nil
	}
	if !ok {
		if mode == required {
			// numeric fields report a missing value the same way as an invalid one
			_, p.err = normalize.RequiredNumber(p.b, field)
			return nil
		}
		p.absent(field, column, mode)
		return nil
	}
	return &v
}

func (p *parser) integer(field normalize.Field, column string, mode presence) *int {
	v := p.num(field, column, mode)
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}

func (p *parser) id(field normalize.Field, column string) *uuid.UUID {
	s := p.str(field, column, optional)
	if s == nil {
		return nil
	}
	parsed, err := uuid.Parse(*s)
	if err != nil {
		p.err = &normalize.FieldError{
			Field:    field.Keys[0],
			Message:  fmt.Sprintf("%s must be a valid UUID. Received %q", field.Label, *s),
			Received: p.b.Received(field.Keys...),
		}
		return nil
	}
	return &parsed
}

func (p *parser) coordinates() {
	keys := append(append([]string{}, normalize.LatitudeField.Keys...), normalize.LongitudeField.Keys...)
	if p.err != nil || !p.b.Has(keys...) {
		return
	}
	coord, warning := normalize.Coordinates(p.b)
	if warning != "" {
		p.f.Warnings = append(p.f.Warnings, warning)
	}
	if coord != nil {
		p.f.Coordinates = coord
		return
	}
	// An update that explicitly nulls both halves clears the stored pair.
	if !p.create && warning == "" {
		p.f.Clear = append(p.f.Clear, "latitude", "longitude")
	}
}

func (p *parser) list(field normalize.Field) *[]string {
	if p.err != nil {
		return nil
	}
	values, ok, err := normalize.StringList(p.b, field)
	if err != nil {
		p.err = err
		return nil
	}
	if !ok {
		return nil
	}
	return &values
}

func (p *parser) photos() {
	if p.err != nil || !p.b.Has(fieldPhotos.Keys...) {
		return
	}
	raw, found := p.b.Lookup(fieldPhotos.Keys...)
	photos := []PhotoInput{}
	p.f.Photos = &photos
	if !found {
		return
	}

	items, ok := raw.([]any)
	if !ok {
		p.err = &normalize.FieldError{Field: "photos", Message: "Photos must be an array", Received: p.b.Received("photos")}
		return
	}
	for i, item := range items {
		if normalize.IsAbsent(item) {
			continue
		}
		in, err := photoInput(i, item)
		if err != nil {
			p.err = err
			return
		}
		photos = append(photos, in)
	}
	p.f.Photos = &photos
}

func photoInput(index int, item any) (PhotoInput, error) {
	switch t := item.(type) {
	case string:
		return PhotoInput{URL: strings.TrimSpace(t)}, nil
	case map[string]any:
		obj := normalize.Body(t)
		url, ok := obj.Lookup("url", "photo_url", "photoUrl", "data", "src")
		if !ok {
			return PhotoInput{}, &normalize.FieldError{
				Field:    "photos",
				Message:  fmt.Sprintf("Photo %d has no url or data", index+1),
				Received: map[string]any{"photo": describeKeys(obj)},
			}
		}
		in := PhotoInput{URL: strings.TrimSpace(cast.ToString(url))}
		if name, ok := obj.Lookup("name", "photo_name", "photoName"); ok {
			s := strings.TrimSpace(cast.ToString(name))
			in.Name = &s
		}
		if size, ok := obj.Lookup("size", "photo_size", "photoSize"); ok {
			if n, err := cast.ToInt64E(size); err == nil && n >= 0 {
				in.Size = &n
			}
		}
		return in, nil
	default:
		return PhotoInput{}, &normalize.FieldError{
			Field:   "photos",
			Message: fmt.Sprintf("Photo %d must be a URL string or an object with a url", index+1),
		}
	}
}

func describeKeys(obj normalize.Body) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	return keys
}

// columns renders the scalar part of f as an update map keyed by column name.
func (f *Fields) columns() map[string]interface{} {
	cols := map[string]interface{}{}
	setString := func(col string, v *string) {
		if v != nil {
			cols[col] = *v
		}
	}
	setString("title", f.Title)
	setString("description", f.Description)
	setString("address", f.Address)
	setString("city", f.City)
	setString("state", f.State)
	setString("zip_code", f.ZipCode)
	setString("property_type", f.PropertyType)
	setString("listing_type", f.ListingType)
	setString("status", f.Status)
	setString("owner_name", f.OwnerName)
	setString("owner_email", f.OwnerEmail)
	setString("owner_phone", f.OwnerPhone)
	if f.Bedrooms != nil {
		cols["bedrooms"] = *f.Bedrooms
	}
	if f.Bathrooms != nil {
		cols["bathrooms"] = *f.Bathrooms
	}
	if f.SquareFeet != nil {
		cols["square_feet"] = *f.SquareFeet
	}
	if f.Price != nil {
		cols["price"] = *f.Price
	}
	if f.YearBuilt != nil {
		cols["year_built"] = *f.YearBuilt
	}
	if f.LotSize != nil {
		cols["lot_size"] = *f.LotSize
	}
	if f.OwnerID != nil {
		cols["owner_id"] = *f.OwnerID
	}
	if f.AgentID != nil {
		cols["agent_id"] = *f.AgentID
	}
	if f.Coordinates != nil {
		cols["latitude"] = f.Coordinates.Latitude
		cols["longitude"] = f.Coordinates.Longitude
	}
	for _, col := range f.Clear {
		cols[col] = nil
	}
	return cols
}

// newProperty builds the row inserted on create.
func (f *Fields) newProperty() *Property {
	p := &Property{
		Title:       f.Title,
		Description: f.Description,
		Address:     f.Address,
		City:        f.City,
		State:       f.State,
		YearBuilt:   f.YearBuilt,
		LotSize:     f.LotSize,
		OwnerID:     f.OwnerID,
		AgentID:     f.AgentID,
		OwnerName:   f.OwnerName,
		OwnerEmail:  f.OwnerEmail,
		OwnerPhone:  f.OwnerPhone,
	}
	if f.ZipCode != nil {
		p.ZipCode = *f.ZipCode
	}
	if f.PropertyType != nil {
		p.PropertyType = *f.PropertyType
	}
	if f.ListingType != nil {
		p.ListingType = *f.ListingType
	}
	if f.Status != nil {
		p.Status = *f.Status
	}
	if f.Bedrooms != nil {
		p.Bedrooms = *f.Bedrooms
	}
	if f.Bathrooms != nil {
		p.Bathrooms = *f.Bathrooms
	}
	if f.SquareFeet != nil {
		p.SquareFeet = *f.SquareFeet
	}
	if f.Price != nil {
		p.Price = *f.Price
	}
	if f.Coordinates != nil {
		lat, lng := f.Coordinates.Latitude, f.Coordinates.Longitude
		p.Latitude, p.Longitude = &lat, &lng
	}
	return p
}
