package property

import (
	"errors"
	"strings"
	"testing"

	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/normalize"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBody() normalize.Body {
	return normalize.Body{
		"zipCode":      "15213",
		"propertyType": "Single Family",
		"listingType":  "sell",
		"bedrooms":     float64(3),
		"bathrooms":    2.5,
		"squareFeet":   float64(1800),
		"price":        float64(325000),
	}
}

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	var fe *normalize.FieldError
	require.True(t, errors.As(err, &fe), "expected a field error, got %v", err)
	return fe.Field
}

func TestParseCreate_Defaults(t *testing.T) {
	f, err := ParseCreate(validBody())
	require.NoError(t, err)

	assert.Equal(t, "15213", *f.ZipCode)
	assert.Equal(t, "sell", *f.ListingType)
	assert.Equal(t, StatusActive, *f.Status)
	assert.Equal(t, 3, *f.Bedrooms)
	assert.Equal(t, 2.5, *f.Bathrooms)
	assert.Nil(t, f.Features)
	assert.Nil(t, f.Photos)
	assert.Empty(t, f.Clear)
}

func TestParseCreate_KeyNameEquivalence(t *testing.T) {
	camel, err := ParseCreate(validBody())
	require.NoError(t, err)

	snake, err := ParseCreate(normalize.Body{
		"zip_code":      "15213",
		"property_type": "Single Family",
		"listing_type":  "sell",
		"bedrooms":      "3",
		"bathrooms":     "2.5",
		"square_feet":   "1800",
		"price":         "325000",
	})
	require.NoError(t, err)
	assert.Equal(t, camel, snake)
}

func TestParseCreate_RejectsEachRequiredField(t *testing.T) {
	required := map[string][]string{
		"zipCode":      {"zipCode", "zip_code"},
		"propertyType": {"propertyType", "property_type"},
		"listingType":  {"listingType", "listing_type"},
		"bedrooms":     {"bedrooms"},
		"bathrooms":    {"bathrooms"},
		"squareFeet":   {"squareFeet", "square_feet", "sqft"},
		"price":        {"price"},
	}
	for field, keys := range required {
		for _, absent := range []any{nil, "", "  ", "null", "undefined"} {
			body := validBody()
			for _, k := range keys {
				delete(body, k)
			}
			for _, k := range keys {
				body[k] = absent
			}
			_, err := ParseCreate(body)
			require.Error(t, err, "%s=%v", field, absent)
			assert.Equal(t, keys[0], fieldOf(t, err))
		}
	}
}

func TestParseCreate_Bounds(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{"zero bedrooms", "bedrooms", float64(0)},
		{"negative bathrooms", "bathrooms", -1.5},
		{"zero square feet", "squareFeet", "0"},
		{"negative price", "price", float64(-10)},
		{"long zip", "zipCode", strings.Repeat("1", 21)},
		{"long property type", "propertyType", strings.Repeat("x", 101)},
		{"unknown listing type", "listingType", "lease"},
		{"non-numeric price", "price", "a lot"},
		{"bedrooms beyond int range", "bedrooms", 1e19},
		{"square feet beyond int range", "squareFeet", 1e30},
		{"square feet string beyond int range", "squareFeet", "1e30"},
		{"year built beyond int range", "yearBuilt", 1e19},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body := validBody()
			body[tc.key] = tc.value
			_, err := ParseCreate(body)
			require.Error(t, err)
			assert.Equal(t, tc.key, fieldOf(t, err))
		})
	}
}

func TestParseCreate_ListingTypeCase(t *testing.T) {
	for _, in := range []string{"RENT", " Sell ", "buy"} {
		body := validBody()
		body["listing_type"] = in
		delete(body, "listingType")
		f, err := ParseCreate(body)
		require.NoError(t, err, in)
		assert.Equal(t, strings.ToLower(strings.TrimSpace(in)), *f.ListingType)
	}

	body := validBody()
	body["listingType"] = "auction"
	_, err := ParseCreate(body)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rent, sell, buy")
}

func TestParseCreate_Children(t *testing.T) {
	body := validBody()
	body["features"] = []any{"Garage", " ", "Deck"}
	body["amenities"] = "Pool, Gym"
	body["photos"] = []any{
		"https://cdn.example.com/a.jpg",
		map[string]any{"photo_url": "data:image/png;base64,AAAA", "name": "Kitchen", "size": float64(4)},
		nil,
	}
	f, err := ParseCreate(body)
	require.NoError(t, err)

	assert.Equal(t, []string{"Garage", "Deck"}, *f.Features)
	assert.Equal(t, []string{"Pool", "Gym"}, *f.Amenities)
	require.Len(t, *f.Photos, 2)
	photos := *f.Photos
	assert.Equal(t, "https://cdn.example.com/a.jpg", photos[0].URL)
	assert.Nil(t, photos[0].Name)
	assert.Equal(t, "Kitchen", *photos[1].Name)
	assert.EqualValues(t, 4, *photos[1].Size)

	body["photos"] = []any{map[string]any{"caption": "no url"}}
	_, err = ParseCreate(body)
	require.Error(t, err)
	assert.Equal(t, "photos", fieldOf(t, err))
}

func TestParseCreate_HalfCoordinatePairWarns(t *testing.T) {
	body := validBody()
	body["latitude"] = 40.44
	f, err := ParseCreate(body)
	require.NoError(t, err)
	assert.Nil(t, f.Coordinates)
	assert.Len(t, f.Warnings, 1)

	body["lng"] = "-79.99"
	f, err = ParseCreate(body)
	require.NoError(t, err)
	require.NotNil(t, f.Coordinates)
	assert.Equal(t, -79.99, f.Coordinates.Longitude)
}

func TestParseUpdate_OnlyTouchesSuppliedKeys(t *testing.T) {
	f, err := ParseUpdate(normalize.Body{"price": "410000", "title": "null", "features": []any{}})
	require.NoError(t, err)

	assert.Equal(t, 410000.0, *f.Price)
	assert.Nil(t, f.ZipCode)
	assert.Nil(t, f.Status)
	assert.Nil(t, f.Amenities)
	require.NotNil(t, f.Features)
	assert.Empty(t, *f.Features)

	cols := f.columns()
	assert.Equal(t, 410000.0, cols["price"])
	assert.Contains(t, cols, "title")
	assert.Nil(t, cols["title"])
	assert.NotContains(t, cols, "zip_code")
}

func TestParseUpdate_RequiredFieldCannotBeEmptied(t *testing.T) {
	_, err := ParseUpdate(normalize.Body{"zip_code": ""})
	require.Error(t, err)
	assert.Equal(t, "zipCode", fieldOf(t, err))

	_, err = ParseUpdate(normalize.Body{"bedrooms": "undefined"})
	require.Error(t, err)
	assert.Equal(t, "bedrooms", fieldOf(t, err))
}

func TestParseUpdate_RejectsOutOfRangeIntegers(t *testing.T) {
	for _, key := range []string{"bedrooms", "squareFeet", "yearBuilt"} {
		_, err := ParseUpdate(normalize.Body{key: 1e19})
		require.Error(t, err, key)
		assert.Equal(t, key, fieldOf(t, err))
		assert.Contains(t, err.Error(), "greater than 0")
	}

	f, err := ParseUpdate(normalize.Body{"bedrooms": float64(normalize.MaxInteger)})
	require.NoError(t, err)
	assert.Equal(t, normalize.MaxInteger, *f.Bedrooms)
}

func TestParseUpdate_Coordinates(t *testing.T) {
	f, err := ParseUpdate(normalize.Body{"latitude": nil, "longitude": nil})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"latitude", "longitude"}, f.Clear)

	f, err = ParseUpdate(normalize.Body{"latitude": 40.1})
	require.NoError(t, err)
	assert.Empty(t, f.Clear)
	assert.Nil(t, f.Coordinates)
	assert.NotEmpty(t, f.Warnings)
}

func TestParseUpdate_StatusNullIgnored(t *testing.T) {
	f, err := ParseUpdate(normalize.Body{"status": nil})
	require.NoError(t, err)
	assert.Nil(t, f.Status)
	assert.NotContains(t, f.columns(), "status")
}

func TestParseCreate_StatusIsFreeText(t *testing.T) {
	body := validBody()
	body["status"] = "  Pending Review "
	body["ownerEmail"] = " Owner@Example.COM "
	f, err := ParseCreate(body)
	require.NoError(t, err)
	assert.Equal(t, "Pending Review", *f.Status)
	assert.Equal(t, "owner@example.com", *f.OwnerEmail)
}
