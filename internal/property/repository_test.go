package property_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/common"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/normalize"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/platform/database"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/platform/database/dbtest"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/property"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/review"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var models = []interface{}{
	&user.User{},
	&property.Property{},
	&property.Photo{},
	&property.Feature{},
	&property.Amenity{},
	&property.Inquiry{},
	&review.Review{},
}

func testPolicy() database.RetryPolicy {
	return database.RetryPolicy{
		AcquireTimeout: 50 * time.Millisecond,
		Attempts:       3,
		Backoff:        10 * time.Millisecond,
		QueryTimeout:   time.Second,
	}
}

func newRepo(t *testing.T) (property.Repository, *gorm.DB, *database.Pool) {
	t.Helper()
	db := dbtest.New(t, models...)
	pool := database.NewPool(db, testPolicy(), zap.NewNop())
	return property.NewGORMRepository(pool), db, pool
}

func baseBody() normalize.Body {
	return normalize.Body{
		"title":        "Shadyside Victorian",
		"address":      "5500 Walnut St",
		"city":         "Pittsburgh",
		"zip_code":     "15232",
		"propertyType": "Single Family",
		"listingType":  "sell",
		"bedrooms":     float64(4),
		"bathrooms":    2.5,
		"square_feet":  float64(2400),
		"price":        float64(525000),
	}
}

func mustCreate(t *testing.T, repo property.Repository, body normalize.Body) *property.Property {
	t.Helper()
	fields, err := property.ParseCreate(body)
	require.NoError(t, err)
	p, err := repo.Create(context.Background(), fields)
	require.NoError(t, err)
	return p
}

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestCreate_OversizedPhotoRollsBackEverything(t *testing.T) {
	repo, db, _ := newRepo(t)

	body := baseBody()
	body["features"] = []any{"Garage", "Porch"}
	body["photos"] = []any{map[string]any{"url": strings.Repeat("A", 6<<20)}}
	fields, err := property.ParseCreate(body)
	require.NoError(t, err)

	_, err = repo.Create(context.Background(), fields)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "Photo 1 is too large")

	assert.Zero(t, count(t, db, &property.Property{}))
	assert.Zero(t, count(t, db, &property.Feature{}))
	assert.Zero(t, count(t, db, &property.Photo{}))
}

func TestCreate_PhotoOrderAndPrimary(t *testing.T) {
	repo, _, _ := newRepo(t)

	body := baseBody()
	body["photos"] = []any{"https://img.example.com/a.jpg", "https://img.example.com/b.jpg", "https://img.example.com/c.jpg"}
	body["amenities"] = []any{"Central air"}
	p := mustCreate(t, repo, body)

	require.Len(t, p.Photos, 3)
	for i, ph := range p.Photos {
		assert.Equal(t, i+1, ph.DisplayOrder)
		assert.Equal(t, i == 0, ph.IsPrimary, "photo %d", i+1)
	}
	assert.Equal(t, "https://img.example.com/a.jpg", p.Photos[0].PhotoURL)
	assert.EqualValues(t, len("https://img.example.com/a.jpg"), *p.Photos[0].PhotoSize)
	require.Len(t, p.Amenities, 1)
	assert.Equal(t, property.StatusActive, p.Status)
}

func TestUpdate_ChildReplacementIsPresenceDriven(t *testing.T) {
	repo, db, _ := newRepo(t)
	ctx := context.Background()

	body := baseBody()
	body["features"] = []any{"Garage", "Porch"}
	body["amenities"] = []any{"Pool"}
	p := mustCreate(t, repo, body)

	fields, err := property.ParseUpdate(normalize.Body{"price": "499000", "city": ""})
	require.NoError(t, err)
	updated, err := repo.Update(ctx, p.ID, fields)
	require.NoError(t, err)
	assert.Equal(t, 499000.0, updated.Price)
	assert.Nil(t, updated.City)
	assert.Len(t, updated.Features, 2)
	assert.Equal(t, "15232", updated.ZipCode)
	assert.False(t, updated.UpdatedAt.Before(p.UpdatedAt))

	fields, err = property.ParseUpdate(normalize.Body{"features": []any{}})
	require.NoError(t, err)
	updated, err = repo.Update(ctx, p.ID, fields)
	require.NoError(t, err)
	assert.Empty(t, updated.Features)
	assert.Len(t, updated.Amenities, 1)
	assert.Zero(t, count(t, db, &property.Feature{}))
}

func TestUpdate_OversizedPhotoKeepsExistingPhotos(t *testing.T) {
	repo, db, _ := newRepo(t)

	body := baseBody()
	body["photos"] = []any{"https://img.example.com/a.jpg"}
	p := mustCreate(t, repo, body)

	fields, err := property.ParseUpdate(normalize.Body{
		"title":  "Renamed",
		"photos": []any{"https://img.example.com/b.jpg", strings.Repeat("B", property.MaxPhotoBytes+1)},
	})
	require.NoError(t, err)
	_, err = repo.Update(context.Background(), p.ID, fields)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Photo 2 is too large")

	found, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shadyside Victorian", *found.Title)
	require.Len(t, found.Photos, 1)
	assert.Equal(t, "https://img.example.com/a.jpg", found.Photos[0].PhotoURL)
	assert.EqualValues(t, 1, count(t, db, &property.Photo{}))
}

func TestUpdate_MissingProperty(t *testing.T) {
	repo, _, _ := newRepo(t)
	fields, err := property.ParseUpdate(normalize.Body{"price": 1})
	require.NoError(t, err)

	_, err = repo.Update(context.Background(), uuid.New(), fields)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestDelete_CascadesToEveryDependent(t *testing.T) {
	repo, db, _ := newRepo(t)
	ctx := context.Background()

	body := baseBody()
	body["photos"] = []any{"https://img.example.com/a.jpg", "https://img.example.com/b.jpg"}
	body["features"] = []any{"Garage"}
	body["amenities"] = []any{"Pool"}
	p := mustCreate(t, repo, body)

	require.NoError(t, repo.CreateInquiry(ctx, &property.Inquiry{PropertyID: &p.ID, Name: "Lee", Email: "lee@example.com"}))
	require.NoError(t, db.Create(&review.Review{PropertyID: &p.ID, ReviewerName: "Lee", Rating: 5, Comment: "Lovely"}).Error)

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, found.Reviews, 1)

	require.NoError(t, repo.Delete(ctx, p.ID))

	for _, model := range []interface{}{&property.Property{}, &property.Photo{}, &property.Feature{}, &property.Amenity{}, &property.Inquiry{}, &review.Review{}} {
		assert.Zero(t, count(t, db, model), "%T", model)
	}
	_, err = repo.FindByID(ctx, p.ID)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)

	err = repo.Delete(ctx, p.ID)
	apiErr, ok = common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestList_Filters(t *testing.T) {
	repo, _, _ := newRepo(t)
	ctx := context.Background()

	cheap := baseBody()
	cheap["price"] = float64(150000)
	cheap["bedrooms"] = float64(2)
	cheap["city"] = "McKees Rocks"
	mustCreate(t, repo, cheap)

	rental := baseBody()
	rental["listingType"] = "rent"
	rental["propertyType"] = "Apartment"
	rental["price"] = float64(1800)
	rental["status"] = "inactive"
	mustCreate(t, repo, rental)

	mustCreate(t, repo, baseBody())

	minBeds := 3
	minPrice, maxPrice := 100000.0, 600000.0
	tests := []struct {
		name   string
		filter property.ListFilter
		want   int
	}{
		{"no filter", property.ListFilter{}, 3},
		{"type", property.ListFilter{PropertyType: "Apartment"}, 1},
		{"status", property.ListFilter{Status: "active"}, 2},
		{"price range", property.ListFilter{MinPrice: &minPrice, MaxPrice: &maxPrice}, 2},
		{"bedrooms", property.ListFilter{MinBedrooms: &minBeds}, 2},
		{"city substring", property.ListFilter{City: "mckees"}, 1},
		{"listing type", property.ListFilter{ListingType: "RENT"}, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.List(ctx, tc.filter)
			require.NoError(t, err)
			assert.Len(t, got, tc.want)
		})
	}
}

func TestListByOwner_MatchesUserOrDenormalizedEmail(t *testing.T) {
	repo, db, _ := newRepo(t)
	ctx := context.Background()

	owner := &user.User{FirstName: "Ana", LastName: "Ortiz", Email: "ana@example.com"}
	require.NoError(t, user.NewGORMRepository(db).Create(ctx, owner))

	linked := baseBody()
	linked["ownerId"] = owner.ID.String()
	mustCreate(t, repo, linked)

	denormalized := baseBody()
	denormalized["ownerEmail"] = "Ana@Example.com"
	mustCreate(t, repo, denormalized)

	other := baseBody()
	other["owner_email"] = "someone@example.com"
	mustCreate(t, repo, other)

	got, err := repo.ListByOwner(ctx, " ANA@example.com")
	require.NoError(t, err)
	require.Len(t, got, 2)

	resp := property.ToResponses(got)
	names := []string{}
	for _, r := range resp {
		if r.OwnerName != nil {
			names = append(names, *r.OwnerName)
		}
	}
	assert.Contains(t, names, "Ana Ortiz")
}

func TestListReviews_NewestFirst(t *testing.T) {
	repo, db, _ := newRepo(t)
	p := mustCreate(t, repo, baseBody())

	older := &review.Review{PropertyID: &p.ID, ReviewerName: "A", Rating: 4, Comment: "ok"}
	require.NoError(t, db.Create(older).Error)
	newer := &review.Review{PropertyID: &p.ID, ReviewerName: "B", Rating: 5, Comment: "great"}
	newer.CreatedAt = older.CreatedAt.Add(time.Minute)
	require.NoError(t, db.Create(newer).Error)

	got, err := repo.ListReviews(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].ReviewerName)
}
