package property_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/property"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRouter(t *testing.T, repo property.Repository, users user.Repository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	handler := property.NewHandler(property.NewService(repo, users, zap.NewNop()), zap.NewNop())
	router := gin.New()
	handler.RegisterRoutes(router.Group("/api"))
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w, out
}

func TestHandler_ListDegradesToEmptyDuringOutage(t *testing.T) {
	repo, db, pool := newRepo(t)
	mustCreate(t, repo, baseBody())
	router := newRouter(t, repo, nil)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	held, err := sqlDB.Conn(context.Background())
	require.NoError(t, err)
	defer held.Close()

	start := time.Now()
	w, body := doJSON(t, router, http.MethodGet, "/api/properties", nil)
	elapsed := time.Since(start)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, []interface{}{}, body["listings"])
	assert.EqualValues(t, 0, body["total"])
	assert.NotEmpty(t, body["message"])
	assert.Contains(t, body["error"], "acquire")
	assert.Less(t, elapsed, pool.Policy().Ceiling()+500*time.Millisecond)
}

func TestHandler_ListReturnsListings(t *testing.T) {
	repo, _, _ := newRepo(t)
	body := baseBody()
	body["photos"] = []any{"https://img.example.com/a.jpg"}
	mustCreate(t, repo, body)
	router := newRouter(t, repo, nil)

	w, out := doJSON(t, router, http.MethodGet, "/api/properties?type=Single%20Family&minPrice=abc&city=pitts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, out["total"])
	listing := out["listings"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "15232", listing["zip_code"])
	assert.Equal(t, "15232", listing["zipCode"])
	assert.Equal(t, []interface{}{"https://img.example.com/a.jpg"}, listing["images"])
}

func TestHandler_CreateGetUpdateDelete(t *testing.T) {
	repo, _, _ := newRepo(t)
	router := newRouter(t, repo, nil)

	payload := map[string]interface{}{
		"zipCode": "15213", "property_type": "Condo", "listing_type": " Rent ",
		"bedrooms": "1", "bathrooms": 1, "sqft": "650", "price": 1450,
		"features": []string{"Doorman"},
	}
	w, out := doJSON(t, router, http.MethodPost, "/api/properties", payload)
	require.Equal(t, http.StatusCreated, w.Code, out)
	data := out["data"].(map[string]interface{})
	assert.Equal(t, "rent", data["listing_type"])
	assert.Equal(t, []interface{}{"Doorman"}, data["features"])
	id := data["id"].(string)

	w, out = doJSON(t, router, http.MethodGet, "/api/properties/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Condo", out["data"].(map[string]interface{})["propertyType"])

	w, out = doJSON(t, router, http.MethodPut, "/api/properties/"+id, map[string]interface{}{"price": "1500", "features": nil})
	require.Equal(t, http.StatusOK, w.Code, out)
	data = out["data"].(map[string]interface{})
	assert.EqualValues(t, 1500, data["price"])
	assert.Equal(t, []interface{}{}, data["features"])

	w, _ = doJSON(t, router, http.MethodDelete, "/api/properties/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, out = doJSON(t, router, http.MethodGet, "/api/properties/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, out["success"])
}

func TestHandler_Rejections(t *testing.T) {
	repo, _, _ := newRepo(t)
	router := newRouter(t, repo, nil)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
	}{
		{"missing zip", http.MethodPost, "/api/properties", map[string]interface{}{"propertyType": "Condo"}, http.StatusBadRequest},
		{"array body", http.MethodPost, "/api/properties", []string{"x"}, http.StatusBadRequest},
		{"bad id", http.MethodGet, "/api/properties/123", nil, http.StatusBadRequest},
		{"unknown id", http.MethodPut, "/api/properties/" + uuid.NewString(), map[string]interface{}{"price": 5}, http.StatusNotFound},
		{"owner without email", http.MethodGet, "/api/properties/owner", nil, http.StatusBadRequest},
		{"inquiry without email", http.MethodPost, "/api/inquiries", map[string]interface{}{"name": "Jo"}, http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, out := doJSON(t, router, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, w.Code, out)
			assert.Equal(t, false, out["success"])
		})
	}
}

func TestHandler_OwnerAndInquiry(t *testing.T) {
	repo, _, _ := newRepo(t)
	router := newRouter(t, repo, nil)

	body := baseBody()
	body["owner_email"] = "owner@example.com"
	p := mustCreate(t, repo, body)

	w, out := doJSON(t, router, http.MethodGet, "/api/properties/owner?owner_email=OWNER@example.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, out["total"])

	w, out = doJSON(t, router, http.MethodPost, "/api/inquiries", map[string]interface{}{
		"propertyId": p.ID.String(), "name": "Jo", "email": "jo@example.com", "message": "Is it available?",
	})
	require.Equal(t, http.StatusCreated, w.Code, out)

	w, out = doJSON(t, router, http.MethodGet, "/api/properties/"+p.ID.String()+"/reviews", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, out["success"])
}

func TestHandler_CreateRejectsOutOfRangeIntegers(t *testing.T) {
	repo, db, _ := newRepo(t)
	router := newRouter(t, repo, nil)

	for _, tc := range []struct{ key, field string }{
		{"bedrooms", "bedrooms"},
		{"square_feet", "squareFeet"},
	} {
		body := baseBody()
		body[tc.key] = 1e30
		w, out := doJSON(t, router, http.MethodPost, "/api/properties", body)
		require.Equal(t, http.StatusBadRequest, w.Code, out)
		assert.Equal(t, tc.field, out["details"].(map[string]interface{})["field"])
	}
	assert.Zero(t, count(t, db, &property.Property{}))
}

func TestHandler_ListFilterEdgeValues(t *testing.T) {
	repo, _, _ := newRepo(t)
	two := baseBody()
	two["bedrooms"] = float64(2)
	mustCreate(t, repo, two)
	three := baseBody()
	three["bedrooms"] = float64(3)
	mustCreate(t, repo, three)
	router := newRouter(t, repo, nil)

	for query, want := range map[string]int{
		"bedrooms=2.5":        1,
		"bedrooms=2":          2,
		"bedrooms=Inf":        2,
		"bedrooms=1e30":       2,
		"minPrice=NaN":        2,
		"maxPrice=-Inf":       2,
		"bathrooms=NaN":       2,
		"bedrooms=3&minPrice": 1,
	} {
		w, out := doJSON(t, router, http.MethodGet, "/api/properties?"+query, nil)
		require.Equal(t, http.StatusOK, w.Code, query)
		assert.EqualValues(t, want, out["total"], query)
	}
}
