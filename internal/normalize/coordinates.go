package normalize

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
)

var (
	LatitudeField  = Field{Label: "Latitude", Keys: []string{"latitude", "lat"}}
	LongitudeField = Field{Label: "Longitude", Keys: []string{"longitude", "lng", "lon"}}
)

// Coordinate is a validated latitude/longitude pair.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Coordinates reads the optional latitude/longitude pair. The pair is
// all-or-nothing: when only one half is usable, nil is returned together with
// a reason for the caller to log. Coordinates never produce a request error.
func Coordinates(b Body) (coord *Coordinate, warning string) {
	latRaw, hasLat := b.Lookup(LatitudeField.Keys...)
	lngRaw, hasLng := b.Lookup(LongitudeField.Keys...)

	switch {
	case !hasLat && !hasLng:
		return nil, ""
	case !hasLat || !hasLng:
		return nil, "only one of latitude/longitude was supplied; neither will be stored"
	}

	lat, latOK := coordinate(latRaw, 90)
	lng, lngOK := coordinate(lngRaw, 180)
	if !latOK || !lngOK {
		return nil, fmt.Sprintf("invalid coordinates (latitude: %v, longitude: %v); neither will be stored", latRaw, lngRaw)
	}
	return &Coordinate{Latitude: lat, Longitude: lng}, ""
}

func coordinate(raw any, limit float64) (float64, bool) {
	if _, isBool := raw.(bool); isBool {
		return 0, false
	}
	if s, ok := raw.(string); ok {
		raw = strings.TrimSpace(s)
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if v < -limit || v > limit {
		return 0, false
	}
	return v, true
}
