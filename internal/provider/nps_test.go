package provider

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/richmalloy/naturedash/internal/geo"
	"github.com/richmalloy/naturedash/pkg/types"
)

// Catalog entries around center (35, -105). One degree of latitude is
// roughly 111.2 km, so "near" sits inside a 70-mile radius (112.65 km)
// and outside a 68-mile radius (109.44 km).
const sampleParksJSON = `{
  "data": [
    {"fullName": "Near Park", "designation": "National Monument", "description": "Close by.", "latitude": "36.0", "longitude": "-105.0", "url": "https://example.org/near"},
    {"fullName": "Far Park", "designation": "National Park", "description": "Across the country.", "latitude": "47.6", "longitude": "-122.3", "url": "https://example.org/far"},
    {"fullName": "Broken Park", "designation": "", "description": "Bad coordinates.", "latitude": "", "longitude": "", "url": ""}
  ]
}`

func npsTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sampleParksJSON)
	}))
}

func TestNPSFetchFiltersByDistance(t *testing.T) {
	ts := npsTestServer(t)
	defer ts.Close()

	old := npsAPIBase
	npsAPIBase = ts.URL
	defer func() { npsAPIBase = old }()

	cfg := testCfg()
	cfg.ParkRadiusMiles = 70

	center := types.Coordinate{Latitude: 35.0, Longitude: -105.0}
	c := &NPSClient{Client: ts.Client()}
	features, err := c.Fetch(context.Background(), center, cfg)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(features) != 1 {
		t.Fatalf("len(features) = %d, want 1", len(features))
	}
	if features[0].Title != "Near Park" {
		t.Errorf("Title = %q, want Near Park", features[0].Title)
	}
	if features[0].Designation != "National Monument" {
		t.Errorf("Designation = %q", features[0].Designation)
	}
}

func TestNPSFetchRadiusBoundaryExclusive(t *testing.T) {
	ts := npsTestServer(t)
	defer ts.Close()

	old := npsAPIBase
	npsAPIBase = ts.URL
	defer func() { npsAPIBase = old }()

	// 68 miles is 109.4 km, short of the 111.2 km to Near Park, so
	// nothing qualifies and the attempt reports empty.
	cfg := testCfg()
	cfg.ParkRadiusMiles = 68

	center := types.Coordinate{Latitude: 35.0, Longitude: -105.0}
	c := &NPSClient{Client: ts.Client()}
	_, err := c.Fetch(context.Background(), center, cfg)
	if !errors.Is(err, ErrEmpty) {
		t.Errorf("err = %v, want ErrEmpty", err)
	}
}

func TestNPSFetchRadiusBoundaryInclusive(t *testing.T) {
	ts := npsTestServer(t)
	defer ts.Close()

	old := npsAPIBase
	npsAPIBase = ts.URL
	defer func() { npsAPIBase = old }()

	// Pin the radius to the measured distance of Near Park. The
	// miles-to-km conversion can round a hair under the measured
	// distance, so nudge up until the round trip covers it.
	center := types.Coordinate{Latitude: 35.0, Longitude: -105.0}
	near := types.Coordinate{Latitude: 36.0, Longitude: -105.0}
	distanceKm := geo.Haversine(center, near)
	radiusMiles := distanceKm / geo.KmPerMile
	for radiusMiles*geo.KmPerMile < distanceKm {
		radiusMiles = math.Nextafter(radiusMiles, math.MaxFloat64)
	}

	cfg := testCfg()
	cfg.ParkRadiusMiles = radiusMiles

	c := &NPSClient{Client: ts.Client()}
	features, err := c.Fetch(context.Background(), center, cfg)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(features) != 1 || features[0].Title != "Near Park" {
		t.Errorf("features = %+v, want the park exactly at the boundary included", features)
	}
}

func TestNPSFetchKeepsCatalogOrder(t *testing.T) {
	// Both parks in range; the closer one is listed second in the
	// catalog and must stay second.
	body := `{"data": [
	  {"fullName": "Farther First", "designation": "NP", "description": "", "latitude": "36.5", "longitude": "-105.0", "url": ""},
	  {"fullName": "Closer Second", "designation": "NP", "description": "", "latitude": "35.2", "longitude": "-105.0", "url": ""}
	]}`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	defer ts.Close()

	old := npsAPIBase
	npsAPIBase = ts.URL
	defer func() { npsAPIBase = old }()

	center := types.Coordinate{Latitude: 35.0, Longitude: -105.0}
	c := &NPSClient{Client: ts.Client()}
	features, err := c.Fetch(context.Background(), center, testCfg())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(features) != 2 {
		t.Fatalf("len(features) = %d, want 2", len(features))
	}
	if features[0].Title != "Farther First" || features[1].Title != "Closer Second" {
		t.Errorf("order = %q, %q; want catalog order preserved", features[0].Title, features[1].Title)
	}
}

func TestTruncateText(t *testing.T) {
	if got := truncateText("short", 100); got != "short" {
		t.Errorf("truncateText(short) = %q", got)
	}
	long := make([]byte, 150)
	for i := range long {
		long[i] = 'a'
	}
	got := truncateText(string(long), 100)
	if len(got) != 103 || got[100:] != "..." {
		t.Errorf("truncateText long = %d bytes, want 100 + ellipsis", len(got))
	}
}

func TestTruncateTextKeepsRunesWhole(t *testing.T) {
	long := strings.Repeat("ō", 120)
	got := truncateText(long, 100)
	if !utf8.ValidString(got) {
		t.Fatalf("truncateText produced invalid UTF-8: %q", got)
	}
	if utf8.RuneCountInString(got) != 103 {
		t.Errorf("rune count = %d, want 100 + ellipsis", utf8.RuneCountInString(got))
	}
	if !strings.HasSuffix(got, "ō...") {
		t.Errorf("truncateText = %q, want an intact final rune", got)
	}
}
