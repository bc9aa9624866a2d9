package geocode

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/richmalloy/naturedash/internal/httputil"
	"github.com/richmalloy/naturedash/pkg/types"
)

func testHTTPCfg() types.HTTPConfig {
	return types.HTTPConfig{Timeout: 10 * time.Second, UserAgent: "test/0.1"}
}

// disableCooldown removes the inter-search spacing for the duration of
// a test.
func disableCooldown(t *testing.T) {
	t.Helper()
	old := searchCooldown
	searchCooldown = httputil.NewCooldown(0)
	t.Cleanup(func() { searchCooldown = old })
}

// --- input routing ---

func TestLooksLikeZIP(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"87501", true},
		{"00501", true},
		{"8750", false},
		{"875011", false},
		{"santa fe", false},
		{"87501-1234", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := LooksLikeZIP(tt.input); got != tt.want {
			t.Errorf("LooksLikeZIP(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

// --- ZIP path ---

const sampleZipJSON = `{
  "post code": "87501",
  "country": "United States",
  "places": [
    {"place name": "Santa Fe", "state": "New Mexico", "state abbreviation": "NM", "latitude": "35.687", "longitude": "-105.9378"}
  ]
}`

func TestZippopotamResolve(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/87501" {
			t.Errorf("path = %q, want /87501", r.URL.Path)
		}
		fmt.Fprint(w, sampleZipJSON)
	}))
	defer ts.Close()

	old := zippopotamAPIBase
	zippopotamAPIBase = ts.URL
	defer func() { zippopotamAPIBase = old }()

	c := &ZippopotamClient{Client: ts.Client(), Config: testHTTPCfg()}
	result, err := c.Resolve(context.Background(), "87501")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if result.Place.Label != "Santa Fe, NM 87501" {
		t.Errorf("Label = %q, want %q", result.Place.Label, "Santa Fe, NM 87501")
	}
	// The state field carries the abbreviation; history dedup keys on it.
	if result.Place.City != "Santa Fe" || result.Place.State != "NM" {
		t.Errorf("Place = %+v, want city Santa Fe in state NM", result.Place)
	}
	if result.Place.Country != "United States" {
		t.Errorf("Country = %q", result.Place.Country)
	}
	if result.Coordinate.Latitude != 35.687 || result.Coordinate.Longitude != -105.9378 {
		t.Errorf("Coordinate = %v", result.Coordinate)
	}
}

func TestZippopotamResolveNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer ts.Close()

	old := zippopotamAPIBase
	zippopotamAPIBase = ts.URL
	defer func() { zippopotamAPIBase = old }()

	c := &ZippopotamClient{Client: ts.Client(), Config: testHTTPCfg()}
	_, err := c.Resolve(context.Background(), "00000")
	if !errors.Is(err, ErrLocationNotFound) {
		t.Errorf("err = %v, want ErrLocationNotFound", err)
	}
}

// --- free-text path ---

const sampleNominatimJSON = `[
  {
    "lat": "35.6869752",
    "lon": "-105.937799",
    "address": {"city": "Santa Fe", "state": "New Mexico", "country": "United States", "postcode": "87501"}
  }
]`

func TestNominatimSearch(t *testing.T) {
	disableCooldown(t)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("countrycodes") != "us" || q.Get("limit") != "1" {
			t.Errorf("query = %v, want US-restricted single result", q)
		}
		fmt.Fprint(w, sampleNominatimJSON)
	}))
	defer ts.Close()

	old := nominatimAPIBase
	nominatimAPIBase = ts.URL
	defer func() { nominatimAPIBase = old }()

	c := &NominatimClient{Client: ts.Client(), Config: testHTTPCfg()}
	result, err := c.Search(context.Background(), "santa fe")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.Place.Label != "Santa Fe, New Mexico 87501" {
		t.Errorf("Label = %q, want city, state and postcode", result.Place.Label)
	}
	if result.Coordinate.Latitude != 35.6869752 {
		t.Errorf("Latitude = %f", result.Coordinate.Latitude)
	}
}

func TestNominatimSearchDisplayNameFallback(t *testing.T) {
	disableCooldown(t)
	// No populated-place field in the structured address; the label
	// falls back to the first three display_name tokens.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
		  {
		    "lat": "36.4",
		    "lon": "-105.57",
		    "display_name": "Taos Ski Valley, Taos County, New Mexico, United States",
		    "address": {"state": "New Mexico", "country": "United States"}
		  }
		]`)
	}))
	defer ts.Close()

	old := nominatimAPIBase
	nominatimAPIBase = ts.URL
	defer func() { nominatimAPIBase = old }()

	c := &NominatimClient{Client: ts.Client(), Config: testHTTPCfg()}
	result, err := c.Search(context.Background(), "taos ski valley")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.Place.Label != "Taos Ski Valley, Taos County, New Mexico" {
		t.Errorf("Label = %q, want first three display_name tokens", result.Place.Label)
	}
}

func TestNominatimSearchLabelSentinel(t *testing.T) {
	disableCooldown(t)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"lat": "36.4", "lon": "-105.57", "address": {}}]`)
	}))
	defer ts.Close()

	old := nominatimAPIBase
	nominatimAPIBase = ts.URL
	defer func() { nominatimAPIBase = old }()

	c := &NominatimClient{Client: ts.Client(), Config: testHTTPCfg()}
	result, err := c.Search(context.Background(), "mystery")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.Place.Label != types.UnknownLocationLabel {
		t.Errorf("Label = %q, want unknown-location sentinel", result.Place.Label)
	}
}

func TestNominatimSearchNotFound(t *testing.T) {
	disableCooldown(t)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer ts.Close()

	old := nominatimAPIBase
	nominatimAPIBase = ts.URL
	defer func() { nominatimAPIBase = old }()

	c := &NominatimClient{Client: ts.Client(), Config: testHTTPCfg()}
	_, err := c.Search(context.Background(), "xyzzy nowhere")
	if !errors.Is(err, ErrLocationNotFound) {
		t.Errorf("err = %v, want ErrLocationNotFound", err)
	}
}

func TestNominatimReverseUnknownAddress(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"lat": "0", "lon": "0", "address": {}}`)
	}))
	defer ts.Close()

	old := nominatimAPIBase
	nominatimAPIBase = ts.URL
	defer func() { nominatimAPIBase = old }()

	c := &NominatimClient{Client: ts.Client(), Config: testHTTPCfg()}
	result, err := c.Reverse(context.Background(), types.Coordinate{Latitude: 0, Longitude: 0})
	if err != nil {
		t.Fatalf("Reverse: %v", err)
	}
	if result.Place.Label != types.UnknownLocationLabel {
		t.Errorf("Label = %q, want unknown-location sentinel", result.Place.Label)
	}
}

func TestAddressCityFallbacks(t *testing.T) {
	tests := []struct {
		name    string
		address nominatimAddress
		want    string
	}{
		{"city wins", nominatimAddress{City: "Santa Fe", Town: "x", Village: "y"}, "Santa Fe"},
		{"town next", nominatimAddress{Town: "Madrid", County: "z"}, "Madrid"},
		{"village next", nominatimAddress{Village: "Chimayo"}, "Chimayo"},
		{"hamlet next", nominatimAddress{Hamlet: "Cundiyo"}, "Cundiyo"},
		{"county last", nominatimAddress{County: "Rio Arriba County"}, "Rio Arriba County"},
		{"nothing", nominatimAddress{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.address.cityName(); got != tt.want {
				t.Errorf("cityName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolverRoutesZIP(t *testing.T) {
	zipServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sampleZipJSON)
	}))
	defer zipServer.Close()

	old := zippopotamAPIBase
	zippopotamAPIBase = zipServer.URL
	defer func() { zippopotamAPIBase = old }()

	resolver := &Resolver{
		ZIP:      &ZippopotamClient{Client: zipServer.Client(), Config: testHTTPCfg()},
		FreeText: &NominatimClient{Client: zipServer.Client(), Config: testHTTPCfg()},
	}
	result, err := resolver.Resolve(context.Background(), "87501")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if result.Place.Postcode != "87501" {
		t.Errorf("Postcode = %q, want ZIP path", result.Place.Postcode)
	}
}

// --- autocomplete ---

func TestSuggestTooShort(t *testing.T) {
	s := &Suggester{Client: http.DefaultClient, Config: testHTTPCfg()}
	suggestions, err := s.Suggest(context.Background(), "sa")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if suggestions != nil {
		t.Errorf("suggestions = %v, want none under three characters", suggestions)
	}
}

func TestSuggestRemote(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"features": [
			{"properties": {"name": "Santa Fe", "state": "New Mexico"}, "geometry": {"coordinates": [-105.9378, 35.687]}},
			{"properties": {"name": "", "state": "Texas"}, "geometry": {"coordinates": [-97.7, 30.2]}}
		]}`)
	}))
	defer ts.Close()

	old := photonAPIBase
	photonAPIBase = ts.URL
	defer func() { photonAPIBase = old }()

	s := &Suggester{Client: ts.Client(), Config: testHTTPCfg()}
	suggestions, err := s.Suggest(context.Background(), "santa")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(suggestions) != 1 {
		t.Fatalf("len(suggestions) = %d, want 1 (nameless entry dropped)", len(suggestions))
	}
	if suggestions[0].Label != "Santa Fe, New Mexico" {
		t.Errorf("Label = %q", suggestions[0].Label)
	}
	if suggestions[0].Coordinate.Latitude != 35.687 {
		t.Errorf("Latitude = %f", suggestions[0].Coordinate.Latitude)
	}
}

func TestSuggestFallsBackToLocalCities(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	old := photonAPIBase
	photonAPIBase = ts.URL
	defer func() { photonAPIBase = old }()

	s := &Suggester{Client: ts.Client(), Config: testHTTPCfg()}
	suggestions, err := s.Suggest(context.Background(), "santa")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(suggestions) != 3 {
		t.Fatalf("len(suggestions) = %d, want the three Santa cities", len(suggestions))
	}
	if suggestions[0].Label != "Santa Fe, NM" {
		t.Errorf("first = %q", suggestions[0].Label)
	}
}
