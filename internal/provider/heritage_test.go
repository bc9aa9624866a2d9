package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/richmalloy/naturedash/pkg/types"
)

// --- Wikipedia stage ---

const sampleWikiJSON = `{
  "pages": [
    {"title": "Pecos National Historical Park", "description": "Archaeological park in New Mexico", "lat": 35.55, "lon": -105.68},
    {"title": "Generic Diner", "description": "Restaurant", "lat": 35.68, "lon": -105.94},
    {"title": "Fort Marcy", "description": "Military earthworks", "lat": 35.69, "lon": -105.93}
  ]
}`

func TestWikipediaFetchFiltersByVocabulary(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sampleWikiJSON)
	}))
	defer ts.Close()

	old := wikipediaAPIBase
	wikipediaAPIBase = ts.URL
	defer func() { wikipediaAPIBase = old }()

	c := &WikipediaClient{Client: ts.Client()}
	features, err := c.Fetch(context.Background(), testCenter(), testCfg())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(features) != 2 {
		t.Fatalf("len(features) = %d, want 2 (diner filtered out)", len(features))
	}
	if features[0].Title != "Pecos National Historical Park" {
		t.Errorf("Title = %q", features[0].Title)
	}
	if features[1].Title != "Fort Marcy" {
		t.Errorf("Title = %q", features[1].Title)
	}
}

func TestMatchesHeritageVocabulary(t *testing.T) {
	tests := []struct {
		title, description string
		want               bool
	}{
		{"Bandelier National Monument", "", true},
		{"Some Place", "ancient ruins in the valley", true},
		{"Taos Pueblo", "", true},
		{"Joe's Coffee", "espresso bar", false},
		{"", "", false},
	}
	for _, tt := range tests {
		if got := matchesHeritageVocabulary(tt.title, tt.description); got != tt.want {
			t.Errorf("matchesHeritageVocabulary(%q, %q) = %v, want %v", tt.title, tt.description, got, tt.want)
		}
	}
}

// --- Overpass stage ---

const sampleOverpassJSON = `{
  "elements": [
    {"type": "node", "lat": 35.68, "lon": -105.93, "tags": {"name": "San Miguel Chapel", "historic": "church"}},
    {"type": "way", "center": {"lat": 35.66, "lon": -105.97}, "tags": {"historic": "archaeological_site"}},
    {"type": "node", "lat": 35.67, "lon": -105.95, "tags": {"name": "Odd Place", "historic": "wayside_shrine"}}
  ]
}`

func TestOverpassFetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sampleOverpassJSON)
	}))
	defer ts.Close()

	old := overpassAPIBase
	overpassAPIBase = ts.URL
	defer func() { overpassAPIBase = old }()

	c := &OverpassClient{Client: ts.Client()}
	features, err := c.Fetch(context.Background(), testCenter(), testCfg())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(features) != 3 {
		t.Fatalf("len(features) = %d, want 3", len(features))
	}

	if features[0].Description != "Historic church or religious building" {
		t.Errorf("Description = %q, want table lookup", features[0].Description)
	}
	// Ways carry a center instead of a point; the name falls back to the
	// historic tag value.
	if features[1].Title != "archaeological_site" {
		t.Errorf("Title = %q, want tag fallback", features[1].Title)
	}
	if features[1].Coordinate == nil || features[1].Coordinate.Latitude != 35.66 {
		t.Errorf("Coordinate = %v, want way center", features[1].Coordinate)
	}
	// Untabulated tags get the generic prefix.
	if features[2].Description != "Historic wayside_shrine" {
		t.Errorf("Description = %q, want generic fallback", features[2].Description)
	}
}

// --- Curated stage ---

func TestCuratedSitesWithinRadius(t *testing.T) {
	c := &CuratedSitesClient{}

	// Chaco Canyon query point; several New Mexico sites sit within
	// 300 km.
	features, err := c.Fetch(context.Background(), types.Coordinate{Latitude: 36.06, Longitude: -107.97}, testCfg())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(features) == 0 {
		t.Fatal("no curated sites near Chaco Canyon")
	}
	for _, f := range features {
		if f.Category != types.CategoryHeritage {
			t.Errorf("Category = %s", f.Category)
		}
		if f.Coordinate == nil {
			t.Error("Coordinate = nil")
		}
	}
}

func TestCuratedSitesFarFromEverything(t *testing.T) {
	c := &CuratedSitesClient{}

	// Middle of the North Atlantic.
	_, err := c.Fetch(context.Background(), types.Coordinate{Latitude: 45.0, Longitude: -40.0}, testCfg())
	if !errors.Is(err, ErrEmpty) {
		t.Errorf("err = %v, want ErrEmpty", err)
	}
}
