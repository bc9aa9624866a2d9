package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// --- wttr.in ---

const sampleWttrJSON = `{
  "current_condition": [
    {"temp_F": "72", "FeelsLikeF": "70", "windspeedMiles": "8", "weatherDesc": [{"value": "Partly cloudy"}]}
  ]
}`

func TestWttrFetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sampleWttrJSON)
	}))
	defer ts.Close()

	old := wttrAPIBase
	wttrAPIBase = ts.URL
	defer func() { wttrAPIBase = old }()

	c := &WttrClient{Client: ts.Client()}
	features, err := c.Fetch(context.Background(), testCenter(), testCfg())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(features) != 1 {
		t.Fatalf("len(features) = %d, want 1", len(features))
	}

	f := features[0]
	if f.Coordinate != nil {
		t.Error("weather feature should not carry a point")
	}
	if f.Weather == nil {
		t.Fatal("Weather = nil")
	}
	if f.Weather.TempF != "72" || f.Weather.Description != "Partly cloudy" {
		t.Errorf("Weather = %+v", *f.Weather)
	}
	if f.Subtitle != "72°F (feels like 70°F), wind 8 mph" {
		t.Errorf("Subtitle = %q", f.Subtitle)
	}
}

func TestWttrFetchNoConditions(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"current_condition": []}`)
	}))
	defer ts.Close()

	old := wttrAPIBase
	wttrAPIBase = ts.URL
	defer func() { wttrAPIBase = old }()

	c := &WttrClient{Client: ts.Client()}
	_, err := c.Fetch(context.Background(), testCenter(), testCfg())
	if !errors.Is(err, ErrEmpty) {
		t.Errorf("err = %v, want ErrEmpty", err)
	}
}

// --- Macrostrat ---

func TestMacrostratFetch(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `{"success": true, "data": {"units": [
			{"strat_name": "Tesuque Formation", "age": 15.5, "lith": "sandstone", "descr": "Basin fill."}
		]}}`)
	}))
	defer ts.Close()

	old := macrostratAPIBase
	macrostratAPIBase = ts.URL
	defer func() { macrostratAPIBase = old }()

	c := &MacrostratClient{Client: ts.Client()}
	features, err := c.Fetch(context.Background(), testCenter(), testCfg())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	// The endpoint takes x=longitude, y=latitude.
	if gotQuery == "" || gotQuery[0] != 'x' {
		t.Errorf("query = %q, want x first", gotQuery)
	}

	unit := features[0].Bedrock
	if unit == nil {
		t.Fatal("Bedrock = nil")
	}
	if unit.Formation != "Tesuque Formation" {
		t.Errorf("Formation = %q", unit.Formation)
	}
	if unit.AgeDisplay != "15.5 Ma" {
		t.Errorf("AgeDisplay = %q", unit.AgeDisplay)
	}
	if unit.Era != "from the Age of Mammals" {
		t.Errorf("Era = %q", unit.Era)
	}
	if unit.RockType != "sandstone" {
		t.Errorf("RockType = %q", unit.RockType)
	}
}

func TestMacrostratFetchStringAge(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success": true, "data": {"units": [
			{"strat_name": "", "age": "Cretaceous", "lith": "", "lith_class": "sedimentary"}
		]}}`)
	}))
	defer ts.Close()

	old := macrostratAPIBase
	macrostratAPIBase = ts.URL
	defer func() { macrostratAPIBase = old }()

	c := &MacrostratClient{Client: ts.Client()}
	features, err := c.Fetch(context.Background(), testCenter(), testCfg())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	unit := features[0].Bedrock
	if unit.Formation != "Unnamed formation" {
		t.Errorf("Formation = %q", unit.Formation)
	}
	// Non-numeric ages cannot be bucketed.
	if unit.Era != "Unknown time period" {
		t.Errorf("Era = %q", unit.Era)
	}
	if unit.RockType != "sedimentary" {
		t.Errorf("RockType = %q, want lith_class fallback", unit.RockType)
	}
}

func TestMacrostratFetchNoUnit(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success": true, "data": {"units": []}}`)
	}))
	defer ts.Close()

	old := macrostratAPIBase
	macrostratAPIBase = ts.URL
	defer func() { macrostratAPIBase = old }()

	c := &MacrostratClient{Client: ts.Client()}
	_, err := c.Fetch(context.Background(), testCenter(), testCfg())
	if !errors.Is(err, ErrEmpty) {
		t.Errorf("err = %v, want ErrEmpty", err)
	}
}
