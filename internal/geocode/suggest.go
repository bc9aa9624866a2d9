// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/richmalloy/naturedash/pkg/types"
)

// photonAPIBase is the autocomplete endpoint. Tests substitute a local
// server.
var photonAPIBase = "https://photon.komoot.io/api/"

// MinSuggestLength is the shortest input that triggers autocomplete.
const MinSuggestLength = 3

// Suggestion is one autocomplete candidate.
type Suggestion struct {
	Label      string
	Coordinate types.Coordinate
}

// commonCities is the offline fallback when the autocomplete endpoint
// is unreachable. Matching is a case-insensitive substring test against
// the label.
var commonCities = []Suggestion{
	{Label: "Santa Fe, NM", Coordinate: types.Coordinate{Latitude: 35.687, Longitude: -105.9378}},
	{Label: "Santa Barbara, CA", Coordinate: types.Coordinate{Latitude: 34.4208, Longitude: -119.6982}},
	{Label: "Santa Monica, CA", Coordinate: types.Coordinate{Latitude: 34.0195, Longitude: -118.4912}},
	{Label: "San Francisco, CA", Coordinate: types.Coordinate{Latitude: 37.7749, Longitude: -122.4194}},
	{Label: "San Diego, CA", Coordinate: types.Coordinate{Latitude: 32.7157, Longitude: -117.1611}},
	{Label: "Los Angeles, CA", Coordinate: types.Coordinate{Latitude: 34.0522, Longitude: -118.2437}},
	{Label: "Seattle, WA", Coordinate: types.Coordinate{Latitude: 47.6062, Longitude: -122.3321}},
	{Label: "Portland, OR", Coordinate: types.Coordinate{Latitude: 45.5152, Longitude: -122.6784}},
	{Label: "Denver, CO", Coordinate: types.Coordinate{Latitude: 39.7392, Longitude: -104.9903}},
	{Label: "Austin, TX", Coordinate: types.Coordinate{Latitude: 30.2672, Longitude: -97.7431}},
	{Label: "Phoenix, AZ", Coordinate: types.Coordinate{Latitude: 33.4484, Longitude: -112.074}},
	{Label: "Las Vegas, NV", Coordinate: types.Coordinate{Latitude: 36.1699, Longitude: -115.1398}},
	{Label: "Salt Lake City, UT", Coordinate: types.Coordinate{Latitude: 40.7608, Longitude: -111.891}},
	{Label: "Albuquerque, NM", Coordinate: types.Coordinate{Latitude: 35.0844, Longitude: -106.6504}},
	{Label: "Tucson, AZ", Coordinate: types.Coordinate{Latitude: 32.2226, Longitude: -110.9747}},
}

// Suggester produces autocomplete candidates for partial input,
// falling back to the offline city list when the remote endpoint
// fails.
type Suggester struct {
	Client *http.Client
	Config types.HTTPConfig
}

type photonResponse struct {
	Features []struct {
		Properties struct {
			Name  string `json:"name"`
			State string `json:"state"`
		} `json:"properties"`
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Suggest returns up to five candidates for the input. Input shorter
// than MinSuggestLength yields nothing. Candidates without a usable
// label are dropped rather than shown as unknown.
func (s *Suggester) Suggest(ctx context.Context, input string) ([]Suggestion, error) {
	if len(strings.TrimSpace(input)) < MinSuggestLength {
		return nil, nil
	}

	suggestions, err := s.remote(ctx, input)
	if err == nil && len(suggestions) > 0 {
		return suggestions, nil
	}
	return s.local(input), nil
}

func (s *Suggester) remote(ctx context.Context, input string) ([]Suggestion, error) {
	params := url.Values{}
	params.Set("q", input)
	params.Set("limit", "5")
	params.Set("osm_tag", "place")

	endpoint := fmt.Sprintf("%s?%s", photonAPIBase, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building autocomplete request: %w", err)
	}
	req.Header.Set("User-Agent", s.Config.UserAgent)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("autocomplete lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("autocomplete returned status %d", resp.StatusCode)
	}

	var parsed photonResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding autocomplete response: %w", err)
	}

	var suggestions []Suggestion
	for _, feature := range parsed.Features {
		if feature.Properties.Name == "" || len(feature.Geometry.Coordinates) < 2 {
			continue
		}
		label := feature.Properties.Name
		if feature.Properties.State != "" {
			label += ", " + feature.Properties.State
		}
		suggestions = append(suggestions, Suggestion{
			Label: label,
			Coordinate: types.Coordinate{
				Latitude:  feature.Geometry.Coordinates[1],
				Longitude: feature.Geometry.Coordinates[0],
			},
		})
	}
	return suggestions, nil
}

func (s *Suggester) local(input string) []Suggestion {
	needle := strings.ToLower(input)
	var matches []Suggestion
	for _, city := range commonCities {
		if strings.Contains(strings.ToLower(city.Label), needle) {
			matches = append(matches, city)
		}
	}
	return matches
}
