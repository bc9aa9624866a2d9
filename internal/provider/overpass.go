// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/richmalloy/naturedash/pkg/types"
)

// overpassAPIBase is the OpenStreetMap Overpass interpreter endpoint.
// Declared as a var so tests can substitute an httptest server.
var overpassAPIBase = "https://overpass-api.de/api/interpreter"

// historicTagDescriptions normalizes the OSM historic tag vocabulary to
// display descriptions. Untabulated values fall back to "Historic <tag>".
var historicTagDescriptions = map[string]string{
	"archaeological_site": "Archaeological excavation site",
	"castle":              "Historic castle or fortress",
	"church":              "Historic church or religious building",
	"monument":            "Historical monument",
	"ruins":               "Ancient ruins",
	"cemetery":            "Historic cemetery",
	"battlefield":         "Historical battlefield",
	"fort":                "Military fortification",
	"building":            "Historic building",
}

// OverpassClient queries OpenStreetMap for tagged historic, museum, and
// cemetery nodes within a radius. Second stage of the heritage chain.
type OverpassClient struct {
	Client *http.Client
}

// Name returns the client identifier.
func (c *OverpassClient) Name() string { return "overpass" }

// Fetch runs the structured map-data query around the center.
func (c *OverpassClient) Fetch(ctx context.Context, center types.Coordinate, cfg types.ProviderConfig) ([]types.Feature, error) {
	query := fmt.Sprintf(`
		[out:json][timeout:25];
		(
		  node["historic"](around:50000,%[1]f,%[2]f);
		  way["historic"](around:50000,%[1]f,%[2]f);
		  node["tourism"="museum"](around:25000,%[1]f,%[2]f);
		  node["amenity"="grave_yard"](around:25000,%[1]f,%[2]f);
		);
		out geom;
	`, center.Latitude, center.Longitude)

	reqURL := overpassAPIBase + "?data=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass request: %w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overpass returned HTTP %d: %w", resp.StatusCode, ErrUnavailable)
	}

	var or overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&or); err != nil {
		return nil, fmt.Errorf("parsing overpass response: %w", ErrMalformed)
	}

	var features []types.Feature
	for _, el := range or.Elements {
		lat, lon := el.Lat, el.Lon
		if lat == 0 && lon == 0 && el.Center != nil {
			lat, lon = el.Center.Lat, el.Center.Lon
		}
		if lat == 0 && lon == 0 {
			continue
		}

		name := el.Tags.Name
		if name == "" {
			name = el.Tags.Historic
		}
		if name == "" {
			name = "Historic Site"
		}

		description := historicDescription(el.Tags)

		features = append(features, types.Feature{
			Category:    types.CategoryHeritage,
			Coordinate:  &types.Coordinate{Latitude: lat, Longitude: lon},
			Title:       name,
			Subtitle:    description,
			Source:      c.Name(),
			Description: description,
		})
	}

	if len(features) == 0 {
		return nil, fmt.Errorf("no historic elements: %w", ErrEmpty)
	}
	return features, nil
}

// historicDescription maps the element's historic tag to a display
// description via the fixed lookup table.
func historicDescription(tags overpassTags) string {
	if desc, ok := historicTagDescriptions[tags.Historic]; ok {
		return desc
	}
	if tags.Description != "" {
		return tags.Description
	}
	tag := tags.Historic
	if tag == "" {
		tag = "site"
	}
	return "Historic " + tag
}

// Overpass JSON structures.
type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type   string          `json:"type"`
	Lat    float64         `json:"lat"`
	Lon    float64         `json:"lon"`
	Center *overpassCenter `json:"center"`
	Tags   overpassTags    `json:"tags"`
}

type overpassCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type overpassTags struct {
	Name        string `json:"name"`
	Historic    string `json:"historic"`
	Tourism     string `json:"tourism"`
	Description string `json:"description"`
}
