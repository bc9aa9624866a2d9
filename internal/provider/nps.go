// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/richmalloy/naturedash/internal/geo"
	"github.com/richmalloy/naturedash/pkg/types"
)

// npsAPIBase is the National Park Service catalog endpoint. Declared as
// a var so tests can substitute an httptest server.
var npsAPIBase = "https://developer.nps.gov/api/v1/parks"

// npsCatalogPage is the catalog page size. The provider has no radius
// filter, so the client fetches a page and filters by distance itself.
const npsCatalogPage = 50

// NPSClient fetches the national-park catalog and filters it by
// great-circle distance from the query point.
type NPSClient struct {
	Client *http.Client
}

// Name returns the client identifier.
func (c *NPSClient) Name() string { return "nps" }

// Fetch returns catalog parks within the configured radius of the
// center. The boundary is inclusive, and the provider's own catalog
// order is kept; entries are not re-sorted by distance.
func (c *NPSClient) Fetch(ctx context.Context, center types.Coordinate, cfg types.ProviderConfig) ([]types.Feature, error) {
	radiusMiles := cfg.ParkRadiusMiles
	if radiusMiles <= 0 {
		radiusMiles = 600
	}
	radiusKm := radiusMiles * geo.KmPerMile

	url := fmt.Sprintf("%s?limit=%d&start=0&api_key=%s", npsAPIBase, npsCatalogPage, cfg.NPSAPIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nps request: %w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nps returned HTTP %d: %w", resp.StatusCode, ErrUnavailable)
	}

	var catalog npsCatalog
	if err := json.NewDecoder(resp.Body).Decode(&catalog); err != nil {
		return nil, fmt.Errorf("parsing nps response: %w", ErrMalformed)
	}

	if len(catalog.Data) == 0 {
		return nil, fmt.Errorf("empty park catalog: %w", ErrEmpty)
	}

	var features []types.Feature
	for _, park := range catalog.Data {
		// The catalog reports coordinates as strings.
		lat, latErr := strconv.ParseFloat(park.Latitude, 64)
		lon, lonErr := strconv.ParseFloat(park.Longitude, 64)
		if latErr != nil || lonErr != nil {
			continue
		}

		coord := types.Coordinate{Latitude: lat, Longitude: lon}
		if geo.Haversine(center, coord) > radiusKm {
			continue
		}

		designation := park.Designation
		if designation == "" {
			designation = "National Park Service"
		}

		features = append(features, types.Feature{
			Category:    types.CategoryParks,
			Coordinate:  &coord,
			Title:       park.FullName,
			Subtitle:    designation,
			Source:      c.Name(),
			Designation: designation,
			Description: truncateText(park.Description, 100),
			URL:         park.URL,
		})
	}

	if len(features) == 0 {
		return nil, fmt.Errorf("no parks within %.0f miles: %w", radiusMiles, ErrEmpty)
	}
	return features, nil
}

// truncateText shortens s to max runes with an ellipsis, used for park
// blurbs in panels and popups. Counting runes keeps names like
// "Pu'uhonua o Hōnaunau" from being cut mid-character.
func truncateText(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// NPS catalog JSON structures.
type npsCatalog struct {
	Data []npsPark `json:"data"`
}

type npsPark struct {
	FullName    string `json:"fullName"`
	Designation string `json:"designation"`
	Description string `json:"description"`
	Latitude    string `json:"latitude"`
	Longitude   string `json:"longitude"`
	URL         string `json:"url"`
}
