// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/richmalloy/naturedash/pkg/types"
)

// usgsAPIBase is the USGS earthquake catalog endpoint. Declared as a var
// so tests can substitute an httptest server.
var usgsAPIBase = "https://earthquake.usgs.gov/fdsnws/event/1/query"

const quakeRadiusKm = 200

// USGSClient fetches recent earthquakes near a point.
type USGSClient struct {
	Client *http.Client
}

// Name returns the client identifier.
func (c *USGSClient) Name() string { return "usgs" }

// Fetch queries the USGS event catalog for the most recent quakes within
// 200 km of the center.
func (c *USGSClient) Fetch(ctx context.Context, center types.Coordinate, cfg types.ProviderConfig) ([]types.Feature, error) {
	limit := cfg.QuakeLimit
	if limit <= 0 {
		limit = 3
	}

	url := fmt.Sprintf("%s?format=geojson&latitude=%f&longitude=%f&maxradiuskm=%d&orderby=time&limit=%d",
		usgsAPIBase, center.Latitude, center.Longitude, quakeRadiusKm, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("usgs request: %w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("usgs returned HTTP %d: %w", resp.StatusCode, ErrUnavailable)
	}

	var collection quakeCollection
	if err := json.NewDecoder(resp.Body).Decode(&collection); err != nil {
		return nil, fmt.Errorf("parsing usgs response: %w", ErrMalformed)
	}

	if len(collection.Features) == 0 {
		return nil, fmt.Errorf("no recent earthquakes: %w", ErrEmpty)
	}

	var features []types.Feature
	for _, f := range collection.Features {
		// GeoJSON order is [lon, lat, depth].
		if len(f.Geometry.Coordinates) < 2 {
			continue
		}
		when := time.UnixMilli(f.Properties.Time)
		features = append(features, types.Feature{
			Category: types.CategoryQuakes,
			Coordinate: &types.Coordinate{
				Latitude:  f.Geometry.Coordinates[1],
				Longitude: f.Geometry.Coordinates[0],
			},
			Title:      fmt.Sprintf("M %.1f Earthquake", f.Properties.Mag),
			Subtitle:   fmt.Sprintf("%s — %s", f.Properties.Place, when.Format("Jan 2, 2006 3:04 PM")),
			Source:     c.Name(),
			Magnitude:  f.Properties.Mag,
			ObservedAt: when,
		})
	}
	if len(features) == 0 {
		return nil, fmt.Errorf("no locatable earthquakes: %w", ErrEmpty)
	}
	return features, nil
}

// USGS GeoJSON structures.
type quakeCollection struct {
	Features []quakeFeature `json:"features"`
}

type quakeFeature struct {
	Properties struct {
		Mag   float64 `json:"mag"`
		Place string  `json:"place"`
		Time  int64   `json:"time"`
	} `json:"properties"`
	Geometry struct {
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
}
