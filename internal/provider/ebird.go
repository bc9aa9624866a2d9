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

// ebirdAPIBase is the eBird recent-observations endpoint. Declared as a
// var so tests can substitute an httptest server.
var ebirdAPIBase = "https://api.ebird.org/v2/data/obs/geo/recent"

// ebirdDateLayout is the observation timestamp format ("2024-05-01 14:03").
const ebirdDateLayout = "2006-01-02 15:04"

// EBirdClient fetches recent bird sightings near a point from the eBird
// community database.
type EBirdClient struct {
	Client *http.Client
}

// Name returns the client identifier.
func (c *EBirdClient) Name() string { return "ebird" }

// Fetch queries eBird for recent observations around the center.
func (c *EBirdClient) Fetch(ctx context.Context, center types.Coordinate, cfg types.ProviderConfig) ([]types.Feature, error) {
	url := fmt.Sprintf("%s?lat=%f&lng=%f", ebirdAPIBase, center.Latitude, center.Longitude)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("X-eBirdApiToken", cfg.EBirdAPIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ebird request: %w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ebird returned HTTP %d: %w", resp.StatusCode, ErrUnavailable)
	}

	var observations []ebirdObservation
	if err := json.NewDecoder(resp.Body).Decode(&observations); err != nil {
		return nil, fmt.Errorf("parsing ebird response: %w", ErrMalformed)
	}

	if len(observations) == 0 {
		return nil, fmt.Errorf("no recent sightings: %w", ErrEmpty)
	}

	var features []types.Feature
	for _, obs := range observations {
		f := types.Feature{
			Category: types.CategoryBirds,
			Title:    obs.ComName,
			Source:   c.Name(),
			Species:  obs.SciName,
		}
		if obs.Lat != 0 || obs.Lng != 0 {
			f.Coordinate = &types.Coordinate{Latitude: obs.Lat, Longitude: obs.Lng}
		}
		if when, parseErr := time.Parse(ebirdDateLayout, obs.ObsDt); parseErr == nil {
			f.ObservedAt = when
			f.Subtitle = "Spotted: " + when.Format("Jan 2, 2006")
		} else {
			f.Subtitle = "Spotted: " + obs.ObsDt
		}
		features = append(features, f)
	}
	return features, nil
}

// eBird observation JSON structure.
type ebirdObservation struct {
	ComName string  `json:"comName"`
	SciName string  `json:"sciName"`
	ObsDt   string  `json:"obsDt"`
	HowMany int     `json:"howMany"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}
