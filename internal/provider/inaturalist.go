// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/richmalloy/naturedash/pkg/types"
)

// inatAPIBase is the iNaturalist observations endpoint. Declared as a
// var so tests can substitute an httptest server.
var inatAPIBase = "https://api.inaturalist.org/v1/observations"

// insectTaxonID is the iNaturalist taxon for class Insecta.
const insectTaxonID = "47158"

// INaturalistClient fetches research-grade insect observations near a
// point from the iNaturalist community.
type INaturalistClient struct {
	Client *http.Client
}

// Name returns the client identifier.
func (c *INaturalistClient) Name() string { return "inaturalist" }

// Fetch queries iNaturalist for recent insect observations around the center.
func (c *INaturalistClient) Fetch(ctx context.Context, center types.Coordinate, cfg types.ProviderConfig) ([]types.Feature, error) {
	perPage := cfg.InsectLimit
	if perPage <= 0 {
		perPage = 4
	}

	params := url.Values{
		"lat":           {fmt.Sprintf("%f", center.Latitude)},
		"lng":           {fmt.Sprintf("%f", center.Longitude)},
		"radius":        {"15"},
		"taxon_id":      {insectTaxonID},
		"per_page":      {fmt.Sprintf("%d", perPage)},
		"quality_grade": {"research,needs_id"},
		"order":         {"desc"},
		"order_by":      {"created_at"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, inatAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inaturalist request: %w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inaturalist returned HTTP %d: %w", resp.StatusCode, ErrUnavailable)
	}

	var ir inatResponse
	if err := json.NewDecoder(resp.Body).Decode(&ir); err != nil {
		return nil, fmt.Errorf("parsing inaturalist response: %w", ErrMalformed)
	}

	if len(ir.Results) == 0 {
		return nil, fmt.Errorf("no recent insect observations: %w", ErrEmpty)
	}

	var features []types.Feature
	for _, obs := range ir.Results {
		common := obs.Taxon.PreferredCommonName
		if common == "" {
			common = obs.Taxon.Name
		}
		if common == "" {
			common = "Unknown species"
		}

		observer := obs.User.Name
		if observer == "" {
			observer = obs.User.Login
		}
		if observer == "" {
			observer = "Anonymous"
		}

		f := types.Feature{
			Category: types.CategoryInsects,
			Title:    common,
			Source:   c.Name(),
			Species:  obs.Taxon.Name,
			Observer: observer,
		}

		// GeoJSON order is [lon, lat].
		if len(obs.Geojson.Coordinates) >= 2 {
			f.Coordinate = &types.Coordinate{
				Latitude:  obs.Geojson.Coordinates[1],
				Longitude: obs.Geojson.Coordinates[0],
			}
		}

		when := obs.ObservedOn
		if when == "" {
			when = obs.CreatedAt
		}
		dateText := when
		for _, layout := range []string{"2006-01-02", time.RFC3339} {
			if t, parseErr := time.Parse(layout, when); parseErr == nil {
				f.ObservedAt = t
				dateText = t.Format("Jan 2, 2006")
				break
			}
		}
		f.Subtitle = fmt.Sprintf("Observed: %s by %s", dateText, observer)

		features = append(features, f)
	}
	return features, nil
}

// iNaturalist API JSON structures.
type inatResponse struct {
	Results []inatObservation `json:"results"`
}

type inatObservation struct {
	ObservedOn string `json:"observed_on"`
	CreatedAt  string `json:"created_at"`
	Taxon      struct {
		Name                string `json:"name"`
		PreferredCommonName string `json:"preferred_common_name"`
	} `json:"taxon"`
	User struct {
		Name  string `json:"name"`
		Login string `json:"login"`
	} `json:"user"`
	Geojson struct {
		Coordinates []float64 `json:"coordinates"`
	} `json:"geojson"`
}
