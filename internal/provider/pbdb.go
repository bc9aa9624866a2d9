// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/richmalloy/naturedash/internal/geo"
	"github.com/richmalloy/naturedash/pkg/types"
)

// pbdbAPIBase is the Paleobiology Database occurrence endpoint. Declared
// as a var so tests can substitute an httptest server.
var pbdbAPIBase = "https://paleobiodb.org/data1.2/occs/list.json"

// fossilBoxDegrees approximates a 600-mile search radius at
// mid-latitudes. The query is a bounding box, not a true radius.
const fossilBoxDegrees = 9

// PBDBClient fetches fossil occurrences near a point from the
// Paleobiology Database.
type PBDBClient struct {
	Client *http.Client
}

// Name returns the client identifier.
func (c *PBDBClient) Name() string { return "pbdb" }

// Fetch queries the occurrence list inside a ±9° box around the center.
func (c *PBDBClient) Fetch(ctx context.Context, center types.Coordinate, cfg types.ProviderConfig) ([]types.Feature, error) {
	box := geo.BoxAround(center, fossilBoxDegrees)

	url := fmt.Sprintf("%s?latmin=%f&latmax=%f&lngmin=%f&lngmax=%f&show=coords,time,class&limit=20",
		pbdbAPIBase, box.MinLat, box.MaxLat, box.MinLon, box.MaxLon)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pbdb request: %w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pbdb returned HTTP %d: %w", resp.StatusCode, ErrUnavailable)
	}

	var list pbdbList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("parsing pbdb response: %w", ErrMalformed)
	}

	if len(list.Records) == 0 {
		return nil, fmt.Errorf("no fossil occurrences in box: %w", ErrEmpty)
	}

	var features []types.Feature
	for _, rec := range list.Records {
		taxon := rec.Tna
		if taxon == "" {
			taxon = rec.Idn
		}
		if taxon == "" {
			taxon = "Unknown organism"
		}

		title := taxon
		if rec.Cll != "" {
			title = fmt.Sprintf("%s (%s)", taxon, rec.Cll)
		}

		age := fossilAge(rec)

		f := types.Feature{
			Category: types.CategoryFossils,
			Title:    title,
			Subtitle: "Age: " + age,
			Source:   c.Name(),
			Species:  taxon,
			AgeRange: age,
		}
		if rec.Lat != 0 || rec.Lng != 0 {
			f.Coordinate = &types.Coordinate{Latitude: rec.Lat, Longitude: rec.Lng}
		}
		features = append(features, f)
	}
	return features, nil
}

// fossilAge renders the age as a Ma range when both numeric bounds are
// present, falls back to the categorical interval name, then to a
// sentinel.
func fossilAge(rec pbdbRecord) string {
	if rec.Eag != 0 && rec.Lag != 0 {
		return fmt.Sprintf("%.1f - %.1f Ma", rec.Eag, rec.Lag)
	}
	if rec.Oei != "" {
		return rec.Oei
	}
	return "Unknown age"
}

// Paleobiology Database compact-vocabulary JSON structures.
type pbdbList struct {
	Records []pbdbRecord `json:"records"`
}

type pbdbRecord struct {
	Tna string  `json:"tna"` // accepted taxon name
	Idn string  `json:"idn"` // identified name
	Cll string  `json:"cll"` // class
	Eag float64 `json:"eag"` // early age bound, Ma
	Lag float64 `json:"lag"` // late age bound, Ma
	Oei string  `json:"oei"` // interval name
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
