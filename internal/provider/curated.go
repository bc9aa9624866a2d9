// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"go.yaml.in/yaml/v3"

	"github.com/richmalloy/naturedash/internal/geo"
	"github.com/richmalloy/naturedash/pkg/types"
)

//go:embed sites.yaml
var curatedSitesYAML []byte

// curatedRadiusKm is the distance filter for the static site list.
const curatedRadiusKm = 300

// CuratedSitesClient serves a static list of documented heritage sites,
// distance-filtered from the query point. Final stage of the heritage
// chain; it makes no network call.
type CuratedSitesClient struct {
	once  sync.Once
	sites []curatedSite
	err   error
}

// Name returns the client identifier.
func (c *CuratedSitesClient) Name() string { return "curated" }

// Fetch returns curated sites within 300 km of the center.
func (c *CuratedSitesClient) Fetch(_ context.Context, center types.Coordinate, _ types.ProviderConfig) ([]types.Feature, error) {
	c.once.Do(func() {
		c.err = yaml.Unmarshal(curatedSitesYAML, &c.sites)
	})
	if c.err != nil {
		return nil, fmt.Errorf("parsing curated site list: %w", ErrMalformed)
	}

	var features []types.Feature
	for _, site := range c.sites {
		coord := types.Coordinate{Latitude: site.Lat, Longitude: site.Lng}
		if geo.Haversine(center, coord) > curatedRadiusKm {
			continue
		}
		features = append(features, types.Feature{
			Category:    types.CategoryHeritage,
			Coordinate:  &coord,
			Title:       site.Name,
			Subtitle:    site.Description,
			Source:      c.Name(),
			Description: site.Description,
		})
	}

	if len(features) == 0 {
		return nil, fmt.Errorf("no curated sites within %d km: %w", curatedRadiusKm, ErrEmpty)
	}
	return features, nil
}

type curatedSite struct {
	Name        string  `yaml:"name"`
	Lat         float64 `yaml:"lat"`
	Lng         float64 `yaml:"lng"`
	Description string  `yaml:"description"`
}
