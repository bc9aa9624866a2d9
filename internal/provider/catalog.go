// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"net/http"

	"github.com/richmalloy/naturedash/pkg/types"
)

// Catalog builds the per-category fallback-chain table. Chain order
// matters for heritage: the encyclopedia source is preferred, then the
// structured map-data source, then the curated list. Each stage only
// runs when the previous one errored or came back empty.
func Catalog(client *http.Client, cfg types.ProviderConfig) []Chain {
	limit := func(configured, fallback int) int {
		if configured > 0 {
			return configured
		}
		return fallback
	}

	return []Chain{
		{
			Category:     types.CategoryQuakes,
			Clients:      []Client{&USGSClient{Client: client}},
			Limit:        limit(cfg.QuakeLimit, 3),
			EmptyMessage: "No recent earthquakes nearby.",
		},
		{
			Category:     types.CategoryBirds,
			Clients:      []Client{&EBirdClient{Client: client}},
			Limit:        limit(cfg.BirdLimit, 6),
			EmptyMessage: "No recent sightings nearby.",
		},
		{
			Category:     types.CategoryInsects,
			Clients:      []Client{&INaturalistClient{Client: client}},
			Limit:        limit(cfg.InsectLimit, 4),
			EmptyMessage: "No recent insect observations nearby.",
		},
		{
			Category:     types.CategoryParks,
			Clients:      []Client{&NPSClient{Client: client}},
			Limit:        limit(cfg.ParkLimit, 4),
			EmptyMessage: "No NPS parks found within 600 miles.",
		},
		{
			Category:     types.CategoryFossils,
			Clients:      []Client{&PBDBClient{Client: client}},
			Limit:        limit(cfg.FossilLimit, 3),
			EmptyMessage: "No fossil discoveries found within 600 miles.",
		},
		{
			Category: types.CategoryHeritage,
			Clients: []Client{
				&WikipediaClient{Client: client},
				&OverpassClient{Client: client},
				&CuratedSitesClient{},
			},
			Limit:        limit(cfg.HeritageLimit, 6),
			EmptyMessage: "No documented archaeological sites found within 300km.",
		},
		{
			Category:     types.CategoryWeather,
			Clients:      []Client{&WttrClient{Client: client}},
			EmptyMessage: "No weather data available.",
		},
		{
			Category:     types.CategoryBedrock,
			Clients:      []Client{&MacrostratClient{Client: client}},
			EmptyMessage: "We couldn't find geologic data for that location.",
		},
	}
}

// SourceBlurb names the provider community for panel headers.
func SourceBlurb(source string) string {
	switch source {
	case "usgs":
		return "from USGS monitoring"
	case "ebird":
		return "from the eBird community database"
	case "inaturalist":
		return "from the iNaturalist community"
	case "nps":
		return "from the National Park Service"
	case "pbdb":
		return "from the Paleobiology Database"
	case "wikipedia":
		return "from Wikipedia's historical database"
	case "overpass":
		return "from OpenStreetMap records"
	case "curated":
		return "from historical archives"
	default:
		return ""
	}
}
