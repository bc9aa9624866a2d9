// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/richmalloy/naturedash/pkg/types"
)

// wikipediaAPIBase is the encyclopedia nearby-pages endpoint. Declared
// as a var so tests can substitute an httptest server.
var wikipediaAPIBase = "https://en.wikipedia.org/api/rest_v1/page/nearby"

// heritageKeywords is the fixed vocabulary that qualifies a nearby page
// as a historical or archaeological site. A page matches when its title
// or description contains any keyword.
var heritageKeywords = []string{
	"archaeological", "historic", "monument", "ruins", "cemetery",
	"battlefield", "fort", "pueblo", "mound", "site", "park", "museum",
}

// WikipediaClient fetches nearby encyclopedia pages and keeps the ones
// that look like historical sites. First stage of the heritage chain.
type WikipediaClient struct {
	Client *http.Client
}

// Name returns the client identifier.
func (c *WikipediaClient) Name() string { return "wikipedia" }

// Fetch queries nearby pages within 50 km and filters by the heritage
// vocabulary.
func (c *WikipediaClient) Fetch(ctx context.Context, center types.Coordinate, cfg types.ProviderConfig) ([]types.Feature, error) {
	url := fmt.Sprintf("%s?lat=%f&lng=%f&radius=50000&limit=10",
		wikipediaAPIBase, center.Latitude, center.Longitude)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wikipedia request: %w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wikipedia returned HTTP %d: %w", resp.StatusCode, ErrUnavailable)
	}

	var nearby wikiNearby
	if err := json.NewDecoder(resp.Body).Decode(&nearby); err != nil {
		return nil, fmt.Errorf("parsing wikipedia response: %w", ErrMalformed)
	}

	var features []types.Feature
	for _, page := range nearby.Pages {
		if !matchesHeritageVocabulary(page.Title, page.Description) {
			continue
		}
		f := types.Feature{
			Category:    types.CategoryHeritage,
			Title:       page.Title,
			Subtitle:    page.Description,
			Source:      c.Name(),
			Description: page.Description,
		}
		if page.Lat != 0 || page.Lon != 0 {
			f.Coordinate = &types.Coordinate{Latitude: page.Lat, Longitude: page.Lon}
		}
		features = append(features, f)
	}

	if len(features) == 0 {
		return nil, fmt.Errorf("no keyword-matching pages: %w", ErrEmpty)
	}
	return features, nil
}

// matchesHeritageVocabulary reports whether a page title or description
// contains any heritage keyword.
func matchesHeritageVocabulary(title, description string) bool {
	title = strings.ToLower(title)
	description = strings.ToLower(description)
	for _, kw := range heritageKeywords {
		if strings.Contains(title, kw) || (description != "" && strings.Contains(description, kw)) {
			return true
		}
	}
	return false
}

// Wikipedia nearby JSON structures.
type wikiNearby struct {
	Pages []wikiPage `json:"pages"`
}

type wikiPage struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}
