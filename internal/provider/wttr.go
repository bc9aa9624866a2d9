// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/richmalloy/naturedash/pkg/types"
)

// wttrAPIBase is the weather endpoint. Declared as a var so tests can
// substitute an httptest server.
var wttrAPIBase = "https://wttr.in"

// WttrClient fetches current conditions at the query point. The weather
// feature has no point geometry of its own; it describes the center.
type WttrClient struct {
	Client *http.Client
}

// Name returns the client identifier.
func (c *WttrClient) Name() string { return "wttr" }

// Fetch queries the j1 JSON format and normalizes the first
// current-condition block.
func (c *WttrClient) Fetch(ctx context.Context, center types.Coordinate, cfg types.ProviderConfig) ([]types.Feature, error) {
	url := fmt.Sprintf("%s/%f,%f?format=j1", wttrAPIBase, center.Latitude, center.Longitude)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wttr request: %w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wttr returned HTTP %d: %w", resp.StatusCode, ErrUnavailable)
	}

	var report wttrReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("parsing wttr response: %w", ErrMalformed)
	}

	// Current conditions are embedded one level deep.
	if len(report.CurrentCondition) == 0 {
		return nil, fmt.Errorf("no current conditions: %w", ErrEmpty)
	}
	current := report.CurrentCondition[0]

	description := ""
	if len(current.WeatherDesc) > 0 {
		description = current.WeatherDesc[0].Value
	}

	snapshot := &types.WeatherSnapshot{
		TempF:       current.TempF,
		FeelsLikeF:  current.FeelsLikeF,
		WindMPH:     current.WindspeedMiles,
		Description: description,
	}

	return []types.Feature{{
		Category: types.CategoryWeather,
		Title:    description,
		Subtitle: fmt.Sprintf("%s°F (feels like %s°F), wind %s mph", snapshot.TempF, snapshot.FeelsLikeF, snapshot.WindMPH),
		Source:   c.Name(),
		Weather:  snapshot,
	}}, nil
}

// wttr.in j1 JSON structures.
type wttrReport struct {
	CurrentCondition []wttrCondition `json:"current_condition"`
}

type wttrCondition struct {
	TempF          string          `json:"temp_F"`
	FeelsLikeF     string          `json:"FeelsLikeF"`
	WindspeedMiles string          `json:"windspeedMiles"`
	WeatherDesc    []wttrValueNode `json:"weatherDesc"`
}

type wttrValueNode struct {
	Value string `json:"value"`
}
