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

// macrostratAPIBase is the bedrock map-identify endpoint. Declared as a
// var so tests can substitute an httptest server.
var macrostratAPIBase = "https://macrostrat.org/api/v2/maps/identify"

// MacrostratClient identifies the bedrock unit under the query point.
// Only the first unit of the response is used.
type MacrostratClient struct {
	Client *http.Client
}

// Name returns the client identifier.
func (c *MacrostratClient) Name() string { return "macrostrat" }

// Fetch identifies the map unit at the center. Note the endpoint takes
// x=longitude, y=latitude.
func (c *MacrostratClient) Fetch(ctx context.Context, center types.Coordinate, cfg types.ProviderConfig) ([]types.Feature, error) {
	url := fmt.Sprintf("%s?x=%f&y=%f", macrostratAPIBase, center.Longitude, center.Latitude)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("macrostrat request: %w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("macrostrat returned HTTP %d: %w", resp.StatusCode, ErrUnavailable)
	}

	var identify macrostratIdentify
	if err := json.NewDecoder(resp.Body).Decode(&identify); err != nil {
		return nil, fmt.Errorf("parsing macrostrat response: %w", ErrMalformed)
	}

	if !identify.Success || len(identify.Data.Units) == 0 {
		return nil, fmt.Errorf("no map unit at point: %w", ErrEmpty)
	}
	unit := identify.Data.Units[0]

	formation := unit.StratName
	if formation == "" {
		formation = "Unnamed formation"
	}

	rock := unit.Lith
	if rock == "" {
		rock = unit.LithClass
	}
	if rock == "" {
		rock = "rock"
	}

	ageDisplay := unit.ageString()
	if ageDisplay == "" {
		ageDisplay = "Unknown"
	}

	bedrock := &types.BedrockUnit{
		Formation:  formation,
		AgeDisplay: ageDisplay + " Ma",
		Era:        geo.EraCaptionString(unit.ageString()),
		RockType:   rock,
		Detail:     unit.Descr,
	}

	return []types.Feature{{
		Category: types.CategoryBedrock,
		Title:    formation,
		Subtitle: fmt.Sprintf("Formed %s", bedrock.Era),
		Source:   c.Name(),
		Bedrock:  bedrock,
	}}, nil
}

// Macrostrat identify JSON structures. The age field is loosely typed
// upstream: sometimes a number of Ma, sometimes an interval name.
type macrostratIdentify struct {
	Success bool           `json:"success"`
	Data    macrostratData `json:"data"`
}

type macrostratData struct {
	Units []macrostratUnit `json:"units"`
}

type macrostratUnit struct {
	StratName string `json:"strat_name"`
	Age       any    `json:"age"`
	Lith      string `json:"lith"`
	LithClass string `json:"lith_class"`
	Descr     string `json:"descr"`
}

// ageString renders the loosely typed age as a string for display and
// era bucketing.
func (u macrostratUnit) ageString() string {
	switch v := u.Age.(type) {
	case string:
		return v
	case float64:
		// Trim float noise from JSON numbers.
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	default:
		return ""
	}
}
