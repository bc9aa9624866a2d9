// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/richmalloy/naturedash/pkg/types"
)

// zippopotamAPIBase is the ZIP lookup endpoint. Tests substitute a
// local server.
var zippopotamAPIBase = "https://api.zippopotam.us/us"

// ZippopotamClient resolves US ZIP codes.
type ZippopotamClient struct {
	Client *http.Client
	Config types.HTTPConfig
}

type zippopotamResponse struct {
	PostCode string `json:"post code"`
	Country  string `json:"country"`
	Places   []struct {
		PlaceName string `json:"place name"`
		State     string `json:"state"`
		StateAbbr string `json:"state abbreviation"`
		Latitude  string `json:"latitude"`
		Longitude string `json:"longitude"`
	} `json:"places"`
}

// Resolve looks up a 5-digit ZIP. The label is "City, ST ZIP".
func (c *ZippopotamClient) Resolve(ctx context.Context, zip string) (Result, error) {
	url := fmt.Sprintf("%s/%s", zippopotamAPIBase, zip)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Result{}, fmt.Errorf("building ZIP request: %w", err)
	}
	req.Header.Set("User-Agent", c.Config.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("ZIP lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Result{}, fmt.Errorf("ZIP %s: %w", zip, ErrLocationNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("ZIP lookup returned status %d", resp.StatusCode)
	}

	var parsed zippopotamResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Result{}, fmt.Errorf("decoding ZIP response: %w", err)
	}
	if len(parsed.Places) == 0 {
		return Result{}, fmt.Errorf("ZIP %s: %w", zip, ErrLocationNotFound)
	}

	place := parsed.Places[0]
	lat, err := strconv.ParseFloat(place.Latitude, 64)
	if err != nil {
		return Result{}, fmt.Errorf("parsing ZIP latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(place.Longitude, 64)
	if err != nil {
		return Result{}, fmt.Errorf("parsing ZIP longitude: %w", err)
	}

	return Result{
		Place: types.Place{
			City: place.PlaceName,
			// The abbreviation, not the full state name; history
			// records key on it.
			State:    place.StateAbbr,
			Country:  "United States",
			Postcode: parsed.PostCode,
			Label:    fmt.Sprintf("%s, %s %s", place.PlaceName, place.StateAbbr, parsed.PostCode),
		},
		Coordinate: types.Coordinate{Latitude: lat, Longitude: lng},
	}, nil
}
