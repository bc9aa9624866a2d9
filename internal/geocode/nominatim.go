// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/richmalloy/naturedash/internal/httputil"
	"github.com/richmalloy/naturedash/pkg/types"
)

// nominatimAPIBase is the free-text search and reverse endpoint root.
// Tests substitute a local server.
var nominatimAPIBase = "https://nominatim.openstreetmap.org"

// searchCooldown spaces free-text searches at least one second apart,
// process-wide, per the endpoint's usage policy. A search arriving
// inside the window waits for it; it is never dropped.
var searchCooldown = httputil.NewCooldown(time.Second)

// NominatimClient performs free-text search and reverse geocoding.
type NominatimClient struct {
	Client *http.Client
	Config types.HTTPConfig
}

type nominatimHit struct {
	Lat         string           `json:"lat"`
	Lon         string           `json:"lon"`
	DisplayName string           `json:"display_name"`
	Address     nominatimAddress `json:"address"`
}

type nominatimAddress struct {
	City     string `json:"city"`
	Town     string `json:"town"`
	Village  string `json:"village"`
	Hamlet   string `json:"hamlet"`
	County   string `json:"county"`
	State    string `json:"state"`
	Country  string `json:"country"`
	Postcode string `json:"postcode"`
}

// cityName picks the most specific populated-place name present.
func (a nominatimAddress) cityName() string {
	for _, name := range []string{a.City, a.Town, a.Village, a.Hamlet, a.County} {
		if name != "" {
			return name
		}
	}
	return ""
}

// place derives the label: "city, state[ postcode]" when the
// structured address has both, otherwise the first three
// comma-separated tokens of display_name, otherwise the
// unknown-location sentinel.
func (h nominatimHit) place() types.Place {
	a := h.Address
	city := a.cityName()

	label := types.UnknownLocationLabel
	switch {
	case city != "" && a.State != "":
		label = city + ", " + a.State
		if a.Postcode != "" {
			label += " " + a.Postcode
		}
	case h.DisplayName != "":
		parts := strings.SplitN(h.DisplayName, ",", 4)
		if len(parts) > 3 {
			parts = parts[:3]
		}
		label = strings.TrimSpace(strings.Join(parts, ","))
	}

	return types.Place{
		City:     city,
		State:    a.State,
		Country:  a.Country,
		Postcode: a.Postcode,
		Label:    label,
	}
}

// Search resolves free-text input to a US place. It honors the shared
// cooldown before issuing the request.
func (c *NominatimClient) Search(ctx context.Context, query string) (Result, error) {
	if err := searchCooldown.Wait(ctx); err != nil {
		return Result{}, fmt.Errorf("waiting for search cooldown: %w", err)
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("countrycodes", "us")
	params.Set("addressdetails", "1")
	params.Set("limit", "1")
	params.Set("q", query)

	endpoint := fmt.Sprintf("%s/search?%s", nominatimAPIBase, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Result{}, fmt.Errorf("building search request: %w", err)
	}
	req.Header.Set("User-Agent", c.Config.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("free-text search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("free-text search returned status %d", resp.StatusCode)
	}

	var hits []nominatimHit
	if err := json.NewDecoder(resp.Body).Decode(&hits); err != nil {
		return Result{}, fmt.Errorf("decoding search response: %w", err)
	}
	if len(hits) == 0 {
		return Result{}, fmt.Errorf("%q: %w", query, ErrLocationNotFound)
	}

	hit := hits[0]
	lat, err := strconv.ParseFloat(hit.Lat, 64)
	if err != nil {
		return Result{}, fmt.Errorf("parsing search latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(hit.Lon, 64)
	if err != nil {
		return Result{}, fmt.Errorf("parsing search longitude: %w", err)
	}

	return Result{
		Place:      hit.place(),
		Coordinate: types.Coordinate{Latitude: lat, Longitude: lng},
	}, nil
}

// Reverse turns a coordinate back into a place. A lookup that yields no
// address still succeeds, with the unknown-location label; such places
// render normally but are never saved to history.
func (c *NominatimClient) Reverse(ctx context.Context, coord types.Coordinate) (Result, error) {
	endpoint := fmt.Sprintf("%s/reverse?format=json&lat=%f&lon=%f",
		nominatimAPIBase, coord.Latitude, coord.Longitude)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Result{}, fmt.Errorf("building reverse request: %w", err)
	}
	req.Header.Set("User-Agent", c.Config.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("reverse lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("reverse lookup returned status %d", resp.StatusCode)
	}

	var hit nominatimHit
	if err := json.NewDecoder(resp.Body).Decode(&hit); err != nil {
		return Result{}, fmt.Errorf("decoding reverse response: %w", err)
	}

	return Result{
		Place:      hit.place(),
		Coordinate: coord,
	}, nil
}
