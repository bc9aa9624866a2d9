// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model: coordinates, places,
// normalized features, category statuses, and search records.
package types

import (
	"fmt"
	"time"
)

// Coordinate is a WGS84 point. Immutable once produced by a resolver.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// String formats the coordinate as "lat,lon" with millidegree precision.
func (c Coordinate) String() string {
	return fmt.Sprintf("%.4f,%.4f", c.Latitude, c.Longitude)
}

// Place is a resolved location. Label is derived from the structured
// fields and never edited independently; the sentinel label
// "Unknown location" marks a resolution that produced a coordinate but
// no usable address.
type Place struct {
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Country  string `json:"country,omitempty"`
	Postcode string `json:"postcode,omitempty"`
	Label    string `json:"label"`
}

// UnknownLocationLabel marks a place whose address could not be derived.
// Such places still render a map but are never saved to search history.
const UnknownLocationLabel = "Unknown location"

// Category identifies one feature category. The string value is the
// name used in the map summary sentence.
type Category string

const (
	CategoryQuakes   Category = "earthquakes"
	CategoryBirds    Category = "birds"
	CategoryInsects  Category = "insects"
	CategoryParks    Category = "parks"
	CategoryFossils  Category = "fossils"
	CategoryHeritage Category = "archaeology"
	CategoryWeather  Category = "weather"
	CategoryBedrock  Category = "bedrock"
)

// SummaryCategories lists the categories that participate in the map
// summary sentence, in render order. Bedrock describes the query point
// itself and is excluded.
var SummaryCategories = []Category{
	CategoryQuakes,
	CategoryBirds,
	CategoryInsects,
	CategoryParks,
	CategoryFossils,
	CategoryHeritage,
	CategoryWeather,
}

// Emoji returns the glyph used for the category's pins and summary entry.
func (c Category) Emoji() string {
	switch c {
	case CategoryQuakes:
		return "🌋"
	case CategoryBirds:
		return "🐦"
	case CategoryInsects:
		return "🦋"
	case CategoryParks:
		return "🏞️"
	case CategoryFossils:
		return "🦴"
	case CategoryHeritage:
		return "🏺"
	case CategoryWeather:
		return "🌦️"
	case CategoryBedrock:
		return "🪨"
	default:
		return "🌲"
	}
}

// WeatherSnapshot holds current conditions at the query point.
type WeatherSnapshot struct {
	TempF       string `json:"temp_f"`
	FeelsLikeF  string `json:"feels_like_f"`
	WindMPH     string `json:"wind_mph"`
	Description string `json:"description"`
}

// BedrockUnit describes the geologic map unit under the query point.
type BedrockUnit struct {
	Formation  string `json:"formation"`
	AgeDisplay string `json:"age_display"`
	Era        string `json:"era"`
	RockType   string `json:"rock_type"`
	Detail     string `json:"detail,omitempty"`
}

// Feature is a normalized observation, site, or event. Coordinate is nil
// for categories that describe the query point itself (weather, bedrock).
// Category-specific payload fields are populated per category and empty
// otherwise.
type Feature struct {
	Category   Category    `json:"category"`
	Coordinate *Coordinate `json:"coordinate,omitempty"`
	Title      string      `json:"title"`
	Subtitle   string      `json:"subtitle,omitempty"`
	Source     string      `json:"source"`

	Magnitude   float64          `json:"magnitude,omitempty"`
	Species     string           `json:"species,omitempty"`
	Observer    string           `json:"observer,omitempty"`
	ObservedAt  time.Time        `json:"observed_at,omitempty"`
	AgeRange    string           `json:"age_range,omitempty"`
	Designation string           `json:"designation,omitempty"`
	Description string           `json:"description,omitempty"`
	URL         string           `json:"url,omitempty"`
	Weather     *WeatherSnapshot `json:"weather,omitempty"`
	Bedrock     *BedrockUnit     `json:"bedrock,omitempty"`
}

// CategoryStatus records whether a category currently has data and how
// many features are showing. Reset to the zero value at the start of
// every new location resolution.
type CategoryStatus struct {
	Found bool `json:"found"`
	Count int  `json:"count"`
}

// SearchRecord is one entry in the personal search history. The
// uniqueness key is (City, State, Country).
type SearchRecord struct {
	City        string    `json:"city"`
	State       string    `json:"state"`
	Country     string    `json:"country"`
	Timestamp   time.Time `json:"timestamp"`
	DisplayName string    `json:"displayName"`
}

// Key returns the dedup key for the record.
func (r SearchRecord) Key() string {
	return r.City + "|" + r.State + "|" + r.Country
}

// CommunityRecord is one entry in the shared community list. SessionID
// is the anonymous per-session token of the writer; ID is assigned at
// write time.
type CommunityRecord struct {
	ID          string    `json:"id"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Country     string    `json:"country"`
	Timestamp   time.Time `json:"timestamp"`
	DisplayName string    `json:"displayName"`
	SessionID   string    `json:"sessionId"`
}

// FormatDisplayName builds the human label used in history entries.
// United States entries omit the country.
func FormatDisplayName(city, state, country string) string {
	switch {
	case state != "" && country == "United States":
		return city + ", " + state
	case state != "" && country != "":
		return city + ", " + state + ", " + country
	case country != "":
		return city + ", " + country
	default:
		return city
	}
}
