// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package geo provides great-circle distance and geologic-era helpers
// shared by the category resolvers.
package geo

import (
	"math"

	"github.com/richmalloy/naturedash/pkg/types"
)

// EarthRadiusKm is the mean Earth radius used for haversine distances.
const EarthRadiusKm = 6371.0

// KmPerMile converts statute miles to kilometers.
const KmPerMile = 1.60934

// Haversine returns the great-circle distance between two coordinates
// in kilometers.
func Haversine(a, b types.Coordinate) float64 {
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(a.Latitude*math.Pi/180)*
			math.Cos(b.Latitude*math.Pi/180)*
			math.Pow(math.Sin(dLon/2), 2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

// BoundingBox returns a ±degrees box around the center. This is an
// approximation, not a true radius; the fossil provider queries with it.
type BoundingBox struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// BoxAround returns the bounding box degrees wide on each side of center.
func BoxAround(center types.Coordinate, degrees float64) BoundingBox {
	return BoundingBox{
		MinLat: center.Latitude - degrees,
		MaxLat: center.Latitude + degrees,
		MinLon: center.Longitude - degrees,
		MaxLon: center.Longitude + degrees,
	}
}
