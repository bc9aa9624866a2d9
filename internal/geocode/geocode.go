// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package geocode resolves user input to coordinates and structured
// places. ZIP codes take a dedicated path; everything else goes through
// free-text search, which is rate limited to one call per second
// process-wide. Reverse lookups turn a map click back into a place.
package geocode

import (
	"context"
	"errors"
	"regexp"

	"github.com/richmalloy/naturedash/pkg/types"
)

// ErrLocationNotFound marks input that no geocoding source could
// resolve. Callers surface it as user feedback, not a failure.
var ErrLocationNotFound = errors.New("location not found")

// Result is a resolved location.
type Result struct {
	Place      types.Place
	Coordinate types.Coordinate
}

var zipPattern = regexp.MustCompile(`^\d{5}$`)

// LooksLikeZIP reports whether the input is a bare 5-digit US ZIP code.
func LooksLikeZIP(input string) bool {
	return zipPattern.MatchString(input)
}

// Resolver routes input to the right geocoding path.
type Resolver struct {
	ZIP      *ZippopotamClient
	FreeText *NominatimClient
}

// Resolve turns user input into a place and coordinate. Bare 5-digit
// input resolves as a ZIP; everything else is free-text search.
func (r *Resolver) Resolve(ctx context.Context, input string) (Result, error) {
	if LooksLikeZIP(input) {
		return r.ZIP.Resolve(ctx, input)
	}
	return r.FreeText.Search(ctx, input)
}
