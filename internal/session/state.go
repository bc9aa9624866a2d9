// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session orchestrates one exploration: resolve the input to a
// place, rebuild the map, fan the category resolvers out, and fold
// their outcomes into the feature state that drives the summary
// sentence.
package session

import (
	"strconv"
	"strings"
	"sync"

	"github.com/richmalloy/naturedash/pkg/types"
)

// emptySummary is shown before any category has data.
const emptySummary = "🔍 Select your location to reveal nearby events and features on this interactive map."

// FeatureState tracks which categories currently have data. It is
// reset at the start of every resolution and updated by exactly one
// resolver per category; the summary is re-rendered after every update
// so partial progress shows while other categories are still loading.
type FeatureState struct {
	mu       sync.Mutex
	statuses map[types.Category]types.CategoryStatus
}

// NewFeatureState returns an empty state.
func NewFeatureState() *FeatureState {
	return &FeatureState{statuses: make(map[types.Category]types.CategoryStatus)}
}

// Reset zeroes every category status.
func (s *FeatureState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses = make(map[types.Category]types.CategoryStatus)
}

// Update records one category's outcome.
func (s *FeatureState) Update(category types.Category, status types.CategoryStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[category] = status
}

// Status returns the current status for a category.
func (s *FeatureState) Status(category types.Category) types.CategoryStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statuses[category]
}

// Summary builds the one-sentence map description for the given place
// label. Found categories render as "emoji [count ]name" in the fixed
// category order, joined with commas and a final "and". Weather carries
// no count. With nothing found the prompt line is returned instead.
func (s *FeatureState) Summary(label string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var parts []string
	for _, category := range types.SummaryCategories {
		status := s.statuses[category]
		if !status.Found {
			continue
		}
		part := category.Emoji() + " "
		if status.Count > 0 && category != types.CategoryWeather {
			part += strconv.Itoa(status.Count) + " "
		}
		parts = append(parts, part+string(category))
	}

	if len(parts) == 0 {
		return emptySummary
	}

	return "🗺️ Your map is now showing: " + joinWithAnd(parts) + " around " + label + "!"
}

func joinWithAnd(parts []string) string {
	if len(parts) == 1 {
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + ", and " + parts[len(parts)-1]
}
