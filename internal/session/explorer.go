// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/richmalloy/naturedash/internal/geocode"
	"github.com/richmalloy/naturedash/internal/provider"
	"github.com/richmalloy/naturedash/internal/render"
	"github.com/richmalloy/naturedash/pkg/types"
)

// HistoryRecorder saves successful searches. The store itself rejects
// records with a missing city or state.
type HistoryRecorder interface {
	AddSearch(city, state, country string)
}

// Explorer runs one location exploration end to end. Category chains
// run concurrently; a generation counter tags every resolution so that
// completions belonging to a superseded resolution are discarded
// instead of painting pins on the wrong map.
type Explorer struct {
	Resolver *geocode.Resolver
	Reverse  *geocode.NominatimClient
	Chains   []provider.Chain
	Map      render.Map
	State    *FeatureState
	History  HistoryRecorder
	Config   types.ProviderConfig
	Out      io.Writer

	generation atomic.Int64

	mu       sync.Mutex
	weather  *types.WeatherSnapshot
	outcomes map[types.Category]provider.Outcome
}

// Explore resolves free-text or ZIP input and explores the result.
// geocode.ErrLocationNotFound surfaces to the caller as user feedback.
func (e *Explorer) Explore(ctx context.Context, input string) error {
	result, err := e.Resolver.Resolve(ctx, input)
	if err != nil {
		return err
	}
	e.run(ctx, result)
	return nil
}

// GeolocationLabel is the generic label used when a device coordinate
// cannot be reverse-geocoded. Unlike the unknown-location sentinel it
// still renders a confirmation.
const GeolocationLabel = "Your location"

// ExploreCoordinate reverse-geocodes a point and explores it. A failed
// reverse lookup still explores, under the generic label; such
// explorations are never saved to history.
func (e *Explorer) ExploreCoordinate(ctx context.Context, coord types.Coordinate) error {
	result, err := e.Reverse.Reverse(ctx, coord)
	if err != nil {
		fmt.Fprintf(e.Out, "warning: reverse lookup failed: %v\n", err)
		result = geocode.Result{
			Place:      types.Place{Label: GeolocationLabel},
			Coordinate: coord,
		}
	}
	e.run(ctx, result)
	return nil
}

// run rebuilds the map and fans the category chains out, blocking until
// every chain belonging to this resolution completes.
func (e *Explorer) run(ctx context.Context, result geocode.Result) {
	gen := e.generation.Add(1)

	e.mu.Lock()
	e.weather = nil
	e.outcomes = make(map[types.Category]provider.Outcome)
	e.Map.Destroy()
	e.Map.Init(result.Coordinate, render.DefaultZoom)
	e.Map.SetBackground(render.RandomBackground())
	e.Map.PlaceHere(result.Place.Label)
	e.State.Reset()

	if line := Confirmation(result.Place.Label, nil); line != "" {
		fmt.Fprintln(e.Out, line)
	}
	e.mu.Unlock()

	e.History.AddSearch(result.Place.City, result.Place.State, result.Place.Country)

	var wg sync.WaitGroup
	for _, chain := range e.Chains {
		wg.Add(1)
		go func(chain provider.Chain) {
			defer wg.Done()
			outcome := chain.Run(ctx, result.Coordinate, e.Config, e.Out)
			e.apply(gen, result.Place.Label, chain, outcome)
		}(chain)
	}
	wg.Wait()
}

// apply folds one chain outcome into the session. Outcomes from a
// superseded generation are dropped.
func (e *Explorer) apply(gen int64, label string, chain provider.Chain, outcome provider.Outcome) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.generation.Load() {
		return
	}

	e.State.Update(outcome.Category, outcome.Status)
	if e.outcomes == nil {
		e.outcomes = make(map[types.Category]provider.Outcome)
	}
	e.outcomes[outcome.Category] = outcome

	if !outcome.Status.Found {
		fmt.Fprintln(e.Out, chain.EmptyMessage)
		fmt.Fprintln(e.Out, e.State.Summary(label))
		return
	}

	switch outcome.Category {
	case types.CategoryWeather:
		e.applyWeather(label, outcome)
	case types.CategoryBedrock:
		e.applyBedrock(outcome)
	default:
		e.applyPins(outcome)
	}

	fmt.Fprintln(e.Out, e.State.Summary(label))
}

func (e *Explorer) applyPins(outcome provider.Outcome) {
	fmt.Fprintf(e.Out, "📍 Found %d %s nearby %s\n",
		outcome.Status.Count, outcome.Category, provider.SourceBlurb(outcome.Source))
	for _, feature := range outcome.Features {
		line := feature.Title
		if feature.Subtitle != "" {
			line += " – " + feature.Subtitle
		}
		fmt.Fprintf(e.Out, "  %s\n", line)
		if feature.Coordinate != nil {
			e.Map.PlacePin(outcome.Category, *feature.Coordinate, feature.Title)
		}
	}
}

func (e *Explorer) applyWeather(label string, outcome provider.Outcome) {
	snapshot := outcome.Features[0].Weather
	if snapshot == nil {
		return
	}
	e.weather = snapshot
	fmt.Fprintf(e.Out, "🌦️ %s, %s°F (feels like %s°F), wind %s mph\n",
		snapshot.Description, snapshot.TempF, snapshot.FeelsLikeF, snapshot.WindMPH)
	if line := Confirmation(label, snapshot); line != "" {
		fmt.Fprintln(e.Out, line)
	}
}

func (e *Explorer) applyBedrock(outcome provider.Outcome) {
	unit := outcome.Features[0].Bedrock
	if unit == nil {
		return
	}
	fmt.Fprintf(e.Out, "🪨 %s (%s, %s) – %s\n",
		unit.Formation, unit.AgeDisplay, unit.Era, unit.RockType)
	if unit.Detail != "" {
		fmt.Fprintf(e.Out, "  %s\n", unit.Detail)
	}
}

// Weather returns the snapshot captured by the most recent resolution,
// nil while it is still loading.
func (e *Explorer) Weather() *types.WeatherSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.weather
}

// Outcomes returns the chain results of the most recent resolution in
// summary order, bedrock last.
func (e *Explorer) Outcomes() []provider.Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	order := append([]types.Category{}, types.SummaryCategories...)
	order = append(order, types.CategoryBedrock)

	outcomes := make([]provider.Outcome, 0, len(e.outcomes))
	for _, category := range order {
		if outcome, ok := e.outcomes[category]; ok {
			outcomes = append(outcomes, outcome)
		}
	}
	return outcomes
}
