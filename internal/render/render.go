// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render draws the dashboard surface. The Map interface keeps
// the session logic independent of the output medium; the text
// implementation writes an indented pin listing suitable for a
// terminal.
package render

import (
	"fmt"
	"io"
	"math/rand"
	"sync"

	"github.com/richmalloy/naturedash/pkg/types"
)

// DefaultZoom is the zoom level every new map opens at.
const DefaultZoom = 10

// backgroundScenes are the rotating dashboard backdrops. One is picked
// at random per session.
var backgroundScenes = []string{
	"aerial-forest-landscape",
	"coastal-cliffs-ocean",
	"desert-canyon-formation",
	"earth-crust",
	"lake-mountain-reflection",
	"mountain-valley-vista",
}

// RandomBackground picks one of the rotating backdrop scenes.
func RandomBackground() string {
	return backgroundScenes[rand.Intn(len(backgroundScenes))]
}

// Map is the drawing surface for one resolved location. Init must be
// preceded by Destroy when a previous map exists; pins accumulate per
// category layer and ClearLayer drops one layer without touching the
// rest.
type Map interface {
	// Init opens a fresh map centered on the coordinate.
	Init(center types.Coordinate, zoom int)

	// Destroy tears the current map down. Safe to call when no map is
	// open.
	Destroy()

	// PlaceHere drops the "you are here" marker at the map center.
	PlaceHere(label string)

	// PlacePin drops a category pin.
	PlacePin(category types.Category, coord types.Coordinate, title string)

	// ClearLayer removes all pins of one category.
	ClearLayer(category types.Category)

	// SetBackground selects the backdrop scene.
	SetBackground(scene string)
}

// TextMap renders the map as text. All methods are safe for concurrent
// use; category resolvers place pins from their own goroutines.
type TextMap struct {
	mu     sync.Mutex
	out    io.Writer
	open   bool
	center types.Coordinate
	zoom   int
	scene  string
	pins   map[types.Category][]string
}

// NewTextMap returns a TextMap writing to out.
func NewTextMap(out io.Writer) *TextMap {
	return &TextMap{out: out}
}

func (m *TextMap) Init(center types.Coordinate, zoom int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = true
	m.center = center
	m.zoom = zoom
	m.pins = make(map[types.Category][]string)
	fmt.Fprintf(m.out, "map: centered on %s at zoom %d\n", center, zoom)
}

func (m *TextMap) Destroy() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.open {
		return
	}
	m.open = false
	m.pins = nil
}

func (m *TextMap) PlaceHere(label string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.open {
		return
	}
	fmt.Fprintf(m.out, "  📍 %s\n", label)
}

func (m *TextMap) PlacePin(category types.Category, coord types.Coordinate, title string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.open {
		return
	}
	m.pins[category] = append(m.pins[category], title)
	fmt.Fprintf(m.out, "  %s %s (%s)\n", category.Emoji(), title, coord)
}

func (m *TextMap) ClearLayer(category types.Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.open {
		return
	}
	delete(m.pins, category)
}

func (m *TextMap) SetBackground(scene string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scene = scene
	fmt.Fprintf(m.out, "  backdrop: %s\n", scene)
}

// PinCount reports how many pins a category layer holds.
func (m *TextMap) PinCount(category types.Category) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pins[category])
}
