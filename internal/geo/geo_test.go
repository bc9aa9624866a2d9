package geo

import (
	"math"
	"testing"

	"github.com/richmalloy/naturedash/pkg/types"
)

func TestHaversine(t *testing.T) {
	tests := []struct {
		name   string
		a, b   types.Coordinate
		wantKm float64
		tolKm  float64
	}{
		{
			name:   "same point",
			a:      types.Coordinate{Latitude: 35.687, Longitude: -105.9378},
			b:      types.Coordinate{Latitude: 35.687, Longitude: -105.9378},
			wantKm: 0,
			tolKm:  0.001,
		},
		{
			name:   "santa fe to albuquerque",
			a:      types.Coordinate{Latitude: 35.687, Longitude: -105.9378},
			b:      types.Coordinate{Latitude: 35.0844, Longitude: -106.6504},
			wantKm: 93,
			tolKm:  3,
		},
		{
			name:   "denver to seattle",
			a:      types.Coordinate{Latitude: 39.7392, Longitude: -104.9903},
			b:      types.Coordinate{Latitude: 47.6062, Longitude: -122.3321},
			wantKm: 1643,
			tolKm:  15,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Haversine(tt.a, tt.b)
			if math.Abs(got-tt.wantKm) > tt.tolKm {
				t.Errorf("Haversine = %.1f km, want %.1f ± %.1f", got, tt.wantKm, tt.tolKm)
			}
		})
	}
}

func TestHaversineSymmetric(t *testing.T) {
	a := types.Coordinate{Latitude: 40.7608, Longitude: -111.891}
	b := types.Coordinate{Latitude: 36.1699, Longitude: -115.1398}
	if d1, d2 := Haversine(a, b), Haversine(b, a); math.Abs(d1-d2) > 1e-9 {
		t.Errorf("Haversine not symmetric: %f vs %f", d1, d2)
	}
}

func TestBoxAround(t *testing.T) {
	box := BoxAround(types.Coordinate{Latitude: 35.0, Longitude: -105.0}, 9)
	if box.MinLat != 26.0 || box.MaxLat != 44.0 {
		t.Errorf("lat bounds = [%f, %f], want [26, 44]", box.MinLat, box.MaxLat)
	}
	if box.MinLon != -114.0 || box.MaxLon != -96.0 {
		t.Errorf("lng bounds = [%f, %f], want [-114, -96]", box.MinLon, box.MaxLon)
	}
}

func TestEraCaption(t *testing.T) {
	tests := []struct {
		ageMa float64
		want  string
	}{
		{3000, "from the Archean — Earth was still cooling"},
		{2500.1, "from the Archean — Earth was still cooling"},
		{700, "from the Precambrian — life was microbial"},
		{541.5, "from the Precambrian — life was microbial"},
		{300, "before the dinosaurs"},
		{150, "during the Age of Dinosaurs"},
		{66.5, "during the Age of Dinosaurs"},
		{30, "from the Age of Mammals"},
		{1, "from the Ice Age and beyond"},
		{0, "from the Ice Age and beyond"},
	}
	for _, tt := range tests {
		if got := EraCaption(tt.ageMa); got != tt.want {
			t.Errorf("EraCaption(%f) = %q, want %q", tt.ageMa, got, tt.want)
		}
	}
}

func TestEraCaptionString(t *testing.T) {
	if got := EraCaptionString("150"); got != "during the Age of Dinosaurs" {
		t.Errorf("EraCaptionString(150) = %q", got)
	}
	if got := EraCaptionString("not a number"); got != UnknownEra {
		t.Errorf("EraCaptionString(invalid) = %q, want %q", got, UnknownEra)
	}
	if got := EraCaptionString(""); got != UnknownEra {
		t.Errorf("EraCaptionString(empty) = %q, want %q", got, UnknownEra)
	}
}
