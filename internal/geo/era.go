// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package geo

import "strconv"

// UnknownEra is returned when the age is missing or not numeric.
const UnknownEra = "Unknown time period"

// eraBucket maps a minimum age in millions of years to a caption. The
// buckets are ordered oldest first; the first match from the top wins.
var eraBuckets = []struct {
	minMa   float64
	caption string
}{
	{2500, "from the Archean — Earth was still cooling"},
	{541, "from the Precambrian — life was microbial"},
	{250, "before the dinosaurs"},
	{66, "during the Age of Dinosaurs"},
	{2.6, "from the Age of Mammals"},
}

// EraCaption buckets an age in millions of years (Ma) into a geologic
// era caption. Ages at or below the youngest bucket fall through to the
// Ice Age caption.
func EraCaption(ageMa float64) string {
	for _, b := range eraBuckets {
		if ageMa > b.minMa {
			return b.caption
		}
	}
	return "from the Ice Age and beyond"
}

// EraCaptionString parses a raw age value before bucketing; providers
// report age as either a number or a free-form string. Non-numeric input
// yields UnknownEra.
func EraCaptionString(age string) string {
	if age == "" {
		return UnknownEra
	}
	ageMa, err := strconv.ParseFloat(age, 64)
	if err != nil {
		return UnknownEra
	}
	return EraCaption(ageMa)
}
