// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"fmt"
	"strings"

	"github.com/richmalloy/naturedash/pkg/types"
)

// Confirmation builds the two-line location greeting. Weather is
// optional; when the weather resolver has not finished yet the second
// line renders without conditions and is re-rendered once it arrives.
// Unknown locations get no confirmation at all.
func Confirmation(label string, weather *types.WeatherSnapshot) string {
	if label == "" || label == types.UnknownLocationLabel {
		return ""
	}

	emoji := LocationEmoji(label)
	heading := fmt.Sprintf("%s Today you're in %s %s", emoji, label, emoji)

	description := "Here are some amazing things to do outside!"
	if weather != nil {
		description = fmt.Sprintf("It's %s°F and %s. %s",
			weather.TempF, strings.ToLower(weather.Description), description)
	}

	return heading + "\n" + description
}
