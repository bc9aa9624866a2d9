// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	_ "embed"
	"fmt"
	"io"
	"sync"

	"go.yaml.in/yaml/v3"

	"github.com/richmalloy/naturedash/pkg/types"
)

//go:embed feed.yaml
var communityFeedYAML []byte

// FeedEntry is one curated community inspiration.
type FeedEntry struct {
	City        string `yaml:"city"`
	State       string `yaml:"state"`
	Country     string `yaml:"country"`
	Activity    string `yaml:"activity"`
	Ago         string `yaml:"ago"`
	Description string `yaml:"description"`
}

var (
	feedOnce    sync.Once
	feedEntries []FeedEntry
	feedErr     error
)

// Feed returns the curated community entries.
func Feed() ([]FeedEntry, error) {
	feedOnce.Do(func() {
		feedErr = yaml.Unmarshal(communityFeedYAML, &feedEntries)
	})
	return feedEntries, feedErr
}

// RenderFeed writes the community section. The feed intentionally shows
// curated locations with strong nature data rather than reading the
// live community list back; community writes still happen in AddSearch
// so the data is there when a real feed lands.
func RenderFeed(w io.Writer) error {
	entries, err := Feed()
	if err != nil {
		return fmt.Errorf("loading community feed: %w", err)
	}
	for _, entry := range entries {
		label := types.FormatDisplayName(entry.City, entry.State, entry.Country)
		fmt.Fprintf(w, "Someone went %s in %s (%s ago)\n  %s\n", entry.Activity, label, entry.Ago, entry.Description)
	}
	fmt.Fprintln(w, "🌲 Join fellow explorers discovering nature across America!")
	return nil
}
