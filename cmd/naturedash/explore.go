package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/richmalloy/naturedash/internal/geocode"
	"github.com/richmalloy/naturedash/internal/history"
	"github.com/richmalloy/naturedash/internal/provider"
	"github.com/richmalloy/naturedash/internal/render"
	"github.com/richmalloy/naturedash/internal/session"
	"github.com/richmalloy/naturedash/internal/storage"
	"github.com/richmalloy/naturedash/pkg/types"
)

var exploreCmd = &cobra.Command{
	Use:   "explore [location]",
	Short: "Explore nature around a city, ZIP code, or coordinate",
	Long: `Explore resolves the given location and loads every data category
around it. The location can be free text ("Santa Fe, NM"), a 5-digit
ZIP code, or a coordinate via --lat and --lng.

Successful searches are saved to your recent-search history unless
--no-save is given.`,
	RunE: runExplore,
}

// noSaveHistory drops every record. Used with --no-save.
type noSaveHistory struct{}

func (noSaveHistory) AddSearch(city, state, country string) {}

func runExplore(cmd *cobra.Command, args []string) error {
	lat, _ := cmd.Flags().GetFloat64("lat")
	lng, _ := cmd.Flags().GetFloat64("lng")
	asJSON, _ := cmd.Flags().GetBool("json")
	noSave, _ := cmd.Flags().GetBool("no-save")
	useCoord := cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng")

	if !useCoord && len(args) == 0 {
		return fmt.Errorf("location required: pass free text, a ZIP code, or --lat/--lng")
	}

	cfg := appConfig()
	if cmd.Flags().Changed("timeout") {
		timeout, _ := cmd.Flags().GetDuration("timeout")
		cfg.Provider.Timeout = timeout
	}
	client := &http.Client{Timeout: cfg.Provider.Timeout}

	var out io.Writer = os.Stdout
	if asJSON {
		out = io.Discard
	}

	var recorder session.HistoryRecorder = noSaveHistory{}
	if !noSave {
		store, err := storage.Open(cfg.Storage)
		if err != nil {
			return err
		}
		defer store.Close()
		recorder = history.NewStore(store, cfg.History, os.Stderr)
	}

	explorer := &session.Explorer{
		Resolver: &geocode.Resolver{
			ZIP:      &geocode.ZippopotamClient{Client: client, Config: cfg.Provider.HTTPConfig},
			FreeText: &geocode.NominatimClient{Client: client, Config: cfg.Provider.HTTPConfig},
		},
		Reverse: &geocode.NominatimClient{Client: client, Config: cfg.Provider.HTTPConfig},
		Chains:  provider.Catalog(client, cfg.Provider),
		Map:     render.NewTextMap(out),
		State:   session.NewFeatureState(),
		History: recorder,
		Config:  cfg.Provider,
		Out:     out,
	}

	ctx := context.Background()
	var err error
	if useCoord {
		err = explorer.ExploreCoordinate(ctx, types.Coordinate{Latitude: lat, Longitude: lng})
	} else {
		err = explorer.Explore(ctx, strings.Join(args, " "))
	}
	if errors.Is(err, geocode.ErrLocationNotFound) {
		return fmt.Errorf("location not found: try a city and state, or a 5-digit ZIP code")
	}
	if err != nil {
		return err
	}

	if asJSON {
		return writeOutcomesJSON(os.Stdout, explorer.Outcomes())
	}
	return nil
}

func writeOutcomesJSON(w io.Writer, outcomes []provider.Outcome) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(outcomes)
}

func init() {
	exploreCmd.Flags().Float64("lat", 0, "latitude (use with --lng)")
	exploreCmd.Flags().Float64("lng", 0, "longitude (use with --lat)")
	exploreCmd.Flags().Bool("json", false, "print resolved features as JSON instead of the dashboard text")
	exploreCmd.Flags().Bool("no-save", false, "do not record this search in history")
	exploreCmd.Flags().Duration("timeout", 15*time.Second, "HTTP request timeout")

	rootCmd.AddCommand(exploreCmd)
}
