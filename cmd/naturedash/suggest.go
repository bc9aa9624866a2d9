package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/richmalloy/naturedash/internal/geocode"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [text]",
	Short: "Autocomplete partial location input",
	Long: `Suggest returns location candidates for partial input, at least three
characters. When the remote autocomplete service is unreachable it
falls back to a built-in list of common cities.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSuggest,
}

func runSuggest(cmd *cobra.Command, args []string) error {
	cfg := appConfig()
	suggester := &geocode.Suggester{
		Client: &http.Client{Timeout: cfg.Provider.Timeout},
		Config: cfg.Provider.HTTPConfig,
	}

	suggestions, err := suggester.Suggest(context.Background(), strings.Join(args, " "))
	if err != nil {
		return err
	}
	if len(suggestions) == 0 {
		fmt.Println("No suggestions.")
		return nil
	}
	for _, suggestion := range suggestions {
		fmt.Printf("%s (%s)\n", suggestion.Label, suggestion.Coordinate)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}
