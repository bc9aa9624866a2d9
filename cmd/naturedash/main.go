// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the naturedash CLI: a
// location-centric nature dashboard that pulls earthquakes, wildlife,
// parks, fossils, heritage sites, weather, and bedrock geology for any
// US location.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/richmalloy/naturedash/internal/secrets"
	"github.com/richmalloy/naturedash/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the naturedash CLI.
var rootCmd = &cobra.Command{
	Use:   "naturedash",
	Short: "Discover nature events and features around any US location",
	Long: `naturedash resolves a city, ZIP code, or coordinate and shows what is
happening in nature around it: recent earthquakes, bird and insect
sightings, national parks, fossil discoveries, archaeological sites,
current weather, and the bedrock underfoot.

Each data category has its own provider chain with fallbacks, so one
flaky API never blanks the whole dashboard.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
			for _, k := range keys {
				if !slices.Contains(secrets.KnownKeys, k) {
					fmt.Fprintf(os.Stderr, "warning: unrecognized secret %s is never read\n", k)
				}
			}
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./naturedash.yaml or ~/.config/naturedash/config.yaml)")
}

func initConfig() {
	// .env is optional and never required to exist.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("naturedash")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "naturedash"))
		}
	}

	viper.SetEnvPrefix("NATUREDASH")
	viper.AutomaticEnv()

	viper.SetDefault("http.timeout", "15s")
	viper.SetDefault("http.user_agent", "naturedash/0.1 (github.com/richmalloy/naturedash)")
	viper.SetDefault("storage.backend", "file")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// appConfig assembles the runtime configuration from config file,
// environment, and secrets, in that order of increasing precedence for
// the API keys.
func appConfig() types.AppConfig {
	timeout, err := time.ParseDuration(viper.GetString("http.timeout"))
	if err != nil {
		timeout = 15 * time.Second
	}

	return types.AppConfig{
		Provider: types.ProviderConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   timeout,
				UserAgent: viper.GetString("http.user_agent"),
			},
			EBirdAPIKey:     secretDefault("ebird-api-key", viper.GetString("provider.ebird_api_key")),
			NPSAPIKey:       secretDefault("nps-api-key", viper.GetString("provider.nps_api_key")),
			QuakeLimit:      viper.GetInt("provider.quake_limit"),
			BirdLimit:       viper.GetInt("provider.bird_limit"),
			InsectLimit:     viper.GetInt("provider.insect_limit"),
			ParkLimit:       viper.GetInt("provider.park_limit"),
			FossilLimit:     viper.GetInt("provider.fossil_limit"),
			HeritageLimit:   viper.GetInt("provider.heritage_limit"),
			ParkRadiusMiles: viper.GetFloat64("provider.park_radius_miles"),
		},
		Storage: types.StorageConfig{
			Backend:       types.StorageBackend(viper.GetString("storage.backend")),
			Path:          viper.GetString("storage.path"),
			RedisAddr:     viper.GetString("storage.redis_addr"),
			RedisPassword: secretDefault("redis-password", viper.GetString("storage.redis_password")),
		},
		History: types.HistoryConfig{
			MaxPersonal:  viper.GetInt("history.max_personal"),
			MaxCommunity: viper.GetInt("history.max_community"),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
