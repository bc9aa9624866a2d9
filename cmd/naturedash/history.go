package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/richmalloy/naturedash/internal/history"
	"github.com/richmalloy/naturedash/internal/storage"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or manage your recent searches",
	Long: `History lists your ten most recent searches, newest first. Repeat
searches of the same place move it to the top rather than duplicating
it.`,
	RunE: runHistoryList,
}

func openHistory() (*history.Store, func(), error) {
	cfg := appConfig()
	store, err := storage.Open(cfg.Storage)
	if err != nil {
		return nil, nil, err
	}
	return history.NewStore(store, cfg.History, os.Stderr), func() { store.Close() }, nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, closeStore, err := openHistory()
	if err != nil {
		return err
	}
	defer closeStore()

	searches := store.Personal()
	if len(searches) == 0 {
		fmt.Println("No recent searches yet.")
		return nil
	}
	for _, record := range searches {
		fmt.Printf("%s (%s)\n", record.DisplayName, history.TimeAgo(record.Timestamp, time.Now()))
	}
	return nil
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Erase your personal search history",
	Long: `Clear erases your personal search list. Community activity is shared
and is left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		confirmed, _ := cmd.Flags().GetBool("yes")
		if !confirmed {
			return fmt.Errorf("pass --yes to confirm clearing your search history")
		}
		store, closeStore, err := openHistory()
		if err != nil {
			return err
		}
		defer closeStore()
		store.Clear()
		fmt.Println("Search history cleared.")
		return nil
	},
}

var communityCmd = &cobra.Command{
	Use:   "community",
	Short: "Show community nature inspirations",
	Long: `Community shows curated locations with great nature data that other
explorers have been visiting.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return history.RenderFeed(os.Stdout)
	},
}

func init() {
	historyClearCmd.Flags().Bool("yes", false, "confirm clearing without prompting")

	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(communityCmd)
}
