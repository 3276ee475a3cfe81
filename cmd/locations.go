package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/terracanopy/connectivity-cli/pkg/corestack"
)

var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "List locations with available LULC data",
	RunE:  runLocations,
}

func init() {
	rootCmd.AddCommand(locationsCmd)
}

func runLocations(cmd *cobra.Command, _ []string) error {
	client := corestack.NewClient(cfg.API.Key, corestack.WithBaseURL(cfg.API.BaseURL))

	locations, err := client.Locations(cmd.Context())
	if err != nil {
		return err
	}
	if len(locations) == 0 {
		fmt.Println("no active locations")
		return nil
	}

	for _, l := range locations {
		fmt.Printf("%s / %s / %s  years=%v\n", l.State, l.District, l.Tehsil, l.Years)
	}
	return nil
}
