package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/terracanopy/connectivity-cli/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded analysis runs",
	RunE:  runRuns,
}

func init() {
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, _ []string) error {
	catalog, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer func() { _ = catalog.Close() }()

	runs, err := catalog.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}

	for _, r := range runs {
		fmt.Printf("%s  %s  %s/%d  forest=%.2fha  frag=%.3f  %s\n",
			r.ID, r.CreatedAt.Format(time.RFC3339), r.Location, r.Year,
			r.Stats.TotalForestHa, r.Stats.FragmentationIndex, r.OutputDir)
	}
	return nil
}
