package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tannerpowell/catch/internal/utils"
	"github.com/tannerpowell/catch/pkg/menu"
	"github.com/tannerpowell/catch/pkg/revel"
)

// csvCmd represents the csv command
var csvCmd = &cobra.Command{
	Use:   "csv",
	Short: "Rebuild CSV projections from already-scraped JSON",
	Long: `Reads each selected store's persisted JSON document and writes the CSV
projection next to it. No scraping happens; stores without a JSON file are
skipped.`,
	Run: func(cmd *cobra.Command, args []string) {
		include, exclude, outdir := selection()

		stores := revel.Select(revel.Stores(), include, exclude)
		if len(stores) == 0 {
			utils.Log.Error("No stores matched the selection. Use --store with a slug or store id.")
			os.Exit(1)
		}

		regenerateCSV(stores, outdir)
	},
}

func regenerateCSV(stores []revel.Store, outdir string) {
	for _, store := range stores {
		jsonPath := filepath.Join(outdir, store.Slug, store.Slug+".json")
		result, err := menu.ReadResult(jsonPath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				utils.Log.Debug("No JSON for ", store.Slug, ", skipping")
				continue
			}
			utils.Log.Error("Read ", jsonPath, ": ", err)
			continue
		}

		csvPath := strings.TrimSuffix(jsonPath, ".json") + ".csv"
		if err := menu.WriteCSV(csvPath, result.Categories); err != nil {
			utils.Log.Error("Write ", csvPath, ": ", err)
			continue
		}
		utils.Log.Info("CSV saved to ", csvPath)
	}
}

func init() {
	rootCmd.AddCommand(csvCmd)
}
