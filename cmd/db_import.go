package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tannerpowell/catch/internal/utils"
	"github.com/tannerpowell/catch/pkg/menu"
	"github.com/tannerpowell/catch/pkg/revel"
	"github.com/tannerpowell/catch/pkg/storage"
)

// dbImportCmd loads persisted store JSON into the sqlite index.
var dbImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import scraped JSON documents into the index",
	Long: `Loads each selected store's persisted JSON into the sqlite index and
reports what changed since the last import (items added, updated, removed).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		include, exclude, outdir := selection()
		dbPath := indexPath()

		stores := revel.Select(revel.Stores(), include, exclude)
		if len(stores) == 0 {
			utils.Log.Error("No stores matched the selection. Use --store with a slug or store id.")
			os.Exit(1)
		}

		db, err := storage.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

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

			entries := storage.EntriesFromResult(store.Slug, result)
			changes, err := db.UpsertStoreItems(context.Background(), store.Slug, entries)
			if err != nil {
				utils.Log.Error("Import ", store.Slug, ": ", err)
				continue
			}

			added, updated, removed := 0, 0, 0
			for _, c := range changes {
				switch c.ChangeType {
				case "added":
					added++
				case "updated":
					updated++
				case "removed":
					removed++
				}
			}
			utils.Log.Info(store.Slug, ": ", len(entries), " items (", added, " added, ", updated, " updated, ", removed, " removed)")
		}
		return nil
	},
}

func init() {
	dbCmd.AddCommand(dbImportCmd)
}
