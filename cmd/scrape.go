package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tannerpowell/catch/internal/utils"
	"github.com/tannerpowell/catch/pkg/menu"
	"github.com/tannerpowell/catch/pkg/revel"
	"github.com/tannerpowell/catch/pkg/session"
)

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape menus for the selected stores",
	Long: `Scrapes the full menu for every selected store: a browser pass mints
session state, then the platform's GraphQL API is queried directly. One store
failing never stops the others.`,
	Run: func(cmd *cobra.Command, args []string) {
		include, exclude, outdir := selection()
		writeCSV, _ := cmd.Flags().GetBool("csv")
		downloadImages, _ := cmd.Flags().GetBool("download-images")
		headed := headedSetting(cmd)
		proxy, _ := rootCmd.PersistentFlags().GetString("proxy")

		stores := revel.Select(revel.Stores(), include, exclude)
		if len(stores) == 0 {
			utils.Log.Error("No stores matched the selection. Use --store with a slug or store id.")
			os.Exit(1)
		}

		runStores(stores, func(store revel.Store) error {
			return scrapeStore(store, outdir, downloadImages, headed, proxy)
		})

		if writeCSV {
			// CSV is rebuilt from the persisted JSON, not in-memory state, so
			// it can also be regenerated later via the csv subcommand.
			regenerateCSV(stores, outdir)
		}
	},
}

// runStores processes each store independently: one store's failure is
// logged and never stops the remaining stores.
func runStores(stores []revel.Store, run func(revel.Store) error) {
	for _, store := range stores {
		if err := run(store); err != nil {
			utils.Log.Error(store.Name, " failed: ", err)
			continue
		}
	}
}

// headedSetting resolves the browser mode: flag wins, config file fallback.
func headedSetting(cmd *cobra.Command) bool {
	headed, _ := cmd.Flags().GetBool("headed")
	if !cmd.Flags().Changed("headed") {
		return viper.GetBool("headed")
	}
	return headed
}

// userAgent resolves the browser/HTTP user agent from the config file,
// defaulting to the platform constant.
func userAgent() string {
	if v := viper.GetString("useragent"); v != "" {
		return v
	}
	return revel.UserAgent
}

func scrapeStore(store revel.Store, outdir string, downloadImages, headed bool, proxy string) error {
	storeDir := filepath.Join(outdir, store.Slug)
	if err := os.MkdirAll(storeDir, 0o755); err != nil {
		return err
	}

	utils.Log.Info("Visiting ", store.Name, " (", store.URL, ")")
	statePath := filepath.Join(storeDir, "state.json")
	state, err := session.Bootstrap(context.Background(), store.URL, statePath, session.Options{
		Headed:    headed,
		UserAgent: userAgent(),
	})
	if err != nil {
		return fmt.Errorf("session bootstrap: %w", err)
	}

	client, err := revel.NewClient(store, state, proxy)
	if err != nil {
		return err
	}
	client.SetUserAgent(userAgent())

	result, err := revel.FetchMenu(store, client)
	if err != nil {
		return err
	}

	jsonPath := filepath.Join(storeDir, store.Slug+".json")
	if err := menu.WriteResult(jsonPath, result); err != nil {
		return fmt.Errorf("write %s: %w", jsonPath, err)
	}
	utils.Log.Info("Saved JSON to ", jsonPath)

	if downloadImages {
		if err := revel.DownloadImages(client, result.Items(), filepath.Join(storeDir, "images")); err != nil {
			utils.Log.Warn("Image downloads for ", store.Name, ": ", err)
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().BoolP("csv", "", false, "Also write a CSV projection alongside each JSON")
	scrapeCmd.Flags().BoolP("download-images", "", false, "Download item images into <outdir>/<store>/images")
	scrapeCmd.Flags().BoolP("headed", "", false, "Run the browser headed (default: headless)")
}
