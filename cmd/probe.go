package cmd

import (
	"bytes"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"

	"github.com/tannerpowell/catch/internal/utils"
	"github.com/tannerpowell/catch/pkg/revel"
)

// probeCmd represents the probe command
var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check that the selected store pages are reachable",
	Long: `Fetches each selected store's page without a browser and reports the HTTP
status and page title. Useful to spot a dead location before a full scrape.`,
	Run: func(cmd *cobra.Command, args []string) {
		include, exclude, _ := selection()
		proxy, _ := rootCmd.PersistentFlags().GetString("proxy")

		stores := revel.Select(revel.Stores(), include, exclude)
		if len(stores) == 0 {
			utils.Log.Error("No stores matched the selection. Use --store with a slug or store id.")
			os.Exit(1)
		}

		for _, store := range stores {
			client, err := revel.NewClient(store, nil, proxy)
			if err != nil {
				utils.Log.Error(store.Name, ": ", err)
				continue
			}
			client.SetUserAgent(userAgent())

			body, err := client.FetchBytes(store.URL)
			if err != nil {
				utils.Log.Error(store.Name, ": ", err)
				continue
			}

			title := ""
			if doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body)); err == nil {
				title = strings.TrimSpace(doc.Find("title").First().Text())
			}
			utils.Log.Info(store.Name, " (", store.URL, "): ok, title: ", title)
		}
	},
}

func init() {
	rootCmd.AddCommand(probeCmd)
}
