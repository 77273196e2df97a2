package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"github.com/tannerpowell/catch/pkg/menu"
	"github.com/tannerpowell/catch/pkg/revel"
)

func TestRunStoresIsolatesFailures(t *testing.T) {
	outdir := t.TempDir()
	stores := revel.Select(revel.Stores(), []string{"store-1", "store-2"}, nil)
	if len(stores) != 2 {
		t.Fatalf("expected 2 stores, got %d", len(stores))
	}

	var processed []string
	runStores(stores, func(store revel.Store) error {
		processed = append(processed, store.Slug)
		if store.Slug == "store-1" {
			// The category-list call failing aborts the store before
			// anything is persisted.
			return fmt.Errorf("fetch categories for %s: store closed", store.Name)
		}
		path := filepath.Join(outdir, store.Slug, store.Slug+".json")
		return menu.WriteResult(path, &menu.Result{
			StoreID:    store.StoreID,
			Store:      store.Name,
			URL:        store.URL,
			Categories: []menu.Category{},
		})
	})

	if len(processed) != 2 {
		t.Fatalf("a store failure must not stop the run, processed %v", processed)
	}
	if _, err := os.Stat(filepath.Join(outdir, "store-1", "store-1.json")); err == nil {
		t.Fatal("failed store must not leave a JSON artifact")
	}
	if _, err := os.Stat(filepath.Join(outdir, "store-2", "store-2.json")); err != nil {
		t.Fatalf("surviving store's artifact missing: %v", err)
	}
}

func TestUserAgentConfigFallback(t *testing.T) {
	t.Cleanup(func() { viper.Set("useragent", "") })

	viper.Set("useragent", "")
	if got := userAgent(); got != revel.UserAgent {
		t.Fatalf("expected platform default, got %q", got)
	}

	viper.Set("useragent", "custom-agent/1.0")
	if got := userAgent(); got != "custom-agent/1.0" {
		t.Fatalf("expected config value to win, got %q", got)
	}
}

func TestHeadedSettingFlagWinsOverConfig(t *testing.T) {
	t.Cleanup(func() { viper.Set("headed", false) })

	if headedSetting(scrapeCmd) {
		t.Fatal("expected headless by default")
	}

	viper.Set("headed", true)
	if !headedSetting(scrapeCmd) {
		t.Fatal("expected config file to enable headed mode")
	}

	// An explicit flag beats the config file.
	if err := scrapeCmd.Flags().Set("headed", "false"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	if headedSetting(scrapeCmd) {
		t.Fatal("expected the flag to win over the config file")
	}
}
