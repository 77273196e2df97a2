package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tannerpowell/catch/pkg/storage"
)

// dbItemsCmd lists indexed menu items.
var dbItemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List indexed menu items",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := indexPath()
		storeSlug, _ := cmd.Flags().GetString("store-slug")
		availableOnly, _ := cmd.Flags().GetBool("available-only")

		if _, err := os.Stat(dbPath); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("index not found: %s (run `catch-menus db import` first)", dbPath)
			}
			return err
		}

		db, err := storage.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		entries, err := db.ListItems(context.Background(), storage.ListOptions{
			StoreSlug:     storeSlug,
			AvailableOnly: availableOnly,
		})
		if err != nil {
			return err
		}

		for _, e := range entries {
			price := "-"
			if e.Price != nil {
				price = strconv.FormatFloat(*e.Price, 'f', 2, 64)
			}
			available := "unavailable"
			if e.IsAvailable {
				available = "available"
			}
			fmt.Printf("%s\t%s\t%s\t%s\t%s\n", e.StoreSlug, e.Category, e.Name, price, available)
		}
		return nil
	},
}

func init() {
	dbCmd.AddCommand(dbItemsCmd)

	dbItemsCmd.Flags().String("store-slug", "", "Only list items for this store slug")
	dbItemsCmd.Flags().Bool("available-only", false, "Only list items currently available")
}
