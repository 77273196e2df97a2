package revel

import (
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/tannerpowell/catch/internal/utils"
	"github.com/tannerpowell/catch/pkg/menu"
)

// DownloadImages fetches every item image into dir, one at a time. Items
// without an image and files that already exist are skipped; individual
// download failures are logged and skipped, never fatal.
func DownloadImages(client *Client, items []menu.Item, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, item := range items {
		if item.Image == nil || *item.Image == "" {
			continue
		}
		imageURL := *item.Image

		ext := ".jpg"
		if u, err := url.Parse(imageURL); err == nil {
			if e := path.Ext(u.Path); e != "" {
				ext = e
			}
		}
		dest := filepath.Join(dir, menu.Slugify(item.Name)+ext)
		if _, err := os.Stat(dest); err == nil {
			continue
		}

		body, err := client.FetchBytes(imageURL)
		if err != nil {
			utils.Log.Warn("Skipping image ", imageURL, ": ", err)
			continue
		}
		if err := os.WriteFile(dest, body, 0o644); err != nil {
			utils.Log.Warn("Failed to write ", dest, ": ", err)
		}
	}
	return nil
}
