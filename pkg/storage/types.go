package storage

import (
	"strconv"
	"strings"
	"time"

	"github.com/tannerpowell/catch/pkg/menu"
)

// Entry is one indexed menu item, keyed by (store, category, item id).
type Entry struct {
	StoreSlug string
	Category  string

	ItemID         int64
	Name           string
	Slug           string
	Description    string
	Price          *float64
	Image          string
	IsAvailable    bool
	SubcategoryIDs string // delimiter-joined, same projection as the CSV
}

// Change captures a single change event for auditing or printing.
type Change struct {
	OccurredAt time.Time

	StoreSlug  string
	Category   string
	ItemID     int64
	Name       string
	ChangeType string // added | updated | removed
}

// EntriesFromResult flattens a persisted store document into index entries.
func EntriesFromResult(storeSlug string, r *menu.Result) []Entry {
	var entries []Entry
	for _, cat := range r.Categories {
		for _, item := range cat.Items {
			ids := make([]string, 0, len(item.SubcategoryIDs))
			for _, id := range item.SubcategoryIDs {
				ids = append(ids, strconv.FormatInt(id, 10))
			}
			image := ""
			if item.Image != nil {
				image = *item.Image
			}
			entries = append(entries, Entry{
				StoreSlug:      storeSlug,
				Category:       cat.Name,
				ItemID:         item.ID,
				Name:           item.Name,
				Slug:           item.Slug,
				Description:    item.Description,
				Price:          item.Price,
				Image:          image,
				IsAvailable:    item.IsAvailable,
				SubcategoryIDs: strings.Join(ids, menu.SubcategoryDelimiter),
			})
		}
	}
	return entries
}
