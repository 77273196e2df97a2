package menu

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Subcategory is a nested category descriptor as returned by the platform.
type Subcategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Item is a single menu entry, normalized across the platform's product
// variants. Price and Image stay null when the upstream value is absent or
// unusable.
type Item struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Slug           string   `json:"slug"`
	Description    string   `json:"description"`
	Price          *float64 `json:"price"`
	Image          *string  `json:"image"`
	IsAvailable    bool     `json:"isAvailable"`
	SubcategoryIDs []int64  `json:"subcategoryIds"`
}

type Category struct {
	CategoryID    int64         `json:"categoryId"`
	Name          string        `json:"category"`
	Subcategories []Subcategory `json:"subcategories"`
	Items         []Item        `json:"items"`
}

// Result is the per-store scrape aggregate, one JSON document per store.
type Result struct {
	FetchedAt  time.Time  `json:"fetchedAt"`
	StoreID    int        `json:"storeId"`
	Store      string     `json:"store"`
	URL        string     `json:"url"`
	Categories []Category `json:"categories"`
}

// Items flattens the result into one slice across all categories.
func (r *Result) Items() []Item {
	var items []Item
	for _, cat := range r.Categories {
		items = append(items, cat.Items...)
	}
	return items
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and collapses every non-alphanumeric run into a single
// hyphen. Not guaranteed unique; collisions overwrite on disk.
func Slugify(s string) string {
	return strings.Trim(slugRe.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// WriteResult writes the result to path as pretty-printed JSON, creating
// parent directories and overwriting any previous document for the store.
func WriteResult(path string, r *Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadResult loads a previously persisted store document.
func ReadResult(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &r, nil
}
