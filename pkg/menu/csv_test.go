package menu

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func sampleResult() *Result {
	price := 12.99
	image := "https://cdn.example.com/catfish.png"
	return &Result{
		FetchedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		StoreID:   5,
		Store:     "Post Oak",
		URL:       "https://conroe.revelup.online/store/5",
		Categories: []Category{
			{
				CategoryID: 336,
				Name:       "Seafood",
				Items: []Item{
					{ID: 1, Name: "Fried Catfish", Slug: "fried-catfish", Price: &price, Image: &image, IsAvailable: true, SubcategoryIDs: []int64{481, 483}},
					{ID: 2, Name: "Gumbo", Slug: "gumbo", IsAvailable: false, SubcategoryIDs: []int64{}},
				},
			},
			{
				CategoryID: 337,
				Name:       "Drinks",
				Items: []Item{
					{ID: 3, Name: "Sweet Tea", Slug: "sweet-tea", IsAvailable: true, SubcategoryIDs: []int64{490}},
				},
			},
		},
	}
}

func TestResultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store", "store.json")
	want := sampleResult()

	if err := WriteResult(path, want); err != nil {
		t.Fatalf("WriteResult: %v", err)
	}
	got, err := ReadResult(path)
	if err != nil {
		t.Fatalf("ReadResult: %v", err)
	}

	if got.Store != want.Store || got.StoreID != want.StoreID {
		t.Fatalf("store fields lost: %+v", got)
	}
	if len(got.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(got.Categories))
	}
	item := got.Categories[0].Items[0]
	if item.Price == nil || *item.Price != 12.99 {
		t.Fatalf("price lost: %+v", item)
	}
	if got.Categories[0].Items[1].Price != nil {
		t.Fatal("nil price should stay nil")
	}
}

func TestWriteCSV(t *testing.T) {
	result := sampleResult()
	path := filepath.Join(t.TempDir(), "store.csv")

	if err := WriteCSV(path, result.Categories); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}

	// Header plus one row per item across all categories.
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if rows[0][0] != "category" || rows[0][6] != "subcategoryIds" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][6] != "481;483" {
		t.Fatalf("expected semicolon-joined subcategory ids, got %q", rows[1][6])
	}
	if rows[2][3] != "" || rows[2][5] != "false" {
		t.Fatalf("expected empty price and false availability, got %v", rows[2])
	}
	if rows[3][0] != "Drinks" {
		t.Fatalf("expected second category rows last, got %v", rows[3])
	}
}
