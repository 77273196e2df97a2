package menu

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// SubcategoryDelimiter joins subcategory ids in the CSV projection.
const SubcategoryDelimiter = ";"

var csvHeader = []string{"category", "name", "description", "price", "image", "isAvailable", "subcategoryIds"}

// WriteCSV flattens categories into a CSV file with one row per item.
func WriteCSV(path string, categories []Category) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, cat := range categories {
		for _, item := range cat.Items {
			price := ""
			if item.Price != nil {
				price = strconv.FormatFloat(*item.Price, 'f', -1, 64)
			}
			image := ""
			if item.Image != nil {
				image = *item.Image
			}
			ids := make([]string, 0, len(item.SubcategoryIDs))
			for _, id := range item.SubcategoryIDs {
				ids = append(ids, strconv.FormatInt(id, 10))
			}
			row := []string{
				cat.Name,
				item.Name,
				item.Description,
				price,
				image,
				strconv.FormatBool(item.IsAvailable),
				strings.Join(ids, SubcategoryDelimiter),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}
