package revel

import (
	"fmt"
	"time"

	"github.com/tidwall/gjson"

	"github.com/tannerpowell/catch/internal/utils"
	"github.com/tannerpowell/catch/pkg/menu"
)

// FetchMenu pulls the full menu for one store: one category-list call, then
// one product-list call per category. A failed category list aborts the
// store; a failed product list only drops that category from the result.
func FetchMenu(store Store, client *Client) (*menu.Result, error) {
	data, err := client.ExecuteGraphQL("fetchCategoryList", map[string]any{
		"storeId":  store.StoreID,
		"menuMode": MenuMode,
	}, fetchCategoryListQuery)
	if err != nil {
		return nil, fmt.Errorf("fetch categories for %s: %w", store.Name, err)
	}

	timezone := store.Timezone
	if timezone == "" {
		timezone = DefaultTimezone
	}

	result := &menu.Result{
		FetchedAt:  time.Now().UTC(),
		StoreID:    store.StoreID,
		Store:      store.Name,
		URL:        store.URL,
		Categories: []menu.Category{},
	}

	for _, cat := range data.Get("categories").Array() {
		catID := cat.Get("id").Int()
		catName := cat.Get("name").String()

		products, err := client.ExecuteGraphQL("productList", map[string]any{
			"categoryId": catID,
			"orderTime":  map[string]any{"type": "ASAP", "timeSlot": nil},
			"timezone":   timezone,
			"menuMode":   MenuMode,
		}, productListQuery)
		if err != nil {
			utils.Log.Warn("Skipping category ", catID, " (", catName, "): ", err)
			continue
		}

		category := menu.Category{
			CategoryID:    catID,
			Name:          catName,
			Subcategories: []menu.Subcategory{},
			Items:         []menu.Item{},
		}
		for _, sub := range cat.Get("subcategories").Array() {
			category.Subcategories = append(category.Subcategories, menu.Subcategory{
				ID:   sub.Get("id").Int(),
				Name: sub.Get("name").String(),
			})
		}

		block := products.Get("products")
		categoryAvailability := block.Get("availability")
		for _, p := range block.Get("products").Array() {
			category.Items = append(category.Items, normalizeProduct(p, categoryAvailability))
		}

		result.Categories = append(result.Categories, category)
		utils.Log.Info(catName, " -> ", len(category.Items), " items")
	}

	return result, nil
}

// normalizeProduct flattens one product variant into an Item. The four
// variant shapes (plain, matrix, combo, gift card) differ only in which
// optional fields they carry, so every field gets an explicit default.
func normalizeProduct(p, categoryAvailability gjson.Result) menu.Item {
	item := menu.Item{
		ID:             p.Get("id").Int(),
		Name:           p.Get("name").String(),
		Description:    p.Get("description").String(),
		IsAvailable:    true,
		SubcategoryIDs: []int64{},
	}
	item.Slug = menu.Slugify(item.Name)

	// Non-numeric prices are dropped rather than parsed.
	if price := p.Get("price"); price.Type == gjson.Number {
		v := price.Num
		item.Price = &v
	}
	if image := p.Get("image"); image.Type == gjson.String && image.Str != "" {
		v := image.Str
		item.Image = &v
	}

	// subcategoryId arrives as a list, a scalar, or not at all.
	if sub := p.Get("subcategoryId"); sub.IsArray() {
		for _, id := range sub.Array() {
			item.SubcategoryIDs = append(item.SubcategoryIDs, id.Int())
		}
	} else if sub.Exists() && sub.Type != gjson.Null {
		item.SubcategoryIDs = append(item.SubcategoryIDs, sub.Int())
	}

	// Item availability falls back to the category window, then to true.
	if avail := p.Get("availability.isAvailable"); avail.Exists() {
		item.IsAvailable = avail.Bool()
	} else if avail := categoryAvailability.Get("isAvailable"); avail.Exists() {
		item.IsAvailable = avail.Bool()
	}

	return item
}
