package revel

import (
	"strconv"
	"strings"
)

// Store is a static descriptor for one ordering location. The GraphQL
// endpoint and request headers are derived from URL, never stored.
type Store struct {
	Name     string
	Slug     string
	StoreID  int
	URL      string
	Timezone string
}

var registry = []Store{
	{Name: "Store 1", Slug: "store-1", StoreID: 1, URL: "https://conroe.revelup.online/store/1/category/28/subcategory/496", Timezone: "US/Central"},
	{Name: "Store 105", Slug: "store-105", StoreID: 105, URL: "https://conroe.revelup.online/store/105/category/1045/subcategory/1047", Timezone: "US/Central"},
	{Name: "Post Oak", Slug: "store-5-post-oak", StoreID: 5, URL: "https://conroe.revelup.online/store/5/category/336/subcategory/481", Timezone: "US/Central"},
	{Name: "Store 2", Slug: "store-2", StoreID: 2, URL: "https://conroe.revelup.online/store/2/category/74/subcategory/483", Timezone: "US/Central"},
	{Name: "Store 4", Slug: "store-4", StoreID: 4, URL: "https://conroe.revelup.online/store/4", Timezone: "US/Central"},
	{Name: "Store 72", Slug: "store-72", StoreID: 72, URL: "https://conroe.revelup.online/store/72/category/913/subcategory/915", Timezone: "US/Central"},
	{Name: "Store 110", Slug: "store-110", StoreID: 110, URL: "https://conroe.revelup.online/store/110/category/2746/subcategory/2747", Timezone: "US/Central"},
}

// Stores returns a copy of the built-in location registry.
func Stores() []Store {
	return append([]Store(nil), registry...)
}

// Select filters stores by slug or numeric id, case-insensitively. A
// non-empty include list keeps only intersecting stores; the exclude list
// always removes matches.
func Select(stores []Store, include, exclude []string) []Store {
	requested := lowerSet(include)
	excluded := lowerSet(exclude)

	var selected []Store
	for _, s := range stores {
		if len(requested) > 0 && !matches(s, requested) {
			continue
		}
		if matches(s, excluded) {
			continue
		}
		selected = append(selected, s)
	}
	return selected
}

func matches(s Store, keys map[string]bool) bool {
	return keys[strings.ToLower(s.Slug)] || keys[strconv.Itoa(s.StoreID)]
}

func lowerSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.ToLower(strings.TrimSpace(v))] = true
	}
	return set
}
