package menu

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Fried Catfish (3 pc)", "fried-catfish-3-pc"},
		{"  Shrimp & Grits  ", "shrimp-grits"},
		{"PO-BOY", "po-boy"},
		{"", ""},
		{"---", ""},
		{"already-a-clean-slug", "already-a-clean-slug"},
	}
	for _, c := range cases {
		if got := Slugify(c.input); got != c.want {
			t.Fatalf("Slugify(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{"Fried Catfish (3 pc)", "Gumbo & Rice", "A  B   C"}
	for _, input := range inputs {
		once := Slugify(input)
		if twice := Slugify(once); twice != once {
			t.Fatalf("Slugify not idempotent for %q: %q != %q", input, twice, once)
		}
	}
}

func TestResultItemsFlattens(t *testing.T) {
	r := &Result{
		Categories: []Category{
			{Name: "A", Items: []Item{{Name: "one"}, {Name: "two"}}},
			{Name: "B", Items: []Item{{Name: "three"}}},
			{Name: "empty"},
		},
	}
	items := r.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[2].Name != "three" {
		t.Fatalf("expected category order preserved, got %q", items[2].Name)
	}
}
