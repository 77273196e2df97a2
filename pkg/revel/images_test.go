package revel

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/tannerpowell/catch/pkg/menu"
)

func TestDownloadImages(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path == "/gone.png" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("image-bytes"))
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	dir := t.TempDir()

	existing := filepath.Join(dir, "already-here.jpg")
	if err := os.WriteFile(existing, []byte("old"), 0o644); err != nil {
		t.Fatalf("seed existing file: %v", err)
	}

	catfish := server.URL + "/catfish.png"
	gone := server.URL + "/gone.png"
	already := server.URL + "/already-here.jpg"
	items := []menu.Item{
		{Name: "Catfish", Image: &catfish},
		{Name: "Gone", Image: &gone},
		{Name: "Already Here", Image: &already},
		{Name: "No Image"},
	}

	if err := DownloadImages(client, items, dir); err != nil {
		t.Fatalf("DownloadImages: %v", err)
	}

	// Only the two missing-on-disk images were requested.
	if hits.Load() != 2 {
		t.Fatalf("expected 2 requests, got %d", hits.Load())
	}

	body, err := os.ReadFile(filepath.Join(dir, "catfish.png"))
	if err != nil {
		t.Fatalf("downloaded file missing: %v", err)
	}
	if string(body) != "image-bytes" {
		t.Fatalf("unexpected contents %q", body)
	}

	// The existing file must not be overwritten.
	body, _ = os.ReadFile(existing)
	if string(body) != "old" {
		t.Fatalf("existing file overwritten: %q", body)
	}

	// The failed download leaves nothing behind.
	if _, err := os.Stat(filepath.Join(dir, "gone.png")); err == nil {
		t.Fatal("failed download should not create a file")
	}
}
