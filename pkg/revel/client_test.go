package revel

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestExecuteGraphQLErrorsArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Oo-Xt-Loaded-Modules"); got == "" {
			t.Error("feature-flag header not sent")
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("unexpected content type %q", got)
		}
		// HTTP 200 with a GraphQL-level error must still fail.
		fmt.Fprint(w, `{"data":null,"errors":[{"message":"boom"}]}`)
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	_, err := client.ExecuteGraphQL("productList", map[string]any{"categoryId": 1}, productListQuery)
	if err == nil {
		t.Fatal("expected an error for a non-empty errors array")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Fatalf("error should carry the GraphQL message, got %v", err)
	}
}

func TestExecuteGraphQLNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	if _, err := client.ExecuteGraphQL("fetchCategoryList", nil, fetchCategoryListQuery); err == nil {
		t.Fatal("expected an error for a 403 response")
	}
}

func TestSetUserAgent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "session-agent/99.0" {
			t.Errorf("unexpected user agent %q", got)
		}
		fmt.Fprint(w, `{"data":{}}`)
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	client.SetUserAgent("session-agent/99.0")
	client.SetUserAgent("") // empty must not clobber a previous override

	if _, err := client.ExecuteGraphQL("fetchCategoryList", nil, fetchCategoryListQuery); err != nil {
		t.Fatalf("ExecuteGraphQL: %v", err)
	}
}

func TestFetchBytes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/image.jpg":
			w.Write([]byte("jpeg-bytes"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	body, err := client.FetchBytes(server.URL + "/image.jpg")
	if err != nil {
		t.Fatalf("FetchBytes: %v", err)
	}
	if string(body) != "jpeg-bytes" {
		t.Fatalf("unexpected body %q", body)
	}

	if _, err := client.FetchBytes(server.URL + "/missing.jpg"); err == nil {
		t.Fatal("expected an error for a 404 response")
	}
}
