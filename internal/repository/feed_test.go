package repository

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

const feedA = `{"id":1,"name":"Organic Apples","category":"Fruits","basePrice":4.99,"dynamicPrice":4.49,"carbonScore":0.2,"isPerishable":true}
{"id":2,"name":"Eco-Friendly Water Bottle","category":"Accessories","basePrice":"19.99","dynamicPrice":null,"carbonScore":0.8}
`

const feedB = `
{"id":3,"name":"Organic Bananas","category":"Fruits","basePrice":3.49}
`

func gzipBytes(t *testing.T, s string) []byte {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write([]byte(s)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func TestFeedLoader_LoadFromFiles(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "a.jsonl")
	zipped := filepath.Join(dir, "b.jsonl.gz")

	if err := os.WriteFile(plain, []byte(feedA), 0644); err != nil {
		t.Fatalf("failed to write feed: %v", err)
	}
	if err := os.WriteFile(zipped, gzipBytes(t, feedB), 0644); err != nil {
		t.Fatalf("failed to write feed: %v", err)
	}

	loader := NewFeedLoader(nil)
	products, err := loader.LoadFromFiles(context.Background(), []string{plain, zipped})
	if err != nil {
		t.Fatalf("LoadFromFiles() error = %v", err)
	}

	if len(products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(products))
	}

	// feed order is preserved
	for i, want := range []int64{1, 2, 3} {
		if products[i].ID != want {
			t.Errorf("products[%d].ID = %d, want %d", i, products[i].ID, want)
		}
	}

	if products[1].DynamicPrice.Valid {
		t.Error("null dynamicPrice should be unset")
	}
	if products[2].CarbonScore.Valid {
		t.Error("absent carbonScore should be unset")
	}
}

func TestFeedLoader_Errors(t *testing.T) {
	loader := NewFeedLoader(nil)

	t.Run("no feeds", func(t *testing.T) {
		if _, err := loader.LoadFromFiles(context.Background(), nil); err == nil {
			t.Error("expected error for empty feed list")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := loader.LoadFromFiles(context.Background(), []string{"/non/existent/feed.jsonl"}); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("malformed line", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.jsonl")
		if err := os.WriteFile(path, []byte("{\"id\":1}\nnot json\n"), 0644); err != nil {
			t.Fatalf("failed to write feed: %v", err)
		}
		if _, err := loader.LoadFromFiles(context.Background(), []string{path}); err == nil {
			t.Error("expected error for malformed line")
		}
	})
}

func TestFeedLoader_LoadFromURLs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/a.gz":
			w.Write(gzipBytes(t, feedA))
		case "/b":
			w.Write([]byte(feedB))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	loader := NewFeedLoader(srv.Client())

	products, err := loader.LoadFromURLs(context.Background(), []string{srv.URL + "/a.gz", srv.URL + "/b"})
	if err != nil {
		t.Fatalf("LoadFromURLs() error = %v", err)
	}
	if len(products) != 3 {
		t.Errorf("expected 3 products, got %d", len(products))
	}

	if _, err := loader.LoadFromURLs(context.Background(), []string{srv.URL + "/missing"}); err == nil {
		t.Error("expected error for 404 feed")
	}
}
