package repository

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/ecosmart-shop/catalog-api/internal/models"
)

// FeedLoader loads product feeds: JSON lines, one product per line,
// optionally gzip-compressed.
type FeedLoader struct {
	client *http.Client
}

// feedLoadResult holds the result of loading a single feed
type feedLoadResult struct {
	index    int
	products []models.Product
	err      error
}

// NewFeedLoader creates a feed loader. A nil client gets a default with a
// generous timeout.
func NewFeedLoader(client *http.Client) *FeedLoader {
	if client == nil {
		client = &http.Client{Timeout: 2 * time.Minute}
	}
	return &FeedLoader{client: client}
}

// LoadFromURLs downloads all feeds concurrently and merges them in order.
// Returns error if any feed fails to load.
func (l *FeedLoader) LoadFromURLs(ctx context.Context, urls []string) ([]models.Product, error) {
	return l.loadAll(ctx, urls, l.loadFromURL)
}

// LoadFromFiles reads all feed files concurrently and merges them in order.
func (l *FeedLoader) LoadFromFiles(ctx context.Context, paths []string) ([]models.Product, error) {
	return l.loadAll(ctx, paths, loadFromFile)
}

func (l *FeedLoader) loadAll(ctx context.Context, sources []string, load func(context.Context, string) ([]models.Product, error)) ([]models.Product, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("no feeds provided")
	}

	resultChan := make(chan feedLoadResult, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(index int, source string) {
			defer wg.Done()

			products, err := load(ctx, source)
			resultChan <- feedLoadResult{
				index:    index,
				products: products,
				err:      err,
			}
		}(i, src)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	// Collect results maintaining order
	results := make([]feedLoadResult, len(sources))
	for result := range resultChan {
		results[result.index] = result
	}

	var merged []models.Product
	for i, result := range results {
		if result.err != nil {
			return nil, fmt.Errorf("failed to load feed %d: %w", i+1, result.err)
		}
		merged = append(merged, result.products...)
	}

	return merged, nil
}

func (l *FeedLoader) loadFromURL(ctx context.Context, url string) ([]models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return parseFeed(resp.Body)
}

func loadFromFile(ctx context.Context, path string) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feed: %w", err)
	}
	defer f.Close()

	return parseFeed(f)
}

var gzipMagic = []byte{0x1f, 0x8b}

// parseFeed decodes JSON-lines products, transparently un-gzipping.
func parseFeed(r io.Reader) ([]models.Product, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(2)
	if err == nil && bytes.Equal(head, gzipMagic) {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gz.Close()
		br = bufio.NewReader(gz)
	}

	var products []models.Product
	scanner := bufio.NewScanner(br)
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}

		var p models.Product
		if err := json.Unmarshal(text, &p); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		products = append(products, p)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading feed: %w", err)
	}

	return products, nil
}
