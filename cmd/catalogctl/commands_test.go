package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ecosmart-shop/catalog-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `
products:
  - id: 1
    name: Organic Apples
    category: Fruits
    base_price: 4.99
    dynamic_price: 4.49
    carbon_score: 0.2
    perishable: true
  - id: 2
    name: Eco-Friendly Water Bottle
    category: Accessories
    base_price: 19.99
    dynamic_price: 18.99
    carbon_score: 0.8
  - id: 3
    name: Organic Bananas
    category: Fruits
    base_price: 3.49
    dynamic_price: 2.99
    carbon_score: 0.3
    perishable: true
  - id: 6
    name: Solar Phone Charger
    category: Electronics
    base_price: 149.99
    carbon_score: 1.2
`

func writeCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFilterCommand(t *testing.T) {
	path := writeCatalog(t)

	out, err := run(t, "filter", "--catalog", path, "--category", "Fruits", "--sort", "price-asc")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[1], "Organic Bananas")
	assert.Contains(t, lines[2], "Organic Apples")
	assert.Contains(t, out, "2 product(s)")
}

func TestFilterCommand_StorefrontDefaults(t *testing.T) {
	path := writeCatalog(t)

	// the charger costs more than the default price slider allows
	out, err := run(t, "filter", "--catalog", path)
	require.NoError(t, err)
	assert.NotContains(t, out, "Solar Phone Charger")
	assert.Contains(t, out, "3 product(s)")

	out, err = run(t, "filter", "--catalog", path, "--max-price", "200")
	require.NoError(t, err)
	assert.Contains(t, out, "Solar Phone Charger")
}

func TestFilterCommand_JSON(t *testing.T) {
	path := writeCatalog(t)

	out, err := run(t, "filter", "--catalog", path, "-q", "BOTTLE", "--json")
	require.NoError(t, err)

	var products []models.Product
	require.NoError(t, json.Unmarshal([]byte(out), &products))
	require.Len(t, products, 1)
	assert.Equal(t, int64(2), products[0].ID)
}

func TestFilterCommand_Errors(t *testing.T) {
	path := writeCatalog(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing catalog flag", args: []string{"filter"}},
		{name: "unknown sort", args: []string{"filter", "--catalog", path, "--sort", "rating"}},
		{name: "inverted price range", args: []string{"filter", "--catalog", path, "--min-price", "50", "--max-price", "5"}},
		{name: "missing file", args: []string{"filter", "--catalog", filepath.Join(t.TempDir(), "none.yaml")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestCategoriesCommand(t *testing.T) {
	out, err := run(t, "categories", "--catalog", writeCatalog(t))
	require.NoError(t, err)
	assert.Equal(t, "Fruits\nAccessories\nElectronics\n", out)
}
