package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ecosmart-shop/catalog-api/internal/catalog"
	"github.com/ecosmart-shop/catalog-api/internal/models"
	"github.com/ecosmart-shop/catalog-api/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type filterOptions struct {
	search    string
	category  string
	minPrice  float64
	maxPrice  float64
	minCarbon float64
	maxCarbon float64
	sort      string
	asJSON    bool
}

func newRootCmd() *cobra.Command {
	var catalogPath string

	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Inspect and filter an EcoSmart product catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&catalogPath, "catalog", "", "path to a YAML catalog file")
	_ = root.MarkPersistentFlagRequired("catalog")

	root.AddCommand(newFilterCmd(&catalogPath), newCategoriesCmd(&catalogPath))
	return root
}

func newFilterCmd(catalogPath *string) *cobra.Command {
	opts := filterOptions{}
	defaults := catalog.StorefrontDefaults()

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "List products matching search, category, price and carbon filters",
		Long: `Filters the catalog and prints the matching products in the requested order.
Price and carbon bounds default to the storefront slider positions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := loadCatalog(cmd.Context(), *catalogPath)
			if err != nil {
				return err
			}

			sortKey, err := catalog.ParseSortKey(opts.sort)
			if err != nil {
				return err
			}

			criteria, err := catalog.NewCriteria(
				catalog.WithSearch(opts.search),
				catalog.WithCategory(opts.category),
				catalog.WithPriceRange(catalog.NewRange(opts.minPrice, opts.maxPrice)),
				catalog.WithCarbonRange(catalog.NewRange(opts.minCarbon, opts.maxCarbon)),
				catalog.WithSort(sortKey),
			)
			if err != nil {
				return err
			}

			result := catalog.Apply(products, criteria)
			if opts.asJSON {
				return writeProductsJSON(cmd.OutOrStdout(), result)
			}
			return writeProductTable(cmd.OutOrStdout(), result)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.search, "q", "q", "", "case-insensitive search on name or category")
	f.StringVar(&opts.category, "category", catalog.CategoryAll, "exact category, or \"all\"")
	f.Float64Var(&opts.minPrice, "min-price", defaults.PriceRange.Min.InexactFloat64(), "minimum effective price")
	f.Float64Var(&opts.maxPrice, "max-price", defaults.PriceRange.Max.InexactFloat64(), "maximum effective price")
	f.Float64Var(&opts.minCarbon, "min-carbon", defaults.CarbonRange.Min.InexactFloat64(), "minimum carbon score (kg CO2e)")
	f.Float64Var(&opts.maxCarbon, "max-carbon", defaults.CarbonRange.Max.InexactFloat64(), "maximum carbon score (kg CO2e)")
	f.StringVar(&opts.sort, "sort", string(catalog.SortByName), "name, price-asc, price-desc, carbon-asc or carbon-desc")
	f.BoolVar(&opts.asJSON, "json", false, "print JSON instead of a table")

	return cmd
}

func newCategoriesCmd(catalogPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the distinct categories in catalog order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := loadCatalog(cmd.Context(), *catalogPath)
			if err != nil {
				return err
			}
			for _, c := range catalog.DistinctCategories(products) {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}

func loadCatalog(ctx context.Context, path string) ([]models.Product, error) {
	repo, err := repository.LoadYAMLCatalog(path)
	if err != nil {
		return nil, err
	}
	return repo.GetAll(ctx)
}

func writeProductTable(w io.Writer, products []models.Product) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tCARBON")
	for _, p := range products {
		carbon := "-"
		if p.CarbonScore.Valid {
			carbon = p.CarbonScore.Decimal.StringFixed(1)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Category, p.EffectivePrice().StringFixed(2), carbon)
	}
	fmt.Fprintf(tw, "\n%d product(s)\n", len(products))
	return tw.Flush()
}

func writeProductsJSON(w io.Writer, products []models.Product) error {
	decimal.MarshalJSONWithoutQuotes = true
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(products)
}
