package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"dirtyduck.club/storefront/internal/catalog"
	"dirtyduck.club/storefront/internal/format"
)

func newCatalogCmd(g *globalFlags) *cobra.Command {
	var outFormat string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Validate the content document and print it",
		Long: `Loads the content document (--content, DDC_CONTENT_FILE or the embedded one),
reports every validation error and exits non-zero when there are any.

--format text prints a summary; --format yaml re-encodes the normalised document.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(g.contentFile)
			if err != nil {
				return err
			}
			switch outFormat {
			case "text", "":
				return printSummary(cmd.OutOrStdout(), reg)
			case "yaml":
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(reg); err != nil {
					return fmt.Errorf("encode yaml: %w", err)
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown format %q (want text or yaml)", outFormat)
			}
		},
	}
	cmd.Flags().StringVar(&outFormat, "format", "text", "Output format: text or yaml")
	return cmd
}

func printSummary(w io.Writer, reg *catalog.Registry) error {
	products, guides, reviews := reg.Products(), reg.Guides(), reg.Reviews()
	fmt.Fprintf(w, "content ok: %d products, %d guide sections, %d reviews\n", len(products), len(guides), len(reviews))
	counts := make([]string, 0, len(catalog.Categories()))
	for _, c := range catalog.Categories() {
		counts = append(counts, fmt.Sprintf("%s=%d", c, len(reg.ProductsByCategory(c))))
	}
	fmt.Fprintf(w, "categories: %s\n\n", strings.Join(counts, " "))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCATEGORY\tPRICE\tTITLE")
	for _, p := range products {
		price := format.Price(p.Price, "ru")
		if p.Currency != "" {
			price += " " + p.Currency
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Category, price, p.Title)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)
	for _, gs := range guides {
		fmt.Fprintf(w, "guide %s (%s): %d items\n", gs.ID, gs.Icon, len(gs.Items))
	}
	return nil
}
