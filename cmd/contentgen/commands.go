package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/BerylCAtieno/content-studio-agent/internal/generator"
	"github.com/BerylCAtieno/content-studio-agent/internal/models"
	"github.com/BerylCAtieno/content-studio-agent/internal/studio"
)

type generateOptions struct {
	productID   string
	name        string
	category    string
	description string
	platform    string
	contentType string
	tone        string
	length      string
	asJSON      bool
	simulate    bool
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "contentgen",
		Short:         "Generate O Boticário marketing copy from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newGenerateCmd(), newBandsCmd(), newTemplatesCmd(), newProductsCmd())
	return root
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate copy for a product",
		Long: `Generate copy for a catalog product, or for an ad-hoc product when
--name is given.

Unknown content type or tone values fall back to promocional/profesional,
and an unknown length falls back to medio.`,
		Example: `  contentgen generate --product aura_helena --type lifestyle --tone elegante --length largo
  contentgen generate --name "Nativa SPA" --category "Cuidado Corporal" --description "Aceite corporal" --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.productID, "product", "p", "aura_helena", "Catalog product id")
	f.StringVar(&opts.name, "name", "", "Ad-hoc product name (overrides --product)")
	f.StringVar(&opts.category, "category", "", "Ad-hoc product category")
	f.StringVar(&opts.description, "description", "", "Ad-hoc product description")
	f.StringVar(&opts.platform, "platform", string(generator.Instagram), "Target platform")
	f.StringVarP(&opts.contentType, "type", "t", string(generator.Promocional), "Content type")
	f.StringVar(&opts.tone, "tone", string(generator.Profesional), "Tone")
	f.StringVarP(&opts.length, "length", "l", string(generator.Medio), "Length")
	f.BoolVar(&opts.asJSON, "json", false, "Print the result as JSON")
	f.BoolVar(&opts.simulate, "simulate-delay", false, "Wait like the server does before answering")
	return cmd
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	product, err := resolveProduct(opts)
	if err != nil {
		return err
	}

	req := generator.Request{
		Product:     product,
		Platform:    generator.ParsePlatform(opts.platform),
		ContentType: generator.ParseContentType(opts.contentType),
		Tone:        generator.ParseTone(opts.tone),
		Length:      generator.ParseLength(opts.length),
	}

	var content string
	if opts.simulate {
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()
		select {
		case content = <-generator.New().Async(req):
		case <-ctx.Done():
			return ctx.Err()
		}
	} else {
		content = generator.Generate(req)
	}
	res := generator.Describe(content, req.Length)

	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Fprintln(out, res.Content)
	fmt.Fprintln(out, strings.Repeat("─", 60))
	fmt.Fprintf(out, "%d palabras, %d caracteres, rango %d-%d\n", res.Words, res.Chars, res.Band.Min, res.Band.Max)
	if res.Shortfall {
		fmt.Fprintln(out, "aviso: el texto no alcanza el mínimo del rango")
	}
	return nil
}

func resolveProduct(opts *generateOptions) (models.Product, error) {
	if opts.name != "" {
		if opts.description == "" {
			return models.Product{}, errors.New("--description is required with --name")
		}
		return models.Product{
			ID:          "adhoc",
			Name:        opts.name,
			Category:    opts.category,
			Description: opts.description,
		}, nil
	}

	catalog, err := studio.Catalog()
	if err != nil {
		return models.Product{}, err
	}
	for _, p := range catalog {
		if p.ID == opts.productID {
			return p, nil
		}
	}
	return models.Product{}, fmt.Errorf("%w: %s", studio.ErrProductNotFound, opts.productID)
}

func newBandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bands",
		Short: "Show the word-count band of every length",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "LENGTH\tMIN\tMAX")
			for _, l := range generator.Lengths {
				b := generator.BandFor(l)
				fmt.Fprintf(w, "%s\t%d\t%d\n", l, b.Min, b.Max)
			}
			return w.Flush()
		},
	}
}

func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "Show which content type and tone pairs have their own template",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			header := []string{"TYPE"}
			for _, t := range generator.Tones {
				header = append(header, strings.ToUpper(string(t)))
			}
			fmt.Fprintln(w, strings.Join(header, "\t"))

			for _, c := range generator.ContentTypes {
				row := []string{string(c)}
				for _, t := range generator.Tones {
					mark := "fallback"
					if generator.HasTemplate(c, t) {
						mark = "yes"
					}
					row = append(row, mark)
				}
				fmt.Fprintln(w, strings.Join(row, "\t"))
			}
			return w.Flush()
		},
	}
}

func newProductsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List the built-in product catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := studio.Catalog()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tSTOCK\tLOW STOCK")
			for _, p := range catalog {
				low := "no"
				if p.LowStock() {
					low = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", p.ID, p.Name, p.Category, p.Stock, low)
			}
			return w.Flush()
		},
	}
}
