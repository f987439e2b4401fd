package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"nutrimatrix/internal/compare"
	"nutrimatrix/internal/config"
	"nutrimatrix/internal/export"
	"nutrimatrix/internal/grouping"
	"nutrimatrix/internal/observability"
	"nutrimatrix/internal/productapi"
)

// go run cmd/compare/main.go -key=abc123 -sort=price_asc -csv
// go run cmd/compare/main.go -key=abc123 -q=yoghurt -months=6 -out=matrix.csv
func main() {
	key := flag.String("key", "", "Search key for the prepared product payload")
	search := flag.String("q", "", "Substring filter on product name or brand")
	months := flag.Int("months", 0, "Only offers updated within the last N months")
	sortBy := flag.String("sort", "", "Sort order: price_asc, price_desc, unit_price_asc, unit_price_desc, name_asc, name_desc")
	hideIncomplete := flag.Bool("hide-incomplete", false, "Hide products without any nutrition data")
	writeCSV := flag.Bool("csv", false, "Write the matrix CSV with a generated filename")
	out := flag.String("out", "", "Write the matrix CSV to this path")
	flag.Parse()

	if *key == "" {
		log.Fatal("missing -key")
	}

	cfg := config.Load()
	observability.Start(cfg.MetricsPort)

	client := productapi.New(cfg.APIBaseURL)
	if cfg.RedisURL != "" {
		cache, err := productapi.NewCache(cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			log.Printf("cache disabled: %v", err)
		} else {
			client.Cache = cache
		}
	}

	ctx := context.Background()
	data, err := client.GetProductData(ctx, *key)
	if err != nil {
		log.Fatalf("fetch failed: %v", err)
	}

	fcfg := grouping.FilterConfig{
		Search:              *search,
		UpdatedWithinMonths: *months,
		SortBy:              grouping.SortKey(*sortBy),
		HideIncomplete:      *hideIncomplete,
	}

	offers := grouping.FilterOffers(data.Products, fcfg)
	groups := grouping.Group(offers)
	observability.OffersGrouped.Add(float64(len(offers)))

	if fcfg.HideIncomplete {
		groups = grouping.WithNutrition(groups)
	}
	grouping.SortGroups(groups, fcfg)

	fmt.Printf("%d products across %d stores\n\n", len(groups), len(data.Stores))
	for _, g := range groups {
		line := g.Name
		if g.Brand != "" {
			line += " (" + g.Brand + ")"
		}
		price := grouping.MinPrice(g)
		if !math.IsInf(price, 1) {
			line += fmt.Sprintf(" - kr %.2f", price)
		}
		line += fmt.Sprintf(" [%d store(s)]", len(g.Stores))
		fmt.Println(line)

		if data.UserProduct != nil {
			for _, b := range compare.Badges(g.Nutrition, data.UserProduct.Nutrition) {
				pct := ""
				if b.Pct != nil {
					pct = fmt.Sprintf("%+.0f%%", *b.Pct)
				}
				fmt.Printf("    %s %s (%s)\n", export.FriendlyName(b.Code), pct, b.Verdict)
			}
		}
	}

	if !*writeCSV && *out == "" {
		return
	}

	csv, err := export.MatrixCSV(groups, data.UserProduct, data.NutritionCodes)
	if err != nil {
		log.Fatalf("export failed: %v", err)
	}
	path := *out
	if path == "" {
		path = export.Filename(data.Categories, time.Now())
	}
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		log.Fatalf("write failed: %v", err)
	}
	log.Printf("matrix exported to %s (%d unique products)", path, len(groups))
}
