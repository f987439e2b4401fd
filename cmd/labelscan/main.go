package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"nutrimatrix/internal/config"
	"nutrimatrix/internal/nutrition"
	"nutrimatrix/internal/vision"
)

// go run cmd/labelscan/main.go -image=label.jpg
func main() {
	image := flag.String("image", "", "Nutrition label image to analyze")
	flag.Parse()

	if *image == "" {
		log.Fatal("missing -image")
	}

	cfg := config.Load()
	if cfg.OpenAIKey == "" {
		log.Fatal("OPENAI_API_KEY not configured")
	}

	mime, err := vision.MimeTypeFor(filepath.Ext(*image))
	if err != nil {
		log.Fatalf("%v", err)
	}
	data, err := os.ReadFile(*image)
	if err != nil {
		log.Fatalf("read failed: %v", err)
	}

	reader := vision.NewLabelReader(cfg.OpenAIKey)
	values, err := reader.ReadLabel(context.Background(), data, mime)
	if err != nil {
		log.Fatalf("label scan failed: %v", err)
	}
	if len(values) == 0 {
		log.Fatal("no nutrition values recognized on the label")
	}

	formValues, flags := nutrition.FormValues(values)
	b, err := json.MarshalIndent(map[string]any{
		"values":         formValues,
		"fat_breakdown":  flags.FatBreakdown,
		"carb_breakdown": flags.CarbBreakdown,
	}, "", "  ")
	if err != nil {
		log.Fatalf("encode failed: %v", err)
	}
	fmt.Println(string(b))
}
