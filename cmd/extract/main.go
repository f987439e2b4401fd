package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"nutrimatrix/internal/nutrition"
	"nutrimatrix/internal/observability"
)

type output struct {
	Values        map[string]float64 `json:"values"`
	FatBreakdown  bool               `json:"fat_breakdown"`
	CarbBreakdown bool               `json:"carb_breakdown"`
}

// go run cmd/extract/main.go -file=label.txt
// pbpaste | go run cmd/extract/main.go -html
func main() {
	file := flag.String("file", "-", "Input file, '-' for stdin")
	asHTML := flag.Bool("html", false, "Treat input as pasted HTML and flatten it first")
	flag.Parse()

	var (
		raw []byte
		err error
	)
	if *file == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(*file)
	}
	if err != nil {
		log.Fatalf("read failed: %v", err)
	}

	text := string(raw)
	if *asHTML {
		text, err = nutrition.FlattenHTML(text)
		if err != nil {
			log.Fatalf("HTML flatten failed: %v", err)
		}
	}

	extracted := nutrition.Extract(text)
	observability.ExtractionsTotal.Inc()
	if len(extracted) == 0 {
		log.Fatal("no nutrition values recognized")
	}

	values, flags := nutrition.FormValues(extracted)
	b, err := json.MarshalIndent(output{
		Values:        values,
		FatBreakdown:  flags.FatBreakdown,
		CarbBreakdown: flags.CarbBreakdown,
	}, "", "  ")
	if err != nil {
		log.Fatalf("encode failed: %v", err)
	}
	fmt.Println(string(b))
}
