// Package export renders the nutrition comparison matrix as CSV.
package export

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"nutrimatrix/internal/compare"
	"nutrimatrix/internal/model"
)

// ComparableCodes keeps the nutrition codes the reference product has a
// finite amount for; only those columns are worth exporting.
func ComparableCodes(codes []string, ref map[string]model.NutritionValue) []string {
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		if u, ok := ref[code]; ok && u.Valid() {
			out = append(out, code)
		}
	}
	return out
}

// MatrixCSV renders the comparison matrix: a header row, the pinned
// "my product" row, then one row per group. Every value is quoted;
// multi-store lists are semicolon-joined.
func MatrixCSV(groups []model.ProductGroup, user *model.UserProduct, codes []string) (string, error) {
	if user == nil || user.Nutrition == nil {
		return "", fmt.Errorf("export: no reference product with nutrition")
	}
	codes = ComparableCodes(codes, user.Nutrition)
	if len(codes) == 0 {
		return "", fmt.Errorf("export: no comparable nutrients found")
	}

	var sb strings.Builder

	header := []string{"Product", "Brand", "Stores", "Last Updated"}
	for _, code := range codes {
		header = append(header, FriendlyName(code))
	}
	writeRow(&sb, header)

	name := user.Name
	if name == "" {
		name = "My Product"
	}
	myRow := []string{name, user.Description, "-", "-"}
	for _, code := range codes {
		myRow = append(myRow, cellValue(user.Nutrition[code]))
	}
	writeRow(&sb, myRow)

	for _, g := range groups {
		stores := make([]string, 0, len(g.Stores))
		for _, s := range g.Stores {
			stores = append(stores, s.Store)
		}
		updated := "-"
		if !g.UpdatedAt.IsZero() {
			updated = FormatDate(g.UpdatedAt)
		}
		row := []string{g.Name, g.Brand, strings.Join(stores, "; "), updated}
		for _, code := range codes {
			n, ok := g.Nutrition[code]
			if ok && compare.Comparable(n, user.Nutrition[code]) {
				row = append(row, cellValue(n))
			} else {
				row = append(row, "-")
			}
		}
		writeRow(&sb, row)
	}

	return sb.String(), nil
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Filename builds the export name from the first two category names and
// the date: nutrition_matrix_<categories>_<YYYY-MM-DD>.csv.
func Filename(categories []string, now time.Time) string {
	if len(categories) > 2 {
		categories = categories[:2]
	}
	cats := nonAlphanumeric.ReplaceAllString(strings.Join(categories, "_"), "_")
	return fmt.Sprintf("nutrition_matrix_%s_%s.csv", cats, now.Format("2006-01-02"))
}

// FormatDate renders a timestamp for the matrix, "N/A" when absent.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("2. Jan 2006")
}

func cellValue(v model.NutritionValue) string {
	if !v.Valid() {
		return "-"
	}
	amount := strconv.FormatFloat(v.Amount, 'f', -1, 64)
	return strings.TrimSpace(amount + " " + v.Unit)
}

func writeRow(sb *strings.Builder, values []string) {
	for i, v := range values {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('"')
		sb.WriteString(strings.ReplaceAll(v, `"`, `""`))
		sb.WriteByte('"')
	}
	sb.WriteByte('\n')
}
