package grouping

import (
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"nutrimatrix/internal/model"
)

type SortKey string

const (
	SortPriceAsc      SortKey = "price_asc"
	SortPriceDesc     SortKey = "price_desc"
	SortUnitPriceAsc  SortKey = "unit_price_asc"
	SortUnitPriceDesc SortKey = "unit_price_desc"
	SortNameAsc       SortKey = "name_asc"
	SortNameDesc      SortKey = "name_desc"
)

// FilterConfig is the complete, immutable filter and sort state for one
// render pass. A zero value means "no filtering, no sorting".
type FilterConfig struct {
	Search              string
	UpdatedWithinMonths int
	SortBy              SortKey
	HideIncomplete      bool
	Now                 time.Time // defaults to time.Now when zero
}

// Product names are Norwegian; sort them the way a Norwegian user
// expects (å after ø, not after a).
var nameCollator = collate.New(language.Norwegian, collate.IgnoreCase)

// FilterOffers applies the search and freshness filters before grouping.
func FilterOffers(offers []model.StoreOffer, cfg FilterConfig) []model.StoreOffer {
	out := offers

	if cfg.Search != "" {
		needle := strings.ToLower(cfg.Search)
		filtered := make([]model.StoreOffer, 0, len(out))
		for _, p := range out {
			if strings.Contains(strings.ToLower(p.Name), needle) ||
				strings.Contains(strings.ToLower(p.Brand), needle) {
				filtered = append(filtered, p)
			}
		}
		out = filtered
	}

	if cfg.UpdatedWithinMonths > 0 {
		now := cfg.Now
		if now.IsZero() {
			now = time.Now()
		}
		cutoff := now.AddDate(0, -cfg.UpdatedWithinMonths, 0)
		filtered := make([]model.StoreOffer, 0, len(out))
		for _, p := range out {
			if t, ok := model.ParseUpdatedAt(p.UpdatedAt); ok && !t.Before(cutoff) {
				filtered = append(filtered, p)
			}
		}
		out = filtered
	}

	return out
}

// SortGroups orders groups by the configured key. The effective price
// of a group is the minimum over its stores; groups with no finite
// price sort last in both directions.
func SortGroups(groups []model.ProductGroup, cfg FilterConfig) {
	key := func(g model.ProductGroup) float64 {
		switch cfg.SortBy {
		case SortUnitPriceAsc, SortUnitPriceDesc:
			return MinUnitPrice(g)
		default:
			return MinPrice(g)
		}
	}

	switch cfg.SortBy {
	case SortNameAsc:
		sort.SliceStable(groups, func(i, j int) bool {
			return nameCollator.CompareString(groups[i].Name, groups[j].Name) < 0
		})
	case SortNameDesc:
		sort.SliceStable(groups, func(i, j int) bool {
			return nameCollator.CompareString(groups[j].Name, groups[i].Name) < 0
		})
	case SortPriceAsc, SortUnitPriceAsc:
		sort.SliceStable(groups, func(i, j int) bool {
			return key(groups[i]) < key(groups[j])
		})
	case SortPriceDesc, SortUnitPriceDesc:
		sort.SliceStable(groups, func(i, j int) bool {
			a, b := key(groups[i]), key(groups[j])
			if math.IsInf(a, 1) || math.IsInf(b, 1) {
				return !math.IsInf(a, 1) && math.IsInf(b, 1)
			}
			return a > b
		})
	}
}

// WithNutrition drops groups that have no usable nutrition entry at
// all, for the "hide incomplete" toggle.
func WithNutrition(groups []model.ProductGroup) []model.ProductGroup {
	out := make([]model.ProductGroup, 0, len(groups))
	for _, g := range groups {
		for _, v := range g.Nutrition {
			if v.Valid() {
				out = append(out, g)
				break
			}
		}
	}
	return out
}

// MinPrice is the lowest store price of the group, +Inf when no store
// has a finite price.
func MinPrice(g model.ProductGroup) float64 {
	min := math.Inf(1)
	for _, s := range g.Stores {
		if model.FiniteNumber(s.Price) && *s.Price < min {
			min = *s.Price
		}
	}
	return min
}

// MinUnitPrice is the lowest store unit price, +Inf when absent.
func MinUnitPrice(g model.ProductGroup) float64 {
	min := math.Inf(1)
	for _, s := range g.Stores {
		if model.FiniteNumber(s.UnitPrice) && *s.UnitPrice < min {
			min = *s.UnitPrice
		}
	}
	return min
}
