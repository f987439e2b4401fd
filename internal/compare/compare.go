// Package compare scores grouped products against the user's reference
// product, nutrient by nutrient.
package compare

import (
	"math"
	"sort"

	"nutrimatrix/internal/model"
)

type Verdict string

const (
	Better  Verdict = "better"
	Worse   Verdict = "worse"
	Neutral Verdict = "neutral"
)

// For these codes a lower amount is the healthier direction.
var lowerBetter = map[string]struct{}{
	"energi_kcal":   {},
	"energi_kj":     {},
	"fett_totalt":   {},
	"mettet_fett":   {},
	"sukkerarter":   {},
	"karbohydrater": {},
	"salt":          {},
}

// For these a higher amount is the healthier direction.
var higherBetter = map[string]struct{}{
	"protein":          {},
	"kostfiber":        {},
	"enumettet_fett":   {},
	"flerumettet_fett": {},
	"umettet_fett":     {},
}

// Badge is one compact comparison marker: how a product's nutrient
// relates to the reference, in percent.
type Badge struct {
	Code    string
	Pct     *float64 // nil when the reference amount is zero
	Verdict Verdict
}

// Judge classifies a percent difference for a nutrition code. Within
// one percent of the reference everything is neutral.
func Judge(code string, pct float64) Verdict {
	if _, ok := lowerBetter[code]; ok {
		switch {
		case pct < -1:
			return Better
		case pct > 1:
			return Worse
		}
		return Neutral
	}
	if _, ok := higherBetter[code]; ok {
		switch {
		case pct > 1:
			return Better
		case pct < -1:
			return Worse
		}
		return Neutral
	}
	return Neutral
}

// Comparable reports whether a product value can be compared against
// the reference value: both finite, units absent or equal.
func Comparable(p, u model.NutritionValue) bool {
	if !p.Valid() || !u.Valid() {
		return false
	}
	return p.Unit == "" || u.Unit == "" || p.Unit == u.Unit
}

// Badges computes per-nutrient verdicts for a product nutrition map
// against the reference map and returns the strongest differences
// first, at most four.
func Badges(prod, ref map[string]model.NutritionValue) []Badge {
	if prod == nil || ref == nil {
		return nil
	}

	var entries []Badge
	for code, u := range ref {
		p, ok := prod[code]
		if !ok || !Comparable(p, u) {
			continue
		}
		var b Badge
		b.Code = code
		if u.Amount != 0 {
			pct := (p.Amount - u.Amount) / u.Amount * 100
			b.Pct = &pct
			b.Verdict = Judge(code, pct)
		} else {
			b.Verdict = Neutral
		}
		entries = append(entries, b)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return math.Abs(pctOrZero(entries[i])) > math.Abs(pctOrZero(entries[j]))
	})
	if len(entries) > 4 {
		entries = entries[:4]
	}
	return entries
}

func pctOrZero(b Badge) float64 {
	if b.Pct == nil {
		return 0
	}
	return *b.Pct
}

// SortGroupsByCode orders groups by one nutrient column. Groups whose
// value is missing or unit-incompatible with the reference always sink
// to the bottom, whichever direction is requested.
func SortGroupsByCode(groups []model.ProductGroup, code string, ref map[string]model.NutritionValue, descending bool) {
	u := ref[code]
	value := func(g model.ProductGroup) (float64, bool) {
		n, ok := g.Nutrition[code]
		if !ok || !Comparable(n, u) {
			return 0, false
		}
		return n.Amount, true
	}
	sort.SliceStable(groups, func(i, j int) bool {
		av, aok := value(groups[i])
		bv, bok := value(groups[j])
		if aok != bok {
			return aok
		}
		if !aok {
			return false
		}
		if descending {
			return av > bv
		}
		return av < bv
	})
}
