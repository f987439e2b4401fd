// Package nutrition extracts nutrition values from noisy pasted or
// OCR-derived label text and corrects implausible numbers.
package nutrition

import "regexp"

// FieldKind identifies one of the eleven nutrition quantities the
// extractor recognizes.
type FieldKind string

const (
	EnergyKcal   FieldKind = "energy_kcal"
	EnergyKJ     FieldKind = "energy_kj"
	FatTotal     FieldKind = "fat_total"
	FatSaturated FieldKind = "fat_saturated"
	FatMono      FieldKind = "fat_mono"
	FatPoly      FieldKind = "fat_poly"
	Carbs        FieldKind = "carbs"
	Sugar        FieldKind = "sugar"
	Fiber        FieldKind = "fiber"
	Protein      FieldKind = "protein"
	Salt         FieldKind = "salt"
)

// scoreBand scores a decimal-point-correction candidate by how typical
// it is on a per-100g label. Bands are tried in order, first hit wins.
type scoreBand struct {
	lo, hi float64
	score  int
}

// fieldSpec is the declarative per-field configuration: label patterns,
// the plausible value range, and the candidate scoring bands. All
// thresholds come straight from observed label data and are heuristics,
// not guaranteed-correct domain rules.
type fieldSpec struct {
	kind      FieldKind
	formField string
	min, max  float64
	bands     []scoreBand
	defScore  int
	patterns  []*regexp.Regexp
}

// Patterns are bilingual (Norwegian/English) and tolerate both inline
// ("Energy: 123 kcal") and multi-line ("Energy\n123kcal") layouts.
// Order matters: more specific label forms first, bare-unit fallbacks
// last.
var fieldSpecs = []fieldSpec{
	{
		kind: EnergyKcal, formField: "energi_kcal",
		min: 0, max: 900,
		defScore: 50,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:energy|calories?|kalorier)\s*[\s:]*(\d+(?:[,.]\s*\d+)?)\s*(?:kcal|cal)`),
			regexp.MustCompile(`(?i)(?:energy|kalorier)[\s\n]+[\s\t]*(\d+(?:[,.]\s*\d+)?)\s*kcal`),
			regexp.MustCompile(`(?i)(\d+(?:[,.]\s*\d+)?)\s*kcal`),
		},
	},
	{
		kind: EnergyKJ, formField: "energi_kj",
		min: 0, max: 4000,
		defScore: 50,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:energy|energi)\s*[\s:]*(\d+(?:[,.]\s*\d+)?)\s*kj`),
			regexp.MustCompile(`(?i)(?:energy|energi)[\s\n]+[\s\t]*(\d+(?:[,.]\s*\d+)?)\s*kj`),
			regexp.MustCompile(`(?i)(\d+(?:[,.]\s*\d+)?)\s*kj`),
		},
	},
	{
		kind: FatTotal, formField: "fett_totalt",
		min: 0, max: 100,
		bands: []scoreBand{
			{20, 80, 100},
			{5, 90, 80},
			{1, 100, 50},
		},
		defScore: 20,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?im)(?:^|\n|^total\s+)?(?:fat|fett)\s*[\s:]*(\d+(?:[,.]\d+)?)\s*g`),
			regexp.MustCompile(`(?im)(?:^|\n)(?:fat|fett)[\s\n]+[\s\t]*(\d+(?:[,.]\d+)?)\s*g`),
		},
	},
	{
		kind: FatSaturated, formField: "mettet_fett",
		min: 0, max: 100,
		bands: []scoreBand{
			{0.5, 10, 100},
			{0.1, 20, 70},
			{20, 50, 40},
		},
		defScore: 20,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:of\s+which\s+)?(?:saturates?|saturated|mettet\s*fett?)\s*[\s:]*(\d+(?:[,.]\d+)?)\s*g`),
			regexp.MustCompile(`(?i)(?:mettet\s*fett?|saturated?)[\s\n]+[\s\t]*(\d+(?:[,.]\d+)?)\s*g`),
		},
	},
	{
		kind: FatMono, formField: "enumettet_fett",
		min: 0, max: 100,
		defScore: 50,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:mono[^a-z]*unsaturated?|enumettet)\s*[\s:]*(\d+(?:[,.]\d+)?)\s*g`),
		},
	},
	{
		kind: FatPoly, formField: "flerumettet_fett",
		min: 0, max: 100,
		defScore: 50,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:poly[^a-z]*unsaturated?|flerumettet)\s*[\s:]*(\d+(?:[,.]\d+)?)\s*g`),
		},
	},
	{
		kind: Carbs, formField: "karbohydrater",
		min: 0, max: 100,
		bands: []scoreBand{
			{20, 80, 100},
			{5, 90, 80},
			{1, 100, 50},
		},
		defScore: 20,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?im)(?:^|\n|^total\s+)?(?:carbohydrate?s?|karbohydrat(?:er)?)\s*[\s:]*(\d+(?:[,.]\d+)?)\s*g`),
			regexp.MustCompile(`(?im)(?:carbohydrate?s?|karbohydrat(?:er)?)[\s\n]+[\s\t]*(\d+(?:[,.]\d+)?)\s*g`),
		},
	},
	{
		kind: Sugar, formField: "sukkerarter",
		min: 0, max: 100,
		bands: []scoreBand{
			{0.5, 10, 100},
			{0.1, 20, 70},
			{20, 50, 40},
		},
		defScore: 20,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:of\s+which\s+)?(?:sugars?|sukkerarter?)\s*[\s:]*(\d+(?:[,.]\d+)?)\s*g`),
			regexp.MustCompile(`(?i)(?:sukkerarter?|sugars?)[\s\n]+[\s\t]*(\d+(?:[,.]\d+)?)\s*g`),
		},
	},
	{
		kind: Fiber, formField: "kostfiber",
		min: 0, max: 50,
		bands: []scoreBand{
			{2, 15, 100},
			{0.5, 30, 60},
		},
		defScore: 30,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:fiber|fibre|kostfiber)\s*[\s:]*(\d+(?:[,.]\d+)?)\s*g`),
			regexp.MustCompile(`(?i)(?:fiber|fibre|kostfiber)[\s\n]+[\s\t]*(\d+(?:[,.]\d+)?)\s*g`),
		},
	},
	{
		kind: Protein, formField: "protein",
		min: 0, max: 100,
		bands: []scoreBand{
			{20, 80, 100},
			{5, 90, 80},
			{1, 100, 50},
		},
		defScore: 20,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?im)(?:^|\n)(?:protein)\s*[\s:]*(\d+(?:[,.]\d+)?)\s*g`),
			regexp.MustCompile(`(?im)(?:^|\n)(?:protein)[\s\n]+[\s\t]*(\d+(?:[,.]\d+)?)\s*g`),
		},
	},
	{
		kind: Salt, formField: "salt",
		min: 0, max: 15,
		bands: []scoreBand{
			{0.5, 5, 100},
			{0.1, 10, 50},
		},
		defScore: 50,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?im)(?:^|\n)(?:salt|salz)\s*[\s:]*(\d+(?:[,.]\d+)?)\s*g`),
			regexp.MustCompile(`(?im)(?:^|\n)(?:salt|salz)[\s\n]+[\s\t]*(\d+(?:[,.]\d+)?)\s*g`),
		},
	},
}

var specByKind = func() map[FieldKind]*fieldSpec {
	m := make(map[FieldKind]*fieldSpec, len(fieldSpecs))
	for i := range fieldSpecs {
		m[fieldSpecs[i].kind] = &fieldSpecs[i]
	}
	return m
}()
