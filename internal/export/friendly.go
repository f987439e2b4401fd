package export

import "strings"

var friendlyNames = map[string]string{
	"energi_kcal":      "Kcal",
	"energi_kj":        "kJ",
	"fett_totalt":      "Total fat",
	"mettet_fett":      "Saturated fat",
	"umettet_fett":     "Unsaturated fat",
	"enumettet_fett":   "Monounsaturated fat",
	"flerumettet_fett": "Polyunsaturated fat",
	"karbohydrater":    "Carbs",
	"sukkerarter":      "Sugar",
	"kostfiber":        "Fiber",
	"protein":          "Protein",
	"salt":             "Salt",
}

// FriendlyName maps a backend nutrition code to its display label.
// Unknown codes fall back to substring matching on the Norwegian fat
// vocabulary, then to the code itself.
func FriendlyName(code string) string {
	if name, ok := friendlyNames[code]; ok {
		return name
	}
	c := strings.ToLower(code)
	switch {
	case strings.Contains(c, "flerumett"):
		return "Polyunsaturated fat"
	case strings.Contains(c, "enumett"):
		return "Monounsaturated fat"
	case strings.Contains(c, "umettet"):
		return "Unsaturated fat"
	case strings.Contains(c, "mettet"):
		return "Saturated fat"
	}
	return code
}

var friendlyAllergens = map[string]string{
	"gluten":     "Gluten",
	"egg":        "Egg",
	"eggs":       "Eggs",
	"milk":       "Milk",
	"lactose":    "Lactose",
	"peanuts":    "Peanuts",
	"peanut":     "Peanut",
	"nuts":       "Tree nuts",
	"almond":     "Almond",
	"almonds":    "Almonds",
	"hazelnut":   "Hazelnut",
	"hazelnuts":  "Hazelnuts",
	"cashew":     "Cashew",
	"cashews":    "Cashews",
	"pistachio":  "Pistachio",
	"pistachios": "Pistachios",
	"walnut":     "Walnut",
	"walnuts":    "Walnuts",
	"pecan":      "Pecan",
	"pecans":     "Pecans",
	"brazilnut":  "Brazil nut",
	"brazilnuts": "Brazil nuts",
	"sesame":     "Sesame",
	"soy":        "Soy",
	"soya":       "Soya",
	"fish":       "Fish",
}

// FriendlyAllergen maps an allergen code to its display label.
func FriendlyAllergen(code string) string {
	if name, ok := friendlyAllergens[strings.ToLower(code)]; ok {
		return name
	}
	return "Contains"
}
