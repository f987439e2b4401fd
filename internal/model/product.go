package model

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// StoreOffer is one store's listing of a product as prepared by the
// comparison backend. The EAN is the grouping key across stores.
type StoreOffer struct {
	ID               string                    `json:"id"`
	EAN              string                    `json:"ean"`
	Name             string                    `json:"name"`
	Brand            string                    `json:"brand"`
	Image            string                    `json:"image"`
	Store            string                    `json:"store"`
	CurrentPrice     *float64                  `json:"current_price"`
	CurrentUnitPrice *float64                  `json:"current_unit_price"`
	WeightUnit       string                    `json:"weight_unit"`
	URL              string                    `json:"url"`
	Nutrition        map[string]NutritionValue `json:"nutrition"`
	Allergens        map[string]AllergenValue  `json:"allergens"`
	UpdatedAt        string                    `json:"updated_at"`
}

// StorePrice is the per-store aggregate inside a ProductGroup: the
// lowest price and lowest unit price seen for that store.
type StorePrice struct {
	Store      string   `json:"store"`
	Price      *float64 `json:"price"`
	UnitPrice  *float64 `json:"unit_price"`
	WeightUnit string   `json:"weight_unit"`
	URL        string   `json:"url"`
}

// ProductGroup is the deduplicated aggregate of all offers sharing an EAN.
type ProductGroup struct {
	Key       string                    `json:"key"`
	EAN       string                    `json:"ean"`
	Name      string                    `json:"name"`
	Brand     string                    `json:"brand"`
	Image     string                    `json:"image"`
	Nutrition map[string]NutritionValue `json:"nutrition"`
	Allergens map[string]AllergenValue  `json:"allergens"`
	UpdatedAt time.Time                 `json:"updated_at"`
	Stores    []StorePrice              `json:"stores"`
	IDs       []string                  `json:"ids"`
}

// UserProduct is the caller-provided baseline ("my product") the matrix
// compares against.
type UserProduct struct {
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	Nutrition   map[string]NutritionValue `json:"nutrition"`
}

// ProductData is the envelope returned by GET /get_product_data.
type ProductData struct {
	Products       []StoreOffer `json:"products"`
	NutritionCodes []string     `json:"nutrition_codes"`
	AllergenCodes  []string     `json:"allergen_codes"`
	Stores         []string     `json:"stores"`
	Categories     []string     `json:"categories"`
	UserProduct    *UserProduct `json:"user_product"`
	NutritionUnit  string       `json:"nutrition_unit"`
	Timestamp      string       `json:"timestamp"`
}

// NutritionValue is a single nutrient amount with its unit. The backend
// is not consistent about the wire shape, so the decoder accepts an
// {amount, unit} object, a bare number, or a "12.4 g" style string and
// normalizes here instead of shape-sniffing at every use site.
type NutritionValue struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
	ok     bool
}

var leadingNumber = regexp.MustCompile(`^[\d.]+`)

func (v *NutritionValue) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*v = NutritionValue{}
		return nil
	}
	if strings.HasPrefix(s, "{") {
		var obj struct {
			Amount *float64 `json:"amount"`
			Unit   string   `json:"unit"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		if obj.Amount != nil && finite(*obj.Amount) {
			*v = NutritionValue{Amount: *obj.Amount, Unit: obj.Unit, ok: true}
		} else {
			*v = NutritionValue{Unit: obj.Unit}
		}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		if m := leadingNumber.FindString(strings.TrimSpace(str)); m != "" {
			if f, err := strconv.ParseFloat(m, 64); err == nil && finite(f) {
				*v = NutritionValue{Amount: f, ok: true}
				return nil
			}
		}
		*v = NutritionValue{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	if finite(f) {
		*v = NutritionValue{Amount: f, ok: true}
	} else {
		*v = NutritionValue{}
	}
	return nil
}

// MarshalJSON keeps absent values absent (null) so a cached payload
// round-trips without inventing zero amounts.
func (v NutritionValue) MarshalJSON() ([]byte, error) {
	if !v.ok {
		return []byte("null"), nil
	}
	return json.Marshal(struct {
		Amount float64 `json:"amount"`
		Unit   string  `json:"unit"`
	}{v.Amount, v.Unit})
}

// Valid reports whether the value carries a usable finite amount.
// Absent and non-finite amounts are missing, not zero.
func (v NutritionValue) Valid() bool { return v.ok && finite(v.Amount) }

// Num builds a valid NutritionValue, mainly for tests and fixtures.
func Num(amount float64, unit string) NutritionValue {
	return NutritionValue{Amount: amount, Unit: unit, ok: finite(amount)}
}

// AllergenValue is whatever the backend sent for an allergen code:
// a bool, a number, or a free-form string like "may contain".
type AllergenValue struct {
	raw any
}

func (a *AllergenValue) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	a.raw = v
	return nil
}

func (a AllergenValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.raw)
}

// Present reports whether the value indicates the allergen is present.
// Explicit negatives ("no", "none", "nei", "0", false) count as absent;
// any other non-empty answer counts as present.
func (a AllergenValue) Present() bool {
	switch v := a.raw.(type) {
	case bool:
		return v
	case float64:
		return v > 0
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		switch s {
		case "", "no", "none", "false", "0", "nei":
			return false
		}
		return true
	}
	return false
}

// Allergen wraps a raw value, mainly for tests and fixtures.
func Allergen(v any) AllergenValue { return AllergenValue{raw: v} }

// ParseUpdatedAt parses the backend's updated_at stamps. Malformed
// values are reported as absent, never as an error.
func ParseUpdatedAt(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FiniteNumber reports whether p holds a usable price. nil, NaN and
// infinities are all treated as missing.
func FiniteNumber(p *float64) bool {
	return p != nil && finite(*p)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
