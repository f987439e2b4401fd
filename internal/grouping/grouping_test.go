package grouping

import (
	"testing"

	"nutrimatrix/internal/model"
)

func f(v float64) *float64 { return &v }

func nut(pairs ...any) map[string]model.NutritionValue {
	m := make(map[string]model.NutritionValue)
	for i := 0; i < len(pairs); i += 2 {
		m[pairs[i].(string)] = model.Num(pairs[i+1].(float64), "g")
	}
	return m
}

func TestGroupDropsOffersWithoutEAN(t *testing.T) {
	groups := Group([]model.StoreOffer{
		{Name: "No barcode", Store: "Rema"},
		{EAN: "7031100000001", Name: "Melk", Store: "Rema"},
	})
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if groups[0].EAN != "7031100000001" {
		t.Fatalf("unexpected EAN %q", groups[0].EAN)
	}
}

func TestGroupFirstSeenOrderAndKey(t *testing.T) {
	groups := Group([]model.StoreOffer{
		{EAN: "222", Name: "B", Store: "Rema"},
		{EAN: "111", Name: "A", Store: "Kiwi"},
		{EAN: "222", Name: "B", Store: "Meny"},
	})
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].EAN != "222" || groups[1].EAN != "111" {
		t.Fatalf("expected first-seen order 222,111; got %s,%s", groups[0].EAN, groups[1].EAN)
	}
	if groups[0].Key != "ean:222" {
		t.Fatalf("unexpected key %q", groups[0].Key)
	}
}

func TestGroupKeepsFirstNameBrandAndAllergens(t *testing.T) {
	groups := Group([]model.StoreOffer{
		{EAN: "1", Name: "", Brand: "", Store: "Rema"},
		{EAN: "1", Name: "Havregryn", Brand: "AXA", Store: "Kiwi",
			Allergens: map[string]model.AllergenValue{"gluten": model.Allergen(true)}},
		{EAN: "1", Name: "Havregryn Lettkokte", Brand: "Møllerens", Store: "Meny",
			Allergens: map[string]model.AllergenValue{"gluten": model.Allergen(false)}},
	})
	g := groups[0]
	if g.Name != "Havregryn" || g.Brand != "AXA" {
		t.Fatalf("expected first non-empty name/brand, got %q/%q", g.Name, g.Brand)
	}
	if g.Allergens == nil || !g.Allergens["gluten"].Present() {
		t.Fatal("expected first non-nil allergen map to stick")
	}
}

func TestGroupNutritionCompletenessNeverRegresses(t *testing.T) {
	complete := nut("energi_kcal", 250.0, "protein", 8.5, "salt", 0.7)
	sparse := nut("energi_kcal", 250.0)

	// Complete map first, sparse second: sparse must not win.
	groups := Group([]model.StoreOffer{
		{EAN: "1", Name: "X", Store: "Rema", Nutrition: complete},
		{EAN: "1", Name: "X", Store: "Kiwi", Nutrition: sparse},
	})
	if len(groups[0].Nutrition) != 3 {
		t.Fatalf("nutrition regressed to %d entries", len(groups[0].Nutrition))
	}

	// Sparse first, complete second: complete must replace.
	groups = Group([]model.StoreOffer{
		{EAN: "1", Name: "X", Store: "Rema", Nutrition: sparse},
		{EAN: "1", Name: "X", Store: "Kiwi", Nutrition: complete},
	})
	if len(groups[0].Nutrition) != 3 {
		t.Fatalf("expected more complete nutrition to win, got %d entries", len(groups[0].Nutrition))
	}
}

func TestGroupNutritionTieKeepsExisting(t *testing.T) {
	first := nut("protein", 8.0)
	second := nut("salt", 1.2)
	groups := Group([]model.StoreOffer{
		{EAN: "1", Name: "X", Store: "Rema", Nutrition: first},
		{EAN: "1", Name: "X", Store: "Kiwi", Nutrition: second},
	})
	if _, ok := groups[0].Nutrition["protein"]; !ok {
		t.Fatal("tie on completeness must keep the existing map")
	}
}

func TestGroupZeroAmountsDoNotCountTowardsCompleteness(t *testing.T) {
	zeros := nut("protein", 0.0, "salt", 0.0, "sukkerarter", 0.0)
	one := nut("protein", 8.0)
	groups := Group([]model.StoreOffer{
		{EAN: "1", Name: "X", Store: "Rema", Nutrition: one},
		{EAN: "1", Name: "X", Store: "Kiwi", Nutrition: zeros},
	})
	if groups[0].Nutrition["protein"].Amount != 8.0 {
		t.Fatal("map full of zero amounts must not beat one positive entry")
	}
}

func TestGroupStorePriceMinimality(t *testing.T) {
	groups := Group([]model.StoreOffer{
		{EAN: "1", Name: "X", Store: "Rema", CurrentPrice: f(32.9), CurrentUnitPrice: f(65.8), WeightUnit: "kg"},
		{EAN: "1", Name: "X", Store: "Rema", CurrentPrice: f(29.9)},
		{EAN: "1", Name: "X", Store: "Rema", CurrentPrice: f(34.5), CurrentUnitPrice: f(61.0), WeightUnit: "kg"},
		{EAN: "1", Name: "X", Store: "Kiwi", CurrentPrice: f(31.0)},
	})
	g := groups[0]
	if len(g.Stores) != 2 {
		t.Fatalf("expected one entry per store, got %d", len(g.Stores))
	}
	rema := g.Stores[0]
	if rema.Store != "Rema" || *rema.Price != 29.9 {
		t.Fatalf("expected min price 29.9 for Rema, got %v", *rema.Price)
	}
	if *rema.UnitPrice != 61.0 || rema.WeightUnit != "kg" {
		t.Fatalf("expected min unit price 61.0/kg, got %v/%s", *rema.UnitPrice, rema.WeightUnit)
	}
}

func TestGroupMissingStoreNameDefaultsToUnknown(t *testing.T) {
	groups := Group([]model.StoreOffer{
		{EAN: "1", Name: "X", CurrentPrice: f(10)},
	})
	if groups[0].Stores[0].Store != "Unknown" {
		t.Fatalf("got store %q", groups[0].Stores[0].Store)
	}
}

func TestGroupUpdatedAtKeepsLatestParseable(t *testing.T) {
	groups := Group([]model.StoreOffer{
		{EAN: "1", Name: "X", Store: "Rema", UpdatedAt: "2025-06-01T10:00:00Z"},
		{EAN: "1", Name: "X", Store: "Kiwi", UpdatedAt: "not a date"},
		{EAN: "1", Name: "X", Store: "Meny", UpdatedAt: "2025-08-12T09:30:00Z"},
	})
	want, _ := model.ParseUpdatedAt("2025-08-12T09:30:00Z")
	if !groups[0].UpdatedAt.Equal(want) {
		t.Fatalf("expected latest timestamp, got %v", groups[0].UpdatedAt)
	}
}

func TestGroupImageKeepsFirstValid(t *testing.T) {
	groups := Group([]model.StoreOffer{
		{EAN: "1", Name: "X", Store: "Rema", Image: "12345678901"},
		{EAN: "1", Name: "X", Store: "Kiwi", Image: "http://bilder.kolonial.no/x.jpg"},
		{EAN: "1", Name: "X", Store: "Meny", Image: "https://example.com/img.jpg"},
		{EAN: "1", Name: "X", Store: "Spar", Image: "https://example.com/other.jpg"},
	})
	if groups[0].Image != "https://example.com/img.jpg" {
		t.Fatalf("got image %q", groups[0].Image)
	}
}

func TestGroupAccumulatesIDs(t *testing.T) {
	groups := Group([]model.StoreOffer{
		{EAN: "1", ID: "a", Name: "X", Store: "Rema"},
		{EAN: "1", ID: "b", Name: "X", Store: "Kiwi"},
		{EAN: "1", ID: "a", Name: "X", Store: "Meny"},
	})
	if len(groups[0].IDs) != 2 {
		t.Fatalf("expected 2 distinct ids, got %v", groups[0].IDs)
	}
}

// Regrouping already-grouped data must not change barcodes or stores.
func TestGroupIdempotence(t *testing.T) {
	offers := []model.StoreOffer{
		{EAN: "1", ID: "a", Name: "X", Store: "Rema", CurrentPrice: f(29.9), Nutrition: nut("protein", 8.0)},
		{EAN: "1", ID: "b", Name: "X", Store: "Kiwi", CurrentPrice: f(31.0)},
		{EAN: "2", ID: "c", Name: "Y", Store: "Meny", CurrentPrice: f(12.5)},
	}
	first := Group(offers)

	var flattened []model.StoreOffer
	for _, g := range first {
		for _, s := range g.Stores {
			flattened = append(flattened, model.StoreOffer{
				EAN:          g.EAN,
				Name:         g.Name,
				Brand:        g.Brand,
				Store:        s.Store,
				CurrentPrice: s.Price,
				Nutrition:    g.Nutrition,
			})
		}
	}
	second := Group(flattened)

	if len(first) != len(second) {
		t.Fatalf("group count changed: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].EAN != second[i].EAN {
			t.Fatalf("EAN order changed: %s vs %s", first[i].EAN, second[i].EAN)
		}
		if len(first[i].Stores) != len(second[i].Stores) {
			t.Fatalf("store list changed for %s", first[i].EAN)
		}
		for j := range first[i].Stores {
			a, b := first[i].Stores[j], second[i].Stores[j]
			if a.Store != b.Store {
				t.Fatalf("store changed: %s vs %s", a.Store, b.Store)
			}
			if model.FiniteNumber(a.Price) != model.FiniteNumber(b.Price) {
				t.Fatalf("price presence changed for %s", a.Store)
			}
			if model.FiniteNumber(a.Price) && *a.Price != *b.Price {
				t.Fatalf("price changed for %s: %v vs %v", a.Store, *a.Price, *b.Price)
			}
		}
	}
}
