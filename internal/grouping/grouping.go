// Package grouping folds raw per-store offers into deduplicated
// per-product groups keyed by EAN.
package grouping

import (
	"log"
	"strings"

	"nutrimatrix/internal/model"
)

type accumulator struct {
	group      model.ProductGroup
	stores     map[string]*model.StorePrice
	storeOrder []string
	ids        map[string]struct{}
	idOrder    []string
}

// Group folds offers left to right into one ProductGroup per EAN.
// Offers without an EAN are dropped with a diagnostic. Output order is
// first-seen EAN order.
func Group(offers []model.StoreOffer) []model.ProductGroup {
	byEAN := make(map[string]*accumulator)
	var order []string

	for _, p := range offers {
		if p.EAN == "" {
			log.Printf("grouping: offer without EAN skipped: %q (%s)", p.Name, p.Store)
			continue
		}
		acc, ok := byEAN[p.EAN]
		if !ok {
			acc = &accumulator{
				group: model.ProductGroup{
					Key: "ean:" + p.EAN,
					EAN: p.EAN,
				},
				stores: make(map[string]*model.StorePrice),
				ids:    make(map[string]struct{}),
			}
			byEAN[p.EAN] = acc
			order = append(order, p.EAN)
		}
		merge(acc, p)
	}

	result := make([]model.ProductGroup, 0, len(order))
	for _, ean := range order {
		acc := byEAN[ean]
		g := acc.group
		g.Stores = make([]model.StorePrice, 0, len(acc.storeOrder))
		for _, name := range acc.storeOrder {
			g.Stores = append(g.Stores, *acc.stores[name])
		}
		g.IDs = acc.idOrder
		if len(g.Stores) > 1 {
			names := make([]string, len(g.Stores))
			for i, s := range g.Stores {
				names[i] = s.Store
			}
			log.Printf("grouping: %q (EAN %s) offered by %d stores: %s",
				g.Name, g.EAN, len(g.Stores), strings.Join(names, ", "))
		}
		result = append(result, g)
	}

	log.Printf("grouping: %d offers folded into %d unique products", len(offers), len(result))
	return result
}

func merge(acc *accumulator, p model.StoreOffer) {
	g := &acc.group

	// First non-empty name and brand win.
	if g.Name == "" && p.Name != "" {
		g.Name = p.Name
	}
	if g.Brand == "" && p.Brand != "" {
		g.Brand = p.Brand
	}

	// First image that survives validation wins.
	if g.Image == "" && IsValidImageURL(p.Image) {
		g.Image = p.Image
	}

	// Keep the chronologically latest parseable timestamp.
	if t, ok := model.ParseUpdatedAt(p.UpdatedAt); ok && t.After(g.UpdatedAt) {
		g.UpdatedAt = t
	}

	// Replace the nutrition map only when the incoming one is strictly
	// more complete. Ties keep what we have, so completeness never
	// regresses regardless of offer order.
	if p.Nutrition != nil {
		if positiveCount(p.Nutrition) > positiveCount(g.Nutrition) {
			g.Nutrition = p.Nutrition
		}
	}

	// First non-nil allergen map wins.
	if g.Allergens == nil && p.Allergens != nil {
		g.Allergens = p.Allergens
	}

	storeName := p.Store
	if storeName == "" {
		storeName = "Unknown"
	}
	sp, ok := acc.stores[storeName]
	if !ok {
		sp = &model.StorePrice{
			Store:      storeName,
			WeightUnit: p.WeightUnit,
			URL:        p.URL,
		}
		acc.stores[storeName] = sp
		acc.storeOrder = append(acc.storeOrder, storeName)
	}
	if model.FiniteNumber(p.CurrentPrice) && (!model.FiniteNumber(sp.Price) || *p.CurrentPrice < *sp.Price) {
		price := *p.CurrentPrice
		sp.Price = &price
	}
	if model.FiniteNumber(p.CurrentUnitPrice) && (!model.FiniteNumber(sp.UnitPrice) || *p.CurrentUnitPrice < *sp.UnitPrice) {
		unitPrice := *p.CurrentUnitPrice
		sp.UnitPrice = &unitPrice
		if p.WeightUnit != "" {
			sp.WeightUnit = p.WeightUnit
		}
	}
	if sp.URL == "" && p.URL != "" {
		sp.URL = p.URL
	}

	if p.ID != "" {
		if _, seen := acc.ids[p.ID]; !seen {
			acc.ids[p.ID] = struct{}{}
			acc.idOrder = append(acc.idOrder, p.ID)
		}
	}
}

// positiveCount is the completeness measure for a nutrition map: the
// number of entries with a positive finite amount.
func positiveCount(m map[string]model.NutritionValue) int {
	n := 0
	for _, v := range m {
		if v.Valid() && v.Amount > 0 {
			n++
		}
	}
	return n
}
