// Package packing derives a categorized packing list from the weather
// outlook via independently evaluated rules. Derivation is pure and
// idempotent: the same outlook always yields the same item set.
package packing

import (
	"fmt"
	"sort"

	"github.com/wanderlab/voyago/schema"
)

var (
	_rainThreshold = 0.4
	_coldThreshold = 10.0
	_heatThreshold = 30.0
)

// item is a rule's contribution before merging.
type item struct {
	category string
	name     string
	quantity int
	reason   string
	// priority decides which reason survives when rules collide on the same
	// item name; higher is more specific.
	priority int
}

// Deriver evaluates the packing rules.
type Deriver struct{}

// New returns a Deriver.
func New() *Deriver {
	return &Deriver{}
}

// Derive builds the packing list for a plan. Every rule is evaluated
// independently and may add items; duplicates are merged keeping the most
// specific reason. An absent outlook yields the destination-agnostic baseline
// tagged low-confidence instead of nothing.
func (d *Deriver) Derive(plan *schema.TripPlan) *schema.PackingList {
	days := plan.Preferences.TripDays
	items := baseline(days)

	list := &schema.PackingList{}
	if plan.Weather == nil {
		list.LowConfidence = true
	} else {
		items = append(items, weatherItems(plan.Weather)...)
	}

	list.Items = merge(items)
	return list
}

// baseline is the destination-agnostic minimum.
func baseline(days int) []item {
	outfits := days
	if outfits > 7 {
		outfits = 7
	}
	const reason = "travel baseline"
	return []item{
		{category: "documents", name: "passport", quantity: 1, reason: reason},
		{category: "documents", name: "travel insurance copy", quantity: 1, reason: reason},
		{category: "electronics", name: "phone charger", quantity: 1, reason: reason},
		{category: "electronics", name: "power adapter", quantity: 1, reason: reason},
		{category: "clothing", name: "daily outfit", quantity: outfits, reason: fmt.Sprintf("%d-day trip", days)},
		{category: "personal", name: "toiletry kit", quantity: 1, reason: reason},
	}
}

func weatherItems(w *schema.WeatherOutlook) []item {
	var out []item
	minTemp, maxTemp := w.TempRange()

	if p := w.MaxPrecipProb(); p > _rainThreshold {
		reason := fmt.Sprintf("rain probability above %.0f%%", _rainThreshold*100)
		out = append(out,
			item{category: "clothing", name: "rain jacket", quantity: 1, reason: reason, priority: 2},
			item{category: "accessories", name: "umbrella", quantity: 1, reason: reason, priority: 2},
		)
	}
	if minTemp < _coldThreshold {
		reason := fmt.Sprintf("minimum temperature below %.0f°C", _coldThreshold)
		out = append(out,
			item{category: "clothing", name: "warm layers", quantity: 2, reason: reason, priority: 2},
			item{category: "accessories", name: "gloves", quantity: 1, reason: reason, priority: 1},
		)
	}
	if maxTemp > _heatThreshold {
		reason := fmt.Sprintf("maximum temperature above %.0f°C", _heatThreshold)
		out = append(out,
			item{category: "personal", name: "sunscreen", quantity: 1, reason: reason, priority: 2},
			item{category: "accessories", name: "sunglasses", quantity: 1, reason: reason, priority: 1},
			item{category: "accessories", name: "sun hat", quantity: 1, reason: reason, priority: 1},
		)
	}
	if w.HasCondition("Snow") {
		reason := "snow in the forecast"
		out = append(out,
			item{category: "clothing", name: "winter boots", quantity: 1, reason: reason, priority: 3},
			item{category: "clothing", name: "warm layers", quantity: 2, reason: reason, priority: 3},
		)
	}
	return out
}

// merge deduplicates by item name, keeping the highest-priority reason and
// the larger quantity, then orders deterministically by category and name.
func merge(items []item) []schema.PackingItem {
	byName := make(map[string]item, len(items))
	for _, it := range items {
		existing, ok := byName[it.name]
		if !ok {
			byName[it.name] = it
			continue
		}
		if it.priority > existing.priority {
			existing.reason = it.reason
			existing.priority = it.priority
		}
		if it.quantity > existing.quantity {
			existing.quantity = it.quantity
		}
		byName[it.name] = existing
	}

	out := make([]schema.PackingItem, 0, len(byName))
	for _, it := range byName {
		out = append(out, schema.PackingItem{
			Category: it.category,
			Name:     it.name,
			Quantity: it.quantity,
			Reason:   it.reason,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out
}
