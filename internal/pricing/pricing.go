package pricing

import (
	"sort"
	"strings"
)

// Breakdown is the price snapshot stored on an order at creation time. It is
// never recomputed after the order document is written.
type Breakdown struct {
	BasePrice   float64 `bson:"basePrice" json:"basePrice"`
	AddonsPrice float64 `bson:"addonsPrice" json:"addonsPrice"`
	DeliveryFee float64 `bson:"deliveryFee" json:"deliveryFee"`
	TotalPrice  float64 `bson:"totalPrice" json:"totalPrice"`
}

const fallbackSizeKey = "1"

// Size tiers. Prices in LKR.
var sizePrices = map[string]float64{
	"1": 2500, // 500g
	"2": 4500, // 1kg
	"3": 6500, // 1.5kg
	"4": 8500, // 2kg
}

var toppingPrices = map[string]float64{
	"sprinkles":       250,
	"nuts":            350,
	"cherries":        300,
	"chocolate_chips": 400,
	"fresh_fruit":     500,
	"candles":         150,
	"edible_flowers":  450,
}

var cityFees = map[string]float64{
	"colombo_01":    300,
	"colombo_02":    300,
	"colombo_03":    350,
	"dehiwala":      450,
	"mount_lavinia": 500,
	"nugegoda":      600,
	"maharagama":    650,
	"kotte":         550,
	"battaramulla":  600,
	"moratuwa":      700,
}

// Quote computes the authoritative price breakdown for a cake order. It is
// the single pricing entry point for both the preview endpoint and order
// creation. Lookups never fail: an unknown size falls back to the smallest
// tier, unknown toppings contribute nothing, and an unknown city costs no
// delivery fee.
func Quote(sizeKey string, toppingKeys []string, cityKey string) Breakdown {
	base, ok := sizePrices[strings.TrimSpace(sizeKey)]
	if !ok {
		base = sizePrices[fallbackSizeKey]
	}

	var addons float64
	for _, key := range toppingKeys {
		addons += toppingPrices[NormalizeKey(key)]
	}

	fee := cityFees[NormalizeKey(cityKey)]

	return Breakdown{
		BasePrice:   base,
		AddonsPrice: addons,
		DeliveryFee: fee,
		TotalPrice:  base + addons + fee,
	}
}

// NormalizeKey maps user input onto catalog keys: trimmed, lowercased,
// spaces collapsed to underscores ("Colombo 01" -> "colombo_01").
func NormalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	return strings.Join(strings.Fields(key), "_")
}

// Option is a priced catalog entry exposed by the options endpoint.
type Option struct {
	Key   string  `json:"key"`
	Price float64 `json:"price"`
}

func SizeOptions() []Option    { return sortedOptions(sizePrices) }
func ToppingOptions() []Option { return sortedOptions(toppingPrices) }
func CityOptions() []Option    { return sortedOptions(cityFees) }

// KnownTopping reports whether a topping key exists in the fee table.
func KnownTopping(key string) bool {
	_, ok := toppingPrices[NormalizeKey(key)]
	return ok
}

func sortedOptions(table map[string]float64) []Option {
	opts := make([]Option, 0, len(table))
	for key, price := range table {
		opts = append(opts, Option{Key: key, Price: price})
	}
	sort.Slice(opts, func(i, j int) bool { return opts[i].Key < opts[j].Key })
	return opts
}
