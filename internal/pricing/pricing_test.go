package pricing

import "testing"

func TestQuoteTotalIsSumOfParts(t *testing.T) {
	tests := []struct {
		size     string
		toppings []string
		city     string
	}{
		{"1", nil, ""},
		{"2", []string{"sprinkles"}, "colombo_01"},
		{"3", []string{"nuts", "cherries", "fresh_fruit"}, "nugegoda"},
		{"4", []string{"sprinkles", "nuts", "chocolate_chips"}, "moratuwa"},
	}

	for _, tc := range tests {
		q := Quote(tc.size, tc.toppings, tc.city)
		if q.TotalPrice != q.BasePrice+q.AddonsPrice+q.DeliveryFee {
			t.Errorf("Quote(%q, %v, %q): total %v != %v + %v + %v",
				tc.size, tc.toppings, tc.city, q.TotalPrice, q.BasePrice, q.AddonsPrice, q.DeliveryFee)
		}
	}
}

func TestQuoteUnknownSizeFallsBackToSmallestTier(t *testing.T) {
	q := Quote("9", nil, "")
	if q.BasePrice != 2500 {
		t.Fatalf("expected fallback base price 2500 for size '9', got %v", q.BasePrice)
	}
	if q.TotalPrice != 2500 {
		t.Fatalf("expected total 2500, got %v", q.TotalPrice)
	}
}

func TestQuoteUnknownToppingContributesZero(t *testing.T) {
	q := Quote("1", []string{"unknown"}, "")
	if q.AddonsPrice != 0 {
		t.Fatalf("expected addonsPrice 0 for unknown topping, got %v", q.AddonsPrice)
	}

	q = Quote("1", []string{"sprinkles", "typo_here"}, "")
	if q.AddonsPrice != 250 {
		t.Fatalf("expected only sprinkles to count, got %v", q.AddonsPrice)
	}
}

func TestQuoteDeliveryFeeLookup(t *testing.T) {
	if q := Quote("1", nil, "colombo_01"); q.DeliveryFee != 300 {
		t.Fatalf("expected colombo_01 fee 300, got %v", q.DeliveryFee)
	}
	if q := Quote("1", nil, "atlantis"); q.DeliveryFee != 0 {
		t.Fatalf("expected unknown city fee 0, got %v", q.DeliveryFee)
	}
}

func TestQuoteReferenceOrder(t *testing.T) {
	q := Quote("2", []string{"sprinkles", "nuts"}, "nugegoda")
	if q.BasePrice != 4500 {
		t.Errorf("basePrice = %v, want 4500", q.BasePrice)
	}
	if q.AddonsPrice != 600 {
		t.Errorf("addonsPrice = %v, want 600", q.AddonsPrice)
	}
	if q.DeliveryFee != 600 {
		t.Errorf("deliveryFee = %v, want 600", q.DeliveryFee)
	}
	if q.TotalPrice != 5700 {
		t.Errorf("totalPrice = %v, want 5700", q.TotalPrice)
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := map[string]string{
		"Colombo 01":     "colombo_01",
		"  nugegoda  ":   "nugegoda",
		"Mount  Lavinia": "mount_lavinia",
		"":               "",
	}
	for in, want := range tests {
		if got := NormalizeKey(in); got != want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestQuoteNormalizesCityInput(t *testing.T) {
	if q := Quote("1", nil, "Colombo 01"); q.DeliveryFee != 300 {
		t.Fatalf("expected normalized city lookup to find colombo_01, got fee %v", q.DeliveryFee)
	}
}

func TestCatalogOptionsSortedAndComplete(t *testing.T) {
	sizes := SizeOptions()
	if len(sizes) != 4 {
		t.Fatalf("expected 4 size tiers, got %d", len(sizes))
	}
	for i := 1; i < len(sizes); i++ {
		if sizes[i-1].Key >= sizes[i].Key {
			t.Fatalf("size options not sorted: %v", sizes)
		}
	}

	if !KnownTopping("sprinkles") {
		t.Fatal("expected sprinkles to be a known topping")
	}
	if KnownTopping("unknown") {
		t.Fatal("did not expect unknown topping key to be known")
	}
}
