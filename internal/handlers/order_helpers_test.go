package handlers

import (
	"regexp"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VenuriN/Online-Cake-ordering-management-system-sub000/internal/lifecycle"
)

func validCreateRequest() createOrderRequest {
	return createOrderRequest{
		CakeSize:        "2",
		CakeShape:       "round",
		Flavor:          "chocolate",
		Frosting:        "buttercream",
		Toppings:        []string{"sprinkles", "nuts"},
		Name:            "Amara Perera",
		Email:           "amara@example.com",
		Phone:           "0771234567",
		DeliveryDate:    time.Now().Add(72 * time.Hour),
		DeliveryAddress: "12 Temple Road",
		DeliveryCity:    "nugegoda",
		PaymentMethod:   "cash",
	}
}

func TestBuildOrderComputesPriceSnapshot(t *testing.T) {
	order, err := buildOrderFromRequest(validCreateRequest())
	if err != nil {
		t.Fatalf("buildOrderFromRequest returned error: %v", err)
	}

	if order.BasePrice != 4500 || order.AddonsPrice != 600 || order.DeliveryFee != 600 {
		t.Fatalf("unexpected breakdown: base=%v addons=%v fee=%v",
			order.BasePrice, order.AddonsPrice, order.DeliveryFee)
	}
	if order.TotalPrice != 5700 {
		t.Fatalf("totalPrice = %v, want 5700", order.TotalPrice)
	}
	if order.TotalPrice != order.BasePrice+order.AddonsPrice+order.DeliveryFee {
		t.Fatal("totalPrice is not the sum of its parts")
	}
}

func TestBuildOrderStartsPendingWithHistory(t *testing.T) {
	order, err := buildOrderFromRequest(validCreateRequest())
	if err != nil {
		t.Fatalf("buildOrderFromRequest returned error: %v", err)
	}

	if order.Status != lifecycle.StatusPending {
		t.Fatalf("status = %q, want pending", order.Status)
	}
	if len(order.StatusHistory) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(order.StatusHistory))
	}
	if order.StatusHistory[0].Status != lifecycle.StatusPending {
		t.Fatalf("first history entry = %q, want pending", order.StatusHistory[0].Status)
	}
	if order.IsPaid {
		t.Fatal("new order should not be marked paid")
	}
}

func TestBuildOrderRejectsBadInput(t *testing.T) {
	req := validCreateRequest()
	req.PaymentMethod = "cheque"
	if _, err := buildOrderFromRequest(req); err == nil {
		t.Fatal("expected error for invalid payment method")
	}

	req = validCreateRequest()
	req.CakeShape = "dodecahedron"
	if _, err := buildOrderFromRequest(req); err == nil {
		t.Fatal("expected error for invalid cake shape")
	}

	req = validCreateRequest()
	req.DeliveryDate = time.Now().Add(-24 * time.Hour)
	if _, err := buildOrderFromRequest(req); err == nil {
		t.Fatal("expected error for past delivery date")
	}
}

func TestBuildOrderShapeDefaultsToRound(t *testing.T) {
	req := validCreateRequest()
	req.CakeShape = ""
	order, err := buildOrderFromRequest(req)
	if err != nil {
		t.Fatalf("buildOrderFromRequest returned error: %v", err)
	}
	if order.CakeShape != "round" {
		t.Fatalf("shape = %q, want round", order.CakeShape)
	}
}

func TestNewOrderNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD-\d{13,}-[0-9a-f]{8}$`)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		n := newOrderNumber()
		if !pattern.MatchString(n) {
			t.Fatalf("order number %q does not match expected format", n)
		}
		if seen[n] {
			t.Fatalf("duplicate order number generated: %q", n)
		}
		seen[n] = true
	}
}

func TestOrderLookupFilterByHexID(t *testing.T) {
	id := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	filter := orderLookupFilter(id.Hex(), bson.M{"userId": userID})
	if filter["_id"] != id {
		t.Fatalf("expected _id filter, got %v", filter)
	}
	if filter["userId"] != userID {
		t.Fatal("expected owner scoping to survive the merge")
	}
	if _, hasNumber := filter["orderNumber"]; hasNumber {
		t.Fatal("hex id should not fall through to orderNumber")
	}
}

func TestOrderLookupFilterByOrderNumber(t *testing.T) {
	filter := orderLookupFilter("ORD-1756600000000-a1b2c3d4", nil)
	if filter["orderNumber"] != "ORD-1756600000000-a1b2c3d4" {
		t.Fatalf("expected orderNumber filter, got %v", filter)
	}
}

func TestBuildAdminOrderFilterStatus(t *testing.T) {
	filter, err := buildAdminOrderFilter("pending", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filter["status"] != lifecycle.StatusPending {
		t.Fatalf("expected pending status filter, got %v", filter)
	}

	if _, err := buildAdminOrderFilter("shipped", "", ""); err == nil {
		t.Fatal("expected error for unknown status filter")
	}
}

func TestBuildAdminOrderFilterDateRange(t *testing.T) {
	filter, err := buildAdminOrderFilter("", "2026-01-01", "2026-01-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dateRange, ok := filter["createdAt"].(bson.M)
	if !ok {
		t.Fatalf("expected createdAt range, got %v", filter)
	}

	gte := dateRange["$gte"].(time.Time)
	lt := dateRange["$lt"].(time.Time)
	if !gte.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected lower bound %v", gte)
	}
	// The upper bound is exclusive and covers the whole end day.
	if !lt.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected upper bound %v", lt)
	}

	if _, err := buildAdminOrderFilter("", "not-a-date", ""); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestParsePaginationParams(t *testing.T) {
	page, limit, err := parsePaginationParams("", "")
	if err != nil || page != 1 || limit != defaultPageSize {
		t.Fatalf("defaults: page=%d limit=%d err=%v", page, limit, err)
	}

	page, limit, err = parsePaginationParams("3", "50")
	if err != nil || page != 3 || limit != 50 {
		t.Fatalf("explicit: page=%d limit=%d err=%v", page, limit, err)
	}

	if _, _, err := parsePaginationParams("0", "10"); err == nil {
		t.Fatal("expected error for page 0")
	}
	if _, _, err := parsePaginationParams("x", "10"); err == nil {
		t.Fatal("expected error for non-numeric page")
	}

	_, limit, err = parsePaginationParams("1", "500")
	if err != nil || limit != maxPageSize {
		t.Fatalf("expected limit capped at %d, got %d (err=%v)", maxPageSize, limit, err)
	}
}
