package state

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/freshkart/freshkart-backend/pkg/kvstore"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app-state.json")
	kv, err := kvstore.Open(path)
	if err != nil {
		t.Fatalf("open kvstore: %v", err)
	}
	store, err := NewStore(kv)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store, path
}

func TestAddToCartBumpsQuantityOnRepeat(t *testing.T) {
	store, _ := newTestStore(t)

	item := CartItem{ID: "p1", Name: "Red Apple", Price: "₹40"}
	if err := store.AddToCart(item); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.AddToCart(item); err != nil {
		t.Fatalf("add again: %v", err)
	}

	cart := store.Cart()
	if len(cart) != 1 {
		t.Fatalf("expected single cart line got %d", len(cart))
	}
	if cart[0].Quantity != 2 {
		t.Fatalf("expected quantity 2 got %d", cart[0].Quantity)
	}
}

func TestRemoveFromCartDropsWholeLine(t *testing.T) {
	store, _ := newTestStore(t)

	store.AddToCart(CartItem{ID: "p1", Name: "Red Apple", Price: "₹40"})
	store.AddToCart(CartItem{ID: "p1", Name: "Red Apple", Price: "₹40"})
	store.AddToCart(CartItem{ID: "p2", Name: "Milk 1L", Price: "₹65"})

	if err := store.RemoveFromCart("p1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	cart := store.Cart()
	if len(cart) != 1 || cart[0].ID != "p2" {
		t.Fatalf("expected only p2 left got %+v", cart)
	}
}

func TestToggleFavorite(t *testing.T) {
	store, _ := newTestStore(t)

	on, err := store.ToggleFavorite("p1")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !on || !store.IsFavorite("p1") {
		t.Fatal("expected favorite set")
	}

	off, err := store.ToggleFavorite("p1")
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if off || store.IsFavorite("p1") {
		t.Fatal("expected favorite cleared")
	}
}

func TestOrdersArePrependOnly(t *testing.T) {
	store, _ := newTestStore(t)

	if err := store.AddOrder(Order{ID: "order_1"}); err != nil {
		t.Fatalf("add order: %v", err)
	}
	if err := store.AddOrder(Order{ID: "order_2"}); err != nil {
		t.Fatalf("add order: %v", err)
	}

	orders := store.Orders()
	if len(orders) != 2 || orders[0].ID != "order_2" || orders[1].ID != "order_1" {
		t.Fatalf("expected most-recent-first order history got %+v", orders)
	}
}

func TestAddOrderDefaultsStatusAndDate(t *testing.T) {
	store, _ := newTestStore(t)

	if err := store.AddOrder(Order{Total: "40.00"}); err != nil {
		t.Fatalf("add order: %v", err)
	}

	order := store.Orders()[0]
	if order.Status != OrderStatusCompleted {
		t.Fatalf("expected default completed status got %q", order.Status)
	}
	if order.ID == "" || order.Date.IsZero() {
		t.Fatalf("expected id and date defaulted got %+v", order)
	}
}

func TestOrderSerializedFieldNames(t *testing.T) {
	order := Order{
		ID:     "order_1",
		Total:  "145.00",
		Status: OrderStatusCompleted,
		BillingDetails: &BillingDetails{
			Name:    "Asha Rao",
			Address: &BillingAddress{Line1: "12 MG Road", PostalCode: "560001"},
		},
	}

	raw, err := json.Marshal(order)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"totalAmount", "status", "billingDetails"} {
		if _, ok := fields[key]; !ok {
			t.Fatalf("expected %q key in serialized order, got %s", key, raw)
		}
	}
	if _, ok := fields["total"]; ok {
		t.Fatalf("total must serialize as totalAmount, got %s", raw)
	}
}

func TestStateSurvivesRehydration(t *testing.T) {
	store, path := newTestStore(t)

	store.AddToCart(CartItem{ID: "p1", Name: "Red Apple", Price: "₹40", Category: "Fruits"})
	store.ToggleFavorite("p2")
	store.AddOrder(Order{
		ID:             "order_1",
		Total:          "145.00",
		Status:         OrderStatusPending,
		BillingDetails: &BillingDetails{Name: "Asha Rao", Address: &BillingAddress{Line1: "12 MG Road"}},
	})
	store.SetLocation("12 MG Road, Bengaluru, Karnataka")

	kv, err := kvstore.Open(path)
	if err != nil {
		t.Fatalf("reopen kvstore: %v", err)
	}
	revived, err := NewStore(kv)
	if err != nil {
		t.Fatalf("rehydrate: %v", err)
	}

	if cart := revived.Cart(); len(cart) != 1 || cart[0].ID != "p1" || cart[0].Category != "Fruits" {
		t.Fatalf("expected cart rehydrated got %+v", cart)
	}
	if !revived.IsFavorite("p2") {
		t.Fatal("expected favorite rehydrated")
	}
	orders := revived.Orders()
	if len(orders) != 1 || orders[0].Total != "145.00" || orders[0].Status != OrderStatusPending {
		t.Fatalf("expected orders rehydrated got %+v", orders)
	}
	if orders[0].BillingDetails == nil || orders[0].BillingDetails.Name != "Asha Rao" ||
		orders[0].BillingDetails.Address == nil || orders[0].BillingDetails.Address.Line1 != "12 MG Road" {
		t.Fatalf("expected billing snapshot rehydrated got %+v", orders[0].BillingDetails)
	}
	if loc, ok := revived.Location(); !ok || loc.Address != "12 MG Road, Bengaluru, Karnataka" {
		t.Fatalf("expected location rehydrated got %+v", loc)
	}
}

func TestParseAddressLossyThreeSegments(t *testing.T) {
	parts := ParseAddress("12 MG Road, Bengaluru, Karnataka, 560001, India")
	if parts.Line1 != "12 MG Road" || parts.City != "Bengaluru" || parts.State != "Karnataka" {
		t.Fatalf("unexpected parse %+v", parts)
	}

	short := ParseAddress("Single Line")
	if short.Line1 != "Single Line" || short.City != "" || short.State != "" {
		t.Fatalf("unexpected short parse %+v", short)
	}
}

func TestNewOrderIDShape(t *testing.T) {
	id := NewOrderID()
	if !strings.HasPrefix(id, "order_") {
		t.Fatalf("expected order_ prefix got %s", id)
	}
	segments := strings.Split(id, "_")
	if len(segments) != 3 {
		t.Fatalf("expected three segments got %s", id)
	}
	if len(segments[2]) != 9 {
		t.Fatalf("expected 9-char suffix got %q", segments[2])
	}
}
