package state

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/freshkart/freshkart-backend/pkg/kvstore"
)

// CartItem is a product plus the quantity in the basket. Price keeps the
// display string ("₹40") the catalog handed out.
type CartItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Image    string `json:"image,omitempty"`
	Category string `json:"category,omitempty"`
	Quantity int    `json:"quantity"`
}

// Order status values.
const (
	OrderStatusCompleted = "completed"
	OrderStatusPending   = "pending"
	OrderStatusCancelled = "cancelled"
)

// BillingAddress is the address block stored with an order.
type BillingAddress struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// BillingDetails is the payer snapshot stored with an order.
type BillingDetails struct {
	Name    string          `json:"name"`
	Email   string          `json:"email,omitempty"`
	Phone   string          `json:"phone,omitempty"`
	Address *BillingAddress `json:"address,omitempty"`
}

// Order is an immutable record of a completed checkout.
type Order struct {
	ID              string          `json:"id"`
	Items           []CartItem      `json:"items"`
	Total           string          `json:"totalAmount"`
	Status          string          `json:"status"`
	Date            time.Time       `json:"date"`
	PaymentIntentID string          `json:"paymentIntentId,omitempty"`
	BillingDetails  *BillingDetails `json:"billingDetails,omitempty"`
}

// Location holds the shopper's saved delivery address as free text.
type Location struct {
	Address string `json:"address"`
}

// AddressParts is the lossy three-segment split used for billing prefill.
type AddressParts struct {
	Line1 string
	City  string
	State string
}

// Store owns the client-side app state and mirrors every mutation to the
// key/value store. It is the single authority after construction.
type Store struct {
	mu        sync.Mutex
	kv        *kvstore.Store
	cart      []CartItem
	favorites map[string]bool
	orders    []Order
	location  *Location
}

// NewStore rehydrates app state from the key/value store. Missing keys start
// empty; a broken file surfaces as an error.
func NewStore(kv *kvstore.Store) (*Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("kvstore is required")
	}
	s := &Store{kv: kv, favorites: map[string]bool{}}

	if err := readKey(kv, kvstore.KeyCart, &s.cart); err != nil {
		return nil, err
	}
	var favorites []string
	if err := readKey(kv, kvstore.KeyFavorites, &favorites); err != nil {
		return nil, err
	}
	for _, id := range favorites {
		s.favorites[id] = true
	}
	if err := readKey(kv, kvstore.KeyOrders, &s.orders); err != nil {
		return nil, err
	}
	var location Location
	if err := readKey(kv, kvstore.KeyUserLocation, &location); err != nil {
		return nil, err
	}
	if location.Address != "" {
		s.location = &location
	}
	return s, nil
}

func readKey(kv *kvstore.Store, key string, out any) error {
	if err := kv.Get(key, out); err != nil && err != kvstore.ErrNotFound {
		return fmt.Errorf("rehydrate %s: %w", key, err)
	}
	return nil
}

// AddToCart adds a product; a repeat id bumps quantity instead of duplicating.
func (s *Store) AddToCart(item CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.cart {
		if s.cart[i].ID == item.ID {
			s.cart[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		if item.Quantity <= 0 {
			item.Quantity = 1
		}
		s.cart = append(s.cart, item)
	}
	return s.kv.Set(kvstore.KeyCart, s.cart)
}

// RemoveFromCart drops the item entirely, whatever its quantity.
func (s *Store) RemoveFromCart(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cart[:0]
	for _, item := range s.cart {
		if item.ID != id {
			next = append(next, item)
		}
	}
	s.cart = next
	return s.kv.Set(kvstore.KeyCart, s.cart)
}

// ClearCart empties the basket.
func (s *Store) ClearCart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = nil
	return s.kv.Set(kvstore.KeyCart, []CartItem{})
}

// Cart returns a copy of the basket.
func (s *Store) Cart() []CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]CartItem, len(s.cart))
	copy(out, s.cart)
	return out
}

// ToggleFavorite flips the favorite bit for a product id and reports the new
// value.
func (s *Store) ToggleFavorite(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.favorites[id] {
		delete(s.favorites, id)
	} else {
		s.favorites[id] = true
	}
	ids := make([]string, 0, len(s.favorites))
	for fav := range s.favorites {
		ids = append(ids, fav)
	}
	return s.favorites[id], s.kv.Set(kvstore.KeyFavorites, ids)
}

// IsFavorite reports whether the product is marked.
func (s *Store) IsFavorite(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorites[id]
}

// AddOrder prepends a completed order; records are never mutated afterwards.
func (s *Store) AddOrder(order Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if order.ID == "" {
		order.ID = NewOrderID()
	}
	if order.Status == "" {
		order.Status = OrderStatusCompleted
	}
	if order.Date.IsZero() {
		order.Date = time.Now()
	}
	s.orders = append([]Order{order}, s.orders...)
	return s.kv.Set(kvstore.KeyOrders, s.orders)
}

// Orders returns the order history, most recent first.
func (s *Store) Orders() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// SetLocation saves the delivery address.
func (s *Store) SetLocation(address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	trimmed := strings.TrimSpace(address)
	s.location = &Location{Address: trimmed}
	return s.kv.Set(kvstore.KeyUserLocation, s.location)
}

// Location returns the saved address, if any.
func (s *Store) Location() (Location, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.location == nil {
		return Location{}, false
	}
	return *s.location, true
}

// ParseAddress splits a free-text address into line1/city/state on the first
// three comma-separated segments. The split is lossy on purpose: it only
// feeds billing prefill, never the stored address.
func ParseAddress(address string) AddressParts {
	parts := strings.Split(address, ",")
	out := AddressParts{}
	if len(parts) > 0 {
		out.Line1 = strings.TrimSpace(parts[0])
	}
	if len(parts) > 1 {
		out.City = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		out.State = strings.TrimSpace(parts[2])
	}
	return out
}

// NewOrderID mints ids shaped order_<unix-ms>_<random 9 base36>.
func NewOrderID() string {
	suffix := strconv.FormatInt(rand.Int63n(int64(1)<<47), 36)
	for len(suffix) < 9 {
		suffix = "0" + suffix
	}
	return fmt.Sprintf("order_%d_%s", time.Now().UnixMilli(), suffix[:9])
}
