package cart

import (
	"sync"

	"github.com/gayabeauty/storefront-backend/pkg/enums"
	pkgerrors "github.com/gayabeauty/storefront-backend/pkg/errors"
	"github.com/gayabeauty/storefront-backend/pkg/types"
)

// Line is one cart entry. Name and UnitPrice are captured when the item is
// added and are not patched by later catalog refreshes.
type Line struct {
	ProductID int64
	Name      string
	UnitPrice types.Rupiah
	Quantity  int
	Status    enums.CartLineStatus
}

// Subtotal returns the line price times quantity.
func (l Line) Subtotal() types.Rupiah {
	return l.UnitPrice * types.Rupiah(l.Quantity)
}

// AddItemInput carries the fields captured when a product enters the cart.
type AddItemInput struct {
	ProductID int64
	Name      string
	UnitPrice types.Rupiah
	Quantity  int
}

// Availability is the catalog view reconcile needs.
type Availability interface {
	Orderable(productID int64) bool
}

type cartState struct {
	lines           []Line
	checkoutPending bool
}

// Store keeps one cart per customer in memory. All operations are guarded by
// a single mutex; carts never outlive the process.
type Store struct {
	mu    sync.Mutex
	carts map[int64]*cartState
}

// NewStore builds an empty cart store.
func NewStore() *Store {
	return &Store{carts: map[int64]*cartState{}}
}

func (s *Store) state(customerID int64) *cartState {
	st, ok := s.carts[customerID]
	if !ok {
		st = &cartState{}
		s.carts[customerID] = st
	}
	return st
}

func errCheckoutPending() error {
	return pkgerrors.New(pkgerrors.CodeConflict, "checkout in progress, cart is locked")
}

// AddItem merges the product into the cart: an existing line has its quantity
// incremented, otherwise a new line is appended at the end.
func (s *Store) AddItem(customerID int64, input AddItemInput) error {
	if customerID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer id must be positive")
	}
	if input.ProductID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id must be positive")
	}
	if input.Quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if input.UnitPrice < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "unit price must be non-negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(customerID)
	if st.checkoutPending {
		return errCheckoutPending()
	}

	for i := range st.lines {
		if st.lines[i].ProductID == input.ProductID {
			st.lines[i].Quantity += input.Quantity
			return nil
		}
	}

	st.lines = append(st.lines, Line{
		ProductID: input.ProductID,
		Name:      input.Name,
		UnitPrice: input.UnitPrice,
		Quantity:  input.Quantity,
		Status:    enums.CartLineStatusOK,
	})
	return nil
}

// AdjustQuantity applies a signed delta to the line's quantity. An adjustment
// that would leave the quantity at zero or below is a no-op, as is a delta
// against a product that is not in the cart. Removing a line is only done
// through RemoveItem.
func (s *Store) AdjustQuantity(customerID, productID int64, delta int) error {
	if customerID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer id must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(customerID)
	if st.checkoutPending {
		return errCheckoutPending()
	}

	for i := range st.lines {
		if st.lines[i].ProductID != productID {
			continue
		}
		if st.lines[i].Quantity+delta <= 0 {
			return nil
		}
		st.lines[i].Quantity += delta
		return nil
	}
	return nil
}

// RemoveItem deletes the line for the given product. Removing a product that
// is not in the cart is a no-op.
func (s *Store) RemoveItem(customerID, productID int64) error {
	if customerID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer id must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(customerID)
	if st.checkoutPending {
		return errCheckoutPending()
	}

	for i := range st.lines {
		if st.lines[i].ProductID == productID {
			st.lines = append(st.lines[:i], st.lines[i+1:]...)
			return nil
		}
	}
	return nil
}

// Lines returns a copy of the customer's cart in insertion order.
func (s *Store) Lines(customerID int64) []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.carts[customerID]
	if !ok {
		return nil
	}
	out := make([]Line, len(st.lines))
	copy(out, st.lines)
	return out
}

// Total sums unit price times quantity over every line. It reads state and
// never mutates it.
func (s *Store) Total(customerID int64) types.Rupiah {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.carts[customerID]
	if !ok {
		return 0
	}
	var total types.Rupiah
	for _, line := range st.lines {
		total += line.Subtotal()
	}
	return total
}

// Reconcile re-checks every line against the catalog view and flags lines
// whose product is gone or out of stock. Lines are never removed: the
// customer decides what to do with a flagged line.
func (s *Store) Reconcile(customerID int64, catalog Availability) []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.carts[customerID]
	if !ok {
		return nil
	}
	for i := range st.lines {
		if catalog != nil && catalog.Orderable(st.lines[i].ProductID) {
			st.lines[i].Status = enums.CartLineStatusOK
		} else {
			st.lines[i].Status = enums.CartLineStatusOutOfStock
		}
	}
	out := make([]Line, len(st.lines))
	copy(out, st.lines)
	return out
}

// BeginCheckout locks the cart for a checkout attempt. A second attempt while
// one is pending is rejected.
func (s *Store) BeginCheckout(customerID int64) error {
	if customerID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer id must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(customerID)
	if st.checkoutPending {
		return pkgerrors.New(pkgerrors.CodeConflict, "a checkout is already in progress")
	}
	st.checkoutPending = true
	return nil
}

// AbortCheckout unlocks the cart after a failed checkout attempt, leaving the
// lines untouched.
func (s *Store) AbortCheckout(customerID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.carts[customerID]; ok {
		st.checkoutPending = false
	}
}

// CompleteCheckout empties the cart and unlocks it. Called only after the
// order service accepted the order.
func (s *Store) CompleteCheckout(customerID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.carts[customerID]; ok {
		st.lines = nil
		st.checkoutPending = false
	}
}

// CheckoutPending reports whether a checkout attempt currently locks the cart.
func (s *Store) CheckoutPending(customerID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.carts[customerID]
	return ok && st.checkoutPending
}
