// Package cart holds the in-memory line items for a sale in progress at a
// POS terminal. The cart is the single source of truth for "what is being
// purchased right now"; pricing is derived from it, never stored in it.
package cart

import "github.com/google/uuid"

// Item is one cart line. Stock is the ceiling snapshotted from inventory
// when the product entered the cart; Quantity never exceeds it.
type Item struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Barcode     string    `json:"barcode,omitempty"`
	UnitPrice   int64     `json:"unit_price"`
	Quantity    int       `json:"quantity"`
	Stock       int       `json:"stock"`
	ImageURL    string    `json:"image_url,omitempty"`
}

// Customer is the loyalty member attached to a cart. Its presence switches
// pricing to member mode.
type Customer struct {
	ID         uuid.UUID `json:"id"`
	MemberCode string    `json:"member_code"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone,omitempty"`
	Points     int64     `json:"points"`
}

// Result reports what a cart mutation did. The cart never returns errors:
// a rejected mutation leaves state exactly as it was, and the Result says why.
type Result int

const (
	// ResultAdded means a new line was inserted.
	ResultAdded Result = iota
	// ResultUpdated means an existing line's quantity changed.
	ResultUpdated
	// ResultRemoved means the line was deleted.
	ResultRemoved
	// ResultStockExceeded means the requested quantity would pass the line's
	// stock ceiling; the cart is unchanged.
	ResultStockExceeded
	// ResultNotInCart means the product has no line; the cart is unchanged.
	ResultNotInCart
)

func (r Result) String() string {
	switch r {
	case ResultAdded:
		return "added"
	case ResultUpdated:
		return "updated"
	case ResultRemoved:
		return "removed"
	case ResultStockExceeded:
		return "stock_exceeded"
	case ResultNotInCart:
		return "not_in_cart"
	default:
		return "unknown"
	}
}

// Cart is an ordered collection of Items keyed by product ID plus at most one
// attached customer. Order is insertion order, kept for display only.
//
// A Cart belongs to a single terminal session and is mutated by one goroutine;
// it is not safe for concurrent use.
type Cart struct {
	items    []Item
	customer *Customer
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

func (c *Cart) find(productID uuid.UUID) int {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// AddItem inserts a line for the item's product, or raises the existing
// line's quantity by qty. qty values below 1 are treated as 1. An add that
// would pass the line's stock ceiling leaves the cart exactly unchanged:
// never clamped, never partially fulfilled. A new line snapshots item.Stock
// as its ceiling; the snapshot is not re-checked against live inventory.
func (c *Cart) AddItem(item Item, qty int) Result {
	if qty < 1 {
		qty = 1
	}

	if i := c.find(item.ProductID); i >= 0 {
		newQty := c.items[i].Quantity + qty
		if newQty > c.items[i].Stock {
			return ResultStockExceeded
		}
		c.items[i].Quantity = newQty
		return ResultUpdated
	}

	if qty > item.Stock {
		return ResultStockExceeded
	}
	item.Quantity = qty
	c.items = append(c.items, item)
	return ResultAdded
}

// UpdateQuantity sets a line's quantity. qty <= 0 removes the line; qty above
// the stock ceiling leaves the cart unchanged.
func (c *Cart) UpdateQuantity(productID uuid.UUID, qty int) Result {
	i := c.find(productID)
	if i < 0 {
		return ResultNotInCart
	}

	if qty <= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
		return ResultRemoved
	}
	if qty > c.items[i].Stock {
		return ResultStockExceeded
	}
	c.items[i].Quantity = qty
	return ResultUpdated
}

// RemoveItem deletes a line unconditionally. Removing an absent product is a
// no-op.
func (c *Cart) RemoveItem(productID uuid.UUID) Result {
	i := c.find(productID)
	if i < 0 {
		return ResultNotInCart
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return ResultRemoved
}

// Clear empties all lines and detaches the customer in one step.
func (c *Cart) Clear() {
	c.items = nil
	c.customer = nil
}

// SetCustomer attaches (or with nil, detaches) a customer. Line items are not
// touched.
func (c *Cart) SetCustomer(customer *Customer) {
	c.customer = customer
}

// Customer returns the attached customer, or nil.
func (c *Cart) Customer() *Customer {
	return c.customer
}

// IsMember reports whether a customer is attached.
func (c *Cart) IsMember() bool {
	return c.customer != nil
}

// Subtotal sums unit_price * quantity over all lines. No rounding happens
// here; rounding belongs to the pricing calculator.
func (c *Cart) Subtotal() int64 {
	var total int64
	for i := range c.items {
		total += c.items[i].UnitPrice * int64(c.items[i].Quantity)
	}
	return total
}

// ItemCount returns the total unit count across all lines.
func (c *Cart) ItemCount() int {
	var n int
	for i := range c.items {
		n += c.items[i].Quantity
	}
	return n
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	return len(c.items)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Item returns the line for a product, if present.
func (c *Cart) Item(productID uuid.UUID) (Item, bool) {
	if i := c.find(productID); i >= 0 {
		return c.items[i], true
	}
	return Item{}, false
}
