package model

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem keeps the price captured when the item was added. That price is
// for display only; checkout re-reads the live catalog price.
type CartItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// Cart is per-session state, owned by exactly one session and never shared
// between sessions. It holds no lock for that reason.
type Cart struct {
	CartID uuid.UUID           `json:"cart_id"`
	Items  map[string]CartItem `json:"items"`
}

func NewCart() *Cart {
	return &Cart{
		CartID: uuid.New(),
		Items:  make(map[string]CartItem),
	}
}

// Add merges with an existing entry by summing quantities. The captured
// price of the first add wins for an existing entry.
func (c *Cart) Add(productID, productName string, price decimal.Decimal, quantity int) error {
	if productID == "" {
		return &ValidationError{Field: "product_id", Reason: "must not be empty"}
	}
	if quantity <= 0 {
		return &ValidationError{Field: "quantity", Reason: "must be positive"}
	}
	if c.Items == nil {
		c.Items = make(map[string]CartItem)
	}
	if item, ok := c.Items[productID]; ok {
		item.Quantity += quantity
		c.Items[productID] = item
		return nil
	}
	c.Items[productID] = CartItem{
		ProductID:   productID,
		ProductName: productName,
		Price:       price,
		Quantity:    quantity,
	}
	return nil
}

// SetQuantity replaces the entry's quantity. Zero or negative removes it.
func (c *Cart) SetQuantity(productID string, quantity int) {
	item, ok := c.Items[productID]
	if !ok {
		return
	}
	if quantity <= 0 {
		delete(c.Items, productID)
		return
	}
	item.Quantity = quantity
	c.Items[productID] = item
}

func (c *Cart) Remove(productID string) {
	delete(c.Items, productID)
}

func (c *Cart) Clear() {
	c.Items = make(map[string]CartItem)
}

func (c *Cart) Empty() bool {
	return c == nil || len(c.Items) == 0
}

// Lines returns the entries in ascending product-id order. Checkout relies
// on this ordering being deterministic.
func (c *Cart) Lines() []CartItem {
	items := make([]CartItem, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ProductID < items[j].ProductID
	})
	return items
}

// Amount sums the captured display prices. Not authoritative for commit.
func (c *Cart) Amount() decimal.Decimal {
	amount := decimal.NewFromInt(0)
	for _, item := range c.Items {
		amount = amount.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return amount
}
