package models

// CartLineItem is one product's quantity/price record within a cart.
// PriceAtAdd is the unit price captured when the product was first added
// and is never rewritten by later adds or catalog price changes.
type CartLineItem struct {
	ProductID  string  `json:"productId"`
	Quantity   int     `json:"quantity"`
	PriceAtAdd float64 `json:"priceAtAdd"`
}
