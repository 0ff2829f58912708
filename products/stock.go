package products

// OutOfStockFor derives the stock flag from a quantity. updateQuantity is the
// only path that can bring a product back in stock.
func OutOfStockFor(quantity int) bool {
	return quantity <= 0
}
