package domain

// CartLine is a cart entry holding a snapshot of the product fields taken
// when the product was added. Quantity is bounded by the stock known at the
// last catalog fetch, not re-validated against the server.
type CartLine struct {
	ProductID int64
	Name      string
	Price     Money
	Quantity  int
}

func (l CartLine) Subtotal() Money {
	return l.Price.Mul(l.Quantity)
}
