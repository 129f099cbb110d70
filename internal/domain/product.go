package domain

import "time"

type Product struct {
	ID          int64
	Name        string
	Description string
	Category    string
	Price       Money
	Stock       int
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InStock reports whether the product had stock left at last fetch time.
func (p Product) InStock() bool {
	return p.Stock > 0
}
