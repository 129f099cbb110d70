// Package cart holds the client-side shopping cart: an ordered set of line
// items unique by product id, with quantities bounded by the product stock
// known at the last catalog fetch.
package cart

import (
	"sync"

	"github.com/fjod/shopease/internal/domain"
)

type Store struct {
	mu    sync.RWMutex
	lines []domain.CartLine // insertion order preserved
}

func NewStore() *Store {
	return &Store{}
}

// AddItem inserts the product with quantity 1, or increments the existing
// line. The stock snapshot carried by p is the bound; a full line rejects
// with ErrStockLimit and leaves the cart unchanged.
func (s *Store) AddItem(p domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.Stock == 0 {
		return ErrOutOfStock
	}

	for i := range s.lines {
		if s.lines[i].ProductID == p.ID {
			if s.lines[i].Quantity >= p.Stock {
				return ErrStockLimit
			}
			s.lines[i].Quantity++
			return nil
		}
	}

	s.lines = append(s.lines, domain.CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  1,
	})
	return nil
}

// SetQuantity updates a line's quantity against the given stock snapshot.
// A quantity of zero or less removes the line.
func (s *Store) SetQuantity(productID int64, quantity, availableStock int) error {
	if quantity <= 0 {
		s.RemoveItem(productID)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			if quantity > availableStock {
				return ErrStockLimit
			}
			s.lines[i].Quantity = quantity
			return nil
		}
	}
	return nil
}

// RemoveItem drops the line for productID. Removing an absent product is a
// no-op.
func (s *Store) RemoveItem(productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

// Lines returns a copy of the cart contents in insertion order.
func (s *Store) Lines() []domain.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Total is the exact sum of price times quantity across all lines. Rounding
// to currency precision is left to display code.
func (s *Store) Total() domain.Money {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := domain.Money{Currency: domain.ShopCurrency}
	for _, l := range s.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// ItemCount is the sum of quantities, used for the cart badge.
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, l := range s.lines {
		count += l.Quantity
	}
	return count
}

// Len is the number of distinct lines.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines)
}

func (s *Store) Empty() bool {
	return s.Len() == 0
}

// Clear empties the cart. Called after a successful checkout and on logout.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}
