// Package catalog caches the product list fetched from the product service.
// Cart mutations validate against this snapshot, not live stock; the copy is
// only as fresh as the last Refresh.
package catalog

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/fjod/shopease/internal/domain"
)

var ErrProductNotFound = errors.New("product not in catalog")

type ProductLister interface {
	List(ctx context.Context) ([]domain.Product, error)
}

type Catalog struct {
	client ProductLister
	sfg    singleflight.Group // collapses concurrent refreshes

	mu       sync.RWMutex
	products []domain.Product
	byID     map[int64]domain.Product
}

func New(client ProductLister) *Catalog {
	return &Catalog{
		client: client,
		byID:   make(map[int64]domain.Product),
	}
}

// Refresh replaces the snapshot with the service's current product list.
// Concurrent callers share a single request.
func (c *Catalog) Refresh(ctx context.Context) ([]domain.Product, error) {
	v, err, _ := c.sfg.Do("products", func() (interface{}, error) {
		products, err := c.client.List(ctx)
		if err != nil {
			return nil, err
		}

		byID := make(map[int64]domain.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		c.mu.Lock()
		c.products = products
		c.byID = byID
		c.mu.Unlock()

		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}

// Get looks a product up in the snapshot.
func (c *Catalog) Get(id int64) (domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.byID[id]
	return p, ok
}

// Products returns the snapshot in the order the service listed it.
func (c *Catalog) Products() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Search filters the snapshot by a case-insensitive substring of the name
// or description.
func (c *Catalog) Search(term string) []domain.Product {
	term = strings.ToLower(term)

	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []domain.Product
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term) {
			out = append(out, p)
		}
	}
	return out
}
